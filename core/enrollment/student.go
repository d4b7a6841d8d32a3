package enrollment

import (
	"encoding/json"

	"github.com/pkg/errors"
)

// Student reference kinds
const (
	RefStudent    RefKind = "student"
	RefEnrollment RefKind = "enrollment"
)

var ErrInvalidStudentRef = errors.New("invalid student reference")

type RefKind string

// StudentBrief is the short form of a student, as listed when picking new students.
type StudentBrief struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
}

// EnrolledStudent is a student already attached to an enrollment.
type EnrolledStudent struct {
	ID           int          `json:"id"`
	EnrollmentID int          `json:"enrollmentId"`
	Student      StudentBrief `json:"student"`
}

// StudentRef is either a StudentBrief or an EnrolledStudent, as told by Kind.
type StudentRef struct {
	Kind       RefKind
	Student    *StudentBrief
	Enrollment *EnrolledStudent
}

func NewStudentRef(s StudentBrief) StudentRef {
	return StudentRef{Kind: RefStudent, Student: &s}
}

func NewEnrolledStudentRef(es EnrolledStudent) StudentRef {
	return StudentRef{Kind: RefEnrollment, Enrollment: &es}
}

// StudentID returns the id of the referenced student; 0 if none.
func (ref StudentRef) StudentID() int {
	switch ref.Kind {
	case RefStudent:
		if ref.Student != nil {
			return ref.Student.ID
		}
	case RefEnrollment:
		if ref.Enrollment != nil {
			return ref.Enrollment.Student.ID
		}
	}
	return 0
}

func (ref StudentRef) Name() string {
	switch {
	case ref.Kind == RefStudent && ref.Student != nil:
		return ref.Student.Name
	case ref.Kind == RefEnrollment && ref.Enrollment != nil:
		return ref.Enrollment.Student.Name
	}
	return ""
}

// MarshalJSON always writes the kind along with the referenced record.
func (ref StudentRef) MarshalJSON() ([]byte, error) {
	switch ref.Kind {
	case RefStudent:
		if ref.Student == nil {
			break
		}
		return json.Marshal(struct {
			Kind RefKind `json:"kind"`
			StudentBrief
		}{ref.Kind, *ref.Student})
	case RefEnrollment:
		if ref.Enrollment == nil {
			break
		}
		return json.Marshal(struct {
			Kind RefKind `json:"kind"`
			EnrolledStudent
		}{ref.Kind, *ref.Enrollment})
	}
	return nil, errors.Wrapf(ErrInvalidStudentRef, "kind %q", ref.Kind)
}

// UnmarshalJSON resolves the kind of the reference once for all.
// Records without a "kind" are told apart by shape: enrolled students carry a nested "student".
// A bare number is read as a student id.
func (ref *StudentRef) UnmarshalJSON(data []byte) error {
	var id int
	if err := json.Unmarshal(data, &id); err == nil {
		*ref = NewStudentRef(StudentBrief{ID: id})
		return nil
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return errors.Wrap(ErrInvalidStudentRef, err.Error())
	}

	var kind RefKind
	if k, ok := raw["kind"]; ok {
		if err := json.Unmarshal(k, &kind); err != nil {
			return errors.Wrap(ErrInvalidStudentRef, "kind: "+err.Error())
		}
	} else if _, ok := raw["student"]; ok {
		kind = RefEnrollment
	} else {
		kind = RefStudent
	}

	switch kind {
	case RefStudent:
		var s StudentBrief
		if err := json.Unmarshal(data, &s); err != nil {
			return errors.Wrap(ErrInvalidStudentRef, err.Error())
		}
		*ref = NewStudentRef(s)
	case RefEnrollment:
		var es EnrolledStudent
		if err := json.Unmarshal(data, &es); err != nil {
			return errors.Wrap(ErrInvalidStudentRef, err.Error())
		}
		*ref = NewEnrolledStudentRef(es)
	default:
		return errors.Wrapf(ErrInvalidStudentRef, "unknown kind %q", kind)
	}
	return nil
}

// StudentIDs returns the distinct student ids referenced, in order, skipping empty references.
func StudentIDs(refs []StudentRef) []int {
	seen := make(map[int]struct{}, len(refs))
	ids := make([]int, 0, len(refs))
	for _, ref := range refs {
		id := ref.StudentID()
		if id <= 0 {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	return ids
}
