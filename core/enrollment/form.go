package enrollment

import (
	"github.com/pkg/errors"

	"github.com/trezcool/academia/core"
	"github.com/trezcool/academia/core/pricing"
)

// Form events
const (
	EventSetPlan       EventType = "set_plan"
	EventSetProfessor  EventType = "set_professor"
	EventAddStudent    EventType = "add_student"
	EventRemoveStudent EventType = "remove_student"
)

var (
	ErrInvalidEvent     = errors.New("invalid form event")
	ErrNoSuchStudent    = errors.New("no such student")
	ErrDuplicateStudent = errors.New("student already added")
)

type EventType string

// Event is a user edit of the enrollment form.
// Value holds the raw input; Tier comes along with set_plan, Student with add_student.
type Event struct {
	Type    EventType     `json:"type"`
	Index   int           `json:"index"`
	Value   string        `json:"value"`
	Tier    *pricing.Tier `json:"tier,omitempty"`
	Student *StudentRef   `json:"student,omitempty"`
}

// State is the view-model of the enrollment form.
type State struct {
	PlanID      int           `json:"planId"`
	Tier        pricing.Tier  `json:"tier"`
	ProfessorID int           `json:"professorId"`
	Students    []StudentRef  `json:"studentIds"`
	Quote       pricing.Quote `json:"quote"`
}

func NewState() State {
	s := State{Students: []StudentRef{}}
	s.Quote = pricing.Calculate(0, s.Tier)
	return s
}

// Reduce returns the state following ev. s is left untouched.
// The quote is recomputed from the distinct students on every transition.
func Reduce(s State, ev Event) (State, error) {
	next := s
	next.Students = make([]StudentRef, len(s.Students))
	copy(next.Students, s.Students)

	switch ev.Type {
	case EventSetPlan:
		next.PlanID = core.ParseCount(ev.Value)
		if ev.Tier != nil {
			next.Tier = *ev.Tier
		} else {
			next.Tier = pricing.Tier{}
		}
	case EventSetProfessor:
		next.ProfessorID = core.ParseCount(ev.Value)
	case EventAddStudent:
		if ev.Student == nil || ev.Student.StudentID() <= 0 {
			return s, errors.Wrap(ErrInvalidEvent, "add_student needs a student")
		}
		for _, ref := range next.Students {
			if ref.StudentID() == ev.Student.StudentID() {
				return s, errors.Wrapf(ErrDuplicateStudent, "student %d", ref.StudentID())
			}
		}
		next.Students = append(next.Students, *ev.Student)
	case EventRemoveStudent:
		if ev.Index < 0 || ev.Index >= len(next.Students) {
			return s, errors.Wrapf(ErrNoSuchStudent, "index %d", ev.Index)
		}
		next.Students = append(next.Students[:ev.Index], next.Students[ev.Index+1:]...)
	default:
		return s, errors.Wrapf(ErrInvalidEvent, "unknown event type %q", ev.Type)
	}

	next.Quote = pricing.Calculate(len(StudentIDs(next.Students)), next.Tier)
	return next, nil
}

// Submission returns the creation request of the enrollment being filled in.
func (s State) Submission() NewEnrollment {
	students := make([]StudentRef, len(s.Students))
	copy(students, s.Students)
	return NewEnrollment{
		Students:    students,
		PlanID:      s.PlanID,
		ProfessorID: s.ProfessorID,
	}
}
