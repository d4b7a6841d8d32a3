package core

import "strings"

type Ordering struct {
	Field     string
	Ascending bool
}

func (ord Ordering) String() string {
	direction := "DESC"
	if ord.Ascending {
		direction = "ASC"
	}
	return ord.Field + " " + direction
}

// ParseOrdering parses a comma separated list of fields; a leading "-" means descending.
// e.g. "code,-name"
func ParseOrdering(s string) []Ordering {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	var orderings []Ordering
	for _, field := range strings.Split(s, ",") {
		field = strings.TrimSpace(field)
		descending := strings.HasPrefix(field, "-")
		if descending {
			field = field[1:] // drop "-"
		}
		if field == "" {
			continue
		}
		orderings = append(orderings, Ordering{Field: field, Ascending: !descending})
	}
	return orderings
}
