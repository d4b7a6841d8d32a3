package professor

import (
	"context"
	"errors"
	"net/mail"
)

var ErrNotFound = errors.New("professor not found")

type Professor struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Address returns the professor's email address, if any.
func (p Professor) Address() (mail.Address, bool) {
	if p.Email == "" {
		return mail.Address{}, false
	}
	return mail.Address{Name: p.Name, Address: p.Email}, true
}

type Repository interface {
	GetProfessor(ctx context.Context, id int) (Professor, error)
}
