package auth

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"taskboard/internal/models"
)

// ErrInvalidCredentials is returned when no directory entry matches both the
// email and the password.
var ErrInvalidCredentials = errors.New("invalid email or password")

// Account is a directory entry before its password is hashed.
type Account struct {
	ID       string
	Email    string
	Password string
	Name     string
	Role     string
}

type entry struct {
	identity models.Identity
	hash     []byte
}

// Directory is a fixed, in-memory set of accounts.
type Directory struct {
	entries []entry
}

// NewDirectory hashes every account password with the given bcrypt cost.
func NewDirectory(cost int, accounts ...Account) (*Directory, error) {
	d := &Directory{entries: make([]entry, 0, len(accounts))}
	for _, a := range accounts {
		hash, err := bcrypt.GenerateFromPassword([]byte(a.Password), cost)
		if err != nil {
			return nil, fmt.Errorf("hash password for %s: %w", a.Email, err)
		}
		d.entries = append(d.entries, entry{
			identity: models.Identity{ID: a.ID, Email: a.Email, Name: a.Name, Role: a.Role},
			hash:     hash,
		})
	}
	return d, nil
}

// DemoAccounts are the two built-in accounts: an administrator and a regular
// user.
func DemoAccounts() []Account {
	return []Account{
		{ID: "1", Email: "admin@example.com", Password: "admin123", Name: "Administrator", Role: "admin"},
		{ID: "2", Email: "user@example.com", Password: "user123", Name: "User", Role: "user"},
	}
}

// Authenticate returns the identity whose email and password both match
// exactly. The password never leaves the directory.
func (d *Directory) Authenticate(email, password string) (models.Identity, error) {
	for _, e := range d.entries {
		if e.identity.Email != email {
			continue
		}
		if bcrypt.CompareHashAndPassword(e.hash, []byte(password)) == nil {
			return e.identity, nil
		}
	}
	return models.Identity{}, ErrInvalidCredentials
}
