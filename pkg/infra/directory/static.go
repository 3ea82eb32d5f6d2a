package directory

import (
	"context"
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/herald/pkg/domain/interfaces"
	"github.com/m-mizutani/herald/pkg/domain/model"
	"gopkg.in/yaml.v3"
)

type fileUser struct {
	Login    string `yaml:"login"`
	FullName string `yaml:"fullName"`
	Email    string `yaml:"email"`
}

type file struct {
	Users []fileUser `yaml:"users"`
}

// Static is an immutable in-memory user directory
type Static struct {
	users map[string]model.User
}

// NewStatic creates a directory from the given users; later duplicates of a
// login are ignored
func NewStatic(users ...model.User) *Static {
	d := &Static{users: make(map[string]model.User, len(users))}
	for _, u := range users {
		if u.Login == "" {
			continue
		}
		if _, ok := d.users[u.Login]; ok {
			continue
		}
		d.users[u.Login] = u
	}
	return d
}

// LoadFile reads a YAML user list:
//
//	users:
//	  - login: alice
//	    fullName: Alice
//	    email: alice@example.com
func LoadFile(path string) (*Static, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read user directory file", goerr.V("path", path))
	}

	var f file
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, goerr.Wrap(err, "failed to parse user directory file", goerr.V("path", path))
	}

	users := make([]model.User, 0, len(f.Users))
	for i, u := range f.Users {
		if u.Login == "" {
			return nil, goerr.New("user without login", goerr.V("path", path), goerr.V("index", i))
		}
		users = append(users, model.User{Login: u.Login, FullName: u.FullName, Email: u.Email})
	}
	return NewStatic(users...), nil
}

// FindByLogin returns a copy of the user with the given login
func (d *Static) FindByLogin(_ context.Context, login string) (*model.User, bool) {
	u, ok := d.users[login]
	if !ok {
		return nil, false
	}
	return &u, true
}

// Len returns the number of users
func (d *Static) Len() int {
	return len(d.users)
}

// Chain queries directories in order and returns the first hit
type Chain []interfaces.UserDirectory

// FindByLogin implements interfaces.UserDirectory
func (c Chain) FindByLogin(ctx context.Context, login string) (*model.User, bool) {
	for _, d := range c {
		if d == nil {
			continue
		}
		if u, ok := d.FindByLogin(ctx, login); ok {
			return u, true
		}
	}
	return nil, false
}
