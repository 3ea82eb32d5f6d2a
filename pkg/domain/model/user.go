package model

// User is a user record as the host reports it
type User struct {
	ID       string `json:"id,omitempty"`
	Login    string `json:"login,omitempty"`
	FullName string `json:"fullName,omitempty"`
	Email    string `json:"email,omitempty"`
}

// UserRef is the minimal public shape of a user sent to the webhook endpoint
type UserRef struct {
	FullName *string `json:"fullName"`
	Login    *string `json:"login"`
	Email    *string `json:"email"`
}

// Sanitize projects a user record into a UserRef. Empty attributes become nil
// and a nil user yields nil.
func Sanitize(u *User) *UserRef {
	if u == nil {
		return nil
	}
	return &UserRef{
		FullName: optional(u.FullName),
		Login:    optional(u.Login),
		Email:    optional(u.Email),
	}
}

// NewUserRef builds a UserRef from raw attributes, e.g. an inline mention
func NewUserRef(fullName, login, email string) *UserRef {
	return &UserRef{
		FullName: optional(fullName),
		Login:    optional(login),
		Email:    optional(email),
	}
}

// LoginOrEmpty returns the login or an empty string
func (r *UserRef) LoginOrEmpty() string {
	if r == nil || r.Login == nil {
		return ""
	}
	return *r.Login
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	v := s
	return &v
}
