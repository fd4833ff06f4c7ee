package storage

import (
	"slices"

	"golang.org/x/crypto/bcrypt"
)

const (
	RoleAdmin  = "admin"
	RoleMember = "member"
)

type User struct {
	Username     string   `json:"username"`
	Name         string   `json:"name"`
	Email        string   `json:"email"`
	Role         string   `json:"role"`
	Attributes   []string `json:"attributes,omitempty"`
	PasswordHash string   `json:"password_hash,omitempty"`
}

func (u *User) SetPassword(pwd string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(pwd), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hash)
	return nil
}

func (u *User) CheckPassword(pwd string) error {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(pwd))
}

func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

func (u User) HasAttribute(attr string) bool {
	return slices.Contains(u.Attributes, attr)
}

// Public: пользователь без хэша пароля, для ответов API.
func (u User) Public() User {
	u.PasswordHash = ""
	return u
}

type NewUser struct {
	Username   string   `json:"username" validate:"required,min=3,max=32,alphanum"`
	Name       string   `json:"name" validate:"required,notblank,max=100"`
	Email      string   `json:"email" validate:"omitempty,email"`
	Password   string   `json:"password" validate:"required,min=6"`
	Admin      bool     `json:"admin"`
	Attributes []string `json:"attributes"`
}
