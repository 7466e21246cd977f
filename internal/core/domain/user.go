package domain

import (
	"reflect"
	"strings"
	"time"
)

// Role is the integer role flag stored on every user record.
type Role int

const (
	RoleUser  Role = 0
	RoleAdmin Role = 1
)

// Valid reports whether r is one of the two known role flags.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

func (r Role) IsAdmin() bool { return r == RoleAdmin }

// User models a registered customer or administrator.
//
// PasswordHash and Answer never leave the process: both are excluded from
// JSON so a User can be rendered directly in responses.
type User struct {
	ID           string    `json:"_id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Phone        string    `json:"phone"`
	Address      any       `json:"address"`
	Answer       string    `json:"-"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// AddressMissing reports whether an address carries no usable content:
// nil, a blank string, or an empty object or list.
func AddressMissing(v any) bool {
	if v == nil {
		return true
	}
	if s, ok := v.(string); ok {
		return strings.TrimSpace(s) == ""
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Map, reflect.Slice, reflect.Array:
		return rv.Len() == 0
	case reflect.Pointer, reflect.Interface:
		return rv.IsNil()
	}
	return false
}
