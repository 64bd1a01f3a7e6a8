package auth

import (
	"strings"

	"github.com/cmlabs-hris/personnel-web/internal/pkg/validator"
)

type LoginRequest struct {
	RegimentalNo string `json:"regimentalNo"`
	Password     string `json:"password"`
}

func (r *LoginRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.RegimentalNo) {
		errs = append(errs, validator.ValidationError{
			Field:   "regimentalNo",
			Message: "Regimental No is required",
		})
	}
	if validator.IsEmpty(r.Password) {
		errs = append(errs, validator.ValidationError{
			Field:   "password",
			Message: "Password is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// backendUser is the user document as the backend spells it.
type backendUser struct {
	ID           string `json:"_id"`
	AltID        string `json:"id"`
	Name         string `json:"name"`
	RegimentalNo string `json:"regimentalNo"`
	Role         string `json:"role"`
	IsAdmin      bool   `json:"isAdmin"`
}

// LoginResponse accepts both {token, user:{...}} and a flat {token, _id, role, ...}.
type LoginResponse struct {
	Token string       `json:"token"`
	User  *backendUser `json:"user"`
	backendUser
}

// Identity resolves the user from either response shape.
func (r *LoginResponse) Identity() User {
	u := r.backendUser
	if r.User != nil {
		u = *r.User
	}
	id := u.ID
	if id == "" {
		id = u.AltID
	}
	role := RoleEmployee
	if u.IsAdmin || strings.EqualFold(u.Role, string(RoleAdmin)) {
		role = RoleAdmin
	}
	return User{
		ID:           id,
		Name:         u.Name,
		RegimentalNo: u.RegimentalNo,
		Role:         role,
	}
}
