package user

import "strings"

// UpdateProfileDTO uses pointers so absent fields leave the stored value
// untouched.
type UpdateProfileDTO struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Phone     *string `json:"phone"`
	Email     *string `json:"email"`
}

type AssignRoleDTO struct {
	Role string `json:"role"`
}

type UpdatePermissionsDTO struct {
	Permissions []string `json:"permissions"`
}

type ValidationError struct {
	Msg string
}

func (v ValidationError) Error() string { return v.Msg }

func (d UpdateProfileDTO) Validate() error {
	if d.FirstName != nil && *d.FirstName == "" {
		return ValidationError{Msg: "first_name must not be empty"}
	}
	if d.Email != nil && !strings.Contains(*d.Email, "@") {
		return ValidationError{Msg: "email is not valid"}
	}
	return nil
}
