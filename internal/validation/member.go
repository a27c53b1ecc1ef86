package validation

import (
	"fmt"
	"net/mail"
	"strings"

	"github.com/ndewijer/Investment-Club-Backend/internal/api/request"
	"github.com/ndewijer/Investment-Club-Backend/internal/model"
)

// ValidateRegisterMember validates a self-registration request.
func ValidateRegisterMember(req request.RegisterMemberRequest) error {
	errors := make(map[string]string)

	validateFullName(req.FullName, errors)

	if strings.TrimSpace(req.Email) == "" {
		errors["email"] = "email is required"
	} else if _, err := mail.ParseAddress(req.Email); err != nil {
		errors["email"] = "invalid email address"
	}

	return fieldErrors(errors)
}

// ValidateUpdateProfile validates a profile update.
func ValidateUpdateProfile(req request.UpdateProfileRequest) error {
	errors := make(map[string]string)
	validateFullName(req.FullName, errors)
	return fieldErrors(errors)
}

// ValidateSetApproval requires an explicit approval flag.
func ValidateSetApproval(req request.SetApprovalRequest) error {
	if req.IsApproved == nil {
		return &Error{Fields: map[string]string{"isApproved": "isApproved is required"}}
	}
	return nil
}

// ValidateSetRole requires a known role.
func ValidateSetRole(req request.SetRoleRequest) error {
	switch model.Role(req.Role) {
	case model.RoleAdmin, model.RoleMember:
		return nil
	}
	return &Error{Fields: map[string]string{"role": fmt.Sprintf("invalid role: %s", req.Role)}}
}

func validateFullName(name string, errors map[string]string) {
	switch n := strings.TrimSpace(name); {
	case n == "":
		errors["fullName"] = "fullName is required"
	case len(n) > 100:
		errors["fullName"] = "fullName must be at most 100 characters"
	}
}
