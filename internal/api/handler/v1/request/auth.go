package request

import (
	"errors"

	"github.com/dlclark/regexp2"
	validation "github.com/go-ozzo/ozzo-validation"
)

// Lookahead groups need regexp2; the stdlib engine cannot compile them.
const passwordPolicyPattern = `^(?=.*[A-Za-z])(?=.*\d).{8,}$`

var (
	passwordPolicy     = regexp2.MustCompile(passwordPolicyPattern, regexp2.None)
	errInvalidPassword = errors.New("the password must be at least 8 characters and contain 1 letter and 1 number")
)

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (req *LoginRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Username, validation.Required),
		validation.Field(&req.Password, validation.Required),
	)
}

type AddUserRequest struct {
	NewUsername string `json:"new_username"`
	NewPassword string `json:"new_password"`
}

func (req *AddUserRequest) Validate() error {
	err := validation.ValidateStruct(
		req,
		validation.Field(&req.NewUsername, validation.Required, validation.Length(2, 50)),
		validation.Field(&req.NewPassword, validation.Required),
	)
	if err != nil {
		return err
	}

	return validatePasswordPolicy(req.NewPassword)
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

func (req *ChangePasswordRequest) Validate() error {
	err := validation.ValidateStruct(
		req,
		validation.Field(&req.CurrentPassword, validation.Required),
		validation.Field(&req.NewPassword, validation.Required),
	)
	if err != nil {
		return err
	}

	return validatePasswordPolicy(req.NewPassword)
}

func validatePasswordPolicy(password string) error {
	ok, err := passwordPolicy.MatchString(password)
	if err != nil || !ok {
		return errInvalidPassword
	}

	return nil
}
