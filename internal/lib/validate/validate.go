// Package validate выполняет проверку пользовательского ввода на стороне
// вызывающего кода. API-клиент сам ничего не валидирует: формат email,
// кода подтверждения и совпадение паролей проверяются до вызова клиента.
package validate

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator"
)

var validate = validator.New()

// Ошибки проверки ввода.
var (
	ErrPasswordMismatch = errors.New("passwords do not match")
	ErrPasswordTooShort = errors.New("password must be at least 6 characters")
)

// Email проверяет формат адреса электронной почты.
func Email(email string) error {
	const op = "validate.Email"
	if err := validate.Var(email, "required,email"); err != nil {
		return fmt.Errorf("%s: invalid email address", op)
	}
	return nil
}

// OTP проверяет, что код подтверждения состоит ровно из 6 цифр.
func OTP(code string) error {
	const op = "validate.OTP"
	if err := validate.Var(code, "required,len=6,numeric"); err != nil {
		return fmt.Errorf("%s: code must be 6 digits", op)
	}
	return nil
}

// NewPassword проверяет длину нового пароля и его совпадение с подтверждением.
func NewPassword(password, confirm string) error {
	const op = "validate.NewPassword"
	if err := validate.Var(password, "required,min=6"); err != nil {
		return fmt.Errorf("%s: %w", op, ErrPasswordTooShort)
	}
	if password != confirm {
		return fmt.Errorf("%s: %w", op, ErrPasswordMismatch)
	}
	return nil
}
