package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/subflow/admin-client/internal/lib/sl"
)

// Login обменивает учётные данные на токены сессии.
//
// Сервер исторически отдаёт токен в одной из трёх форм, порядок перебора
// фиксирован: data.accessToken, accessToken, token. Если ни одна форма не
// содержит токена, возвращается ErrMissingAccessToken и сохранение токенов
// не выполняется. При успехе оба токена сохраняются, а вызывающему коду
// возвращается сырое тело ответа.
func (c *Client) Login(ctx context.Context, email, password string) (json.RawMessage, error) {
	const op = "api.Client.Login"

	raw, err := c.do(ctx, http.MethodPost, "/auth/login", nil, map[string]string{
		"email":    email,
		"password": password,
	})
	if err != nil {
		c.notifier.Error("Login failed")
		return nil, err
	}

	var body struct {
		Data struct {
			AccessToken  string `json:"accessToken"`
			RefreshToken string `json:"refreshToken"`
		} `json:"data"`
		AccessToken  string `json:"accessToken"`
		RefreshToken string `json:"refreshToken"`
		Token        string `json:"token"`
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		c.notifier.Error("Login failed")
		return nil, &Error{Message: err.Error(), Status: http.StatusInternalServerError, Data: raw}
	}

	accessToken := firstNonEmpty(body.Data.AccessToken, body.AccessToken, body.Token)
	if accessToken == "" {
		c.notifier.Error("Login failed")
		return nil, fmt.Errorf("%s: %w", op, ErrMissingAccessToken)
	}

	c.SetToken(ctx, accessToken)
	if refreshToken := firstNonEmpty(body.Data.RefreshToken, body.RefreshToken); refreshToken != "" {
		c.SetRefreshToken(ctx, refreshToken)
	}

	c.log.Info("login succeeded", sl.Secret("token", accessToken))
	return raw, nil
}

// ForgotPassword запрашивает отправку кода подтверждения на указанный адрес.
// Локальное состояние сессии не меняется.
func (c *Client) ForgotPassword(ctx context.Context, email string) (json.RawMessage, error) {
	raw, err := c.do(ctx, http.MethodPost, "/auth/forgot-password", nil, map[string]string{
		"email": email,
	})
	if err != nil {
		c.notifier.Error("Failed to send reset code")
		return nil, err
	}
	return raw, nil
}

// VerifyOTP отправляет код подтверждения на проверку.
// Формат кода проверяет вызывающая сторона до вызова.
func (c *Client) VerifyOTP(ctx context.Context, email, otp string) (json.RawMessage, error) {
	raw, err := c.do(ctx, http.MethodPost, "/auth/verify-otp", nil, map[string]string{
		"email": email,
		"otp":   otp,
	})
	if err != nil {
		c.notifier.Error("Invalid OTP")
		return nil, err
	}
	return raw, nil
}

// ResetPassword устанавливает новый пароль после подтверждения кода.
// Совпадение пароля и подтверждения здесь не проверяется, это
// обязанность вызывающей стороны.
func (c *Client) ResetPassword(ctx context.Context, email, password, confirmPassword string) (json.RawMessage, error) {
	raw, err := c.do(ctx, http.MethodPost, "/auth/reset-password", nil, map[string]string{
		"email":           email,
		"password":        password,
		"confirmPassword": confirmPassword,
	})
	if err != nil {
		c.notifier.Error("Failed to reset password")
		return nil, err
	}
	return raw, nil
}

// ChangePassword меняет пароль аутентифицированного администратора.
// Все три поля передаются как есть, без повторной валидации.
func (c *Client) ChangePassword(ctx context.Context, currentPassword, newPassword, confirmPassword string) (json.RawMessage, error) {
	raw, err := c.do(ctx, http.MethodPost, "/change-password", nil, map[string]string{
		"currentPassword": currentPassword,
		"newPassword":     newPassword,
		"confirmPassword": confirmPassword,
	})
	if err != nil {
		c.notifier.Error("Failed to change password")
		return nil, err
	}
	c.notifier.Success("Password changed successfully")
	return unwrapData(raw), nil
}
