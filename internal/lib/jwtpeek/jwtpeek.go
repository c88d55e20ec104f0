// Package jwtpeek извлекает сведения из JWT без проверки подписи.
// Валидацией токена занимается бэкенд; клиенту данные нужны только
// для отображения, например срока действия текущей сессии.
package jwtpeek

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims содержит поля токена, интересные клиенту.
type Claims struct {
	Subject   string
	ExpiresAt time.Time
}

// Peek разбирает токен без проверки подписи и возвращает его claims.
// Отсутствующий exp оставляет ExpiresAt нулевым.
func Peek(tokenStr string) (*Claims, error) {
	const op = "jwtpeek.Peek"
	var claims jwt.RegisteredClaims
	if _, _, err := jwt.NewParser().ParseUnverified(tokenStr, &claims); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	result := &Claims{Subject: claims.Subject}
	if claims.ExpiresAt != nil {
		result.ExpiresAt = claims.ExpiresAt.Time
	}
	return result, nil
}

// Expired сообщает, истёк ли токен на момент now.
// Токен без exp считается неистёкшим.
func (c *Claims) Expired(now time.Time) bool {
	if c.ExpiresAt.IsZero() {
		return false
	}
	return now.After(c.ExpiresAt)
}
