package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/subflow/admin-client/internal/lib/sl"
	"github.com/subflow/admin-client/internal/models"
)

// GetProfile загружает профиль аутентифицированного администратора.
// Поля заполняются с перебором альтернативных ключей: id из _id либо id,
// дата регистрации из createdAt либо joinedDate, аватар из avatar.url
// либо строкового avatar. Отсутствующие поля остаются пустыми строками.
func (c *Client) GetProfile(ctx context.Context) (*models.Profile, error) {
	raw, err := c.do(ctx, http.MethodGet, "/user/profile", nil, nil)
	if err != nil {
		c.log.Error("failed to fetch profile", sl.Err(err))
		return nil, err
	}

	payload := unwrapData(raw)
	var body struct {
		MongoID    string          `json:"_id"`
		ID         string          `json:"id"`
		Name       string          `json:"name"`
		Email      string          `json:"email"`
		Role       string          `json:"role"`
		CreatedAt  string          `json:"createdAt"`
		JoinedDate string          `json:"joinedDate"`
		Avatar     json.RawMessage `json:"avatar"`
	}
	if err := json.Unmarshal(payload, &body); err != nil {
		return nil, &Error{Message: err.Error(), Status: http.StatusInternalServerError, Data: raw}
	}

	return &models.Profile{
		ID:         firstNonEmpty(body.MongoID, body.ID),
		Name:       body.Name,
		Email:      body.Email,
		Role:       body.Role,
		JoinedDate: firstNonEmpty(body.CreatedAt, body.JoinedDate),
		Avatar:     avatarURL(body.Avatar),
	}, nil
}

// avatarURL достаёт ссылку на аватар: сначала из объекта {"url": ...},
// затем из строкового значения.
func avatarURL(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var obj struct {
		URL string `json:"url"`
	}
	if err := json.Unmarshal(raw, &obj); err == nil && obj.URL != "" {
		return obj.URL
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return ""
}

// UpdateProfileParams параметры изменения профиля. Пустое имя и нулевой
// Avatar означают, что соответствующее поле не передаётся вовсе.
type UpdateProfileParams struct {
	Name       string
	AvatarName string
	Avatar     io.Reader
}

// UpdateProfile отправляет multipart-запрос с изменёнными полями профиля.
// Отсутствующие поля не попадают в тело запроса.
func (c *Client) UpdateProfile(ctx context.Context, params UpdateProfileParams) (json.RawMessage, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	if params.Name != "" {
		if err := writer.WriteField("name", params.Name); err != nil {
			return nil, &Error{Message: err.Error(), Status: http.StatusInternalServerError}
		}
	}
	if params.Avatar != nil {
		part, err := writer.CreateFormFile("avatar", params.AvatarName)
		if err != nil {
			return nil, &Error{Message: err.Error(), Status: http.StatusInternalServerError}
		}
		if _, err := io.Copy(part, params.Avatar); err != nil {
			return nil, &Error{Message: err.Error(), Status: http.StatusInternalServerError}
		}
	}
	if err := writer.Close(); err != nil {
		return nil, &Error{Message: err.Error(), Status: http.StatusInternalServerError}
	}

	raw, err := c.doRaw(ctx, http.MethodPatch, "/update-profile", nil, &buf, writer.FormDataContentType())
	if err != nil {
		c.notifier.Error("Failed to update profile")
		return nil, err
	}
	c.notifier.Success("Profile updated successfully")
	return unwrapData(raw), nil
}
