package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/subflow/admin-client/internal/lib/sl"
	"github.com/subflow/admin-client/internal/models"
)

// GetUsers загружает одну страницу списка пользователей.
//
// Метаданные пагинации необязательны: total по умолчанию 0, page и limit
// подставляются из параметров запроса. HasNextPage вычисляется только когда
// сервер прислал все три поля и page*limit < total; HasPrevPage — когда
// действующая страница больше первой. Статус каждого пользователя
// приводится к нижнему регистру.
func (c *Client) GetUsers(ctx context.Context, page, limit int) (*models.UserPage, error) {
	query := url.Values{}
	query.Set("page", strconv.Itoa(page))
	query.Set("limit", strconv.Itoa(limit))

	raw, err := c.do(ctx, http.MethodGet, "/admin/users", query, nil)
	if err != nil {
		c.log.Error("failed to fetch users", sl.Err(err))
		return nil, err
	}

	var envelope struct {
		Data json.RawMessage `json:"data"`
		Meta struct {
			Total *int `json:"total"`
			Page  *int `json:"page"`
			Limit *int `json:"limit"`
		} `json:"meta"`
	}
	// Тело может быть массивом без конверта, тогда метаданных нет.
	_ = json.Unmarshal(raw, &envelope)

	payload := envelope.Data
	if len(payload) == 0 {
		payload = raw
	}

	var users []models.User
	if string(payload) != "null" {
		if err := json.Unmarshal(payload, &users); err != nil {
			return nil, &Error{Message: err.Error(), Status: http.StatusInternalServerError, Data: raw}
		}
	}
	for i := range users {
		users[i].Status = strings.ToLower(users[i].Status)
	}

	meta := envelope.Meta
	result := &models.UserPage{
		Data:  users,
		Page:  page,
		Limit: limit,
	}
	if meta.Total != nil {
		result.Total = *meta.Total
	}
	if meta.Page != nil {
		result.Page = *meta.Page
	}
	if meta.Limit != nil {
		result.Limit = *meta.Limit
	}
	result.HasNextPage = meta.Page != nil && meta.Limit != nil && meta.Total != nil &&
		*meta.Page != 0 && *meta.Limit != 0 &&
		(*meta.Page)*(*meta.Limit) < *meta.Total
	result.HasPrevPage = result.Page > 1

	return result, nil
}
