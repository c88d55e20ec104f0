package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"

	"github.com/subflow/admin-client/internal/lib/sl"
	"github.com/subflow/admin-client/internal/models"
)

// PlanAction действие над жизненным циклом тарифного плана.
// Один endpoint обслуживает все три перехода.
type PlanAction string

// Допустимые действия над планом.
const (
	PlanActionDelete   PlanAction = "delete"
	PlanActionInactive PlanAction = "inactive"
	PlanActionActive   PlanAction = "active"
)

// PlanParams параметры создания и изменения тарифного плана.
// Цены опциональны: nil означает, что цена не задаётся.
type PlanParams struct {
	Name       string
	PriceMonth *float64
	PriceYear  *float64
}

// planRequest тело запроса в словаре бэкенда: ценовые поля переименованы
// в priceMonthly и priceYearly, незаданные цены не сериализуются.
type planRequest struct {
	Name         string   `json:"name"`
	PriceMonthly *float64 `json:"priceMonthly,omitempty"`
	PriceYearly  *float64 `json:"priceYearly,omitempty"`
}

// planPayload форма плана в ответе сервера со всеми историческими
// вариантами имён полей.
type planPayload struct {
	MongoID      string   `json:"_id"`
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	PriceMonthly *float64 `json:"priceMonthly"`
	PriceMonth   *float64 `json:"priceMonth"`
	Price        *float64 `json:"price"`
	PriceYearly  *float64 `json:"priceYearly"`
	PriceYear    *float64 `json:"priceYear"`
	Description  string   `json:"description"`
	IsActive     *bool    `json:"isActive"`
	CreatedAt    string   `json:"createdAt"`
}

// normalize приводит план к фиксированной форме. Порядок перебора ценовых
// полей: priceMonthly, priceMonth, price и priceYearly, priceYear.
// Отсутствующая цена остаётся nil, отсутствующий isActive считается true.
func (p planPayload) normalize() models.SubscriptionPlan {
	plan := models.SubscriptionPlan{
		ID:          firstNonEmpty(p.MongoID, p.ID),
		Name:        p.Name,
		PriceMonth:  firstPrice(p.PriceMonthly, p.PriceMonth, p.Price),
		PriceYear:   firstPrice(p.PriceYearly, p.PriceYear),
		Description: p.Description,
		IsActive:    true,
		CreatedAt:   p.CreatedAt,
	}
	if p.IsActive != nil {
		plan.IsActive = *p.IsActive
	}
	return plan
}

func firstPrice(prices ...*float64) *float64 {
	for _, p := range prices {
		if p != nil {
			return p
		}
	}
	return nil
}

// GetSubscriptionPlans загружает страницу тарифных планов.
// Ответ может быть массивом либо обёрнут в один или два конверта data.
func (c *Client) GetSubscriptionPlans(ctx context.Context, page, limit int) ([]models.SubscriptionPlan, error) {
	query := url.Values{}
	query.Set("page", strconv.Itoa(page))
	query.Set("limit", strconv.Itoa(limit))

	raw, err := c.do(ctx, http.MethodGet, "/admin/subscriptions", query, nil)
	if err != nil {
		c.log.Error("failed to fetch subscription plans", sl.Err(err))
		return nil, err
	}

	payload := unwrapData(raw)

	var payloads []planPayload
	if err := json.Unmarshal(payload, &payloads); err != nil {
		var inner struct {
			Data []planPayload `json:"data"`
		}
		if err := json.Unmarshal(payload, &inner); err != nil {
			return nil, &Error{Message: err.Error(), Status: http.StatusInternalServerError, Data: raw}
		}
		payloads = inner.Data
	}

	plans := make([]models.SubscriptionPlan, 0, len(payloads))
	for _, p := range payloads {
		plans = append(plans, p.normalize())
	}
	return plans, nil
}

// CreateSubscriptionPlan создаёт тарифный план. Ценовые поля переименовываются
// в словарь бэкенда перед отправкой.
func (c *Client) CreateSubscriptionPlan(ctx context.Context, params PlanParams) (json.RawMessage, error) {
	raw, err := c.do(ctx, http.MethodPost, "/admin/subscriptions", nil, planRequest{
		Name:         params.Name,
		PriceMonthly: params.PriceMonth,
		PriceYearly:  params.PriceYear,
	})
	if err != nil {
		c.notifier.Error("Failed to create plan")
		return nil, err
	}
	c.notifier.Success("Plan created successfully")
	return unwrapData(raw), nil
}

// UpdateSubscriptionPlan изменяет существующий план по id.
// Переименование ценовых полей то же, что и при создании.
func (c *Client) UpdateSubscriptionPlan(ctx context.Context, id string, params PlanParams) (json.RawMessage, error) {
	raw, err := c.do(ctx, http.MethodPut, "/admin/subscriptions/"+url.PathEscape(id), nil, planRequest{
		Name:         params.Name,
		PriceMonthly: params.PriceMonth,
		PriceYearly:  params.PriceYear,
	})
	if err != nil {
		c.notifier.Error("Failed to update plan")
		return nil, err
	}
	c.notifier.Success("Plan updated successfully")
	return unwrapData(raw), nil
}

// ToggleSubscriptionPlan отправляет действие перехода жизненного цикла плана.
func (c *Client) ToggleSubscriptionPlan(ctx context.Context, id string, action PlanAction) (json.RawMessage, error) {
	raw, err := c.do(ctx, http.MethodPatch, "/admin/subscriptions/"+url.PathEscape(id), nil, map[string]string{
		"action": string(action),
	})
	if err != nil {
		c.notifier.Error("Failed to update plan")
		return nil, err
	}
	c.notifier.Success("Plan updated successfully")
	return unwrapData(raw), nil
}
