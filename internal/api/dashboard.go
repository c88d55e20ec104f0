package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/subflow/admin-client/internal/lib/sl"
	"github.com/subflow/admin-client/internal/models"
)

// Константы-заглушки для числовых метрик, которые бэкенд может не прислать.
const (
	defaultTotalUsers          = 520
	defaultActiveSubscriptions = 552
	defaultTotalRevenue        = 1700
)

// defaultJoinStats ряд регистраций по дням недели, используемый,
// когда бэкенд не прислал поле userJoinStats.
var defaultJoinStats = []models.UserJoinStat{
	{Day: "Sun", Users: 55},
	{Day: "Mon", Users: 60},
	{Day: "Tue", Users: 80},
	{Day: "Wed", Users: 52},
	{Day: "Thu", Users: 92},
	{Day: "Fri", Users: 15},
	{Day: "Sat", Users: 80},
}

// defaultAnalytics доли подписок, используемые при пустом ответе аналитики.
var defaultAnalytics = []models.SubscriptionAnalytic{
	{Name: "Basic", Value: 372, Percentage: 60},
	{Name: "Premium", Value: 180, Percentage: 17},
}

// GetDashboardStats загружает агрегированные метрики обзорной страницы.
// Конверт {"data": ...} снимается, отсутствующие числовые поля заменяются
// фиксированными значениями по умолчанию. Присланный пустой список
// userJoinStats сохраняется как есть, заглушка подставляется только
// при полном отсутствии поля.
func (c *Client) GetDashboardStats(ctx context.Context) (*models.DashboardStats, error) {
	raw, err := c.do(ctx, http.MethodGet, "/admin/dashboard/", nil, nil)
	if err != nil {
		c.log.Error("failed to fetch dashboard stats", sl.Err(err))
		return nil, err
	}

	payload := unwrapData(raw)
	var body struct {
		TotalUsers          *int                  `json:"totalUsers"`
		ActiveSubscriptions *int                  `json:"activeSubscriptions"`
		TotalRevenue        *float64              `json:"totalRevenue"`
		UserJoinStats       []models.UserJoinStat `json:"userJoinStats"`
	}
	if err := json.Unmarshal(payload, &body); err != nil {
		c.log.Warn("unexpected dashboard payload, using defaults", sl.Err(err))
	}

	stats := &models.DashboardStats{
		TotalUsers:          defaultTotalUsers,
		ActiveSubscriptions: defaultActiveSubscriptions,
		TotalRevenue:        defaultTotalRevenue,
		UserJoinStats:       defaultJoinStats,
	}
	if body.TotalUsers != nil {
		stats.TotalUsers = *body.TotalUsers
	}
	if body.ActiveSubscriptions != nil {
		stats.ActiveSubscriptions = *body.ActiveSubscriptions
	}
	if body.TotalRevenue != nil {
		stats.TotalRevenue = *body.TotalRevenue
	}
	if body.UserJoinStats != nil {
		stats.UserJoinStats = body.UserJoinStats
	}
	return stats, nil
}

// GetSubscriptionAnalytics загружает именованные доли подписок.
// При отсутствии данных возвращается ряд по умолчанию.
func (c *Client) GetSubscriptionAnalytics(ctx context.Context) ([]models.SubscriptionAnalytic, error) {
	raw, err := c.do(ctx, http.MethodGet, "/admin/subscription", nil, nil)
	if err != nil {
		c.log.Error("failed to fetch subscription analytics", sl.Err(err))
		return nil, err
	}

	payload := unwrapData(raw)
	var analytics []models.SubscriptionAnalytic
	if err := json.Unmarshal(payload, &analytics); err != nil || analytics == nil {
		analytics = defaultAnalytics
	}
	return analytics, nil
}
