// Package models содержит доменные структуры, описывающие данные админ-панели,
// получаемые от удалённого REST API после нормализации ответов.
package models

// Статусы оплаты пользователя.
const (
	StatusPaid   = "paid"
	StatusUnpaid = "unpaid"
)

// User представляет запись пользователя из списка администратора.
// Поле Status приводится к нижнему регистру при нормализации и
// принимает значения "paid" или "unpaid".
type User struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Email      string  `json:"email"`
	Avatar     string  `json:"avatar,omitempty"`
	JoinedDate string  `json:"joinedDate"`
	Payable    float64 `json:"payable"`
	PlanName   string  `json:"planName"`
	Status     string  `json:"status"`
}

// Paid сообщает, оплачен ли текущий период пользователя.
func (u User) Paid() bool {
	return u.Status == StatusPaid
}

// SubscriptionPlan представляет тарифный план подписки.
// Цены за месяц и за год независимо опциональны: nil означает,
// что цена не задана (это не то же самое, что 0).
type SubscriptionPlan struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	PriceMonth  *float64 `json:"priceMonth,omitempty"`
	PriceYear   *float64 `json:"priceYear,omitempty"`
	Description string   `json:"description"`
	IsActive    bool     `json:"isActive"`
	CreatedAt   string   `json:"createdAt"`
}

// Profile представляет профиль аутентифицированного администратора.
// Отсутствующие у сервера поля заполняются пустыми строками.
type Profile struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Avatar     string `json:"avatar,omitempty"`
	Role       string `json:"role"`
	JoinedDate string `json:"joinedDate"`
}

// DashboardStats агрегированные метрики для обзорной страницы.
type DashboardStats struct {
	TotalUsers          int            `json:"totalUsers"`
	ActiveSubscriptions int            `json:"activeSubscriptions"`
	TotalRevenue        float64        `json:"totalRevenue"`
	UserJoinStats       []UserJoinStat `json:"userJoinStats"`
}

// UserJoinStat количество регистраций за день недели.
type UserJoinStat struct {
	Day   string `json:"day"`
	Users int    `json:"users"`
}

// SubscriptionAnalytic именованная доля подписок в процентах.
type SubscriptionAnalytic struct {
	Name       string  `json:"name"`
	Value      int     `json:"value"`
	Percentage float64 `json:"percentage"`
}

// UserPage одна страница списка пользователей с метаданными пагинации.
type UserPage struct {
	Data        []User `json:"data"`
	Total       int    `json:"total"`
	Page        int    `json:"page"`
	Limit       int    `json:"limit"`
	HasNextPage bool   `json:"hasNextPage"`
	HasPrevPage bool   `json:"hasPrevPage"`
}
