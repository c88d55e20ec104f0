package stubserver

import (
	"net/http"
	"strconv"

	"github.com/go-chi/render"
)

// userJoinStats статичный ряд регистраций по дням недели.
var userJoinStats = []map[string]any{
	{"day": "Sun", "users": 55},
	{"day": "Mon", "users": 60},
	{"day": "Tue", "users": 80},
	{"day": "Wed", "users": 52},
	{"day": "Thu", "users": 92},
	{"day": "Fri", "users": 15},
	{"day": "Sat", "users": 80},
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	active := 0
	revenue := 0.0
	for _, u := range s.users {
		if u.Status == "paid" {
			active++
		}
		revenue += u.Payable
	}

	render.JSON(w, r, okResponse(map[string]any{
		"totalUsers":          len(s.users),
		"activeSubscriptions": active,
		"totalRevenue":        revenue,
		"userJoinStats":       userJoinStats,
	}))
}

func (s *Server) handleSubscriptionAnalytics(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	counts := make(map[string]int)
	for _, u := range s.users {
		counts[u.PlanName]++
	}

	analytics := make([]map[string]any, 0, len(s.plans))
	for _, p := range s.plans {
		share := 0.0
		if len(s.users) > 0 {
			share = float64(counts[p.Name]) / float64(len(s.users)) * 100
		}
		analytics = append(analytics, map[string]any{
			"name":       p.Name,
			"value":      counts[p.Name],
			"percentage": share,
		})
	}
	render.JSON(w, r, okResponse(analytics))
}

// pageParams читает page и limit из query, подставляя 1 и 10 по умолчанию.
func pageParams(r *http.Request) (page, limit int) {
	page, limit = 1, 10
	if v, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil && v > 0 {
		page = v
	}
	if v, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && v > 0 {
		limit = v
	}
	return page, limit
}

func (s *Server) handleUsers(w http.ResponseWriter, r *http.Request) {
	page, limit := pageParams(r)

	s.mu.Lock()
	defer s.mu.Unlock()

	total := len(s.users)
	start := (page - 1) * limit
	if start > total {
		start = total
	}
	end := start + limit
	if end > total {
		end = total
	}

	render.JSON(w, r, pagedOK(s.users[start:end], total, page, limit))
}
