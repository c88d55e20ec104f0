// Package stubserver реализует локальную заглушку REST API админ-панели.
//
// Заглушка воспроизводит поверхность настоящего бэкенда, включая его
// исторические причуды: часть ответов обёрнута в конверт {"data": ...},
// список пользователей приходит с блоком meta, профиль отдаёт аватар
// объектом {"url": ...}. Используется для локальной разработки CLI
// и в интеграционных тестах клиента.
package stubserver

import (
	"fmt"
	"log/slog"
	"math/rand"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/subflow/admin-client/internal/config"
	"github.com/subflow/admin-client/internal/lib/sl"
	"github.com/subflow/admin-client/internal/metrics"
)

// Server хранит состояние заглушки в памяти: учётную запись администратора,
// список пользователей и тарифные планы.
type Server struct {
	log      *slog.Logger
	cfg      config.StubServer
	validate *validator.Validate

	mu       sync.Mutex
	admin    account
	users    []stubUser
	plans    []plan
	otps     map[string]string
	verified map[string]bool
}

type account struct {
	Email        string
	Name         string
	Role         string
	PasswordHash string
	CreatedAt    string
	AvatarURL    string
}

type stubUser struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Email      string  `json:"email"`
	JoinedDate string  `json:"joinedDate"`
	Payable    float64 `json:"payable"`
	PlanName   string  `json:"planName"`
	Status     string  `json:"status"`
}

type plan struct {
	ID           string   `json:"_id"`
	Name         string   `json:"name"`
	PriceMonthly *float64 `json:"priceMonthly,omitempty"`
	PriceYearly  *float64 `json:"priceYearly,omitempty"`
	Description  string   `json:"description"`
	IsActive     bool     `json:"isActive"`
	CreatedAt    string   `json:"createdAt"`
}

// New создаёт заглушку с начальными данными. Пароль администратора
// хешируется bcrypt, как это делал бы настоящий бэкенд.
func New(log *slog.Logger, cfg config.StubServer) (*Server, error) {
	const op = "stubserver.New"

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s := &Server{
		log:      log,
		cfg:      cfg,
		validate: validator.New(),
		admin: account{
			Email:        cfg.AdminEmail,
			Name:         "Admin",
			Role:         "admin",
			PasswordHash: string(hash),
			CreatedAt:    "2025-01-15",
			AvatarURL:    "https://cdn.local/avatars/admin.png",
		},
		otps:     make(map[string]string),
		verified: make(map[string]bool),
	}
	s.seed()
	return s, nil
}

// Router собирает маршруты заглушки: открытые точки аутентификации
// и группу под JWT-токеном.
func (s *Server) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
	)

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/login", s.handleLogin)
		r.Post("/auth/forgot-password", s.handleForgotPassword)
		r.Post("/auth/verify-otp", s.handleVerifyOTP)
		r.Post("/auth/reset-password", s.handleResetPassword)

		r.Group(func(r chi.Router) {
			r.Use(s.jwtMiddleware)
			r.Get("/admin/dashboard/", s.handleDashboard)
			r.Get("/admin/subscription", s.handleSubscriptionAnalytics)
			r.Get("/admin/users", s.handleUsers)
			r.Get("/user/profile", s.handleProfile)
			r.Patch("/update-profile", s.handleUpdateProfile)
			r.Post("/change-password", s.handleChangePassword)
			r.Get("/admin/subscriptions", s.handlePlanList)
			r.Post("/admin/subscriptions", s.handlePlanCreate)
			r.Put("/admin/subscriptions/{id}", s.handlePlanUpdate)
			r.Patch("/admin/subscriptions/{id}", s.handlePlanToggle)
		})
	})

	r.Handle("/metrics", metrics.Handler())
	return r
}

// jwtMiddleware проверяет bearer-токен в заголовке Authorization.
func (s *Server) jwtMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		const op = "stubserver.jwtMiddleware"

		log := s.log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		authHeader := r.Header.Get("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			log.Error("missing or invalid authorization header")
			render.Status(r, http.StatusUnauthorized)
			render.JSON(w, r, errorResponse("missing or invalid authorization header"))
			return
		}
		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")

		if _, err := s.parseToken(tokenStr); err != nil {
			log.Error("invalid or expired token", sl.Err(err))
			render.Status(r, http.StatusUnauthorized)
			render.JSON(w, r, errorResponse("invalid or expired token"))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// generateToken выпускает HS256-токен с email администратора в subject.
func (s *Server) generateToken(email string) (string, error) {
	claims := jwt.RegisteredClaims{
		Subject:   email,
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.cfg.TokenTTL)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecretKey))
}

// parseToken проверяет подпись и срок действия токена.
func (s *Server) parseToken(tokenStr string) (*jwt.RegisteredClaims, error) {
	const op = "stubserver.parseToken"
	token, err := jwt.ParseWithClaims(tokenStr, &jwt.RegisteredClaims{}, func(_ *jwt.Token) (any, error) {
		return []byte(s.cfg.JWTSecretKey), nil
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("%s: invalid token", op)
	}
	return claims, nil
}

// newOTP генерирует шестизначный код подтверждения.
func newOTP() string {
	return fmt.Sprintf("%06d", rand.Intn(1000000))
}

// IssuedOTP возвращает последний код, выданный для адреса.
// Нужен интеграционным тестам, у которых нет доступа к почте.
func (s *Server) IssuedOTP(email string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.otps[email]
}

// seed наполняет заглушку демонстрационными пользователями и планами.
func (s *Server) seed() {
	priceBasic := 4.99
	priceBasicYear := 49.0
	pricePremium := 14.99
	pricePremiumYear := 149.0

	s.plans = []plan{
		{
			ID:           "plan-basic",
			Name:         "Basic",
			PriceMonthly: &priceBasic,
			PriceYearly:  &priceBasicYear,
			Description:  "Starter plan",
			IsActive:     true,
			CreatedAt:    "2025-02-01",
		},
		{
			ID:           "plan-premium",
			Name:         "Premium",
			PriceMonthly: &pricePremium,
			PriceYearly:  &pricePremiumYear,
			Description:  "Full feature set",
			IsActive:     true,
			CreatedAt:    "2025-02-01",
		},
	}

	names := []string{
		"Alice Johnson", "Bob Smith", "Carol White", "David Brown",
		"Erin Davis", "Frank Miller", "Grace Wilson", "Henry Moore",
		"Iris Taylor", "Jack Anderson", "Karen Thomas", "Leo Jackson",
	}
	for i, name := range names {
		status := "paid"
		payable := 14.99
		planName := "Premium"
		if i%3 == 0 {
			status = "unpaid"
			payable = 4.99
			planName = "Basic"
		}
		s.users = append(s.users, stubUser{
			ID:         fmt.Sprintf("user-%02d", i+1),
			Name:       name,
			Email:      strings.ToLower(strings.ReplaceAll(name, " ", ".")) + "@example.com",
			JoinedDate: fmt.Sprintf("2025-03-%02d", i+1),
			Payable:    payable,
			PlanName:   planName,
			Status:     status,
		})
	}
}
