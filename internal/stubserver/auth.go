package stubserver

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/subflow/admin-client/internal/lib/sl"
)

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	const op = "stubserver.handleLogin"

	log := s.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, errorResponse("invalid request body"))
		return
	}

	if err := s.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		render.Status(r, http.StatusUnprocessableEntity)
		render.JSON(w, r, errorResponse("invalid credentials format"))
		return
	}

	s.mu.Lock()
	admin := s.admin
	s.mu.Unlock()

	if req.Email != admin.Email ||
		bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(req.Password)) != nil {
		log.Error("invalid credentials", slog.String("email", req.Email))
		render.Status(r, http.StatusUnauthorized)
		render.JSON(w, r, errorResponse("invalid credentials"))
		return
	}

	token, err := s.generateToken(admin.Email)
	if err != nil {
		log.Error("failed to generate token", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, errorResponse("failed to generate token"))
		return
	}

	log.Info("login success", slog.String("email", req.Email))
	render.JSON(w, r, okResponse(map[string]string{
		"accessToken":  token,
		"refreshToken": uuid.NewString(),
	}))
}

type forgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

func (s *Server) handleForgotPassword(w http.ResponseWriter, r *http.Request) {
	const op = "stubserver.handleForgotPassword"

	log := s.log.With(slog.String("op", op))

	var req forgotPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, errorResponse("invalid request body"))
		return
	}
	if err := s.validate.Struct(req); err != nil {
		render.Status(r, http.StatusUnprocessableEntity)
		render.JSON(w, r, errorResponse("invalid email"))
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if req.Email != s.admin.Email {
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, errorResponse("unknown email"))
		return
	}

	code := newOTP()
	s.otps[req.Email] = code
	delete(s.verified, req.Email)

	// Настоящий бэкенд отправил бы письмо, заглушка пишет код в лог.
	log.Info("reset code issued", slog.String("email", req.Email), slog.String("otp", code))
	render.JSON(w, r, statusOK("reset code sent"))
}

type verifyOTPRequest struct {
	Email string `json:"email" validate:"required,email"`
	OTP   string `json:"otp" validate:"required,len=6,numeric"`
}

func (s *Server) handleVerifyOTP(w http.ResponseWriter, r *http.Request) {
	var req verifyOTPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, errorResponse("invalid request body"))
		return
	}
	if err := s.validate.Struct(req); err != nil {
		render.Status(r, http.StatusUnprocessableEntity)
		render.JSON(w, r, errorResponse("invalid code"))
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if code, ok := s.otps[req.Email]; !ok || code != req.OTP {
		render.Status(r, http.StatusUnprocessableEntity)
		render.JSON(w, r, errorResponse("invalid code"))
		return
	}
	s.verified[req.Email] = true
	render.JSON(w, r, statusOK("code verified"))
}

type resetPasswordRequest struct {
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=6"`
	ConfirmPassword string `json:"confirmPassword" validate:"required"`
}

func (s *Server) handleResetPassword(w http.ResponseWriter, r *http.Request) {
	const op = "stubserver.handleResetPassword"

	log := s.log.With(slog.String("op", op))

	var req resetPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, errorResponse("invalid request body"))
		return
	}
	if err := s.validate.Struct(req); err != nil {
		render.Status(r, http.StatusUnprocessableEntity)
		render.JSON(w, r, errorResponse("invalid password"))
		return
	}
	if req.Password != req.ConfirmPassword {
		render.Status(r, http.StatusUnprocessableEntity)
		render.JSON(w, r, errorResponse("passwords do not match"))
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.verified[req.Email] {
		render.Status(r, http.StatusForbidden)
		render.JSON(w, r, errorResponse("code not verified"))
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Error("failed to hash password", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, errorResponse("failed to reset password"))
		return
	}
	s.admin.PasswordHash = string(hash)
	delete(s.otps, req.Email)
	delete(s.verified, req.Email)

	log.Info("password reset", slog.String("email", req.Email))
	render.JSON(w, r, statusOK("password reset"))
}
