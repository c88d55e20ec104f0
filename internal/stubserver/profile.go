package stubserver

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"
	"golang.org/x/crypto/bcrypt"

	"github.com/subflow/admin-client/internal/lib/sl"
)

// profileBody форма профиля, которую отдаёт настоящий бэкенд:
// mongo-идентификатор, дата в createdAt и аватар объектом.
func (s *Server) profileBody() map[string]any {
	return map[string]any{
		"_id":       "admin-0001",
		"name":      s.admin.Name,
		"email":     s.admin.Email,
		"role":      s.admin.Role,
		"createdAt": s.admin.CreatedAt,
		"avatar":    map[string]string{"url": s.admin.AvatarURL},
	}
}

func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	render.JSON(w, r, okResponse(s.profileBody()))
}

func (s *Server) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	const op = "stubserver.handleUpdateProfile"

	log := s.log.With(slog.String("op", op))

	if err := r.ParseMultipartForm(8 << 20); err != nil {
		log.Error("failed to parse multipart form", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, errorResponse("invalid multipart body"))
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if name := r.FormValue("name"); name != "" {
		s.admin.Name = name
	}
	if file, header, err := r.FormFile("avatar"); err == nil {
		file.Close()
		s.admin.AvatarURL = "https://cdn.local/avatars/" + header.Filename
	}

	log.Info("profile updated", slog.String("name", s.admin.Name))
	render.JSON(w, r, okResponse(s.profileBody()))
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=6"`
	ConfirmPassword string `json:"confirmPassword" validate:"required"`
}

func (s *Server) handleChangePassword(w http.ResponseWriter, r *http.Request) {
	const op = "stubserver.handleChangePassword"

	log := s.log.With(slog.String("op", op))

	var req changePasswordRequest
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
	if req.NewPassword != req.ConfirmPassword {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, errorResponse("passwords do not match"))
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if bcrypt.CompareHashAndPassword([]byte(s.admin.PasswordHash), []byte(req.CurrentPassword)) != nil {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, errorResponse("wrong current password"))
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Error("failed to hash password", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, errorResponse("failed to change password"))
		return
	}
	s.admin.PasswordHash = string(hash)

	log.Info("password changed", slog.String("email", s.admin.Email))
	render.JSON(w, r, okResponse(map[string]bool{"updated": true}))
}
