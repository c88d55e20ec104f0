package stubserver

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/render"
	"github.com/google/uuid"

	"github.com/subflow/admin-client/internal/lib/sl"
)

func (s *Server) handlePlanList(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	render.JSON(w, r, okResponse(s.plans))
}

type planRequest struct {
	Name         string   `json:"name" validate:"required"`
	PriceMonthly *float64 `json:"priceMonthly"`
	PriceYearly  *float64 `json:"priceYearly"`
	Description  string   `json:"description"`
}

func (s *Server) handlePlanCreate(w http.ResponseWriter, r *http.Request) {
	const op = "stubserver.handlePlanCreate"

	log := s.log.With(slog.String("op", op))

	var req planRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, errorResponse("invalid request body"))
		return
	}
	if err := s.validate.Struct(req); err != nil {
		render.Status(r, http.StatusUnprocessableEntity)
		render.JSON(w, r, errorResponse("name required"))
		return
	}

	newPlan := plan{
		ID:           "plan-" + uuid.NewString(),
		Name:         req.Name,
		PriceMonthly: req.PriceMonthly,
		PriceYearly:  req.PriceYearly,
		Description:  req.Description,
		IsActive:     true,
		CreatedAt:    time.Now().Format("2006-01-02"),
	}

	s.mu.Lock()
	s.plans = append(s.plans, newPlan)
	s.mu.Unlock()

	log.Info("plan created", slog.String("id", newPlan.ID), slog.String("name", newPlan.Name))
	render.JSON(w, r, okResponse(newPlan))
}

func (s *Server) handlePlanUpdate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req planRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, errorResponse("invalid request body"))
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.plans {
		if s.plans[i].ID != id {
			continue
		}
		if req.Name != "" {
			s.plans[i].Name = req.Name
		}
		if req.PriceMonthly != nil {
			s.plans[i].PriceMonthly = req.PriceMonthly
		}
		if req.PriceYearly != nil {
			s.plans[i].PriceYearly = req.PriceYearly
		}
		if req.Description != "" {
			s.plans[i].Description = req.Description
		}
		render.JSON(w, r, okResponse(s.plans[i]))
		return
	}

	render.Status(r, http.StatusNotFound)
	render.JSON(w, r, errorResponse("plan not found"))
}

type planToggleRequest struct {
	Action string `json:"action" validate:"required,oneof=delete inactive active"`
}

func (s *Server) handlePlanToggle(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req planToggleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, errorResponse("invalid request body"))
		return
	}
	if err := s.validate.Struct(req); err != nil {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, errorResponse("unknown action"))
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.plans {
		if s.plans[i].ID != id {
			continue
		}
		switch req.Action {
		case "delete":
			removed := s.plans[i]
			s.plans = append(s.plans[:i], s.plans[i+1:]...)
			render.JSON(w, r, okResponse(removed))
		case "inactive":
			s.plans[i].IsActive = false
			render.JSON(w, r, okResponse(s.plans[i]))
		case "active":
			s.plans[i].IsActive = true
			render.JSON(w, r, okResponse(s.plans[i]))
		}
		return
	}

	render.Status(r, http.StatusNotFound)
	render.JSON(w, r, errorResponse("plan not found"))
}
