package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"clinic-portal/internal/delivery/dto"
	"clinic-portal/internal/delivery/http/middleware"
	"clinic-portal/internal/usecase"
	"clinic-portal/pkg/response"
	"clinic-portal/pkg/validator"
)

type VitalsHandler struct {
	vitalsUsecase *usecase.VitalsUsecase
	validator     *validator.CustomValidator
}

func NewVitalsHandler(vitalsUsecase *usecase.VitalsUsecase, validator *validator.CustomValidator) *VitalsHandler {
	return &VitalsHandler{
		vitalsUsecase: vitalsUsecase,
		validator:     validator,
	}
}

func (h *VitalsHandler) Record(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Not authenticated")
		return
	}

	var req dto.RecordVitalsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	reading, err := h.vitalsUsecase.Record(r.Context(), userID, &req)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrInvalidVitalsValue):
			response.Error(w, http.StatusBadRequest, err.Error(), nil)
		case errors.Is(err, usecase.ErrNoVitalsSubmitted):
			response.Error(w, http.StatusBadRequest, "At least one measurement is required", nil)
		default:
			response.InternalServerError(w, "Failed to record vitals")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Vitals recorded successfully", reading)
}

func (h *VitalsHandler) History(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Not authenticated")
		return
	}

	readings, err := h.vitalsUsecase.History(r.Context(), userID)
	if err != nil {
		response.InternalServerError(w, "Failed to get vitals history")
		return
	}

	response.Success(w, http.StatusOK, "Vitals history retrieved successfully", readings)
}

// Trend serves chart series for the last N days (?days=30).
func (h *VitalsHandler) Trend(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Not authenticated")
		return
	}

	days := 0
	if raw := r.URL.Query().Get("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			response.Error(w, http.StatusBadRequest, "Invalid days parameter", nil)
			return
		}
		days = parsed
	}

	trend, err := h.vitalsUsecase.Trend(r.Context(), userID, days)
	if err != nil {
		response.InternalServerError(w, "Failed to get vitals trend")
		return
	}

	response.Success(w, http.StatusOK, "Vitals trend retrieved successfully", trend)
}
