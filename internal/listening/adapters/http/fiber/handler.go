package fiber

import (
	"context"
	"errors"
	"net/http"

	"audio-tour-service/internal/auth"
	"audio-tour-service/internal/listening/core/usecase"
	"audio-tour-service/internal/logging"

	"github.com/gofiber/fiber/v2"
)

type RecordListeningUseCase interface {
	Execute(ctx context.Context, in usecase.RecordListeningInput) (bool, error)
	BulkRecord(ctx context.Context, in usecase.BulkRecordInput) (usecase.BulkRecordResult, error)
}

type ListeningHandler struct {
	uc RecordListeningUseCase
}

func NewListeningHandler(uc RecordListeningUseCase) *ListeningHandler {
	return &ListeningHandler{uc: uc}
}

func (h *ListeningHandler) Register(r fiber.Router) {
	r.Post("/", h.RecordListening)
	r.Post("/bulk", h.BulkRecordListening)
}

// RecordListening godoc
// @Summary Record a track listening
// @Description Stores one listening for the authenticated user with idempotency handling
// @Tags Listening
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body RecordListeningRequest true "Listening payload"
// @Success 201 {object} RecordListeningResponse
// @Success 200 {object} RecordListeningResponse "Duplicate listening"
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /listening [post]
func (h *ListeningHandler) RecordListening(c *fiber.Ctx) error {
	user, ok := auth.PrincipalFromContext(c.UserContext())
	if !ok {
		return c.Status(http.StatusUnauthorized).JSON(ErrorResponse{Error: "unauthorized"})
	}

	var req RecordListeningRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{Error: "invalid_json"})
	}

	created, err := h.uc.Execute(c.UserContext(), usecase.RecordListeningInput{
		UserID:           user.ID,
		ExcursionPointID: req.ExcursionPointID,
		Timestamp:        req.Timestamp,
	})
	if err != nil {
		return h.fail(c, err)
	}

	if !created {
		return c.Status(http.StatusOK).JSON(RecordListeningResponse{Status: "duplicate"})
	}
	return c.Status(http.StatusCreated).JSON(RecordListeningResponse{Status: "created"})
}

// BulkRecordListening godoc
// @Summary Bulk record listenings
// @Description Validates every item first, then stores them individually
// @Tags Listening
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body BulkRecordListeningRequest true "Bulk listening payload"
// @Success 201 {object} BulkRecordListeningResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /listening/bulk [post]
func (h *ListeningHandler) BulkRecordListening(c *fiber.Ctx) error {
	user, ok := auth.PrincipalFromContext(c.UserContext())
	if !ok {
		return c.Status(http.StatusUnauthorized).JSON(ErrorResponse{Error: "unauthorized"})
	}

	var req BulkRecordListeningRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{Error: "invalid_json"})
	}
	if len(req.Listenings) == 0 {
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{Error: "listenings_list_required"})
	}

	inputs := make([]usecase.RecordListeningInput, len(req.Listenings))
	for i, l := range req.Listenings {
		inputs[i] = usecase.RecordListeningInput{
			UserID:           user.ID,
			ExcursionPointID: l.ExcursionPointID,
			Timestamp:        l.Timestamp,
		}
	}

	res, err := h.uc.BulkRecord(c.UserContext(), usecase.BulkRecordInput{Listenings: inputs})
	if err != nil {
		return h.fail(c, err)
	}

	return c.Status(http.StatusCreated).JSON(BulkRecordListeningResponse{
		Created:    res.Created,
		Duplicates: res.Duplicates,
	})
}

func (h *ListeningHandler) fail(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, usecase.ErrInvalidListening),
		errors.Is(err, usecase.ErrFutureTime):
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Error:   "invalid_listening",
			Message: err.Error(),
		})
	case errors.Is(err, usecase.ErrUnknownExcursionPoint):
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Error:   "unknown_excursion_point",
			Message: "excursion point does not exist",
		})
	default:
		logging.Ctx(c.UserContext()).Error().Err(err).Msg("record listening failed")
		return c.Status(http.StatusInternalServerError).JSON(ErrorResponse{
			Error: "internal_server_error",
		})
	}
}
