package fiber

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"audio-tour-service/internal/logging"
	"audio-tour-service/internal/statistics/core/domain"
	"audio-tour-service/internal/statistics/core/usecase"

	"github.com/gofiber/fiber/v2"
)

type GetStatisticsUseCase interface {
	Execute(ctx context.Context, in usecase.GetStatisticsInput) (*domain.Statistics, error)
}

type StatisticsHandler struct {
	uc  GetStatisticsUseCase
	loc *time.Location
}

// NewStatisticsHandler builds the handler. Timestamps without an explicit
// offset are read in loc.
func NewStatisticsHandler(uc GetStatisticsUseCase, loc *time.Location) *StatisticsHandler {
	if loc == nil {
		loc = time.UTC
	}
	return &StatisticsHandler{uc: uc, loc: loc}
}

// Register mounts the four statistics endpoints on r.
func (h *StatisticsHandler) Register(r fiber.Router) {
	r.Get("/user", h.GetUserStatistics)
	r.Get("/excursion", h.GetExcursionStatistics)
	r.Get("/listening", h.GetListeningStatistics)
	r.Get("/sales", h.GetSalesStatistics)
}

// GetUserStatistics godoc
// @Summary New active users per time bucket
// @Tags Statistics
// @Produce json
// @Security BearerAuth
// @Param start query string false "Period start (RFC 3339 or YYYY-MM-DD; URL-encode + as %2B)"
// @Param end query string false "Period end (RFC 3339 or YYYY-MM-DD; URL-encode + as %2B)"
// @Success 200 {object} StatisticsResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /statistics/user [get]
func (h *StatisticsHandler) GetUserStatistics(c *fiber.Ctx) error {
	return h.serve(c, domain.KindUsers)
}

// GetExcursionStatistics godoc
// @Summary Purchased excursions per time bucket
// @Tags Statistics
// @Produce json
// @Security BearerAuth
// @Param start query string false "Period start (RFC 3339 or YYYY-MM-DD; URL-encode + as %2B)"
// @Param end query string false "Period end (RFC 3339 or YYYY-MM-DD; URL-encode + as %2B)"
// @Success 200 {object} StatisticsResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /statistics/excursion [get]
func (h *StatisticsHandler) GetExcursionStatistics(c *fiber.Ctx) error {
	return h.serve(c, domain.KindExcursions)
}

// GetListeningStatistics godoc
// @Summary Track listenings per time bucket
// @Tags Statistics
// @Produce json
// @Security BearerAuth
// @Param start query string false "Period start (RFC 3339 or YYYY-MM-DD; URL-encode + as %2B)"
// @Param end query string false "Period end (RFC 3339 or YYYY-MM-DD; URL-encode + as %2B)"
// @Success 200 {object} StatisticsResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /statistics/listening [get]
func (h *StatisticsHandler) GetListeningStatistics(c *fiber.Ctx) error {
	return h.serve(c, domain.KindListening)
}

// GetSalesStatistics godoc
// @Summary Sales amount per time bucket
// @Description Sum of excursion price times purchases inside every bucket
// @Tags Statistics
// @Produce json
// @Security BearerAuth
// @Param start query string false "Period start (RFC 3339 or YYYY-MM-DD; URL-encode + as %2B)"
// @Param end query string false "Period end (RFC 3339 or YYYY-MM-DD; URL-encode + as %2B)"
// @Success 200 {object} StatisticsResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /statistics/sales [get]
func (h *StatisticsHandler) GetSalesStatistics(c *fiber.Ctx) error {
	return h.serve(c, domain.KindSales)
}

func (h *StatisticsHandler) serve(c *fiber.Ctx, kind domain.Kind) error {
	start, err := parseTimestamp(c.Query("start", ""), h.loc)
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Error:   "invalid_query",
			Message: "invalid 'start' parameter",
		})
	}
	end, err := parseTimestamp(c.Query("end", ""), h.loc)
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Error:   "invalid_query",
			Message: "invalid 'end' parameter",
		})
	}

	res, err := h.uc.Execute(c.UserContext(), usecase.GetStatisticsInput{
		Kind:  kind,
		Start: start,
		End:   end,
	})
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrInvalidTimeInterval):
			return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
				Error:   "invalid_time_interval",
				Message: "Invalid time interval",
			})
		case errors.Is(err, usecase.ErrInvalidStatisticsKind):
			return c.Status(http.StatusNotFound).JSON(ErrorResponse{
				Error:   "unknown_statistics",
				Message: err.Error(),
			})
		default:
			logging.Ctx(c.UserContext()).Error().
				Err(err).
				Str("kind", string(kind)).
				Msg("statistics query failed")
			return c.Status(http.StatusInternalServerError).JSON(ErrorResponse{
				Error: "internal_server_error",
			})
		}
	}

	return c.Status(http.StatusOK).JSON(StatisticsResponse{
		Type: string(res.Granularity),
		Data: SeriesData(res.Values),
	})
}

var timestampLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02",
}

// parseTimestamp returns nil for an empty value. RFC 3339 values keep their
// offset (a positive offset may come in with its '+' decoded to a space); the
// other layouts are read in loc.
func parseTimestamp(raw string, loc *time.Location) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339Nano, raw); err == nil {
		return &t, nil
	}
	// an unescaped '+' before the offset arrives as a space
	if i := strings.LastIndexByte(raw, ' '); i > 0 && strings.ContainsRune(raw[:i], 'T') {
		if t, err := time.Parse(time.RFC3339Nano, raw[:i]+"+"+raw[i+1:]); err == nil {
			return &t, nil
		}
	}
	for _, layout := range timestampLayouts {
		if t, err := time.ParseInLocation(layout, raw, loc); err == nil {
			return &t, nil
		}
	}
	return nil, fmt.Errorf("unsupported timestamp %q", raw)
}
