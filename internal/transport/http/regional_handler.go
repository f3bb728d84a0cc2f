package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	apierrors "cbpmetrics/internal/errors"
	"cbpmetrics/internal/middleware"
	"cbpmetrics/internal/regional"
)

// RegionalHandler serves the regional indicator endpoints
type RegionalHandler struct {
	service      RegionalServiceInterface
	validator    *middleware.Validator
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
}

// NewRegionalHandler creates a new regional handler
func NewRegionalHandler(service RegionalServiceInterface, validator *middleware.Validator, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *RegionalHandler {
	return &RegionalHandler{
		service:      service,
		validator:    validator,
		logger:       logger.With(slog.String("component", "regional_handler")),
		errorHandler: errorHandler,
	}
}

// Routes returns the regional routes, mounted under /api/v1/regional
func (h *RegionalHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Post("/location-quotient", h.LocationQuotient)
	r.Post("/location-quotient/table", h.TableLocationQuotient)
	r.Post("/shift-share", h.ShiftShare)
	r.Post("/specialization", h.Specialization)

	return r
}

// LocationQuotient handles POST /api/v1/regional/location-quotient
func (h *RegionalHandler) LocationQuotient(w http.ResponseWriter, r *http.Request) {
	var req PairRequest
	if err := h.validator.Decode(w, r, &req); err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	small, large, err := h.pair(req)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	res, err := h.service.LocationQuotient(r.Context(), small, large)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	render.JSON(w, r, newLocationQuotientResponse(res))
}

// ShiftShare handles POST /api/v1/regional/shift-share
func (h *RegionalHandler) ShiftShare(w http.ResponseWriter, r *http.Request) {
	var req ShiftShareRequest
	if err := h.validator.Decode(w, r, &req); err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	total := h.service.TotalCode()
	fields := []struct {
		name string
		dto  SeriesDTO
	}{
		{"small_old", req.SmallOld},
		{"small_new", req.SmallNew},
		{"large_old", req.LargeOld},
		{"large_new", req.LargeNew},
	}
	series := make([]regional.Series, len(fields))
	for i, f := range fields {
		s, err := f.dto.toSeries(f.name, total)
		if err != nil {
			h.errorHandler.HandleError(w, r, err)
			return
		}
		series[i] = s
	}

	res, err := h.service.ShiftShare(r.Context(), series[0], series[1], series[2], series[3])
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	render.JSON(w, r, newShiftShareResponse(res))
}

// Specialization handles POST /api/v1/regional/specialization
func (h *RegionalHandler) Specialization(w http.ResponseWriter, r *http.Request) {
	var req PairRequest
	if err := h.validator.Decode(w, r, &req); err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	small, large, err := h.pair(req)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	res, err := h.service.Specialization(r.Context(), small, large)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	render.JSON(w, r, newSpecializationResponse(res))
}

// TableLocationQuotient handles POST /api/v1/regional/location-quotient/table
func (h *RegionalHandler) TableLocationQuotient(w http.ResponseWriter, r *http.Request) {
	var req TableRequest
	if err := h.validator.Decode(w, r, &req); err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	var reference *regional.Series
	if req.Reference != nil {
		s, err := req.Reference.toSeries("reference", h.service.TotalCode())
		if err != nil {
			h.errorHandler.HandleError(w, r, err)
			return
		}
		reference = &s
	}

	table := req.toTable()
	switch req.Level {
	case "":
		table = h.service.SelectLevel(table)
	case "two_digit":
		table = table.TwoDigit()
	case "three_digit":
		table = table.ThreeDigit()
	}

	rows, err := h.service.TableLocationQuotient(r.Context(), table, reference)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	h.logger.DebugContext(r.Context(), "table location quotient served",
		slog.Int("rows", len(rows)),
		slog.String("request_id", middleware.GetRequestID(r.Context())))

	render.JSON(w, r, newTableResponse(rows))
}

func (h *RegionalHandler) pair(req PairRequest) (regional.Series, regional.Series, error) {
	total := h.service.TotalCode()
	small, err := req.Small.toSeries("small", total)
	if err != nil {
		return regional.Series{}, regional.Series{}, err
	}
	large, err := req.Large.toSeries("large", total)
	if err != nil {
		return regional.Series{}, regional.Series{}, err
	}
	return small, large, nil
}
