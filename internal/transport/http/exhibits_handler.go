package http

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	apperrors "crimescope/internal/errors"
	"crimescope/pkg/contracts/domain"
)

// ExhibitServiceInterface is the service contract the handler depends on.
type ExhibitServiceInterface interface {
	Overview(ctx context.Context) *domain.AggregatedTable
	Rankings(ctx context.Context, category domain.Category, topN int) ([]domain.RankedEntry, error)
	TimeSeries(ctx context.Context, hoodID int, category domain.Category) ([]domain.TimeSeriesPoint, error)
}

// ExhibitsHandler serves the fixed report exhibits.
type ExhibitsHandler struct {
	service      ExhibitServiceInterface
	defaultTopN  int
	logger       *slog.Logger
	errorHandler *apperrors.ErrorHandler
	validate     *validator.Validate
}

// NewExhibitsHandler creates the exhibits handler.
func NewExhibitsHandler(service ExhibitServiceInterface, defaultTopN int, logger *slog.Logger, errorHandler *apperrors.ErrorHandler) *ExhibitsHandler {
	return &ExhibitsHandler{
		service:      service,
		defaultTopN:  defaultTopN,
		logger:       logger.With(slog.String("component", "exhibits_handler")),
		errorHandler: errorHandler,
		validate:     validator.New(),
	}
}

// Routes returns the exhibit routes.
func (h *ExhibitsHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Get("/overview", h.GetOverview)
	r.Get("/rankings/{category}", h.GetRankings)
	r.Get("/timeseries/{hoodID}/{category}", h.GetTimeSeries)

	return r
}

// rankingQuery is the validated query of the rankings exhibit.
type rankingQuery struct {
	Top int `validate:"min=1,max=1000"`
}

// GetOverview handles GET /overview.
func (h *ExhibitsHandler) GetOverview(w http.ResponseWriter, r *http.Request) {
	table := h.service.Overview(r.Context())

	render.JSON(w, r, map[string]interface{}{
		"rows":       table.Rows,
		"categories": table.Categories,
		"count":      len(table.Rows),
	})
}

// GetRankings handles GET /rankings/{category}?top=N.
func (h *ExhibitsHandler) GetRankings(w http.ResponseWriter, r *http.Request) {
	category, ok := domain.ParseCategory(chi.URLParam(r, "category"))
	if !ok {
		h.errorHandler.HandleError(w, r, apperrors.NewUnknownCategoryError(chi.URLParam(r, "category")))
		return
	}

	query := rankingQuery{Top: h.defaultTopN}
	if raw := r.URL.Query().Get("top"); raw != "" {
		top, err := strconv.Atoi(raw)
		if err != nil {
			h.errorHandler.HandleError(w, r, apperrors.NewInvalidArgumentError("top must be an integer"))
			return
		}
		query.Top = top
	}
	if err := h.validate.Struct(query); err != nil {
		h.errorHandler.HandleError(w, r, apperrors.NewInvalidArgumentError("top must be between 1 and 1000"))
		return
	}

	entries, err := h.service.Rankings(r.Context(), category, query.Top)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"category": category,
		"entries":  entries,
		"count":    len(entries),
	})
}

// GetTimeSeries handles GET /timeseries/{hoodID}/{category}.
func (h *ExhibitsHandler) GetTimeSeries(w http.ResponseWriter, r *http.Request) {
	hoodID, err := strconv.Atoi(chi.URLParam(r, "hoodID"))
	if err != nil {
		h.errorHandler.HandleError(w, r, apperrors.NewInvalidArgumentError("hoodID must be an integer"))
		return
	}

	category, ok := domain.ParseCategory(chi.URLParam(r, "category"))
	if !ok {
		h.errorHandler.HandleError(w, r, apperrors.NewUnknownCategoryError(chi.URLParam(r, "category")))
		return
	}

	points, err := h.service.TimeSeries(r.Context(), hoodID, category)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"hood_id":  hoodID,
		"category": category,
		"points":   points,
		"count":    len(points),
	})
}
