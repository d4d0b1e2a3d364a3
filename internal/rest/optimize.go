package rest

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"myStreamSaver/business/availability"
	"myStreamSaver/domain"
	"myStreamSaver/pkg/logger"
	"myStreamSaver/pkg/metrics"
)

// ResponseError represent the response error struct
type ResponseError struct {
	Message string `json:"message"`
}

type (
	OptimizeHandler struct {
		validate            *validator.Validate
		catalogService      CatalogService
		availabilityService AvailabilityService
		optimizerService    OptimizerService
		timeout             time.Duration
	}

	CatalogService interface {
		GetAllServices(ctx context.Context) ([]domain.StreamingService, error)
		GetActiveServices(ctx context.Context) ([]domain.StreamingService, error)
		GetServiceByID(ctx context.Context, id string) (*domain.StreamingService, error)
		CreateService(ctx context.Context, service *domain.StreamingService) (*domain.StreamingService, error)
		UpdateService(ctx context.Context, service *domain.StreamingService) error
		DeleteService(ctx context.Context, id string) error
	}

	AvailabilityService interface {
		GetAvailabilityBatch(ctx context.Context, titleIDs []string) (map[string]domain.TitleAvailability, error)
	}

	OptimizerService interface {
		Optimize(
			ctx context.Context,
			req domain.OptimizationRequest,
			services []domain.StreamingService,
			availability map[string]domain.TitleAvailability,
		) (domain.OptimizationReport, error)
	}

	OptimizeRequest struct {
		MustHave   []string `json:"must_have" validate:"required,min=1,dive,required"`
		NiceToHave []string `json:"nice_to_have" validate:"dive,required"`
	}
)

func NewOptimizeHandler(
	catalogService CatalogService,
	availabilityService AvailabilityService,
	optimizerService OptimizerService,
) *OptimizeHandler {
	return &OptimizeHandler{
		validate:            validator.New(),
		catalogService:      catalogService,
		availabilityService: availabilityService,
		optimizerService:    optimizerService,
		timeout:             60 * time.Second,
	}
}

// Optimize resolves the catalog and title availability, then asks the solver
// for the ranked subscription bundles.
func (h *OptimizeHandler) Optimize(c echo.Context) error {
	start := time.Now()
	metrics.OptimizeRequests.Inc()

	var req OptimizeRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if err := h.validate.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	services, err := h.catalogService.GetActiveServices(ctx)
	if err != nil {
		logger.Error("failed to load streaming services", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	titleIDs := uniqueTitleIDs(req.MustHave, req.NiceToHave)
	avail, err := h.availabilityService.GetAvailabilityBatch(ctx, titleIDs)
	if err != nil {
		logger.Error("failed to resolve availability", err)
		switch {
		case errors.Is(err, availability.ErrQuotaExceeded),
			errors.Is(err, availability.ErrDailyLimitReached):
			return c.JSON(http.StatusTooManyRequests, ResponseError{Message: err.Error()})
		case errors.Is(err, availability.ErrAllTitlesFailed):
			return c.JSON(http.StatusBadGateway, ResponseError{Message: err.Error()})
		default:
			return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
		}
	}

	report, err := h.optimizerService.Optimize(ctx, domain.OptimizationRequest{
		MustHave:   req.MustHave,
		NiceToHave: req.NiceToHave,
	}, services, avail)
	if err != nil {
		logger.Error("failed to optimize subscriptions", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	metrics.OptimizeLatency.Observe(time.Since(start).Seconds())
	return c.JSON(http.StatusOK, fres.Response.StatusOK(report))
}

func uniqueTitleIDs(mustHave, niceToHave []string) []string {
	seen := make(map[string]struct{}, len(mustHave)+len(niceToHave))
	ids := make([]string, 0, len(mustHave)+len(niceToHave))
	for _, id := range mustHave {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	for _, id := range niceToHave {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	return ids
}
