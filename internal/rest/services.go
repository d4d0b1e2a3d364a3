package rest

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"gorm.io/datatypes"

	"myStreamSaver/domain"
	"myStreamSaver/pkg/logger"
)

type ServiceHandler struct {
	catalogService CatalogService
	validate       *validator.Validate
	timeout        time.Duration
}

func NewServiceHandler(catalogService CatalogService) *ServiceHandler {
	return &ServiceHandler{
		catalogService: catalogService,
		validate:       validator.New(),
		timeout:        10 * time.Second,
	}
}

type CreateServiceRequest struct {
	ID   string `json:"id" validate:"required"`
	Name string `json:"name" validate:"required"`
	// pointer so an explicit zero (free or ad-supported tier) passes required
	MonthlyCostCents *uint             `json:"monthly_cost_cents" validate:"required"`
	Active           *bool             `json:"active"`
	ProviderIDs      datatypes.JSONMap `json:"provider_ids"`
}

type UpdateServiceRequest struct {
	Name             string            `json:"name" validate:"required"`
	MonthlyCostCents *uint             `json:"monthly_cost_cents" validate:"required"`
	Active           *bool             `json:"active" validate:"required"`
	ProviderIDs      datatypes.JSONMap `json:"provider_ids"`
}

func (h *ServiceHandler) GetAllServices(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	services, err := h.catalogService.GetAllServices(ctx)
	if err != nil {
		logger.Error("failed to find all streaming services", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(services))
}

func (h *ServiceHandler) GetServiceByID(c echo.Context) error {
	serviceID := c.Param("id")

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	service, err := h.catalogService.GetServiceByID(ctx, serviceID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(service))
}

func (h *ServiceHandler) CreateService(c echo.Context) error {
	var req CreateServiceRequest

	if err := c.Bind(&req); err != nil {
		logger.Error("failed to bind request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validate.Struct(&req); err != nil {
		logger.Error("failed to validate service request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	service := &domain.StreamingService{
		ID:               req.ID,
		Name:             req.Name,
		MonthlyCostCents: *req.MonthlyCostCents,
		Active:           active,
		ProviderIDs:      req.ProviderIDs,
	}

	newService, err := h.catalogService.CreateService(ctx, service)
	if err != nil {
		logger.Error("failed to create streaming service", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusCreated, fres.Response.StatusCreated(newService))
}

func (h *ServiceHandler) UpdateService(c echo.Context) error {
	serviceID := c.Param("id")

	var req UpdateServiceRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("failed to bind request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validate.Struct(&req); err != nil {
		logger.Error("failed to validate service request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	service := &domain.StreamingService{
		ID:               serviceID,
		Name:             req.Name,
		MonthlyCostCents: *req.MonthlyCostCents,
		Active:           *req.Active,
		ProviderIDs:      req.ProviderIDs,
	}

	if err := h.catalogService.UpdateService(ctx, service); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
		}
		logger.Error("failed to update streaming service", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(service))
}

func (h *ServiceHandler) DeleteService(c echo.Context) error {
	serviceID := c.Param("id")

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	if err := h.catalogService.DeleteService(ctx, serviceID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
		}
		logger.Error("failed to delete streaming service", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(map[string]string{"id": serviceID}))
}
