package rest

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"myStreamSaver/business/titlesearch"
	"myStreamSaver/domain"
	"myStreamSaver/pkg/logger"
)

type (
	TitleHandler struct {
		validate      *validator.Validate
		searchService SearchService
		timeout       time.Duration
	}

	SearchService interface {
		SearchTitles(ctx context.Context, query string) ([]domain.Title, error)
	}

	SearchQuery struct {
		Q string `query:"q" validate:"required"`
	}
)

func NewTitleHandler(searchService SearchService) *TitleHandler {
	return &TitleHandler{
		validate:      validator.New(),
		searchService: searchService,
		timeout:       20 * time.Second,
	}
}

func (h *TitleHandler) SearchTitles(c echo.Context) error {
	var q SearchQuery
	if err := c.Bind(&q); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if err := h.validate.Struct(&q); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	titles, err := h.searchService.SearchTitles(ctx, q.Q)
	if err != nil {
		if errors.Is(err, titlesearch.ErrEmptyQuery) {
			return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
		}
		logger.Error("failed to search titles", err)
		return c.JSON(http.StatusBadGateway, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(titles))
}
