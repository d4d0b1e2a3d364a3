package catalog

import (
	"context"
	"errors"
	"fmt"

	"myStreamSaver/domain"
	"myStreamSaver/pkg/logger"
)

// ServiceRepository contract interface
type ServiceRepository interface {
	Create(ctx context.Context, service *domain.StreamingService) error
	FindByID(ctx context.Context, id string) (domain.StreamingService, error)
	FindAll(ctx context.Context) ([]domain.StreamingService, error)
	FindActive(ctx context.Context) ([]domain.StreamingService, error)
	Update(ctx context.Context, service *domain.StreamingService) error
	Delete(ctx context.Context, id string) error
}

type catalogService struct {
	serviceRepo ServiceRepository
}

func NewCatalogService(serviceRepo ServiceRepository) *catalogService {
	return &catalogService{
		serviceRepo: serviceRepo,
	}
}

func (s *catalogService) GetAllServices(ctx context.Context) ([]domain.StreamingService, error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when get all services")
		return nil, fmt.Errorf("context error: %w", err)
	}

	services, err := s.serviceRepo.FindAll(ctx)
	if err != nil {
		logger.Error("failed to find all streaming services", err)
		return nil, err
	}

	return services, nil
}

// GetActiveServices returns the services eligible for optimization.
func (s *catalogService) GetActiveServices(ctx context.Context) ([]domain.StreamingService, error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when get active services")
		return nil, fmt.Errorf("context error: %w", err)
	}

	services, err := s.serviceRepo.FindActive(ctx)
	if err != nil {
		logger.Error("failed to find active streaming services", err)
		return nil, err
	}

	return services, nil
}

func (s *catalogService) GetServiceByID(ctx context.Context, id string) (*domain.StreamingService, error) {
	if id == "" {
		logger.Error("invalid streaming service id")
		return nil, errors.New("invalid streaming service id")
	}

	if err := ctx.Err(); err != nil {
		logger.Error("context error when get service by id")
		return nil, fmt.Errorf("context error: %w", err)
	}

	service, err := s.serviceRepo.FindByID(ctx, id)
	if err != nil {
		logger.Error("failed to find streaming service by id", err.Error())
		return nil, err
	}

	return &service, nil
}

func (s *catalogService) CreateService(ctx context.Context, service *domain.StreamingService) (*domain.StreamingService, error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when create service")
		return nil, fmt.Errorf("context error: %w", err)
	}

	// Validation
	if service.ID == "" {
		logger.Error("invalid service data: service id is required")
		return nil, errors.New("service id is required")
	}

	if service.Name == "" {
		logger.Error("invalid service data: service name is required")
		return nil, errors.New("service name is required")
	}

	if err := s.serviceRepo.Create(ctx, service); err != nil {
		logger.Error("failed to create streaming service", err)
		return nil, err
	}

	logger.Info("streaming service created", "service_id", service.ID)
	return service, nil
}

func (s *catalogService) UpdateService(ctx context.Context, service *domain.StreamingService) error {
	if service.ID == "" {
		logger.Error("invalid streaming service id")
		return errors.New("invalid streaming service id")
	}

	if err := ctx.Err(); err != nil {
		logger.Error("context error when update service")
		return fmt.Errorf("context error: %w", err)
	}

	if err := s.serviceRepo.Update(ctx, service); err != nil {
		logger.Error("failed to update streaming service", err)
		return err
	}

	logger.Info("streaming service updated", "service_id", service.ID)
	return nil
}

func (s *catalogService) DeleteService(ctx context.Context, id string) error {
	if id == "" {
		logger.Error("invalid streaming service id")
		return errors.New("invalid streaming service id")
	}

	if err := ctx.Err(); err != nil {
		logger.Error("context error when delete service")
		return fmt.Errorf("context error: %w", err)
	}

	if err := s.serviceRepo.Delete(ctx, id); err != nil {
		logger.Error("failed to delete streaming service", err)
		return err
	}

	logger.Info("streaming service deleted", "service_id", id)
	return nil
}
