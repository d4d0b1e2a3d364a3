package postgres

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"myStreamSaver/domain"
)

type ServiceRepository struct {
	DB *gorm.DB
}

func NewServiceRepository(db *gorm.DB) *ServiceRepository {
	return &ServiceRepository{
		DB: db,
	}
}

func (r *ServiceRepository) Create(ctx context.Context, service *domain.StreamingService) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if err := r.DB.WithContext(ctx).Create(service).Error; err != nil {
		return fmt.Errorf("failed to create streaming service: %w", err)
	}

	return nil
}

func (r *ServiceRepository) FindByID(ctx context.Context, id string) (domain.StreamingService, error) {
	if err := ctx.Err(); err != nil {
		return domain.StreamingService{}, fmt.Errorf("context error: %w", err)
	}

	var service domain.StreamingService

	err := r.DB.WithContext(ctx).First(&service, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.StreamingService{}, domain.ErrNotFound
		}
		return domain.StreamingService{}, fmt.Errorf("failed to find streaming service: %w", err)
	}

	return service, nil
}

func (r *ServiceRepository) FindAll(ctx context.Context) ([]domain.StreamingService, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var services []domain.StreamingService
	err := r.DB.WithContext(ctx).Order("id").Find(&services).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find streaming services: %w", err)
	}

	return services, nil
}

func (r *ServiceRepository) FindActive(ctx context.Context) ([]domain.StreamingService, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var services []domain.StreamingService
	err := r.DB.WithContext(ctx).Where("active = ?", true).Order("id").Find(&services).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find active streaming services: %w", err)
	}

	return services, nil
}

func (r *ServiceRepository) Update(ctx context.Context, service *domain.StreamingService) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	var existing domain.StreamingService
	if err := r.DB.WithContext(ctx).First(&existing, "id = ?", service.ID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("failed to find streaming service: %w", err)
	}

	updateData := map[string]interface{}{
		"name":               service.Name,
		"monthly_cost_cents": service.MonthlyCostCents,
		"active":             service.Active,
		"provider_ids":       service.ProviderIDs,
	}

	if err := r.DB.WithContext(ctx).Model(&existing).Updates(updateData).Error; err != nil {
		return fmt.Errorf("failed to update streaming service: %w", err)
	}

	return nil
}

func (r *ServiceRepository) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	result := r.DB.WithContext(ctx).Delete(&domain.StreamingService{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete streaming service: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}

	return nil
}
