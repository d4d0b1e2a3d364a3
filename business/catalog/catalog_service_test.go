package catalog

import (
	"context"
	"errors"
	"testing"

	"myStreamSaver/domain"
)

type fakeServiceRepo struct {
	services []domain.StreamingService
	created  []domain.StreamingService
	updated  []domain.StreamingService
	deleted  []string
	err      error
}

func (r *fakeServiceRepo) Create(ctx context.Context, service *domain.StreamingService) error {
	if r.err != nil {
		return r.err
	}
	r.created = append(r.created, *service)
	return nil
}

func (r *fakeServiceRepo) FindByID(ctx context.Context, id string) (domain.StreamingService, error) {
	if r.err != nil {
		return domain.StreamingService{}, r.err
	}
	for _, svc := range r.services {
		if svc.ID == id {
			return svc, nil
		}
	}
	return domain.StreamingService{}, domain.ErrNotFound
}

func (r *fakeServiceRepo) FindAll(ctx context.Context) ([]domain.StreamingService, error) {
	if r.err != nil {
		return nil, r.err
	}
	return r.services, nil
}

func (r *fakeServiceRepo) FindActive(ctx context.Context) ([]domain.StreamingService, error) {
	if r.err != nil {
		return nil, r.err
	}
	active := make([]domain.StreamingService, 0, len(r.services))
	for _, svc := range r.services {
		if svc.Active {
			active = append(active, svc)
		}
	}
	return active, nil
}

func (r *fakeServiceRepo) Update(ctx context.Context, service *domain.StreamingService) error {
	if r.err != nil {
		return r.err
	}
	r.updated = append(r.updated, *service)
	return nil
}

func (r *fakeServiceRepo) Delete(ctx context.Context, id string) error {
	if r.err != nil {
		return r.err
	}
	r.deleted = append(r.deleted, id)
	return nil
}

func TestGetActiveServicesFiltersInactive(t *testing.T) {
	repo := &fakeServiceRepo{services: []domain.StreamingService{
		{ID: "netflix", Name: "Netflix", MonthlyCostCents: 1549, Active: true},
		{ID: "quibi", Name: "Quibi", MonthlyCostCents: 499, Active: false},
	}}
	s := NewCatalogService(repo)

	got, err := s.GetActiveServices(context.Background())
	if err != nil {
		t.Fatalf("GetActiveServices returned error: %v", err)
	}

	if len(got) != 1 || got[0].ID != "netflix" {
		t.Errorf("expected only netflix, got %+v", got)
	}
}

func TestGetServiceByIDValidation(t *testing.T) {
	s := NewCatalogService(&fakeServiceRepo{})

	if _, err := s.GetServiceByID(context.Background(), ""); err == nil {
		t.Error("expected error for empty id")
	}
}

func TestGetServiceByIDNotFound(t *testing.T) {
	s := NewCatalogService(&fakeServiceRepo{})

	_, err := s.GetServiceByID(context.Background(), "missing")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestCreateServiceValidation(t *testing.T) {
	repo := &fakeServiceRepo{}
	s := NewCatalogService(repo)

	cases := []domain.StreamingService{
		{Name: "Netflix", MonthlyCostCents: 1549},
		{ID: "netflix", MonthlyCostCents: 1549},
	}

	for _, svc := range cases {
		if _, err := s.CreateService(context.Background(), &svc); err == nil {
			t.Errorf("expected validation error for %+v", svc)
		}
	}

	if len(repo.created) != 0 {
		t.Errorf("invalid services must not reach the repository, got %d", len(repo.created))
	}
}

func TestCreateService(t *testing.T) {
	repo := &fakeServiceRepo{}
	s := NewCatalogService(repo)

	svc := &domain.StreamingService{
		ID:               "hulu",
		Name:             "Hulu",
		MonthlyCostCents: 999,
		Active:           true,
	}

	got, err := s.CreateService(context.Background(), svc)
	if err != nil {
		t.Fatalf("CreateService returned error: %v", err)
	}
	if got.ID != "hulu" {
		t.Errorf("expected created service back, got %+v", got)
	}
	if len(repo.created) != 1 {
		t.Fatalf("expected 1 repository create, got %d", len(repo.created))
	}
}

func TestCreateServiceZeroCost(t *testing.T) {
	repo := &fakeServiceRepo{}
	s := NewCatalogService(repo)

	// free and ad-supported tiers have a legitimate zero price
	got, err := s.CreateService(context.Background(), &domain.StreamingService{
		ID:     "tubi",
		Name:   "Tubi",
		Active: true,
	})
	if err != nil {
		t.Fatalf("CreateService returned error: %v", err)
	}
	if got.MonthlyCostCents != 0 {
		t.Errorf("expected zero cost preserved, got %d", got.MonthlyCostCents)
	}
	if len(repo.created) != 1 {
		t.Fatalf("expected 1 repository create, got %d", len(repo.created))
	}
}

func TestDeleteServiceValidation(t *testing.T) {
	repo := &fakeServiceRepo{}
	s := NewCatalogService(repo)

	if err := s.DeleteService(context.Background(), ""); err == nil {
		t.Error("expected error for empty id")
	}
	if len(repo.deleted) != 0 {
		t.Errorf("invalid delete must not reach the repository")
	}
}

func TestUpdateServicePropagatesNotFound(t *testing.T) {
	repo := &fakeServiceRepo{err: domain.ErrNotFound}
	s := NewCatalogService(repo)

	err := s.UpdateService(context.Background(), &domain.StreamingService{
		ID: "ghost", Name: "Ghost", MonthlyCostCents: 100,
	})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
