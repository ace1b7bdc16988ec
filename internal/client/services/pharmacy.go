package services

import (
	"context"
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/medreminder/internal/client/endpoints"
	"github.com/dmitrijs2005/medreminder/internal/client/models"
)

type PharmacyService interface {
	List(ctx context.Context) ([]models.Pharmacy, error)
	Nearby(ctx context.Context, lat, long float64) ([]models.Pharmacy, error)
	Get(ctx context.Context, id int64) (*models.Pharmacy, error)
	Create(ctx context.Context, in models.PharmacyInput) (*models.Pharmacy, error)
	Update(ctx context.Context, id int64, in models.PharmacyInput) (*models.Pharmacy, error)
	Delete(ctx context.Context, id int64) error
}

type pharmacyService struct {
	exec Executor
}

func NewPharmacyService(exec Executor) PharmacyService {
	return &pharmacyService{exec: exec}
}

func (s *pharmacyService) List(ctx context.Context) ([]models.Pharmacy, error) {
	list := []models.Pharmacy{}
	if err := s.exec.DoJSON(ctx, authed(http.MethodGet, endpoints.Pharmacies, nil), &list); err != nil {
		return nil, fmt.Errorf("list pharmacies: %w", err)
	}
	return list, nil
}

func (s *pharmacyService) Nearby(ctx context.Context, lat, long float64) ([]models.Pharmacy, error) {
	list := []models.Pharmacy{}
	if err := s.exec.DoJSON(ctx, authed(http.MethodGet, endpoints.Nearby(lat, long), nil), &list); err != nil {
		return nil, fmt.Errorf("nearby pharmacies: %w", err)
	}
	return list, nil
}

func (s *pharmacyService) Get(ctx context.Context, id int64) (*models.Pharmacy, error) {
	p, err := doOne[models.Pharmacy](ctx, s.exec, authed(http.MethodGet, endpoints.Pharmacy(id), nil))
	if err != nil {
		return nil, fmt.Errorf("get pharmacy %d: %w", id, err)
	}
	return p, nil
}

func (s *pharmacyService) Create(ctx context.Context, in models.PharmacyInput) (*models.Pharmacy, error) {
	p, err := doOne[models.Pharmacy](ctx, s.exec, authed(http.MethodPost, endpoints.Pharmacies, in))
	if err != nil {
		return nil, fmt.Errorf("create pharmacy: %w", err)
	}
	return p, nil
}

func (s *pharmacyService) Update(ctx context.Context, id int64, in models.PharmacyInput) (*models.Pharmacy, error) {
	p, err := doOne[models.Pharmacy](ctx, s.exec, authed(http.MethodPut, endpoints.Pharmacy(id), in))
	if err != nil {
		return nil, fmt.Errorf("update pharmacy %d: %w", id, err)
	}
	return p, nil
}

func (s *pharmacyService) Delete(ctx context.Context, id int64) error {
	if _, err := s.exec.Do(ctx, authed(http.MethodDelete, endpoints.Pharmacy(id), nil)); err != nil {
		return fmt.Errorf("delete pharmacy %d: %w", id, err)
	}
	return nil
}
