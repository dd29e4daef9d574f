package report

import (
	"context"

	"github.com/medhq/hospital-api/internal/model"
	"github.com/medhq/hospital-api/internal/repository"
	apperrors "github.com/medhq/hospital-api/pkg/errors"
)

// topDiseaseLimit caps the top-diseases report.
const topDiseaseLimit = 10

// Service answers search and aggregate queries over the patient collection.
// Results are computed at call time; nothing is cached or materialized.
type Service struct {
	repo repository.PatientRepository
}

func NewService(repo repository.PatientRepository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Search(ctx context.Context, filters *model.PatientSearch) ([]*model.Patient, error) {
	if filters.SortBy != "" && !model.SortFields[filters.SortBy] {
		return nil, apperrors.Validationf("unsupported sort field %q", filters.SortBy)
	}
	switch filters.Order {
	case "", model.OrderAsc, model.OrderDesc:
	default:
		return nil, apperrors.Validationf("unsupported sort order %q", filters.Order)
	}
	return s.repo.Search(ctx, filters)
}

func (s *Service) Summary(ctx context.Context) (*model.Summary, error) {
	return s.repo.Summary(ctx)
}

func (s *Service) ByCity(ctx context.Context) ([]model.CityCount, error) {
	return s.repo.CountByCity(ctx)
}

func (s *Service) BySpecialization(ctx context.Context) ([]model.SpecializationCount, error) {
	return s.repo.CountBySpecialization(ctx)
}

func (s *Service) TopDiseases(ctx context.Context) ([]model.DiseaseCount, error) {
	return s.repo.TopDiseases(ctx, topDiseaseLimit)
}

func (s *Service) MonthlyRevenue(ctx context.Context) ([]model.MonthlyRevenue, error) {
	return s.repo.MonthlyRevenue(ctx)
}
