package doctor

import (
	"context"

	"github.com/google/uuid"

	"github.com/medhq/hospital-api/internal/model"
	"github.com/medhq/hospital-api/internal/repository"
)

type Service struct {
	repo repository.DoctorRepository
}

func NewService(repo repository.DoctorRepository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, req *model.CreateDoctorRequest) (*model.Doctor, error) {
	doctor := &model.Doctor{
		ID:             uuid.New(),
		DoctorID:       req.DoctorID,
		Name:           req.Name,
		Specialization: req.Specialization,
		Phone:          req.Phone,
		FeePerVisit:    *req.FeePerVisit,
	}

	if err := s.repo.Create(ctx, doctor); err != nil {
		return nil, err
	}
	return doctor, nil
}

func (s *Service) List(ctx context.Context) ([]*model.Doctor, error) {
	return s.repo.List(ctx)
}

// Update applies the provided fields to an existing registry entry.
func (s *Service) Update(ctx context.Context, id uuid.UUID, req *model.UpdateDoctorRequest) (*model.Doctor, error) {
	doctor, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		doctor.Name = *req.Name
	}
	if req.Specialization != nil {
		doctor.Specialization = *req.Specialization
	}
	if req.Phone != nil {
		doctor.Phone = *req.Phone
	}
	if req.FeePerVisit != nil {
		doctor.FeePerVisit = *req.FeePerVisit
	}

	if err := s.repo.Update(ctx, doctor); err != nil {
		return nil, err
	}
	return doctor, nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}
