package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/medhq/hospital-api/internal/model"
)

// UserRepository persists staff accounts.
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	Get(ctx context.Context, id uuid.UUID) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
}

// DoctorRepository persists doctor registry entries.
type DoctorRepository interface {
	Create(ctx context.Context, doctor *model.Doctor) error
	List(ctx context.Context) ([]*model.Doctor, error)
	Get(ctx context.Context, id uuid.UUID) (*model.Doctor, error)
	Update(ctx context.Context, doctor *model.Doctor) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// PatientRepository persists patient aggregates and answers search and
// reporting queries over the collection.
type PatientRepository interface {
	Create(ctx context.Context, patient *model.Patient) error
	List(ctx context.Context) ([]*model.Patient, error)
	Get(ctx context.Context, id uuid.UUID) (*model.Patient, error)
	Update(ctx context.Context, patient *model.Patient) error
	Delete(ctx context.Context, id uuid.UUID) error

	// Mutate loads the aggregate under a row lock, applies fn and persists
	// the result in one transaction. fn errors abort the write.
	Mutate(ctx context.Context, id uuid.UUID, fn func(*model.Patient) error) (*model.Patient, error)

	Search(ctx context.Context, filters *model.PatientSearch) ([]*model.Patient, error)
	Summary(ctx context.Context) (*model.Summary, error)
	CountByCity(ctx context.Context) ([]model.CityCount, error)
	CountBySpecialization(ctx context.Context) ([]model.SpecializationCount, error)
	TopDiseases(ctx context.Context, limit int) ([]model.DiseaseCount, error)
	MonthlyRevenue(ctx context.Context) ([]model.MonthlyRevenue, error)
}
