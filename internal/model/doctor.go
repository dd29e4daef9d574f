package model

import (
	"time"

	"github.com/google/uuid"
)

// Doctor represents a registry entry with an independent lifecycle from the
// snapshot embedded in patient records.
type Doctor struct {
	ID             uuid.UUID `json:"id" db:"id"`
	DoctorID       int64     `json:"doctorId" db:"doctor_id"`
	Name           string    `json:"name" db:"name"`
	Specialization string    `json:"specialization" db:"specialization"`
	Phone          string    `json:"phone" db:"phone"`
	FeePerVisit    float64   `json:"feePerVisit" db:"fee_per_visit"`
	CreatedAt      time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt      time.Time `json:"updatedAt" db:"updated_at"`
}

// CreateDoctorRequest represents doctor creation parameters.
type CreateDoctorRequest struct {
	DoctorID       int64    `json:"doctorId" binding:"required"`
	Name           string   `json:"name" binding:"required"`
	Specialization string   `json:"specialization" binding:"required"`
	Phone          string   `json:"phone" binding:"required"`
	FeePerVisit    *float64 `json:"feePerVisit" binding:"required,gte=0"`
}

// UpdateDoctorRequest represents partial doctor update parameters.
type UpdateDoctorRequest struct {
	Name           *string  `json:"name"`
	Specialization *string  `json:"specialization"`
	Phone          *string  `json:"phone"`
	FeePerVisit    *float64 `json:"feePerVisit" binding:"omitempty,gte=0"`
}
