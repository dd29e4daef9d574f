package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/jmoiron/sqlx/types"

	"github.com/medhq/hospital-api/internal/model"
	"github.com/medhq/hospital-api/internal/repository"
	apperrors "github.com/medhq/hospital-api/pkg/errors"
)

// The patient aggregate is stored as a single row: scalar columns for the
// searchable fields, JSONB for the embedded sub-documents and owned
// collections. Every write replaces the whole row, so a mutation is
// all-or-nothing against one aggregate.
type patientRepository struct {
	BaseRepository
}

func NewPatientRepository(base BaseRepository) repository.PatientRepository {
	return &patientRepository{base}
}

type patientRow struct {
	ID            uuid.UUID      `db:"id"`
	PatientID     int64          `db:"patient_id"`
	Name          string         `db:"name"`
	Age           int            `db:"age"`
	Gender        string         `db:"gender"`
	Phone         string         `db:"phone"`
	Email         string         `db:"email"`
	BloodGroup    string         `db:"blood_group"`
	IsAdmitted    bool           `db:"is_admitted"`
	AdmissionDate time.Time      `db:"admission_date"`
	Address       types.JSONText `db:"address"`
	Doctor        types.JSONText `db:"doctor"`
	Diseases      types.JSONText `db:"diseases"`
	Treatments    types.JSONText `db:"treatments"`
	Medicines     types.JSONText `db:"medicines"`
	Bill          types.JSONText `db:"bill"`
	CreatedAt     time.Time      `db:"created_at"`
	UpdatedAt     time.Time      `db:"updated_at"`
}

func newPatientRow(p *model.Patient) (*patientRow, error) {
	row := &patientRow{
		ID:            p.ID,
		PatientID:     p.PatientID,
		Name:          p.Name,
		Age:           p.Age,
		Gender:        p.Gender,
		Phone:         p.Phone,
		Email:         p.Email,
		BloodGroup:    p.BloodGroup,
		IsAdmitted:    p.IsAdmitted,
		AdmissionDate: p.AdmissionDate,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}

	for _, field := range []struct {
		dst *types.JSONText
		src interface{}
	}{
		{&row.Address, p.Address},
		{&row.Doctor, p.Doctor},
		{&row.Diseases, emptyIfNil(p.Diseases)},
		{&row.Treatments, p.Treatments},
		{&row.Medicines, p.Medicines},
		{&row.Bill, p.Bill},
	} {
		data, err := json.Marshal(field.src)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal patient field: %w", err)
		}
		*field.dst = data
	}

	if p.Treatments == nil {
		row.Treatments = types.JSONText("[]")
	}
	if p.Medicines == nil {
		row.Medicines = types.JSONText("[]")
	}
	return row, nil
}

func emptyIfNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func (row *patientRow) toModel() (*model.Patient, error) {
	p := &model.Patient{
		ID:            row.ID,
		PatientID:     row.PatientID,
		Name:          row.Name,
		Age:           row.Age,
		Gender:        row.Gender,
		Phone:         row.Phone,
		Email:         row.Email,
		BloodGroup:    row.BloodGroup,
		IsAdmitted:    row.IsAdmitted,
		AdmissionDate: row.AdmissionDate,
		Diseases:      []string{},
		Treatments:    []model.Treatment{},
		Medicines:     []model.Medicine{},
		CreatedAt:     row.CreatedAt,
		UpdatedAt:     row.UpdatedAt,
	}

	for _, field := range []struct {
		src types.JSONText
		dst interface{}
	}{
		{row.Address, &p.Address},
		{row.Doctor, &p.Doctor},
		{row.Diseases, &p.Diseases},
		{row.Treatments, &p.Treatments},
		{row.Medicines, &p.Medicines},
		{row.Bill, &p.Bill},
	} {
		if len(field.src) == 0 {
			continue
		}
		if err := json.Unmarshal(field.src, field.dst); err != nil {
			return nil, fmt.Errorf("failed to unmarshal patient field: %w", err)
		}
	}
	return p, nil
}

const patientColumns = `
	id, patient_id, name, age, gender, phone, email, blood_group,
	is_admitted, admission_date, address, doctor, diseases, treatments,
	medicines, bill, created_at, updated_at
`

func (r *patientRepository) Create(ctx context.Context, patient *model.Patient) error {
	patient.CreatedAt = time.Now()
	patient.UpdatedAt = patient.CreatedAt

	row, err := newPatientRow(patient)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO patients (` + patientColumns + `)
		VALUES (:id, :patient_id, :name, :age, :gender, :phone, :email, :blood_group,
			:is_admitted, :admission_date, :address, :doctor, :diseases, :treatments,
			:medicines, :bill, :created_at, :updated_at)
	`
	if _, err := r.db.NamedExecContext(ctx, query, row); err != nil {
		return translateError(err, "patient with this patientId already exists")
	}
	return nil
}

func (r *patientRepository) List(ctx context.Context) ([]*model.Patient, error) {
	query := `SELECT ` + patientColumns + ` FROM patients ORDER BY created_at DESC`
	return r.selectPatients(ctx, query)
}

func (r *patientRepository) selectPatients(ctx context.Context, query string, args ...interface{}) ([]*model.Patient, error) {
	rows := []patientRow{}
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list patients: %w", err)
	}

	patients := make([]*model.Patient, 0, len(rows))
	for i := range rows {
		patient, err := rows[i].toModel()
		if err != nil {
			return nil, err
		}
		patients = append(patients, patient)
	}
	return patients, nil
}

func (r *patientRepository) Get(ctx context.Context, id uuid.UUID) (*model.Patient, error) {
	query := `SELECT ` + patientColumns + ` FROM patients WHERE id = $1`

	var row patientRow
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("patient")
		}
		return nil, fmt.Errorf("failed to get patient: %w", err)
	}
	return row.toModel()
}

const patientUpdateQuery = `
	UPDATE patients SET
		patient_id = :patient_id,
		name = :name,
		age = :age,
		gender = :gender,
		phone = :phone,
		email = :email,
		blood_group = :blood_group,
		is_admitted = :is_admitted,
		admission_date = :admission_date,
		address = :address,
		doctor = :doctor,
		diseases = :diseases,
		treatments = :treatments,
		medicines = :medicines,
		bill = :bill,
		updated_at = :updated_at
	WHERE id = :id
`

func (r *patientRepository) Update(ctx context.Context, patient *model.Patient) error {
	patient.UpdatedAt = time.Now()

	row, err := newPatientRow(patient)
	if err != nil {
		return err
	}

	result, err := r.db.NamedExecContext(ctx, patientUpdateQuery, row)
	if err != nil {
		return translateError(err, "patient with this patientId already exists")
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperrors.NotFound("patient")
	}
	return nil
}

func (r *patientRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM patients WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete patient: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperrors.NotFound("patient")
	}
	return nil
}

// Mutate serializes concurrent edits to one aggregate behind a row lock.
func (r *patientRepository) Mutate(ctx context.Context, id uuid.UUID, fn func(*model.Patient) error) (*model.Patient, error) {
	var patient *model.Patient

	err := r.WithTx(ctx, func(tx *sqlx.Tx) error {
		query := `SELECT ` + patientColumns + ` FROM patients WHERE id = $1 FOR UPDATE`

		var row patientRow
		if err := tx.GetContext(ctx, &row, query, id); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return apperrors.NotFound("patient")
			}
			return fmt.Errorf("failed to lock patient: %w", err)
		}

		p, err := row.toModel()
		if err != nil {
			return err
		}

		if err := fn(p); err != nil {
			return err
		}

		p.UpdatedAt = time.Now()
		updated, err := newPatientRow(p)
		if err != nil {
			return err
		}
		if _, err := tx.NamedExecContext(ctx, patientUpdateQuery, updated); err != nil {
			return fmt.Errorf("failed to update patient: %w", err)
		}

		patient = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return patient, nil
}
