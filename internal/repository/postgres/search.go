package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/medhq/hospital-api/internal/model"
	apperrors "github.com/medhq/hospital-api/pkg/errors"
)

// sortColumns maps API sort fields onto SQL expressions. Anything not listed
// here is rejected before it gets near the query.
var sortColumns = map[string]string{
	"createdAt":     "created_at",
	"patientId":     "patient_id",
	"name":          "name",
	"age":           "age",
	"admissionDate": "admission_date",
	"totalAmount":   "(bill->>'totalAmount')::numeric",
}

// buildSearchQuery translates the recognized filters into a SELECT over the
// patients table. All filters are ANDed; absent filters impose no constraint.
func buildSearchQuery(filters *model.PatientSearch) (string, []interface{}, error) {
	var (
		conditions []string
		args       []interface{}
	)

	arg := func(v interface{}) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if filters.Query != "" {
		p := arg("%" + filters.Query + "%")
		conditions = append(conditions, fmt.Sprintf(
			"(name ILIKE %[1]s OR phone ILIKE %[1]s OR patient_id::text ILIKE %[1]s)", p))
	}
	if filters.City != "" {
		conditions = append(conditions, fmt.Sprintf(
			"lower(address->>'city') = lower(%s)", arg(filters.City)))
	}
	if filters.Specialization != "" {
		conditions = append(conditions, fmt.Sprintf(
			"lower(doctor->>'specialization') = lower(%s)", arg(filters.Specialization)))
	}
	if filters.Disease != "" {
		conditions = append(conditions, fmt.Sprintf(
			"EXISTS (SELECT 1 FROM jsonb_array_elements_text(diseases) AS d WHERE lower(d) = lower(%s))",
			arg(filters.Disease)))
	}
	if filters.IsAdmitted != nil {
		conditions = append(conditions, fmt.Sprintf("is_admitted = %s", arg(*filters.IsAdmitted)))
	}
	if filters.IsPaid != nil {
		conditions = append(conditions, fmt.Sprintf("(bill->>'isPaid')::boolean = %s", arg(*filters.IsPaid)))
	}

	sortBy := filters.SortBy
	if sortBy == "" {
		sortBy = "createdAt"
	}
	column, ok := sortColumns[sortBy]
	if !ok {
		return "", nil, apperrors.Validationf("unsupported sort field %q", sortBy)
	}

	direction := "DESC"
	switch filters.Order {
	case "", model.OrderDesc:
	case model.OrderAsc:
		direction = "ASC"
	default:
		return "", nil, apperrors.Validationf("unsupported sort order %q", filters.Order)
	}

	query := `SELECT ` + patientColumns + ` FROM patients`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += fmt.Sprintf(" ORDER BY %s %s", column, direction)

	return query, args, nil
}

func (r *patientRepository) Search(ctx context.Context, filters *model.PatientSearch) ([]*model.Patient, error) {
	query, args, err := buildSearchQuery(filters)
	if err != nil {
		return nil, err
	}
	return r.selectPatients(ctx, query, args...)
}

func (r *patientRepository) Summary(ctx context.Context) (*model.Summary, error) {
	query := `
		SELECT
			count(*) AS total_patients,
			count(*) FILTER (WHERE is_admitted) AS admitted_patients,
			count(*) FILTER (WHERE NOT (bill->>'isPaid')::boolean) AS pending_bills,
			count(*) FILTER (WHERE (bill->>'isPaid')::boolean) AS paid_bills,
			COALESCE(sum((bill->>'totalAmount')::numeric), 0) AS total_revenue
		FROM patients
	`

	var summary model.Summary
	if err := r.db.GetContext(ctx, &summary, query); err != nil {
		return nil, fmt.Errorf("failed to compute summary: %w", err)
	}
	return &summary, nil
}

func (r *patientRepository) CountByCity(ctx context.Context) ([]model.CityCount, error) {
	query := `
		SELECT address->>'city' AS city, count(*) AS count
		FROM patients
		GROUP BY address->>'city'
		ORDER BY count DESC, city ASC
	`

	rows := []model.CityCount{}
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("failed to count by city: %w", err)
	}
	return rows, nil
}

func (r *patientRepository) CountBySpecialization(ctx context.Context) ([]model.SpecializationCount, error) {
	query := `
		SELECT doctor->>'specialization' AS specialization, count(*) AS count
		FROM patients
		GROUP BY doctor->>'specialization'
		ORDER BY count DESC, specialization ASC
	`

	rows := []model.SpecializationCount{}
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("failed to count by specialization: %w", err)
	}
	return rows, nil
}

func (r *patientRepository) TopDiseases(ctx context.Context, limit int) ([]model.DiseaseCount, error) {
	query := `
		SELECT d AS disease, count(*) AS count
		FROM patients, jsonb_array_elements_text(diseases) AS d
		GROUP BY d
		ORDER BY count DESC, disease ASC
		LIMIT $1
	`

	rows := []model.DiseaseCount{}
	if err := r.db.SelectContext(ctx, &rows, query, limit); err != nil {
		return nil, fmt.Errorf("failed to count diseases: %w", err)
	}
	return rows, nil
}

func (r *patientRepository) MonthlyRevenue(ctx context.Context) ([]model.MonthlyRevenue, error) {
	query := `
		SELECT
			extract(month FROM admission_date)::int AS month,
			extract(year FROM admission_date)::int AS year,
			COALESCE(sum((bill->>'totalAmount')::numeric), 0) AS revenue,
			count(*) AS patients
		FROM patients
		GROUP BY year, month
		ORDER BY year ASC, month ASC
	`

	rows := []model.MonthlyRevenue{}
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("failed to compute monthly revenue: %w", err)
	}
	return rows, nil
}
