package postgres

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medhq/hospital-api/internal/model"
	apperrors "github.com/medhq/hospital-api/pkg/errors"
)

func TestBuildSearchQueryNoFilters(t *testing.T) {
	query, args, err := buildSearchQuery(&model.PatientSearch{})
	require.NoError(t, err)

	assert.Empty(t, args)
	assert.NotContains(t, query, "WHERE")
	assert.True(t, strings.HasSuffix(query, "ORDER BY created_at DESC"))
}

func TestBuildSearchQueryTextFilter(t *testing.T) {
	query, args, err := buildSearchQuery(&model.PatientSearch{Query: "rao"})
	require.NoError(t, err)

	assert.Equal(t, []interface{}{"%rao%"}, args)
	assert.Contains(t, query, "name ILIKE $1")
	assert.Contains(t, query, "phone ILIKE $1")
	assert.Contains(t, query, "patient_id::text ILIKE $1")
}

func TestBuildSearchQueryCombinesFiltersWithAnd(t *testing.T) {
	admitted := true
	paid := false
	query, args, err := buildSearchQuery(&model.PatientSearch{
		City:           "Pune",
		Specialization: "Cardiology",
		Disease:        "Flu",
		IsAdmitted:     &admitted,
		IsPaid:         &paid,
	})
	require.NoError(t, err)

	assert.Equal(t, []interface{}{"Pune", "Cardiology", "Flu", true, false}, args)
	assert.Contains(t, query, "lower(address->>'city') = lower($1)")
	assert.Contains(t, query, "lower(doctor->>'specialization') = lower($2)")
	assert.Contains(t, query, "jsonb_array_elements_text(diseases)")
	assert.Contains(t, query, "is_admitted = $4")
	assert.Contains(t, query, "(bill->>'isPaid')::boolean = $5")
	assert.Equal(t, 4, strings.Count(query, " AND "))
}

func TestBuildSearchQuerySortMapping(t *testing.T) {
	query, _, err := buildSearchQuery(&model.PatientSearch{SortBy: "totalAmount", Order: model.OrderAsc})
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(query, "ORDER BY (bill->>'totalAmount')::numeric ASC"))

	query, _, err = buildSearchQuery(&model.PatientSearch{SortBy: "admissionDate"})
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(query, "ORDER BY admission_date DESC"))
}

func TestBuildSearchQueryRejectsUnknownSort(t *testing.T) {
	_, _, err := buildSearchQuery(&model.PatientSearch{SortBy: "diseases"})
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))

	_, _, err = buildSearchQuery(&model.PatientSearch{Order: "up"})
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))
}

func TestSortColumnsMatchWhitelist(t *testing.T) {
	for field := range model.SortFields {
		_, ok := sortColumns[field]
		assert.True(t, ok, field)
	}
	for field := range sortColumns {
		assert.True(t, model.SortFields[field], field)
	}
}
