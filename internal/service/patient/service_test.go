package patient

import (
	"context"
	"encoding/json"
	"sort"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medhq/hospital-api/internal/model"
	apperrors "github.com/medhq/hospital-api/pkg/errors"
)

// fakePatientRepo keeps aggregates in memory with the same contract as the
// postgres repository: not-found and conflict surface as typed errors, and a
// failed Mutate leaves the stored aggregate untouched.
type fakePatientRepo struct {
	patients map[uuid.UUID]*model.Patient
}

func newFakePatientRepo() *fakePatientRepo {
	return &fakePatientRepo{patients: make(map[uuid.UUID]*model.Patient)}
}

func clonePatient(p *model.Patient) *model.Patient {
	data, _ := json.Marshal(p)
	var out model.Patient
	_ = json.Unmarshal(data, &out)
	return &out
}

func (r *fakePatientRepo) Create(_ context.Context, patient *model.Patient) error {
	for _, existing := range r.patients {
		if existing.PatientID == patient.PatientID {
			return apperrors.Conflict("patient with this patientId already exists")
		}
	}
	patient.CreatedAt = time.Now()
	patient.UpdatedAt = patient.CreatedAt
	r.patients[patient.ID] = clonePatient(patient)
	return nil
}

func (r *fakePatientRepo) List(_ context.Context) ([]*model.Patient, error) {
	out := make([]*model.Patient, 0, len(r.patients))
	for _, p := range r.patients {
		out = append(out, clonePatient(p))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *fakePatientRepo) Get(_ context.Context, id uuid.UUID) (*model.Patient, error) {
	p, ok := r.patients[id]
	if !ok {
		return nil, apperrors.NotFound("patient")
	}
	return clonePatient(p), nil
}

func (r *fakePatientRepo) Update(_ context.Context, patient *model.Patient) error {
	if _, ok := r.patients[patient.ID]; !ok {
		return apperrors.NotFound("patient")
	}
	r.patients[patient.ID] = clonePatient(patient)
	return nil
}

func (r *fakePatientRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.patients[id]; !ok {
		return apperrors.NotFound("patient")
	}
	delete(r.patients, id)
	return nil
}

func (r *fakePatientRepo) Mutate(_ context.Context, id uuid.UUID, fn func(*model.Patient) error) (*model.Patient, error) {
	stored, ok := r.patients[id]
	if !ok {
		return nil, apperrors.NotFound("patient")
	}
	working := clonePatient(stored)
	if err := fn(working); err != nil {
		return nil, err
	}
	working.UpdatedAt = time.Now()
	r.patients[id] = clonePatient(working)
	return working, nil
}

func (r *fakePatientRepo) Search(context.Context, *model.PatientSearch) ([]*model.Patient, error) {
	return nil, nil
}

func (r *fakePatientRepo) Summary(context.Context) (*model.Summary, error) { return nil, nil }

func (r *fakePatientRepo) CountByCity(context.Context) ([]model.CityCount, error) { return nil, nil }

func (r *fakePatientRepo) CountBySpecialization(context.Context) ([]model.SpecializationCount, error) {
	return nil, nil
}

func (r *fakePatientRepo) TopDiseases(context.Context, int) ([]model.DiseaseCount, error) {
	return nil, nil
}

func (r *fakePatientRepo) MonthlyRevenue(context.Context) ([]model.MonthlyRevenue, error) {
	return nil, nil
}

func intp(v int) *int             { return &v }
func int64p(v int64) *int64       { return &v }
func floatp(v float64) *float64   { return &v }
func timep(v time.Time) *time.Time { return &v }

func createReq(patientID int64, diseases ...string) *model.CreatePatientRequest {
	return &model.CreatePatientRequest{
		PatientID:     patientID,
		Name:          "A",
		Age:           intp(30),
		Gender:        model.GenderFemale,
		Phone:         "555-0100",
		Email:         "a@example.com",
		BloodGroup:    "O+",
		IsAdmitted:    true,
		AdmissionDate: timep(time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)),
		Address: model.AddressPayload{
			Street: "1 Main St", City: "Pune", State: "MH", Pincode: intp(411001),
		},
		Doctor: model.DoctorSnapshotPayload{
			DoctorID: int64p(7), Name: "Dr. B", Specialization: "Cardiology", Phone: "555-0101",
		},
		Diseases: diseases,
		Bill: model.BillPayload{
			RoomCharges: 100, TreatmentCharges: 50, MedicineCharges: 25,
			TotalAmount: 9999, // ignored; server recomputes
		},
	}
}

func newTestService() (*Service, *fakePatientRepo) {
	repo := newFakePatientRepo()
	return NewService(repo), repo
}

func TestCreateThenListContainsPatient(t *testing.T) {
	svc, _ := newTestService()

	created, err := svc.Create(context.Background(), createReq(1))
	require.NoError(t, err)
	assert.Equal(t, int64(1), created.PatientID)

	patients, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, patients, 1)
	assert.Equal(t, int64(1), patients[0].PatientID)
}

func TestCreateRecomputesBillTotal(t *testing.T) {
	svc, _ := newTestService()

	created, err := svc.Create(context.Background(), createReq(1))
	require.NoError(t, err)
	assert.Equal(t, 175.0, created.Bill.TotalAmount)
}

func TestCreateRejectsDuplicatePatientID(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Create(context.Background(), createReq(1))
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), createReq(1))
	assert.True(t, apperrors.IsKind(err, apperrors.KindConflict))
}

func TestDeleteThenOperationsReturnNotFound(t *testing.T) {
	svc, _ := newTestService()

	created, err := svc.Create(context.Background(), createReq(1))
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), created.ID))

	_, err = svc.Get(context.Background(), created.ID)
	assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))

	_, err = svc.AddDisease(context.Background(), created.ID, "Flu")
	assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))

	err = svc.Delete(context.Background(), created.ID)
	assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))
}

func TestDiseaseLifecycle(t *testing.T) {
	svc, _ := newTestService()

	created, err := svc.Create(context.Background(), createReq(1))
	require.NoError(t, err)

	updated, err := svc.AddDisease(context.Background(), created.ID, "  Flu  ")
	require.NoError(t, err)
	assert.Equal(t, []string{"Flu"}, updated.Diseases)

	updated, err = svc.DeleteDisease(context.Background(), created.ID, 0)
	require.NoError(t, err)
	assert.Empty(t, updated.Diseases)
}

func TestUpdateDiseaseByIndex(t *testing.T) {
	svc, _ := newTestService()

	created, err := svc.Create(context.Background(), createReq(1, "Flu", "Cold"))
	require.NoError(t, err)

	updated, err := svc.UpdateDisease(context.Background(), created.ID, 1, "Cough")
	require.NoError(t, err)
	assert.Equal(t, []string{"Flu", "Cough"}, updated.Diseases)
}

func TestDiseaseIndexOutOfRange(t *testing.T) {
	svc, _ := newTestService()

	created, err := svc.Create(context.Background(), createReq(1, "Flu"))
	require.NoError(t, err)

	_, err = svc.DeleteDisease(context.Background(), created.ID, 1)
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))

	_, err = svc.UpdateDisease(context.Background(), created.ID, -1, "Cough")
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))

	// Failed mutation leaves the list unchanged.
	current, err := svc.Get(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"Flu"}, current.Diseases)
}

func TestAddDiseaseRejectsEmptyName(t *testing.T) {
	svc, _ := newTestService()

	created, err := svc.Create(context.Background(), createReq(1))
	require.NoError(t, err)

	_, err = svc.AddDisease(context.Background(), created.ID, "   ")
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))
}

func treatmentReq(desc string, cost float64) *model.TreatmentPayload {
	return &model.TreatmentPayload{
		Date:        timep(time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)),
		Description: desc,
		Cost:        floatp(cost),
	}
}

func TestUpdateTreatmentTargetsOnlyMatchedItem(t *testing.T) {
	svc, _ := newTestService()

	created, err := svc.Create(context.Background(), createReq(1))
	require.NoError(t, err)

	withFirst, err := svc.AddTreatment(context.Background(), created.ID, treatmentReq("X-ray", 40))
	require.NoError(t, err)
	withBoth, err := svc.AddTreatment(context.Background(), created.ID, treatmentReq("MRI", 200))
	require.NoError(t, err)
	require.Len(t, withBoth.Treatments, 2)

	first := withFirst.Treatments[0]
	second := withBoth.Treatments[1]
	assert.NotEqual(t, first.ID, second.ID)

	updated, err := svc.UpdateTreatment(context.Background(), created.ID, second.ID, treatmentReq("CT scan", 150))
	require.NoError(t, err)

	target := updated.Treatment(second.ID)
	require.NotNil(t, target)
	assert.Equal(t, "CT scan", target.Description)
	assert.Equal(t, 150.0, target.Cost)

	// The other item is unchanged, identity included.
	other := updated.Treatment(first.ID)
	require.NotNil(t, other)
	assert.Equal(t, "X-ray", other.Description)
	assert.Equal(t, 40.0, other.Cost)
}

func TestTreatmentNotFoundWithinPatient(t *testing.T) {
	svc, _ := newTestService()

	created, err := svc.Create(context.Background(), createReq(1))
	require.NoError(t, err)

	_, err = svc.UpdateTreatment(context.Background(), created.ID, uuid.New(), treatmentReq("X-ray", 40))
	assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))

	_, err = svc.DeleteTreatment(context.Background(), created.ID, uuid.New())
	assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))
}

func TestMedicineLifecycle(t *testing.T) {
	svc, _ := newTestService()

	created, err := svc.Create(context.Background(), createReq(1))
	require.NoError(t, err)

	med := &model.MedicinePayload{Name: "Paracetamol", Dosage: "500mg", Duration: "5 days"}
	updated, err := svc.AddMedicine(context.Background(), created.ID, med)
	require.NoError(t, err)
	require.Len(t, updated.Medicines, 1)
	added := updated.Medicines[0]
	assert.NotEqual(t, uuid.Nil, added.ID)

	med.Dosage = "250mg"
	updated, err = svc.UpdateMedicine(context.Background(), created.ID, added.ID, med)
	require.NoError(t, err)
	assert.Equal(t, "250mg", updated.Medicine(added.ID).Dosage)

	updated, err = svc.DeleteMedicine(context.Background(), created.ID, added.ID)
	require.NoError(t, err)
	assert.Empty(t, updated.Medicines)
}

func TestPatchBillRecomputesTotal(t *testing.T) {
	svc, _ := newTestService()

	created, err := svc.Create(context.Background(), createReq(1))
	require.NoError(t, err)

	updated, err := svc.PatchBill(context.Background(), created.ID, &model.BillPayload{
		RoomCharges:      200,
		TreatmentCharges: 75,
		MedicineCharges:  25,
		TotalAmount:      1, // ignored
		IsPaid:           true,
	})
	require.NoError(t, err)
	assert.Equal(t, 300.0, updated.Bill.TotalAmount)
	assert.True(t, updated.Bill.IsPaid)
}

func TestPatchDoctorReplacesSnapshot(t *testing.T) {
	svc, _ := newTestService()

	created, err := svc.Create(context.Background(), createReq(1))
	require.NoError(t, err)

	updated, err := svc.PatchDoctor(context.Background(), created.ID, &model.DoctorSnapshotPayload{
		DoctorID: int64p(9), Name: "Dr. C", Specialization: "Neurology", Phone: "555-0102",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(9), updated.Doctor.DoctorID)
	assert.Equal(t, "Neurology", updated.Doctor.Specialization)
}

func TestUpdateLeavesNestedCollectionsUntouched(t *testing.T) {
	svc, _ := newTestService()

	created, err := svc.Create(context.Background(), createReq(1, "Flu"))
	require.NoError(t, err)
	_, err = svc.AddTreatment(context.Background(), created.ID, treatmentReq("X-ray", 40))
	require.NoError(t, err)

	req := &model.UpdatePatientRequest{
		PatientID:     1,
		Name:          "A2",
		Age:           intp(31),
		Gender:        model.GenderFemale,
		Phone:         "555-0103",
		Email:         "a2@example.com",
		BloodGroup:    "O+",
		IsAdmitted:    false,
		AdmissionDate: timep(time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)),
		Address: model.AddressPayload{
			Street: "2 Main St", City: "Mumbai", State: "MH", Pincode: intp(400001),
		},
		Doctor: model.DoctorSnapshotPayload{
			DoctorID: int64p(7), Name: "Dr. B", Specialization: "Cardiology", Phone: "555-0101",
		},
		Bill: model.BillPayload{RoomCharges: 10},
	}

	updated, err := svc.Update(context.Background(), created.ID, req)
	require.NoError(t, err)
	assert.Equal(t, "A2", updated.Name)
	assert.Equal(t, "Mumbai", updated.Address.City)
	assert.Equal(t, 10.0, updated.Bill.TotalAmount)
	assert.Equal(t, []string{"Flu"}, updated.Diseases)
	assert.Len(t, updated.Treatments, 1)
}
