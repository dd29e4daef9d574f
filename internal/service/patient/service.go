package patient

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/medhq/hospital-api/internal/model"
	"github.com/medhq/hospital-api/internal/repository"
	apperrors "github.com/medhq/hospital-api/pkg/errors"
)

type Service struct {
	repo repository.PatientRepository
}

func NewService(repo repository.PatientRepository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, req *model.CreatePatientRequest) (*model.Patient, error) {
	patient := &model.Patient{
		ID:            uuid.New(),
		PatientID:     req.PatientID,
		Name:          req.Name,
		Age:           *req.Age,
		Gender:        req.Gender,
		Phone:         req.Phone,
		Email:         strings.ToLower(req.Email),
		BloodGroup:    req.BloodGroup,
		IsAdmitted:    req.IsAdmitted,
		AdmissionDate: *req.AdmissionDate,
		Address:       toAddress(&req.Address),
		Doctor:        toSnapshot(&req.Doctor),
		Diseases:      trimDiseases(req.Diseases),
		Treatments:    make([]model.Treatment, 0, len(req.Treatments)),
		Medicines:     make([]model.Medicine, 0, len(req.Medicines)),
		Bill:          toBill(&req.Bill),
	}

	for i := range req.Treatments {
		patient.Treatments = append(patient.Treatments, newTreatment(&req.Treatments[i]))
	}
	for i := range req.Medicines {
		patient.Medicines = append(patient.Medicines, newMedicine(&req.Medicines[i]))
	}

	if err := s.repo.Create(ctx, patient); err != nil {
		return nil, err
	}
	return patient, nil
}

func (s *Service) List(ctx context.Context) ([]*model.Patient, error) {
	return s.repo.List(ctx)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*model.Patient, error) {
	return s.repo.Get(ctx, id)
}

// Update replaces the aggregate's top-level scalar and embedded fields.
// Nested collections are untouched; they change only through the dedicated
// sub-operations below.
func (s *Service) Update(ctx context.Context, id uuid.UUID, req *model.UpdatePatientRequest) (*model.Patient, error) {
	return s.repo.Mutate(ctx, id, func(p *model.Patient) error {
		p.PatientID = req.PatientID
		p.Name = req.Name
		p.Age = *req.Age
		p.Gender = req.Gender
		p.Phone = req.Phone
		p.Email = strings.ToLower(req.Email)
		p.BloodGroup = req.BloodGroup
		p.IsAdmitted = req.IsAdmitted
		p.AdmissionDate = *req.AdmissionDate
		p.Address = toAddress(&req.Address)
		p.Doctor = toSnapshot(&req.Doctor)
		p.Bill = toBill(&req.Bill)
		return nil
	})
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) PatchAddress(ctx context.Context, id uuid.UUID, req *model.AddressPayload) (*model.Patient, error) {
	return s.repo.Mutate(ctx, id, func(p *model.Patient) error {
		p.Address = toAddress(req)
		return nil
	})
}

func (s *Service) PatchDoctor(ctx context.Context, id uuid.UUID, req *model.DoctorSnapshotPayload) (*model.Patient, error) {
	return s.repo.Mutate(ctx, id, func(p *model.Patient) error {
		p.Doctor = toSnapshot(req)
		return nil
	})
}

func (s *Service) PatchBill(ctx context.Context, id uuid.UUID, req *model.BillPayload) (*model.Patient, error) {
	return s.repo.Mutate(ctx, id, func(p *model.Patient) error {
		p.Bill = toBill(req)
		return nil
	})
}

// Diseases are addressed by zero-based position, not identity. Concurrent
// additions or removals shift subsequent indices; callers re-fetch between
// indexed operations.

func (s *Service) AddDisease(ctx context.Context, id uuid.UUID, name string) (*model.Patient, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.Validation("disease name is required")
	}
	return s.repo.Mutate(ctx, id, func(p *model.Patient) error {
		p.Diseases = append(p.Diseases, name)
		return nil
	})
}

func (s *Service) UpdateDisease(ctx context.Context, id uuid.UUID, index int, name string) (*model.Patient, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.Validation("disease name is required")
	}
	return s.repo.Mutate(ctx, id, func(p *model.Patient) error {
		if index < 0 || index >= len(p.Diseases) {
			return apperrors.Validation("invalid disease index")
		}
		p.Diseases[index] = name
		return nil
	})
}

func (s *Service) DeleteDisease(ctx context.Context, id uuid.UUID, index int) (*model.Patient, error) {
	return s.repo.Mutate(ctx, id, func(p *model.Patient) error {
		if index < 0 || index >= len(p.Diseases) {
			return apperrors.Validation("invalid disease index")
		}
		p.Diseases = append(p.Diseases[:index], p.Diseases[index+1:]...)
		return nil
	})
}

func (s *Service) AddTreatment(ctx context.Context, id uuid.UUID, req *model.TreatmentPayload) (*model.Patient, error) {
	return s.repo.Mutate(ctx, id, func(p *model.Patient) error {
		p.Treatments = append(p.Treatments, newTreatment(req))
		return nil
	})
}

func (s *Service) UpdateTreatment(ctx context.Context, id, itemID uuid.UUID, req *model.TreatmentPayload) (*model.Patient, error) {
	return s.repo.Mutate(ctx, id, func(p *model.Patient) error {
		item := p.Treatment(itemID)
		if item == nil {
			return apperrors.NotFound("treatment")
		}
		item.Date = *req.Date
		item.Description = req.Description
		item.Cost = *req.Cost
		return nil
	})
}

func (s *Service) DeleteTreatment(ctx context.Context, id, itemID uuid.UUID) (*model.Patient, error) {
	return s.repo.Mutate(ctx, id, func(p *model.Patient) error {
		for i := range p.Treatments {
			if p.Treatments[i].ID == itemID {
				p.Treatments = append(p.Treatments[:i], p.Treatments[i+1:]...)
				return nil
			}
		}
		return apperrors.NotFound("treatment")
	})
}

func (s *Service) AddMedicine(ctx context.Context, id uuid.UUID, req *model.MedicinePayload) (*model.Patient, error) {
	return s.repo.Mutate(ctx, id, func(p *model.Patient) error {
		p.Medicines = append(p.Medicines, newMedicine(req))
		return nil
	})
}

func (s *Service) UpdateMedicine(ctx context.Context, id, itemID uuid.UUID, req *model.MedicinePayload) (*model.Patient, error) {
	return s.repo.Mutate(ctx, id, func(p *model.Patient) error {
		item := p.Medicine(itemID)
		if item == nil {
			return apperrors.NotFound("medicine")
		}
		item.Name = req.Name
		item.Dosage = req.Dosage
		item.Duration = req.Duration
		return nil
	})
}

func (s *Service) DeleteMedicine(ctx context.Context, id, itemID uuid.UUID) (*model.Patient, error) {
	return s.repo.Mutate(ctx, id, func(p *model.Patient) error {
		for i := range p.Medicines {
			if p.Medicines[i].ID == itemID {
				p.Medicines = append(p.Medicines[:i], p.Medicines[i+1:]...)
				return nil
			}
		}
		return apperrors.NotFound("medicine")
	})
}

func toAddress(req *model.AddressPayload) model.Address {
	return model.Address{
		Street:  req.Street,
		City:    req.City,
		State:   req.State,
		Pincode: *req.Pincode,
	}
}

func toSnapshot(req *model.DoctorSnapshotPayload) model.DoctorSnapshot {
	return model.DoctorSnapshot{
		DoctorID:       *req.DoctorID,
		Name:           req.Name,
		Specialization: req.Specialization,
		Phone:          req.Phone,
	}
}

// toBill ignores any caller-supplied total; the invariant
// totalAmount == roomCharges + treatmentCharges + medicineCharges holds on
// every write.
func toBill(req *model.BillPayload) model.Bill {
	bill := model.Bill{
		RoomCharges:      req.RoomCharges,
		TreatmentCharges: req.TreatmentCharges,
		MedicineCharges:  req.MedicineCharges,
		IsPaid:           req.IsPaid,
	}
	bill.Recompute()
	return bill
}

func newTreatment(req *model.TreatmentPayload) model.Treatment {
	return model.Treatment{
		ID:          uuid.New(),
		Date:        *req.Date,
		Description: req.Description,
		Cost:        *req.Cost,
	}
}

func newMedicine(req *model.MedicinePayload) model.Medicine {
	return model.Medicine{
		ID:       uuid.New(),
		Name:     req.Name,
		Dosage:   req.Dosage,
		Duration: req.Duration,
	}
}

func trimDiseases(in []string) []string {
	out := make([]string, 0, len(in))
	for _, d := range in {
		if d = strings.TrimSpace(d); d != "" {
			out = append(out, d)
		}
	}
	return out
}
