package model

import (
	"time"

	"github.com/google/uuid"
)

// Gender values accepted on patient records.
const (
	GenderMale   = "Male"
	GenderFemale = "Female"
	GenderOther  = "Other"
)

// Address is embedded in a patient and has no identity of its own.
type Address struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	Pincode int    `json:"pincode"`
}

// DoctorSnapshot is a point-in-time copy of a doctor taken at assignment.
// Registry edits do not propagate into it.
type DoctorSnapshot struct {
	DoctorID       int64  `json:"doctorId"`
	Name           string `json:"name"`
	Specialization string `json:"specialization"`
	Phone          string `json:"phone"`
}

// Treatment is an owned sub-record with stable identity.
type Treatment struct {
	ID          uuid.UUID `json:"id"`
	Date        time.Time `json:"date"`
	Description string    `json:"description"`
	Cost        float64   `json:"cost"`
}

// Medicine is an owned sub-record with stable identity.
type Medicine struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Dosage   string    `json:"dosage"`
	Duration string    `json:"duration"`
}

// Bill holds the patient's charges. TotalAmount is always recomputed
// server-side from the three charge fields.
type Bill struct {
	RoomCharges      float64 `json:"roomCharges"`
	TreatmentCharges float64 `json:"treatmentCharges"`
	MedicineCharges  float64 `json:"medicineCharges"`
	TotalAmount      float64 `json:"totalAmount"`
	IsPaid           bool    `json:"isPaid"`
}

// Recompute sets TotalAmount to the sum of the charge fields.
func (b *Bill) Recompute() {
	b.TotalAmount = b.RoomCharges + b.TreatmentCharges + b.MedicineCharges
}

// Patient is the root aggregate owning all nested clinical records.
type Patient struct {
	ID            uuid.UUID      `json:"id"`
	PatientID     int64          `json:"patientId"`
	Name          string         `json:"name"`
	Age           int            `json:"age"`
	Gender        string         `json:"gender"`
	Phone         string         `json:"phone"`
	Email         string         `json:"email"`
	BloodGroup    string         `json:"bloodGroup"`
	IsAdmitted    bool           `json:"isAdmitted"`
	AdmissionDate time.Time      `json:"admissionDate"`
	Address       Address        `json:"address"`
	Doctor        DoctorSnapshot `json:"doctor"`
	Diseases      []string       `json:"diseases"`
	Treatments    []Treatment    `json:"treatments"`
	Medicines     []Medicine     `json:"medicines"`
	Bill          Bill           `json:"bill"`
	CreatedAt     time.Time      `json:"createdAt"`
	UpdatedAt     time.Time      `json:"updatedAt"`
}

// Treatment returns the treatment with the given identity, or nil.
func (p *Patient) Treatment(id uuid.UUID) *Treatment {
	for i := range p.Treatments {
		if p.Treatments[i].ID == id {
			return &p.Treatments[i]
		}
	}
	return nil
}

// Medicine returns the medicine with the given identity, or nil.
func (p *Patient) Medicine(id uuid.UUID) *Medicine {
	for i := range p.Medicines {
		if p.Medicines[i].ID == id {
			return &p.Medicines[i]
		}
	}
	return nil
}

// AddressPayload represents the embedded address in requests.
type AddressPayload struct {
	Street  string `json:"street" binding:"required"`
	City    string `json:"city" binding:"required"`
	State   string `json:"state" binding:"required"`
	Pincode *int   `json:"pincode" binding:"required"`
}

// DoctorSnapshotPayload represents the embedded doctor snapshot in requests.
type DoctorSnapshotPayload struct {
	DoctorID       *int64 `json:"doctorId" binding:"required"`
	Name           string `json:"name" binding:"required"`
	Specialization string `json:"specialization" binding:"required"`
	Phone          string `json:"phone" binding:"required"`
}

// BillPayload represents the bill in requests. A caller-supplied totalAmount
// is ignored; the server recomputes it.
type BillPayload struct {
	RoomCharges      float64 `json:"roomCharges" binding:"gte=0"`
	TreatmentCharges float64 `json:"treatmentCharges" binding:"gte=0"`
	MedicineCharges  float64 `json:"medicineCharges" binding:"gte=0"`
	TotalAmount      float64 `json:"totalAmount"`
	IsPaid           bool    `json:"isPaid"`
}

// TreatmentPayload represents a treatment in requests.
type TreatmentPayload struct {
	Date        *time.Time `json:"date" binding:"required"`
	Description string     `json:"description" binding:"required"`
	Cost        *float64   `json:"cost" binding:"required,gte=0"`
}

// MedicinePayload represents a medicine in requests.
type MedicinePayload struct {
	Name     string `json:"name" binding:"required"`
	Dosage   string `json:"dosage" binding:"required"`
	Duration string `json:"duration" binding:"required"`
}

// DiseasePayload names a disease to append or replace.
type DiseasePayload struct {
	Name string `json:"name" binding:"required"`
}

// CreatePatientRequest represents the full-payload patient submission.
type CreatePatientRequest struct {
	PatientID     int64                 `json:"patientId" binding:"required"`
	Name          string                `json:"name" binding:"required"`
	Age           *int                  `json:"age" binding:"required,gte=0"`
	Gender        string                `json:"gender" binding:"required,oneof=Male Female Other"`
	Phone         string                `json:"phone" binding:"required"`
	Email         string                `json:"email" binding:"required,email"`
	BloodGroup    string                `json:"bloodGroup" binding:"required"`
	IsAdmitted    bool                  `json:"isAdmitted"`
	AdmissionDate *time.Time            `json:"admissionDate" binding:"required"`
	Address       AddressPayload        `json:"address" binding:"required"`
	Doctor        DoctorSnapshotPayload `json:"doctor" binding:"required"`
	Diseases      []string              `json:"diseases"`
	Treatments    []TreatmentPayload    `json:"treatments" binding:"omitempty,dive"`
	Medicines     []MedicinePayload     `json:"medicines" binding:"omitempty,dive"`
	Bill          BillPayload           `json:"bill"`
}

// UpdatePatientRequest replaces top-level scalar and embedded fields. Nested
// collections are mutated only through their dedicated sub-operations.
type UpdatePatientRequest struct {
	PatientID     int64                 `json:"patientId" binding:"required"`
	Name          string                `json:"name" binding:"required"`
	Age           *int                  `json:"age" binding:"required,gte=0"`
	Gender        string                `json:"gender" binding:"required,oneof=Male Female Other"`
	Phone         string                `json:"phone" binding:"required"`
	Email         string                `json:"email" binding:"required,email"`
	BloodGroup    string                `json:"bloodGroup" binding:"required"`
	IsAdmitted    bool                  `json:"isAdmitted"`
	AdmissionDate *time.Time            `json:"admissionDate" binding:"required"`
	Address       AddressPayload        `json:"address" binding:"required"`
	Doctor        DoctorSnapshotPayload `json:"doctor" binding:"required"`
	Bill          BillPayload           `json:"bill"`
}
