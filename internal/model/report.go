package model

// Sort orders accepted by the search endpoint.
const (
	OrderAsc  = "asc"
	OrderDesc = "desc"
)

// SortFields lists the patient fields the search endpoint can sort on.
// The zero value of PatientSearch.SortBy means creation time.
var SortFields = map[string]bool{
	"createdAt":     true,
	"patientId":     true,
	"name":          true,
	"age":           true,
	"admissionDate": true,
	"totalAmount":   true,
}

// PatientSearch holds the recognized search filters. Nil pointers and empty
// strings impose no constraint; all present filters are ANDed.
type PatientSearch struct {
	Query          string `form:"q"`
	City           string `form:"city"`
	Specialization string `form:"specialization"`
	Disease        string `form:"disease"`
	IsAdmitted     *bool  `form:"isAdmitted"`
	IsPaid         *bool  `form:"isPaid"`
	SortBy         string `form:"sortBy"`
	Order          string `form:"order"`
}

// Summary aggregates counts and revenue over the full patient collection.
type Summary struct {
	TotalPatients    int64   `json:"totalPatients" db:"total_patients"`
	AdmittedPatients int64   `json:"admittedPatients" db:"admitted_patients"`
	PendingBills     int64   `json:"pendingBills" db:"pending_bills"`
	PaidBills        int64   `json:"paidBills" db:"paid_bills"`
	TotalRevenue     float64 `json:"totalRevenue" db:"total_revenue"`
}

// CityCount is a group-by-count row over address.city.
type CityCount struct {
	City  string `json:"city" db:"city"`
	Count int64  `json:"count" db:"count"`
}

// SpecializationCount is a group-by-count row over doctor.specialization.
type SpecializationCount struct {
	Specialization string `json:"specialization" db:"specialization"`
	Count          int64  `json:"count" db:"count"`
}

// DiseaseCount is a group-by-count row over the flattened disease lists.
type DiseaseCount struct {
	Disease string `json:"disease" db:"disease"`
	Count   int64  `json:"count" db:"count"`
}

// MonthlyRevenue is a per-calendar-month revenue and admission count row.
type MonthlyRevenue struct {
	Month    int     `json:"month" db:"month"`
	Year     int     `json:"year" db:"year"`
	Revenue  float64 `json:"revenue" db:"revenue"`
	Patients int64   `json:"patients" db:"patients"`
}
