package domain

import "time"

// FiscalExercise is a bounded accounting period. At most one exercise per
// tenant is active and open at any time; closing is a one-way transition.
type FiscalExercise struct {
	ExerciseID string    `json:"exerciseID"` // Primary Key (UUID)
	TenantID   string    `json:"tenantID"`   // FK -> tenants.tenant_id
	Year       int       `json:"year"`       // Unique per tenant
	StartDate  time.Time `json:"startDate"`
	EndDate    time.Time `json:"endDate"`
	IsActive   bool      `json:"isActive"`
	IsClosed   bool      `json:"isClosed"`
	AuditFields
}

// IsOpen reports whether the exercise still accepts postings.
func (e FiscalExercise) IsOpen() bool {
	return e.IsActive && !e.IsClosed
}

// Contains reports whether the given date falls inside the exercise bounds.
func (e FiscalExercise) Contains(t time.Time) bool {
	return !t.Before(e.StartDate) && !t.After(e.EndDate)
}
