package models

import "time"

// FiscalExercise is the persistence row for a bounded accounting year.
type FiscalExercise struct {
	ExerciseID string    `db:"exercise_id"`
	TenantID   string    `db:"tenant_id"`
	Year       int       `db:"year"`
	StartDate  time.Time `db:"start_date"`
	EndDate    time.Time `db:"end_date"`
	IsActive   bool      `db:"is_active"`
	IsClosed   bool      `db:"is_closed"`
	AuditFields
}
