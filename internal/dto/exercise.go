package dto

import (
	"time"

	"github.com/gestika/ledger/internal/core/domain"
)

// OpenExerciseRequest opens a fiscal exercise for the given year. Start and
// end dates default to the calendar year bounds when omitted.
type OpenExerciseRequest struct {
	Year      int        `json:"year" binding:"required,min=1990,max=2100"`
	StartDate *time.Time `json:"startDate,omitempty"`
	EndDate   *time.Time `json:"endDate,omitempty"`
}

// ExerciseResponse defines the data returned for a fiscal exercise.
type ExerciseResponse struct {
	ExerciseID string    `json:"exerciseID"`
	Year       int       `json:"year"`
	StartDate  time.Time `json:"startDate"`
	EndDate    time.Time `json:"endDate"`
	IsActive   bool      `json:"isActive"`
	IsClosed   bool      `json:"isClosed"`
	CreatedAt  time.Time `json:"createdAt"`
}

// ListExercisesResponse wraps the exercise history of a tenant.
type ListExercisesResponse struct {
	Exercises []ExerciseResponse `json:"exercises"`
}

// ToExerciseResponse converts a domain.FiscalExercise to its response DTO.
func ToExerciseResponse(e *domain.FiscalExercise) ExerciseResponse {
	return ExerciseResponse{
		ExerciseID: e.ExerciseID,
		Year:       e.Year,
		StartDate:  e.StartDate,
		EndDate:    e.EndDate,
		IsActive:   e.IsActive,
		IsClosed:   e.IsClosed,
		CreatedAt:  e.CreatedAt,
	}
}

// ToExerciseResponses converts a slice of domain exercises.
func ToExerciseResponses(exercises []domain.FiscalExercise) []ExerciseResponse {
	responses := make([]ExerciseResponse, len(exercises))
	for i := range exercises {
		responses[i] = ToExerciseResponse(&exercises[i])
	}
	return responses
}
