package dto

import (
	"time"

	"github.com/gestika/ledger/internal/core/domain"
)

// CreateAccountRequest adds one account to a tenant's chart of accounts.
type CreateAccountRequest struct {
	Code            string  `json:"code" binding:"required,max=20"`
	Label           string  `json:"label" binding:"required,max=200"`
	AccountType     string  `json:"accountType" binding:"required,accounttype"`
	ParentAccountID *string `json:"parentAccountID,omitempty"`
}

// UpdateAccountRequest carries partial account changes. Nil fields are left
// untouched. Code and type changes on system accounts are rejected.
type UpdateAccountRequest struct {
	Code        *string `json:"code,omitempty" binding:"omitempty,max=20"`
	Label       *string `json:"label,omitempty" binding:"omitempty,max=200"`
	AccountType *string `json:"accountType,omitempty" binding:"omitempty,accounttype"`
}

// ListAccountsParams holds pagination parameters for listing accounts.
type ListAccountsParams struct {
	Limit  int `form:"limit"`
	Offset int `form:"offset"`
}

// AccountResponse defines the data returned for an account.
type AccountResponse struct {
	AccountID       string    `json:"accountID"`
	Code            string    `json:"code"`
	Label           string    `json:"label"`
	AccountType     string    `json:"accountType"`
	ParentAccountID *string   `json:"parentAccountID,omitempty"`
	IsSystem        bool      `json:"isSystem"`
	IsActive        bool      `json:"isActive"`
	CreatedAt       time.Time `json:"createdAt"`
}

// ListAccountsResponse wraps a page of accounts.
type ListAccountsResponse struct {
	Accounts []AccountResponse `json:"accounts"`
}

// ToAccountResponse converts a domain.Account to its response DTO.
func ToAccountResponse(a *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:       a.AccountID,
		Code:            a.Code,
		Label:           a.Label,
		AccountType:     string(a.AccountType),
		ParentAccountID: a.ParentAccountID,
		IsSystem:        a.IsSystem,
		IsActive:        a.IsActive,
		CreatedAt:       a.CreatedAt,
	}
}

// ToAccountResponses converts a slice of domain accounts.
func ToAccountResponses(accounts []domain.Account) []AccountResponse {
	responses := make([]AccountResponse, len(accounts))
	for i := range accounts {
		responses[i] = ToAccountResponse(&accounts[i])
	}
	return responses
}
