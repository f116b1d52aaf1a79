package domain

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Expense   AccountType = "EXPENSE"
	Revenue   AccountType = "REVENUE"
	Treasury  AccountType = "TREASURY"
)

// IsValid reports whether t is one of the recognized account types.
func (t AccountType) IsValid() bool {
	switch t {
	case Asset, Liability, Expense, Revenue, Treasury:
		return true
	}
	return false
}

// Account represents one line item in a tenant's chart of accounts.
type Account struct {
	AccountID       string      `json:"accountID"`   // Primary Key (UUID)
	TenantID        string      `json:"tenantID"`    // FK -> tenants.tenant_id
	Code            string      `json:"code"`        // Unique per tenant (e.g. "411")
	Label           string      `json:"label"`       // Display name
	AccountType     AccountType `json:"accountType"` // ASSET, LIABILITY, ...
	ParentAccountID *string     `json:"parentAccountID,omitempty"`
	IsSystem        bool        `json:"isSystem"`  // Seeded, protected from retype/delete
	IsActive        bool        `json:"isActive"`  // Soft-disable flag; accounts are never physically removed
	AuditFields
}
