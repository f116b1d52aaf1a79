package accounting

import (
	"fmt"

	"github.com/gestika/ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// DefaultTolerance is the fallback absolute tolerance on the balance check
// when a tenant carries no explicit configuration (0.01 currency unit).
var DefaultTolerance = decimal.NewFromFloat(0.01)

// ValidateLines checks the structural validity of a line batch: at least two
// lines, non-negative amounts, and no line carrying both a debit and a credit.
func ValidateLines(lines []domain.EntryLine) error {
	if len(lines) < 2 {
		return fmt.Errorf("a posting must carry at least two entry lines")
	}
	for _, l := range lines {
		if l.Debit.IsNegative() || l.Credit.IsNegative() {
			return fmt.Errorf("entry line %d: debit and credit amounts must not be negative", l.LineNo)
		}
		if l.Debit.IsPositive() && l.Credit.IsPositive() {
			return fmt.Errorf("entry line %d: a line is either a debit or a credit, not both", l.LineNo)
		}
		if l.Debit.IsZero() && l.Credit.IsZero() {
			return fmt.Errorf("entry line %d: a line must carry a debit or a credit amount", l.LineNo)
		}
	}
	return nil
}

// WithinTolerance reports whether two totals satisfy the balance invariant,
// falling back to DefaultTolerance when the tenant tolerance is zero. Every
// balance comparison goes through here so the pre-commit and post-commit
// checks can never disagree on the effective tolerance.
func WithinTolerance(debits, credits, tolerance decimal.Decimal) bool {
	if tolerance.IsZero() {
		tolerance = DefaultTolerance
	}
	return debits.Sub(credits).Abs().LessThanOrEqual(tolerance)
}

// CheckBalance verifies the balance invariant for a line batch within the
// given tolerance and returns the two totals for diagnostics.
func CheckBalance(lines []domain.EntryLine, tolerance decimal.Decimal) (debits, credits decimal.Decimal, balanced bool) {
	debits, credits = domain.SumDebitsCredits(lines)
	return debits, credits, WithinTolerance(debits, credits, tolerance)
}
