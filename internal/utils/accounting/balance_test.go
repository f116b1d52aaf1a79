package accounting_test

import (
	"testing"

	"github.com/gestika/ledger/internal/core/domain"
	"github.com/gestika/ledger/internal/utils/accounting"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func entryLine(lineNo int, debit, credit string) domain.EntryLine {
	return domain.EntryLine{
		LineNo: lineNo,
		Debit:  decimal.RequireFromString(debit),
		Credit: decimal.RequireFromString(credit),
	}
}

func TestValidateLines(t *testing.T) {
	tests := []struct {
		name    string
		lines   []domain.EntryLine
		wantErr string
	}{
		{
			name:  "valid pair",
			lines: []domain.EntryLine{entryLine(1, "100", "0"), entryLine(2, "0", "100")},
		},
		{
			name:    "single line",
			lines:   []domain.EntryLine{entryLine(1, "100", "0")},
			wantErr: "at least two entry lines",
		},
		{
			name:    "negative amount",
			lines:   []domain.EntryLine{entryLine(1, "-100", "0"), entryLine(2, "0", "100")},
			wantErr: "must not be negative",
		},
		{
			name:    "both sides on one line",
			lines:   []domain.EntryLine{entryLine(1, "50", "50"), entryLine(2, "0", "0")},
			wantErr: "not both",
		},
		{
			name:    "empty line",
			lines:   []domain.EntryLine{entryLine(1, "100", "0"), entryLine(2, "0", "0")},
			wantErr: "must carry a debit or a credit",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := accounting.ValidateLines(tt.lines)
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}

func TestCheckBalance(t *testing.T) {
	lines := []domain.EntryLine{
		entryLine(1, "120", "0"),
		entryLine(2, "0", "100"),
		entryLine(3, "0", "19.995"),
	}

	debits, credits, balanced := accounting.CheckBalance(lines, decimal.NewFromFloat(0.01))

	assert.Equal(t, "120", debits.String())
	assert.Equal(t, "119.995", credits.String())
	assert.True(t, balanced)

	_, _, balanced = accounting.CheckBalance(lines, decimal.NewFromFloat(0.001))
	assert.False(t, balanced)
}

func TestCheckBalance_ZeroToleranceFallsBackToDefault(t *testing.T) {
	lines := []domain.EntryLine{
		entryLine(1, "100.00", "0"),
		entryLine(2, "0", "99.99"),
	}

	_, _, balanced := accounting.CheckBalance(lines, decimal.Zero)

	assert.True(t, balanced)
}

func TestWithinTolerance(t *testing.T) {
	tests := []struct {
		name      string
		debits    string
		credits   string
		tolerance string
		want      bool
	}{
		{"exact match", "120", "120", "0.01", true},
		{"inside tolerance", "120", "119.995", "0.01", true},
		{"outside tolerance", "120", "119.98", "0.01", false},
		{"zero tolerance uses default", "120", "119.995", "0", true},
		{"zero tolerance still rejects beyond default", "120", "119.98", "0", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := accounting.WithinTolerance(
				decimal.RequireFromString(tt.debits),
				decimal.RequireFromString(tt.credits),
				decimal.RequireFromString(tt.tolerance),
			)
			assert.Equal(t, tt.want, got)
		})
	}
}
