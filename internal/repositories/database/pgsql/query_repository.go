package pgsql

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/gestika/ledger/internal/apperrors"
	"github.com/gestika/ledger/internal/core/domain"
	portsrepo "github.com/gestika/ledger/internal/core/ports/repositories"
	"github.com/gestika/ledger/internal/utils/pagination"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxQueryRepository struct {
	pool *pgxpool.Pool
}

// newPgxQueryRepository creates the read-side repository over committed entry lines.
func newPgxQueryRepository(pool *pgxpool.Pool) portsrepo.QueryRepositoryFacade {
	return &PgxQueryRepository{pool: pool}
}

var _ portsrepo.QueryRepositoryFacade = (*PgxQueryRepository)(nil)

// ListEntryRecords retrieves committed entry records matching the filter,
// newest first, using token-based pagination. The sort key is
// (entry_date DESC, created_at DESC, line_id DESC); line_id is the unique
// tiebreaker because every line of one posting shares the same created_at,
// so a page boundary can fall inside a posting.
func (r *PgxQueryRepository) ListEntryRecords(ctx context.Context, tenantID string, filter portsrepo.EntryFilter, limit int, nextToken *string) ([]domain.EntryRecord, *string, error) {
	if limit <= 0 {
		limit = 50
	}
	// Fetch one extra row to know whether a next page exists.
	fetchLimit := limit + 1

	var sb strings.Builder
	sb.WriteString(`
		SELECT l.line_id, l.posting_id, p.tenant_id, p.exercise_id, p.journal_id, j.code,
		       l.account_id, a.code, p.entry_date, l.debit, l.credit, l.label,
		       p.reference, p.source_module, p.source_id, l.created_at, l.created_by
		FROM entry_lines l
		JOIN postings p ON p.posting_id = l.posting_id
		JOIN journals j ON j.journal_id = p.journal_id
		JOIN accounts a ON a.account_id = l.account_id
		WHERE p.tenant_id = $1
	`)
	args := []interface{}{tenantID}

	addCondition := func(clause string, value interface{}) {
		args = append(args, value)
		sb.WriteString(" AND " + clause + "$" + strconv.Itoa(len(args)))
	}

	if filter.ExerciseID != "" {
		addCondition("p.exercise_id = ", filter.ExerciseID)
	}
	if filter.JournalID != "" {
		addCondition("p.journal_id = ", filter.JournalID)
	}
	if filter.AccountID != "" {
		addCondition("l.account_id = ", filter.AccountID)
	}
	if filter.SourceModule != "" {
		addCondition("p.source_module = ", string(filter.SourceModule))
	}
	if filter.From != nil {
		addCondition("p.entry_date >= ", *filter.From)
	}
	if filter.To != nil {
		addCondition("p.entry_date <= ", *filter.To)
	}

	if nextToken != nil && *nextToken != "" {
		lastEntryDate, lastCreatedAt, lastLineID, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}
		// Tuple comparison keeps the cursor condition aligned with the sort key.
		args = append(args, lastEntryDate, lastCreatedAt, lastLineID)
		sb.WriteString(fmt.Sprintf(" AND (p.entry_date, l.created_at, l.line_id) < ($%d, $%d, $%d)", len(args)-2, len(args)-1, len(args)))
	}

	args = append(args, fetchLimit)
	sb.WriteString(" ORDER BY p.entry_date DESC, l.created_at DESC, l.line_id DESC LIMIT $" + strconv.Itoa(len(args)) + ";")

	rows, err := r.pool.Query(ctx, sb.String(), args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query entry records for tenant %s: %w", tenantID, err)
	}
	defer rows.Close()

	records := make([]domain.EntryRecord, 0, fetchLimit)
	for rows.Next() {
		var rec domain.EntryRecord
		var sourceModule string
		err := rows.Scan(
			&rec.LineID,
			&rec.PostingID,
			&rec.TenantID,
			&rec.ExerciseID,
			&rec.JournalID,
			&rec.JournalCode,
			&rec.AccountID,
			&rec.AccountCode,
			&rec.EntryDate,
			&rec.Debit,
			&rec.Credit,
			&rec.Label,
			&rec.Reference,
			&sourceModule,
			&rec.SourceID,
			&rec.CreatedAt,
			&rec.CreatedBy,
		)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to scan entry record for tenant %s: %w", tenantID, err)
		}
		rec.SourceModule = domain.SourceModule(sourceModule)
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error iterating entry records for tenant %s: %w", tenantID, err)
	}

	var nextTokenVal *string
	if len(records) > limit {
		records = records[:limit]
		last := records[limit-1]
		token := pagination.EncodeToken(last.EntryDate, last.CreatedAt, last.LineID)
		nextTokenVal = &token
	}

	return records, nextTokenVal, nil
}

// TrialBalance aggregates committed debits and credits per account for one
// exercise. Accounts without entries are omitted.
func (r *PgxQueryRepository) TrialBalance(ctx context.Context, tenantID string, exerciseID string) ([]domain.TrialBalanceRow, error) {
	query := `
		SELECT a.account_id, a.code, a.label, a.account_type,
		       COALESCE(SUM(l.debit), 0), COALESCE(SUM(l.credit), 0)
		FROM entry_lines l
		JOIN postings p ON p.posting_id = l.posting_id
		JOIN accounts a ON a.account_id = l.account_id
		WHERE p.tenant_id = $1 AND p.exercise_id = $2
		GROUP BY a.account_id, a.code, a.label, a.account_type
		ORDER BY a.code;
	`
	rows, err := r.pool.Query(ctx, query, tenantID, exerciseID)
	if err != nil {
		return nil, fmt.Errorf("failed to query trial balance for exercise %s: %w", exerciseID, err)
	}
	defer rows.Close()

	result := []domain.TrialBalanceRow{}
	for rows.Next() {
		var row domain.TrialBalanceRow
		var accountType string
		err := rows.Scan(
			&row.AccountID,
			&row.AccountCode,
			&row.AccountLabel,
			&accountType,
			&row.Debits,
			&row.Credits,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan trial balance row for exercise %s: %w", exerciseID, err)
		}
		row.AccountType = domain.AccountType(accountType)
		row.Balance = row.Debits.Sub(row.Credits)
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating trial balance rows for exercise %s: %w", exerciseID, err)
	}

	return result, nil
}
