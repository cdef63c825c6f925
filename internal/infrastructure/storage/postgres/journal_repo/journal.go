// Package journal_repo provides the PostgreSQL implementation of the
// journal entry store.
package journal_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"quipu/internal/core/apperror"
	"quipu/internal/core/id"
	"quipu/internal/domain/journal"
	"quipu/internal/infrastructure/storage/postgres"
)

const (
	entriesTable = "acc_journal_entries"
	linesTable   = "acc_journal_entry_lines"
)

var entryColumns = []string{
	"id", "number", "date", "concept", "reference", "status",
	"total_debit", "total_credit",
	"version", "created_at", "posted_at", "voided_at",
}

// JournalRepo implements journal.Repository.
// Entries and their lines live in separate tables; lines are immutable once
// the entry is stored, so only the entry header ever sees an UPDATE.
type JournalRepo struct {
	txManager *postgres.TxManager
	builder   squirrel.StatementBuilderType
}

var _ journal.Repository = (*JournalRepo)(nil)

// NewJournalRepo creates a new journal repository.
func NewJournalRepo(txManager *postgres.TxManager) *JournalRepo {
	return &JournalRepo{
		txManager: txManager,
		builder:   squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create inserts an entry with its lines.
func (r *JournalRepo) Create(ctx context.Context, entry *journal.Entry) error {
	q := r.builder.Insert(entriesTable).
		Columns(entryColumns...).
		Values(
			entry.ID, entry.Number, entry.Date, entry.Concept, entry.Reference, entry.Status,
			entry.TotalDebit, entry.TotalCredit,
			entry.Version, entry.CreatedAt, entry.PostedAt, entry.VoidedAt,
		)

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert entry: %w", err)
	}

	querier := r.txManager.GetQuerier(ctx)
	if _, err := querier.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert entry: %w", err)
	}

	return r.insertLines(ctx, entry.ID, entry.Lines)
}

func (r *JournalRepo) insertLines(ctx context.Context, entryID id.ID, lines []journal.Line) error {
	if len(lines) == 0 {
		return nil
	}

	q := r.builder.Insert(linesTable).
		Columns("entry_id", "line_no", "account_code", "account_name", "debit", "credit")

	for i, l := range lines {
		q = q.Values(entryID, i+1, l.AccountCode, l.AccountName, l.Debit, l.Credit)
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert lines: %w", err)
	}

	querier := r.txManager.GetQuerier(ctx)
	if _, err := querier.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert lines: %w", err)
	}

	return nil
}

// GetByID retrieves an entry with lines.
func (r *JournalRepo) GetByID(ctx context.Context, entryID id.ID) (*journal.Entry, error) {
	return r.getOne(ctx, squirrel.Eq{"id": entryID}, entryID.String())
}

// GetByNumber retrieves an entry by its human-readable number.
func (r *JournalRepo) GetByNumber(ctx context.Context, number string) (*journal.Entry, error) {
	return r.getOne(ctx, squirrel.Eq{"number": number}, number)
}

func (r *JournalRepo) getOne(ctx context.Context, cond squirrel.Eq, key string) (*journal.Entry, error) {
	q := r.builder.Select(entryColumns...).
		From(entriesTable).
		Where(cond).
		Limit(1)

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var entry journal.Entry
	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Get(ctx, querier, &entry, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound(entriesTable, key)
		}
		return nil, fmt.Errorf("get entry: %w", err)
	}

	lines, err := r.loadLines(ctx, []id.ID{entry.ID})
	if err != nil {
		return nil, err
	}
	entry.Lines = lines[entry.ID]

	return &entry, nil
}

// UpdateStatus writes the status transition with optimistic locking.
func (r *JournalRepo) UpdateStatus(ctx context.Context, entry *journal.Entry) error {
	q := r.builder.Update(entriesTable).
		Set("status", entry.Status).
		Set("posted_at", entry.PostedAt).
		Set("voided_at", entry.VoidedAt).
		Set("version", squirrel.Expr("version + 1")).
		Where(squirrel.Eq{"id": entry.ID}).
		Where(squirrel.Eq{"version": entry.Version})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build update status: %w", err)
	}

	querier := r.txManager.GetQuerier(ctx)
	result, err := querier.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("update status: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperror.NewConflict("entry was modified by another session").
			WithDetail("entryId", entry.ID.String()).
			WithDetail("expectedVersion", entry.Version)
	}

	entry.Version++
	return nil
}

// List retrieves entries with lines, ordered by date then number.
func (r *JournalRepo) List(ctx context.Context, filter journal.Filter) ([]*journal.Entry, error) {
	q := r.applyFilter(r.builder.Select(entryColumns...).From(entriesTable), filter).
		OrderBy("date", "number")

	if filter.Limit > 0 {
		q = q.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		q = q.Offset(uint64(filter.Offset))
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var entries []*journal.Entry
	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Select(ctx, querier, &entries, sql, args...); err != nil {
		return nil, fmt.Errorf("select entries: %w", err)
	}

	if len(entries) == 0 {
		return entries, nil
	}

	ids := make([]id.ID, len(entries))
	for i, e := range entries {
		ids[i] = e.ID
	}

	lines, err := r.loadLines(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, e := range entries {
		e.Lines = lines[e.ID]
	}

	return entries, nil
}

// Count returns the number of entries matching the filter.
func (r *JournalRepo) Count(ctx context.Context, filter journal.Filter) (int64, error) {
	q := r.applyFilter(r.builder.Select("COUNT(*)").From(entriesTable), filter)

	sql, args, err := q.ToSql()
	if err != nil {
		return 0, fmt.Errorf("build count: %w", err)
	}

	var count int64
	querier := r.txManager.GetQuerier(ctx)
	if err := querier.QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("count entries: %w", err)
	}

	return count, nil
}

func (r *JournalRepo) applyFilter(q squirrel.SelectBuilder, filter journal.Filter) squirrel.SelectBuilder {
	if filter.From != nil {
		q = q.Where(squirrel.GtOrEq{"date": *filter.From})
	}
	if filter.To != nil {
		q = q.Where(squirrel.LtOrEq{"date": *filter.To})
	}
	if len(filter.Statuses) > 0 {
		q = q.Where(squirrel.Eq{"status": filter.Statuses})
	}
	return q
}

func (r *JournalRepo) loadLines(ctx context.Context, entryIDs []id.ID) (map[id.ID][]journal.Line, error) {
	q := r.builder.Select("entry_id", "line_no", "account_code", "account_name", "debit", "credit").
		From(linesTable).
		Where(squirrel.Eq{"entry_id": entryIDs}).
		OrderBy("entry_id", "line_no")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build lines query: %w", err)
	}

	type row struct {
		EntryID id.ID `db:"entry_id"`
		LineNo  int   `db:"line_no"`
		journal.Line
	}

	var rows []row
	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Select(ctx, querier, &rows, sql, args...); err != nil {
		return nil, fmt.Errorf("select lines: %w", err)
	}

	byEntry := make(map[id.ID][]journal.Line, len(entryIDs))
	for _, rw := range rows {
		byEntry[rw.EntryID] = append(byEntry[rw.EntryID], rw.Line)
	}

	return byEntry, nil
}
