// Package deal implements the Deal repository using PostgreSQL.
// All deals live in a single deals table; the tags sequence is stored as a
// JSON text encoding so it round-trips losslessly through the database.
package deal

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/prismcrm/prism-backend/internal/adapter/postgres"
	"github.com/prismcrm/prism-backend/internal/domain"
)

const table = "deals"

var columns = []string{
	"id",
	"title",
	"person_name",
	"company_name",
	"stage",
	"tags",
	"priority",
	"expected_value",
	"close_probability",
	"expected_close_date",
	"last_contact_date",
	"next_action_date",
	"next_action",
	"notes",
	"created_at",
	"updated_at",
}

// builder is the shared statement builder with PostgreSQL placeholders.
var builder = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// Repo provides deal persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new deal repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Ping reports whether the database is reachable.
func (r *Repo) Ping(ctx context.Context) error {
	return r.pool.Ping(ctx)
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// List returns every deal ordered by updated_at descending (most recently
// touched first). Returns an empty slice (not nil) when the table is empty.
func (r *Repo) List(ctx context.Context) ([]domain.Deal, error) {
	query, args, err := builder.
		Select(columns...).
		From(table).
		OrderBy("updated_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list query: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list deals: %w", err)
	}
	defer rows.Close()

	deals := []domain.Deal{}
	for rows.Next() {
		d, err := scanDeal(rows)
		if err != nil {
			return nil, fmt.Errorf("list deals: %w", err)
		}
		deals = append(deals, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list deals: %w", err)
	}

	return deals, nil
}

// GetByID returns a deal by primary key.
// Returns domain.ErrNotFound when no record matches.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Deal, error) {
	query, args, err := builder.
		Select(columns...).
		From(table).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get query: %w", err)
	}

	d, err := scanDeal(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, postgres.MapError(err, "deal", id)
	}

	return &d, nil
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// Create inserts a new deal and returns the persisted record. The database
// generates the id and stamps created_at/updated_at to the same instant;
// caller-supplied values for those fields are ignored.
func (r *Repo) Create(ctx context.Context, d *domain.Deal) (*domain.Deal, error) {
	tags, err := encodeTags(d.Tags)
	if err != nil {
		return nil, fmt.Errorf("encode tags: %w", err)
	}

	query, args, err := builder.
		Insert(table).
		Columns(
			"title", "person_name", "company_name", "stage", "tags", "priority",
			"expected_value", "close_probability",
			"expected_close_date", "last_contact_date", "next_action_date",
			"next_action", "notes",
		).
		Values(
			d.Title,
			ptrToText(d.PersonName),
			ptrToText(d.CompanyName),
			d.Stage.String(),
			tags,
			d.Priority.String(),
			d.ExpectedValue,
			d.CloseProbability,
			ptrToTimestamptz(d.ExpectedCloseDate),
			ptrToTimestamptz(d.LastContactDate),
			ptrToTimestamptz(d.NextActionDate),
			ptrToText(d.NextAction),
			ptrToText(d.Notes),
		).
		Suffix("RETURNING " + joinColumns()).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build insert query: %w", err)
	}

	created, err := scanDeal(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, postgres.MapError(err, "deal", uuid.Nil)
	}

	return &created, nil
}

// Update merges the patch over the current record and re-stamps updated_at.
// Returns domain.ErrNotFound when the id does not match an existing deal.
func (r *Repo) Update(ctx context.Context, id uuid.UUID, patch domain.DealPatch) (*domain.Deal, error) {
	// Get current record to apply the partial update.
	current, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	merged := *current
	patch.Apply(&merged)

	tags, err := encodeTags(merged.Tags)
	if err != nil {
		return nil, fmt.Errorf("encode tags: %w", err)
	}

	query, args, err := builder.
		Update(table).
		Set("title", merged.Title).
		Set("person_name", ptrToText(merged.PersonName)).
		Set("company_name", ptrToText(merged.CompanyName)).
		Set("stage", merged.Stage.String()).
		Set("tags", tags).
		Set("priority", merged.Priority.String()).
		Set("expected_value", merged.ExpectedValue).
		Set("close_probability", merged.CloseProbability).
		Set("expected_close_date", ptrToTimestamptz(merged.ExpectedCloseDate)).
		Set("last_contact_date", ptrToTimestamptz(merged.LastContactDate)).
		Set("next_action_date", ptrToTimestamptz(merged.NextActionDate)).
		Set("next_action", ptrToText(merged.NextAction)).
		Set("notes", ptrToText(merged.Notes)).
		Set("updated_at", sq.Expr("clock_timestamp()")).
		Where(sq.Eq{"id": id}).
		Suffix("RETURNING " + joinColumns()).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build update query: %w", err)
	}

	updated, err := scanDeal(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, postgres.MapError(err, "deal", id)
	}

	return &updated, nil
}

// Delete removes a deal permanently.
// Returns domain.ErrNotFound when the id does not match an existing deal.
func (r *Repo) Delete(ctx context.Context, id uuid.UUID) error {
	query, args, err := builder.
		Delete(table).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete query: %w", err)
	}

	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return postgres.MapError(err, "deal", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("deal %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

// ---------------------------------------------------------------------------
// Row scanning
// ---------------------------------------------------------------------------

// rowScanner is satisfied by both pgx.Row and pgx.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanDeal(row rowScanner) (domain.Deal, error) {
	var (
		d          domain.Deal
		stage      string
		priority   string
		tags       string
		person     pgtype.Text
		company    pgtype.Text
		nextAction pgtype.Text
		notes      pgtype.Text
		closeDate  pgtype.Timestamptz
		contactAt  pgtype.Timestamptz
		actionAt   pgtype.Timestamptz
	)

	err := row.Scan(
		&d.ID,
		&d.Title,
		&person,
		&company,
		&stage,
		&tags,
		&priority,
		&d.ExpectedValue,
		&d.CloseProbability,
		&closeDate,
		&contactAt,
		&actionAt,
		&nextAction,
		&notes,
		&d.CreatedAt,
		&d.UpdatedAt,
	)
	if err != nil {
		return domain.Deal{}, err
	}

	d.Stage = domain.Stage(stage)
	d.Priority = domain.Priority(priority)
	d.PersonName = textToPtr(person)
	d.CompanyName = textToPtr(company)
	d.NextAction = textToPtr(nextAction)
	d.Notes = textToPtr(notes)
	d.ExpectedCloseDate = timestamptzToPtr(closeDate)
	d.LastContactDate = timestamptzToPtr(contactAt)
	d.NextActionDate = timestamptzToPtr(actionAt)

	d.Tags, err = decodeTags(tags)
	if err != nil {
		return domain.Deal{}, fmt.Errorf("decode tags: %w", err)
	}

	return d, nil
}

func joinColumns() string {
	out := columns[0]
	for _, c := range columns[1:] {
		out += ", " + c
	}
	return out
}

// ---------------------------------------------------------------------------
// Tags codec
// ---------------------------------------------------------------------------

// encodeTags serializes the ordered tag sequence to its JSON text form.
// nil encodes as the empty sequence.
func encodeTags(tags []string) (string, error) {
	if tags == nil {
		tags = []string{}
	}
	data, err := json.Marshal(tags)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// decodeTags restores the tag sequence from its JSON text form. The empty
// string (legacy rows) decodes as the empty sequence.
func decodeTags(s string) ([]string, error) {
	if s == "" {
		return []string{}, nil
	}
	var tags []string
	if err := json.Unmarshal([]byte(s), &tags); err != nil {
		return nil, err
	}
	if tags == nil {
		tags = []string{}
	}
	return tags, nil
}

// ---------------------------------------------------------------------------
// pgtype helpers
// ---------------------------------------------------------------------------

func ptrToText(s *string) pgtype.Text {
	if s == nil {
		return pgtype.Text{}
	}
	return pgtype.Text{String: *s, Valid: true}
}

func textToPtr(t pgtype.Text) *string {
	if !t.Valid {
		return nil
	}
	s := t.String
	return &s
}

func ptrToTimestamptz(t *time.Time) pgtype.Timestamptz {
	if t == nil {
		return pgtype.Timestamptz{}
	}
	return pgtype.Timestamptz{Time: *t, Valid: true}
}

func timestamptzToPtr(t pgtype.Timestamptz) *time.Time {
	if !t.Valid {
		return nil
	}
	v := t.Time
	return &v
}
