package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/SscSPs/finance_tracker_app/internal/apperrors"
	"github.com/SscSPs/finance_tracker_app/internal/core/domain"
	portsrepo "github.com/SscSPs/finance_tracker_app/internal/core/ports/repositories"
	"github.com/SscSPs/finance_tracker_app/internal/models"
	"github.com/SscSPs/finance_tracker_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const schemaColumns = `schema_id, user_id, fields, created_at, created_by, last_updated_at, last_updated_by`

type PgxSchemaRepository struct {
	BaseRepository
}

func newPgxSchemaRepository(db *pgxpool.Pool) portsrepo.SchemaRepositoryFacade {
	return &PgxSchemaRepository{BaseRepository{Pool: db}}
}

var _ portsrepo.SchemaRepositoryFacade = (*PgxSchemaRepository)(nil)

func scanSchema(row pgx.Row) (*domain.Schema, error) {
	var m models.Schema
	if err := row.Scan(
		&m.SchemaID,
		&m.UserID,
		&m.Fields,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	schema := mapping.ToDomainSchema(m)
	return &schema, nil
}

func (r *PgxSchemaRepository) FindSchemaByUserID(ctx context.Context, userID string) (*domain.Schema, error) {
	query := `SELECT ` + schemaColumns + ` FROM schemas WHERE user_id = $1;`
	schema, err := scanSchema(r.Pool.QueryRow(ctx, query, userID))
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to find schema for user %s: %w", userID, err)
	}
	return schema, err
}

// FindOrCreateSchema inserts the empty schema unless one exists and reads back whichever row won.
func (r *PgxSchemaRepository) FindOrCreateSchema(ctx context.Context, schema domain.Schema) (_ *domain.Schema, err error) {
	m := mapping.ToModelSchema(schema)

	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			_ = r.Rollback(ctx, tx)
		}
	}()

	insert := `
        INSERT INTO schemas (` + schemaColumns + `)
        VALUES ($1, $2, $3::jsonb, $4, $5, $6, $7)
        ON CONFLICT (user_id) DO NOTHING;
    `
	if _, err = tx.Exec(ctx, insert,
		m.SchemaID,
		m.UserID,
		m.Fields,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	); err != nil {
		return nil, fmt.Errorf("failed to insert schema: %w", err)
	}

	stored, err := scanSchema(tx.QueryRow(ctx, `SELECT `+schemaColumns+` FROM schemas WHERE user_id = $1;`, schema.UserID))
	if err != nil {
		return nil, fmt.Errorf("failed to read schema after insert: %w", err)
	}

	if err = r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return stored, nil
}

// AppendField relies on the row lock taken by UPDATE: the containment guard is re-checked
// against the latest row, so concurrent adds of the same key cannot both succeed.
func (r *PgxSchemaRepository) AppendField(ctx context.Context, userID string, field domain.Field, updatedAt time.Time) (*domain.Schema, error) {
	modelFields := mapping.ToModelFields([]domain.Field{field})
	// fields @> '[{"key": "..."}]' matches any element carrying that key
	probe := []map[string]string{{"key": field.Key}}

	query := `
        UPDATE schemas
        SET fields = fields || $2::jsonb, last_updated_at = $3, last_updated_by = $1
        WHERE user_id = $1 AND NOT (fields @> $4::jsonb)
        RETURNING ` + schemaColumns + `;
    `
	schema, err := scanSchema(r.Pool.QueryRow(ctx, query, userID, modelFields, updatedAt, probe))
	if err == nil {
		return schema, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to append schema field: %w", err)
	}

	if _, findErr := r.FindSchemaByUserID(ctx, userID); findErr != nil {
		return nil, findErr
	}
	return nil, fmt.Errorf("field %q: %w", field.Key, apperrors.ErrDuplicate)
}

func (r *PgxSchemaRepository) ReplaceFields(ctx context.Context, userID string, fields []domain.Field, updatedAt time.Time) (*domain.Schema, error) {
	query := `
        UPDATE schemas
        SET fields = $2::jsonb, last_updated_at = $3, last_updated_by = $1
        WHERE user_id = $1
        RETURNING ` + schemaColumns + `;
    `
	schema, err := scanSchema(r.Pool.QueryRow(ctx, query, userID, mapping.ToModelFields(fields), updatedAt))
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to replace schema fields: %w", err)
	}
	return schema, err
}
