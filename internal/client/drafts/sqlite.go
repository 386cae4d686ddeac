package drafts

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/cvpro/internal/common"
	"github.com/dmitrijs2005/cvpro/internal/dbx"
	"github.com/dmitrijs2005/cvpro/internal/snapshot"
)

// SQLiteRepository implements Repository using a DBTX (either *sql.DB or *sql.Tx).
type SQLiteRepository struct {
	db dbx.DBTX
}

// NewSQLiteRepository returns a new SQLiteRepository bound to the given DBTX.
func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// Save upserts a draft by name.
func (r *SQLiteRepository) Save(ctx context.Context, name string, s *snapshot.FormSnapshot) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to encode draft: %w", err)
	}

	query := `INSERT INTO drafts (name, data, updated_at)
			values (?, ?, ?)
			ON CONFLICT(name) DO UPDATE SET data = excluded.data,
				updated_at = excluded.updated_at
	`
	_, err = r.db.ExecContext(ctx, query, name, data, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to upsert draft: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) Get(ctx context.Context, name string) (*Draft, error) {
	query := `select name, data, updated_at from drafts where name=?`

	var (
		d    Draft
		data []byte
	)
	err := r.db.QueryRowContext(ctx, query, name).Scan(&d.Name, &data, &d.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("failed to select draft: %w", err)
	}

	var s snapshot.FormSnapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrorSnapshotCorrupt, err)
	}
	d.Snapshot = &s
	return &d, nil
}

func (r *SQLiteRepository) List(ctx context.Context) ([]Info, error) {
	query := `select name, updated_at from drafts order by updated_at desc`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to select drafts: %w", err)
	}
	defer rows.Close()

	var result []Info
	for rows.Next() {
		var item Info
		if err := rows.Scan(&item.Name, &item.UpdatedAt); err != nil {
			return nil, err
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *SQLiteRepository) Delete(ctx context.Context, name string) error {
	query := `delete from drafts where name=?`
	res, err := r.db.ExecContext(ctx, query, name)
	if err != nil {
		return fmt.Errorf("failed to delete draft: %w", err)
	}
	ra, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if ra == 0 {
		return common.ErrorNotFound
	}
	return nil
}
