package entitlements

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/cvpro/internal/dbx"
	"github.com/dmitrijs2005/cvpro/internal/entitlement"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) (*PostgresRepository, error) {
	return &PostgresRepository{db: db}, nil
}

func (r *PostgresRepository) Get(ctx context.Context, userID string) (entitlement.Record, bool, error) {

	query :=
		`SELECT paid_cv_hash, paid_cover_hash, paid_hash, last_product, paid_at
		 FROM entitlements
		 WHERE user_id = $1
		 `

	var rec entitlement.Record
	err := r.db.QueryRowContext(ctx, query, userID).Scan(
		&rec.PaidCvHash, &rec.PaidCoverHash, &rec.PaidHash, &rec.LastProduct, &rec.PaidAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return entitlement.Record{}, false, nil
		}
		return entitlement.Record{}, false, fmt.Errorf("error performing sql request: %v", err)
	}

	return rec, true, nil
}

func (r *PostgresRepository) Put(ctx context.Context, userID string, rec entitlement.Record) error {

	query :=
		`INSERT INTO entitlements (user_id, paid_cv_hash, paid_cover_hash, paid_hash, last_product, paid_at)
         VALUES ($1, $2, $3, $4, $5, $6)
         ON CONFLICT (user_id) DO UPDATE SET
             paid_cv_hash = EXCLUDED.paid_cv_hash,
             paid_cover_hash = EXCLUDED.paid_cover_hash,
             paid_hash = EXCLUDED.paid_hash,
             last_product = EXCLUDED.last_product,
             paid_at = EXCLUDED.paid_at
		 `

	_, err := r.db.ExecContext(ctx, query,
		userID, rec.PaidCvHash, rec.PaidCoverHash, rec.PaidHash, rec.LastProduct, rec.PaidAt)

	if err != nil {
		return fmt.Errorf("error performing sql request: %v", err)
	}

	return nil
}

func (r *PostgresRepository) Count(ctx context.Context) (int64, error) {

	query := `SELECT COUNT(*) FROM entitlements`

	var count int64
	if err := r.db.QueryRowContext(ctx, query).Scan(&count); err != nil {
		return 0, fmt.Errorf("error performing sql request: %v", err)
	}

	return count, nil
}
