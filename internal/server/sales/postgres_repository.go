package sales

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/cvpro/internal/dbx"
	"github.com/dmitrijs2005/cvpro/internal/purchase"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) (*PostgresRepository, error) {
	return &PostgresRepository{db: db}, nil
}

func (r *PostgresRepository) Append(ctx context.Context, sale purchase.Sale) error {

	query :=
		`INSERT INTO sales (id, paid_at, user_id, email, amount, currency, reference, status, product, cv_hash, cover_hash)
         VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		 `

	_, err := r.db.ExecContext(ctx, query,
		sale.ID, sale.PaidAt, sale.UserID, sale.Email, sale.Amount, sale.Currency,
		sale.Reference, sale.Status, sale.Product, sale.CvHash, sale.CoverHash)

	if err != nil {
		return fmt.Errorf("error performing sql request: %v", err)
	}

	return nil
}

func (r *PostgresRepository) Recent(ctx context.Context, limit int) ([]purchase.Sale, error) {

	query :=
		`SELECT id, paid_at, user_id, email, amount, currency, reference, status, product, cv_hash, cover_hash
		 FROM sales
		 ORDER BY paid_at DESC
		 LIMIT $1
		 `

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("error performing sql request: %v", err)
	}
	defer rows.Close()

	var out []purchase.Sale
	for rows.Next() {
		var s purchase.Sale
		if err := rows.Scan(&s.ID, &s.PaidAt, &s.UserID, &s.Email, &s.Amount, &s.Currency,
			&s.Reference, &s.Status, &s.Product, &s.CvHash, &s.CoverHash); err != nil {
			return nil, fmt.Errorf("error scanning row: %v", err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %v", err)
	}

	return out, nil
}

func (r *PostgresRepository) TotalsSince(ctx context.Context, since time.Time) (Totals, error) {

	query :=
		`SELECT COUNT(*), COALESCE(SUM(amount), 0), COALESCE(MAX(currency), '')
		 FROM sales
		 WHERE paid_at >= $1
		 `

	var t Totals
	err := r.db.QueryRowContext(ctx, query, since).Scan(&t.Count, &t.Amount, &t.Currency)
	if err != nil {
		return Totals{}, fmt.Errorf("error performing sql request: %v", err)
	}

	return t, nil
}
