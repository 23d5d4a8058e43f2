// README: Lot store backed by PostgreSQL.
package lot

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"parkd/internal/types"
)

type Store struct {
	db *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

func (s *Store) Create(ctx context.Context, l *Lot) error {
	_, err := s.db.Exec(ctx, `
        INSERT INTO lots (
            id, company_id, name, address, lat, lng, timezone, country_code, currency
        ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		string(l.ID),
		string(l.CompanyID),
		l.Name,
		l.Address,
		l.Lat, l.Lng,
		l.Timezone,
		l.CountryCode,
		l.Currency,
	)
	return err
}

func (s *Store) Get(ctx context.Context, id types.ID) (*Lot, error) {
	row := s.db.QueryRow(ctx, `
        SELECT id, company_id, name, address, lat, lng, timezone, country_code, currency
        FROM lots
        WHERE id = $1`, string(id),
	)

	var l Lot
	err := row.Scan(&l.ID, &l.CompanyID, &l.Name, &l.Address, &l.Lat, &l.Lng,
		&l.Timezone, &l.CountryCode, &l.Currency)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &l, nil
}
