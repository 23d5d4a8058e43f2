// README: Parking session store backed by PostgreSQL.
package session

import (
	"context"
	"database/sql"
	"errors"
	"time"

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

func (s *Store) Create(ctx context.Context, sess *Session) error {
	_, err := s.db.Exec(ctx, `
        INSERT INTO parking_sessions (
            id, lot_id, company_id, plate, vehicle_type, spot_code,
            entry_at, status, created_at
        ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		string(sess.ID),
		string(sess.LotID),
		string(sess.CompanyID),
		sess.Plate,
		string(sess.VehicleType),
		sess.SpotCode,
		sess.EntryAt,
		string(sess.Status),
		sess.CreatedAt,
	)
	return err
}

func (s *Store) Get(ctx context.Context, id types.ID) (*Session, error) {
	row := s.db.QueryRow(ctx, `
        SELECT id, lot_id, company_id, plate, vehicle_type, spot_code,
               entry_at, exit_at, fee, currency, ticket_lost, status, created_at
        FROM parking_sessions
        WHERE id = $1`, string(id),
	)

	var sess Session
	var spotCode sql.NullString
	var exitAt sql.NullTime
	var fee sql.NullInt64
	var currency sql.NullString

	err := row.Scan(
		&sess.ID, &sess.LotID, &sess.CompanyID, &sess.Plate, &sess.VehicleType, &spotCode,
		&sess.EntryAt, &exitAt, &fee, &currency, &sess.TicketLost, &sess.Status, &sess.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	if spotCode.Valid {
		sess.SpotCode = &spotCode.String
	}
	if exitAt.Valid {
		t := exitAt.Time
		sess.ExitAt = &t
	}
	if fee.Valid {
		m := types.Money{Amount: fee.Int64, Currency: currency.String}
		sess.Fee = &m
	}
	return &sess, nil
}

// Complete closes an open session with its final fee. The status guard
// in the WHERE clause makes concurrent checkouts settle exactly once.
func (s *Store) Complete(ctx context.Context, id types.ID, exitAt time.Time, fee types.Money, ticketLost bool) (bool, error) {
	tag, err := s.db.Exec(ctx, `
        UPDATE parking_sessions
        SET status = $1, exit_at = $2, fee = $3, currency = $4, ticket_lost = $5
        WHERE id = $6 AND status = $7`,
		string(StatusCompleted),
		exitAt,
		fee.Amount,
		fee.Currency,
		ticketLost,
		string(id),
		string(StatusOpen),
	)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func (s *Store) Cancel(ctx context.Context, id types.ID) (bool, error) {
	tag, err := s.db.Exec(ctx, `
        UPDATE parking_sessions
        SET status = $1
        WHERE id = $2 AND status = $3`,
		string(StatusCancelled),
		string(id),
		string(StatusOpen),
	)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func (s *Store) HasOpenByPlate(ctx context.Context, lotID types.ID, plate string) (bool, error) {
	row := s.db.QueryRow(ctx, `
        SELECT EXISTS (
            SELECT 1 FROM parking_sessions
            WHERE lot_id = $1 AND plate = $2 AND status = 'open'
        )`, string(lotID), plate,
	)
	var exists bool
	if err := row.Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}
