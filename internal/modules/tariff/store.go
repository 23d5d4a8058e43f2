// README: Tariff rule and pricing config store backed by PostgreSQL.
package tariff

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

// ActiveRules returns the active rules for one lot and vehicle type.
// The result is the immutable snapshot one quote computes against.
func (s *Store) ActiveRules(ctx context.Context, lotID, companyID types.ID, vt VehicleType) ([]Rule, error) {
	rows, err := s.db.Query(ctx, `
        SELECT id, lot_id, company_id, vehicle_type, day_type, period,
               start_time, end_time, billing_unit, unit_price, minimum_charge, rounding, is_active
        FROM tariff_rules
        WHERE lot_id = $1 AND company_id = $2 AND vehicle_type = $3 AND is_active`,
		string(lotID), string(companyID), string(vt),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Rule
	for rows.Next() {
		var r Rule
		var minCharge *int64
		if err := rows.Scan(
			&r.ID, &r.LotID, &r.CompanyID, &r.VehicleType, &r.DayType, &r.Period,
			&r.StartTime, &r.EndTime, &r.Unit, &r.UnitPrice, &minCharge, &r.Rounding, &r.IsActive,
		); err != nil {
			return nil, err
		}
		r.MinimumCharge = minCharge
		out = append(out, r)
	}
	return out, rows.Err()
}

// GetConfig returns the lot's pricing config, or nil when none exists.
func (s *Store) GetConfig(ctx context.Context, lotID, companyID types.ID) (*Config, error) {
	row := s.db.QueryRow(ctx, `
        SELECT grace_minutes, daily_max, lost_ticket_fee, currency
        FROM pricing_configs
        WHERE lot_id = $1 AND company_id = $2`,
		string(lotID), string(companyID),
	)

	var cfg Config
	err := row.Scan(&cfg.GraceMinutes, &cfg.DailyMax, &cfg.LostTicketFee, &cfg.Currency)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}
