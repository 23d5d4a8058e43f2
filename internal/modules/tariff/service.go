// README: Tariff service; snapshots rules/config/holidays and runs the quote engine.
package tariff

import (
	"context"
	"errors"
	"fmt"
	"time"

	"parkd/internal/types"
)

var ErrBadRequest = errors.New("bad request")

// RuleSource provides the rule/config snapshot for one quote.
// *Store implements it; tests supply in-memory tables.
type RuleSource interface {
	ActiveRules(ctx context.Context, lotID, companyID types.ID, vt VehicleType) ([]Rule, error)
	GetConfig(ctx context.Context, lotID, companyID types.ID) (*Config, error)
}

// LotInfo is the slice of lot data quoting needs.
type LotInfo struct {
	Timezone    string
	CountryCode string
	Currency    string
}

type LotSource interface {
	LotInfo(ctx context.Context, id types.ID) (LotInfo, error)
}

// HolidaySource preloads the holiday dates covering a window, keyed by
// ISO date (YYYY-MM-DD).
type HolidaySource interface {
	DatesBetween(ctx context.Context, country string, from, to time.Time) (map[string]bool, error)
}

type Service struct {
	store    RuleSource
	lots     LotSource
	holidays HolidaySource
}

func NewService(store RuleSource, lots LotSource, holidays HolidaySource) *Service {
	return &Service{store: store, lots: lots, holidays: holidays}
}

// Quote reads a consistent snapshot of rules, config, and holidays,
// then computes the charge. All I/O happens here; the engine itself is
// pure, so concurrent quotes need no coordination.
func (s *Service) Quote(ctx context.Context, in QuoteInput) (*Quote, error) {
	if in.LotID == "" || !in.VehicleType.Valid() {
		return nil, ErrBadRequest
	}
	if !in.EntryAt.Before(in.ExitAt) {
		return nil, ErrInvalidWindow
	}
	if in.Options.OverrideDayType != nil && !in.Options.OverrideDayType.Valid() {
		return nil, ErrBadRequest
	}

	info, err := s.lots.LotInfo(ctx, in.LotID)
	if err != nil {
		return nil, err
	}
	loc, err := time.LoadLocation(info.Timezone)
	if err != nil {
		return nil, fmt.Errorf("lot %s timezone %q: %w", in.LotID, info.Timezone, err)
	}
	in.EntryAt = in.EntryAt.In(loc)
	in.ExitAt = in.ExitAt.In(loc)

	rules, err := s.store.ActiveRules(ctx, in.LotID, in.CompanyID, in.VehicleType)
	if err != nil {
		return nil, err
	}
	type bucket struct {
		d DayType
		p Period
	}
	byBucket := make(map[bucket]Rule, len(rules))
	for _, r := range rules {
		byBucket[bucket{r.DayType, r.Period}] = r
	}
	resolve := func(_ VehicleType, d DayType, p Period) (Rule, bool) {
		r, ok := byBucket[bucket{d, p}]
		return r, ok
	}

	cfgPtr, err := s.store.GetConfig(ctx, in.LotID, in.CompanyID)
	if err != nil {
		return nil, err
	}
	cfg := Config{Currency: info.Currency}
	if cfgPtr != nil {
		cfg = *cfgPtr
		if cfg.Currency == "" {
			cfg.Currency = info.Currency
		}
	}

	// Holiday dates are read once up front so the engine runs without
	// I/O. The override skips the lookup entirely.
	var isHoliday HolidayLookup
	if in.Options.OverrideDayType == nil {
		dates, err := s.holidays.DatesBetween(ctx, info.CountryCode, in.EntryAt, in.ExitAt)
		if err != nil {
			return nil, err
		}
		isHoliday = func(dateISO string) bool { return dates[dateISO] }
	}

	return CalculateQuote(in, resolve, cfg, isHoliday)
}
