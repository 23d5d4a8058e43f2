// README: Lot service; registration resolves the timezone when absent.
package lot

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"time"

	"parkd/internal/modules/tariff"
	"parkd/internal/types"
)

var (
	ErrBadRequest = errors.New("bad request")
	ErrNotFound   = errors.New("lot not found")
)

// TimezoneResolver maps coordinates to an IANA timezone ID; the maps
// service implements it. It may be nil when no API key is configured,
// in which case registration requires an explicit timezone.
type TimezoneResolver interface {
	ResolveTimezone(ctx context.Context, lat, lng float64) (string, error)
}

type Storage interface {
	Create(ctx context.Context, l *Lot) error
	Get(ctx context.Context, id types.ID) (*Lot, error)
}

type Service struct {
	store           Storage
	tz              TimezoneResolver
	defaultCountry  string
	defaultCurrency string
}

func NewService(store Storage, tz TimezoneResolver, defaultCountry, defaultCurrency string) *Service {
	return &Service{store: store, tz: tz, defaultCountry: defaultCountry, defaultCurrency: defaultCurrency}
}

type RegisterCommand struct {
	CompanyID   types.ID
	Name        string
	Address     string
	Lat         float64
	Lng         float64
	Timezone    string
	CountryCode string
	Currency    string
}

func (s *Service) Register(ctx context.Context, cmd RegisterCommand) (types.ID, error) {
	if cmd.CompanyID == "" || cmd.Name == "" {
		return "", ErrBadRequest
	}

	tz := cmd.Timezone
	if tz == "" {
		if s.tz == nil {
			return "", ErrBadRequest
		}
		resolved, err := s.tz.ResolveTimezone(ctx, cmd.Lat, cmd.Lng)
		if err != nil {
			return "", err
		}
		tz = resolved
	}
	if _, err := time.LoadLocation(tz); err != nil {
		return "", ErrBadRequest
	}

	country := cmd.CountryCode
	if country == "" {
		country = s.defaultCountry
	}
	currency := cmd.Currency
	if currency == "" {
		currency = s.defaultCurrency
	}

	id := newID()
	l := &Lot{
		ID:          id,
		CompanyID:   cmd.CompanyID,
		Name:        cmd.Name,
		Address:     cmd.Address,
		Lat:         cmd.Lat,
		Lng:         cmd.Lng,
		Timezone:    tz,
		CountryCode: country,
		Currency:    currency,
	}
	if err := s.store.Create(ctx, l); err != nil {
		return "", err
	}
	return id, nil
}

func (s *Service) Get(ctx context.Context, id types.ID) (*Lot, error) {
	return s.store.Get(ctx, id)
}

// LotInfo adapts the lot record to what quoting needs; it satisfies
// tariff.LotSource.
func (s *Service) LotInfo(ctx context.Context, id types.ID) (tariff.LotInfo, error) {
	l, err := s.store.Get(ctx, id)
	if err != nil {
		return tariff.LotInfo{}, err
	}
	return tariff.LotInfo{
		Timezone:    l.Timezone,
		CountryCode: l.CountryCode,
		Currency:    l.Currency,
	}, nil
}

func newID() types.ID {
	b := make([]byte, 16)
	_, _ = rand.Read(b)
	return types.ID(hex.EncodeToString(b))
}
