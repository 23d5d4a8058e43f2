// README: Holiday service; validation over the calendar store.
package holiday

import (
	"context"
	"errors"
	"time"
)

var ErrBadRequest = errors.New("bad request")

type Storage interface {
	IsHoliday(ctx context.Context, date, country string) (bool, error)
	DatesBetween(ctx context.Context, country string, from, to time.Time) (map[string]bool, error)
	List(ctx context.Context, country string) ([]Holiday, error)
	Add(ctx context.Context, h Holiday) error
}

type Service struct {
	store Storage
}

func NewService(store Storage) *Service {
	return &Service{store: store}
}

func (s *Service) IsHoliday(ctx context.Context, date, country string) (bool, error) {
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return false, ErrBadRequest
	}
	if country == "" {
		country = "CO"
	}
	return s.store.IsHoliday(ctx, date, country)
}

func (s *Service) DatesBetween(ctx context.Context, country string, from, to time.Time) (map[string]bool, error) {
	if country == "" {
		country = "CO"
	}
	return s.store.DatesBetween(ctx, country, from, to)
}

func (s *Service) List(ctx context.Context, country string) ([]Holiday, error) {
	if country == "" {
		country = "CO"
	}
	return s.store.List(ctx, country)
}

func (s *Service) Add(ctx context.Context, h Holiday) error {
	if _, err := time.Parse("2006-01-02", h.Date); err != nil {
		return ErrBadRequest
	}
	if h.Country == "" {
		return ErrBadRequest
	}
	return s.store.Add(ctx, h)
}
