// README: Holiday service validation tests over a fake store.
package holiday

import (
	"context"
	"testing"
	"time"
)

type fakeStore struct {
	added []Holiday
	dates map[string]bool
}

func (f *fakeStore) IsHoliday(_ context.Context, date, _ string) (bool, error) {
	return f.dates[date], nil
}

func (f *fakeStore) DatesBetween(_ context.Context, _ string, _, _ time.Time) (map[string]bool, error) {
	return f.dates, nil
}

func (f *fakeStore) List(_ context.Context, _ string) ([]Holiday, error) {
	return nil, nil
}

func (f *fakeStore) Add(_ context.Context, h Holiday) error {
	f.added = append(f.added, h)
	return nil
}

func TestIsHolidayRejectsBadDate(t *testing.T) {
	svc := NewService(&fakeStore{})
	if _, err := svc.IsHoliday(context.Background(), "04-03-2026", "CO"); err != ErrBadRequest {
		t.Errorf("err = %v, want ErrBadRequest", err)
	}
	if _, err := svc.IsHoliday(context.Background(), "2026-03-04T00:00:00Z", "CO"); err != ErrBadRequest {
		t.Errorf("err = %v, want ErrBadRequest", err)
	}
}

func TestIsHolidayDefaultsCountry(t *testing.T) {
	store := &fakeStore{dates: map[string]bool{"2026-07-20": true}}
	svc := NewService(store)
	got, err := svc.IsHoliday(context.Background(), "2026-07-20", "")
	if err != nil || !got {
		t.Errorf("IsHoliday = %v, %v; want true, nil", got, err)
	}
}

func TestAddValidates(t *testing.T) {
	store := &fakeStore{}
	svc := NewService(store)

	if err := svc.Add(context.Background(), Holiday{Date: "bad", Country: "CO"}); err != ErrBadRequest {
		t.Errorf("bad date: err = %v, want ErrBadRequest", err)
	}
	if err := svc.Add(context.Background(), Holiday{Date: "2026-07-20"}); err != ErrBadRequest {
		t.Errorf("missing country: err = %v, want ErrBadRequest", err)
	}
	if err := svc.Add(context.Background(), Holiday{Date: "2026-07-20", Country: "CO", Name: "Independence Day"}); err != nil {
		t.Errorf("valid add: err = %v", err)
	}
	if len(store.added) != 1 {
		t.Errorf("store.added = %v, want one entry", store.added)
	}
}
