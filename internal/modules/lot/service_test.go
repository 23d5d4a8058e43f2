// README: Lot registration tests over a fake store and resolver.
package lot

import (
	"context"
	"testing"

	"parkd/internal/types"
)

type memStore struct {
	lots map[types.ID]*Lot
}

func newMemStore() *memStore {
	return &memStore{lots: map[types.ID]*Lot{}}
}

func (m *memStore) Create(_ context.Context, l *Lot) error {
	cp := *l
	m.lots[l.ID] = &cp
	return nil
}

func (m *memStore) Get(_ context.Context, id types.ID) (*Lot, error) {
	l, ok := m.lots[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *l
	return &cp, nil
}

type fakeResolver struct {
	tz     string
	called bool
}

func (f *fakeResolver) ResolveTimezone(_ context.Context, _, _ float64) (string, error) {
	f.called = true
	return f.tz, nil
}

func TestRegisterResolvesTimezone(t *testing.T) {
	store := newMemStore()
	resolver := &fakeResolver{tz: "America/Bogota"}
	svc := NewService(store, resolver, "CO", "COP")

	id, err := svc.Register(context.Background(), RegisterCommand{
		CompanyID: "co1",
		Name:      "Centro",
		Lat:       4.6097, Lng: -74.0817,
	})
	if err != nil {
		t.Fatal(err)
	}
	if !resolver.called {
		t.Error("resolver not consulted for missing timezone")
	}
	l, err := svc.Get(context.Background(), id)
	if err != nil {
		t.Fatal(err)
	}
	if l.Timezone != "America/Bogota" || l.CountryCode != "CO" || l.Currency != "COP" {
		t.Errorf("lot = %+v, want resolved timezone and defaults", l)
	}
}

func TestRegisterExplicitTimezoneSkipsResolver(t *testing.T) {
	resolver := &fakeResolver{tz: "America/Bogota"}
	svc := NewService(newMemStore(), resolver, "CO", "COP")

	_, err := svc.Register(context.Background(), RegisterCommand{
		CompanyID: "co1",
		Name:      "Norte",
		Timezone:  "America/Mexico_City",
	})
	if err != nil {
		t.Fatal(err)
	}
	if resolver.called {
		t.Error("resolver consulted despite explicit timezone")
	}
}

func TestRegisterValidation(t *testing.T) {
	svc := NewService(newMemStore(), nil, "CO", "COP")
	ctx := context.Background()

	if _, err := svc.Register(ctx, RegisterCommand{Name: "x", Timezone: "UTC"}); err != ErrBadRequest {
		t.Errorf("missing company: err = %v, want ErrBadRequest", err)
	}
	if _, err := svc.Register(ctx, RegisterCommand{CompanyID: "co1", Timezone: "UTC"}); err != ErrBadRequest {
		t.Errorf("missing name: err = %v, want ErrBadRequest", err)
	}
	// No resolver and no explicit timezone.
	if _, err := svc.Register(ctx, RegisterCommand{CompanyID: "co1", Name: "x"}); err != ErrBadRequest {
		t.Errorf("no timezone: err = %v, want ErrBadRequest", err)
	}
	if _, err := svc.Register(ctx, RegisterCommand{CompanyID: "co1", Name: "x", Timezone: "Mars/Olympus"}); err != ErrBadRequest {
		t.Errorf("bad timezone: err = %v, want ErrBadRequest", err)
	}
}
