// README: Session service tests (transitions + flow over an in-memory store).
package session

import (
	"context"
	"sync"
	"testing"
	"time"

	"parkd/internal/modules/tariff"
	"parkd/internal/types"
)

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from, to Status
		want     bool
	}{
		{StatusOpen, StatusCompleted, true},
		{StatusOpen, StatusCancelled, true},
		{StatusCompleted, StatusOpen, false},
		{StatusCompleted, StatusCancelled, false},
		{StatusCancelled, StatusCompleted, false},
	}
	for _, tc := range cases {
		if got := CanTransition(tc.from, tc.to); got != tc.want {
			t.Errorf("CanTransition(%s, %s) = %v, want %v", tc.from, tc.to, got, tc.want)
		}
	}
}

// memStore is an in-memory Storage for service tests.
type memStore struct {
	mu       sync.Mutex
	sessions map[types.ID]*Session
}

func newMemStore() *memStore {
	return &memStore{sessions: map[types.ID]*Session{}}
}

func (m *memStore) Create(_ context.Context, sess *Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *sess
	m.sessions[sess.ID] = &cp
	return nil
}

func (m *memStore) Get(_ context.Context, id types.ID) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	sess, ok := m.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *sess
	return &cp, nil
}

func (m *memStore) Complete(_ context.Context, id types.ID, exitAt time.Time, fee types.Money, ticketLost bool) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	sess, ok := m.sessions[id]
	if !ok || sess.Status != StatusOpen {
		return false, nil
	}
	sess.Status = StatusCompleted
	sess.ExitAt = &exitAt
	sess.Fee = &fee
	sess.TicketLost = ticketLost
	return true, nil
}

func (m *memStore) Cancel(_ context.Context, id types.ID) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	sess, ok := m.sessions[id]
	if !ok || sess.Status != StatusOpen {
		return false, nil
	}
	sess.Status = StatusCancelled
	return true, nil
}

func (m *memStore) HasOpenByPlate(_ context.Context, lotID types.ID, plate string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, sess := range m.sessions {
		if sess.LotID == lotID && sess.Plate == plate && sess.Status == StatusOpen {
			return true, nil
		}
	}
	return false, nil
}

// stubQuoter returns a fixed quote and records the last input.
type stubQuoter struct {
	quote *tariff.Quote
	last  tariff.QuoteInput
}

func (q *stubQuoter) Quote(_ context.Context, in tariff.QuoteInput) (*tariff.Quote, error) {
	q.last = in
	return q.quote, nil
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestCheckInValidation(t *testing.T) {
	svc := NewService(newMemStore(), &stubQuoter{})
	ctx := context.Background()

	cases := []CheckInCommand{
		{Plate: "ABC123", VehicleType: tariff.VehicleCar},               // no lot
		{LotID: "lot1", VehicleType: tariff.VehicleCar},                 // no plate
		{LotID: "lot1", Plate: "ABC123", VehicleType: "HOVERBOARD"},     // bad type
		{LotID: "lot1", Plate: "ABC123"},                                // missing type
	}
	for i, cmd := range cases {
		if _, err := svc.CheckIn(ctx, cmd); err != ErrBadRequest {
			t.Errorf("case %d: err = %v, want ErrBadRequest", i, err)
		}
	}
}

func TestCheckInRejectsSecondOpenSession(t *testing.T) {
	svc := NewService(newMemStore(), &stubQuoter{})
	ctx := context.Background()

	cmd := CheckInCommand{LotID: "lot1", Plate: "ABC123", VehicleType: tariff.VehicleCar}
	if _, err := svc.CheckIn(ctx, cmd); err != nil {
		t.Fatalf("first check-in: %v", err)
	}
	if _, err := svc.CheckIn(ctx, cmd); err != ErrActiveSession {
		t.Errorf("second check-in: err = %v, want ErrActiveSession", err)
	}
}

func TestCheckoutSettlesOnce(t *testing.T) {
	store := newMemStore()
	quoter := &stubQuoter{quote: &tariff.Quote{Total: 6000, Currency: "COP"}}
	svc := NewService(store, quoter)
	entry := time.Date(2026, 3, 4, 10, 0, 0, 0, time.UTC)
	svc.now = fixedClock(entry)
	ctx := context.Background()

	id, err := svc.CheckIn(ctx, CheckInCommand{
		LotID: "lot1", Plate: "ABC123", VehicleType: tariff.VehicleCar,
	})
	if err != nil {
		t.Fatal(err)
	}

	exit := entry.Add(2 * time.Hour)
	quote, err := svc.Checkout(ctx, CheckoutCommand{SessionID: id, ExitAt: exit, LostTicket: true})
	if err != nil {
		t.Fatal(err)
	}
	if quote.Total != 6000 {
		t.Errorf("Total = %d, want 6000", quote.Total)
	}
	if !quoter.last.Options.LostTicket {
		t.Error("checkout did not pass lost-ticket option to the quoter")
	}
	if !quoter.last.EntryAt.Equal(entry) || !quoter.last.ExitAt.Equal(exit) {
		t.Errorf("quoted window [%v, %v), want [%v, %v)",
			quoter.last.EntryAt, quoter.last.ExitAt, entry, exit)
	}

	sess, err := svc.Get(ctx, id)
	if err != nil {
		t.Fatal(err)
	}
	if sess.Status != StatusCompleted || sess.Fee == nil || sess.Fee.Amount != 6000 {
		t.Errorf("session after checkout = %+v", sess)
	}

	if _, err := svc.Checkout(ctx, CheckoutCommand{SessionID: id, ExitAt: exit}); err != ErrInvalidState {
		t.Errorf("second checkout: err = %v, want ErrInvalidState", err)
	}
}

func TestLiveQuoteRequiresOpenSession(t *testing.T) {
	store := newMemStore()
	quoter := &stubQuoter{quote: &tariff.Quote{Total: 1500, Currency: "COP"}}
	svc := NewService(store, quoter)
	now := time.Date(2026, 3, 4, 12, 0, 0, 0, time.UTC)
	svc.now = fixedClock(now)
	ctx := context.Background()

	id, err := svc.CheckIn(ctx, CheckInCommand{
		LotID: "lot1", Plate: "XYZ789", VehicleType: tariff.VehicleMotorcycle,
		EntryAt: now.Add(-30 * time.Minute),
	})
	if err != nil {
		t.Fatal(err)
	}

	quote, err := svc.LiveQuote(ctx, id)
	if err != nil {
		t.Fatal(err)
	}
	if quote.Total != 1500 {
		t.Errorf("Total = %d, want 1500", quote.Total)
	}
	if !quoter.last.ExitAt.Equal(now) {
		t.Errorf("live quote exit = %v, want now (%v)", quoter.last.ExitAt, now)
	}

	if err := svc.Cancel(ctx, id); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.LiveQuote(ctx, id); err != ErrInvalidState {
		t.Errorf("live quote on cancelled session: err = %v, want ErrInvalidState", err)
	}
}
