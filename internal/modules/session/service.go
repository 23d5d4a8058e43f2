// README: Session service: check-in, live quote, and checkout.
package session

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
	ErrBadRequest    = errors.New("bad request")
	ErrNotFound      = errors.New("session not found")
	ErrActiveSession = errors.New("plate already has an open session")
	ErrInvalidState  = errors.New("invalid session state")
	ErrConflict      = errors.New("session state conflict")
)

// Storage is what the service needs from persistence; *Store
// implements it, tests use an in-memory fake.
type Storage interface {
	Create(ctx context.Context, sess *Session) error
	Get(ctx context.Context, id types.ID) (*Session, error)
	Complete(ctx context.Context, id types.ID, exitAt time.Time, fee types.Money, ticketLost bool) (bool, error)
	Cancel(ctx context.Context, id types.ID) (bool, error)
	HasOpenByPlate(ctx context.Context, lotID types.ID, plate string) (bool, error)
}

// Quoter computes a charge for a window; the tariff service implements it.
type Quoter interface {
	Quote(ctx context.Context, in tariff.QuoteInput) (*tariff.Quote, error)
}

type Service struct {
	store   Storage
	tariffs Quoter
	now     func() time.Time
}

func NewService(store Storage, tariffs Quoter) *Service {
	return &Service{store: store, tariffs: tariffs, now: time.Now}
}

type CheckInCommand struct {
	LotID       types.ID
	CompanyID   types.ID
	Plate       string
	VehicleType tariff.VehicleType
	SpotCode    *string
	EntryAt     time.Time
}

type CheckoutCommand struct {
	SessionID  types.ID
	ExitAt     time.Time
	LostTicket bool
}

func (s *Service) CheckIn(ctx context.Context, cmd CheckInCommand) (types.ID, error) {
	if cmd.LotID == "" || cmd.Plate == "" || !cmd.VehicleType.Valid() {
		return "", ErrBadRequest
	}
	open, err := s.store.HasOpenByPlate(ctx, cmd.LotID, cmd.Plate)
	if err != nil {
		return "", err
	}
	if open {
		return "", ErrActiveSession
	}

	entryAt := cmd.EntryAt
	if entryAt.IsZero() {
		entryAt = s.now()
	}

	id := newID()
	sess := &Session{
		ID:          id,
		LotID:       cmd.LotID,
		CompanyID:   cmd.CompanyID,
		Plate:       cmd.Plate,
		VehicleType: cmd.VehicleType,
		SpotCode:    cmd.SpotCode,
		EntryAt:     entryAt,
		Status:      StatusOpen,
		CreatedAt:   s.now(),
	}
	if err := s.store.Create(ctx, sess); err != nil {
		return "", err
	}
	return id, nil
}

func (s *Service) Get(ctx context.Context, id types.ID) (*Session, error) {
	return s.store.Get(ctx, id)
}

// LiveQuote prices an open session as if it ended now. It persists
// nothing; the display endpoint calls it repeatedly while the car is
// still parked.
func (s *Service) LiveQuote(ctx context.Context, id types.ID) (*tariff.Quote, error) {
	sess, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if sess.Status != StatusOpen {
		return nil, ErrInvalidState
	}
	return s.tariffs.Quote(ctx, tariff.QuoteInput{
		LotID:       sess.LotID,
		CompanyID:   sess.CompanyID,
		VehicleType: sess.VehicleType,
		EntryAt:     sess.EntryAt,
		ExitAt:      s.now(),
		Options:     tariff.DefaultOptions(),
	})
}

// Checkout computes the final quote and completes the session with the
// settled fee.
func (s *Service) Checkout(ctx context.Context, cmd CheckoutCommand) (*tariff.Quote, error) {
	sess, err := s.store.Get(ctx, cmd.SessionID)
	if err != nil {
		return nil, err
	}
	if !CanTransition(sess.Status, StatusCompleted) {
		return nil, ErrInvalidState
	}

	exitAt := cmd.ExitAt
	if exitAt.IsZero() {
		exitAt = s.now()
	}

	opts := tariff.DefaultOptions()
	opts.LostTicket = cmd.LostTicket
	quote, err := s.tariffs.Quote(ctx, tariff.QuoteInput{
		LotID:       sess.LotID,
		CompanyID:   sess.CompanyID,
		VehicleType: sess.VehicleType,
		EntryAt:     sess.EntryAt,
		ExitAt:      exitAt,
		Options:     opts,
	})
	if err != nil {
		return nil, err
	}

	fee := types.Money{Amount: quote.Total, Currency: quote.Currency}
	ok, err := s.store.Complete(ctx, sess.ID, exitAt, fee, cmd.LostTicket)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrConflict
	}
	return quote, nil
}

func (s *Service) Cancel(ctx context.Context, id types.ID) error {
	sess, err := s.store.Get(ctx, id)
	if err != nil {
		return err
	}
	if !CanTransition(sess.Status, StatusCancelled) {
		return ErrInvalidState
	}
	ok, err := s.store.Cancel(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrConflict
	}
	return nil
}

func newID() types.ID {
	b := make([]byte, 16)
	_, _ = rand.Read(b)
	return types.ID(hex.EncodeToString(b))
}
