// README: DB-backed session store tests (env-gated).
package session

import (
	"bufio"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"parkd/internal/modules/tariff"
	"parkd/internal/types"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()

	dsn := os.Getenv("PARKD_TEST_DSN")
	if dsn == "" {
		t.Skip("PARKD_TEST_DSN not set; skipping DB-backed store tests")
	}

	ctx := context.Background()
	db, err := pgxpool.New(ctx, dsn)
	if err != nil {
		t.Fatalf("connect db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := applyMigration(ctx, db); err != nil {
		t.Fatalf("apply migration: %v", err)
	}

	if _, err := db.Exec(ctx, "TRUNCATE TABLE parking_sessions, pricing_configs, tariff_rules, holidays, lots CASCADE"); err != nil {
		t.Fatalf("truncate tables: %v", err)
	}
	if _, err := db.Exec(ctx, `
        INSERT INTO lots (id, company_id, name, timezone) VALUES ('lot1', 'co1', 'test lot', 'America/Bogota')`); err != nil {
		t.Fatalf("seed lot: %v", err)
	}

	return NewStore(db)
}

func TestStoreCompleteOnce(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	sess := &Session{
		ID:          types.ID("s1"),
		LotID:       "lot1",
		CompanyID:   "co1",
		Plate:       "ABC123",
		VehicleType: tariff.VehicleCar,
		EntryAt:     time.Date(2026, 3, 4, 10, 0, 0, 0, time.UTC),
		Status:      StatusOpen,
		CreatedAt:   time.Now().UTC(),
	}
	if err := store.Create(ctx, sess); err != nil {
		t.Fatalf("create: %v", err)
	}

	open, err := store.HasOpenByPlate(ctx, "lot1", "ABC123")
	if err != nil || !open {
		t.Fatalf("HasOpenByPlate = %v, %v; want true", open, err)
	}

	exit := sess.EntryAt.Add(2 * time.Hour)
	fee := types.Money{Amount: 6000, Currency: "COP"}

	ok, err := store.Complete(ctx, sess.ID, exit, fee, false)
	if err != nil || !ok {
		t.Fatalf("first complete = %v, %v; want true", ok, err)
	}
	ok, err = store.Complete(ctx, sess.ID, exit, fee, false)
	if err != nil {
		t.Fatalf("second complete: %v", err)
	}
	if ok {
		t.Error("second complete succeeded; status guard failed")
	}

	got, err := store.Get(ctx, sess.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Status != StatusCompleted || got.Fee == nil || got.Fee.Amount != 6000 || got.Fee.Currency != "COP" {
		t.Errorf("session = %+v", got)
	}
	if got.ExitAt == nil || !got.ExitAt.Equal(exit) {
		t.Errorf("ExitAt = %v, want %v", got.ExitAt, exit)
	}
}

func TestStoreGetMissing(t *testing.T) {
	store := setupTestStore(t)
	if _, err := store.Get(context.Background(), "nope"); err != ErrNotFound {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func applyMigration(ctx context.Context, db *pgxpool.Pool) error {
	root, err := repoRoot()
	if err != nil {
		return err
	}
	for _, name := range []string{"0001_init.sql"} {
		path := filepath.Join(root, "migrations", name)
		content, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		cleaned := stripSQLComments(string(content))
		for _, stmt := range splitSQL(cleaned) {
			if _, err := db.Exec(ctx, stmt); err != nil {
				return err
			}
		}
	}
	return nil
}

func repoRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}
	for i := 0; i < 6; i++ {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", os.ErrNotExist
}

func stripSQLComments(input string) string {
	var b strings.Builder
	scanner := bufio.NewScanner(strings.NewReader(input))
	for scanner.Scan() {
		line := scanner.Text()
		if idx := strings.Index(line, "--"); idx >= 0 {
			line = line[:idx]
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}

func splitSQL(input string) []string {
	var out []string
	for _, stmt := range strings.Split(input, ";") {
		stmt = strings.TrimSpace(stmt)
		if stmt != "" {
			out = append(out, stmt)
		}
	}
	return out
}
