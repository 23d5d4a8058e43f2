// README: Holiday store backed by PostgreSQL with a Redis set cache.
package holiday

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

const (
	cacheKeyPrefix = "holiday:"
	// Calendars change rarely; a day of staleness is acceptable and
	// writes invalidate eagerly anyway.
	cacheTTL = 24 * time.Hour
)

type Store struct {
	db    *pgxpool.Pool
	redis *redis.Client
}

func NewStore(db *pgxpool.Pool, redis *redis.Client) *Store {
	return &Store{db: db, redis: redis}
}

func cacheKey(country string) string {
	return cacheKeyPrefix + country
}

// IsHoliday reports whether date (YYYY-MM-DD) is a holiday in country.
// It serves from the Redis set when warm and falls back to Postgres,
// repopulating the cache on the way.
func (s *Store) IsHoliday(ctx context.Context, date, country string) (bool, error) {
	key := cacheKey(country)
	if s.redis != nil {
		exists, err := s.redis.Exists(ctx, key).Result()
		if err == nil && exists == 1 {
			return s.redis.SIsMember(ctx, key, date).Result()
		}
		// Cache miss or redis trouble: answer from Postgres.
	}

	dates, err := s.allDates(ctx, country)
	if err != nil {
		return false, err
	}
	s.warmCache(ctx, country, dates)
	for _, d := range dates {
		if d == date {
			return true, nil
		}
	}
	return false, nil
}

// DatesBetween returns the holiday dates in [from, to] as a set keyed
// by ISO date. Used to preload quote computations.
func (s *Store) DatesBetween(ctx context.Context, country string, from, to time.Time) (map[string]bool, error) {
	rows, err := s.db.Query(ctx, `
        SELECT date FROM holidays
        WHERE country = $1 AND date BETWEEN $2 AND $3`,
		country, from.Format("2006-01-02"), to.Format("2006-01-02"),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := map[string]bool{}
	for rows.Next() {
		var d time.Time
		if err := rows.Scan(&d); err != nil {
			return nil, err
		}
		out[d.Format("2006-01-02")] = true
	}
	return out, rows.Err()
}

func (s *Store) List(ctx context.Context, country string) ([]Holiday, error) {
	rows, err := s.db.Query(ctx, `
        SELECT date, country, name FROM holidays
        WHERE country = $1 ORDER BY date`,
		country,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Holiday
	for rows.Next() {
		var h Holiday
		var d time.Time
		if err := rows.Scan(&d, &h.Country, &h.Name); err != nil {
			return nil, err
		}
		h.Date = d.Format("2006-01-02")
		out = append(out, h)
	}
	return out, rows.Err()
}

func (s *Store) Add(ctx context.Context, h Holiday) error {
	_, err := s.db.Exec(ctx, `
        INSERT INTO holidays (date, country, name)
        VALUES ($1, $2, $3)
        ON CONFLICT (date, country) DO UPDATE SET name = EXCLUDED.name`,
		h.Date, h.Country, h.Name,
	)
	if err != nil {
		return err
	}
	if s.redis != nil {
		_ = s.redis.Del(ctx, cacheKey(h.Country)).Err()
	}
	return nil
}

func (s *Store) allDates(ctx context.Context, country string) ([]string, error) {
	rows, err := s.db.Query(ctx, `SELECT date FROM holidays WHERE country = $1`, country)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var d time.Time
		if err := rows.Scan(&d); err != nil {
			return nil, err
		}
		out = append(out, d.Format("2006-01-02"))
	}
	return out, rows.Err()
}

func (s *Store) warmCache(ctx context.Context, country string, dates []string) {
	if s.redis == nil || len(dates) == 0 {
		return
	}
	key := cacheKey(country)
	members := make([]interface{}, len(dates))
	for i, d := range dates {
		members[i] = d
	}
	pipe := s.redis.Pipeline()
	pipe.SAdd(ctx, key, members...)
	pipe.Expire(ctx, key, cacheTTL)
	_, _ = pipe.Exec(ctx)
}
