// AngelaMos | 2026
// setting.go

package setting

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/carterperez-dev/balansai/internal/core"
)

const MaxValueLength = 1000

type Setting struct {
	ID        int64     `db:"id"`
	Key       string    `db:"key_name"`
	Value     string    `db:"value"`
	UpdatedAt time.Time `db:"updated_at"`
}

type Repository interface {
	List(ctx context.Context) ([]Setting, error)
	Set(ctx context.Context, key, value string) (bool, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

func (r *repository) List(ctx context.Context) ([]Setting, error) {
	settings := []Setting{}
	query := `SELECT id, key_name, value, updated_at FROM settings ORDER BY key_name`
	if err := r.db.SelectContext(ctx, &settings, query); err != nil {
		return nil, fmt.Errorf("list settings: %w", err)
	}
	return settings, nil
}

// Set updates an existing key. It never creates one; the bool reports
// whether the key exists.
func (r *repository) Set(ctx context.Context, key, value string) (bool, error) {
	result, err := r.db.ExecContext(ctx,
		`UPDATE settings SET value = $2, updated_at = NOW() WHERE key_name = $1`, key, value)
	if err != nil {
		return false, fmt.Errorf("update setting %s: %w", key, err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("update setting %s: %w", key, err)
	}

	return rows > 0, nil
}

type Service struct {
	db *sqlx.DB
}

func NewService(db *sqlx.DB) *Service {
	return &Service{db: db}
}

func (s *Service) List(ctx context.Context) ([]Setting, error) {
	return NewRepository(s.db).List(ctx)
}

// Site returns every setting as a key → value map for the layout.
func (s *Service) Site(ctx context.Context) (map[string]string, error) {
	settings, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	site := make(map[string]string, len(settings))
	for _, st := range settings {
		site[st.Key] = st.Value
	}
	return site, nil
}

// UpdateMany writes values for the keys that already exist, all in one
// transaction. Unknown keys are skipped and reported back.
func (s *Service) UpdateMany(ctx context.Context, values map[string]string) ([]string, error) {
	var skipped []string

	err := core.InTx(ctx, s.db, func(tx *sqlx.Tx) error {
		repo := NewRepository(tx)
		for _, key := range slices.Sorted(maps.Keys(values)) {
			ok, err := repo.Set(ctx, key, values[key])
			if err != nil {
				return err
			}
			if !ok {
				skipped = append(skipped, key)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return skipped, nil
}
