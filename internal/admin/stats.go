// AngelaMos | 2026
// stats.go

package admin

import (
	"context"
	"fmt"

	"github.com/carterperez-dev/balansai/internal/core"
)

// Stats are the headline numbers on the admin dashboard.
type Stats struct {
	TotalUsers     int         `db:"total_users"`
	ActiveUsers    int         `db:"active_users"`
	TotalRevenue   core.Amount `db:"total_revenue"`
	UnreadMessages int         `db:"unread_messages"`
}

const statsQuery = `
	SELECT
		(SELECT COUNT(*) FROM users) AS total_users,
		(SELECT COUNT(*) FROM users WHERE is_active) AS active_users,
		(SELECT COALESCE(SUM(amount), 0) FROM payments WHERE status = 'completed') AS total_revenue,
		(SELECT COUNT(*) FROM contacts WHERE NOT is_read) AS unread_messages`

type StatsRepository struct {
	db core.DBTX
}

func NewStatsRepository(db core.DBTX) *StatsRepository {
	return &StatsRepository{db: db}
}

func (r *StatsRepository) Load(ctx context.Context) (Stats, error) {
	var s Stats
	if err := r.db.GetContext(ctx, &s, statsQuery); err != nil {
		return Stats{}, fmt.Errorf("load dashboard stats: %w", err)
	}
	return s, nil
}
