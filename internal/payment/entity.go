// AngelaMos | 2026
// entity.go

package payment

import (
	"time"

	"github.com/carterperez-dev/balansai/internal/core"
)

type Payment struct {
	ID        int64       `db:"id"`
	UserID    int64       `db:"user_id"`
	Amount    core.Amount `db:"amount"`
	Plan      string      `db:"plan"`
	Method    string      `db:"method"`
	Status    string      `db:"status"`
	CreatedAt time.Time   `db:"created_at"`
}

// Row is a payment joined with its owner for the admin views.
type Row struct {
	Payment
	UserName  string `db:"user_name"`
	UserEmail string `db:"user_email"`
}

const (
	StatusCompleted = "completed"
	StatusPending   = "pending"
	StatusFailed    = "failed"
	StatusRefunded  = "refunded"
)

var Statuses = []string{StatusCompleted, StatusPending, StatusFailed, StatusRefunded}
