package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Tip is one player's predicted top 10 for one race. One row per (user, race);
// saves overwrite in place while the race is in voting.
type Tip struct {
	bun.BaseModel `bun:"table:tips,alias:t"`

	ID        int64     `bun:"id,pk,autoincrement" json:"id"`
	UserID    int64     `bun:"user_id,notnull" json:"userID"`
	RaceID    int64     `bun:"race_id,notnull" json:"raceID"`
	Order     []string  `bun:"tip_order,array" json:"order"`
	UpdatedAt time.Time `bun:"updated_at,nullzero" json:"updatedAt"`
}
