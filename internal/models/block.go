package models

import "time"

type BlockEntry struct {
	ID        int64     `db:"id" json:"id"`
	BlockerID int64     `db:"blocker_id" json:"blocker_id"`
	BlockedID int64     `db:"blocked_id" json:"blocked_id"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
