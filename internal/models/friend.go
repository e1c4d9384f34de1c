package models

import "time"

const (
	StatusPending  = "pending"
	StatusAccepted = "accepted"
	StatusRejected = "rejected"
)

type FriendRequest struct {
	ID         int64     `db:"id" json:"id"`
	SenderID   int64     `db:"sender_id" json:"sender_id"`
	ReceiverID int64     `db:"receiver_id" json:"receiver_id"`
	Status     string    `db:"status" json:"status"`
	SentAt     time.Time `db:"sent_at" json:"sent_at"`
	UpdatedAt  time.Time `db:"updated_at" json:"updated_at"`
}
