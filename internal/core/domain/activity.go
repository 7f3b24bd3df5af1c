package domain

import "time"

// ActivityLog is an append-only human-readable audit entry. The store keeps
// only the newest ActivityLogCap entries.
type ActivityLog struct {
	ID        string    `json:"id" bson:"_id"`
	UserID    string    `json:"user_id" bson:"user_id"`
	Action    string    `json:"action" bson:"action"`
	Timestamp time.Time `json:"timestamp" bson:"timestamp"`
}
