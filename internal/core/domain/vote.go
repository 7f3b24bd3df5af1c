package domain

import "errors"

var ErrVoteNotFound = errors.New("vote not found")

// VoteType is the direction of a user's vote on a site.
type VoteType string

const (
	VoteLike    VoteType = "like"
	VoteDislike VoteType = "dislike"
)

// Valid reports whether t is a known vote type.
func (t VoteType) Valid() bool { return t == VoteLike || t == VoteDislike }

// VoteRecord holds a single user's current vote on a single site.
// At most one record exists per (UserID, SiteID) pair.
type VoteRecord struct {
	UserID string   `json:"user_id" bson:"user_id"`
	SiteID string   `json:"site_id" bson:"site_id"`
	Type   VoteType `json:"type" bson:"type"`
}
