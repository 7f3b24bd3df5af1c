package domain

import "errors"

var ErrAdNotFound = errors.New("ad not found")

// Ad is a sponsored entry spliced into the discovery feed.
type Ad struct {
	ID          string  `json:"id" bson:"_id"`
	ClientName  string  `json:"client_name" bson:"client_name"`
	Title       string  `json:"title" bson:"title"`
	Description string  `json:"description" bson:"description"`
	URL         string  `json:"url" bson:"url"`
	Image       string  `json:"image" bson:"image"`
	Clicks      int64   `json:"clicks" bson:"clicks"`
	Impressions int64   `json:"impressions" bson:"impressions"`
	CPC         float64 `json:"cpc" bson:"cpc"`
	Enabled     bool    `json:"enabled" bson:"enabled"`
}
