package domain

import (
	"errors"
	"time"
)

// Category classifies a catalog entry.
type Category string

const (
	CategorySocial        Category = "Social Media"
	CategoryEducation     Category = "Education"
	CategoryTech          Category = "Technology"
	CategoryBusiness      Category = "Business"
	CategoryEntertainment Category = "Entertainment"
	CategoryNews          Category = "News"
	CategoryCreative      Category = "Creative"
	CategoryTools         Category = "Tools"
	CategoryAI            Category = "AI & ML"
)

// Categories lists every valid category in display order.
func Categories() []Category {
	return []Category{
		CategorySocial, CategoryEducation, CategoryTech, CategoryBusiness,
		CategoryEntertainment, CategoryNews, CategoryCreative, CategoryTools,
		CategoryAI,
	}
}

// Valid reports whether c is a known category.
func (c Category) Valid() bool {
	for _, known := range Categories() {
		if c == known {
			return true
		}
	}
	return false
}

var ErrSiteNotFound = errors.New("site not found")
var ErrSlotLimitReached = errors.New("site slot limit reached")
var ErrInvalidListing = errors.New("invalid listing")

// SiteLink is a catalog entry shown in the discovery feed.
type SiteLink struct {
	ID          string    `json:"id" bson:"_id"`
	URL         string    `json:"url" bson:"url"`
	Name        string    `json:"name" bson:"name"`
	Description string    `json:"description" bson:"description"`
	Category    Category  `json:"category" bson:"category"`
	Logo        string    `json:"logo" bson:"logo"`
	Likes       int64     `json:"likes" bson:"likes"`
	Dislikes    int64     `json:"dislikes" bson:"dislikes"`
	Clicks      int64     `json:"clicks" bson:"clicks"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
	Enabled     bool      `json:"enabled" bson:"enabled"`
	IsPaid      bool      `json:"is_paid,omitempty" bson:"is_paid,omitempty"`
	OwnerID     string    `json:"owner_id,omitempty" bson:"owner_id,omitempty"`
}
