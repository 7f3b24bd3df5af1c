package domain

import (
	"errors"
	"time"
)

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// SubscriptionTier is the paid level of a user account.
type SubscriptionTier string

const (
	TierFree   SubscriptionTier = "FREE"
	TierBronze SubscriptionTier = "BRONZE"
	TierSilver SubscriptionTier = "SILVER"
	TierGold   SubscriptionTier = "GOLD"
)

// ShuffleDateLayout is the calendar-date key used for the daily quota.
const ShuffleDateLayout = "2006-01-02"

var ErrUserNotFound = errors.New("user not found")
var ErrUserExists = errors.New("user already exists")
var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrAccountBlocked = errors.New("account is blocked")
var ErrSignupDisabled = errors.New("sign-up is disabled")
var ErrForbidden = errors.New("access forbidden")
var ErrShuffleQuotaExceeded = errors.New("daily shuffle limit reached")
var ErrPayoutBelowThreshold = errors.New("balance below payout threshold")
var ErrNoPaymentDetails = errors.New("payment details not configured")

// User models an account in the platform. PasswordHash never leaves the
// server; the remaining fields are safe for read-only UI snapshots.
type User struct {
	ID               string           `json:"id" bson:"_id"`
	Username         string           `json:"username" bson:"username"`
	Email            string           `json:"email" bson:"email"`
	PasswordHash     string           `json:"-" bson:"password_hash"`
	Role             string           `json:"role" bson:"role"`
	CreatedAt        time.Time        `json:"created_at" bson:"created_at"`
	IsBlocked        bool             `json:"is_blocked" bson:"is_blocked"`
	Credits          int64            `json:"credits" bson:"credits"`
	SubscriptionTier SubscriptionTier `json:"subscription_tier" bson:"subscription_tier"`
	ShufflesToday    int              `json:"shuffles_today" bson:"shuffles_today"`
	LastShuffleDate  string           `json:"last_shuffle_date" bson:"last_shuffle_date"`
	ReferralCode     string           `json:"referral_code" bson:"referral_code"`
	ReferredCount    int              `json:"referred_count" bson:"referred_count"`
	ReferredByID     string           `json:"referred_by_id,omitempty" bson:"referred_by_id,omitempty"`
	ExtraSlots       int              `json:"extra_slots" bson:"extra_slots"`
	Balance          float64          `json:"balance" bson:"balance"`
	TotalEarnings    float64          `json:"total_earnings" bson:"total_earnings"`
	PayoutThreshold  float64          `json:"payout_threshold" bson:"payout_threshold"`
	DisplayName      string           `json:"display_name,omitempty" bson:"display_name,omitempty"`
	ProfileImage     string           `json:"profile_image,omitempty" bson:"profile_image,omitempty"`
	PaymentDetails   string           `json:"payment_details,omitempty" bson:"payment_details,omitempty"`
}

// IsAdmin reports whether the user holds the administrator role.
func (u *User) IsAdmin() bool { return u.Role == RoleAdmin }

// EarnsFromClicks reports whether clicks on the user's sites accrue earnings.
// FREE-tier owners never earn.
func (u *User) EarnsFromClicks() bool { return u.SubscriptionTier != TierFree }
