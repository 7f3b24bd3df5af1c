package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/websurfer/discovery/internal/core/domain"
	"github.com/websurfer/discovery/internal/core/ports"
)

const (
	referralCodeLength   = 6
	referralCodeAttempts = 10
)

// AuthService implements signup (with the referral ladder), login and
// logout.
type AuthService struct {
	users    ports.UserRepository
	config   ports.ConfigRepository
	sessions ports.SessionStore
	activity ports.ActivityRepository
	logger   zerolog.Logger

	jwtSecret string
	tokenTTL  time.Duration
}

func NewAuthService(
	users ports.UserRepository,
	config ports.ConfigRepository,
	sessions ports.SessionStore,
	activity ports.ActivityRepository,
	jwtSecret string,
	tokenTTL time.Duration,
	logger zerolog.Logger,
) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{
		users: users, config: config, sessions: sessions, activity: activity,
		jwtSecret: jwtSecret, tokenTTL: tokenTTL, logger: logger,
	}
}

// Signup creates a FREE-tier account. A valid referral code credits the
// referrer: referredCount increments, extraSlots recomputes as
// referredCount/10, and 50 bonus credits land exactly when the new count
// is a multiple of 10. Unknown codes are silently ignored.
func (s *AuthService) Signup(ctx context.Context, input ports.SignupInput) (*domain.User, error) {
	cfg, err := s.config.Load(ctx)
	if err != nil {
		return nil, err
	}
	if !cfg.IsSignUpEnabled {
		return nil, domain.ErrSignupDisabled
	}
	if input.Username == "" || input.Email == "" || input.Password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	if _, err := s.users.FindByUsername(ctx, input.Username); err == nil {
		return nil, domain.ErrUserExists
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	var referrer *domain.User
	if input.ReferralCode != "" {
		referrer, err = s.users.FindByReferralCode(ctx, strings.ToUpper(input.ReferralCode))
		if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
			return nil, err
		}
	}

	code, err := s.newReferralCode(ctx)
	if err != nil {
		return nil, fmt.Errorf("signup: %w", err)
	}

	now := time.Now().UTC()
	user := &domain.User{
		ID:               uuid.NewString(),
		Username:         input.Username,
		Email:            input.Email,
		PasswordHash:     string(hash),
		Role:             domain.RoleUser,
		CreatedAt:        now,
		SubscriptionTier: domain.TierFree,
		LastShuffleDate:  now.Format(domain.ShuffleDateLayout),
		ReferralCode:     code,
		PayoutThreshold:  domain.PayoutThreshold,
	}
	if referrer != nil {
		user.ReferredByID = referrer.ID
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("signup: %w", err)
	}

	if referrer != nil {
		newCount := referrer.ReferredCount + 1
		extraSlots := newCount / domain.ReferralSlotStep
		var bonus int64
		if newCount%domain.ReferralSlotStep == 0 {
			bonus = domain.ReferralBonusCredits
		}
		if err := s.users.ApplyReferralBonus(ctx, referrer.ID, extraSlots, bonus); err != nil {
			s.logger.Error().Err(err).Str("referrer_id", referrer.ID).Msg("failed to apply referral bonus")
		} else {
			recordActivity(ctx, s.activity, s.logger, referrer.ID, fmt.Sprintf("Referred new user: %s", user.Username))
		}
	}

	recordActivity(ctx, s.activity, s.logger, user.ID, "Signed up")
	s.logger.Info().Str("user_id", user.ID).Str("username", user.Username).Bool("referred", referrer != nil).Msg("user signed up")

	return user, nil
}

// Login verifies credentials, rejects blocked accounts, and returns a
// signed bearer token backed by a redis session record.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, *domain.User, error) {
	if username == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return "", nil, err
	}
	if user.IsBlocked {
		return "", nil, domain.ErrAccountBlocked
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	tokenID := uuid.NewString()
	token, err := s.generateToken(user, tokenID)
	if err != nil {
		return "", nil, err
	}
	if err := s.sessions.Save(ctx, tokenID, user.ID, s.tokenTTL); err != nil {
		return "", nil, fmt.Errorf("login: save session: %w", err)
	}

	recordActivity(ctx, s.activity, s.logger, user.ID, "Logged in")
	return token, user, nil
}

// Logout drops the session; the JWT becomes unusable immediately.
func (s *AuthService) Logout(ctx context.Context, tokenID string) error {
	return s.sessions.Delete(ctx, tokenID)
}

func (s *AuthService) generateToken(user *domain.User, tokenID string) (string, error) {
	claims := jwt.MapClaims{
		"sub":      user.ID,
		"username": user.Username,
		"role":     user.Role,
		"jti":      tokenID,
		"exp":      time.Now().Add(s.tokenTTL).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}

// newReferralCode generates a 6-char upper-alphanumeric code, retrying a
// bounded number of times on the unlikely collision. Repository failures
// propagate instead of retrying.
func (s *AuthService) newReferralCode(ctx context.Context) (string, error) {
	const alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	for attempt := 0; attempt < referralCodeAttempts; attempt++ {
		b := make([]byte, referralCodeLength)
		if _, err := rand.Read(b); err != nil {
			// fallback: derive from a UUID
			return strings.ToUpper(uuid.NewString()[:referralCodeLength]), nil
		}
		for i := range b {
			b[i] = alphabet[int(b[i])%len(alphabet)]
		}
		code := string(b)
		_, err := s.users.FindByReferralCode(ctx, code)
		if errors.Is(err, domain.ErrUserNotFound) {
			return code, nil
		}
		if err != nil {
			return "", fmt.Errorf("referral code check: %w", err)
		}
	}
	return "", fmt.Errorf("referral code: no unique code after %d attempts", referralCodeAttempts)
}
