// Package identity wraps the external authentication concern behind an
// explicitly owned provider object: credential checks live in SQL,
// profile documents live in the document store, and the interactive
// Google flow terminates in an ID token verified by an injected
// TokenVerifier.
package identity

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/KhairnarLokesh/hackmate-ai/internal/constants"
	"github.com/KhairnarLokesh/hackmate-ai/internal/docstore"
	"github.com/KhairnarLokesh/hackmate-ai/internal/models"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrEmailTaken          = errors.New("email already registered")
	ErrInvalidCredentials  = errors.New("invalid email or password")
	ErrPasswordTooShort    = errors.New("password too short")
	ErrAccountNotFound     = errors.New("account not found")
	ErrGoogleNotConfigured = errors.New("google sign-in is not configured")
)

// GoogleClaims are the fields the provider needs from a verified Google
// ID token.
type GoogleClaims struct {
	Email string
	Name  string
}

// TokenVerifier validates an externally issued ID token. The popup flow
// itself is a client concern; the server only sees the resulting token.
type TokenVerifier interface {
	Verify(ctx context.Context, idToken string) (GoogleClaims, error)
}

// Provider is the identity service adapter. It is constructed in main
// and passed to its dependents; there is no package-level instance.
type Provider struct {
	db       *gorm.DB
	store    *docstore.Store
	verifier TokenVerifier
}

func NewProvider(db *gorm.DB, store *docstore.Store, verifier TokenVerifier) *Provider {
	return &Provider{
		db:       db,
		store:    store,
		verifier: verifier,
	}
}

// SignUpWithEmail registers a new email/password account.
func (p *Provider) SignUpWithEmail(ctx context.Context, name, email, password string) (*models.Account, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, fmt.Errorf("email is required")
	}
	if len(password) < constants.MinPasswordLength {
		return nil, ErrPasswordTooShort
	}

	var existing models.Account
	if err := p.db.Where("email = ?", email).First(&existing).Error; err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	account := &models.Account{
		ID:           uuid.NewString(),
		Email:        email,
		Name:         strings.TrimSpace(name),
		PasswordHash: string(hashedPassword),
		Provider:     "email",
	}
	if account.Name == "" {
		account.Name = email
	}

	if err := p.db.Create(account).Error; err != nil {
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	p.publishPresence(ctx, account.ID, true)
	return account, nil
}

// SignInWithEmail verifies credentials and returns the account.
func (p *Provider) SignInWithEmail(ctx context.Context, email, password string) (*models.Account, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	var account models.Account
	if err := p.db.Where("email = ?", email).First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find account: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	p.publishPresence(ctx, account.ID, true)
	return &account, nil
}

// SignInWithGoogle validates the given ID token and signs the matching
// account in, creating it on first use.
func (p *Provider) SignInWithGoogle(ctx context.Context, idToken string) (*models.Account, error) {
	if p.verifier == nil {
		return nil, ErrGoogleNotConfigured
	}

	claims, err := p.verifier.Verify(ctx, idToken)
	if err != nil {
		return nil, fmt.Errorf("failed to verify google token: %w", err)
	}

	email := strings.ToLower(strings.TrimSpace(claims.Email))

	var account models.Account
	err = p.db.Where("email = ?", email).First(&account).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		account = models.Account{
			ID:       uuid.NewString(),
			Email:    email,
			Name:     claims.Name,
			Provider: "google",
		}
		if err := p.db.Create(&account).Error; err != nil {
			return nil, fmt.Errorf("failed to create account: %w", err)
		}
	} else if err != nil {
		return nil, fmt.Errorf("failed to find account: %w", err)
	}

	p.publishPresence(ctx, account.ID, true)
	return &account, nil
}

// SignInAsGuest creates an anonymous account.
func (p *Provider) SignInAsGuest(ctx context.Context, name string) (*models.Account, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		name = "Guest"
	}

	account := &models.Account{
		ID:       uuid.NewString(),
		Name:     name,
		Provider: "guest",
		Guest:    true,
	}
	account.Email = "guest-" + account.ID + "@hackmate.local"

	if err := p.db.Create(account).Error; err != nil {
		return nil, fmt.Errorf("failed to create guest account: %w", err)
	}

	p.publishPresence(ctx, account.ID, true)
	return account, nil
}

// Logout marks the account offline. Session teardown belongs to the
// HTTP edge.
func (p *Provider) Logout(ctx context.Context, userID string) {
	p.publishPresence(ctx, userID, false)
}

// GetAccount retrieves an account by ID.
func (p *Provider) GetAccount(id string) (*models.Account, error) {
	var account models.Account
	if err := p.db.First(&account, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to find account: %w", err)
	}
	return &account, nil
}

// ResolveProfile returns the user's profile: an immediate default
// derived from the account, replaced by the persisted users document
// when one exists. The lookup is best-effort; a failed read leaves the
// default in place.
func (p *Provider) ResolveProfile(ctx context.Context, account *models.Account) models.UserProfile {
	profile := DefaultProfile(account)

	doc, err := p.store.Get(ctx, models.CollectionUsers, account.ID)
	if err != nil {
		if !errors.Is(err, docstore.ErrNotFound) {
			log.Printf("profile lookup for %s failed: %v", account.ID, err)
		}
		return profile
	}
	return models.UserProfileFromDocument(doc)
}

// DefaultProfile derives the locally-built profile published before any
// persisted profile is found.
func DefaultProfile(account *models.Account) models.UserProfile {
	return models.UserProfile{
		UserID:       account.ID,
		Name:         account.Name,
		Email:        account.Email,
		Role:         models.TeamRoleDeveloper,
		Skills:       []string{},
		Online:       true,
		Availability: models.AvailabilityAvailable,
	}
}

// UpdateUserProfile persists the full profile document for the user.
func (p *Provider) UpdateUserProfile(ctx context.Context, profile models.UserProfile) error {
	if err := p.store.Set(ctx, models.CollectionUsers, profile.UserID, profile.ToDocument()); err != nil {
		return fmt.Errorf("failed to update profile: %w", err)
	}
	return nil
}

// UpdateUserSkills replaces the skill set on the persisted profile,
// creating the profile from the account default if none exists yet.
func (p *Provider) UpdateUserSkills(ctx context.Context, userID string, skills []string) error {
	account, err := p.GetAccount(userID)
	if err != nil {
		return err
	}

	profile := p.ResolveProfile(ctx, account)
	profile.Skills = skills
	return p.UpdateUserProfile(ctx, profile)
}

// publishPresence flips the online flag on the persisted profile.
// Presence is fire-and-forget: failures are logged and swallowed.
func (p *Provider) publishPresence(ctx context.Context, userID string, online bool) {
	err := p.store.Update(ctx, models.CollectionUsers, userID, docstore.Document{"online": online})
	if err != nil && !errors.Is(err, docstore.ErrNotFound) {
		log.Printf("presence update for %s failed: %v", userID, err)
	}
}
