package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/msaemrow/Capstone-Project-One-Reel-Report/internal/auth"
	"github.com/msaemrow/Capstone-Project-One-Reel-Report/internal/domain"
)

// AccountStore persists anglers.
type AccountStore interface {
	CreateAngler(ctx context.Context, a domain.Angler) (domain.Angler, error)
	AnglerByID(ctx context.Context, id int64) (domain.Angler, error)
	AnglerByUsername(ctx context.Context, username string) (domain.Angler, error)
	UpdateAngler(ctx context.Context, a domain.Angler) error
	DeleteAngler(ctx context.Context, id int64) error
}

// Signup is a new account request.
type Signup struct {
	Username        string `json:"username" validate:"required,max=30"`
	Email           string `json:"email" validate:"required,email,max=50"`
	Password        string `json:"password" validate:"required,min=6,max=72"`
	ConfirmPassword string `json:"confirm_password" validate:"required,eqfield=Password"`
}

// AccountUpdate changes a username and email. Password must be the
// angler's current password.
type AccountUpdate struct {
	Username string `json:"username" validate:"required,max=30"`
	Email    string `json:"email" validate:"required,email,max=50"`
	Password string `json:"password" validate:"required,max=72"`
}

// Session is a signed-in angler and their token.
type Session struct {
	Token     string        `json:"token"`
	ExpiresAt time.Time     `json:"expires_at"`
	Angler    domain.Angler `json:"angler"`
}

// Accounts handles signup, login and profile management.
type Accounts struct {
	store  AccountStore
	tokens *auth.Tokens
	logger *slog.Logger
}

func NewAccounts(store AccountStore, tokens *auth.Tokens, logger *slog.Logger) *Accounts {
	return &Accounts{store: store, tokens: tokens, logger: logger}
}

// Signup creates a non-admin angler and signs them in.
func (a *Accounts) Signup(ctx context.Context, in Signup) (Session, error) {
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.TrimSpace(in.Email)
	if err := check(in); err != nil {
		return Session{}, err
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return Session{}, err
	}
	angler, err := a.store.CreateAngler(ctx, domain.Angler{
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: hash,
	})
	if err != nil {
		return Session{}, err
	}
	a.logger.Info("angler signed up", "angler_id", angler.ID, "username", angler.Username)
	return a.session(angler)
}

// Login checks a username and password. Unknown users and wrong passwords
// both return domain.ErrInvalidCredentials.
func (a *Accounts) Login(ctx context.Context, username, password string) (Session, error) {
	angler, err := a.store.AnglerByUsername(ctx, strings.TrimSpace(username))
	if errors.Is(err, domain.ErrNotFound) {
		return Session{}, domain.ErrInvalidCredentials
	}
	if err != nil {
		return Session{}, err
	}
	if err := auth.CheckPassword(angler.PasswordHash, password); err != nil {
		return Session{}, err
	}
	return a.session(angler)
}

func (a *Accounts) session(angler domain.Angler) (Session, error) {
	tok, exp, err := a.tokens.Issue(principalOf(angler))
	if err != nil {
		return Session{}, err
	}
	return Session{Token: tok, ExpiresAt: exp, Angler: angler}, nil
}

// Authenticate verifies a session token and reloads the angler it names, so
// a deleted account or a revoked admin flag takes effect immediately.
func (a *Accounts) Authenticate(ctx context.Context, token string) (domain.Principal, error) {
	p, err := a.tokens.Verify(token)
	if err != nil {
		return domain.Principal{}, err
	}
	angler, err := a.store.AnglerByID(ctx, p.AnglerID)
	if errors.Is(err, domain.ErrNotFound) {
		return domain.Principal{}, fmt.Errorf("%w: account no longer exists", domain.ErrUnauthenticated)
	}
	if err != nil {
		return domain.Principal{}, err
	}
	return principalOf(angler), nil
}

// Get returns an angler. Anglers see themselves; admins see anyone.
func (a *Accounts) Get(ctx context.Context, actor domain.Principal, id int64) (domain.Angler, error) {
	if err := requireAccess(actor, id); err != nil {
		return domain.Angler{}, err
	}
	return a.store.AnglerByID(ctx, id)
}

// Update changes the actor's own username and email.
func (a *Accounts) Update(ctx context.Context, actor domain.Principal, id int64, in AccountUpdate) (domain.Angler, error) {
	if err := requireSelf(actor, id); err != nil {
		return domain.Angler{}, err
	}
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.TrimSpace(in.Email)
	if err := check(in); err != nil {
		return domain.Angler{}, err
	}

	angler, err := a.store.AnglerByID(ctx, id)
	if err != nil {
		return domain.Angler{}, err
	}
	if err := auth.CheckPassword(angler.PasswordHash, in.Password); err != nil {
		return domain.Angler{}, err
	}

	angler.Username = in.Username
	angler.Email = in.Email
	if err := a.store.UpdateAngler(ctx, angler); err != nil {
		return domain.Angler{}, err
	}
	return angler, nil
}

// Delete removes the actor's own account along with their catches and lures.
func (a *Accounts) Delete(ctx context.Context, actor domain.Principal, id int64) error {
	if err := requireSelf(actor, id); err != nil {
		return err
	}
	if err := a.store.DeleteAngler(ctx, id); err != nil {
		return err
	}
	a.logger.Info("angler deleted", "angler_id", id)
	return nil
}

func requireSelf(actor domain.Principal, id int64) error {
	if err := requireAngler(actor); err != nil {
		return err
	}
	if actor.AnglerID != id {
		return fmt.Errorf("%w: you can only change your own account", domain.ErrForbidden)
	}
	return nil
}

func principalOf(a domain.Angler) domain.Principal {
	return domain.Principal{AnglerID: a.ID, Username: a.Username, Admin: a.Admin}
}
