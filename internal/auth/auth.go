package auth

import (
	"crypto/subtle"
	"fmt"
	"strings"

	"github.com/sandro63/musicdb/internal/shared"
)

// Tier is a caller's authorization level.
type Tier int

const (
	TierAnonymous Tier = iota
	TierMember
	TierOwner
)

func (t Tier) String() string {
	switch t {
	case TierMember:
		return "member"
	case TierOwner:
		return "owner"
	default:
		return "anonymous"
	}
}

// AtLeast reports whether the tier grants at least min's capabilities.
func (t Tier) AtLeast(min Tier) bool {
	return t >= min
}

// Identity is a resolved caller.
type Identity struct {
	Username string
	Tier     Tier
}

// IsOwner reports whether the identity holds the owner tier. Templates use
// it to decide whether to draw delete controls.
func (i Identity) IsOwner() bool {
	return i.Tier.AtLeast(TierOwner)
}

// Anonymous is the identity of any caller without a valid session.
var Anonymous = Identity{Tier: TierAnonymous}

// Credential is what the store knows about one account.
type Credential struct {
	Password string
	Tier     Tier
}

// CredentialStore resolves a username to its credential. Implementations
// report absence through the boolean, never through an error, so callers
// cannot distinguish an unknown username from a wrong password.
type CredentialStore interface {
	Resolve(username string) (Credential, bool)
}

// StaticCredentials is the config-backed credential store. The account
// matching the configured superuser name gets the owner tier.
type StaticCredentials struct {
	accounts map[string]Credential
}

// NewStaticCredentials builds the account table from configuration.
func NewStaticCredentials(cfg shared.AuthConfig) *StaticCredentials {
	accounts := make(map[string]Credential, len(cfg.Users))
	for _, u := range cfg.Users {
		tier := TierMember
		if u.Username == cfg.Superuser {
			tier = TierOwner
		}
		accounts[u.Username] = Credential{Password: u.Password, Tier: tier}
	}
	return &StaticCredentials{accounts: accounts}
}

// Resolve implements [CredentialStore].
func (s *StaticCredentials) Resolve(username string) (Credential, bool) {
	cred, ok := s.accounts[username]
	return cred, ok
}

// Authenticator verifies login attempts against a credential store, with a
// per-client rate limit on attempts.
type Authenticator struct {
	creds   CredentialStore
	limiter *loginLimiter
}

// NewAuthenticator creates an [Authenticator] over the given store.
func NewAuthenticator(creds CredentialStore) *Authenticator {
	return &Authenticator{creds: creds, limiter: newLoginLimiter()}
}

// Login checks a username/password pair and returns the resolved identity.
// A mismatch of either field yields the same generic error, and throttled
// clients are rejected before the store is consulted.
func (a *Authenticator) Login(remoteAddr, username, password string) (Identity, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return Anonymous, fmt.Errorf("username and password are required: %w", shared.ErrValidation)
	}

	if !a.limiter.allow(remoteAddr) {
		return Anonymous, fmt.Errorf("please wait before trying again: %w", shared.ErrTooManyAttempts)
	}

	cred, ok := a.creds.Resolve(username)
	if !ok || subtle.ConstantTimeCompare([]byte(cred.Password), []byte(password)) != 1 {
		return Anonymous, shared.ErrInvalidCredentials
	}

	return Identity{Username: username, Tier: cred.Tier}, nil
}
