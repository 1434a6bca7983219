package auth

import (
	"crypto/subtle"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"senateur-site/internal/config"
)

// ErrInvalidCredentials is returned for any username/password mismatch. The
// cause (wrong user, wrong password, unconfigured admin) is deliberately not
// distinguished.
var ErrInvalidCredentials = errors.New("invalid credentials")

// Credentials verifies back-office logins against the configured admin
// account. The password is stored as a bcrypt hash in the configuration;
// there is no user table.
type Credentials struct {
	username     string
	passwordHash []byte
}

// NewCredentials builds the credential checker from configuration.
func NewCredentials(cfg config.AdminConfig) (*Credentials, error) {
	if cfg.Username == "" || cfg.PasswordHash == "" {
		return nil, errors.New("admin username and password hash must be configured")
	}
	// Fail at startup rather than on the first login attempt.
	if _, err := bcrypt.Cost([]byte(cfg.PasswordHash)); err != nil {
		return nil, errors.New("admin password hash is not a valid bcrypt hash")
	}
	return &Credentials{
		username:     cfg.Username,
		passwordHash: []byte(cfg.PasswordHash),
	}, nil
}

// Verify checks a login attempt. Both the username comparison and the bcrypt
// comparison run on every attempt so timing does not reveal which part failed.
func (c *Credentials) Verify(username, password string) error {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(c.username)) == 1
	passErr := bcrypt.CompareHashAndPassword(c.passwordHash, []byte(password))
	if !userOK || passErr != nil {
		return ErrInvalidCredentials
	}
	return nil
}
