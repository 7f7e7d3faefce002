// Package tokenstore persists the access and refresh tokens issued by the
// backend. It knows nothing about JWTs; it only reads and writes two named
// strings.
package tokenstore

// Fixed names under which the tokens are stored.
const (
	AccessTokenKey  = "access_token"
	RefreshTokenKey = "refresh_token"
)

// Credentials is the persisted token pair. Empty means absent.
type Credentials struct {
	AccessToken  string `yaml:"access_token,omitempty"`
	RefreshToken string `yaml:"refresh_token,omitempty"`
}

// Store reads and writes credentials. Implementations must be safe for
// concurrent use.
type Store interface {
	Get(key string) (string, error)
	Set(key, value string) error
	Clear() error
}

// Load returns both tokens from s.
func Load(s Store) (Credentials, error) {
	access, err := s.Get(AccessTokenKey)
	if err != nil {
		return Credentials{}, err
	}
	refresh, err := s.Get(RefreshTokenKey)
	if err != nil {
		return Credentials{}, err
	}
	return Credentials{AccessToken: access, RefreshToken: refresh}, nil
}

// Save writes both tokens to s.
func Save(s Store, c Credentials) error {
	if err := s.Set(AccessTokenKey, c.AccessToken); err != nil {
		return err
	}
	return s.Set(RefreshTokenKey, c.RefreshToken)
}
