package settings

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"linkedinctl/pkg/logging"
)

// DefaultSettingsDir is the directory under the user's home that holds the
// credential document.
const DefaultSettingsDir = ".config/linkedinctl"

// DefaultSettingsFile is the credential document file name.
const DefaultSettingsFile = "credentials.md"

// Record holds the persisted LinkedIn credentials and identity.
//
// A Record is loaded as a whole and passed explicitly to every operation that
// needs it. It is never cached at package level and never partially mutated;
// a successful OAuth run overwrites the stored document in full.
type Record struct {
	// ClientID is the LinkedIn application client id.
	ClientID string `yaml:"client_id"`

	// ClientSecret is the LinkedIn application client secret.
	ClientSecret string `yaml:"client_secret"`

	// AccessToken is the opaque bearer token for API calls.
	AccessToken string `yaml:"access_token"`

	// PersonURN is the stable actor identifier (urn:li:person:...).
	PersonURN string `yaml:"person_urn"`

	// DisplayName is the authenticated member's display name.
	DisplayName string `yaml:"display_name"`

	// TokenExpiresAt is the absolute token expiry in epoch seconds.
	// Zero means no known expiry.
	TokenExpiresAt int64 `yaml:"token_expires_at"`
}

// DefaultPath returns the settings file location under the user's home.
func DefaultPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, DefaultSettingsDir, DefaultSettingsFile), nil
}

// Load reads and validates the credential record from the default path.
func Load() (Record, error) {
	path, err := DefaultPath()
	if err != nil {
		return Record{}, err
	}
	return LoadFrom(path)
}

// LoadFrom reads and validates the credential record from the given path.
//
// It fails with *MissingError when the file does not exist or a required
// field (access_token, person_urn) is absent or empty, with *InvalidError
// when the document cannot be parsed, and with *ExpiredError when the stored
// token expiry has passed. No recovery is attempted.
func LoadFrom(path string) (Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Record{}, &MissingError{Path: path}
		}
		return Record{}, fmt.Errorf("failed to read settings file %s: %w", path, err)
	}

	rec, err := decodeDocument(data)
	if err != nil {
		return Record{}, &InvalidError{Path: path, Reason: err.Error()}
	}

	if rec.AccessToken == "" {
		return Record{}, &MissingError{Path: path, Field: "access_token"}
	}
	if rec.PersonURN == "" {
		return Record{}, &MissingError{Path: path, Field: "person_urn"}
	}

	if rec.TokenExpiresAt > 0 {
		expiresAt := time.Unix(rec.TokenExpiresAt, 0)
		if time.Now().After(expiresAt) {
			return Record{}, &ExpiredError{ExpiredAt: expiresAt}
		}
	}

	logging.Debug("Settings", "loaded credentials for %s from %s", rec.PersonURN, path)
	return rec, nil
}

// Save writes the credential record to the default path.
func Save(rec Record) error {
	path, err := DefaultPath()
	if err != nil {
		return err
	}
	return SaveTo(path, rec)
}

// SaveTo writes the credential record to the given path, overwriting any
// prior content in one write. The file is created 0600 and its parent
// directory 0700, since it holds the client secret and access token.
func SaveTo(path string, rec Record) error {
	data, err := encodeDocument(rec)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create settings directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write settings file: %w", err)
	}

	logging.Debug("Settings", "saved credentials for %s to %s", rec.PersonURN, path)
	return nil
}

// ExpiresIn returns the remaining token lifetime. Negative when expired,
// zero when no expiry is recorded.
func (r Record) ExpiresIn() time.Duration {
	if r.TokenExpiresAt == 0 {
		return 0
	}
	return time.Until(time.Unix(r.TokenExpiresAt, 0))
}
