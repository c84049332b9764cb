package types

import "errors"

// Config holds backend selection and parameters for opening a tab store.
type Config struct {
	Backend string `json:"backend" yaml:"backend"`
	DataDir string `json:"data_dir" yaml:"data_dir"`
}

// Supported backend names.
const (
	BackendSQLite = "sqlite"
)

// Config validation errors.
var (
	ErrBackendEmpty   = errors.New("backend must not be empty")
	ErrBackendUnknown = errors.New("unknown backend")
)

// knownBackends lists the backends that Validate accepts.
var knownBackends = map[string]bool{
	BackendSQLite: true,
}

// Validate checks that the Config is well-formed. It returns a sentinel error
// from this package on failure.
func (c Config) Validate() error {
	if c.Backend == "" {
		return ErrBackendEmpty
	}
	if !knownBackends[c.Backend] {
		return ErrBackendUnknown
	}
	return nil
}

// UnlockInfo carries the credentials that authorize a sync against the
// remote service. All fields are required by the engine.
type UnlockInfo struct {
	KeyID          string `json:"key_id" yaml:"key_id"`
	AccessToken    string `json:"access_token" yaml:"access_token"`
	SyncKey        string `json:"sync_key" yaml:"sync_key"`
	TokenServerURL string `json:"tokenserver_url" yaml:"tokenserver_url"`
}
