// This file implements the sync entry points: applying staged remote
// records under a complete unlock credential, and resetting synced state.
package sqlite

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/mesh-intelligence/tabvault/pkg/types"
)

// ErrUnlockIncomplete is returned by Sync when any unlock credential field
// is missing.
var ErrUnlockIncomplete = errors.New("unlock credentials are incomplete")

// Sync authorizes against the unlock credential, promotes staged remote
// records into the visible client set, and records the sync time.
func (d *DB) Sync(unlock types.UnlockInfo) error {
	if unlock.KeyID == "" || unlock.AccessToken == "" || unlock.SyncKey == "" || unlock.TokenServerURL == "" {
		return ErrUnlockIncomplete
	}

	tx, err := d.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	// Promote staged records. The local client row is never overwritten,
	// even if a staged record claims its id.
	_, err = tx.Exec(
		`INSERT INTO clients (client_id, client_name, device_type, is_local, payload, last_modified)
         SELECT client_id, client_name, device_type, 0, payload, last_modified
         FROM staged_clients WHERE client_id != ?
         ON CONFLICT(client_id) DO UPDATE SET
             client_name = excluded.client_name,
             device_type = excluded.device_type,
             payload = excluded.payload,
             last_modified = excluded.last_modified
         WHERE clients.is_local = 0`,
		d.localID,
	)
	if err != nil {
		return fmt.Errorf("applying staged clients: %w", err)
	}

	if _, err := tx.Exec("DELETE FROM staged_clients"); err != nil {
		return fmt.Errorf("clearing staging: %w", err)
	}

	now := strconv.FormatInt(time.Now().UnixMilli(), 10)
	_, err = tx.Exec(
		`INSERT INTO meta (key, value) VALUES (?, ?)
         ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		metaLastSync, now,
	)
	if err != nil {
		return fmt.Errorf("recording sync time: %w", err)
	}

	return tx.Commit()
}

// Reset discards all synced remote state: remote client rows, staged
// records, and the last-sync marker. Local tabs are preserved.
func (d *DB) Reset() error {
	tx, err := d.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM clients WHERE is_local = 0"); err != nil {
		return fmt.Errorf("removing remote clients: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM staged_clients"); err != nil {
		return fmt.Errorf("clearing staging: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM meta WHERE key = ?", metaLastSync); err != nil {
		return fmt.Errorf("clearing sync time: %w", err)
	}

	return tx.Commit()
}

// LastSync returns the time of the most recent successful sync, or the zero
// time when the store has never synced.
func (d *DB) LastSync() (time.Time, error) {
	value, err := d.getMeta(metaLastSync)
	if err != nil || value == "" {
		return time.Time{}, err
	}
	ms, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing last sync time: %w", err)
	}
	return time.UnixMilli(ms).UTC(), nil
}
