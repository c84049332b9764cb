// This file implements tab record storage: the local client's payload,
// reading back all client bundles, and staging of incoming remote records.
package sqlite

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/mesh-intelligence/tabvault/pkg/types"
)

// ReplaceLocalTabs replaces the local client's stored tab records with recs.
func (d *DB) ReplaceLocalTabs(recs []types.TabRecord) error {
	if recs == nil {
		recs = []types.TabRecord{}
	}
	payload, err := json.Marshal(recs)
	if err != nil {
		return fmt.Errorf("encoding local tabs: %w", err)
	}

	_, err = d.db.Exec(
		"UPDATE clients SET payload = ?, last_modified = ? WHERE client_id = ?",
		string(payload), time.Now().UnixMilli(), d.localID,
	)
	if err != nil {
		return fmt.Errorf("writing local tabs: %w", err)
	}
	return nil
}

// ReadAll returns every stored client bundle, the local client first and the
// rest ordered by client name.
func (d *DB) ReadAll() ([]types.ClientRecord, error) {
	rows, err := d.db.Query(
		`SELECT client_id, client_name, device_type, payload, last_modified
         FROM clients ORDER BY is_local DESC, client_name, client_id`,
	)
	if err != nil {
		return nil, fmt.Errorf("reading clients: %w", err)
	}
	defer rows.Close()

	var records []types.ClientRecord
	for rows.Next() {
		rec, err := hydrateClient(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading clients: %w", err)
	}
	return records, nil
}

// rowScanner covers both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// hydrateClient scans one clients row and decodes its tab payload.
func hydrateClient(row rowScanner) (types.ClientRecord, error) {
	var rec types.ClientRecord
	var payload string
	if err := row.Scan(&rec.ClientID, &rec.ClientName, &rec.DeviceType, &payload, &rec.LastModified); err != nil {
		return types.ClientRecord{}, fmt.Errorf("scanning client row: %w", err)
	}
	if err := json.Unmarshal([]byte(payload), &rec.Tabs); err != nil {
		return types.ClientRecord{}, fmt.Errorf("decoding tabs for client %s: %w", rec.ClientID, err)
	}
	return rec, nil
}

// StageRemote stores incoming remote client records in the staging table.
// Staged records are invisible to ReadAll until a successful Sync promotes
// them. Used by fixture seeding and tests in place of a live remote.
func (d *DB) StageRemote(clients []types.ClientRecord) error {
	tx, err := d.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	for _, c := range clients {
		payload, err := json.Marshal(c.Tabs)
		if err != nil {
			return fmt.Errorf("encoding tabs for client %s: %w", c.ClientID, err)
		}
		lastModified := c.LastModified
		if lastModified == 0 {
			lastModified = time.Now().UnixMilli()
		}
		_, err = tx.Exec(
			`INSERT INTO staged_clients (client_id, client_name, device_type, payload, last_modified)
             VALUES (?, ?, ?, ?, ?)
             ON CONFLICT(client_id) DO UPDATE SET
                 client_name = excluded.client_name,
                 device_type = excluded.device_type,
                 payload = excluded.payload,
                 last_modified = excluded.last_modified`,
			c.ClientID, c.ClientName, c.DeviceType, string(payload), lastModified,
		)
		if err != nil {
			return fmt.Errorf("staging client %s: %w", c.ClientID, err)
		}
	}

	return tx.Commit()
}
