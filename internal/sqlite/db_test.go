// Tests for the SQLite storage engine.
package sqlite

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/mesh-intelligence/tabvault/pkg/types"
)

func testConfig(t *testing.T) types.Config {
	t.Helper()
	return types.Config{
		Backend: types.BackendSQLite,
		DataDir: t.TempDir(),
	}
}

func testUnlock() types.UnlockInfo {
	return types.UnlockInfo{
		KeyID:          "kid",
		AccessToken:    "token",
		SyncKey:        "key",
		TokenServerURL: "https://token.example.com/",
	}
}

func TestOpenCreatesDatabase(t *testing.T) {
	cfg := testConfig(t)

	d, err := Open(cfg)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer d.Close()

	if _, err := os.Stat(filepath.Join(cfg.DataDir, DBFileName)); err != nil {
		t.Errorf("%s not created: %v", DBFileName, err)
	}
	if d.LocalClientID() == "" {
		t.Error("local client id not assigned")
	}
}

func TestOpenRejectsBadConfig(t *testing.T) {
	_, err := Open(types.Config{Backend: "postgres"})
	if err != types.ErrBackendUnknown {
		t.Errorf("expected ErrBackendUnknown, got %v", err)
	}
}

func TestLocalClientIDStable(t *testing.T) {
	cfg := testConfig(t)

	d, err := Open(cfg)
	if err != nil {
		t.Fatalf("first Open failed: %v", err)
	}
	first := d.LocalClientID()
	d.Close()

	d, err = Open(cfg)
	if err != nil {
		t.Fatalf("second Open failed: %v", err)
	}
	defer d.Close()

	if d.LocalClientID() != first {
		t.Errorf("local client id changed across opens: %s != %s", d.LocalClientID(), first)
	}
}

func TestReplaceLocalTabsRoundTrip(t *testing.T) {
	d, err := Open(testConfig(t))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer d.Close()

	recs := []types.TabRecord{
		{Title: "one", URLHistory: []string{"https://example.com/1"}, LastUsed: 100},
		{Title: "two", URLHistory: []string{"https://example.com/2"}, LastUsed: 200},
	}
	if err := d.ReplaceLocalTabs(recs); err != nil {
		t.Fatalf("ReplaceLocalTabs failed: %v", err)
	}

	records, err := d.ReadAll()
	if err != nil {
		t.Fatalf("ReadAll failed: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 client record, got %d", len(records))
	}
	local := records[0]
	if local.ClientID != d.LocalClientID() {
		t.Errorf("expected local client first, got %s", local.ClientID)
	}
	if len(local.Tabs) != 2 || local.Tabs[0].Title != "one" || local.Tabs[1].Title != "two" {
		t.Errorf("unexpected tabs: %+v", local.Tabs)
	}
}

func TestReplaceLocalTabsEmpty(t *testing.T) {
	d, err := Open(testConfig(t))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer d.Close()

	if err := d.ReplaceLocalTabs(nil); err != nil {
		t.Fatalf("ReplaceLocalTabs(nil) failed: %v", err)
	}

	records, err := d.ReadAll()
	if err != nil {
		t.Fatalf("ReadAll failed: %v", err)
	}
	if len(records) != 1 || len(records[0].Tabs) != 0 {
		t.Errorf("expected local client with no tabs, got %+v", records)
	}
}

func TestSyncPromotesStagedClients(t *testing.T) {
	d, err := Open(testConfig(t))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer d.Close()

	staged := []types.ClientRecord{
		{
			ClientID:   "remote-1",
			ClientName: "Phone",
			DeviceType: "mobile",
			Tabs:       []types.TabRecord{{Title: "r", URLHistory: []string{"https://example.com/r"}}},
		},
	}
	if err := d.StageRemote(staged); err != nil {
		t.Fatalf("StageRemote failed: %v", err)
	}

	// Invisible before sync.
	records, err := d.ReadAll()
	if err != nil {
		t.Fatalf("ReadAll failed: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("staged client visible before sync: %+v", records)
	}

	if err := d.Sync(testUnlock()); err != nil {
		t.Fatalf("Sync failed: %v", err)
	}

	records, err = d.ReadAll()
	if err != nil {
		t.Fatalf("ReadAll after sync failed: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 client records after sync, got %d", len(records))
	}
	if records[1].ClientID != "remote-1" || records[1].DeviceType != "mobile" {
		t.Errorf("unexpected remote record: %+v", records[1])
	}

	last, err := d.LastSync()
	if err != nil {
		t.Fatalf("LastSync failed: %v", err)
	}
	if last.IsZero() {
		t.Error("sync time not recorded")
	}
}

func TestSyncRequiresCompleteUnlock(t *testing.T) {
	d, err := Open(testConfig(t))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer d.Close()

	unlock := testUnlock()
	unlock.SyncKey = ""
	if err := d.Sync(unlock); err != ErrUnlockIncomplete {
		t.Errorf("expected ErrUnlockIncomplete, got %v", err)
	}
}

func TestResetKeepsLocalTabs(t *testing.T) {
	d, err := Open(testConfig(t))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer d.Close()

	if err := d.ReplaceLocalTabs([]types.TabRecord{{Title: "mine", URLHistory: []string{"https://example.com/"}}}); err != nil {
		t.Fatalf("ReplaceLocalTabs failed: %v", err)
	}
	if err := d.StageRemote([]types.ClientRecord{{ClientID: "remote-1", ClientName: "Phone", DeviceType: "mobile"}}); err != nil {
		t.Fatalf("StageRemote failed: %v", err)
	}
	if err := d.Sync(testUnlock()); err != nil {
		t.Fatalf("Sync failed: %v", err)
	}

	if err := d.Reset(); err != nil {
		t.Fatalf("Reset failed: %v", err)
	}

	records, err := d.ReadAll()
	if err != nil {
		t.Fatalf("ReadAll failed: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected only local client after reset, got %d records", len(records))
	}
	if len(records[0].Tabs) != 1 || records[0].Tabs[0].Title != "mine" {
		t.Errorf("local tabs lost on reset: %+v", records[0].Tabs)
	}

	last, err := d.LastSync()
	if err != nil {
		t.Fatalf("LastSync failed: %v", err)
	}
	if !last.IsZero() {
		t.Error("sync time survived reset")
	}
}

func TestSyncNeverOverwritesLocalRow(t *testing.T) {
	d, err := Open(testConfig(t))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer d.Close()

	if err := d.ReplaceLocalTabs([]types.TabRecord{{Title: "mine", URLHistory: []string{"https://example.com/"}}}); err != nil {
		t.Fatalf("ReplaceLocalTabs failed: %v", err)
	}

	// A staged record claiming the local id must not clobber local tabs.
	hostile := []types.ClientRecord{{
		ClientID:   d.LocalClientID(),
		ClientName: "Impostor",
		DeviceType: "mobile",
	}}
	if err := d.StageRemote(hostile); err != nil {
		t.Fatalf("StageRemote failed: %v", err)
	}
	if err := d.Sync(testUnlock()); err != nil {
		t.Fatalf("Sync failed: %v", err)
	}

	records, err := d.ReadAll()
	if err != nil {
		t.Fatalf("ReadAll failed: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	if len(records[0].Tabs) != 1 || records[0].Tabs[0].Title != "mine" {
		t.Errorf("local row overwritten by staged record: %+v", records[0])
	}
}
