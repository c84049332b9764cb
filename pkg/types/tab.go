package types

import (
	"net/url"
	"time"
)

// TabRecord is a raw stored tab as the storage engine returns it: an ordered
// URL history (first entry is the currently displayed location), a title, a
// last-used timestamp in milliseconds since the epoch, and an optional icon
// location.
type TabRecord struct {
	Title      string   `json:"title"`
	URLHistory []string `json:"url_history"`
	LastUsed   int64    `json:"last_used"`
	Icon       string   `json:"icon,omitempty"`
}

// ClientRecord is a raw per-client bundle: the owning client's identifier and
// metadata plus its stored tab records.
type ClientRecord struct {
	ClientID     string      `json:"client_id"`
	ClientName   string      `json:"client_name"`
	DeviceType   string      `json:"device_type"`
	Tabs         []TabRecord `json:"tabs"`
	LastModified int64       `json:"last_modified"`
}

// ClientInfo is the resolved metadata of the client that owns a set of tabs.
type ClientInfo struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	DeviceType string `json:"device_type"`
}

// Tab is a caller-facing tab associated with its owning client. URL is the
// currently displayed location; History holds the remaining well-formed
// history entries, most recent first.
type Tab struct {
	ClientID string    `json:"client_id"`
	Title    string    `json:"title"`
	URL      string    `json:"url"`
	History  []string  `json:"history"`
	LastUsed time.Time `json:"last_used"`
	Icon     string    `json:"icon,omitempty"`
}

// ClientTabs pairs a client's metadata with its mapped tabs.
type ClientTabs struct {
	ClientID   string `json:"client_id"`
	ClientName string `json:"client_name"`
	DeviceType string `json:"device_type"`
	Tabs       []Tab  `json:"tabs"`
}

// validLocation reports whether s parses as an absolute URL. Stored history
// entries come from remote clients and are not trusted to be well-formed.
func validLocation(s string) bool {
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return u.Scheme != "" && (u.Host != "" || u.Opaque != "" || u.Path != "")
}

// TabFromRecord maps a raw tab record to a caller-facing Tab owned by the
// given client. It returns ok=false when the first history entry is missing
// or not a well-formed location; the record is then dropped entirely.
// Malformed entries later in the history are filtered out without failing
// the record.
func TabFromRecord(rec TabRecord, owner ClientInfo) (Tab, bool) {
	if len(rec.URLHistory) == 0 || !validLocation(rec.URLHistory[0]) {
		return Tab{}, false
	}

	var history []string
	for _, loc := range rec.URLHistory[1:] {
		if validLocation(loc) {
			history = append(history, loc)
		}
	}

	return Tab{
		ClientID: owner.ID,
		Title:    rec.Title,
		URL:      rec.URLHistory[0],
		History:  history,
		LastUsed: time.UnixMilli(rec.LastUsed).UTC(),
		Icon:     rec.Icon,
	}, true
}

// ClientTabsFromRecord maps a raw client bundle to a caller-facing
// ClientTabs, filtering out tab records that fail to map.
func ClientTabsFromRecord(rec ClientRecord, owner ClientInfo) ClientTabs {
	tabs := make([]Tab, 0, len(rec.Tabs))
	for _, raw := range rec.Tabs {
		if tab, ok := TabFromRecord(raw, owner); ok {
			tabs = append(tabs, tab)
		}
	}
	return ClientTabs{
		ClientID:   owner.ID,
		ClientName: owner.Name,
		DeviceType: owner.DeviceType,
		Tabs:       tabs,
	}
}
