// Package datasets persists imported symbol documents so the viewer and MCP
// server can reopen them without the original file.
package datasets

import (
	"errors"
	"time"
)

// ErrNotFound is returned when no dataset has the requested ID.
var ErrNotFound = errors.New("datasets: not found")

// Dataset describes one imported symbol document.
type Dataset struct {
	ID             string    `json:"id"`
	App            string    `json:"app"`
	Source         string    `json:"source"`
	RecordCount    int       `json:"record_count"`
	MalformedCount int       `json:"malformed_count"`
	CreatedAt      time.Time `json:"created_at"`
}
