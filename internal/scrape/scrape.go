// Package scrape is the boundary to whatever produces page snapshots: a
// browser-driving collaborator in production, saved snapshots offline.
package scrape

import (
	"context"

	"partsimport/internal"
)

const (
	StageSearch = "search"
	StageOpen   = "open"
)

// Acquirer fetches the snapshot of the product page a search term leads to.
// The returned status lists the acquisition stages that completed, and is
// meaningful even when err is non-nil.
type Acquirer interface {
	Acquire(ctx context.Context, creds internal.Credentials, searchTerm string) (internal.RawScrapeSnapshot, internal.StageStatus, error)
}
