package supabase

import (
	"context"
	"time"

	"github.com/creastat/directive"
)

// Store provides access to the authoritative tenant directive records.
type Store interface {
	// LoadContext retrieves a tenant's directive record and transforms it
	// into a governance context.
	// Returns directive.ErrNotFound when no record exists for the tenant.
	LoadContext(ctx context.Context, tenantID string) (*directive.GovernanceContext, error)

	// Close closes the store and releases resources.
	Close() error
}

// ContextRecord is the raw tenant directive row as stored in the
// directive_contexts table. Field names map 1:1 to table columns.
type ContextRecord struct {
	ID       string `json:"id"`
	TenantID string `json:"tenant_id"`
	Name     string `json:"name"`
	Status   string `json:"status"`

	SystemDirective string         `json:"system_directive"`
	VersionTag      string         `json:"version_tag"`
	Author          string         `json:"author"`
	VersionMetadata map[string]any `json:"version_metadata"`

	ExperimentalDirective  string         `json:"experimental_directive"`
	ExperimentalVersionTag string         `json:"experimental_version_tag"`
	ExperimentalAuthor     string         `json:"experimental_author"`
	ExperimentalMetadata   map[string]any `json:"experimental_metadata"`

	ExperimentActive bool    `json:"experiment_active"`
	ExperimentName   string  `json:"experiment_name"`
	TrafficSplit     float64 `json:"traffic_split"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
