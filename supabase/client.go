// Package supabase implements the authoritative store tier on top of the
// Supabase PostgREST API.
package supabase

import (
	"context"
	"fmt"

	"github.com/supabase-community/supabase-go"

	"github.com/creastat/directive"
)

// Config holds Supabase connection configuration
type Config struct {
	URL    string
	APIKey string
}

// Client implements the Store interface using Supabase
type Client struct {
	client *supabase.Client
}

// New creates a new Supabase client
func New(cfg Config) (*Client, error) {
	if cfg.URL == "" {
		return nil, fmt.Errorf("%w: supabase URL is required", directive.ErrInvalidConfig)
	}
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%w: supabase API key is required", directive.ErrInvalidConfig)
	}

	client, err := supabase.NewClient(cfg.URL, cfg.APIKey, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create supabase client: %w", err)
	}

	return &Client{client: client}, nil
}

// LoadContext retrieves a tenant's directive record and transforms it into a
// governance context.
//
// No read-through cache lives here: the process-local tier owns that concern,
// and a second hidden cache would mask corruption-eviction reloads.
func (c *Client) LoadContext(ctx context.Context, tenantID string) (*directive.GovernanceContext, error) {
	var records []ContextRecord
	_, err := c.client.From("directive_contexts").
		Select("*", "", false).
		Eq("tenant_id", tenantID).
		ExecuteTo(&records)

	if err != nil {
		return nil, fmt.Errorf("failed to load directive context: %w", err)
	}

	if len(records) == 0 {
		return nil, fmt.Errorf("%w: tenant %s", directive.ErrNotFound, tenantID)
	}

	gc, err := BuildContext(&records[0])
	if err != nil {
		return nil, fmt.Errorf("failed to transform directive record: %w", err)
	}
	return gc, nil
}

// Close closes the Supabase client
func (c *Client) Close() error {
	// Supabase client doesn't require explicit close
	return nil
}

// Compile-time check that Client implements Store
var _ Store = (*Client)(nil)
