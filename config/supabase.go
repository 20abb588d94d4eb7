package config

import (
	"fmt"

	supa "github.com/supabase-community/supabase-go"
)

// SupabaseClients bundles the two credential tiers the backend is accessed
// with: the anon client for public reads (row-level security applies) and the
// service-role client used by admin mutations and unrestricted reads.
type SupabaseClients struct {
	Public *supa.Client
	Admin  *supa.Client

	// URL and ServiceKey are kept for direct PostgREST calls the wrapped
	// clients do not expose, such as invoking database functions.
	URL        string
	ServiceKey string
}

// NewSupabaseClients builds both clients from the loaded configuration.
// When Supabase is not configured it returns empty clients and no error so
// the caller can fall back to demo mode.
func NewSupabaseClients(cfg *Config) (*SupabaseClients, error) {
	if !cfg.SupabaseConfigured() {
		return &SupabaseClients{}, nil
	}

	public, err := supa.NewClient(cfg.SupabaseURL, cfg.SupabaseAnonKey, nil)
	if err != nil {
		return nil, fmt.Errorf("initializing anon supabase client: %w", err)
	}

	admin, err := supa.NewClient(cfg.SupabaseURL, cfg.SupabaseServiceKey, nil)
	if err != nil {
		return nil, fmt.Errorf("initializing service supabase client: %w", err)
	}

	return &SupabaseClients{
		Public:     public,
		Admin:      admin,
		URL:        cfg.SupabaseURL,
		ServiceKey: cfg.SupabaseServiceKey,
	}, nil
}
