// Package store persists interactions, detection results, compliance
// rules, and policies. Two implementations: Postgres for production,
// SQLite for local runs.
package store

import (
	"context"

	"github.com/truthguard/truthguard/internal/model"
)

// Store is the persistence interface for the validation pipeline.
type Store interface {
	// Audit
	SaveDetection(ctx context.Context, interaction model.Interaction, result *model.DetectionResult) (string, error)
	ListInteractions(ctx context.Context, organizationID string, limit int) ([]model.Interaction, error)
	RecentResponses(ctx context.Context, organizationID string, limit int) ([]string, error)

	// Rules and policies
	LoadRules(ctx context.Context) ([]model.Rule, error)
	LoadPolicies(ctx context.Context, organizationID string) ([]model.Policy, error)
	SeedRules(ctx context.Context, rules []model.Rule) error
	SeedPolicies(ctx context.Context, policies []model.Policy) error

	// Lifecycle
	Migrate(ctx context.Context) error
	Close() error
}

const defaultListLimit = 100
