package store

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"

	"github.com/truthguard/truthguard/internal/model"
)

// Pool is the subset of pgxpool.Pool the store uses. pgxmock satisfies
// it in tests.
type Pool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
}

// PostgresStore implements Store using pgxpool.
type PostgresStore struct {
	pool    Pool
	closeFn func()
}

// PoolConfig holds optional connection pool tuning parameters.
type PoolConfig struct {
	MaxConns int32 `yaml:"max_conns" mapstructure:"max_conns"`
	MinConns int32 `yaml:"min_conns" mapstructure:"min_conns"`
}

// NewPostgres creates a PostgresStore with a connection pool.
func NewPostgres(ctx context.Context, connString string, poolCfg *PoolConfig) (*PostgresStore, error) {
	pgxCfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: parse config")
	}

	maxConns := int32(10)
	minConns := int32(2)
	if poolCfg != nil {
		if poolCfg.MaxConns > 0 {
			maxConns = poolCfg.MaxConns
		}
		if poolCfg.MinConns > 0 {
			minConns = poolCfg.MinConns
		}
	}
	pgxCfg.MaxConns = maxConns
	pgxCfg.MinConns = minConns
	pgxCfg.MaxConnLifetime = 30 * time.Minute
	pgxCfg.MaxConnIdleTime = 5 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, pgxCfg)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: create pool")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, eris.Wrap(err, "postgres: ping")
	}
	return &PostgresStore{pool: pool, closeFn: pool.Close}, nil
}

// NewPostgresWithPool wires an existing pool, used by tests.
func NewPostgresWithPool(pool Pool) *PostgresStore {
	return &PostgresStore{pool: pool, closeFn: func() {}}
}

const postgresMigration = `
CREATE TABLE IF NOT EXISTS interactions (
	id                 TEXT PRIMARY KEY,
	organization_id    TEXT NOT NULL DEFAULT '',
	user_query         TEXT NOT NULL,
	ai_response        TEXT NOT NULL,
	validated_response TEXT,
	status             TEXT NOT NULL,
	confidence_score   DOUBLE PRECISION NOT NULL,
	ai_model           TEXT,
	session_id         TEXT,
	created_at         TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS detections (
	id             TEXT PRIMARY KEY,
	interaction_id TEXT NOT NULL REFERENCES interactions(id),
	result         JSONB NOT NULL,
	created_at     TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS compliance_rules (
	id         TEXT PRIMARY KEY,
	name       TEXT NOT NULL,
	spec       JSONB NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS policies (
	id              TEXT PRIMARY KEY,
	name            TEXT NOT NULL,
	content         TEXT NOT NULL,
	category        TEXT,
	organization_id TEXT NOT NULL DEFAULT '',
	is_active       BOOLEAN NOT NULL DEFAULT true,
	created_at      TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_interactions_org ON interactions(organization_id);
CREATE INDEX IF NOT EXISTS idx_interactions_created ON interactions(created_at);
CREATE INDEX IF NOT EXISTS idx_detections_interaction ON detections(interaction_id);
CREATE INDEX IF NOT EXISTS idx_policies_org ON policies(organization_id);
`

func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, postgresMigration)
	return eris.Wrap(err, "postgres: migrate")
}

func (s *PostgresStore) Close() error {
	s.closeFn()
	return nil
}

func (s *PostgresStore) SaveDetection(ctx context.Context, interaction model.Interaction, result *model.DetectionResult) (string, error) {
	id := uuid.New().String()
	now := time.Now().UTC()

	resultJSON, err := json.Marshal(result)
	if err != nil {
		return "", eris.Wrap(err, "postgres: marshal detection result")
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return "", eris.Wrap(err, "postgres: begin tx")
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx,
		`INSERT INTO interactions (id, organization_id, user_query, ai_response, validated_response, status, confidence_score, ai_model, session_id, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		id, interaction.OrganizationID, interaction.UserQuery, interaction.AIResponse,
		interaction.ValidatedResponse, string(result.Status), result.ConfidenceScore,
		interaction.AIModel, interaction.SessionID, now,
	)
	if err != nil {
		return "", eris.Wrap(err, "postgres: insert interaction")
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO detections (id, interaction_id, result, created_at) VALUES ($1, $2, $3, $4)`,
		uuid.New().String(), id, resultJSON, now,
	)
	if err != nil {
		return "", eris.Wrap(err, "postgres: insert detection")
	}

	if err := tx.Commit(ctx); err != nil {
		return "", eris.Wrap(err, "postgres: commit detection")
	}
	return id, nil
}

func (s *PostgresStore) ListInteractions(ctx context.Context, organizationID string, limit int) ([]model.Interaction, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	rows, err := s.pool.Query(ctx,
		`SELECT id, organization_id, user_query, ai_response, COALESCE(validated_response, ''), status, confidence_score, COALESCE(ai_model, ''), COALESCE(session_id, ''), created_at
		 FROM interactions WHERE organization_id = $1 ORDER BY created_at DESC LIMIT $2`,
		organizationID, limit,
	)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list interactions")
	}
	defer rows.Close()

	var out []model.Interaction
	for rows.Next() {
		var it model.Interaction
		var status string
		if err := rows.Scan(&it.ID, &it.OrganizationID, &it.UserQuery, &it.AIResponse,
			&it.ValidatedResponse, &status, &it.ConfidenceScore, &it.AIModel, &it.SessionID, &it.CreatedAt); err != nil {
			return nil, eris.Wrap(err, "postgres: scan interaction")
		}
		it.Status = model.DetectionStatus(status)
		out = append(out, it)
	}
	return out, eris.Wrap(rows.Err(), "postgres: iterate interactions")
}

func (s *PostgresStore) RecentResponses(ctx context.Context, organizationID string, limit int) ([]string, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	rows, err := s.pool.Query(ctx,
		`SELECT ai_response FROM interactions WHERE organization_id = $1 ORDER BY created_at DESC LIMIT $2`,
		organizationID, limit,
	)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: recent responses")
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var r string
		if err := rows.Scan(&r); err != nil {
			return nil, eris.Wrap(err, "postgres: scan response")
		}
		out = append(out, r)
	}
	return out, eris.Wrap(rows.Err(), "postgres: iterate responses")
}

func (s *PostgresStore) LoadRules(ctx context.Context) ([]model.Rule, error) {
	rows, err := s.pool.Query(ctx, `SELECT spec FROM compliance_rules`)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: load rules")
	}
	defer rows.Close()

	var out []model.Rule
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, eris.Wrap(err, "postgres: scan rule")
		}
		rule, ok := decodeRule(string(raw))
		if ok {
			out = append(out, rule)
		}
	}
	return out, eris.Wrap(rows.Err(), "postgres: iterate rules")
}

func (s *PostgresStore) LoadPolicies(ctx context.Context, organizationID string) ([]model.Policy, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, name, content, COALESCE(category, ''), organization_id, is_active
		 FROM policies WHERE is_active AND (organization_id = $1 OR organization_id = '')`,
		organizationID,
	)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: load policies")
	}
	defer rows.Close()

	var out []model.Policy
	for rows.Next() {
		var p model.Policy
		if err := rows.Scan(&p.ID, &p.Name, &p.Content, &p.Category, &p.OrganizationID, &p.IsActive); err != nil {
			return nil, eris.Wrap(err, "postgres: scan policy")
		}
		out = append(out, p)
	}
	return out, eris.Wrap(rows.Err(), "postgres: iterate policies")
}

func (s *PostgresStore) SeedRules(ctx context.Context, rules []model.Rule) error {
	for _, r := range rules {
		if r.ID == "" {
			r.ID = uuid.New().String()
		}
		spec, err := json.Marshal(r.Spec())
		if err != nil {
			return eris.Wrapf(err, "postgres: marshal rule %s", r.Name)
		}
		_, err = s.pool.Exec(ctx,
			`INSERT INTO compliance_rules (id, name, spec) VALUES ($1, $2, $3)
			 ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name, spec = EXCLUDED.spec`,
			r.ID, r.Name, spec,
		)
		if err != nil {
			return eris.Wrapf(err, "postgres: seed rule %s", r.Name)
		}
	}
	return nil
}

func (s *PostgresStore) SeedPolicies(ctx context.Context, policies []model.Policy) error {
	for _, p := range policies {
		if p.ID == "" {
			p.ID = uuid.New().String()
		}
		_, err := s.pool.Exec(ctx,
			`INSERT INTO policies (id, name, content, category, organization_id, is_active) VALUES ($1, $2, $3, $4, $5, $6)
			 ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name, content = EXCLUDED.content, category = EXCLUDED.category, organization_id = EXCLUDED.organization_id, is_active = EXCLUDED.is_active`,
			p.ID, p.Name, p.Content, p.Category, p.OrganizationID, p.IsActive,
		)
		if err != nil {
			return eris.Wrapf(err, "postgres: seed policy %s", p.Name)
		}
	}
	return nil
}
