package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/truthguard/truthguard/internal/model"
)

// SQLiteStore implements Store using modernc.org/sqlite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures WAL mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS interactions (
	id                 TEXT PRIMARY KEY,
	organization_id    TEXT NOT NULL DEFAULT '',
	user_query         TEXT NOT NULL,
	ai_response        TEXT NOT NULL,
	validated_response TEXT,
	status             TEXT NOT NULL,
	confidence_score   REAL NOT NULL,
	ai_model           TEXT,
	session_id         TEXT,
	created_at         DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE TABLE IF NOT EXISTS detections (
	id             TEXT PRIMARY KEY,
	interaction_id TEXT NOT NULL REFERENCES interactions(id),
	result         TEXT NOT NULL,
	created_at     DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE TABLE IF NOT EXISTS compliance_rules (
	id         TEXT PRIMARY KEY,
	name       TEXT NOT NULL,
	spec       TEXT NOT NULL,
	created_at DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE TABLE IF NOT EXISTS policies (
	id              TEXT PRIMARY KEY,
	name            TEXT NOT NULL,
	content         TEXT NOT NULL,
	category        TEXT,
	organization_id TEXT NOT NULL DEFAULT '',
	is_active       INTEGER NOT NULL DEFAULT 1,
	created_at      DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE INDEX IF NOT EXISTS idx_interactions_org ON interactions(organization_id);
CREATE INDEX IF NOT EXISTS idx_interactions_created ON interactions(created_at);
CREATE INDEX IF NOT EXISTS idx_detections_interaction ON detections(interaction_id);
CREATE INDEX IF NOT EXISTS idx_policies_org ON policies(organization_id);
`

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) SaveDetection(ctx context.Context, interaction model.Interaction, result *model.DetectionResult) (string, error) {
	id := uuid.New().String()
	now := time.Now().UTC()

	resultJSON, err := json.Marshal(result)
	if err != nil {
		return "", eris.Wrap(err, "sqlite: marshal detection result")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", eris.Wrap(err, "sqlite: begin tx")
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO interactions (id, organization_id, user_query, ai_response, validated_response, status, confidence_score, ai_model, session_id, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, interaction.OrganizationID, interaction.UserQuery, interaction.AIResponse,
		interaction.ValidatedResponse, string(result.Status), result.ConfidenceScore,
		interaction.AIModel, interaction.SessionID, now,
	)
	if err != nil {
		return "", eris.Wrap(err, "sqlite: insert interaction")
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO detections (id, interaction_id, result, created_at) VALUES (?, ?, ?, ?)`,
		uuid.New().String(), id, string(resultJSON), now,
	)
	if err != nil {
		return "", eris.Wrap(err, "sqlite: insert detection")
	}

	if err := tx.Commit(); err != nil {
		return "", eris.Wrap(err, "sqlite: commit detection")
	}
	return id, nil
}

func (s *SQLiteStore) ListInteractions(ctx context.Context, organizationID string, limit int) ([]model.Interaction, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, organization_id, user_query, ai_response, COALESCE(validated_response, ''), status, confidence_score, COALESCE(ai_model, ''), COALESCE(session_id, ''), created_at
		 FROM interactions WHERE organization_id = ? ORDER BY created_at DESC LIMIT ?`,
		organizationID, limit,
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list interactions")
	}
	defer rows.Close()

	var out []model.Interaction
	for rows.Next() {
		var it model.Interaction
		var status string
		if err := rows.Scan(&it.ID, &it.OrganizationID, &it.UserQuery, &it.AIResponse,
			&it.ValidatedResponse, &status, &it.ConfidenceScore, &it.AIModel, &it.SessionID, &it.CreatedAt); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan interaction")
		}
		it.Status = model.DetectionStatus(status)
		out = append(out, it)
	}
	return out, eris.Wrap(rows.Err(), "sqlite: iterate interactions")
}

func (s *SQLiteStore) RecentResponses(ctx context.Context, organizationID string, limit int) ([]string, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT ai_response FROM interactions WHERE organization_id = ? ORDER BY created_at DESC LIMIT ?`,
		organizationID, limit,
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: recent responses")
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var r string
		if err := rows.Scan(&r); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan response")
		}
		out = append(out, r)
	}
	return out, eris.Wrap(rows.Err(), "sqlite: iterate responses")
}

func (s *SQLiteStore) LoadRules(ctx context.Context) ([]model.Rule, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT spec FROM compliance_rules`)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: load rules")
	}
	defer rows.Close()

	var out []model.Rule
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan rule")
		}
		rule, ok := decodeRule(raw)
		if ok {
			out = append(out, rule)
		}
	}
	return out, eris.Wrap(rows.Err(), "sqlite: iterate rules")
}

func (s *SQLiteStore) LoadPolicies(ctx context.Context, organizationID string) ([]model.Policy, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, content, COALESCE(category, ''), organization_id, is_active
		 FROM policies WHERE is_active = 1 AND (organization_id = ? OR organization_id = '')`,
		organizationID,
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: load policies")
	}
	defer rows.Close()

	var out []model.Policy
	for rows.Next() {
		var p model.Policy
		if err := rows.Scan(&p.ID, &p.Name, &p.Content, &p.Category, &p.OrganizationID, &p.IsActive); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan policy")
		}
		out = append(out, p)
	}
	return out, eris.Wrap(rows.Err(), "sqlite: iterate policies")
}

func (s *SQLiteStore) SeedRules(ctx context.Context, rules []model.Rule) error {
	for _, r := range rules {
		if r.ID == "" {
			r.ID = uuid.New().String()
		}
		id := r.ID
		spec, err := json.Marshal(r.Spec())
		if err != nil {
			return eris.Wrapf(err, "sqlite: marshal rule %s", r.Name)
		}
		_, err = s.db.ExecContext(ctx,
			`INSERT INTO compliance_rules (id, name, spec) VALUES (?, ?, ?)
			 ON CONFLICT(id) DO UPDATE SET name = excluded.name, spec = excluded.spec`,
			id, r.Name, string(spec),
		)
		if err != nil {
			return eris.Wrapf(err, "sqlite: seed rule %s", r.Name)
		}
	}
	return nil
}

func (s *SQLiteStore) SeedPolicies(ctx context.Context, policies []model.Policy) error {
	for _, p := range policies {
		id := p.ID
		if id == "" {
			id = uuid.New().String()
		}
		_, err := s.db.ExecContext(ctx,
			`INSERT INTO policies (id, name, content, category, organization_id, is_active) VALUES (?, ?, ?, ?, ?, ?)
			 ON CONFLICT(id) DO UPDATE SET name = excluded.name, content = excluded.content, category = excluded.category, organization_id = excluded.organization_id, is_active = excluded.is_active`,
			id, p.Name, p.Content, p.Category, p.OrganizationID, boolToInt(p.IsActive),
		)
		if err != nil {
			return eris.Wrapf(err, "sqlite: seed policy %s", p.Name)
		}
	}
	return nil
}

// decodeRule unmarshals and validates a stored rule. Malformed rules
// are logged and skipped, never fatal to a run.
func decodeRule(raw string) (model.Rule, bool) {
	var spec model.RuleSpec
	if err := json.Unmarshal([]byte(raw), &spec); err != nil {
		zap.L().Warn("store: skipping malformed rule json", zap.Error(err))
		return model.Rule{}, false
	}
	rule, err := model.ParseRule(spec)
	if err != nil {
		zap.L().Warn("store: skipping invalid rule", zap.Error(err))
		return model.Rule{}, false
	}
	return rule, true
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
