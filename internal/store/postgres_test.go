package store

import (
	"context"
	"testing"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/truthguard/truthguard/internal/model"
)

func newMockPostgres(t *testing.T) (*PostgresStore, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return NewPostgresWithPool(mock), mock
}

func TestPostgres_SaveDetection(t *testing.T) {
	s, mock := newMockPostgres(t)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO interactions").
		WithArgs(pgxmock.AnyArg(), "org-1", "where is my refund", "Refunds take 7-10 business days.",
			"", "approved", 0.82, "gpt-4o-mini", "sess-1", pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectExec("INSERT INTO detections").
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectCommit()

	id, err := s.SaveDetection(context.Background(),
		model.Interaction{
			OrganizationID: "org-1",
			UserQuery:      "where is my refund",
			AIResponse:     "Refunds take 7-10 business days.",
			AIModel:        "gpt-4o-mini",
			SessionID:      "sess-1",
		},
		&model.DetectionResult{Status: model.StatusApproved, ConfidenceScore: 0.82},
	)

	require.NoError(t, err)
	assert.NotEmpty(t, id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_SaveDetectionInsertFailure(t *testing.T) {
	s, mock := newMockPostgres(t)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO interactions").
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
			pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnError(eris.New("connection reset"))
	mock.ExpectRollback()

	_, err := s.SaveDetection(context.Background(),
		model.Interaction{UserQuery: "q", AIResponse: "r"},
		&model.DetectionResult{Status: model.StatusApproved, ConfidenceScore: 0.8},
	)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "insert interaction")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_RecentResponses(t *testing.T) {
	s, mock := newMockPostgres(t)

	mock.ExpectQuery("SELECT ai_response FROM interactions").
		WithArgs("org-1", 5).
		WillReturnRows(pgxmock.NewRows([]string{"ai_response"}).
			AddRow("newest response").
			AddRow("older response"))

	responses, err := s.RecentResponses(context.Background(), "org-1", 5)
	require.NoError(t, err)
	assert.Equal(t, []string{"newest response", "older response"}, responses)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_LoadPolicies(t *testing.T) {
	s, mock := newMockPostgres(t)

	mock.ExpectQuery("SELECT id, name, content").
		WithArgs("org-1").
		WillReturnRows(pgxmock.NewRows([]string{"id", "name", "content", "category", "organization_id", "is_active"}).
			AddRow("p-1", "Refund Policy", "Refunds take 7-10 business days.", "refund", "org-1", true).
			AddRow("p-2", "Global Policy", "Be helpful.", "", "", true))

	policies, err := s.LoadPolicies(context.Background(), "org-1")
	require.NoError(t, err)
	require.Len(t, policies, 2)
	assert.Equal(t, "Refund Policy", policies[0].Name)
	assert.Equal(t, "org-1", policies[0].OrganizationID)
	assert.True(t, policies[1].IsActive)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_LoadRulesSkipsMalformed(t *testing.T) {
	s, mock := newMockPostgres(t)

	mock.ExpectQuery("SELECT spec FROM compliance_rules").
		WillReturnRows(pgxmock.NewRows([]string{"spec"}).
			AddRow([]byte(`not json`)).
			AddRow([]byte(`{"rule_name":"Good Rule","rule_type":"custom","match_type":"keyword_match","keywords":["foo"],"action":"flag","severity":"low"}`)))

	rules, err := s.LoadRules(context.Background())
	require.NoError(t, err)
	require.Len(t, rules, 1)
	assert.Equal(t, "Good Rule", rules[0].Name)
	assert.Equal(t, []string{"foo"}, rules[0].Patterns)
	assert.NoError(t, mock.ExpectationsWereMet())
}
