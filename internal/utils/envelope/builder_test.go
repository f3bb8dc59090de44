package envelope

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/retailboard/store_reports_app/internal/apperrors"
	"github.com/retailboard/store_reports_app/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuild_SubstitutesPlaceholders(t *testing.T) {
	blocks := map[string]string{
		"CurrentTurnover": "SELECT SUM(total) FROM bills WHERE closed_at >= 'START_DATE' AND closed_at < 'END_DATE'",
		"CurrentPayType":  "SELECT pay_type, SUM(total) FROM bills WHERE closed_at >= 'START_DATE' AND closed_at < 'END_DATE' GROUP BY pay_type",
	}

	start := time.Date(2024, time.March, 14, 22, 0, 0, 0, time.UTC)
	env, err := Build("obj-17", "s3cret", blocks, Substitutions{
		"START_DATE": Date(start),
		"END_DATE":   Date(start.AddDate(0, 0, 1)),
	})
	require.NoError(t, err)

	assert.Equal(t, "obj-17", env.TenantID)
	assert.Equal(t, "s3cret", env.TenantPass)
	require.Len(t, env.Blocks, 2)

	turnover := env.Blocks["CurrentTurnover"]
	assert.Equal(t, domain.QueryBlockType, turnover.Type)
	assert.Contains(t, turnover.SQL, "'2024-03-14 22:00:00'")
	assert.Contains(t, turnover.SQL, "'2024-03-15 22:00:00'")
	assert.NotContains(t, turnover.SQL, "START_DATE")
	assert.NotContains(t, env.Blocks["CurrentPayType"].SQL, "END_DATE")
}

func TestBuild_PrefixPlaceholdersDoNotCollide(t *testing.T) {
	// START_DATE is a substring of LAST_START_DATE; the dashboard envelope
	// carries both sets, and each template occurrence must resolve to its own
	// value regardless of substitution order.
	blocks := map[string]string{
		"LastTurnover":    "SELECT 1 WHERE x >= 'LAST_START_DATE' AND x < 'LAST_END_DATE'",
		"CurrentTurnover": "SELECT 1 WHERE x >= 'START_DATE' AND x < 'END_DATE'",
	}

	env, err := Build("obj-1", "pw", blocks, Substitutions{
		"START_DATE":      Raw("2024-05-10 00:00:00"),
		"END_DATE":        Raw("2024-05-11 00:00:00"),
		"LAST_START_DATE": Raw("2024-05-09 00:00:00"),
		"LAST_END_DATE":   Raw("2024-05-10 00:00:00"),
	})
	require.NoError(t, err)

	assert.Equal(t, "SELECT 1 WHERE x >= '2024-05-09 00:00:00' AND x < '2024-05-10 00:00:00'", env.Blocks["LastTurnover"].SQL)
	assert.Equal(t, "SELECT 1 WHERE x >= '2024-05-10 00:00:00' AND x < '2024-05-11 00:00:00'", env.Blocks["CurrentTurnover"].SQL)
	assert.NotContains(t, env.Blocks["LastTurnover"].SQL, "LAST_")
}

func TestBuild_TenantIdentityWinsOverBlockNames(t *testing.T) {
	// A block named like an identity field must not shadow the credential.
	env, err := Build("obj-1", "pass-1", map[string]string{
		"Id": "SELECT 1",
	}, nil)
	require.NoError(t, err)

	data, err := json.Marshal(env)
	require.NoError(t, err)

	var wire map[string]any
	require.NoError(t, json.Unmarshal(data, &wire))
	assert.Equal(t, "obj-1", wire["Id"])
	assert.Equal(t, "pass-1", wire["Pass"])
}

func TestBuild_WireShape(t *testing.T) {
	env, err := Build("obj-9", "pw", map[string]string{
		"Bills": "SELECT * FROM bills WHERE operator = 'OPERATOR_NAME'",
	}, Substitutions{"OPERATOR_NAME": Text("anna")})
	require.NoError(t, err)

	data, err := json.Marshal(env)
	require.NoError(t, err)

	var wire struct {
		ID    string `json:"Id"`
		Pass  string `json:"Pass"`
		Bills struct {
			Type string `json:"Type"`
			SQL  string `json:"SQL"`
		} `json:"Bills"`
	}
	require.NoError(t, json.Unmarshal(data, &wire))
	assert.Equal(t, "obj-9", wire.ID)
	assert.Equal(t, "pw", wire.Pass)
	assert.Equal(t, "Query", wire.Bills.Type)
	assert.Equal(t, "SELECT * FROM bills WHERE operator = 'anna'", wire.Bills.SQL)
}

func TestBuild_RejectsQuoteInFreeText(t *testing.T) {
	_, err := Build("obj-1", "pw", map[string]string{
		"Articles": "SELECT * FROM articles WHERE name LIKE '%SEARCH_TEXT%'",
	}, Substitutions{"SEARCH_TEXT": Text("o'brien")})

	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestBuild_RejectsUnsafeRawValue(t *testing.T) {
	_, err := Build("obj-1", "pw", map[string]string{
		"Bills": "SELECT * FROM bills WHERE id = BILL_ID",
	}, Substitutions{"BILL_ID": Raw("1; DROP TABLE bills")})

	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestBuild_RequiresBlocks(t *testing.T) {
	_, err := Build("obj-1", "pw", nil, nil)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}
