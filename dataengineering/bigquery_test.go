package dataengineering

import (
	"testing"
	"time"

	"cloud.google.com/go/bigquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildValidationQuery(t *testing.T) {
	t.Run("not_null", func(t *testing.T) {
		q, err := buildValidationQuery("proj", "sales", "orders", ValidationRule{Column: "id", Type: "not_null"})
		require.NoError(t, err)
		assert.Equal(t, "SELECT COUNT(*) AS null_count FROM `proj.sales.orders` WHERE id IS NULL", q)
	})

	t.Run("unique", func(t *testing.T) {
		q, err := buildValidationQuery("proj", "sales", "orders", ValidationRule{Column: "id", Type: "unique"})
		require.NoError(t, err)
		assert.Contains(t, q, "GROUP BY id HAVING COUNT(*) > 1")
	})

	t.Run("value", func(t *testing.T) {
		q, err := buildValidationQuery("proj", "sales", "orders", ValidationRule{Column: "state", Type: "value", Value: "'shipped'"})
		require.NoError(t, err)
		assert.Contains(t, q, "WHERE state != 'shipped'")
	})

	t.Run("value without value", func(t *testing.T) {
		_, err := buildValidationQuery("proj", "sales", "orders", ValidationRule{Column: "state", Type: "value"})
		assert.Error(t, err)
	})

	t.Run("unknown rule", func(t *testing.T) {
		_, err := buildValidationQuery("proj", "sales", "orders", ValidationRule{Column: "id", Type: "regex"})
		assert.Error(t, err)
	})
}

func TestCheckReadOnly(t *testing.T) {
	assert.NoError(t, checkReadOnly("SELECT * FROM `proj.sales.orders` LIMIT 10"))
	assert.NoError(t, checkReadOnly("select created_at from t where id = 1"))

	for _, query := range []string{
		"DELETE FROM t WHERE 1=1",
		"insert into t values (1)",
		"DROP TABLE t",
		"SELECT 1; TRUNCATE TABLE t",
		"create table t (id INT64)",
	} {
		assert.Error(t, checkReadOnly(query), query)
	}
}

func TestNormalizeValue(t *testing.T) {
	ts := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)
	assert.Equal(t, "2026-03-14T09:26:53Z", normalizeValue(ts))
	assert.Equal(t, "raw", normalizeValue([]byte("raw")))
	assert.Equal(t, int64(7), normalizeValue(int64(7)))

	nested := normalizeValue([]bigquery.Value{int64(1), []byte("x")})
	assert.Equal(t, []any{int64(1), "x"}, nested)

	record := normalizeValue(map[string]bigquery.Value{"when": ts})
	assert.Equal(t, map[string]any{"when": "2026-03-14T09:26:53Z"}, record)
}

func TestJobState(t *testing.T) {
	assert.Equal(t, "PENDING", jobState(bigquery.Pending))
	assert.Equal(t, "RUNNING", jobState(bigquery.Running))
	assert.Equal(t, "DONE", jobState(bigquery.Done))
}
