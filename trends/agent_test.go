package trends

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExecuteSQLRejectsNonSelect(t *testing.T) {
	e := &Executor{}
	for _, query := range []string{
		"DELETE FROM `bigquery-public-data.google_trends.top_terms`",
		"CREATE TABLE t (id INT64)",
		"  drop table t",
		"",
	} {
		result, err := e.ExecuteSQL(context.Background(), ExecuteSQLInput{Query: query})
		require.NoError(t, err, query)
		assert.Equal(t, "error", result["status"], query)
	}
}
