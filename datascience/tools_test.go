package datascience

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStripSQLFences(t *testing.T) {
	assert.Equal(t, "SELECT 1", stripSQLFences("```sql\nSELECT 1\n```"))
	assert.Equal(t, "SELECT 1", stripSQLFences("```\nSELECT 1\n```"))
	assert.Equal(t, "SELECT 1", stripSQLFences("  SELECT 1  "))
	assert.Equal(t, "", stripSQLFences("```sql\n```"))
}

func TestDisallowedStatement(t *testing.T) {
	assert.Equal(t, "", disallowedStatement("SELECT station_id FROM `proj.ds.t` LIMIT 80"))
	assert.Equal(t, "DELETE", disallowedStatement("delete from t where 1=1"))
	assert.Equal(t, "UPDATE", disallowedStatement("UPDATE t SET a = 1"))
	assert.Equal(t, "CREATE", disallowedStatement("CREATE OR REPLACE MODEL `proj.ds.m`"))
	assert.Equal(t, "DROP", disallowedStatement("SELECT 1; DROP TABLE t"))
}
