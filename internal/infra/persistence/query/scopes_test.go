package query

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/utils/tests"
)

// buildSQL runs a scope against a dry-run session and returns the generated
// SQL with its bound variables. No database connection is involved.
func buildSQL(t *testing.T, scope Scope) (string, []any) {
	t.Helper()

	db, err := gorm.Open(tests.DummyDialector{}, &gorm.Config{DryRun: true})
	require.NoError(t, err)

	var rows []map[string]any
	stmt := db.Table("things").Scopes(scope).Find(&rows).Statement

	return stmt.SQL.String(), stmt.Vars
}

func TestDateRange_AbsentIsPassThrough(t *testing.T) {
	sql, vars := buildSQL(t, DateRange("created_at", nil))

	assert.NotContains(t, sql, "created_at")
	assert.NotContains(t, sql, "1 = 0")
	assert.Empty(t, vars)
}

func TestDateRange_TwoValidDates(t *testing.T) {
	sql, vars := buildSQL(t, DateRange("created_at", []string{"2024-01-01", "2024-01-31"}))

	assert.Contains(t, sql, "created_at >= ? AND created_at < ?")
	require.Len(t, vars, 2)

	start, ok := vars[0].(time.Time)
	require.True(t, ok)
	upper, ok := vars[1].(time.Time)
	require.True(t, ok)

	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), start)
	// Inclusive end date: exclusive upper bound one day past it.
	assert.Equal(t, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), upper)
}

func TestDateRange_FailsClosed(t *testing.T) {
	cases := []struct {
		name   string
		values []string
	}{
		{name: "single value", values: []string{"2024-01-01"}},
		{name: "three values", values: []string{"2024-01-01", "2024-01-02", "2024-01-03"}},
		{name: "malformed start", values: []string{"01/01/2024", "2024-01-31"}},
		{name: "malformed end", values: []string{"2024-01-01", "not-a-date"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			sql, _ := buildSQL(t, DateRange("created_at", tc.values))

			assert.Contains(t, sql, "1 = 0")
			assert.NotContains(t, sql, "created_at")
		})
	}
}

func TestBoolIn_MapsAndDropsTokens(t *testing.T) {
	sql, vars := buildSQL(t, BoolIn("is_active", []string{"TRUE", "bogus", "False"}))

	assert.Contains(t, sql, "is_active IN")
	require.Len(t, vars, 1)
	assert.Equal(t, []bool{true, false}, vars[0])
}

func TestBoolIn_AbsentIsPassThrough(t *testing.T) {
	sql, _ := buildSQL(t, BoolIn("is_active", nil))

	assert.NotContains(t, sql, "is_active")
}

func TestBoolIn_AllTokensDroppedFailsClosed(t *testing.T) {
	sql, _ := buildSQL(t, BoolIn("is_active", []string{"yes", "1"}))

	assert.Contains(t, sql, "1 = 0")
	assert.NotContains(t, sql, "is_active")
}

func TestContains_EscapesWildcards(t *testing.T) {
	sql, vars := buildSQL(t, Contains("name", "50%_done"))

	assert.Contains(t, sql, "name ILIKE ?")
	require.Len(t, vars, 1)
	assert.Equal(t, `%50\%\_done%`, vars[0])
}

func TestContainsAny_BuildsOrChain(t *testing.T) {
	sql, vars := buildSQL(t, ContainsAny([]string{"phone_number_1", "phone_number_2"}, "555"))

	assert.Contains(t, sql, "phone_number_1 ILIKE ? OR phone_number_2 ILIKE ?")
	assert.Len(t, vars, 2)
}

func TestRelatedNameContains_BuildsExists(t *testing.T) {
	correlation := "SELECT 1 FROM user_groups JOIN groups ON groups.id = user_groups.group_id WHERE user_groups.user_id = things.id"

	sql, vars := buildSQL(t, RelatedNameContains(correlation, "groups.name", []string{"admin", "staff"}))

	assert.Contains(t, sql, "EXISTS (")
	assert.Contains(t, sql, "groups.name ILIKE ? OR groups.name ILIKE ?")
	assert.Equal(t, []any{"%admin%", "%staff%"}, vars)
}

func TestRelatedNameContains_AbsentIsPassThrough(t *testing.T) {
	sql, _ := buildSQL(t, RelatedNameContains("SELECT 1", "groups.name", nil))

	assert.NotContains(t, sql, "EXISTS")
}

func TestNumberBounds(t *testing.T) {
	sql, vars := buildSQL(t, NumberGTE("usable_area_m2", "120.5"))
	assert.Contains(t, sql, "usable_area_m2 >= ?")
	assert.Equal(t, []any{120.5}, vars)

	sql, vars = buildSQL(t, NumberLTE("usable_area_m2", "300"))
	assert.Contains(t, sql, "usable_area_m2 <= ?")
	assert.Equal(t, []any{300.0}, vars)

	// Malformed bound fails closed; absent bound passes through.
	sql, _ = buildSQL(t, NumberGTE("usable_area_m2", "large"))
	assert.Contains(t, sql, "1 = 0")

	sql, _ = buildSQL(t, NumberLTE("usable_area_m2", ""))
	assert.NotContains(t, sql, "usable_area_m2")
}

func TestOrdering(t *testing.T) {
	allowed := map[string]string{
		"email":  "email",
		"groups": "(SELECT MIN(groups.name) FROM groups)",
	}

	t.Run("whitelisted ascending and descending", func(t *testing.T) {
		sql, _ := buildSQL(t, Ordering(allowed, "email,-groups", "email DESC"))

		assert.Contains(t, sql, "ORDER BY email")
		assert.Contains(t, sql, "(SELECT MIN(groups.name) FROM groups) DESC")
	})

	t.Run("unknown keys fall back to default", func(t *testing.T) {
		sql, _ := buildSQL(t, Ordering(allowed, "password_hash", "email DESC"))

		assert.Contains(t, sql, "ORDER BY email DESC")
		assert.NotContains(t, sql, "password_hash")
	})

	t.Run("empty ordering uses default", func(t *testing.T) {
		sql, _ := buildSQL(t, Ordering(allowed, "", "email DESC"))

		assert.Contains(t, sql, "ORDER BY email DESC")
	})
}

func TestPaginate(t *testing.T) {
	t.Run("first page has no offset", func(t *testing.T) {
		sql, vars := buildSQL(t, Paginate(1, 20))

		assert.Contains(t, sql, "LIMIT ?")
		assert.NotContains(t, sql, "OFFSET")
		assert.Equal(t, []any{20}, vars)
	})

	t.Run("second page of a 25 row set skips the first full page", func(t *testing.T) {
		sql, vars := buildSQL(t, Paginate(2, 20))

		assert.Contains(t, sql, "LIMIT ? OFFSET ?")
		assert.Equal(t, []any{20, 20}, vars)
	})

	t.Run("offset grows by whole pages", func(t *testing.T) {
		_, vars := buildSQL(t, Paginate(3, 10))

		assert.Equal(t, []any{10, 20}, vars)
	})
}

func TestNormalizePageSize(t *testing.T) {
	assert.Equal(t, DefaultPageSize, NormalizePageSize(0))
	assert.Equal(t, DefaultPageSize, NormalizePageSize(-5))
	assert.Equal(t, 50, NormalizePageSize(50))
	assert.Equal(t, MaxPageSize, NormalizePageSize(500))
}

func TestNormalizePage(t *testing.T) {
	assert.Equal(t, 1, NormalizePage(0))
	assert.Equal(t, 3, NormalizePage(3))
}
