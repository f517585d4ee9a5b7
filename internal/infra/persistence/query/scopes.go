// Package query builds the reusable storage predicates applied to list
// queries. Every builder returns a GORM scope and follows one contract: an
// entirely absent parameter is a pass-through, while malformed supplied input
// fails closed (matches no rows) instead of erroring.
package query

import (
	"strconv"
	"strings"
	"time"

	"gorm.io/gorm"
)

// Scope is a composable query predicate.
type Scope = func(*gorm.DB) *gorm.DB

const (
	// DefaultPageSize is used when the client supplies no page_size.
	DefaultPageSize = 20
	// MaxPageSize caps the client-supplied page_size.
	MaxPageSize = 100

	dateLayout = "2006-01-02"
)

// noop passes every row through.
func noop(db *gorm.DB) *gorm.DB {
	return db
}

// None matches no rows. It is the fail-closed predicate every malformed
// filter input degrades to.
func None(db *gorm.DB) *gorm.DB {
	return db.Where("1 = 0")
}

// DateRange filters a timestamp column to [start, end] inclusive, supplied as
// two YYYY-MM-DD values. The inclusive end is expressed as an exclusive upper
// bound at end+1 day. Supplied input that is not exactly two parseable dates
// matches nothing.
func DateRange(column string, values []string) Scope {
	if len(values) == 0 {
		return noop
	}
	if len(values) != 2 {
		return None
	}

	start, startErr := time.Parse(dateLayout, values[0])
	end, endErr := time.Parse(dateLayout, values[1])
	if startErr != nil || endErr != nil {
		return None
	}

	upper := end.Add(24 * time.Hour)

	return func(db *gorm.DB) *gorm.DB {
		return db.Where(column+" >= ? AND "+column+" < ?", start, upper)
	}
}

// BoolIn filters a boolean column to the supplied set of values. Tokens are
// mapped case-insensitively to true/false; anything else is dropped. If every
// supplied token is dropped the predicate matches nothing.
func BoolIn(column string, values []string) Scope {
	if len(values) == 0 {
		return noop
	}

	mapped := make([]bool, 0, len(values))
	for _, value := range values {
		switch strings.ToLower(value) {
		case "true":
			mapped = append(mapped, true)
		case "false":
			mapped = append(mapped, false)
		}
	}

	if len(mapped) == 0 {
		return None
	}

	return func(db *gorm.DB) *gorm.DB {
		return db.Where(column+" IN ?", mapped)
	}
}

// Contains filters a text column by case-insensitive substring.
func Contains(column string, value string) Scope {
	if value == "" {
		return noop
	}

	return func(db *gorm.DB) *gorm.DB {
		return db.Where(column+" ILIKE ?", containsPattern(value))
	}
}

// ContainsAny matches rows where at least one of the columns contains the
// value, case-insensitively. Used for multi-column filters and search.
func ContainsAny(columns []string, value string) Scope {
	if value == "" || len(columns) == 0 {
		return noop
	}

	conds := make([]string, 0, len(columns))
	args := make([]any, 0, len(columns))
	for _, column := range columns {
		conds = append(conds, column+" ILIKE ?")
		args = append(args, containsPattern(value))
	}

	return func(db *gorm.DB) *gorm.DB {
		return db.Where(strings.Join(conds, " OR "), args...)
	}
}

// RelatedNameContains matches rows having at least one related row whose name
// contains any of the supplied substrings, case-insensitively. The predicate
// is expressed as EXISTS over the relation, so the outer result set needs no
// de-duplication.
//
// correlation is the correlated subquery without its closing condition, e.g.
//
//	SELECT 1 FROM user_groups
//	JOIN groups ON groups.id = user_groups.group_id
//	WHERE user_groups.user_id = users.id
func RelatedNameContains(correlation, nameColumn string, values []string) Scope {
	if len(values) == 0 {
		return noop
	}

	conds := make([]string, 0, len(values))
	args := make([]any, 0, len(values))
	for _, value := range values {
		conds = append(conds, nameColumn+" ILIKE ?")
		args = append(args, containsPattern(value))
	}

	sql := "EXISTS (" + correlation + " AND (" + strings.Join(conds, " OR ") + "))"

	return func(db *gorm.DB) *gorm.DB {
		return db.Where(sql, args...)
	}
}

// IDIn filters the primary key to the supplied set. Values are passed to the
// database as-is; an empty set is a pass-through.
func IDIn(column string, values []string) Scope {
	if len(values) == 0 {
		return noop
	}

	return func(db *gorm.DB) *gorm.DB {
		return db.Where(column+" IN ?", values)
	}
}

// NumberGTE filters a numeric column to values >= the raw bound. An
// unparseable supplied bound matches nothing.
func NumberGTE(column string, raw string) Scope {
	return numberBound(column, raw, ">=")
}

// NumberLTE filters a numeric column to values <= the raw bound. An
// unparseable supplied bound matches nothing.
func NumberLTE(column string, raw string) Scope {
	return numberBound(column, raw, "<=")
}

func numberBound(column, raw, op string) Scope {
	if raw == "" {
		return noop
	}

	bound, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return None
	}

	return func(db *gorm.DB) *gorm.DB {
		return db.Where(column+" "+op+" ?", bound)
	}
}

// Ordering applies a comma-separated, Django-style ordering expression ("-"
// prefix means descending) against a static whitelist mapping exposed keys to
// ORDER BY expressions. Unknown keys are ignored; when nothing survives the
// fallback expression applies.
func Ordering(allowed map[string]string, raw string, fallback string) Scope {
	return func(db *gorm.DB) *gorm.DB {
		applied := false
		for part := range strings.SplitSeq(raw, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}

			desc := strings.HasPrefix(part, "-")
			key := strings.TrimPrefix(part, "-")
			expr, ok := allowed[key]
			if !ok {
				continue
			}

			if desc {
				expr += " DESC"
			}
			db = db.Order(expr)
			applied = true
		}

		if !applied && fallback != "" {
			db = db.Order(fallback)
		}

		return db
	}
}

// Paginate applies page/page_size windowing after normalization.
func Paginate(page, pageSize int) Scope {
	page = NormalizePage(page)
	pageSize = NormalizePageSize(pageSize)

	return func(db *gorm.DB) *gorm.DB {
		return db.Offset((page - 1) * pageSize).Limit(pageSize)
	}
}

// NormalizePage clamps the page number to >= 1.
func NormalizePage(page int) int {
	if page < 1 {
		return 1
	}

	return page
}

// NormalizePageSize applies the default and the maximum page size.
func NormalizePageSize(pageSize int) int {
	if pageSize <= 0 {
		return DefaultPageSize
	}
	if pageSize > MaxPageSize {
		return MaxPageSize
	}

	return pageSize
}

// containsPattern escapes LIKE wildcards in the user-supplied value and wraps
// it for substring matching.
func containsPattern(value string) string {
	escaped := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(value)

	return "%" + escaped + "%"
}
