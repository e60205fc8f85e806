package pagination

import (
	"community-backend/internal/shared/apperr"
)

// Cursor describes one page of a child listing ordered by the record id,
// newest first. Before is the exclusive upper bound: a page never contains an
// item whose id is >= Before, which keeps pages stable under concurrent
// inserts. This is the only cursoring contract in the system; every paginated
// listing goes through it.
type Cursor struct {
	Before *int64
	Limit  int
}

// DefaultLimit applies when the caller did not specify a page size.
const DefaultLimit = 20

// Normalize validates and clamps the cursor. A limit of zero means "unset"
// and falls back to def; a negative limit is rejected; anything above max is
// capped to max.
func (c Cursor) Normalize(def, max int) (Cursor, error) {
	if c.Limit == 0 {
		c.Limit = def
	}
	limit, err := ClampLimit(c.Limit, max)
	if err != nil {
		return Cursor{}, err
	}
	c.Limit = limit
	return c, nil
}

// ClampLimit enforces the shared limit discipline: reject non-positive
// values, cap at max. Account listing and cursor listings use the same rule
// with different ceilings.
func ClampLimit(limit, max int) (int, error) {
	if limit <= 0 {
		return 0, apperr.New(apperr.KindInvalidRequest, "limit must be at least 1")
	}
	if limit > max {
		return max, nil
	}
	return limit, nil
}
