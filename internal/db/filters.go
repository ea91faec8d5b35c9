package db

import (
	"time"

	"github.com/uptrace/bun"
)

func ByUser(userID string) Filter {
	return func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("?TableAlias.user_id = ?", userID)
	}
}

func BySpaceType(spaceType string) Filter {
	if spaceType == "" {
		return nil
	}
	return func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("?TableAlias.type = ?", spaceType)
	}
}

// ByPeriod keeps rows starting on or after start and ending on or before
// end. Either bound may be nil.
func ByPeriod(start, end *time.Time) Filter {
	if start == nil && end == nil {
		return nil
	}
	return func(q *bun.SelectQuery) *bun.SelectQuery {
		if start != nil {
			q = q.Where("?TableAlias.start_date >= ?", *start)
		}
		if end != nil {
			q = q.Where("?TableAlias.end_date <= ?", *end)
		}
		return q
	}
}

func ByReadStatus(userID string, read bool) Filter {
	return func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("?TableAlias.user_id = ?", userID).
			Where("?TableAlias.read_status = ?", read)
	}
}
