package lineup

import "context"

// Repository exposes lineup persistence operations.
type Repository interface {
	GetByTargetAndWeek(ctx context.Context, target string, week int) (Lineup, bool, error)
	Upsert(ctx context.Context, lineup Lineup) error
}
