package salary

import "context"

// Repository describes salary persistence needs from use cases.
// ReplaceWeek installs a fresh snapshot for one week while retaining the
// immediately preceding week; anything older is discarded.
type Repository interface {
	ReplaceWeek(ctx context.Context, week int, entries []Entry) error
	GetByPlayer(ctx context.Context, playerID string, week int) (Entry, bool, error)
	ListByWeek(ctx context.Context, week int) ([]Entry, error)
	Weeks(ctx context.Context) ([]int, error)
}
