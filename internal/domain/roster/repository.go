package roster

import "context"

// Repository describes roster persistence needs from use cases.
type Repository interface {
	// Replace swaps the whole roster snapshot atomically.
	Replace(ctx context.Context, players []Player) error
	GetByID(ctx context.Context, playerID string) (Player, bool, error)
	GetByIDs(ctx context.Context, playerIDs []string) ([]Player, error)
	// ListRelevant returns the fantasy-relevant subset of the snapshot.
	ListRelevant(ctx context.Context) ([]Player, error)
	// ListAll returns every player in the snapshot, relevant or not.
	ListAll(ctx context.Context) ([]Player, error)
}
