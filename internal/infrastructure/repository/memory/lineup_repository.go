package memory

import (
	"context"
	"strconv"
	"sync"

	"github.com/riskibarqy/nfl-dfs-helper/internal/domain/lineup"
)

type LineupRepository struct {
	mu    sync.RWMutex
	items map[string]lineup.Lineup
}

func NewLineupRepository() *LineupRepository {
	return &LineupRepository{items: make(map[string]lineup.Lineup)}
}

func (r *LineupRepository) GetByTargetAndWeek(_ context.Context, target string, week int) (lineup.Lineup, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[lineupKey(target, week)]
	if !ok {
		return lineup.Lineup{}, false, nil
	}

	return cloneLineup(item), true, nil
}

func (r *LineupRepository) Upsert(_ context.Context, item lineup.Lineup) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[lineupKey(item.Target, item.Week)] = cloneLineup(item)
	return nil
}

func lineupKey(target string, week int) string {
	return target + "::" + strconv.Itoa(week)
}

func cloneLineup(item lineup.Lineup) lineup.Lineup {
	copied := item
	copied.PlayerIDs = append([]string(nil), item.PlayerIDs...)
	return copied
}
