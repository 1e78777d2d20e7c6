package chainapi

import (
	"context"
	"fmt"
	"sync"

	"stakeview/internal/evm"
	"stakeview/internal/worker"
)

// treePoolSize caps concurrent directs/record reads per level so one whale
// account cannot fan out into hundreds of simultaneous RPC calls.
const treePoolSize = 8

// DirectsFetcher and RecordFetcher are the two reads the walker needs; App
// satisfies both against the staking contract.
type DirectsFetcher interface {
	Directs(ctx context.Context, address string) ([]Direct, error)
}

type RecordFetcher interface {
	Record(ctx context.Context, address string) (UserRecord, error)
}

// BuildDownline expands the referral tree breadth first. Level 1 holds the
// root's directs, level k the directs of level k-1 in discovery order.
// Expansion stops at maxDepth or on an empty frontier. An address seen at an
// earlier level is never re-listed deeper.
func BuildDownline(ctx context.Context, f DirectsFetcher, root string, maxDepth int) (map[int][]string, error) {
	if !evm.IsValidAddress(root) {
		return nil, evm.ErrBadAddress
	}
	if maxDepth > MaxDownlineDepth {
		maxDepth = MaxDownlineDepth
	}
	downline := map[int][]string{}
	if maxDepth < 1 {
		return downline, nil
	}

	pool := worker.NewPool(treePoolSize, treePoolSize*4)
	defer pool.Close()

	seen := map[string]bool{root: true}
	frontier := []string{root}
	for level := 1; level <= maxDepth; level++ {
		next := fetchLevel(ctx, f, pool, frontier)
		var discovered []string
		for _, address := range next {
			if seen[address] {
				continue
			}
			seen[address] = true
			discovered = append(discovered, address)
		}
		if len(discovered) == 0 {
			break
		}
		downline[level] = discovered
		frontier = discovered
	}
	return downline, nil
}

// fetchLevel reads the directs of every frontier address concurrently but
// concatenates results in the frontier's own order.
func fetchLevel(ctx context.Context, f DirectsFetcher, pool *worker.Pool, frontier []string) []string {
	results := make([][]Direct, len(frontier))
	for i, address := range frontier {
		i, address := i, address
		pool.Exec(worker.Run(func() {
			directs, err := f.Directs(ctx, address)
			if err != nil {
				fmt.Printf("[[Tree]] Directs read failed for %s: %v\n", address, err)
				return
			}
			results[i] = directs
		}))
	}
	pool.Wait()

	var level []string
	for _, directs := range results {
		for _, d := range directs {
			level = append(level, d.Address)
		}
	}
	return level
}

// HydrateTeam resolves every address into a full record. A failed read
// yields a zero-valued record in place, never a missing entry.
func HydrateTeam(ctx context.Context, f RecordFetcher, addresses []string) map[string]UserRecord {
	pool := worker.NewPool(treePoolSize, treePoolSize*4)
	defer pool.Close()

	var mu sync.Mutex
	team := make(map[string]UserRecord, len(addresses))
	for _, address := range addresses {
		address := address
		pool.Exec(worker.Run(func() {
			record, err := f.Record(ctx, address)
			if err != nil {
				fmt.Printf("[[Tree]] Hydration failed for %s, using zero record: %v\n", address, err)
				record = ZeroRecord(address)
			}
			mu.Lock()
			team[address] = record
			mu.Unlock()
		}))
	}
	pool.Wait()
	return team
}

// Downline builds the tree for an account, depth-capped by its unlocked
// level. maxDepth <= 0 means "whatever the account has unlocked".
func (app *App) Downline(ctx context.Context, address string, maxDepth int) (map[int][]string, error) {
	record, err := app.Record(ctx, address)
	if err != nil {
		return nil, err
	}
	unlocked := record.Level
	if maxDepth <= 0 || maxDepth > unlocked {
		maxDepth = unlocked
	}
	return BuildDownline(ctx, app, address, maxDepth)
}

// TeamDetails hydrates a built downline into level-indexed records.
func (app *App) TeamDetails(ctx context.Context, downline map[int][]string) map[int][]UserRecord {
	var all []string
	for _, addresses := range downline {
		all = append(all, addresses...)
	}
	hydrated := HydrateTeam(ctx, app, all)

	details := make(map[int][]UserRecord, len(downline))
	for level, addresses := range downline {
		records := make([]UserRecord, 0, len(addresses))
		for _, address := range addresses {
			records = append(records, hydrated[address])
		}
		details[level] = records
	}
	return details
}
