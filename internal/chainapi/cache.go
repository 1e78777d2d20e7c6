package chainapi

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// The read cache is deliberately short lived: it only smooths bursts within
// one render cycle and is dropped outright after a confirmed write.
const cacheTTL = 30 * time.Second

var cachedEntities = []string{"record", "report", "bonds", "activity", "roi", "allowance", "team"}

func cacheKey(entity, key string) string {
	return fmt.Sprintf("%s@%s", entity, key)
}

func (app *App) CacheGet(ctx context.Context, entity, key string, out interface{}) bool {
	raw, err := app.Rdb.Get(ctx, cacheKey(entity, key)).Result()
	if err != nil || len(raw) == 0 {
		return false
	}
	if err := json.Unmarshal([]byte(raw), out); err != nil {
		return false
	}
	return true
}

func (app *App) CacheSet(ctx context.Context, entity, key string, val interface{}) {
	raw, err := json.Marshal(val)
	if err != nil {
		return
	}
	app.Rdb.Set(ctx, cacheKey(entity, key), raw, cacheTTL)
}

// Invalidate drops every cached read a confirmed write could have changed.
func (app *App) Invalidate(ctx context.Context, address string) {
	for _, entity := range cachedEntities {
		app.Rdb.Del(ctx, cacheKey(entity, address))
	}
}

// PublishRefresh tells connected UI sessions to refetch for address.
func (app *App) PublishRefresh(ctx context.Context, address string) {
	app.Rdb.Publish(ctx, fmt.Sprintf("refresh_ch@%s", address), "refresh")
}
