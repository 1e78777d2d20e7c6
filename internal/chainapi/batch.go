package chainapi

import (
	"context"
	"fmt"
	"math/big"

	"stakeview/internal/evm"
)

// Export is the admin batch result: the ledger-reported total plus the
// hydrated window.
type Export struct {
	Total int          `json:"total"`
	Items []UserRecord `json:"items"`
}

// UserEnumerator walks the contract's registered-user array; App satisfies
// it against the staking contract.
type UserEnumerator interface {
	TotalUsers(ctx context.Context) (int, error)
	UserAtIndex(ctx context.Context, index int) (string, error)
}

func (app *App) TotalUsers(ctx context.Context) (int, error) {
	raw, err := app.Staking.Call("totalUsers")
	if err != nil {
		return 0, evm.Classify(err)
	}
	return toInt(raw), nil
}

func (app *App) UserAtIndex(ctx context.Context, index int) (string, error) {
	raw, err := app.Staking.Call("userAtIndex", big.NewInt(int64(index)))
	if err != nil {
		return "", evm.Classify(err)
	}
	return toAddr(raw), nil
}

// ExportWindow fetches the registered addresses at [offset, offset+limit)
// and hydrates each one. A failed address lookup yields a zero-valued record
// in place and a failed hydration a zero record, so the window keeps one
// item per in-range index and never fails wholesale.
func ExportWindow(ctx context.Context, users UserEnumerator, records RecordFetcher, offset, limit int) (Export, error) {
	if limit < 1 {
		limit = 1
	}
	if offset < 0 {
		offset = 0
	}
	total, err := users.TotalUsers(ctx)
	if err != nil {
		return Export{}, err
	}

	var addresses []string
	for i := offset; i < offset+limit && i < total; i++ {
		address, err := users.UserAtIndex(ctx, i)
		if err != nil {
			fmt.Printf("[[Export]] Address lookup failed at index %d: %v\n", i, err)
			address = ""
		}
		addresses = append(addresses, address)
	}

	var known []string
	for _, address := range addresses {
		if address != "" {
			known = append(known, address)
		}
	}
	hydrated := HydrateTeam(ctx, records, known)

	items := make([]UserRecord, 0, len(addresses))
	for _, address := range addresses {
		if address == "" {
			items = append(items, ZeroRecord(evm.ZeroAddress))
			continue
		}
		items = append(items, hydrated[address])
	}
	return Export{Total: total, Items: items}, nil
}

// ExportEverything walks the whole registered-user array page by page. The
// first page's reported total is authoritative; window item counts are
// truthful (one item per in-range index, see ExportWindow), so a short page
// means the array end and an unknown or shrinking total cannot loop forever.
func ExportEverything(ctx context.Context, users UserEnumerator, records RecordFetcher, pageSize int) (Export, error) {
	if pageSize < 1 {
		pageSize = 100
	}
	var items []UserRecord
	total := -1
	offset := 0
	for {
		window, err := ExportWindow(ctx, users, records, offset, pageSize)
		if err != nil {
			if total < 0 {
				return Export{}, err
			}
			// keep what we have
			fmt.Printf("[[Export]] Window at offset %d failed, returning partial export: %v\n", offset, err)
			break
		}
		if total < 0 {
			total = window.Total
		}
		items = append(items, window.Items...)
		offset += pageSize
		if offset >= total || len(window.Items) < pageSize {
			break
		}
	}
	if total < 0 {
		total = len(items)
	}
	return Export{Total: total, Items: items}, nil
}

func (app *App) UserWindow(ctx context.Context, offset, limit int) (Export, error) {
	return ExportWindow(ctx, app, app, offset, limit)
}

func (app *App) ExportAll(ctx context.Context, pageSize int) (Export, error) {
	return ExportEverything(ctx, app, app, pageSize)
}
