package chainapi

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"stakeview/internal/evm"
)

// RoiEntry is one historical accrual row from the contract's per-user
// ledger. Kind is the contract's enum: 0 claim, 1 compound.
type RoiEntry struct {
	Index     int    `json:"index"`
	Amount    string `json:"amount"`
	Timestamp int64  `json:"timestamp"`
	Kind      int    `json:"kind"`
}

// RoiHistory pages through the entries newest first. Only the indices of the
// requested page are read from the contract; a failed index read becomes a
// zero entry so the page keeps its shape.
func (app *App) RoiHistory(ctx context.Context, address string, page, size int) (Page[RoiEntry], error) {
	empty := Paginate([]RoiEntry{}, page, size)
	if !evm.IsValidAddress(address) {
		return empty, evm.ErrBadAddress
	}
	report, err := app.Staking.Call("userReport", common.HexToAddress(address))
	if err != nil {
		return empty, evm.Classify(err)
	}
	count := toInt(field(tuple(report), 1))
	if count <= 0 {
		return empty, nil
	}

	// newest entries sit at the end of the contract array
	indices := make([]int, count)
	for i := 0; i < count; i++ {
		indices[i] = count - 1 - i
	}
	indexPage := Paginate(indices, page, size)

	entries := make([]RoiEntry, 0, len(indexPage.Items))
	for _, idx := range indexPage.Items {
		entry := RoiEntry{Index: idx, Amount: "0"}
		raw, err := app.Staking.Call("roiHistory", common.HexToAddress(address), big.NewInt(int64(idx)))
		if err != nil {
			fmt.Printf("[[Roi]] Entry %d unreadable for %s: %v\n", idx, address, err)
		} else {
			fields := tuple(raw)
			entry.Amount = toAmount(field(fields, 0))
			entry.Timestamp = toBig(field(fields, 1)).Int64()
			entry.Kind = toInt(field(fields, 2))
		}
		entries = append(entries, entry)
	}
	return Page[RoiEntry]{
		Items:      entries,
		Page:       indexPage.Page,
		PageSize:   indexPage.PageSize,
		TotalItems: indexPage.TotalItems,
		TotalPages: indexPage.TotalPages,
	}, nil
}
