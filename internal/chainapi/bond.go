package chainapi

import (
	"context"
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"

	"stakeview/internal/evm"
)

type BondStatus string

const (
	BondActive          BondStatus = "Active"
	BondMatured         BondStatus = "Matured"
	BondWithdrawnStatus BondStatus = "Withdrawn"
)

// BondPlan is the (duration, rewardPercent) template a position is bought
// against. Duration is seconds, RewardPercent a plain integer percent.
type BondPlan struct {
	PlanId        int    `json:"plan_id"`
	Duration      int64  `json:"duration"`
	RewardPercent string `json:"reward_percent"`
	Active        bool   `json:"active"`
}

type Bond struct {
	Index     int        `json:"index"`
	PlanId    int        `json:"plan_id"`
	Principal string     `json:"principal"`
	Reward    string     `json:"reward"`
	StartAt   int64      `json:"start_at"`
	Withdrawn bool       `json:"withdrawn"`
	Duration  int64      `json:"duration"`
	Status    BondStatus `json:"status"`
}

// StatusOf derives the position state. Withdrawn is terminal: the flag wins
// over any maturity arithmetic.
func StatusOf(withdrawn bool, startAt, duration, now int64) BondStatus {
	if withdrawn {
		return BondWithdrawnStatus
	}
	if startAt > 0 && now >= startAt+duration {
		return BondMatured
	}
	return BondActive
}

func (app *App) BondPlan(ctx context.Context, planId int) (BondPlan, error) {
	raw, err := app.Staking.Call("bondPlans", big.NewInt(int64(planId)))
	if err != nil {
		return BondPlan{PlanId: planId, RewardPercent: "0"}, evm.Classify(err)
	}
	fields := tuple(raw)
	return BondPlan{
		PlanId:        planId,
		Duration:      toBig(field(fields, 0)).Int64(),
		RewardPercent: toAmount(field(fields, 1)),
		Active:        toBool(field(fields, 2)),
	}, nil
}

func (app *App) UserBond(ctx context.Context, address string, index int) (Bond, error) {
	if !evm.IsValidAddress(address) {
		return Bond{Index: index, Principal: "0", Reward: "0", Status: BondActive}, evm.ErrBadAddress
	}
	raw, err := app.Staking.Call("userBonds", common.HexToAddress(address), big.NewInt(int64(index)))
	if err != nil {
		return Bond{Index: index, Principal: "0", Reward: "0", Status: BondActive}, evm.Classify(err)
	}
	fields := tuple(raw)
	bond := Bond{
		Index:     index,
		PlanId:    toInt(field(fields, 0)),
		Principal: toAmount(field(fields, 1)),
		Reward:    toAmount(field(fields, 2)),
		StartAt:   toBig(field(fields, 3)).Int64(),
		Withdrawn: toBool(field(fields, 4)),
	}
	plan, err := app.BondPlan(ctx, bond.PlanId)
	if err == nil {
		bond.Duration = plan.Duration
	}
	bond.Status = StatusOf(bond.Withdrawn, bond.StartAt, bond.Duration, time.Now().Unix())
	return bond, nil
}

// UserBonds walks the per-user position array. A failed index read becomes a
// zero position rather than aborting the listing.
func (app *App) UserBonds(ctx context.Context, address string) ([]Bond, error) {
	if !evm.IsValidAddress(address) {
		return nil, evm.ErrBadAddress
	}
	raw, err := app.Staking.Call("userBondCount", common.HexToAddress(address))
	if err != nil {
		return nil, evm.Classify(err)
	}
	count := toInt(raw)
	bonds := make([]Bond, 0, count)
	for i := 0; i < count; i++ {
		bond, err := app.UserBond(ctx, address, i)
		if err != nil {
			fmt.Printf("[[Bonds]] Defaulted position %d for %s: %v\n", i, address, err)
		}
		bonds = append(bonds, bond)
	}
	return bonds, nil
}
