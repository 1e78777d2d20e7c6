package chainapi

import (
	"context"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"

	"stakeview/internal/evm"
)

// UserRecord mirrors one account slot of the staking contract. All amounts
// are decimal strings of 18-decimal base units.
type UserRecord struct {
	Address                string `json:"address"`
	OriginalStaked         string `json:"original_staked"`
	OriginalUsdLocked      string `json:"original_usd_locked"`
	SelfStaked             string `json:"self_staked"`
	SelfStakedUsd          string `json:"self_staked_usd"`
	ActiveBondValue        string `json:"active_bond_value"`
	LastAccruedAt          int64  `json:"last_accrued_at"`
	Referrer               string `json:"referrer"`
	DirectCount            int    `json:"direct_count"`
	Level                  int    `json:"level"` // 0 = no level unlocked
	Rank                   int    `json:"rank"`
	TotalRoiEarned         string `json:"total_roi_earned"`
	TotalLevelRewardEarned string `json:"total_level_reward_earned"`
	TotalReferralIncome    string `json:"total_referral_income"`
	TotalWithdrawn         string `json:"total_withdrawn"`
}

// ZeroRecord is the stand-in for an account whose remote read failed; batch
// views render it instead of dropping the address.
func ZeroRecord(address string) UserRecord {
	return DecodeUserRecord(address, nil)
}

func (u UserRecord) ReferrerShort() string {
	return ShortAddress(u.Referrer)
}

// UserReport is recomputed on every refresh, never stored.
type UserReport struct {
	Record           UserRecord `json:"record"`
	PendingRoi       string     `json:"pending_roi"`
	StakeWithAccrued string     `json:"stake_with_accrued"`
	TeamSize         int        `json:"team_size"`
	RoiEntryCount    int        `json:"roi_entry_count"`
	TotalTeamStake   string     `json:"total_team_stake"`
}

// Direct is one direct referral with its lifetime income snapshot.
type Direct struct {
	Address string `json:"address"`
	Income  string `json:"income"`
}

func (app *App) Record(ctx context.Context, address string) (UserRecord, error) {
	if !evm.IsValidAddress(address) {
		return ZeroRecord(address), evm.ErrBadAddress
	}
	raw, err := app.Staking.Call("users", common.HexToAddress(address))
	if err != nil {
		return ZeroRecord(address), evm.Classify(err)
	}
	return DecodeUserRecord(address, raw), nil
}

// PendingRoi prefers the contract's own figure; the local simulation is the
// fallback for a stale or failed read, see SimulatePendingRoi.
func (app *App) PendingRoi(ctx context.Context, record UserRecord) string {
	raw, err := app.Staking.Call("pendingRoi", common.HexToAddress(record.Address))
	if err == nil {
		onChain := toBig(raw)
		if onChain.Sign() > 0 {
			return onChain.String()
		}
	}
	return SimulatePendingRoi(record.SelfStaked, app.DailyRate(ctx), record.LastAccruedAt, time.Now().Unix())
}

func (app *App) Report(ctx context.Context, address string) (UserReport, error) {
	record, err := app.Record(ctx, address)
	if err != nil {
		return UserReport{Record: record, PendingRoi: "0", StakeWithAccrued: "0", TotalTeamStake: "0"}, err
	}
	pending := app.PendingRoi(ctx, record)

	report := UserReport{
		Record:           record,
		PendingRoi:       pending,
		StakeWithAccrued: sumAmounts(record.SelfStaked, record.ActiveBondValue, pending),
		TotalTeamStake:   "0",
	}
	raw, err := app.Staking.Call("userReport", common.HexToAddress(address))
	if err == nil {
		fields := tuple(raw)
		report.RoiEntryCount = toInt(field(fields, 1))
		report.TeamSize = toInt(field(fields, 2))
		report.TotalTeamStake = toAmount(field(fields, 3))
	} else {
		report.TeamSize = app.TeamSize(ctx, address)
	}
	return report, nil
}

func (app *App) Directs(ctx context.Context, address string) ([]Direct, error) {
	if !evm.IsValidAddress(address) {
		return nil, evm.ErrBadAddress
	}
	raw, err := app.Staking.Call("directsOf", common.HexToAddress(address))
	if err != nil {
		return nil, evm.Classify(err)
	}
	fields := tuple(raw)
	addrs, _ := field(fields, 0).([]common.Address)
	income, _ := field(fields, 1).([]*big.Int)
	directs := make([]Direct, 0, len(addrs))
	for i, a := range addrs {
		d := Direct{Address: a.Hex(), Income: "0"}
		if i < len(income) {
			d.Income = toAmount(income[i])
		}
		directs = append(directs, d)
	}
	return directs, nil
}

func (app *App) TeamSize(ctx context.Context, address string) int {
	raw, err := app.Staking.Call("teamSize", common.HexToAddress(address))
	if err != nil {
		return 0
	}
	return toInt(raw)
}

// DailyRate reads the global accrual rate, falling back to the deploy-time
// default when the contract is unreachable.
func (app *App) DailyRate(ctx context.Context) *big.Int {
	raw, err := app.Staking.Call("dailyRate")
	if err != nil {
		return new(big.Int).Set(DefaultDailyRate)
	}
	rate := toBig(raw)
	if rate.Sign() == 0 {
		return new(big.Int).Set(DefaultDailyRate)
	}
	return rate
}

func (app *App) TotalStaked(ctx context.Context) string {
	raw, err := app.Staking.Call("totalStaked")
	if err != nil {
		return "0"
	}
	return toAmount(raw)
}

func sumAmounts(amounts ...string) string {
	total := big.NewInt(0)
	for _, a := range amounts {
		total.Add(total, toBig(a))
	}
	return total.String()
}
