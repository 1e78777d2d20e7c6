package chainapi

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"sort"
	"strings"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"

	"stakeview/internal/evm"
)

type ActivityKind string

const (
	ActStake            ActivityKind = "STAKE"
	ActUnstake          ActivityKind = "UNSTAKE"
	ActCompound         ActivityKind = "COMPOUND"
	ActClaim            ActivityKind = "CLAIM"
	ActReferralIn       ActivityKind = "REFERRAL_IN"
	ActReferralOut      ActivityKind = "REFERRAL_OUT"
	ActBondBuy          ActivityKind = "BOND_BUY"
	ActBondWithdraw     ActivityKind = "BOND_WITHDRAW"
	ActLevelChange      ActivityKind = "LEVEL_CHANGE"
	ActRankChange       ActivityKind = "RANK_CHANGE"
	ActTokenTransferIn  ActivityKind = "TOKEN_TRANSFER_IN"
	ActTokenTransferOut ActivityKind = "TOKEN_TRANSFER_OUT"
	ActTokenApproval    ActivityKind = "TOKEN_APPROVAL"
)

// Activity is one typed ledger event touching an account. Ordering key is
// (BlockNumber desc, TxHash).
type Activity struct {
	Kind         ActivityKind      `json:"kind"`
	TxHash       string            `json:"tx_hash"`
	BlockNumber  uint64            `json:"block_number"`
	Timestamp    uint64            `json:"timestamp"`
	Amount       string            `json:"amount,omitempty"`
	Counterparty string            `json:"counterparty,omitempty"`
	Meta         map[string]string `json:"meta,omitempty"`
}

var (
	stakingEvents abi.ABI
	erc20Events   abi.ABI
)

func init() {
	var err error
	stakingEvents, err = abi.JSON(strings.NewReader(stakingAbiString))
	if err != nil {
		panic("staking abi: " + err.Error())
	}
	erc20Events, err = abi.JSON(strings.NewReader(erc20AbiString))
	if err != nil {
		panic("erc20 abi: " + err.Error())
	}
}

const maxScanAttempts = 3

// Activity scans the staking and token contracts for every event touching
// address, newest first. fromBlock/toBlock of 0 mean "default window": the
// configured lookback ending at the current head.
//
// Provider rejections never surface to the caller: a pruned-history error
// narrows the window once to the configured retry span, transport errors
// halve it, and after maxScanAttempts whatever was gathered is returned.
func (app *App) Activity(ctx context.Context, address string, fromBlock, toBlock uint64) ([]Activity, error) {
	if !evm.IsValidAddress(address) {
		return nil, evm.ErrBadAddress
	}
	head, err := app.Rpc.HeadBlock(ctx)
	if err != nil {
		fmt.Println("[[Scan]] Head block unavailable:", err.Error())
		return []Activity{}, nil
	}
	if toBlock == 0 || toBlock > head {
		toBlock = head
	}
	if fromBlock == 0 && toBlock > app.Settings.ScanLookback {
		fromBlock = toBlock - app.Settings.ScanLookback
	}
	if fromBlock > toBlock {
		fromBlock = toBlock
	}

	account := common.HexToAddress(address)
	narrowed := false
	var logs []types.Log
	for attempt := 0; attempt < maxScanAttempts; attempt++ {
		query := ethereum.FilterQuery{
			Addresses: []common.Address{
				common.HexToAddress(app.Settings.StakingAddress),
				common.HexToAddress(app.Settings.TokenAddress),
			},
			FromBlock: new(big.Int).SetUint64(fromBlock),
			ToBlock:   new(big.Int).SetUint64(toBlock),
		}
		logs, err = app.Rpc.FilterLogs(ctx, query)
		if err == nil {
			break
		}
		if errors.Is(err, evm.ErrPrunedHistory) {
			if narrowed {
				// the retention window itself is gone, nothing to scan
				return []Activity{}, nil
			}
			narrowed = true
			if toBlock > app.Settings.ScanPruned {
				fromBlock = toBlock - app.Settings.ScanPruned
			} else {
				fromBlock = 0
			}
			fmt.Printf("[[Scan]] Pruned history, retrying from block %d\n", fromBlock)
			continue
		}
		// transport trouble: halve the window and try again
		fromBlock = toBlock - (toBlock-fromBlock)/2
		fmt.Printf("[[Scan]] Retry %d from block %d: %s\n", attempt+1, fromBlock, err.Error())
	}
	if err != nil {
		return []Activity{}, nil
	}

	activity := make([]Activity, 0, len(logs))
	for _, vLog := range logs {
		if entry, ok := app.projectLog(vLog, account); ok {
			activity = append(activity, entry)
		}
	}
	app.resolveTimestamps(ctx, activity)

	sort.SliceStable(activity, func(i, j int) bool {
		if activity[i].BlockNumber != activity[j].BlockNumber {
			return activity[i].BlockNumber > activity[j].BlockNumber
		}
		return activity[i].TxHash < activity[j].TxHash
	})
	return activity, nil
}

// resolveTimestamps fills block times, one lookup per distinct block.
func (app *App) resolveTimestamps(ctx context.Context, activity []Activity) {
	blocks := map[uint64]uint64{}
	for _, entry := range activity {
		blocks[entry.BlockNumber] = 0
	}
	for blockNumber := range blocks {
		ts, err := app.Rpc.BlockTimestamp(ctx, blockNumber)
		if err != nil {
			continue
		}
		blocks[blockNumber] = ts
	}
	for i := range activity {
		activity[i].Timestamp = blocks[activity[i].BlockNumber]
	}
}

func topicAddr(vLog types.Log, i int) common.Address {
	if i >= len(vLog.Topics) {
		return common.Address{}
	}
	return common.HexToAddress(vLog.Topics[i].Hex())
}

func unpackAmounts(parsed abi.ABI, name string, vLog types.Log, out interface{}) bool {
	if err := parsed.UnpackIntoInterface(out, name, vLog.Data); err != nil {
		fmt.Println("[[Scan]] Unpack error:", name, err.Error())
		return false
	}
	return true
}

// projectLog maps one raw log into a typed Activity for account, or reports
// that the log does not touch account at all.
func (app *App) projectLog(vLog types.Log, account common.Address) (Activity, bool) {
	if len(vLog.Topics) == 0 {
		return Activity{}, false
	}
	entry := Activity{
		TxHash:      vLog.TxHash.Hex(),
		BlockNumber: vLog.BlockNumber,
	}
	topic0 := vLog.Topics[0]

	switch topic0 {
	case stakingEvents.Events["Staked"].ID:
		if topicAddr(vLog, 1) != account {
			return Activity{}, false
		}
		event := struct{ Amount *big.Int }{}
		if !unpackAmounts(stakingEvents, "Staked", vLog, &event) {
			return Activity{}, false
		}
		entry.Kind = ActStake
		entry.Amount = toAmount(event.Amount)
		entry.Counterparty = topicAddr(vLog, 2).Hex()
		return entry, true

	case stakingEvents.Events["Unstaked"].ID:
		if topicAddr(vLog, 1) != account {
			return Activity{}, false
		}
		event := struct{ Amount *big.Int }{}
		if !unpackAmounts(stakingEvents, "Unstaked", vLog, &event) {
			return Activity{}, false
		}
		entry.Kind = ActUnstake
		entry.Amount = toAmount(event.Amount)
		return entry, true

	case stakingEvents.Events["Compounded"].ID:
		if topicAddr(vLog, 1) != account {
			return Activity{}, false
		}
		event := struct{ Amount *big.Int }{}
		if !unpackAmounts(stakingEvents, "Compounded", vLog, &event) {
			return Activity{}, false
		}
		entry.Kind = ActCompound
		entry.Amount = toAmount(event.Amount)
		return entry, true

	case stakingEvents.Events["Claimed"].ID:
		if topicAddr(vLog, 1) != account {
			return Activity{}, false
		}
		event := struct{ Amount *big.Int }{}
		if !unpackAmounts(stakingEvents, "Claimed", vLog, &event) {
			return Activity{}, false
		}
		entry.Kind = ActClaim
		entry.Amount = toAmount(event.Amount)
		return entry, true

	case stakingEvents.Events["ReferralPaid"].ID:
		from, to := topicAddr(vLog, 1), topicAddr(vLog, 2)
		if from != account && to != account {
			return Activity{}, false
		}
		event := struct {
			Amount *big.Int
			Level  *big.Int
		}{}
		if !unpackAmounts(stakingEvents, "ReferralPaid", vLog, &event) {
			return Activity{}, false
		}
		entry.Amount = toAmount(event.Amount)
		entry.Meta = map[string]string{"level": toAmount(event.Level)}
		if to == account {
			entry.Kind = ActReferralIn
			entry.Counterparty = from.Hex()
		} else {
			entry.Kind = ActReferralOut
			entry.Counterparty = to.Hex()
		}
		return entry, true

	case stakingEvents.Events["BondPurchased"].ID:
		if topicAddr(vLog, 1) != account {
			return Activity{}, false
		}
		event := struct {
			PlanId *big.Int
			Amount *big.Int
			Index  *big.Int
		}{}
		if !unpackAmounts(stakingEvents, "BondPurchased", vLog, &event) {
			return Activity{}, false
		}
		entry.Kind = ActBondBuy
		entry.Amount = toAmount(event.Amount)
		entry.Meta = map[string]string{
			"plan_id": toAmount(event.PlanId),
			"index":   toAmount(event.Index),
		}
		return entry, true

	case stakingEvents.Events["BondWithdrawn"].ID:
		if topicAddr(vLog, 1) != account {
			return Activity{}, false
		}
		event := struct {
			Index  *big.Int
			Amount *big.Int
		}{}
		if !unpackAmounts(stakingEvents, "BondWithdrawn", vLog, &event) {
			return Activity{}, false
		}
		entry.Kind = ActBondWithdraw
		entry.Amount = toAmount(event.Amount)
		entry.Meta = map[string]string{"index": toAmount(event.Index)}
		return entry, true

	case stakingEvents.Events["LevelChanged"].ID:
		if topicAddr(vLog, 1) != account {
			return Activity{}, false
		}
		event := struct{ Level *big.Int }{}
		if !unpackAmounts(stakingEvents, "LevelChanged", vLog, &event) {
			return Activity{}, false
		}
		entry.Kind = ActLevelChange
		entry.Meta = map[string]string{"level": toAmount(event.Level)}
		return entry, true

	case stakingEvents.Events["RankChanged"].ID:
		if topicAddr(vLog, 1) != account {
			return Activity{}, false
		}
		event := struct{ Rank *big.Int }{}
		if !unpackAmounts(stakingEvents, "RankChanged", vLog, &event) {
			return Activity{}, false
		}
		entry.Kind = ActRankChange
		entry.Meta = map[string]string{"rank": toAmount(event.Rank)}
		return entry, true

	case erc20Events.Events["Transfer"].ID:
		from, to := topicAddr(vLog, 1), topicAddr(vLog, 2)
		if from != account && to != account {
			return Activity{}, false
		}
		event := struct{ Value *big.Int }{}
		if !unpackAmounts(erc20Events, "Transfer", vLog, &event) {
			return Activity{}, false
		}
		entry.Amount = toAmount(event.Value)
		if to == account {
			entry.Kind = ActTokenTransferIn
			entry.Counterparty = from.Hex()
		} else {
			entry.Kind = ActTokenTransferOut
			entry.Counterparty = to.Hex()
		}
		return entry, true

	case erc20Events.Events["Approval"].ID:
		if topicAddr(vLog, 1) != account {
			return Activity{}, false
		}
		event := struct{ Value *big.Int }{}
		if !unpackAmounts(erc20Events, "Approval", vLog, &event) {
			return Activity{}, false
		}
		entry.Kind = ActTokenApproval
		entry.Amount = toAmount(event.Value)
		entry.Counterparty = topicAddr(vLog, 2).Hex()
		return entry, true
	}
	return Activity{}, false
}
