package chainapi

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/chenzhijie/go-web3/eth"
	w3types "github.com/chenzhijie/go-web3/types"
	"github.com/ethereum/go-ethereum/common"
	etypes "github.com/ethereum/go-ethereum/core/types"

	"stakeview/internal/evm"
)

var (
	ErrInvalidAmount = errors.New("amount must be positive")
	ErrNoSigner      = errors.New("no signing account configured")
)

// approvalBuffer is 1%: quotes drift between the allowance read and the
// actual pull, a slightly higher target absorbs it.
var (
	approvalNum   = big.NewInt(101)
	approvalDenom = big.NewInt(100)
)

// ApprovalTarget is ceil(amount * 1.01).
func ApprovalTarget(amount *big.Int) *big.Int {
	target := new(big.Int).Mul(amount, approvalNum)
	target.Add(target, new(big.Int).Sub(approvalDenom, big.NewInt(1)))
	return target.Div(target, approvalDenom)
}

// ResolveReferrer picks the first candidate that is a well-formed address,
// not the zero address and not self. With no qualifying candidate the
// configured fallback wins, so a self- or nobody-referral never reaches the
// contract.
func ResolveReferrer(candidates []string, self, fallback string) string {
	for _, candidate := range candidates {
		if !evm.IsValidAddress(candidate) || evm.IsZeroAddress(candidate) {
			continue
		}
		if strings.EqualFold(candidate, self) {
			continue
		}
		return common.HexToAddress(candidate).Hex()
	}
	return common.HexToAddress(fallback).Hex()
}

func (app *App) signer() (string, error) {
	from := app.W3.Eth.Address()
	if from == (common.Address{}) {
		return "", ErrNoSigner
	}
	return from.Hex(), nil
}

// sendTx submits one contract call and blocks until it is mined. Gas pricing
// follows the tip+base scheme the chain expects.
func (app *App) sendTx(ctx context.Context, contract *eth.Contract, to string, method string, args ...interface{}) (string, error) {
	from, err := app.signer()
	if err != nil {
		return "", err
	}
	nonce, err := app.W3.Eth.GetNonce(common.HexToAddress(from), nil)
	if err != nil {
		return "", evm.Classify(err)
	}
	data, err := contract.EncodeABI(method, args...)
	if err != nil {
		return "", err
	}
	call := &w3types.CallMsg{
		From: common.HexToAddress(from),
		To:   common.HexToAddress(to),
		Data: data,
		Gas:  w3types.NewCallMsgBigInt(big.NewInt(w3types.MAX_GAS_LIMIT)),
	}
	gasLimit, err := app.W3.Eth.EstimateGas(call)
	if err != nil {
		return "", evm.Classify(err)
	}
	gasPrice, err := app.W3.Eth.SuggestGasTipCap()
	if err != nil {
		return "", evm.Classify(err)
	}
	feeEstimate, err := app.W3.Eth.EstimateFee()
	if err != nil {
		return "", evm.Classify(err)
	}
	gasPrice.Add(feeEstimate.MaxPriorityFeePerGas, feeEstimate.BaseFee)

	receipt, err := app.W3.Eth.SyncSendRawTransaction(
		common.HexToAddress(to),
		big.NewInt(0),
		nonce,
		gasLimit,
		gasPrice,
		data,
	)
	if err != nil {
		return "", evm.Classify(err)
	}
	if receipt.Status != etypes.ReceiptStatusSuccessful {
		return receipt.TxHash.Hex(), evm.ErrReverted
	}
	return receipt.TxHash.Hex(), nil
}

// ensureAllowance tops the staking contract's spending allowance up to the
// buffered target before an operation that pulls tokens. The approval itself
// is mined before this returns.
func (app *App) ensureAllowance(ctx context.Context, amount *big.Int) error {
	from, err := app.signer()
	if err != nil {
		return err
	}
	target := ApprovalTarget(amount)
	allowance, err := app.Allowance(ctx, from, app.Settings.StakingAddress)
	if err != nil {
		return err
	}
	if allowance.Cmp(target) >= 0 {
		return nil
	}
	fmt.Printf("[[Tx]] Allowance %s below target %s, approving\n", allowance.String(), target.String())
	txHash, err := app.sendTx(ctx, app.Token, app.Settings.TokenAddress, "approve",
		common.HexToAddress(app.Settings.StakingAddress), target)
	if err != nil {
		return err
	}
	fmt.Println("[[Tx]] Approval mined:", txHash)
	return nil
}

// afterWrite drops every cached read the operation could have invalidated
// and pings connected sessions.
func (app *App) afterWrite(ctx context.Context, addresses ...string) {
	for _, address := range addresses {
		if address == "" {
			continue
		}
		app.Invalidate(ctx, address)
		app.PublishRefresh(ctx, address)
	}
}

func (app *App) Stake(ctx context.Context, amount *big.Int, referrer string) (string, error) {
	if amount == nil || amount.Sign() <= 0 {
		return "", ErrInvalidAmount
	}
	from, err := app.signer()
	if err != nil {
		return "", err
	}
	record, _ := app.Record(ctx, from)
	resolved := ResolveReferrer([]string{referrer, record.Referrer}, from, app.Settings.DefaultReferrer)

	if err := app.ensureAllowance(ctx, amount); err != nil {
		return "", err
	}
	txHash, err := app.sendTx(ctx, app.Staking, app.Settings.StakingAddress, "stake",
		amount, common.HexToAddress(resolved))
	if err != nil {
		return "", err
	}
	app.afterWrite(ctx, from, resolved)
	return txHash, nil
}

func (app *App) Unstake(ctx context.Context, amount *big.Int) (string, error) {
	if amount == nil || amount.Sign() <= 0 {
		return "", ErrInvalidAmount
	}
	from, err := app.signer()
	if err != nil {
		return "", err
	}
	txHash, err := app.sendTx(ctx, app.Staking, app.Settings.StakingAddress, "unstake", amount)
	if err != nil {
		return "", err
	}
	app.afterWrite(ctx, from)
	return txHash, nil
}

func (app *App) BuyBond(ctx context.Context, planId int, amount *big.Int, referrer string) (string, error) {
	if amount == nil || amount.Sign() <= 0 {
		return "", ErrInvalidAmount
	}
	if planId < 0 {
		return "", errors.New("invalid bond plan")
	}
	from, err := app.signer()
	if err != nil {
		return "", err
	}
	record, _ := app.Record(ctx, from)
	resolved := ResolveReferrer([]string{referrer, record.Referrer}, from, app.Settings.DefaultReferrer)

	if err := app.ensureAllowance(ctx, amount); err != nil {
		return "", err
	}
	txHash, err := app.sendTx(ctx, app.Staking, app.Settings.StakingAddress, "buyBond",
		big.NewInt(int64(planId)), amount, common.HexToAddress(resolved))
	if err != nil {
		return "", err
	}
	app.afterWrite(ctx, from, resolved)
	return txHash, nil
}

func (app *App) WithdrawBond(ctx context.Context, index int) (string, error) {
	if index < 0 {
		return "", errors.New("invalid bond index")
	}
	from, err := app.signer()
	if err != nil {
		return "", err
	}
	txHash, err := app.sendTx(ctx, app.Staking, app.Settings.StakingAddress, "withdrawBond",
		big.NewInt(int64(index)))
	if err != nil {
		return "", err
	}
	app.afterWrite(ctx, from)
	return txHash, nil
}

func (app *App) Approve(ctx context.Context, spender string, amount *big.Int) (string, error) {
	if amount == nil || amount.Sign() < 0 {
		return "", ErrInvalidAmount
	}
	if !evm.IsValidAddress(spender) {
		return "", evm.ErrBadAddress
	}
	from, err := app.signer()
	if err != nil {
		return "", err
	}
	txHash, err := app.sendTx(ctx, app.Token, app.Settings.TokenAddress, "approve",
		common.HexToAddress(spender), amount)
	if err != nil {
		return "", err
	}
	app.afterWrite(ctx, from)
	return txHash, nil
}

func (app *App) SetDailyRate(ctx context.Context, rate *big.Int) (string, error) {
	if rate == nil || rate.Sign() <= 0 {
		return "", ErrInvalidAmount
	}
	txHash, err := app.sendTx(ctx, app.Staking, app.Settings.StakingAddress, "setDailyRate", rate)
	if err != nil {
		return "", err
	}
	app.notifyFinance(fmt.Sprintf("Daily rate set to %s (tx %s)", DailyRatePercent(rate), txHash))
	return txHash, nil
}

func (app *App) BatchCompoundRange(ctx context.Context, from, to int) (string, error) {
	if from < 0 || to <= from {
		return "", errors.New("invalid compound range")
	}
	txHash, err := app.sendTx(ctx, app.Staking, app.Settings.StakingAddress, "batchCompound",
		big.NewInt(int64(from)), big.NewInt(int64(to)))
	if err != nil {
		return "", err
	}
	return txHash, nil
}

func (app *App) FundValuationPool(ctx context.Context, amount *big.Int) (string, error) {
	if amount == nil || amount.Sign() <= 0 {
		return "", ErrInvalidAmount
	}
	from, err := app.signer()
	if err != nil {
		return "", err
	}
	if err := app.ensureAllowance(ctx, amount); err != nil {
		return "", err
	}
	txHash, err := app.sendTx(ctx, app.Staking, app.Settings.StakingAddress, "fundValuationPool", amount)
	if err != nil {
		return "", err
	}
	app.afterWrite(ctx, from)
	app.notifyFinance(fmt.Sprintf("Valuation pool funded with %s base units (tx %s)", amount.String(), txHash))
	return txHash, nil
}

func (app *App) EmergencyWithdraw(ctx context.Context, amount *big.Int) (string, error) {
	if amount == nil || amount.Sign() <= 0 {
		return "", ErrInvalidAmount
	}
	txHash, err := app.sendTx(ctx, app.Staking, app.Settings.StakingAddress, "emergencyWithdraw", amount)
	if err != nil {
		return "", err
	}
	app.notifyFinance(fmt.Sprintf("EMERGENCY WITHDRAW of %s base units (tx %s)", amount.String(), txHash))
	return txHash, nil
}

func (app *App) EmergencyResetAccount(ctx context.Context, address string) (string, error) {
	if !evm.IsValidAddress(address) {
		return "", evm.ErrBadAddress
	}
	txHash, err := app.sendTx(ctx, app.Staking, app.Settings.StakingAddress, "emergencyResetUser",
		common.HexToAddress(address))
	if err != nil {
		return "", err
	}
	app.afterWrite(ctx, address)
	app.notifyFinance(fmt.Sprintf("Account %s reset (tx %s)", address, txHash))
	return txHash, nil
}

func (app *App) TransferOwnership(ctx context.Context, newOwner string) (string, error) {
	if !evm.IsValidAddress(newOwner) || evm.IsZeroAddress(newOwner) {
		return "", evm.ErrBadAddress
	}
	txHash, err := app.sendTx(ctx, app.Staking, app.Settings.StakingAddress, "transferOwnership",
		common.HexToAddress(newOwner))
	if err != nil {
		return "", err
	}
	app.notifyFinance(fmt.Sprintf("Ownership transferred to %s (tx %s)", newOwner, txHash))
	return txHash, nil
}

func (app *App) BlockAccount(ctx context.Context, address string) (string, error) {
	if !evm.IsValidAddress(address) {
		return "", evm.ErrBadAddress
	}
	txHash, err := app.sendTx(ctx, app.Staking, app.Settings.StakingAddress, "blockUser",
		common.HexToAddress(address))
	if err != nil {
		return "", err
	}
	app.afterWrite(ctx, address)
	return txHash, nil
}

func (app *App) UnblockAccount(ctx context.Context, address string) (string, error) {
	if !evm.IsValidAddress(address) {
		return "", evm.ErrBadAddress
	}
	txHash, err := app.sendTx(ctx, app.Staking, app.Settings.StakingAddress, "unblockUser",
		common.HexToAddress(address))
	if err != nil {
		return "", err
	}
	app.afterWrite(ctx, address)
	return txHash, nil
}
