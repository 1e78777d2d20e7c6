package chainapi

import (
	"context"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"

	"stakeview/internal/evm"
)

// TokenPrice derives the token's USD spot price from the DEX pair reserves.
// Works whichever pair slot the token sits in.
func (app *App) TokenPrice(ctx context.Context) (*big.Int, error) {
	token0Raw, err := app.Pair.Call("token0")
	if err != nil {
		return big.NewInt(0), evm.Classify(err)
	}
	reservesRaw, err := app.Pair.Call("getReserves")
	if err != nil {
		return big.NewInt(0), evm.Classify(err)
	}
	fields := tuple(reservesRaw)
	reserve0 := toBig(field(fields, 0))
	reserve1 := toBig(field(fields, 1))

	tokenIsBase0 := strings.EqualFold(toAddr(token0Raw), app.Settings.TokenAddress)
	baseReserve, quoteReserve := reserve0, reserve1
	if !tokenIsBase0 {
		baseReserve, quoteReserve = reserve1, reserve0
	}
	return PriceFromReserves(
		baseReserve, quoteReserve,
		app.tokenDecimals(ctx, app.Settings.TokenAddress),
		app.tokenDecimals(ctx, app.Settings.UsdtAddress),
	), nil
}

// tokenDecimals reads decimals(): USDT and clones answer 6, the staking
// token 18. An unreadable decimals() falls back to 18.
func (app *App) tokenDecimals(ctx context.Context, address string) uint8 {
	contract, err := app.W3.Eth.NewContract(erc20AbiString, address)
	if err != nil {
		return 18
	}
	raw, err := contract.Call("decimals")
	if err != nil {
		return 18
	}
	d := toInt(raw)
	if d <= 0 || d > 36 {
		return 18
	}
	return uint8(d)
}

func (app *App) TokenBalance(ctx context.Context, address string) (string, error) {
	if !evm.IsValidAddress(address) {
		return "0", evm.ErrBadAddress
	}
	raw, err := app.Token.Call("balanceOf", common.HexToAddress(address))
	if err != nil {
		return "0", evm.Classify(err)
	}
	return toAmount(raw), nil
}

func (app *App) Allowance(ctx context.Context, owner, spender string) (*big.Int, error) {
	raw, err := app.Token.Call("allowance", common.HexToAddress(owner), common.HexToAddress(spender))
	if err != nil {
		return nil, evm.Classify(err)
	}
	return toBig(raw), nil
}
