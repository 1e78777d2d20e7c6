package chainapi

import (
	"fmt"
	"math/big"
)

// DefaultDailyRate is 0.8%/day in 1e18 fixed point, the contract's
// deploy-time value. Used whenever the on-chain rate cannot be read.
var DefaultDailyRate = big.NewInt(8_000_000_000_000_000)

var (
	oneE18      = new(big.Int).Exp(big.NewInt(10), big.NewInt(18), nil)
	secondsDay  = big.NewInt(86400)
	percentBase = big.NewInt(100000) // 3 decimal digits of a percent
)

// SimulatePendingRoi reproduces the contract accrual formula locally:
// selfStaked * dailyRate * elapsed / 1e18 / 86400. It is an estimate; the
// on-chain pendingRoi wins whenever it is readable and non-zero.
func SimulatePendingRoi(selfStaked string, dailyRate *big.Int, lastAccruedAt int64, now int64) string {
	staked := toBig(selfStaked)
	if staked.Sign() == 0 || lastAccruedAt == 0 || dailyRate == nil || dailyRate.Sign() == 0 {
		return "0"
	}
	elapsed := now - lastAccruedAt
	if elapsed <= 0 {
		return "0"
	}
	reward := new(big.Int).Mul(staked, dailyRate)
	reward.Mul(reward, big.NewInt(elapsed))
	reward.Div(reward, oneE18)
	reward.Div(reward, secondsDay)
	return reward.String()
}

// DailyRatePercent renders the 1e18 fixed-point daily fraction as a percent
// with three decimals, e.g. 8e15 -> "0.800".
func DailyRatePercent(rate *big.Int) string {
	if rate == nil || rate.Sign() <= 0 {
		return "0.000"
	}
	scaled := new(big.Int).Mul(rate, percentBase)
	scaled.Div(scaled, oneE18)
	whole := new(big.Int).Div(scaled, big.NewInt(1000))
	frac := new(big.Int).Mod(scaled, big.NewInt(1000))
	return fmt.Sprintf("%s.%03d", whole.String(), frac.Int64())
}

// PriceFromReserves computes base->quote spot price in 1e18 fixed point.
// Both reserves are first scaled to 18 decimals so the result does not
// depend on which pool slot holds which token.
func PriceFromReserves(baseReserve, quoteReserve *big.Int, baseDecimals, quoteDecimals uint8) *big.Int {
	base := scaleTo18(baseReserve, baseDecimals)
	quote := scaleTo18(quoteReserve, quoteDecimals)
	if base.Sign() == 0 || quote.Sign() == 0 {
		return big.NewInt(0)
	}
	price := new(big.Int).Mul(quote, oneE18)
	return price.Div(price, base)
}

func scaleTo18(reserve *big.Int, decimals uint8) *big.Int {
	if reserve == nil || reserve.Sign() <= 0 {
		return big.NewInt(0)
	}
	scaled := new(big.Int).Set(reserve)
	if decimals < 18 {
		factor := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(18-decimals)), nil)
		return scaled.Mul(scaled, factor)
	}
	if decimals > 18 {
		factor := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(decimals-18)), nil)
		return scaled.Div(scaled, factor)
	}
	return scaled
}
