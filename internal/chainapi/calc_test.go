package chainapi

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
)

func e18(units int64) *big.Int {
	return new(big.Int).Mul(big.NewInt(units), oneE18)
}

func TestSimulatePendingRoiHalfDay(t *testing.T) {
	// 100 tokens staked at 0.8%/day, half a day elapsed => 0.4 tokens
	start := int64(1_700_000_000)
	got := SimulatePendingRoi(e18(100).String(), DefaultDailyRate, start, start+43200)
	assert.Equal(t, "400000000000000000", got)
}

func TestSimulatePendingRoiFullDay(t *testing.T) {
	start := int64(1_700_000_000)
	got := SimulatePendingRoi(e18(1000).String(), DefaultDailyRate, start, start+86400)
	assert.Equal(t, e18(8).String(), got)
}

func TestSimulatePendingRoiZeroCases(t *testing.T) {
	now := int64(1_700_000_000)
	assert.Equal(t, "0", SimulatePendingRoi("0", DefaultDailyRate, now-100, now))
	assert.Equal(t, "0", SimulatePendingRoi(e18(100).String(), DefaultDailyRate, 0, now))
	assert.Equal(t, "0", SimulatePendingRoi(e18(100).String(), nil, now-100, now))
	assert.Equal(t, "0", SimulatePendingRoi(e18(100).String(), big.NewInt(0), now-100, now))
	// clock skew: accrual timestamp in the future must not go negative
	assert.Equal(t, "0", SimulatePendingRoi(e18(100).String(), DefaultDailyRate, now+100, now))
}

func TestSimulatePendingRoiMalformedStake(t *testing.T) {
	now := int64(1_700_000_000)
	assert.Equal(t, "0", SimulatePendingRoi("not-a-number", DefaultDailyRate, now-100, now))
}

func TestDailyRatePercent(t *testing.T) {
	assert.Equal(t, "0.800", DailyRatePercent(DefaultDailyRate))
	assert.Equal(t, "1.000", DailyRatePercent(big.NewInt(10_000_000_000_000_000)))
	assert.Equal(t, "0.025", DailyRatePercent(big.NewInt(250_000_000_000_000)))
	assert.Equal(t, "0.000", DailyRatePercent(nil))
	assert.Equal(t, "0.000", DailyRatePercent(big.NewInt(0)))
}

func TestPriceFromReserves(t *testing.T) {
	// 2 base per quote => 0.5 quote per base
	price := PriceFromReserves(e18(2000), e18(1000), 18, 18)
	assert.Equal(t, "500000000000000000", price.String())
}

func TestPriceFromReservesReciprocal(t *testing.T) {
	forward := PriceFromReserves(e18(2000), e18(1000), 18, 18)
	backward := PriceFromReserves(e18(1000), e18(2000), 18, 18)
	product := new(big.Int).Mul(forward, backward)
	want := new(big.Int).Mul(oneE18, oneE18)
	assert.Equal(t, want.String(), product.String())
}

func TestPriceFromReservesMixedDecimals(t *testing.T) {
	// 1000 tokens (18 dec) against 500 USDT (6 dec) => 0.5 USD per token
	usdt := new(big.Int).Mul(big.NewInt(500), big.NewInt(1_000_000))
	price := PriceFromReserves(e18(1000), usdt, 18, 6)
	assert.Equal(t, "500000000000000000", price.String())
}

func TestPriceFromReservesEmptyPool(t *testing.T) {
	assert.Equal(t, "0", PriceFromReserves(big.NewInt(0), e18(1), 18, 18).String())
	assert.Equal(t, "0", PriceFromReserves(e18(1), big.NewInt(0), 18, 18).String())
	assert.Equal(t, "0", PriceFromReserves(nil, nil, 18, 18).String())
}
