package chainapi

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"

	"stakeview/internal/evm"
)

func TestApprovalTarget(t *testing.T) {
	assert.Equal(t, "101", ApprovalTarget(big.NewInt(100)).String())
	assert.Equal(t, "1010", ApprovalTarget(big.NewInt(1000)).String())
	// ceil: 1 * 1.01 rounds up to 2
	assert.Equal(t, "2", ApprovalTarget(big.NewInt(1)).String())
	assert.Equal(t, "0", ApprovalTarget(big.NewInt(0)).String())
}

func TestApprovalTargetTrigger(t *testing.T) {
	target := ApprovalTarget(big.NewInt(100))
	// allowance 100 is short of the buffered target, 101 is enough
	assert.True(t, big.NewInt(100).Cmp(target) < 0)
	assert.True(t, big.NewInt(101).Cmp(target) >= 0)
}

func TestApprovalTargetLargeAmount(t *testing.T) {
	amount := new(big.Int).Exp(big.NewInt(10), big.NewInt(24), nil) // 1M tokens
	target := ApprovalTarget(amount)
	assert.Equal(t, "1010000000000000000000000", target.String())
	assert.Equal(t, 1, target.Cmp(amount))
}

func TestResolveReferrerFirstValidWins(t *testing.T) {
	self := "0x2222222222222222222222222222222222222222"
	fallback := "0x9999999999999999999999999999999999999999"
	got := ResolveReferrer([]string{testReferrer, testAddr}, self, fallback)
	assert.Equal(t, common.HexToAddress(testReferrer).Hex(), got)
}

func TestResolveReferrerSkipsInvalidAndZero(t *testing.T) {
	self := "0x2222222222222222222222222222222222222222"
	fallback := "0x9999999999999999999999999999999999999999"
	got := ResolveReferrer([]string{"", "junk", evm.ZeroAddress, testReferrer}, self, fallback)
	assert.Equal(t, common.HexToAddress(testReferrer).Hex(), got)
}

func TestResolveReferrerSkipsSelf(t *testing.T) {
	fallback := "0x9999999999999999999999999999999999999999"
	// case-insensitive self match
	got := ResolveReferrer([]string{testAddr}, "0x7F268357A8C2552623316E2562D90E642BB538E5", fallback)
	assert.Equal(t, common.HexToAddress(fallback).Hex(), got)
}

func TestResolveReferrerFallback(t *testing.T) {
	self := "0x2222222222222222222222222222222222222222"
	fallback := "0x9999999999999999999999999999999999999999"
	assert.Equal(t, common.HexToAddress(fallback).Hex(), ResolveReferrer(nil, self, fallback))
	assert.Equal(t, common.HexToAddress(fallback).Hex(), ResolveReferrer([]string{evm.ZeroAddress}, self, fallback))
}
