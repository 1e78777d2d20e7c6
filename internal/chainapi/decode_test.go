package chainapi

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"

	"stakeview/internal/evm"
)

const (
	testAddr     = "0x7f268357A8c2552623316e2562D90e642bB538E5"
	testReferrer = "0x1111111111111111111111111111111111111111"
)

func rawUserTuple() []interface{} {
	return []interface{}{
		big.NewInt(1000),                   // originalStaked
		big.NewInt(500),                    // originalUsdLocked
		big.NewInt(1200),                   // selfStaked
		big.NewInt(600),                    // selfStakedUsd
		big.NewInt(300),                    // activeBondValue
		big.NewInt(1_700_000_000),          // lastAccruedAt
		common.HexToAddress(testReferrer),  // referrer
		big.NewInt(4),                      // directCount
		uint8(3),                           // level
		uint8(2),                           // rank
		big.NewInt(77),                     // totalRoiEarned
		big.NewInt(11),                     // totalLevelRewardEarned
		big.NewInt(22),                     // totalReferralIncome
		big.NewInt(33),                     // totalWithdrawn
	}
}

func TestDecodeUserRecord(t *testing.T) {
	record := DecodeUserRecord(testAddr, rawUserTuple())
	assert.Equal(t, common.HexToAddress(testAddr).Hex(), record.Address)
	assert.Equal(t, "1000", record.OriginalStaked)
	assert.Equal(t, "500", record.OriginalUsdLocked)
	assert.Equal(t, "1200", record.SelfStaked)
	assert.Equal(t, "600", record.SelfStakedUsd)
	assert.Equal(t, "300", record.ActiveBondValue)
	assert.Equal(t, int64(1_700_000_000), record.LastAccruedAt)
	assert.Equal(t, common.HexToAddress(testReferrer).Hex(), record.Referrer)
	assert.Equal(t, 4, record.DirectCount)
	assert.Equal(t, 3, record.Level)
	assert.Equal(t, 2, record.Rank)
	assert.Equal(t, "77", record.TotalRoiEarned)
	assert.Equal(t, "11", record.TotalLevelRewardEarned)
	assert.Equal(t, "22", record.TotalReferralIncome)
	assert.Equal(t, "33", record.TotalWithdrawn)
}

func TestDecodeUserRecordLevelSentinel(t *testing.T) {
	fields := rawUserTuple()
	fields[8] = uint8(255)
	record := DecodeUserRecord(testAddr, fields)
	assert.Equal(t, 0, record.Level)
}

func TestDecodeUserRecordMalformedFields(t *testing.T) {
	fields := rawUserTuple()
	fields[0] = "not a number"
	fields[2] = nil
	fields[6] = "garbage"
	record := DecodeUserRecord(testAddr, fields)
	assert.Equal(t, "0", record.OriginalStaked)
	assert.Equal(t, "0", record.SelfStaked)
	assert.Equal(t, evm.ZeroAddress, record.Referrer)
}

func TestDecodeUserRecordNilPayload(t *testing.T) {
	record := DecodeUserRecord(testAddr, nil)
	assert.Equal(t, "0", record.OriginalStaked)
	assert.Equal(t, "0", record.TotalWithdrawn)
	assert.Equal(t, 0, record.Level)
	assert.Equal(t, evm.ZeroAddress, record.Referrer)
}

func TestTupleNormalizesScalar(t *testing.T) {
	assert.Equal(t, []interface{}{big.NewInt(7)}, tuple(big.NewInt(7)))
	assert.Nil(t, tuple(nil))
	fields := []interface{}{big.NewInt(1), big.NewInt(2)}
	assert.Equal(t, fields, tuple(fields))
}

func TestShortAddress(t *testing.T) {
	assert.Equal(t, "0x7f26...38E5", ShortAddress(testAddr))
	assert.Equal(t, NoReferrerLabel, ShortAddress(evm.ZeroAddress))
	assert.Equal(t, NoReferrerLabel, ShortAddress("nonsense"))
	assert.Equal(t, NoReferrerLabel, ShortAddress(""))
}
