package chainapi

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"stakeview/internal/evm"
)

// Contract tuples come back positional. Everything crossing this boundary is
// coerced into typed records here; a field that cannot be parsed becomes "0"
// so a batch never dies on one malformed account.

const levelUnset = 255

const NoReferrerLabel = "No Referrer"

func toBig(v interface{}) *big.Int {
	switch t := v.(type) {
	case *big.Int:
		if t == nil {
			return big.NewInt(0)
		}
		return t
	case uint64:
		return new(big.Int).SetUint64(t)
	case int64:
		return big.NewInt(t)
	case uint8:
		return big.NewInt(int64(t))
	case uint32:
		return big.NewInt(int64(t))
	case bool:
		if t {
			return big.NewInt(1)
		}
		return big.NewInt(0)
	case string:
		n, ok := new(big.Int).SetString(t, 10)
		if !ok {
			return big.NewInt(0)
		}
		return n
	default:
		return big.NewInt(0)
	}
}

func toAmount(v interface{}) string {
	return toBig(v).String()
}

func toInt(v interface{}) int {
	return int(toBig(v).Int64())
}

func toBool(v interface{}) bool {
	b, ok := v.(bool)
	if ok {
		return b
	}
	return toBig(v).Sign() > 0
}

func toAddr(v interface{}) string {
	switch t := v.(type) {
	case common.Address:
		return t.Hex()
	case *common.Address:
		if t == nil {
			return evm.ZeroAddress
		}
		return t.Hex()
	case string:
		if evm.IsValidAddress(t) {
			return common.HexToAddress(t).Hex()
		}
		return evm.ZeroAddress
	default:
		return evm.ZeroAddress
	}
}

func toString(v interface{}) string {
	s, ok := v.(string)
	if ok {
		return s
	}
	return ""
}

// tuple normalizes a contract call result: multi-output calls unpack into
// []interface{}, single-output ones return the bare value.
func tuple(raw interface{}) []interface{} {
	if raw == nil {
		return nil
	}
	if fields, ok := raw.([]interface{}); ok {
		return fields
	}
	return []interface{}{raw}
}

func field(fields []interface{}, i int) interface{} {
	if i < 0 || i >= len(fields) {
		return nil
	}
	return fields[i]
}

// DecodeUserRecord turns the raw users() tuple into a typed record. Never
// fails: missing or malformed positions decode to zero values.
func DecodeUserRecord(address string, raw interface{}) UserRecord {
	fields := tuple(raw)
	level := toInt(field(fields, 8))
	if level == levelUnset {
		level = 0
	}
	if level < 0 {
		level = 0
	}
	return UserRecord{
		Address:                toAddr(address),
		OriginalStaked:         toAmount(field(fields, 0)),
		OriginalUsdLocked:      toAmount(field(fields, 1)),
		SelfStaked:             toAmount(field(fields, 2)),
		SelfStakedUsd:          toAmount(field(fields, 3)),
		ActiveBondValue:        toAmount(field(fields, 4)),
		LastAccruedAt:          toBig(field(fields, 5)).Int64(),
		Referrer:               toAddr(field(fields, 6)),
		DirectCount:            toInt(field(fields, 7)),
		Level:                  level,
		Rank:                   toInt(field(fields, 9)),
		TotalRoiEarned:         toAmount(field(fields, 10)),
		TotalLevelRewardEarned: toAmount(field(fields, 11)),
		TotalReferralIncome:    toAmount(field(fields, 12)),
		TotalWithdrawn:         toAmount(field(fields, 13)),
	}
}

// ShortAddress is the display form: 0x1234...cdef. The zero address renders
// as the no-referrer label because that is the only place it shows up.
func ShortAddress(address string) string {
	if !evm.IsValidAddress(address) || evm.IsZeroAddress(address) {
		return NoReferrerLabel
	}
	checked := common.HexToAddress(address).Hex()
	return fmt.Sprintf("%s...%s", checked[:6], checked[len(checked)-4:])
}
