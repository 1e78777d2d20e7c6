package chainapi

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func packEvent(t *testing.T, parsed abi.ABI, name string, args ...interface{}) []byte {
	t.Helper()
	data, err := parsed.Events[name].Inputs.NonIndexed().Pack(args...)
	require.NoError(t, err)
	return data
}

func addrTopic(address common.Address) common.Hash {
	return common.BytesToHash(address.Bytes())
}

func TestProjectLogStaked(t *testing.T) {
	app := &App{}
	account := common.HexToAddress(testAddr)
	referrer := common.HexToAddress(testReferrer)
	vLog := types.Log{
		Topics:      []common.Hash{stakingEvents.Events["Staked"].ID, addrTopic(account), addrTopic(referrer)},
		Data:        packEvent(t, stakingEvents, "Staked", big.NewInt(12345)),
		BlockNumber: 900,
		TxHash:      common.HexToHash("0x01"),
	}
	entry, ok := app.projectLog(vLog, account)
	require.True(t, ok)
	assert.Equal(t, ActStake, entry.Kind)
	assert.Equal(t, "12345", entry.Amount)
	assert.Equal(t, referrer.Hex(), entry.Counterparty)
	assert.Equal(t, uint64(900), entry.BlockNumber)
}

func TestProjectLogIgnoresOtherAccounts(t *testing.T) {
	app := &App{}
	account := common.HexToAddress(testAddr)
	other := common.HexToAddress(testReferrer)
	vLog := types.Log{
		Topics: []common.Hash{stakingEvents.Events["Staked"].ID, addrTopic(other), addrTopic(other)},
		Data:   packEvent(t, stakingEvents, "Staked", big.NewInt(1)),
	}
	_, ok := app.projectLog(vLog, account)
	assert.False(t, ok)
}

func TestProjectLogReferralDirection(t *testing.T) {
	app := &App{}
	payer := common.HexToAddress(testAddr)
	payee := common.HexToAddress(testReferrer)
	vLog := types.Log{
		Topics: []common.Hash{stakingEvents.Events["ReferralPaid"].ID, addrTopic(payer), addrTopic(payee)},
		Data:   packEvent(t, stakingEvents, "ReferralPaid", big.NewInt(50), big.NewInt(3)),
	}
	in, ok := app.projectLog(vLog, payee)
	require.True(t, ok)
	assert.Equal(t, ActReferralIn, in.Kind)
	assert.Equal(t, payer.Hex(), in.Counterparty)
	assert.Equal(t, "3", in.Meta["level"])

	out, ok := app.projectLog(vLog, payer)
	require.True(t, ok)
	assert.Equal(t, ActReferralOut, out.Kind)
	assert.Equal(t, payee.Hex(), out.Counterparty)
	assert.Equal(t, "50", out.Amount)
}

func TestProjectLogTransferDirection(t *testing.T) {
	app := &App{}
	sender := common.HexToAddress(testAddr)
	receiver := common.HexToAddress(testReferrer)
	vLog := types.Log{
		Topics: []common.Hash{erc20Events.Events["Transfer"].ID, addrTopic(sender), addrTopic(receiver)},
		Data:   packEvent(t, erc20Events, "Transfer", big.NewInt(777)),
	}
	in, ok := app.projectLog(vLog, receiver)
	require.True(t, ok)
	assert.Equal(t, ActTokenTransferIn, in.Kind)
	assert.Equal(t, sender.Hex(), in.Counterparty)

	out, ok := app.projectLog(vLog, sender)
	require.True(t, ok)
	assert.Equal(t, ActTokenTransferOut, out.Kind)
	assert.Equal(t, "777", out.Amount)
}

func TestProjectLogBondPurchased(t *testing.T) {
	app := &App{}
	account := common.HexToAddress(testAddr)
	vLog := types.Log{
		Topics: []common.Hash{stakingEvents.Events["BondPurchased"].ID, addrTopic(account)},
		Data:   packEvent(t, stakingEvents, "BondPurchased", big.NewInt(2), big.NewInt(9000), big.NewInt(5)),
	}
	entry, ok := app.projectLog(vLog, account)
	require.True(t, ok)
	assert.Equal(t, ActBondBuy, entry.Kind)
	assert.Equal(t, "9000", entry.Amount)
	assert.Equal(t, "2", entry.Meta["plan_id"])
	assert.Equal(t, "5", entry.Meta["index"])
}

func TestProjectLogUnknownTopic(t *testing.T) {
	app := &App{}
	account := common.HexToAddress(testAddr)
	vLog := types.Log{Topics: []common.Hash{common.HexToHash("0xdead")}}
	_, ok := app.projectLog(vLog, account)
	assert.False(t, ok)

	_, ok = app.projectLog(types.Log{}, account)
	assert.False(t, ok)
}
