package chainapi

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stakeview/internal/evm"
)

type fakeLedger struct {
	addresses  []string
	badIndexes map[int]bool
	badRecords map[string]bool

	totalCalls  int
	totalErrAt  int // fail TotalUsers on the Nth call (1-based), 0 = never
	totalSeries []int
}

func (l *fakeLedger) TotalUsers(ctx context.Context) (int, error) {
	l.totalCalls++
	if l.totalErrAt > 0 && l.totalCalls >= l.totalErrAt {
		return 0, evm.ErrTransport
	}
	if len(l.totalSeries) > 0 {
		idx := l.totalCalls - 1
		if idx >= len(l.totalSeries) {
			idx = len(l.totalSeries) - 1
		}
		return l.totalSeries[idx], nil
	}
	return len(l.addresses), nil
}

func (l *fakeLedger) UserAtIndex(ctx context.Context, index int) (string, error) {
	if l.badIndexes[index] {
		return "", evm.ErrTransport
	}
	if index < 0 || index >= len(l.addresses) {
		return "", evm.ErrTransport
	}
	return l.addresses[index], nil
}

func (l *fakeLedger) Record(ctx context.Context, address string) (UserRecord, error) {
	if l.badRecords[address] {
		return UserRecord{}, evm.ErrTransport
	}
	record := ZeroRecord(address)
	record.SelfStaked = "500"
	return record, nil
}

func ledgerOf(n int) *fakeLedger {
	l := &fakeLedger{badIndexes: map[int]bool{}, badRecords: map[string]bool{}}
	for i := 0; i < n; i++ {
		l.addresses = append(l.addresses, addr(i))
	}
	return l
}

func TestExportWindowHydrates(t *testing.T) {
	ledger := ledgerOf(10)
	export, err := ExportWindow(context.Background(), ledger, ledger, 2, 3)
	require.NoError(t, err)
	assert.Equal(t, 10, export.Total)
	require.Len(t, export.Items, 3)
	for i, record := range export.Items {
		assert.Equal(t, ZeroRecord(addr(2+i)).Address, record.Address)
		assert.Equal(t, "500", record.SelfStaked)
	}
}

func TestExportWindowFailedIndexKeepsCount(t *testing.T) {
	ledger := ledgerOf(10)
	ledger.badIndexes[4] = true
	export, err := ExportWindow(context.Background(), ledger, ledger, 0, 10)
	require.NoError(t, err)
	// one placeholder, not a shorter window
	require.Len(t, export.Items, 10)
	assert.Equal(t, ZeroRecord(evm.ZeroAddress).Address, export.Items[4].Address)
	assert.Equal(t, "0", export.Items[4].SelfStaked)
	assert.Equal(t, "500", export.Items[3].SelfStaked)
	assert.Equal(t, "500", export.Items[5].SelfStaked)
}

func TestExportWindowFailedHydrationKeepsCount(t *testing.T) {
	ledger := ledgerOf(5)
	ledger.badRecords[addr(1)] = true
	export, err := ExportWindow(context.Background(), ledger, ledger, 0, 5)
	require.NoError(t, err)
	require.Len(t, export.Items, 5)
	assert.Equal(t, "0", export.Items[1].SelfStaked)
	assert.Equal(t, ZeroRecord(addr(1)).Address, export.Items[1].Address)
}

func TestExportWindowClampsAtTotal(t *testing.T) {
	ledger := ledgerOf(5)
	export, err := ExportWindow(context.Background(), ledger, ledger, 4, 10)
	require.NoError(t, err)
	assert.Len(t, export.Items, 1)

	export, err = ExportWindow(context.Background(), ledger, ledger, 50, 10)
	require.NoError(t, err)
	assert.Empty(t, export.Items)
}

func TestExportEverythingShortPageTerminates(t *testing.T) {
	ledger := ledgerOf(5)
	export, err := ExportEverything(context.Background(), ledger, ledger, 2)
	require.NoError(t, err)
	assert.Equal(t, 5, export.Total)
	assert.Len(t, export.Items, 5)
}

func TestExportEverythingFailedIndexDoesNotTruncate(t *testing.T) {
	ledger := ledgerOf(10)
	ledger.badIndexes[3] = true
	export, err := ExportEverything(context.Background(), ledger, ledger, 4)
	require.NoError(t, err)
	// every registered slot is exported, the bad one as a placeholder
	require.Len(t, export.Items, 10)
	assert.Equal(t, ZeroRecord(evm.ZeroAddress).Address, export.Items[3].Address)
	assert.Equal(t, ZeroRecord(addr(9)).Address, export.Items[9].Address)
}

func TestExportEverythingFirstTotalWins(t *testing.T) {
	ledger := ledgerOf(6)
	// the collection "grows" mid walk; the walk stays pinned to the first read
	ledger.totalSeries = []int{4, 6, 6}
	export, err := ExportEverything(context.Background(), ledger, ledger, 2)
	require.NoError(t, err)
	assert.Equal(t, 4, export.Total)
	assert.Len(t, export.Items, 4)
}

func TestExportEverythingPartialOnMidWalkFailure(t *testing.T) {
	ledger := ledgerOf(10)
	ledger.totalErrAt = 3
	export, err := ExportEverything(context.Background(), ledger, ledger, 4)
	require.NoError(t, err)
	assert.Equal(t, 10, export.Total)
	assert.Len(t, export.Items, 8)
}

func TestExportEverythingFirstWindowFailure(t *testing.T) {
	ledger := ledgerOf(10)
	ledger.totalErrAt = 1
	_, err := ExportEverything(context.Background(), ledger, ledger, 4)
	assert.Error(t, err)
}
