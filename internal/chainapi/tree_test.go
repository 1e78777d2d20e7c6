package chainapi

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"stakeview/internal/evm"
)

type fakeGraph struct {
	directs map[string][]string
	fail    map[string]bool
}

func (g *fakeGraph) Directs(ctx context.Context, address string) ([]Direct, error) {
	if g.fail[address] {
		return nil, evm.ErrTransport
	}
	children := g.directs[address]
	out := make([]Direct, 0, len(children))
	for _, child := range children {
		out = append(out, Direct{Address: child})
	}
	return out, nil
}

func (g *fakeGraph) Record(ctx context.Context, address string) (UserRecord, error) {
	if g.fail[address] {
		return UserRecord{}, errors.New("node down")
	}
	record := ZeroRecord(address)
	record.SelfStaked = "1000"
	return record, nil
}

func addr(i int) string {
	return fmt.Sprintf("0x%040x", i+1)
}

func TestBuildDownlineLevels(t *testing.T) {
	root := addr(0)
	graph := &fakeGraph{directs: map[string][]string{
		root:    {addr(1), addr(2)},
		addr(1): {addr(3)},
		addr(2): {addr(4), addr(5)},
		addr(3): {addr(6)},
	}}
	downline, err := BuildDownline(context.Background(), graph, root, 10)
	assert.NoError(t, err)
	assert.Equal(t, []string{addr(1), addr(2)}, downline[1])
	assert.Equal(t, []string{addr(3), addr(4), addr(5)}, downline[2])
	assert.Equal(t, []string{addr(6)}, downline[3])
	assert.Len(t, downline, 3)
}

func TestBuildDownlineDepthCap(t *testing.T) {
	root := addr(0)
	graph := &fakeGraph{directs: map[string][]string{
		root:    {addr(1)},
		addr(1): {addr(2)},
		addr(2): {addr(3)},
		addr(3): {addr(4)},
	}}
	downline, err := BuildDownline(context.Background(), graph, root, 3)
	assert.NoError(t, err)
	assert.Len(t, downline, 3)
	assert.NotContains(t, downline, 4)
}

func TestBuildDownlineCycleSafe(t *testing.T) {
	root := addr(0)
	graph := &fakeGraph{directs: map[string][]string{
		root:    {addr(1)},
		addr(1): {addr(2)},
		addr(2): {root, addr(1)}, // corrupt back-edges
	}}
	downline, err := BuildDownline(context.Background(), graph, root, 10)
	assert.NoError(t, err)
	assert.Equal(t, []string{addr(1)}, downline[1])
	assert.Equal(t, []string{addr(2)}, downline[2])
	// back-edges produce no new discoveries, walk terminates
	assert.Len(t, downline, 2)
}

func TestBuildDownlineFailedBranchSkipped(t *testing.T) {
	root := addr(0)
	graph := &fakeGraph{
		directs: map[string][]string{
			root:    {addr(1), addr(2)},
			addr(1): {addr(3)},
			addr(2): {addr(4)},
		},
		fail: map[string]bool{addr(2): true},
	}
	downline, err := BuildDownline(context.Background(), graph, root, 10)
	assert.NoError(t, err)
	assert.Equal(t, []string{addr(1), addr(2)}, downline[1])
	// addr(2)'s subtree is lost, addr(1)'s survives
	assert.Equal(t, []string{addr(3)}, downline[2])
}

func TestBuildDownlineBadRoot(t *testing.T) {
	_, err := BuildDownline(context.Background(), &fakeGraph{}, "junk", 5)
	assert.ErrorIs(t, err, evm.ErrBadAddress)
}

func TestBuildDownlineZeroDepth(t *testing.T) {
	downline, err := BuildDownline(context.Background(), &fakeGraph{}, addr(0), 0)
	assert.NoError(t, err)
	assert.Empty(t, downline)
}

func TestHydrateTeamSubstitutesZeroRecord(t *testing.T) {
	addresses := make([]string, 10)
	for i := range addresses {
		addresses[i] = addr(i)
	}
	graph := &fakeGraph{fail: map[string]bool{addr(4): true}}
	team := HydrateTeam(context.Background(), graph, addresses)
	assert.Len(t, team, 10)
	for _, address := range addresses {
		record, ok := team[address]
		assert.True(t, ok, address)
		if address == addr(4) {
			assert.Equal(t, "0", record.SelfStaked)
		} else {
			assert.Equal(t, "1000", record.SelfStaked)
		}
	}
}
