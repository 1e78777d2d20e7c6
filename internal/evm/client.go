package evm

import (
	"context"
	"math/big"
	"regexp"
	"sync"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"
)

var addressCheck = regexp.MustCompile(`^0x[0-9a-fA-F]{40}$`)

const ZeroAddress = "0x0000000000000000000000000000000000000000"

func IsValidAddress(address string) bool {
	return addressCheck.MatchString(address)
}

func IsZeroAddress(address string) bool {
	return !IsValidAddress(address) || common.HexToAddress(address) == (common.Address{})
}

// Client wraps a single ethclient connection. Block timestamps are memoized
// because activity scans resolve many events from the same block.
type Client struct {
	Eth *ethclient.Client

	mu         sync.Mutex
	timestamps map[uint64]uint64
}

func New(rawUrl string) *Client {
	conn, err := ethclient.Dial(rawUrl)
	if err != nil {
		panic("failed to connect to RPC: " + err.Error())
	}
	return &Client{
		Eth:        conn,
		timestamps: map[uint64]uint64{},
	}
}

func (c *Client) HeadBlock(ctx context.Context) (uint64, error) {
	header, err := c.Eth.HeaderByNumber(ctx, nil)
	if err != nil {
		return 0, Classify(err)
	}
	return header.Number.Uint64(), nil
}

func (c *Client) GetBalance(ctx context.Context, address string) (*big.Int, error) {
	if !IsValidAddress(address) {
		return nil, ErrBadAddress
	}
	balance, err := c.Eth.BalanceAt(ctx, common.HexToAddress(address), nil)
	if err != nil {
		return nil, Classify(err)
	}
	return balance, nil
}

func (c *Client) GetGasPrice(ctx context.Context) (*big.Int, error) {
	gasPrice, err := c.Eth.SuggestGasPrice(ctx)
	if err != nil {
		return nil, Classify(err)
	}
	return gasPrice, nil
}

func (c *Client) FilterLogs(ctx context.Context, query ethereum.FilterQuery) ([]types.Log, error) {
	logs, err := c.Eth.FilterLogs(ctx, query)
	if err != nil {
		return nil, Classify(err)
	}
	return logs, nil
}

// BlockTimestamp resolves a block's unix timestamp once per distinct block.
func (c *Client) BlockTimestamp(ctx context.Context, blockNumber uint64) (uint64, error) {
	c.mu.Lock()
	if ts, ok := c.timestamps[blockNumber]; ok {
		c.mu.Unlock()
		return ts, nil
	}
	c.mu.Unlock()
	header, err := c.Eth.HeaderByNumber(ctx, new(big.Int).SetUint64(blockNumber))
	if err != nil {
		return 0, Classify(err)
	}
	c.mu.Lock()
	c.timestamps[blockNumber] = header.Time
	c.mu.Unlock()
	return header.Time, nil
}
