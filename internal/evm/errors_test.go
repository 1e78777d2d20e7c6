package evm

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyNil(t *testing.T) {
	assert.NoError(t, Classify(nil))
}

func TestClassifyPrunedHistory(t *testing.T) {
	raw := errors.New("requested block range is older than the configured retention")
	classified := Classify(raw)
	assert.True(t, errors.Is(classified, ErrPrunedHistory))
	assert.False(t, errors.Is(classified, ErrReverted))
	// the original provider message stays reachable
	assert.Contains(t, classified.Error(), "retention")
}

func TestClassifyMissingTrieNode(t *testing.T) {
	raw := errors.New("missing trie node 0xabc (path) <nil>")
	assert.True(t, errors.Is(Classify(raw), ErrPrunedHistory))
}

func TestClassifyReverted(t *testing.T) {
	raw := errors.New("execution reverted: user is blocked")
	classified := Classify(raw)
	assert.True(t, errors.Is(classified, ErrReverted))
	assert.False(t, errors.Is(classified, ErrTransport))
}

func TestClassifyTransport(t *testing.T) {
	for _, msg := range []string{
		"dial tcp 127.0.0.1:8545: connection refused",
		"read tcp: i/o timeout",
		"Post \"https://rpc\": context deadline exceeded",
	} {
		assert.True(t, errors.Is(Classify(errors.New(msg)), ErrTransport), msg)
	}
}

func TestClassifyUnknownDefaultsToTransport(t *testing.T) {
	assert.True(t, errors.Is(Classify(errors.New("something odd")), ErrTransport))
}

func TestIsValidAddress(t *testing.T) {
	assert.True(t, IsValidAddress("0x7f268357A8c2552623316e2562D90e642bB538E5"))
	assert.True(t, IsValidAddress(ZeroAddress))
	assert.False(t, IsValidAddress("7f268357A8c2552623316e2562D90e642bB538E5"))
	assert.False(t, IsValidAddress("0x7f26"))
	assert.False(t, IsValidAddress("0x7f268357A8c2552623316e2562D90e642bB538EZ"))
	assert.False(t, IsValidAddress(""))
}

func TestIsZeroAddress(t *testing.T) {
	assert.True(t, IsZeroAddress("0x0000000000000000000000000000000000000000"))
	assert.False(t, IsZeroAddress("0x7f268357A8c2552623316e2562D90e642bB538E5"))
}
