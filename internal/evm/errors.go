package evm

import (
	"errors"
	"strings"
)

// Provider failures are classified once, here, so the rest of the code can
// switch on errors.Is instead of matching RPC message substrings.
var (
	ErrBadAddress    = errors.New("invalid address format")
	ErrPrunedHistory = errors.New("log range exceeds provider retention")
	ErrTransport     = errors.New("rpc transport failure")
	ErrReverted      = errors.New("execution reverted")
	ErrDecode        = errors.New("unexpected response shape")
)

// prunedHints covers the wording used by the public Polygon/Infura/Alchemy
// endpoints when a filter range is older than their retention horizon.
var prunedHints = []string{
	"pruning",
	"pruned",
	"missing trie node",
	"block range",
	"query returned more than",
	"exceed maximum block range",
	"older than the configured",
}

var transportHints = []string{
	"connection refused",
	"connection reset",
	"i/o timeout",
	"context deadline exceeded",
	"eof",
	"no such host",
	"502",
	"503",
	"too many requests",
}

func Classify(err error) error {
	if err == nil {
		return nil
	}
	msg := strings.ToLower(err.Error())
	for _, hint := range prunedHints {
		if strings.Contains(msg, hint) {
			return errors.Join(ErrPrunedHistory, err)
		}
	}
	if strings.Contains(msg, "revert") {
		return errors.Join(ErrReverted, err)
	}
	for _, hint := range transportHints {
		if strings.Contains(msg, hint) {
			return errors.Join(ErrTransport, err)
		}
	}
	return errors.Join(ErrTransport, err)
}
