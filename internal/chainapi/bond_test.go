package chainapi

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusOfActive(t *testing.T) {
	start := int64(1_700_000_000)
	day := int64(86400)
	assert.Equal(t, BondActive, StatusOf(false, start, 5*day, start))
	assert.Equal(t, BondActive, StatusOf(false, start, 5*day, start+4*day))
	// one second before maturity
	assert.Equal(t, BondActive, StatusOf(false, start, 5*day, start+5*day-1))
}

func TestStatusOfMatured(t *testing.T) {
	start := int64(1_700_000_000)
	day := int64(86400)
	assert.Equal(t, BondMatured, StatusOf(false, start, 5*day, start+5*day))
	assert.Equal(t, BondMatured, StatusOf(false, start, 5*day, start+6*day))
}

func TestStatusOfWithdrawnIsTerminal(t *testing.T) {
	start := int64(1_700_000_000)
	day := int64(86400)
	// withdrawn wins regardless of where the clock sits
	assert.Equal(t, BondWithdrawnStatus, StatusOf(true, start, 5*day, start+1))
	assert.Equal(t, BondWithdrawnStatus, StatusOf(true, start, 5*day, start+10*day))
	assert.Equal(t, BondWithdrawnStatus, StatusOf(true, 0, 0, start))
}

func TestStatusOfUnsetStart(t *testing.T) {
	// a zeroed position never reads as matured
	assert.Equal(t, BondActive, StatusOf(false, 0, 0, 1_700_000_000))
}
