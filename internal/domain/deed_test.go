package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMaxDeedSupply(t *testing.T) {
	assert.Equal(t, int64(1), MaxDeedSupply(0))
	assert.Equal(t, int64(10), MaxDeedSupply(1))
	assert.Equal(t, int64(100), MaxDeedSupply(2))
	assert.Equal(t, int64(100000), MaxDeedSupply(5))
}

func TestDeedIsApprovedFor(t *testing.T) {
	spender := uint(7)

	unapproved := Deed{OwnerID: 1}
	assert.False(t, unapproved.IsApprovedFor(spender))

	approved := Deed{OwnerID: 1, ApprovedID: &spender}
	assert.True(t, approved.IsApprovedFor(spender))
	assert.False(t, approved.IsApprovedFor(8))
}
