package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPackClassIDRoundTrip(t *testing.T) {
	tests := []struct {
		edition, land, buildType int
	}{
		{0, 0, 0},
		{0, 39, 1},
		{1, 0, 0},
		{3, 12, 1},
		{100, 65535, 65535},
	}

	for _, tt := range tests {
		classID := PackClassID(tt.edition, tt.land, tt.buildType)
		edition, land, buildType := UnpackClassID(classID)
		assert.Equal(t, tt.edition, edition)
		assert.Equal(t, tt.land, land)
		assert.Equal(t, tt.buildType, buildType)
	}
}

func TestPackClassIDDistinctCoordinates(t *testing.T) {
	seen := make(map[int64]bool)
	for edition := 0; edition < 3; edition++ {
		for land := 0; land < 40; land++ {
			for buildType := 0; buildType < 2; buildType++ {
				classID := PackClassID(edition, land, buildType)
				assert.False(t, seen[classID], "class id collision at (%d,%d,%d)", edition, land, buildType)
				seen[classID] = true
			}
		}
	}
}
