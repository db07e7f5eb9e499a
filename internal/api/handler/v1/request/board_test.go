package request

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCreateEditionRequest_Validate(t *testing.T) {
	valid := CreateEditionRequest{Lands: 40, RarityLevels: 3, BuildTypes: 2}
	assert.NoError(t, valid.Validate())

	tests := []struct {
		name string
		req  CreateEditionRequest
	}{
		{"zero lands", CreateEditionRequest{Lands: 0, RarityLevels: 3, BuildTypes: 2}},
		{"zero rarity levels", CreateEditionRequest{Lands: 40, RarityLevels: 0, BuildTypes: 2}},
		{"zero build types", CreateEditionRequest{Lands: 40, RarityLevels: 3, BuildTypes: 0}},
		{"negative build types", CreateEditionRequest{Lands: 40, RarityLevels: 3, BuildTypes: -1}},
		{"too many rarity levels", CreateEditionRequest{Lands: 40, RarityLevels: 19, BuildTypes: 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, tt.req.Validate())
		})
	}
}
