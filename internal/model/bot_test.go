package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/spacebear01/osbc/internal/model"
)

func TestBotInfoValidate(t *testing.T) {
	tests := map[string]struct {
		info   model.BotInfo
		expErr bool
	}{
		"A valid bot info should not fail": {
			info: model.BotInfo{
				Name:        "chopper",
				Title:       "Chopper",
				Description: "Chops trees.",
			},
			expErr: false,
		},

		"Missing name should fail": {
			info: model.BotInfo{
				Title: "Chopper",
			},
			expErr: true,
		},

		"Missing title should fail": {
			info: model.BotInfo{
				Name: "chopper",
			},
			expErr: true,
		},

		"Missing description should not fail": {
			info: model.BotInfo{
				Name:  "chopper",
				Title: "Chopper",
			},
			expErr: false,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			err := test.info.Validate()

			if test.expErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
