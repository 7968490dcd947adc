package feature_test

import (
	"testing"

	"riichiengine/agari"
	"riichiengine/feature"
	"riichiengine/state"

	"github.com/stretchr/testify/assert"
)

func TestEncodeFreshStateHasFixedWidth(t *testing.T) {
	s := state.New(0, agari.DefaultRuleSet())
	v := feature.Encode(s)
	assert.Len(t, v, feature.Dim)
}
