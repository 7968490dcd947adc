package validate

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"riichiengine/agari"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeLines(t *testing.T, path string, lines []map[string]any) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	for _, l := range lines {
		b, err := json.Marshal(l)
		require.NoError(t, err)
		_, err = f.Write(append(b, '\n'))
		require.NoError(t, err)
	}
}

// TestRunFlagsIllegalDiscard writes a tiny two-line log where seat 0
// discards a tile it was never dealt, which Run must flag as a
// violation rather than silently accept.
func TestRunFlagsIllegalDiscard(t *testing.T) {
	dir := t.TempDir()
	blank := []string{
		"2m", "3m", "4m", "5m", "6m", "7m", "8p", "8p", "8p", "1s", "1s", "1s", "9s",
	}
	tehais := [4][]string{blank, blank, blank, blank}
	writeLines(t, filepath.Join(dir, "game.json"), []map[string]any{
		{
			"type": "start_kyoku", "bakaze": "E", "kyoku": 1, "honba": 0, "kyotaku": 0,
			"oya": 0, "scores": [4]int{25000, 25000, 25000, 25000}, "dora_marker": "1p",
			"tehais": tehais,
		},
		{"type": "dahai", "actor": 0, "pai": "9m", "tsumogiri": false},
	})

	rep, err := Run(t.Context(), dir, 2, agari.DefaultRuleSet(), 0, nil)
	require.NoError(t, err)
	require.Len(t, rep.Results, 1)
	assert.True(t, rep.Failed())
	assert.NotEmpty(t, rep.Results[0].Violations)
}
