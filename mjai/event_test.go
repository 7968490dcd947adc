package mjai_test

import (
	"strings"
	"testing"

	"riichiengine/mjai"
	"riichiengine/tile"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeStartKyoku(t *testing.T) {
	line := []byte(`{"type":"start_kyoku","bakaze":"E","kyoku":1,"honba":0,"kyotaku":0,` +
		`"oya":0,"scores":[25000,25000,25000,25000],"dora_marker":"5m",` +
		`"tehais":[` +
		`["1m","2m","3m","4p","5p","6p","7s","8s","9s","E","E","P","P"],` +
		`["?","?","?","?","?","?","?","?","?","?","?","?","?"],` +
		`["?","?","?","?","?","?","?","?","?","?","?","?","?"],` +
		`["?","?","?","?","?","?","?","?","?","?","?","?","?"]]}`)

	ev, err := mjai.Decode(line)
	require.NoError(t, err)
	require.Equal(t, mjai.TypeStartKyoku, ev.Type)
	require.NotNil(t, ev.StartKyoku)
	assert.Equal(t, tile.East, ev.StartKyoku.Bakaze)
	assert.Equal(t, 0, ev.StartKyoku.Kyoku) // 1-based wire -> 0-based
	assert.Equal(t, [4]int{25000, 25000, 25000, 25000}, ev.StartKyoku.Scores)
	assert.Equal(t, tile.Man5, ev.StartKyoku.DoraMarker.ID)
	assert.Equal(t, tile.Man1, ev.StartKyoku.Tehais[0][0].ID)
	assert.Equal(t, tile.Unknown, ev.StartKyoku.Tehais[1][0].ID)
}

func TestDecodeAkaFive(t *testing.T) {
	ev, err := mjai.Decode([]byte(`{"type":"tsumo","actor":2,"pai":"0p"}`))
	require.NoError(t, err)
	require.NotNil(t, ev.Tsumo)
	assert.Equal(t, tile.Pin5, ev.Tsumo.Pai.ID)
	assert.True(t, ev.Tsumo.Pai.Aka)
}

func TestDecodeCallMeld(t *testing.T) {
	ev, err := mjai.Decode([]byte(`{"type":"pon","actor":1,"target":0,"pai":"5s","consumed":["5s","5s"]}`))
	require.NoError(t, err)
	require.NotNil(t, ev.Pon)
	assert.Equal(t, 1, ev.Pon.Actor)
	assert.Equal(t, 0, ev.Pon.Target)
	assert.Len(t, ev.Pon.Consumed, 2)
}

func TestDecodeReachAndAccepted(t *testing.T) {
	ev, err := mjai.Decode([]byte(`{"type":"reach","actor":3}`))
	require.NoError(t, err)
	assert.False(t, ev.Reach.Accepted)

	ev, err = mjai.Decode([]byte(`{"type":"reach_accepted","actor":3}`))
	require.NoError(t, err)
	assert.True(t, ev.Reach.Accepted)
}

func TestDecodeUnknownTypeErrors(t *testing.T) {
	_, err := mjai.Decode([]byte(`{"type":"not_a_real_event"}`))
	assert.ErrorIs(t, err, mjai.ErrMalformedEvent)
}

func TestDecodeMissingTypeErrors(t *testing.T) {
	_, err := mjai.Decode([]byte(`{"actor":0}`))
	assert.ErrorIs(t, err, mjai.ErrMalformedEvent)
}

func TestDecodeBadTileErrors(t *testing.T) {
	_, err := mjai.Decode([]byte(`{"type":"dahai","actor":0,"pai":"9x","tsumogiri":false}`))
	assert.ErrorIs(t, err, mjai.ErrMalformedEvent)
}

func TestScannerSkipsBlankLines(t *testing.T) {
	log := strings.Join([]string{
		`{"type":"tsumo","actor":0,"pai":"1m"}`,
		``,
		`{"type":"dahai","actor":0,"pai":"1m","tsumogiri":true}`,
	}, "\n")

	sc := mjai.NewScanner(strings.NewReader(log))
	var types []mjai.Type
	for sc.Scan() {
		types = append(types, sc.Event().Type)
	}
	require.NoError(t, sc.Err())
	assert.Equal(t, []mjai.Type{mjai.TypeTsumo, mjai.TypeDahai}, types)
	assert.Equal(t, 3, sc.Line())
}
