// Package mjai decodes the line-delimited JSON event log consumed by
// the player-state engine. It knows nothing about game rules; it only
// turns wire bytes into the typed Event variant below.
package mjai

import (
	"errors"
	"fmt"

	"riichiengine/tile"

	"github.com/goccy/go-json"
)

// ErrMalformedEvent is returned when a line is not valid JSON or not a
// recognized event shape (missing type, unknown type, or a field of
// the wrong kind for its type).
var ErrMalformedEvent = errors.New("mjai: malformed event")

// Type is the mjai event tag carried in every line's "type" field.
type Type string

const (
	TypeStartKyoku     Type = "start_kyoku"
	TypeTsumo          Type = "tsumo"
	TypeDahai          Type = "dahai"
	TypeChi            Type = "chi"
	TypePon            Type = "pon"
	TypeDaiminkan      Type = "daiminkan"
	TypeAnkan          Type = "ankan"
	TypeKakan          Type = "kakan"
	TypeDora           Type = "dora"
	TypeReach          Type = "reach"
	TypeReachAccepted  Type = "reach_accepted"
	TypeHora           Type = "hora"
	TypeRyukyoku       Type = "ryukyoku"
	TypeEndKyoku       Type = "end_kyoku"
	TypeEndGame        Type = "end_game"
)

// Event is the tagged variant every line decodes into. Exactly one of
// the embedded payloads is meaningful, selected by Type; a caller's type
// switch should branch on it, never on a field set check.
type Event struct {
	Type Type

	StartKyoku *StartKyoku
	Tsumo      *Tsumo
	Dahai      *Dahai
	Chi        *CallMeld
	Pon        *CallMeld
	Daiminkan  *CallMeld
	Ankan      *Ankan
	Kakan      *Kakan
	Dora       *Dora
	Reach      *Reach
	Hora       *Hora
	Ryukyoku   *Ryukyoku
}

// StartKyoku resets round-level state and deals the initial hand.
type StartKyoku struct {
	Bakaze     tile.ID
	Kyoku      int // 0-based; the wire value is 1-based
	Honba      int
	Kyotaku    int
	Oya        int
	Scores     [4]int
	DoraMarker tile.Tile
	Tehais     [4][13]tile.Tile // other seats' tiles are tile.Unknown
}

// Tsumo is a self-draw by Actor.
type Tsumo struct {
	Actor int
	Pai   tile.Tile
}

// Dahai is a discard by Actor.
type Dahai struct {
	Actor     int
	Pai       tile.Tile
	Tsumogiri bool
}

// CallMeld covers chi, pon, and daiminkan, which share a shape: Actor
// calls Pai from Target using Consumed tiles from their own hand.
type CallMeld struct {
	Actor    int
	Target   int
	Pai      tile.Tile
	Consumed []tile.Tile
}

// Ankan is a concealed kan declared entirely from the actor's hand.
type Ankan struct {
	Actor    int
	Consumed [4]tile.Tile
}

// Kakan upgrades an existing pon to a kan, opening a chankan window.
type Kakan struct {
	Actor    int
	Pai      tile.Tile
	Consumed [3]tile.Tile
}

// Dora announces a new dora indicator (kan dora).
type Dora struct {
	DoraMarker tile.Tile
}

// Reach covers both the reach declaration and its acceptance; Accepted
// distinguishes "reach" from "reach_accepted" on the wire.
type Reach struct {
	Actor    int
	Accepted bool
}

// Hora is a win declaration, ron (Target != Actor) or tsumo (Target == Actor).
type Hora struct {
	Actor       int
	Target      int
	Pai         tile.Tile
	UraMarkers  []tile.Tile
	Deltas      [4]int
	HasDeltas   bool
}

// Ryukyoku is an abortive or exhaustive draw.
type Ryukyoku struct {
	Deltas    [4]int
	HasDeltas bool
	Tenpais   [4]bool
	HasCanAct bool
	CanAct    [4]bool
}

// wireEvent mirrors the JSON shapes in spec.md's event table exactly;
// Decode translates it into the typed Event above.
type wireEvent struct {
	Type string `json:"type"`

	Bakaze     string     `json:"bakaze"`
	Kyoku      int        `json:"kyoku"`
	Honba      int        `json:"honba"`
	Kyotaku    int        `json:"kyotaku"`
	Oya        int        `json:"oya"`
	Scores     [4]int     `json:"scores"`
	DoraMarker string     `json:"dora_marker"`
	Tehais     [4][]string `json:"tehais"`

	Actor     int      `json:"actor"`
	Target    int      `json:"target"`
	Pai       string   `json:"pai"`
	Tsumogiri bool     `json:"tsumogiri"`
	Consumed  []string `json:"consumed"`

	UraMarkers []string `json:"ura_markers"`
	Deltas     *[4]int  `json:"deltas"`
	Tenpais    [4]bool  `json:"tenpais"`
	CanAct     *[4]bool `json:"can_act"`
}

func parseTile(s string) (tile.Tile, error) {
	if s == "" {
		return tile.Tile{ID: tile.Unknown}, nil
	}
	t, err := tile.Parse(s)
	if err != nil {
		return tile.Tile{}, fmt.Errorf("%w: bad tile %q: %v", ErrMalformedEvent, s, err)
	}
	return t, nil
}

func parseTiles(ss []string) ([]tile.Tile, error) {
	out := make([]tile.Tile, len(ss))
	for i, s := range ss {
		t, err := parseTile(s)
		if err != nil {
			return nil, err
		}
		out[i] = t
	}
	return out, nil
}

// Decode parses one mjai line into an Event.
func Decode(line []byte) (Event, error) {
	var w wireEvent
	if err := json.Unmarshal(line, &w); err != nil {
		return Event{}, fmt.Errorf("%w: %v", ErrMalformedEvent, err)
	}
	if w.Type == "" {
		return Event{}, fmt.Errorf("%w: missing type", ErrMalformedEvent)
	}

	ev := Event{Type: Type(w.Type)}
	switch ev.Type {
	case TypeStartKyoku:
		bakaze, err := parseTile(w.Bakaze)
		if err != nil {
			return Event{}, err
		}
		doraMarker, err := parseTile(w.DoraMarker)
		if err != nil {
			return Event{}, err
		}
		sk := &StartKyoku{
			Bakaze:     bakaze.ID,
			Kyoku:      w.Kyoku - 1,
			Honba:      w.Honba,
			Kyotaku:    w.Kyotaku,
			Oya:        w.Oya,
			Scores:     w.Scores,
			DoraMarker: doraMarker,
		}
		for seat := 0; seat < 4; seat++ {
			hand, err := parseTiles(w.Tehais[seat])
			if err != nil {
				return Event{}, err
			}
			if len(hand) != 13 {
				return Event{}, fmt.Errorf("%w: seat %d hand has %d tiles, want 13", ErrMalformedEvent, seat, len(hand))
			}
			copy(sk.Tehais[seat][:], hand)
		}
		ev.StartKyoku = sk

	case TypeTsumo:
		pai, err := parseTile(w.Pai)
		if err != nil {
			return Event{}, err
		}
		ev.Tsumo = &Tsumo{Actor: w.Actor, Pai: pai}

	case TypeDahai:
		pai, err := parseTile(w.Pai)
		if err != nil {
			return Event{}, err
		}
		ev.Dahai = &Dahai{Actor: w.Actor, Pai: pai, Tsumogiri: w.Tsumogiri}

	case TypeChi, TypePon, TypeDaiminkan:
		pai, err := parseTile(w.Pai)
		if err != nil {
			return Event{}, err
		}
		consumed, err := parseTiles(w.Consumed)
		if err != nil {
			return Event{}, err
		}
		cm := &CallMeld{Actor: w.Actor, Target: w.Target, Pai: pai, Consumed: consumed}
		switch ev.Type {
		case TypeChi:
			ev.Chi = cm
		case TypePon:
			ev.Pon = cm
		case TypeDaiminkan:
			ev.Daiminkan = cm
		}

	case TypeAnkan:
		consumed, err := parseTiles(w.Consumed)
		if err != nil {
			return Event{}, err
		}
		if len(consumed) != 4 {
			return Event{}, fmt.Errorf("%w: ankan needs 4 consumed tiles, got %d", ErrMalformedEvent, len(consumed))
		}
		ak := &Ankan{Actor: w.Actor}
		copy(ak.Consumed[:], consumed)
		ev.Ankan = ak

	case TypeKakan:
		pai, err := parseTile(w.Pai)
		if err != nil {
			return Event{}, err
		}
		consumed, err := parseTiles(w.Consumed)
		if err != nil {
			return Event{}, err
		}
		if len(consumed) != 3 {
			return Event{}, fmt.Errorf("%w: kakan needs 3 consumed tiles, got %d", ErrMalformedEvent, len(consumed))
		}
		kk := &Kakan{Actor: w.Actor, Pai: pai}
		copy(kk.Consumed[:], consumed)
		ev.Kakan = kk

	case TypeDora:
		marker, err := parseTile(w.DoraMarker)
		if err != nil {
			return Event{}, err
		}
		ev.Dora = &Dora{DoraMarker: marker}

	case TypeReach:
		ev.Reach = &Reach{Actor: w.Actor, Accepted: false}

	case TypeReachAccepted:
		ev.Reach = &Reach{Actor: w.Actor, Accepted: true}

	case TypeHora:
		pai, err := parseTile(w.Pai)
		if err != nil {
			return Event{}, err
		}
		ura, err := parseTiles(w.UraMarkers)
		if err != nil {
			return Event{}, err
		}
		h := &Hora{Actor: w.Actor, Target: w.Target, Pai: pai, UraMarkers: ura}
		if w.Deltas != nil {
			h.Deltas = *w.Deltas
			h.HasDeltas = true
		}
		ev.Hora = h

	case TypeRyukyoku:
		ry := &Ryukyoku{Tenpais: w.Tenpais}
		if w.Deltas != nil {
			ry.Deltas = *w.Deltas
			ry.HasDeltas = true
		}
		if w.CanAct != nil {
			ry.CanAct = *w.CanAct
			ry.HasCanAct = true
		}
		ev.Ryukyoku = ry

	case TypeEndKyoku, TypeEndGame:
		// no payload carries state the engine needs to reconstruct

	default:
		return Event{}, fmt.Errorf("%w: unknown type %q", ErrMalformedEvent, w.Type)
	}

	return ev, nil
}
