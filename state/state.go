// Package state reconstructs one seat's view of a riichi mahjong game
// from an ordered mjai event stream. PlayerState holds every field the
// tracked seat can observe; Update applies one event, recomputes the
// derived tables in a fixed order, and returns the legal-action
// bitfield for that seat.
//
// The package is a reconstructor, not a referee: Update never rejects
// an event for being illegal. Legality belongs to the caller (see the
// validate package), which compares each event against the
// ActionCandidate Update returned for the previous one.
package state

import (
	"riichiengine/agari"
	"riichiengine/hand"
	"riichiengine/tile"
)

const (
	maxKawa            = 24
	maxFuuro           = 4
	maxAnkan           = 4
	maxDoraIndicators  = 5
	maxIntermediateKan = 4
	startingTilesLeft  = 70
)

// SeatView is the per-seat public state every seat keeps about every
// other seat (and itself, at index 0), rotated so index 0 is always
// the tracked seat.
type SeatView struct {
	Fuuro          []hand.Meld    // called melds, capacity maxFuuro
	Ankan          []tile.ID      // concealed kans, de-aka'd, capacity maxAnkan
	Kawa           []hand.KawaItem // discard pile, capacity maxKawa
	KawaOverview   []tile.Tile    // discard tiles only, same order as Kawa
	RiichiDeclared bool
	RiichiAccepted bool
	Score          int
	DorasOwned     int
}

// ActionCandidate is the bitfield of actions legal for the tracked
// seat immediately after the most recent Update.
type ActionCandidate struct {
	CanDiscard    bool
	CanChiLow     bool
	CanChiMid     bool
	CanChiHigh    bool
	CanPon        bool
	CanDaiminkan  bool
	CanAnkan      bool
	CanKakan      bool
	CanRiichi     bool
	CanTsumoAgari bool
	CanRonAgari   bool
}

// Any reports whether at least one action is currently legal.
func (c ActionCandidate) Any() bool {
	return c.CanDiscard || c.CanChiLow || c.CanChiMid || c.CanChiHigh ||
		c.CanPon || c.CanDaiminkan || c.CanAnkan || c.CanKakan ||
		c.CanRiichi || c.CanTsumoAgari || c.CanRonAgari
}

// PlayerState is the full reconstructed view for one tracked seat.
type PlayerState struct {
	PlayerID int // absolute seat id (0..3), stable across kyoku

	// Round state.
	Bakaze         tile.ID
	Jikaze         tile.ID
	Kyoku          int
	Honba          int
	Kyotaku        int
	Scores         [4]int // rotated, index 0 = tracked seat
	Oya            int    // relative (0..3)
	IsAllLast      bool
	DoraIndicators []tile.ID
	TilesLeft      int

	// Hand.
	Tehai hand.Counts
	Akas  hand.Akas

	Seats [4]SeatView // relative, index 0 = tracked seat

	// Visibility counters.
	TilesSeen  [tile.NumTiles]int
	DoraFactor [tile.NumTiles]int
	DorasSeen  int

	// Turn state.
	AtTurn             int // relative seat holding the draw
	LastSelfTsumo      tile.Tile
	HasLastSelfTsumo   bool
	LastKawaTile       tile.Tile
	HasLastKawaTile    bool
	IntermediateKan    []tile.ID
	IntermediateChiPon bool
	KansOnBoard        int

	// Tracked-seat-only flags.
	IsMenzen               bool
	CanWRiichi             bool
	IsWRiichi              bool
	AtRinshan              bool
	AtIppatsu              bool
	AtFuriten              bool
	ToMarkSameCycleFuriten bool

	// Derived per-tile tables.
	Waits                [tile.NumTiles]bool
	DiscardedTiles       [tile.NumTiles]bool
	KeepShantenDiscards  [tile.NumTiles]bool
	NextShantenDiscards  [tile.NumTiles]bool
	ForbiddenTiles       [tile.NumTiles]bool

	Shanten int

	LastCans ActionCandidate

	Rules agari.RuleSet

	// chankanOpen/chankanTile/chankanActor implement the single-event
	// chankan window opened by kakan (spec.md §4.3).
	chankanOpen    bool
	chankanTile    tile.ID
	chankanTileAka bool
	chankanActor   int

	// pendingCallTile/pendingCallActor is the discard the very next
	// event may legally call on (chi/pon/daiminkan/ron); it is only
	// valid for the one event immediately following a dahai.
	pendingCall      bool
	pendingCallTile  tile.ID
	pendingCallTileAka bool
	pendingCallActor int

	// ronMissed tracks an offered-but-unclaimed ron so the next event
	// can convert it into temporary or riichi furiten (spec.md §4.5).
	ronMissed      bool
	ronMissedTile  tile.ID
	ronMissedActor int

	hasDiscardedOnce bool // set by the seat's own first discard, where CanWRiichi is also cleared
	ippatsuGraceUsed bool // one self-draw may pass before ippatsu actually breaks

	tempFuritenActive   bool // cleared at the start of self's own next turn
	riichiFuritenLatched bool // permanent once set, cleared only at start_kyoku

	openMeldsCount int // chi+pon+daiminkan+kakan count for self, used as shanten/agari's calledMelds

	pendingRinshanDraw bool // set by a self kan, consumed by the following self tsumo
	awaitingDiscard    bool // self holds 14 tiles and must choose a discard (or win/kan)
}

// New returns a zeroed PlayerState for absolute seat id. Every count is
// zero, every flag false, shanten is 8 (the identity element per
// spec.md §9); start_kyoku performs the real initialization.
func New(playerID int, rules agari.RuleSet) *PlayerState {
	return &PlayerState{
		PlayerID:  playerID,
		TilesLeft: 0,
		Shanten:   8,
		Rules:     rules,
	}
}

// rel converts an absolute seat id to one relative to the tracked seat.
func (s *PlayerState) rel(abs int) int {
	return (abs - s.PlayerID + 4) % 4
}

func resetSeatView(v *SeatView) {
	v.Fuuro = v.Fuuro[:0]
	v.Ankan = v.Ankan[:0]
	v.Kawa = v.Kawa[:0]
	v.KawaOverview = v.KawaOverview[:0]
	v.RiichiDeclared = false
	v.RiichiAccepted = false
	v.DorasOwned = 0
}

func newSeatView() SeatView {
	return SeatView{
		Fuuro:        make([]hand.Meld, 0, maxFuuro),
		Ankan:        make([]tile.ID, 0, maxAnkan),
		Kawa:         make([]hand.KawaItem, 0, maxKawa),
		KawaOverview: make([]tile.Tile, 0, maxKawa),
	}
}
