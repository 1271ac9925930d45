package chord

import (
	"github.com/jsphweid/chartdex/constants"
	"github.com/jsphweid/chartdex/model"
)

type Modifiers struct {
	Forced bool
	Tap    bool
}

// State buffers the notes of one tick until the tick is over, since a note's
// chord and modifier flags depend on everything else on its tick.
type State struct {
	PendingTick model.Tick
	Notes       []model.NoteEvent
	Modifiers   Modifiers
}

func (s State) Empty() bool {
	return len(s.Notes) == 0 && s.Modifiers == Modifiers{}
}

// Push adds a note on the pending tick. The forced and tap lanes only set
// modifiers.
func Push(s State, n model.NoteEvent) State {
	switch n.Note {
	case model.LaneForced:
		s.Modifiers.Forced = true
	case model.LaneTap:
		s.Modifiers.Tap = true
	default:
		notes := make([]model.NoteEvent, len(s.Notes), len(s.Notes)+1)
		copy(notes, s.Notes)
		s.Notes = append(notes, n)
	}
	return s
}

// Commit finalizes the buffered notes and returns an empty state on the same
// tick. Tap suppresses forced.
func Commit(s State) ([]model.NoteEvent, State) {
	playable := 0
	for _, n := range s.Notes {
		if n.Note != model.LaneOpen {
			playable += 1
		}
	}
	isChord := playable > 1

	var res []model.NoteEvent
	for _, n := range s.Notes {
		n.IsChord = isChord
		n.Forced = s.Modifiers.Forced && !s.Modifiers.Tap
		n.Tap = s.Modifiers.Tap
		res = append(res, n)
	}
	return res, State{PendingTick: s.PendingTick}
}

// Advance commits the buffer when tick moves off the pending tick.
func Advance(s State, tick model.Tick) ([]model.NoteEvent, State) {
	if tick == s.PendingTick {
		return nil, s
	}
	committed, next := Commit(s)
	next.PendingTick = tick
	return committed, next
}

func HopoThreshold(resolution float64) float64 {
	return constants.HopoThresholdNumerator / constants.HopoThresholdDenominator * resolution
}

// ResolveHOPO sets IsHOPO on notes sorted by tick. Taps never are; chords only
// when forced. A single note is a natural HOPO when another lane was last seen
// within the threshold before it, and forcing flips that.
func ResolveHOPO(notes []model.NoteEvent, resolution float64) []model.NoteEvent {
	threshold := HopoThreshold(resolution)
	var lastSeen [model.NumLanes]int64
	for i := range lastSeen {
		lastSeen[i] = -1
	}

	res := make([]model.NoteEvent, len(notes))
	for i, n := range notes {
		n.IsHOPO = false
		if !n.Tap {
			if n.IsChord {
				n.IsHOPO = n.Forced
			} else {
				candidate := false
				for lane, tick := range lastSeen {
					if lane != int(n.Note) && tick >= 0 && float64(n.Tick)-threshold <= float64(tick) {
						candidate = true
						break
					}
				}
				n.IsHOPO = candidate != n.Forced
			}
		}
		if int(n.Note) < model.NumLanes {
			lastSeen[n.Note] = int64(n.Tick)
		}
		res[i] = n
	}
	return res
}
