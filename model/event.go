package model

import (
	"encoding/json"

	"github.com/tidwall/sjson"
)

type Tick = uint32
type Lane = uint8

const (
	LaneGreen Lane = iota
	LaneRed
	LaneYellow
	LaneBlue
	LaneOrange
	LaneForced // modifier, never emitted as a playable note
	LaneTap    // modifier, never emitted as a playable note
	LaneOpen

	NumLanes = 8
)

type Kind string

const (
	KindBpm           Kind = "bpm"
	KindTimeSignature Kind = "ts"
	KindNote          Kind = "note"
	KindStarPower     Kind = "starpower"
	KindEvent         Kind = "event"
)

// Event is anything positioned on the tick axis.
type Event interface {
	EventTick() Tick
	Kind() Kind
}

// SyncEvent is either a Bpm or a TimeSignature.
type SyncEvent interface {
	Event
	syncEvent()
}

// PlayEvent is either a NoteEvent, a StarPowerEvent or a SimpleEvent.
type PlayEvent interface {
	Event
	playEvent()
}

type Bpm struct {
	Tick  Tick    `json:"tick"`
	Value float64 `json:"bpm"`
}

type TimeSignature struct {
	Tick        Tick `json:"tick"`
	Numerator   int  `json:"numerator"`
	Denominator int  `json:"denominator"`
}

type SimpleEvent struct {
	Tick  Tick   `json:"tick"`
	Value string `json:"value"`
}

type StarPowerEvent struct {
	Tick     Tick   `json:"tick"`
	Duration uint32 `json:"duration"`
}

type NoteEvent struct {
	Tick     Tick   `json:"tick"`
	Note     Lane   `json:"note"`
	Duration uint32 `json:"duration"`
	IsHOPO   bool   `json:"isHOPO"`
	IsChord  bool   `json:"isChord"`
	Forced   bool   `json:"forced"`
	Tap      bool   `json:"tap"`
}

func (e Bpm) EventTick() Tick            { return e.Tick }
func (e TimeSignature) EventTick() Tick  { return e.Tick }
func (e SimpleEvent) EventTick() Tick    { return e.Tick }
func (e StarPowerEvent) EventTick() Tick { return e.Tick }
func (e NoteEvent) EventTick() Tick      { return e.Tick }

func (Bpm) Kind() Kind            { return KindBpm }
func (TimeSignature) Kind() Kind  { return KindTimeSignature }
func (SimpleEvent) Kind() Kind    { return KindEvent }
func (StarPowerEvent) Kind() Kind { return KindStarPower }
func (NoteEvent) Kind() Kind      { return KindNote }

func (Bpm) syncEvent()           {}
func (TimeSignature) syncEvent() {}

func (SimpleEvent) playEvent()    {}
func (StarPowerEvent) playEvent() {}
func (NoteEvent) playEvent()      {}

// Timed is an event with its playback position in seconds.
type Timed[T Event] struct {
	Event        T
	AssignedTime float64
}

func (t Timed[T]) EventTick() Tick { return t.Event.EventTick() }

// MarshalJSON flattens the event fields and adds "type" and "assignedTime".
func (t Timed[T]) MarshalJSON() ([]byte, error) {
	raw, err := json.Marshal(t.Event)
	if err != nil {
		return nil, err
	}
	raw, err = sjson.SetBytes(raw, "type", string(t.Event.Kind()))
	if err != nil {
		return nil, err
	}
	return sjson.SetBytes(raw, "assignedTime", t.AssignedTime)
}
