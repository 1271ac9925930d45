package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tidwall/gjson"
)

func TestTimedFlattensEvent(t *testing.T) {
	cases := []struct {
		event Event
		json  string
	}{
		{Bpm{Tick: 0, Value: 120}, `{"tick":0,"bpm":120,"type":"bpm","assignedTime":0}`},
		{TimeSignature{Tick: 768, Numerator: 3, Denominator: 4}, `{"tick":768,"numerator":3,"denominator":4,"type":"ts","assignedTime":2}`},
		{StarPowerEvent{Tick: 96, Duration: 192}, `{"tick":96,"duration":192,"type":"starpower","assignedTime":0.25}`},
		{SimpleEvent{Tick: 96, Value: "section Intro"}, `{"tick":96,"value":"section Intro","type":"event","assignedTime":0.25}`},
	}

	for _, c := range cases {
		t.Run(string(c.event.Kind()), func(t *testing.T) {
			var assigned float64
			switch c.event.EventTick() {
			case 96:
				assigned = 0.25
			case 768:
				assigned = 2
			}
			dat, err := json.Marshal(Timed[Event]{Event: c.event, AssignedTime: assigned})
			assert.NoError(t, err)
			assert.JSONEq(t, c.json, string(dat))
		})
	}
}

func TestTimedNoteJSON(t *testing.T) {
	note := NoteEvent{Tick: 192, Note: LaneOpen, IsHOPO: true, Tap: true}
	dat, err := json.Marshal([]Timed[PlayEvent]{{Event: note, AssignedTime: 0.5}})
	if err != nil {
		t.Fatal(err)
	}

	assert := assert.New(t)
	res := gjson.ParseBytes(dat)
	assert.Equal("note", res.Get("0.type").String())
	assert.Equal(int64(7), res.Get("0.note").Int())
	assert.True(res.Get("0.isHOPO").Bool())
	assert.False(res.Get("0.isChord").Bool())
	assert.True(res.Get("0.tap").Bool())
	assert.Equal(0.5, res.Get("0.assignedTime").Float())
}

func TestNotesAndTrack(t *testing.T) {
	events := []Timed[PlayEvent]{
		{Event: StarPowerEvent{Tick: 0, Duration: 10}},
		{Event: NoteEvent{Tick: 0, Note: LaneRed}, AssignedTime: 0},
		{Event: SimpleEvent{Tick: 5, Value: "solo"}},
		{Event: NoteEvent{Tick: 96, Note: LaneGreen}, AssignedTime: 0.25},
	}
	c := &ParsedChart{Tracks: map[string][]Timed[PlayEvent]{"HardDoubleBass": events}}

	assert := assert.New(t)
	track, ok := c.Track("Hard", "DoubleBass")
	assert.True(ok)
	notes := Notes(track)
	assert.Len(notes, 2)
	assert.Equal(LaneGreen, notes[1].Event.Note)
	assert.Equal(0.25, notes[1].AssignedTime)

	_, ok = c.Track("Expert", "DoubleBass")
	assert.False(ok)
}
