package synctrack

import (
	"testing"

	"github.com/jsphweid/chartdex/diag"
	"github.com/jsphweid/chartdex/model"
	"github.com/jsphweid/chartdex/section"
	"github.com/stretchr/testify/assert"
)

func TestParsesBpmsAndTimeSignatures(t *testing.T) {
	var c diag.Collector
	lines := []string{"768 = B 140500", "0 = TS 4", "0 = B 120000", "1536 = TS 6 3"}
	s, err := Parse(lines, &c)

	assert := assert.New(t)
	assert.NoError(err)
	assert.Equal([]model.Bpm{{Tick: 0, Value: 120}, {Tick: 768, Value: 140.5}}, s.Bpms)
	assert.Equal([]model.TimeSignature{
		{Tick: 0, Numerator: 4, Denominator: 4},
		{Tick: 1536, Numerator: 6, Denominator: 8},
	}, s.TimeSignatures)
	assert.Equal([]model.SyncEvent{
		model.TimeSignature{Tick: 0, Numerator: 4, Denominator: 4},
		model.Bpm{Tick: 0, Value: 120},
		model.Bpm{Tick: 768, Value: 140.5},
		model.TimeSignature{Tick: 1536, Numerator: 6, Denominator: 8},
	}, s.AllEvents)
	assert.Equal(0, c.Len())
}

func TestSynthesizesDefaultsAtTickZero(t *testing.T) {
	var c diag.Collector
	s, err := Parse([]string{"192 = B 90000", "384 = TS 3"}, &c)

	assert := assert.New(t)
	assert.NoError(err)
	assert.Equal([]model.Bpm{{Tick: 0, Value: 120}, {Tick: 192, Value: 90}}, s.Bpms)
	assert.Equal([]model.TimeSignature{
		{Tick: 0, Numerator: 4, Denominator: 4},
		{Tick: 384, Numerator: 3, Denominator: 4},
	}, s.TimeSignatures)
	assert.Equal(model.TimeSignature{Tick: 0, Numerator: 4, Denominator: 4}, s.AllEvents[0])
	assert.Equal(model.Bpm{Tick: 0, Value: 120}, s.AllEvents[1])
	assert.Len(s.AllEvents, 4)
}

func TestSkipsBadEventsWithDiagnostics(t *testing.T) {
	var c diag.Collector
	lines := []string{
		"0 = B 120000",
		"0 = TS 4",
		"96 = B fast",
		"96 = B 0",
		"96 = B -5000",
		"192 = TS 4 2 1",
		"192 = TS 0",
		"192 = TS 4 -1",
		"288 = A 500000",
	}
	s, err := Parse(lines, &c)

	assert := assert.New(t)
	assert.NoError(err)
	assert.Len(s.Bpms, 1)
	assert.Len(s.TimeSignatures, 1)
	assert.Equal(7, c.Len())
	assert.Equal("288 = A 500000", c.List()[6].Line)
}

func TestUnclassifiableEventIsFatal(t *testing.T) {
	var c diag.Collector
	_, err := Parse([]string{"0 = B 120000", "192 = B"}, &c)
	assert.EqualError(t, err, "failed to parse sync track event 'B'")
}

func TestParseEventDenominatorIsPowerOfTwo(t *testing.T) {
	cases := map[string]int{
		"TS 7":   4,
		"TS 7 0": 1,
		"TS 7 1": 2,
		"TS 7 3": 8,
		"TS 7 4": 16,
	}

	for rest, denominator := range cases {
		t.Run(rest, func(t *testing.T) {
			var c diag.Collector
			event, err := ParseEvent(section.TickLine{Tick: 10, Rest: rest}, &c)
			assert := assert.New(t)
			assert.NoError(err)
			assert.Equal(model.TimeSignature{Tick: 10, Numerator: 7, Denominator: denominator}, event)
		})
	}
}

func TestParseEventWithBlankArguments(t *testing.T) {
	var c diag.Collector
	event, err := ParseEvent(section.TickLine{Tick: 0, Rest: "TS  ", Raw: "0 = TS  "}, &c)

	assert := assert.New(t)
	assert.NoError(err)
	assert.Nil(event)
	assert.Equal(1, c.Len())
	assert.Equal("invalid TS", c.List()[0].Message)
}
