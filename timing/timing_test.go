package timing

import (
	"math"
	"testing"

	"github.com/jsphweid/chartdex/model"
	"github.com/stretchr/testify/assert"
)

func newTimeline(t *testing.T, resolution float64, bpms ...model.Bpm) *Timeline {
	tl, err := NewTimeline(bpms, resolution)
	if err != nil {
		t.Fatal(err)
	}
	return tl
}

func TestAssignsCumulativeTimes(t *testing.T) {
	tl := newTimeline(t, 192,
		model.Bpm{Tick: 0, Value: 120},
		model.Bpm{Tick: 768, Value: 240},
		model.Bpm{Tick: 960, Value: 60},
	)

	assert := assert.New(t)
	times := []float64{}
	for _, b := range tl.Bpms() {
		times = append(times, b.AssignedTime)
	}
	assert.Equal([]float64{0, 2, 2.25}, times)
}

func TestTickToTime(t *testing.T) {
	tl := newTimeline(t, 192,
		model.Bpm{Tick: 0, Value: 120},
		model.Bpm{Tick: 768, Value: 240},
		model.Bpm{Tick: 960, Value: 60},
	)

	cases := map[model.Tick]float64{
		0:    0,
		96:   0.25,
		192:  0.5,
		767:  2 - 0.5/192,
		768:  2,
		864:  2.125,
		960:  2.25,
		1152: 3.25,
	}
	for tick, want := range cases {
		assert.InDelta(t, want, tl.TickToTime(tick), 1e-9, "tick %d", tick)
	}
}

func TestTimeToTick(t *testing.T) {
	tl := newTimeline(t, 192,
		model.Bpm{Tick: 0, Value: 120},
		model.Bpm{Tick: 768, Value: 240},
	)

	assert := assert.New(t)
	assert.Equal(model.Tick(0), tl.TimeToTick(0))
	assert.Equal(model.Tick(384), tl.TimeToTick(1))
	assert.Equal(model.Tick(768), tl.TimeToTick(2))
	assert.Equal(model.Tick(960), tl.TimeToTick(2.25))
	// nearest tick
	assert.Equal(model.Tick(1), tl.TimeToTick(0.0035))
	assert.Equal(model.Tick(0), tl.TimeToTick(-3))
}

func TestTimeToTickClampsHugeTimes(t *testing.T) {
	tl := newTimeline(t, 192, model.Bpm{Tick: 0, Value: 120})

	assert := assert.New(t)
	assert.Equal(model.Tick(math.MaxUint32), tl.TimeToTick(1e17))
	assert.Equal(model.Tick(math.MaxUint32), tl.TimeToTick(1e30))
	assert.Equal(model.Tick(math.MaxUint32), tl.TimeToTick(math.Inf(1)))
	assert.Equal(model.Tick(0), tl.TimeToTick(math.Inf(-1)))
	assert.Equal(model.Tick(0), tl.TimeToTick(math.NaN()))
}

func TestLastBpmOnATickWins(t *testing.T) {
	tl := newTimeline(t, 192,
		model.Bpm{Tick: 0, Value: 120},
		model.Bpm{Tick: 384, Value: 60},
		model.Bpm{Tick: 384, Value: 240},
	)

	assert := assert.New(t)
	assert.InDelta(1.25, tl.TickToTime(576), 1e-9)
	assert.Equal(model.Tick(576), tl.TimeToTick(1.25))
}

func TestRoundTripWithinOneTick(t *testing.T) {
	tl := newTimeline(t, 480,
		model.Bpm{Tick: 0, Value: 133.333},
		model.Bpm{Tick: 1900, Value: 97.5},
		model.Bpm{Tick: 1900, Value: 201.002},
		model.Bpm{Tick: 7777, Value: 45.125},
		model.Bpm{Tick: 12000, Value: 300},
	)

	for tick := model.Tick(0); tick < 20000; tick += 13 {
		back := tl.TimeToTick(tl.TickToTime(tick))
		if math.Abs(float64(back)-float64(tick)) > 1 {
			t.Fatalf("tick %d came back as %d", tick, back)
		}
	}
}

func TestTimeIsMonotonic(t *testing.T) {
	tl := newTimeline(t, 192,
		model.Bpm{Tick: 0, Value: 180},
		model.Bpm{Tick: 500, Value: 70.5},
		model.Bpm{Tick: 501, Value: 999},
		model.Bpm{Tick: 4000, Value: 1},
	)

	prev := tl.TickToTime(0)
	for tick := model.Tick(1); tick < 6000; tick++ {
		cur := tl.TickToTime(tick)
		if cur < prev {
			t.Fatalf("time went backwards at tick %d", tick)
		}
		prev = cur
	}
}

func TestRejectsUnusableTimelines(t *testing.T) {
	cases := map[string]struct {
		resolution float64
		bpms       []model.Bpm
	}{
		"zero resolution": {0, []model.Bpm{{Tick: 0, Value: 120}}},
		"no bpms":         {192, nil},
		"zero bpm":        {192, []model.Bpm{{Tick: 0, Value: 0}}},
		"negative bpm":    {192, []model.Bpm{{Tick: 0, Value: 120}, {Tick: 5, Value: -1}}},
		"unsorted":        {192, []model.Bpm{{Tick: 10, Value: 120}, {Tick: 5, Value: 120}}},
	}

	for name, c := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := NewTimeline(c.bpms, c.resolution)
			assert.Error(t, err)
		})
	}
}

func TestTimeEvents(t *testing.T) {
	tl := newTimeline(t, 192, model.Bpm{Tick: 0, Value: 120})
	events := []model.TimeSignature{
		{Tick: 0, Numerator: 4, Denominator: 4},
		{Tick: 768, Numerator: 3, Denominator: 4},
	}
	timed := TimeEvents(tl, events)

	assert := assert.New(t)
	assert.Equal([]model.Timed[model.TimeSignature]{
		{Event: events[0], AssignedTime: 0},
		{Event: events[1], AssignedTime: 2},
	}, timed)
}

func TestFindLast(t *testing.T) {
	events := []model.TimeSignature{
		{Tick: 0, Numerator: 4, Denominator: 4},
		{Tick: 768, Numerator: 3, Denominator: 4},
		{Tick: 1344, Numerator: 7, Denominator: 8},
	}

	assert := assert.New(t)
	ts, ok := FindLast(767, events)
	assert.True(ok)
	assert.Equal(4, ts.Numerator)
	ts, _ = FindLast(768, events)
	assert.Equal(3, ts.Numerator)
	ts, _ = FindLast(5000, events)
	assert.Equal(7, ts.Numerator)
	_, ok = FindLast(5, events[1:])
	assert.False(ok)
}
