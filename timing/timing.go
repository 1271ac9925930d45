package timing

import (
	"math"
	"sort"

	"github.com/jsphweid/chartdex/constants"
	"github.com/jsphweid/chartdex/model"
	"github.com/pkg/errors"
)

// Timeline maps ticks to seconds and back for one BPM track.
type Timeline struct {
	resolution float64
	bpms       []model.Timed[model.Bpm]
}

func DisToTime(tickStart int64, tickEnd int64, resolution float64, bpm float64) float64 {
	return (float64(tickEnd-tickStart) / resolution) * constants.SecondsPerMinute / bpm
}

func TimeToDis(timeStart float64, timeEnd float64, resolution float64, bpm float64) float64 {
	return (timeEnd - timeStart) * bpm / constants.SecondsPerMinute * resolution
}

// NewTimeline assigns every BPM event its cumulative time. bpms must be sorted
// by tick and non-empty; the first one governs any tick before it.
func NewTimeline(bpms []model.Bpm, resolution float64) (*Timeline, error) {
	if resolution <= 0 || math.IsNaN(resolution) || math.IsInf(resolution, 0) {
		return nil, errors.Errorf("invalid resolution %v", resolution)
	}
	if len(bpms) == 0 {
		return nil, errors.New("timeline needs at least one BPM")
	}

	timed := make([]model.Timed[model.Bpm], 0, len(bpms))
	var elapsed float64
	prev := bpms[0]
	for _, b := range bpms {
		if b.Value <= 0 || math.IsNaN(b.Value) || math.IsInf(b.Value, 0) {
			return nil, errors.Errorf("invalid BPM %v at tick %d", b.Value, b.Tick)
		}
		if b.Tick < prev.Tick {
			return nil, errors.Errorf("BPM at tick %d is out of order", b.Tick)
		}
		elapsed += DisToTime(int64(prev.Tick), int64(b.Tick), resolution, prev.Value)
		timed = append(timed, model.Timed[model.Bpm]{Event: b, AssignedTime: elapsed})
		prev = b
	}
	return &Timeline{resolution: resolution, bpms: timed}, nil
}

func (t *Timeline) Resolution() float64 {
	return t.resolution
}

// Bpms returns a copy of the timed BPM track.
func (t *Timeline) Bpms() []model.Timed[model.Bpm] {
	res := make([]model.Timed[model.Bpm], len(t.bpms))
	copy(res, t.bpms)
	return res
}

// bpmAt returns the index of the BPM in effect at tick. Among several BPMs on
// the same tick the last one wins.
func (t *Timeline) bpmAt(tick model.Tick) int {
	i := sort.Search(len(t.bpms), func(i int) bool {
		return t.bpms[i].Event.Tick > tick
	}) - 1
	if i < 0 {
		return 0
	}
	return i
}

func (t *Timeline) TickToTime(tick model.Tick) float64 {
	b := t.bpms[t.bpmAt(tick)]
	return b.AssignedTime + DisToTime(int64(b.Event.Tick), int64(tick), t.resolution, b.Event.Value)
}

// TimeToTick rounds to the nearest tick. Times before the chart start clamp to
// tick 0 and times past the last representable tick clamp to it.
func (t *Timeline) TimeToTick(seconds float64) model.Tick {
	i := sort.Search(len(t.bpms), func(i int) bool {
		return t.bpms[i].AssignedTime > seconds
	}) - 1
	if i < 0 {
		i = 0
	}
	b := t.bpms[i]
	tick := math.Round(float64(b.Event.Tick) + TimeToDis(b.AssignedTime, seconds, t.resolution, b.Event.Value))
	switch {
	case math.IsNaN(tick) || tick < 0:
		return 0
	case tick > math.MaxUint32:
		return math.MaxUint32
	}
	return model.Tick(tick)
}

// TimeEvents stamps every event with its playback time. Every section goes
// through here.
func TimeEvents[T model.Event](t *Timeline, events []T) []model.Timed[T] {
	res := make([]model.Timed[T], 0, len(events))
	for _, e := range events {
		res = append(res, model.Timed[T]{Event: e, AssignedTime: t.TickToTime(e.EventTick())})
	}
	return res
}

// FindLast returns the latest event at or before tick. events must be sorted.
func FindLast[T model.Event](tick model.Tick, events []T) (T, bool) {
	i := sort.Search(len(events), func(i int) bool {
		return events[i].EventTick() > tick
	}) - 1
	if i < 0 {
		var zero T
		return zero, false
	}
	return events[i], true
}
