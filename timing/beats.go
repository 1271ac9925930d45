package timing

import (
	"math"

	"github.com/jsphweid/chartdex/constants"
	"github.com/jsphweid/chartdex/model"
)

type BeatKind string

const (
	BarLine  BeatKind = "bar"
	EvenBeat BeatKind = "even"
	OddBeat  BeatKind = "odd"
)

type BeatLine struct {
	Tick model.Tick `json:"tick"`
	Time float64    `json:"time"`
	Kind BeatKind   `json:"kind"`
}

// BeatLines lays out grid lines on half beats of the current time signature
// between start and end, inclusive. Bars are counted from the tick of the time
// signature in effect. Lines before the first time signature follow 4/4.
func (t *Timeline) BeatLines(start model.Tick, end model.Tick, timeSignatures []model.TimeSignature) []BeatLine {
	if end < start {
		return nil
	}

	var res []BeatLine
	var current model.TimeSignature
	var haveCurrent bool
	lineIndex := 0
	pos := float64(start)
	for pos <= float64(end) {
		tick := model.Tick(math.Round(pos))
		ts, ok := FindLast(tick, timeSignatures)
		if !ok {
			ts = model.TimeSignature{Numerator: constants.DefaultNumerator, Denominator: constants.DefaultDenominator}
		}
		// meters finer than the tick grid get one line per tick
		step := math.Max(2*t.resolution/float64(ts.Denominator), 1)
		if !haveCurrent || ts != current {
			current = ts
			haveCurrent = true
			lineIndex = int(math.Round(float64(tick-ts.Tick) / step))
		}

		kind := OddBeat
		switch {
		case lineIndex%(2*current.Numerator) == 0:
			kind = BarLine
		case lineIndex%2 == 0:
			kind = EvenBeat
		}
		res = append(res, BeatLine{Tick: tick, Time: t.TickToTime(tick), Kind: kind})

		pos += step
		lineIndex++
	}
	return res
}
