package synctrack

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/jsphweid/chartdex/constants"
	"github.com/jsphweid/chartdex/diag"
	"github.com/jsphweid/chartdex/model"
	"github.com/jsphweid/chartdex/section"
	"github.com/pkg/errors"
)

// code followed by at least one argument
var eventRegex = regexp.MustCompile(`^([A-Za-z]+)\s+(.+)$`)

// largest exponent whose power of two still fits an int32 denominator
const maxDenominatorExponent = 30

// ParseEvent classifies one sync track tick line. A nil event with a nil error
// means the line was recognized but skipped; the reason is in c. Text that is
// not shaped like an event at all is an error.
func ParseEvent(tl section.TickLine, c *diag.Collector) (model.SyncEvent, error) {
	res := eventRegex.FindStringSubmatch(tl.Rest)
	if len(res) != 3 {
		return nil, errors.Errorf("failed to parse sync track event '%s'", tl.Rest)
	}
	code, args := res[1], strings.TrimSpace(res[2])

	switch code {
	case "B":
		raw, err := strconv.ParseInt(args, 10, 64)
		if err != nil {
			c.Warnf(section.SyncTrackTitle, tl.Raw, "invalid BPM")
			return nil, nil
		}
		if raw <= 0 {
			c.Warnf(section.SyncTrackTitle, tl.Raw, "BPM must be positive")
			return nil, nil
		}
		return model.Bpm{Tick: tl.Tick, Value: float64(raw) / 1000}, nil
	case "TS":
		fields := strings.Fields(args)
		if len(fields) == 0 || len(fields) > 2 {
			c.Warnf(section.SyncTrackTitle, tl.Raw, "invalid TS")
			return nil, nil
		}
		numerator, err := strconv.Atoi(fields[0])
		if err != nil || numerator <= 0 {
			c.Warnf(section.SyncTrackTitle, tl.Raw, "invalid TS")
			return nil, nil
		}
		exponent := constants.DefaultDenominatorExponent
		if len(fields) == 2 {
			exponent, err = strconv.Atoi(fields[1])
			if err != nil || exponent < 0 || exponent > maxDenominatorExponent {
				c.Warnf(section.SyncTrackTitle, tl.Raw, "invalid TS")
				return nil, nil
			}
		}
		return model.TimeSignature{
			Tick:        tl.Tick,
			Numerator:   numerator,
			Denominator: 1 << exponent,
		}, nil
	default:
		c.Warnf(section.SyncTrackTitle, tl.Raw, "unknown sync track event")
		return nil, nil
	}
}

// Parse reads the [SyncTrack] section. The result always has a BPM and a time
// signature at tick 0; missing ones get the defaults.
func Parse(lines []string, c *diag.Collector) (model.SyncTrack, error) {
	var res model.SyncTrack
	for _, tl := range section.ParseTickLines(section.SyncTrackTitle, lines, c) {
		event, err := ParseEvent(tl, c)
		if err != nil {
			return res, err
		}
		if event == nil {
			continue
		}

		res.AllEvents = append(res.AllEvents, event)
		switch e := event.(type) {
		case model.Bpm:
			res.Bpms = append(res.Bpms, e)
		case model.TimeSignature:
			res.TimeSignatures = append(res.TimeSignatures, e)
		}
	}

	if !hasTickZero(res.Bpms) {
		base := model.Bpm{Tick: 0, Value: constants.DefaultBpm}
		res.Bpms = append([]model.Bpm{base}, res.Bpms...)
		res.AllEvents = append([]model.SyncEvent{base}, res.AllEvents...)
	}
	if !hasTickZero(res.TimeSignatures) {
		base := model.TimeSignature{
			Tick:        0,
			Numerator:   constants.DefaultNumerator,
			Denominator: constants.DefaultDenominator,
		}
		res.TimeSignatures = append([]model.TimeSignature{base}, res.TimeSignatures...)
		res.AllEvents = append([]model.SyncEvent{base}, res.AllEvents...)
	}
	return res, nil
}

func hasTickZero[E model.Event](events []E) bool {
	for _, e := range events {
		if e.EventTick() == 0 {
			return true
		}
	}
	return false
}
