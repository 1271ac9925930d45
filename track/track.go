package track

import (
	"regexp"
	"strconv"

	"github.com/jsphweid/chartdex/chord"
	"github.com/jsphweid/chartdex/diag"
	"github.com/jsphweid/chartdex/model"
	"github.com/jsphweid/chartdex/section"
	"github.com/jsphweid/chartdex/song"
	"github.com/jsphweid/chartdex/timing"
)

var (
	noteEventRegex      = regexp.MustCompile(`^N\s+(\d+)\s+(\d+)`)
	starPowerEventRegex = regexp.MustCompile(`^S\s+2\s+(\d+)`)
	simpleEventRegex    = regexp.MustCompile(`^E\s+(.+)`)
)

type lineParser func(tl section.TickLine) (model.PlayEvent, bool)

// tried in order, first match wins
var playEventParsers = []lineParser{
	ParseNoteEvent,
	ParseStarPowerEvent,
	ParseSimpleEvent,
}

// ParseNoteEvent leaves every flag unset; they are resolved per tick later.
func ParseNoteEvent(tl section.TickLine) (model.PlayEvent, bool) {
	match := noteEventRegex.FindStringSubmatch(tl.Rest)
	if len(match) != 3 {
		return nil, false
	}
	lane, err := strconv.ParseUint(match[1], 10, 8)
	if err != nil || lane >= model.NumLanes {
		return nil, false
	}
	duration, err := strconv.ParseUint(match[2], 10, 32)
	if err != nil {
		return nil, false
	}
	return model.NoteEvent{Tick: tl.Tick, Note: model.Lane(lane), Duration: uint32(duration)}, true
}

func ParseStarPowerEvent(tl section.TickLine) (model.PlayEvent, bool) {
	match := starPowerEventRegex.FindStringSubmatch(tl.Rest)
	if len(match) != 2 {
		return nil, false
	}
	duration, err := strconv.ParseUint(match[1], 10, 32)
	if err != nil || duration == 0 {
		return nil, false
	}
	return model.StarPowerEvent{Tick: tl.Tick, Duration: uint32(duration)}, true
}

func ParseSimpleEvent(tl section.TickLine) (model.PlayEvent, bool) {
	match := simpleEventRegex.FindStringSubmatch(tl.Rest)
	if len(match) != 2 {
		return nil, false
	}
	return model.SimpleEvent{Tick: tl.Tick, Value: song.StripQuotes(match[1])}, true
}

// ParseInstrument reads one {Difficulty}{Instrument} section. Notes are
// grouped per tick into chords and modifiers, HOPOs are resolved over the
// whole track, then everything is timed.
func ParseInstrument(title string, lines []string, tl *timing.Timeline, c *diag.Collector) []model.Timed[model.PlayEvent] {
	tickLines := section.ParseTickLines(title, lines, c)

	var result []model.PlayEvent
	var state chord.State
	if len(tickLines) > 0 {
		state.PendingTick = tickLines[0].Tick
	}
	emit := func(notes []model.NoteEvent) {
		for _, n := range notes {
			result = append(result, n)
		}
	}

	for _, line := range tickLines {
		committed, next := chord.Advance(state, line.Tick)
		emit(committed)
		state = next

		event, ok := parsePlayEvent(line)
		if !ok {
			c.Warnf(title, line.Raw, "invalid entry")
			continue
		}
		switch e := event.(type) {
		case model.NoteEvent:
			state = chord.Push(state, e)
		case model.StarPowerEvent, model.SimpleEvent:
			result = append(result, e)
		}
	}
	committed, _ := chord.Commit(state)
	emit(committed)

	return timing.TimeEvents(tl, resolveHOPOs(result, tl.Resolution()))
}

func parsePlayEvent(line section.TickLine) (model.PlayEvent, bool) {
	for _, parse := range playEventParsers {
		if event, ok := parse(line); ok {
			return event, true
		}
	}
	return nil, false
}

func resolveHOPOs(events []model.PlayEvent, resolution float64) []model.PlayEvent {
	var idx []int
	var notes []model.NoteEvent
	for i, e := range events {
		if n, ok := e.(model.NoteEvent); ok {
			idx = append(idx, i)
			notes = append(notes, n)
		}
	}

	res := make([]model.PlayEvent, len(events))
	copy(res, events)
	for i, n := range chord.ResolveHOPO(notes, resolution) {
		res[idx[i]] = n
	}
	return res
}

// ParseEvents reads the [Events] section, which only holds simple events.
func ParseEvents(title string, lines []string, tl *timing.Timeline, c *diag.Collector) []model.Timed[model.SimpleEvent] {
	var result []model.SimpleEvent
	for _, line := range section.ParseTickLines(title, lines, c) {
		event, ok := ParseSimpleEvent(line)
		if !ok {
			c.Warnf(title, line.Raw, "invalid entry")
			continue
		}
		result = append(result, event.(model.SimpleEvent))
	}
	return timing.TimeEvents(tl, result)
}
