package midi

import (
	"bytes"
	"math"
	"os"
	"sort"
	"strings"

	"github.com/jsphweid/chartdex/model"
	"github.com/pkg/errors"
	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

const (
	velocity     = 100
	starPowerKey = 116

	// largest power of two denominator a meter event can hold
	maxMeterDenominator = 128
)

// lowest key per difficulty, lane n sounds at base+n
var difficultyBaseKeys = map[string]uint8{
	"Easy":   60,
	"Medium": 72,
	"Hard":   84,
	"Expert": 96,
}

type timedMessage struct {
	tick uint32
	// note offs and meta events sort before note ons on the same tick
	on  bool
	msg []byte
}

func toTrack(msgs []timedMessage, name string) smf.Track {
	sort.SliceStable(msgs, func(i, j int) bool {
		if msgs[i].tick != msgs[j].tick {
			return msgs[i].tick < msgs[j].tick
		}
		return !msgs[i].on && msgs[j].on
	})

	var tr smf.Track
	tr.Add(0, smf.MetaTrackSequenceName(name))
	var prev uint32
	for _, m := range msgs {
		tr.Add(m.tick-prev, m.msg)
		prev = m.tick
	}
	tr.Close(0)
	return tr
}

func baseKey(trackKey string) (uint8, error) {
	for difficulty, key := range difficultyBaseKeys {
		if strings.HasPrefix(trackKey, difficulty) {
			return key, nil
		}
	}
	return 0, errors.Errorf("no difficulty in track name %s", trackKey)
}

// FromChart renders the tempo map, the [Events] markers and one instrument
// track as a two track SMF. Chart ticks are used as MIDI ticks unchanged.
func FromChart(c *model.ParsedChart, trackKey string) (*smf.SMF, error) {
	events, ok := c.Tracks[trackKey]
	if !ok {
		return nil, errors.Errorf("chart has no [%s] track", trackKey)
	}
	base, err := baseKey(trackKey)
	if err != nil {
		return nil, err
	}
	res := c.Song.Resolution
	if res <= 0 || res > math.MaxUint16 || res != math.Trunc(res) {
		return nil, errors.Errorf("resolution %v does not fit a MIDI time format", res)
	}

	var tempo []timedMessage
	for _, e := range c.SyncTrack.AllEvents {
		switch ev := e.Event.(type) {
		case model.Bpm:
			tempo = append(tempo, timedMessage{tick: ev.Tick, msg: smf.MetaTempo(ev.Value)})
		case model.TimeSignature:
			if ev.Numerator > math.MaxUint8 || ev.Denominator > maxMeterDenominator {
				return nil, errors.Errorf("time signature %d/%d at tick %d does not fit a MIDI meter", ev.Numerator, ev.Denominator, ev.Tick)
			}
			tempo = append(tempo, timedMessage{tick: ev.Tick, msg: smf.MetaMeter(uint8(ev.Numerator), uint8(ev.Denominator))})
		}
	}
	for _, e := range c.Events {
		tempo = append(tempo, timedMessage{tick: e.Event.Tick, msg: smf.MetaMarker(e.Event.Value)})
	}

	var notes []timedMessage
	addNote := func(tick uint32, duration uint32, key uint8) {
		if duration == 0 {
			duration = 1
		}
		notes = append(notes,
			timedMessage{tick: tick, on: true, msg: gomidi.NoteOn(0, key, velocity)},
			timedMessage{tick: tick + duration, msg: gomidi.NoteOff(0, key)},
		)
	}
	for _, e := range events {
		switch ev := e.Event.(type) {
		case model.NoteEvent:
			addNote(ev.Tick, ev.Duration, base+ev.Note)
		case model.StarPowerEvent:
			addNote(ev.Tick, ev.Duration, starPowerKey)
		case model.SimpleEvent:
			notes = append(notes, timedMessage{tick: ev.Tick, msg: smf.MetaText(ev.Value)})
		}
	}

	s := smf.New()
	s.TimeFormat = smf.MetricTicks(uint16(res))
	if err := s.Add(toTrack(tempo, "TEMPO")); err != nil {
		return nil, errors.Wrap(err, "could not add tempo track")
	}
	if err := s.Add(toTrack(notes, trackKey)); err != nil {
		return nil, errors.Wrap(err, "could not add note track")
	}
	return s, nil
}

func WriteMidiFile(path string, s *smf.SMF) error {
	var buf bytes.Buffer
	if _, err := s.WriteTo(&buf); err != nil {
		return errors.Wrap(err, "could not encode midi file")
	}
	return errors.Wrap(os.WriteFile(path, buf.Bytes(), 0644), "could not write midi file")
}

func ReadMidiFile(filepath string) (s *smf.SMF, e error) {
	var blank smf.SMF

	// handle panics
	// https://github.com/gomidi/midi/issues/20
	defer func() {
		if r, ok := recover().(string); ok {
			e = errors.New(r)
		}
	}()

	dat, err := os.ReadFile(filepath)
	if err != nil {
		return &blank, errors.Wrap(err, "error reading midi file")
	}
	return Read(dat)
}

func Read(dat []byte) (*smf.SMF, error) {
	res, err := smf.ReadFrom(bytes.NewReader(dat))
	if err != nil {
		return &smf.SMF{}, errors.Wrap(err, "error parsing midi file")
	}
	return res, nil
}
