package model

import "github.com/jsphweid/chartdex/diag"

var Difficulties = []string{"Easy", "Medium", "Hard", "Expert"}

// Instruments that share the five-fret lane layout.
var Instruments = []string{"Single", "DoubleGuitar", "DoubleBass", "DoubleRhythm", "Keyboard"}

func TrackKey(difficulty string, instrument string) string {
	return difficulty + instrument
}

type SongMetadata struct {
	Resolution   float64  `json:"resolution"`
	Name         string   `json:"name,omitempty"`
	Artist       string   `json:"artist,omitempty"`
	Album        string   `json:"album,omitempty"`
	Charter      string   `json:"charter,omitempty"`
	Player2      string   `json:"player2,omitempty"`
	Genre        string   `json:"genre,omitempty"`
	MediaType    string   `json:"mediaType,omitempty"`
	Year         string   `json:"year,omitempty"`
	Offset       *float64 `json:"offset,omitempty"`
	Difficulty   *float64 `json:"difficulty,omitempty"`
	PreviewStart *float64 `json:"previewstart,omitempty"`
	PreviewEnd   *float64 `json:"previewend,omitempty"`

	// every other key, lowercased
	Extra map[string]string `json:"extra,omitempty"`
}

type SyncTrack struct {
	Bpms           []Bpm
	TimeSignatures []TimeSignature
	AllEvents      []SyncEvent
}

type TimedSyncTrack struct {
	Bpms           []Timed[Bpm]           `json:"bpms"`
	TimeSignatures []Timed[TimeSignature] `json:"timeSignatures"`
	AllEvents      []Timed[SyncEvent]     `json:"allEvents"`
}

type ParsedChart struct {
	Song      SongMetadata                  `json:"song"`
	SyncTrack TimedSyncTrack                `json:"syncTrack"`
	Events    []Timed[SimpleEvent]          `json:"events,omitempty"`
	Tracks    map[string][]Timed[PlayEvent] `json:"tracks"`

	Diagnostics diag.List `json:"diagnostics,omitempty"`
}

// Track returns the events of one {difficulty}{instrument} section in tick order.
func (c *ParsedChart) Track(difficulty string, instrument string) ([]Timed[PlayEvent], bool) {
	events, ok := c.Tracks[TrackKey(difficulty, instrument)]
	return events, ok
}

// Notes filters a track down to its playable notes.
func Notes(events []Timed[PlayEvent]) []Timed[NoteEvent] {
	var res []Timed[NoteEvent]
	for _, e := range events {
		if n, ok := e.Event.(NoteEvent); ok {
			res = append(res, Timed[NoteEvent]{Event: n, AssignedTime: e.AssignedTime})
		}
	}
	return res
}
