// Package chart turns chart text into a ParsedChart: every section parsed and
// every event stamped with its playback time.
package chart

import (
	"io"
	"math"

	"github.com/jsphweid/chartdex/diag"
	"github.com/jsphweid/chartdex/model"
	"github.com/jsphweid/chartdex/section"
	"github.com/jsphweid/chartdex/song"
	"github.com/jsphweid/chartdex/synctrack"
	"github.com/jsphweid/chartdex/timing"
	"github.com/jsphweid/chartdex/track"
	"github.com/pkg/errors"
)

// Parse only fails when the chart cannot be interpreted at all. Anything
// smaller is recorded in the result's Diagnostics.
func Parse(raw string) (*model.ParsedChart, error) {
	var c diag.Collector

	sections := section.Split(raw)
	if err := section.RequireSections(sections, section.SongTitle, section.SyncTrackTitle); err != nil {
		return nil, err
	}

	songSection, _ := sections.Get(section.SongTitle)
	meta, err := song.Parse(songSection.Lines, &c)
	if err != nil {
		return nil, err
	}

	syncSection, _ := sections.Get(section.SyncTrackTitle)
	sync, err := synctrack.Parse(syncSection.Lines, &c)
	if err != nil {
		return nil, errors.Wrap(err, "invalid [SyncTrack] section")
	}

	tl, err := timing.NewTimeline(sync.Bpms, meta.Resolution)
	if err != nil {
		return nil, errors.Wrap(err, "could not build timeline")
	}

	res := &model.ParsedChart{
		Song: meta,
		SyncTrack: model.TimedSyncTrack{
			Bpms:           tl.Bpms(),
			TimeSignatures: timing.TimeEvents(tl, sync.TimeSignatures),
			AllEvents:      timing.TimeEvents(tl, sync.AllEvents),
		},
		Tracks: make(map[string][]model.Timed[model.PlayEvent]),
	}

	for _, sec := range sections.Without(section.SongTitle, section.SyncTrackTitle) {
		if sec.Title == section.EventsTitle {
			res.Events = track.ParseEvents(sec.Title, sec.Lines, tl, &c)
			continue
		}
		parse, ok := track.Lookup(sec.Title)
		if !ok {
			c.Warnf(sec.Title, "", "unsupported chart section")
			continue
		}
		res.Tracks[sec.Title] = parse(sec.Title, sec.Lines, tl, &c)
	}

	res.Diagnostics = c.List()
	return res, nil
}

func ParseReader(r io.Reader) (*model.ParsedChart, error) {
	dat, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "could not read chart")
	}
	return Parse(string(dat))
}

// Timeline rebuilds the tick/time mapping of a parsed chart so callers can
// run their own conversions.
func Timeline(c *model.ParsedChart) (*timing.Timeline, error) {
	bpms := make([]model.Bpm, 0, len(c.SyncTrack.Bpms))
	for _, b := range c.SyncTrack.Bpms {
		bpms = append(bpms, b.Event)
	}
	return timing.NewTimeline(bpms, c.Song.Resolution)
}

// Length is the time of the last event in the chart, sustains excluded.
func Length(c *model.ParsedChart) float64 {
	var res float64
	for _, e := range c.SyncTrack.AllEvents {
		res = math.Max(res, e.AssignedTime)
	}
	for _, e := range c.Events {
		res = math.Max(res, e.AssignedTime)
	}
	for _, events := range c.Tracks {
		if len(events) > 0 {
			res = math.Max(res, events[len(events)-1].AssignedTime)
		}
	}
	return res
}
