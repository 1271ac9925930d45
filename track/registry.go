package track

import (
	"github.com/jsphweid/chartdex/diag"
	"github.com/jsphweid/chartdex/model"
	"github.com/jsphweid/chartdex/timing"
)

type Parser func(title string, lines []string, tl *timing.Timeline, c *diag.Collector) []model.Timed[model.PlayEvent]

var instrumentParsers = make(map[string]Parser)

func init() {
	for _, instrument := range model.Instruments {
		for _, difficulty := range model.Difficulties {
			instrumentParsers[model.TrackKey(difficulty, instrument)] = ParseInstrument
		}
	}
}

// Lookup returns the parser for an instrument section title.
func Lookup(title string) (Parser, bool) {
	p, ok := instrumentParsers[title]
	return p, ok
}
