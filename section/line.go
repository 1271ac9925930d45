package section

import (
	"regexp"
	"sort"
	"strconv"

	"github.com/jsphweid/chartdex/diag"
	"github.com/jsphweid/chartdex/model"
)

// Splits on the first " = "; values such as `E "a = b"` keep their own equals signs.
var commonLineRegex = regexp.MustCompile(`^(.+?)\s+=\s+(.+)$`)

type TickLine struct {
	Tick model.Tick
	Rest string
	Raw  string
}

func ParseCommonLine(line string) (key string, value string, ok bool) {
	res := commonLineRegex.FindStringSubmatch(line)
	if len(res) != 3 {
		return "", "", false
	}
	return res[1], res[2], true
}

func ParseTickLine(line string) (TickLine, bool) {
	key, value, ok := ParseCommonLine(line)
	if !ok {
		return TickLine{}, false
	}
	tick, err := strconv.ParseUint(key, 10, 32)
	if err != nil {
		return TickLine{}, false
	}
	return TickLine{Tick: model.Tick(tick), Rest: value, Raw: line}, true
}

// ParseTickLines parses every line of a section, records a diagnostic for each
// one that is not a tick line and returns the rest sorted by tick. Lines on the
// same tick keep their order.
func ParseTickLines(title string, lines []string, c *diag.Collector) []TickLine {
	var res []TickLine
	for _, l := range lines {
		tl, ok := ParseTickLine(l)
		if !ok {
			c.Warnf(title, l, "invalid entry")
			continue
		}
		res = append(res, tl)
	}
	sort.SliceStable(res, func(i, j int) bool {
		return res[i].Tick < res[j].Tick
	})
	return res
}
