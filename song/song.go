package song

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/jsphweid/chartdex/diag"
	"github.com/jsphweid/chartdex/model"
	"github.com/jsphweid/chartdex/section"
	"github.com/pkg/errors"
)

var ErrMissingResolution = errors.New("invalid [Song] section - missing 'resolution'")

var quotedStringRegex = regexp.MustCompile(`^"|"$`)

var numericKeys = map[string]bool{
	"resolution":   true,
	"offset":       true,
	"difficulty":   true,
	"previewstart": true,
	"previewend":   true,
}

func StripQuotes(s string) string {
	return quotedStringRegex.ReplaceAllString(s, "")
}

// Parse reads the [Song] section. Keys are case insensitive. A numeric key
// whose value does not parse is dropped on its own; only a missing (or
// unusable) resolution fails the whole section.
func Parse(lines []string, c *diag.Collector) (model.SongMetadata, error) {
	var res model.SongMetadata
	numbers := make(map[string]float64)

	for _, l := range lines {
		key, value, ok := section.ParseCommonLine(l)
		if !ok {
			c.Warnf(section.SongTitle, l, "invalid entry")
			continue
		}
		key = strings.ToLower(key)
		value = StripQuotes(value)

		if numericKeys[key] {
			num, err := strconv.ParseFloat(value, 64)
			if err != nil || math.IsInf(num, 0) || math.IsNaN(num) {
				c.Warnf(section.SongTitle, l, "invalid numerical entry")
				continue
			}
			if key == "resolution" && num <= 0 {
				c.Warnf(section.SongTitle, l, "resolution must be positive")
				continue
			}
			numbers[key] = num
			continue
		}

		assign(&res, key, value)
	}

	resolution, ok := numbers["resolution"]
	if !ok {
		return res, ErrMissingResolution
	}
	res.Resolution = resolution
	res.Offset = optional(numbers, "offset")
	res.Difficulty = optional(numbers, "difficulty")
	res.PreviewStart = optional(numbers, "previewstart")
	res.PreviewEnd = optional(numbers, "previewend")
	return res, nil
}

func assign(s *model.SongMetadata, key string, value string) {
	switch key {
	case "name":
		s.Name = value
	case "artist":
		s.Artist = value
	case "album":
		s.Album = value
	case "charter":
		s.Charter = value
	case "player2":
		s.Player2 = value
	case "genre":
		s.Genre = value
	case "mediatype":
		s.MediaType = value
	case "year":
		s.Year = value
	default:
		if s.Extra == nil {
			s.Extra = make(map[string]string)
		}
		s.Extra[key] = value
	}
}

func optional(m map[string]float64, key string) *float64 {
	v, ok := m[key]
	if !ok {
		return nil
	}
	return &v
}
