package section

import (
	"regexp"
	"strings"

	"github.com/pkg/errors"
)

const (
	SongTitle      = "Song"
	SyncTrackTitle = "SyncTrack"
	EventsTitle    = "Events"
)

// header, opening brace, at least one line, closing brace
const minSectionSpan = 3

var titleRegex = regexp.MustCompile(`^\[(.+)\]$`)

type Section struct {
	Title string
	Lines []string
}

type Sections []Section

func (s Sections) Get(title string) (Section, bool) {
	for _, sec := range s {
		if sec.Title == title {
			return sec, true
		}
	}
	return Section{}, false
}

// Without returns a copy of s minus the named sections.
func (s Sections) Without(titles ...string) Sections {
	var res Sections
SectionLoop:
	for _, sec := range s {
		for _, t := range titles {
			if sec.Title == t {
				continue SectionLoop
			}
		}
		res = append(res, sec)
	}
	return res
}

func (s Sections) Titles() []string {
	res := make([]string, 0, len(s))
	for _, sec := range s {
		res = append(res, sec.Title)
	}
	return res
}

// Split cuts raw chart text into sections. Lines are trimmed and blank lines
// dropped before sections are located. A section body is everything between
// its braces; sections too short to hold a line are ignored. A repeated title
// replaces the earlier body but keeps its position.
func Split(raw string) Sections {
	var lines []string
	for _, l := range strings.Split(raw, "\n") {
		l = strings.TrimSpace(l)
		if l != "" {
			lines = append(lines, l)
		}
	}

	var headers []int
	for i, l := range lines {
		if titleRegex.MatchString(l) {
			headers = append(headers, i)
		}
	}

	var res Sections
	positions := make(map[string]int)
	for i, start := range headers {
		end := len(lines)
		if i+1 < len(headers) {
			end = headers[i+1]
		}
		if end-start <= minSectionSpan {
			continue
		}

		title := titleRegex.FindStringSubmatch(lines[start])[1]
		body := make([]string, end-1-(start+2))
		copy(body, lines[start+2:end-1])
		sec := Section{Title: title, Lines: body}

		if pos, ok := positions[title]; ok {
			res[pos] = sec
			continue
		}
		positions[title] = len(res)
		res = append(res, sec)
	}
	return res
}

func RequireSections(s Sections, titles ...string) error {
	for _, t := range titles {
		if _, ok := s.Get(t); !ok {
			return errors.Errorf("missing [%s] section in chart", t)
		}
	}
	return nil
}
