// Package diag collects recoverable parse problems. Parsing packages record
// into a Collector instead of logging; callers decide what to do with them.
package diag

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

type Diagnostic struct {
	Section string `json:"section,omitempty"`
	Line    string `json:"line,omitempty"`
	Message string `json:"message"`
}

func (d Diagnostic) String() string {
	switch {
	case d.Section != "" && d.Line != "":
		return fmt.Sprintf("[%s] %s: '%s'", d.Section, d.Message, d.Line)
	case d.Section != "":
		return fmt.Sprintf("[%s] %s", d.Section, d.Message)
	default:
		return d.Message
	}
}

type List []Diagnostic

// Log writes every diagnostic as a warning with section and line fields.
func (l List) Log(logger logrus.FieldLogger) {
	for _, d := range l {
		entry := logger.WithField("section", d.Section)
		if d.Line != "" {
			entry = entry.WithField("line", d.Line)
		}
		entry.Warn(d.Message)
	}
}

// Collector is not safe for concurrent use. Each parse owns its own.
type Collector struct {
	list List
}

func (c *Collector) Warnf(section string, line string, format string, args ...any) {
	c.list = append(c.list, Diagnostic{
		Section: section,
		Line:    line,
		Message: fmt.Sprintf(format, args...),
	})
}

func (c *Collector) Len() int {
	return len(c.list)
}

// List returns a copy of everything recorded so far.
func (c *Collector) List() List {
	res := make(List, len(c.list))
	copy(res, c.list)
	return res
}
