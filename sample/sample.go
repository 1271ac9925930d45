package sample

import (
	"sort"

	"github.com/jsphweid/chartdex/model"
	"github.com/jsphweid/chartdex/util"
)

// Window returns the events whose time lies within [start, end]. events must
// be in tick order, which makes them time ordered too. The result shares
// memory with events.
func Window[T model.Event](events []model.Timed[T], start float64, end float64) []model.Timed[T] {
	if end < start {
		return nil
	}
	lo := sort.Search(len(events), func(i int) bool {
		return events[i].AssignedTime >= start
	})
	hi := sort.Search(len(events), func(i int) bool {
		return events[i].AssignedTime > end
	})
	return events[lo:hi]
}

// First returns up to n events starting at the first one at or after tick.
func First[T model.Event](events []model.Timed[T], tick model.Tick, n int) []model.Timed[T] {
	lo := sort.Search(len(events), func(i int) bool {
		return events[i].Event.EventTick() >= tick
	})
	hi := util.Min(lo+util.Max(n, 0), len(events))
	return events[lo:hi]
}
