package collect

import (
	"regexp"
	"sort"
	"strconv"
)

// agePattern pulls the first age number out of an event title, e.g.
// "Age 5" or "age 12-14". It matches anywhere in the title, so
// "Stage 5 of Age 12" reads as age 12; fine for the life-stage titles
// it exists for, not a general chronology parser.
var agePattern = regexp.MustCompile(`(?i)age\s*(\d+)`)

func ageNumber(title string) (int, bool) {
	m := agePattern.FindStringSubmatch(title)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return n, true
}

// SortEventsByAge orders events chronologically in place. Events whose
// titles carry an age number sort numerically and ahead of unlabeled
// ones; among unlabeled events an explicit sequenceOrder decides when
// both sides define it. The sort is stable, so events it has no
// opinion about keep their position order.
func SortEventsByAge(events []EventEntry) {
	sort.SliceStable(events, func(i, j int) bool {
		a, aOK := ageNumber(events[i].Node.DisplayName())
		b, bOK := ageNumber(events[j].Node.DisplayName())
		switch {
		case aOK && bOK:
			return a < b
		case aOK:
			return true
		case bOK:
			return false
		}
		if events[i].Node.SequenceOrder != nil && events[j].Node.SequenceOrder != nil {
			return *events[i].Node.SequenceOrder < *events[j].Node.SequenceOrder
		}
		return false
	})
}
