// Package format renders a resolved moment as the fixed list of items shown
// to the user.
package format

import (
	"strconv"

	"github.com/ncruces/go-strftime"

	"github.com/c2nes/alfred-time/internal/resolve"
)

// Item is one selectable result. Arg is what the host receives when the item
// is chosen: an int64 for the timestamp item, the title otherwise.
type Item struct {
	UID      int
	Title    string
	Subtitle string
	Arg      any
}

// patterns are applied after the timestamp item, in order.
var patterns = []string{
	"%Y-%m-%d %H:%M:%S",     // 1937-01-01 12:00:27
	"%d %b %Y %H:%M:%S",     // 19 May 2002 15:21:36
	"%a, %d %b %Y %H:%M:%S", // Sun, 19 May 2002 15:21:36
	"%Y-%m-%dT%H:%M:%S",     // 1937-01-01T12:00:27
	"%Y-%m-%dT%H:%M:%S%z",   // 1996-12-19T16:39:57-0800
}

// Millis returns the moment's Unix time in whole seconds, scaled to
// milliseconds. Sub-second precision is dropped.
func Millis(m resolve.Moment) int64 {
	return m.Time().Unix() * 1000
}

// Items renders m. The result always has len(patterns)+1 entries with UIDs
// matching their position.
func Items(m resolve.Moment) []Item {
	items := make([]Item, 0, len(patterns)+1)

	ms := Millis(m)
	items = append(items, Item{
		UID:      0,
		Title:    strconv.FormatInt(ms, 10),
		Subtitle: m.ZoneName() + " Timestamp",
		Arg:      ms,
	})

	t := m.Time()
	for _, p := range patterns {
		s := strftime.Format(p, t)
		items = append(items, Item{
			UID:   len(items),
			Title: s,
			Arg:   s,
		})
	}
	return items
}
