// Package zone determines the local IANA time zone the workflow anchors to.
package zone

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	_ "time/tzdata"
)

// Zone is a named location. Name is what users see (e.g. in the timestamp
// subtitle), so it is an IANA identifier rather than Go's "Local".
type Zone struct {
	Name     string
	Location *time.Location
}

// UTC is used when nothing better can be determined.
var UTC = Zone{Name: "UTC", Location: time.UTC}

// localtimePath is a variable so tests can point it somewhere else.
var localtimePath = "/etc/localtime"

// Load returns the zone with the given IANA name.
func Load(name string) (Zone, error) {
	loc, err := time.LoadLocation(name)
	if err != nil {
		return Zone{}, fmt.Errorf("unknown timezone %q: %w", name, err)
	}
	return Zone{Name: loc.String(), Location: loc}, nil
}

// Detect resolves the zone from the host environment. An explicit override
// wins, then $TZ, then the target of the /etc/localtime symlink.
func Detect(override string) (Zone, error) {
	if override = strings.TrimSpace(override); override != "" {
		return Load(override)
	}
	if tz, ok := os.LookupEnv("TZ"); ok {
		// POSIX allows a leading colon
		tz = strings.TrimPrefix(tz, ":")
		if tz == "" {
			return UTC, nil
		}
		if z, err := Load(tz); err == nil {
			return z, nil
		}
	}
	if name := nameFromLink(localtimePath); name != "" {
		if z, err := Load(name); err == nil {
			return z, nil
		}
	}
	return UTC, nil
}

// nameFromLink extracts "Area/City" from a symlink such as
// /var/db/timezone/zoneinfo/America/Los_Angeles.
func nameFromLink(path string) string {
	target, err := os.Readlink(path)
	if err != nil {
		return ""
	}
	if !filepath.IsAbs(target) {
		target = filepath.Join(filepath.Dir(path), target)
	}
	target = filepath.ToSlash(filepath.Clean(target))
	const marker = "zoneinfo/"
	idx := strings.LastIndex(target, marker)
	if idx < 0 {
		return ""
	}
	name := target[idx+len(marker):]
	// zoneinfo trees sometimes nest posix/ and right/ variants
	name = strings.TrimPrefix(name, "posix/")
	name = strings.TrimPrefix(name, "right/")
	return name
}
