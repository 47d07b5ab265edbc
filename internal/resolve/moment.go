package resolve

import (
	"time"

	"github.com/c2nes/alfred-time/internal/zone"
)

// Moment is an instant pinned to a named zone. The zero Moment is not valid;
// Moments come from Resolve or At.
type Moment struct {
	t    time.Time
	zone string
}

// At pins t to z.
func At(t time.Time, z zone.Zone) Moment {
	return Moment{t: t.In(z.Location), zone: z.Name}
}

// Time returns the instant in the moment's zone.
func (m Moment) Time() time.Time {
	return m.t
}

// ZoneName returns the IANA name of the moment's zone.
func (m Moment) ZoneName() string {
	return m.zone
}

func (m Moment) String() string {
	return m.t.Format(time.RFC3339Nano) + " " + m.zone
}
