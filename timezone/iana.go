// Copyright 2023 Sneller, Inc.
//
//  Licensed under the Apache License, Version 2.0 (the "License");
//  you may not use this file except in compliance with the License.
//  You may obtain a copy of the License at
//
//    http://www.apache.org/licenses/LICENSE-2.0
//
//  Unless required by applicable law or agreed to in writing, software
//  distributed under the License is distributed on an "AS IS" BASIS,
//  WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
//  See the License for the specific language governing permissions and
//  limitations under the License.

package timezone

import (
	"time"
	// embedded zone database, for hosts without zoneinfo
	_ "time/tzdata"

	"github.com/SnellerInc/tempo/date"
	"github.com/SnellerInc/tempo/terr"
	"github.com/SnellerInc/tempo/timemath"
)

// UTC is the UTC time zone.
var UTC TimeZone = &ianaZone{id: "UTC", loc: time.UTC}

// ianaZone is a zone from the IANA time zone database.
type ianaZone struct {
	id  string
	loc *time.Location
}

func loadIANA(id string) (TimeZone, error) {
	if id == "" || id == "Local" {
		return nil, terr.Rangef("invalid time zone %q", id)
	}
	loc, err := time.LoadLocation(id)
	if err != nil {
		return nil, terr.Rangef("unknown time zone %q", id)
	}
	return &ianaZone{id: id, loc: loc}, nil
}

func toTime(ns timemath.DayTimeNano) time.Time {
	return time.Unix(ns.Days*86400, ns.Nanos).UTC()
}

func fromTime(t time.Time) timemath.DayTimeNano {
	return timemath.FromUnits(t.Unix(), timemath.NanosPerSecond).AddNanos(int64(t.Nanosecond()))
}

func (z *ianaZone) ID() string { return z.id }

func (z *ianaZone) OffsetNanosecondsFor(epochNs timemath.DayTimeNano) int64 {
	_, off := toTime(epochNs).In(z.loc).Zone()
	return int64(off) * timemath.NanosPerSecond
}

func (z *ianaZone) PossibleInstantsFor(dt date.DateTime) []timemath.DayTimeNano {
	return possibleInstants(z, dt)
}

// maxZoneSteps bounds the number of zone periods
// walked while skipping changes that leave the
// offset unchanged (for example, abbreviation changes).
const maxZoneSteps = 1000

func (z *ianaZone) Transition(epochNs timemath.DayTimeNano, dir Direction) (timemath.DayTimeNano, bool) {
	if z.loc == time.UTC {
		return timemath.DayTimeNano{}, false
	}
	t := toTime(epochNs).In(z.loc)
	for i := 0; i < maxZoneSteps; i++ {
		var edge time.Time
		if dir == Next {
			_, edge = t.ZoneBounds()
		} else {
			edge, _ = t.Add(-1).ZoneBounds()
		}
		if edge.IsZero() {
			return timemath.DayTimeNano{}, false
		}
		ns := fromTime(edge)
		if !timemath.InEpochRange(ns) {
			return timemath.DayTimeNano{}, false
		}
		_, after := edge.Zone()
		_, before := edge.Add(-1).Zone()
		if after != before {
			return ns, true
		}
		t = edge
	}
	return timemath.DayTimeNano{}, false
}
