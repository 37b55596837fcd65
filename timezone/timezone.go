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

// Package timezone implements time zone engines,
// which map between exact instants and wall-clock
// date-times, and the policies used to resolve
// wall-clock times that occur zero or two times
// around offset transitions.
package timezone

import (
	"golang.org/x/exp/slices"
	"golang.org/x/text/cases"

	"github.com/SnellerInc/tempo/date"
	"github.com/SnellerInc/tempo/internal/registry"
	"github.com/SnellerInc/tempo/iso8601"
	"github.com/SnellerInc/tempo/terr"
	"github.com/SnellerInc/tempo/timemath"
)

// Direction selects the transition
// searched for by Transition.
type Direction uint8

const (
	Next Direction = iota
	Previous
)

// ParseDirection parses "next" or "previous".
func ParseDirection(s string) (Direction, bool) {
	switch s {
	case "next":
		return Next, true
	case "previous":
		return Previous, true
	}
	return Next, false
}

func (d Direction) String() string {
	if d == Previous {
		return "previous"
	}
	return "next"
}

// TimeZone is the set of operations a time zone
// engine provides. Implementations must be stateless
// and safe for concurrent use.
type TimeZone interface {
	// ID returns the canonical identifier.
	ID() string
	// OffsetNanosecondsFor returns the UTC offset
	// in effect at the instant epochNs.
	OffsetNanosecondsFor(epochNs timemath.DayTimeNano) int64
	// PossibleInstantsFor returns, in ascending order,
	// every instant whose wall-clock time in this zone
	// is dt. It returns none for a time skipped by a
	// transition and two for a repeated time.
	PossibleInstantsFor(dt date.DateTime) []timemath.DayTimeNano
	// Transition returns the first instant strictly
	// after (Next) or before (Previous) epochNs at which
	// the offset changes. It returns false if there
	// is no such instant.
	Transition(epochNs timemath.DayTimeNano, dir Direction) (timemath.DayTimeNano, bool)
}

var oneDay = timemath.FromDays(1)

type offsetter interface {
	OffsetNanosecondsFor(epochNs timemath.DayTimeNano) int64
}

// possibleInstants implements PossibleInstantsFor for
// any zone whose offset changes at most once in any
// two-day window, by trying the offsets in effect one
// day either side of dt.
func possibleInstants(z offsetter, dt date.DateTime) []timemath.DayTimeNano {
	utc := dt.EpochNanoseconds()
	before := z.OffsetNanosecondsFor(utc.Sub(oneDay))
	after := z.OffsetNanosecondsFor(utc.Add(oneDay))
	offsets := []int64{before}
	if after != before {
		offsets = append(offsets, after)
	}
	var out []timemath.DayTimeNano
	for _, off := range offsets {
		cand := utc.AddNanos(-off)
		if z.OffsetNanosecondsFor(cand) == off {
			out = append(out, cand)
		}
	}
	slices.SortFunc(out, timemath.Compare)
	return out
}

// PossibleInstants is TimeZone.PossibleInstantsFor
// with a range check on dt and on each result.
func PossibleInstants(tz TimeZone, dt date.DateTime) ([]timemath.DayTimeNano, error) {
	if err := date.CheckDateTime(dt); err != nil {
		return nil, err
	}
	out := tz.PossibleInstantsFor(dt)
	for _, ns := range out {
		if err := timemath.CheckEpoch(ns); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// Disambiguation selects which instant a wall-clock
// time resolves to when it occurs zero or two times.
type Disambiguation uint8

const (
	// Compatible picks the earlier of two instants,
	// and moves a skipped time forward by the length
	// of the gap.
	Compatible Disambiguation = iota
	// Earlier picks the earlier instant, and moves
	// a skipped time backward.
	Earlier
	// Later picks the later instant, and moves
	// a skipped time forward.
	Later
	// Reject fails unless there is exactly
	// one instant.
	Reject
)

var disambiguationNames = [...]string{"compatible", "earlier", "later", "reject"}

func (d Disambiguation) String() string { return disambiguationNames[d] }

// ParseDisambiguation parses a disambiguation name.
func ParseDisambiguation(s string) (Disambiguation, bool) {
	for i, name := range disambiguationNames {
		if s == name {
			return Disambiguation(i), true
		}
	}
	return Compatible, false
}

// InstantFor resolves the wall-clock time dt in
// tz to exactly one instant according to dis.
func InstantFor(tz TimeZone, dt date.DateTime, dis Disambiguation) (timemath.DayTimeNano, error) {
	possible, err := PossibleInstants(tz, dt)
	if err != nil {
		return timemath.DayTimeNano{}, err
	}
	return Disambiguate(tz, dt, possible, dis)
}

// Disambiguate picks one of the instants in possible,
// the result of PossibleInstantsFor for dt, or the
// instant adjacent to a gap if there are none.
func Disambiguate(tz TimeZone, dt date.DateTime, possible []timemath.DayTimeNano, dis Disambiguation) (timemath.DayTimeNano, error) {
	switch len(possible) {
	case 1:
		return possible[0], nil
	case 2:
		switch dis {
		case Compatible, Earlier:
			return possible[0], nil
		case Later:
			return possible[1], nil
		}
		return timemath.DayTimeNano{}, terr.Rangef("%s is ambiguous in time zone %s", dt, tz.ID())
	}
	if dis == Reject {
		return timemath.DayTimeNano{}, terr.Rangef("%s does not exist in time zone %s", dt, tz.ID())
	}
	utc := dt.EpochNanoseconds()
	before := tz.OffsetNanosecondsFor(utc.Sub(oneDay))
	after := tz.OffsetNanosecondsFor(utc.Add(oneDay))
	gap := timemath.FromNanos(after - before)
	if dis == Earlier {
		shifted, err := PossibleInstants(tz, dt.Add(gap.Neg()))
		if err != nil {
			return timemath.DayTimeNano{}, err
		}
		if len(shifted) == 0 {
			return timemath.DayTimeNano{}, terr.Rangef("cannot resolve %s in time zone %s", dt, tz.ID())
		}
		return shifted[0], nil
	}
	shifted, err := PossibleInstants(tz, dt.Add(gap))
	if err != nil {
		return timemath.DayTimeNano{}, err
	}
	if len(shifted) == 0 {
		return timemath.DayTimeNano{}, terr.Rangef("cannot resolve %s in time zone %s", dt, tz.ID())
	}
	return shifted[len(shifted)-1], nil
}

// DateTimeFor returns the wall-clock time in tz at epochNs.
func DateTimeFor(tz TimeZone, epochNs timemath.DayTimeNano) date.DateTime {
	off := tz.OffsetNanosecondsFor(epochNs)
	return date.FromEpochNanoseconds(epochNs.AddNanos(off))
}

var cache = registry.New[TimeZone]()

func fold(id string) string {
	return cases.Fold().String(id)
}

// Get returns the time zone with the given identifier:
// a UTC offset such as "+05:30", the name of a zone in
// the IANA time zone database, or the identifier of a
// zone added with Register. Offsets must be whole
// minutes. Offsets, "UTC", and
// registered identifiers are matched case-insensitively.
func Get(id string) (TimeZone, error) {
	if iso8601.IsOffset(id) {
		ns, err := iso8601.ParseOffset(id)
		if err != nil {
			return nil, err
		}
		if ns%timemath.NanosPerMinute != 0 {
			return nil, terr.Rangef("time zone %q: offset has sub-minute precision", id)
		}
		return Fixed(ns)
	}
	key := fold(id)
	if key == "utc" {
		return UTC, nil
	}
	if tz, ok := cache.Get(key); ok {
		return tz, nil
	}
	return cache.Load(id, loadIANA)
}

// Register makes tz available through Get.
func Register(tz TimeZone) error {
	id := tz.ID()
	if id == "" || iso8601.IsOffset(id) || fold(id) == "utc" {
		return terr.Rangef("cannot register time zone %q", id)
	}
	cache.Replace(fold(id), tz)
	return nil
}

// Equal returns whether a and b are the same zone.
func Equal(a, b TimeZone) bool {
	return a == b || a.ID() == b.ID()
}
