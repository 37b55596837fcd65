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
	"github.com/SnellerInc/tempo/date"
	"github.com/SnellerInc/tempo/iso8601"
	"github.com/SnellerInc/tempo/terr"
	"github.com/SnellerInc/tempo/timemath"
)

// OffsetOption selects how an explicit UTC offset
// is reconciled with the time zone when both are
// given for a wall-clock time.
type OffsetOption uint8

const (
	// OffsetUnset selects the caller's default.
	OffsetUnset OffsetOption = iota
	// OffsetUse always uses the offset.
	OffsetUse
	// OffsetIgnore always uses the time zone.
	OffsetIgnore
	// OffsetPrefer uses the offset if it is valid
	// for the time zone, and the time zone otherwise.
	OffsetPrefer
	// OffsetReject fails unless the offset
	// is valid for the time zone.
	OffsetReject
)

var offsetOptionNames = [...]string{"", "use", "ignore", "prefer", "reject"}

func (o OffsetOption) String() string { return offsetOptionNames[o] }

// ParseOffsetOption parses an offset option name.
func ParseOffsetOption(s string) (OffsetOption, bool) {
	for i, name := range offsetOptionNames[1:] {
		if s == name {
			return OffsetOption(i + 1), true
		}
	}
	return OffsetUnset, false
}

// Or returns o, or def if o is unset.
func (o OffsetOption) Or(def OffsetOption) OffsetOption {
	if o == OffsetUnset {
		return def
	}
	return o
}

// OffsetHint describes the offset information
// that accompanied a wall-clock time.
type OffsetHint struct {
	// Kind is Wall if there was no offset, Exact
	// for the Z designator, and Numeric otherwise.
	Kind OffsetKind
	// Nanos is the numeric offset.
	Nanos int64
	// MatchMinutes allows the offset to match a
	// zone offset that rounds to the same minute,
	// for offsets written without seconds.
	MatchMinutes bool
}

// OffsetKind is the kind of an OffsetHint.
type OffsetKind uint8

const (
	Wall OffsetKind = iota
	Exact
	Numeric
)

// HintFrom returns the OffsetHint for a parsed string.
func HintFrom(r *iso8601.Result) OffsetHint {
	switch {
	case r.UTC:
		return OffsetHint{Kind: Exact}
	case r.HasOffset:
		return OffsetHint{Kind: Numeric, Nanos: r.Offset, MatchMinutes: !r.OffsetExact}
	}
	return OffsetHint{Kind: Wall}
}

// Resolve returns the instant for the wall-clock time
// dt in tz, given the offset hint h, the offset
// option opt, and the disambiguation dis that applies
// when the offset is not used.
func Resolve(tz TimeZone, dt date.DateTime, h OffsetHint, dis Disambiguation, opt OffsetOption) (timemath.DayTimeNano, error) {
	if h.Kind == Wall || h.Kind == Numeric && opt == OffsetIgnore {
		return InstantFor(tz, dt, dis)
	}
	if h.Kind == Exact || opt == OffsetUse {
		if err := date.CheckDateTime(dt); err != nil {
			return timemath.DayTimeNano{}, err
		}
		ns := dt.EpochNanoseconds().AddNanos(-h.Nanos)
		return ns, timemath.CheckEpoch(ns)
	}
	possible, err := PossibleInstants(tz, dt)
	if err != nil {
		return timemath.DayTimeNano{}, err
	}
	for _, cand := range possible {
		off := tz.OffsetNanosecondsFor(cand)
		if off == h.Nanos || h.MatchMinutes && iso8601.RoundOffset(off) == h.Nanos {
			return cand, nil
		}
	}
	if opt == OffsetReject {
		return timemath.DayTimeNano{}, terr.Rangef("offset %s is invalid for %s in time zone %s",
			iso8601.FormatOffset(h.Nanos), dt, tz.ID())
	}
	return Disambiguate(tz, dt, possible, dis)
}
