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

type fixedZone struct {
	id     string
	offset int64
}

// Fixed returns a zone with the constant UTC offset
// ns, which must be less than a day in magnitude.
func Fixed(ns int64) (TimeZone, error) {
	if !iso8601.ValidOffset(ns) {
		return nil, terr.Rangef("offset %d ns out of range", ns)
	}
	return &fixedZone{id: iso8601.FormatOffset(ns), offset: ns}, nil
}

func (z *fixedZone) ID() string { return z.id }

func (z *fixedZone) OffsetNanosecondsFor(timemath.DayTimeNano) int64 { return z.offset }

func (z *fixedZone) PossibleInstantsFor(dt date.DateTime) []timemath.DayTimeNano {
	return []timemath.DayTimeNano{dt.EpochNanoseconds().AddNanos(-z.offset)}
}

func (z *fixedZone) Transition(timemath.DayTimeNano, Direction) (timemath.DayTimeNano, bool) {
	return timemath.DayTimeNano{}, false
}
