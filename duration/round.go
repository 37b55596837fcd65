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

package duration

import (
	"github.com/SnellerInc/tempo/terr"
	"github.com/SnellerInc/tempo/timemath"
)

// MaxRoundingIncrement is the largest increment
// accepted for units without a natural bound.
const MaxRoundingIncrement = 1_000_000_000

// CheckIncrement validates a rounding increment
// against an upper bound max. If inclusive is false,
// the increment must be strictly less than max; in
// either case max must be an exact multiple of it.
// A max of zero means the increment is unbounded.
func CheckIncrement(increment, max int64, inclusive bool) error {
	if increment < 1 || increment > MaxRoundingIncrement {
		return terr.Rangef("rounding increment %d out of range", increment)
	}
	if max == 0 {
		return nil
	}
	limit := max
	if !inclusive {
		limit--
	}
	if increment > limit {
		return terr.Rangef("rounding increment %d out of range", increment)
	}
	if max%increment != 0 {
		return terr.Rangef("rounding increment %d does not divide %d", increment, max)
	}
	return nil
}

// RoundTime rounds the exact time quantity t to a
// multiple of increment units.
func RoundTime(t timemath.DayTimeNano, increment int64, unit Unit, mode timemath.RoundingMode) (timemath.DayTimeNano, error) {
	step := timemath.FromUnits(increment, unit.Nanos())
	r, ok := t.RoundTo(step, mode)
	if !ok {
		return timemath.DayTimeNano{}, terr.Rangef("rounded duration out of range")
	}
	if err := timemath.CheckTime(r); err != nil {
		return timemath.DayTimeNano{}, err
	}
	return r, nil
}

// TotalTime returns t as a fractional number of units.
func TotalTime(t timemath.DayTimeNano, unit Unit) float64 {
	return t.In(unit.Nanos())
}
