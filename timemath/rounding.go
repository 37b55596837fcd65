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

package timemath

import (
	"fmt"
	"math/big"
)

// RoundingMode selects how a value lying between two
// multiples of a rounding increment is resolved.
//
// The zero value is "unset"; operations substitute
// their own default for it.
type RoundingMode uint8

const (
	_ RoundingMode = iota
	// Ceil rounds towards positive infinity.
	Ceil
	// Floor rounds towards negative infinity.
	Floor
	// Expand rounds away from zero.
	Expand
	// Trunc rounds towards zero.
	Trunc
	// HalfCeil rounds to nearest, ties towards positive infinity.
	HalfCeil
	// HalfFloor rounds to nearest, ties towards negative infinity.
	HalfFloor
	// HalfExpand rounds to nearest, ties away from zero.
	HalfExpand
	// HalfTrunc rounds to nearest, ties towards zero.
	HalfTrunc
	// HalfEven rounds to nearest, ties towards the even multiple.
	HalfEven
)

var modeNames = [...]string{
	Ceil:       "ceil",
	Floor:      "floor",
	Expand:     "expand",
	Trunc:      "trunc",
	HalfCeil:   "halfCeil",
	HalfFloor:  "halfFloor",
	HalfExpand: "halfExpand",
	HalfTrunc:  "halfTrunc",
	HalfEven:   "halfEven",
}

func (m RoundingMode) String() string {
	if m == 0 || int(m) >= len(modeNames) {
		return fmt.Sprintf("RoundingMode(%d)", m)
	}
	return modeNames[m]
}

// ParseRoundingMode returns the mode named s
// ("ceil", "halfEven", ...).
func ParseRoundingMode(s string) (RoundingMode, bool) {
	for i := range modeNames {
		if i != 0 && modeNames[i] == s {
			return RoundingMode(i), true
		}
	}
	return 0, false
}

// Or returns m, or def if m is unset.
func (m RoundingMode) Or(def RoundingMode) RoundingMode {
	if m == 0 {
		return def
	}
	return m
}

// Negate returns the mode that produces mirrored
// results when applied to the negated value:
// floor and ceil trade places, as do halfFloor
// and halfCeil. All other modes are symmetric.
func (m RoundingMode) Negate() RoundingMode {
	switch m {
	case Ceil:
		return Floor
	case Floor:
		return Ceil
	case HalfCeil:
		return HalfFloor
	case HalfFloor:
		return HalfCeil
	}
	return m
}

// Away reports whether a value that lies strictly
// between two adjacent multiples of an increment
// rounds to the multiple farther from zero.
//
// neg is whether the value is negative, half is the
// comparison of the distance from the nearer-to-zero
// multiple with half of the increment (-1, 0, +1),
// and odd is whether that nearer-to-zero multiple is
// an odd number of increments.
func (m RoundingMode) Away(neg bool, half int, odd bool) bool {
	switch m {
	case Ceil:
		return !neg
	case Floor:
		return neg
	case Expand:
		return true
	case Trunc:
		return false
	}
	if half != 0 {
		return half > 0
	}
	switch m {
	case HalfCeil:
		return !neg
	case HalfFloor:
		return neg
	case HalfExpand:
		return true
	case HalfTrunc:
		return false
	case HalfEven:
		return odd
	}
	panic("timemath: rounding mode not set")
}

var bigOne = big.NewInt(1)

// RoundQuo returns n/d rounded to an integer with
// the given mode. d must be positive.
func RoundQuo(n, d *big.Int, mode RoundingMode) *big.Int {
	q, r := new(big.Int).QuoRem(n, d, new(big.Int))
	if r.Sign() == 0 {
		return q
	}
	twice := new(big.Int).Abs(r)
	twice.Lsh(twice, 1)
	neg := n.Sign() < 0
	if mode.Away(neg, twice.Cmp(d), q.Bit(0) == 1) {
		if neg {
			q.Sub(q, bigOne)
		} else {
			q.Add(q, bigOne)
		}
	}
	return q
}

// RoundTo rounds a to a multiple of increment,
// which must be positive. ok is false if the result
// overflows the day component.
func (a DayTimeNano) RoundTo(increment DayTimeNano, mode RoundingMode) (DayTimeNano, bool) {
	inc := increment.Big()
	q := RoundQuo(a.Big(), inc, mode)
	return FromBig(q.Mul(q, inc))
}

// RoundInt rounds n to a multiple of increment,
// which must be positive.
func RoundInt(n, increment int64, mode RoundingMode) int64 {
	q := RoundQuo(big.NewInt(n), big.NewInt(increment), mode)
	return q.Int64() * increment
}
