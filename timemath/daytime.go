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

// Package timemath implements exact nanosecond
// arithmetic on a (day, nanosecond-of-day) pair
// so that the full range of representable instants
// and durations is covered without overflowing
// 64-bit integers.
package timemath

import (
	"math/big"

	"github.com/SnellerInc/tempo/ints"
	"github.com/SnellerInc/tempo/terr"
)

const (
	NanosPerMicrosecond int64 = 1000
	NanosPerMillisecond int64 = 1000 * NanosPerMicrosecond
	NanosPerSecond      int64 = 1000 * NanosPerMillisecond
	NanosPerMinute      int64 = 60 * NanosPerSecond
	NanosPerHour        int64 = 60 * NanosPerMinute
	NanosPerDay         int64 = 24 * NanosPerHour // 86400000000000

	// MaxEpochDays is the number of days on either
	// side of the Unix epoch that an instant may lie.
	MaxEpochDays int64 = 100_000_000
)

// DayTimeNano is a signed count of nanoseconds split
// into whole days and a nanosecond-of-day component.
// Nanos is always within [0, NanosPerDay), so negative
// quantities carry a negative Days component.
//
// The zero value represents zero nanoseconds.
type DayTimeNano struct {
	Days  int64
	Nanos int64
}

var (
	bigNanosPerDay = big.NewInt(NanosPerDay)

	// maxTime is the largest magnitude of a
	// time duration: 2**53 seconds less one nanosecond.
	maxTime DayTimeNano
)

func init() {
	n := new(big.Int).Lsh(big.NewInt(1), 53)
	n.Mul(n, big.NewInt(NanosPerSecond))
	n.Sub(n, big.NewInt(1))
	maxTime, _ = FromBig(n)
}

// New returns the normalized sum of days and nanos.
func New(days, nanos int64) DayTimeNano {
	days, nanos = ints.Norm(days, nanos, NanosPerDay)
	return DayTimeNano{Days: days, Nanos: nanos}
}

// FromNanos returns n nanoseconds.
func FromNanos(n int64) DayTimeNano {
	return New(0, n)
}

// FromDays returns n whole days.
func FromDays(n int64) DayTimeNano {
	return DayTimeNano{Days: n}
}

// FromUnits returns n units of unitNanos nanoseconds.
// unitNanos must either divide NanosPerDay evenly
// or be a whole multiple of it.
func FromUnits(n, unitNanos int64) DayTimeNano {
	if unitNanos >= NanosPerDay {
		return DayTimeNano{Days: n * (unitNanos / NanosPerDay)}
	}
	per := NanosPerDay / unitNanos
	q, r := ints.DivMod(n, per)
	return DayTimeNano{Days: q, Nanos: r * unitNanos}
}

// FromBig converts n to a DayTimeNano.
// The returned bool is false if the day
// count does not fit in an int64.
func FromBig(n *big.Int) (DayTimeNano, bool) {
	q, r := new(big.Int).DivMod(n, bigNanosPerDay, new(big.Int))
	if !q.IsInt64() {
		return DayTimeNano{}, false
	}
	return DayTimeNano{Days: q.Int64(), Nanos: r.Int64()}, true
}

// Big returns a as a big.Int count of nanoseconds.
func (a DayTimeNano) Big() *big.Int {
	n := big.NewInt(a.Days)
	n.Mul(n, bigNanosPerDay)
	return n.Add(n, big.NewInt(a.Nanos))
}

// Add returns a+b.
func (a DayTimeNano) Add(b DayTimeNano) DayTimeNano {
	return New(a.Days+b.Days, a.Nanos+b.Nanos)
}

// AddNanos returns a+n.
func (a DayTimeNano) AddNanos(n int64) DayTimeNano {
	return a.Add(FromNanos(n))
}

// Sub returns a-b.
func (a DayTimeNano) Sub(b DayTimeNano) DayTimeNano {
	return a.Add(b.Neg())
}

// Neg returns -a.
func (a DayTimeNano) Neg() DayTimeNano {
	if a.Nanos == 0 {
		return DayTimeNano{Days: -a.Days}
	}
	return DayTimeNano{Days: -a.Days - 1, Nanos: NanosPerDay - a.Nanos}
}

// Abs returns |a|.
func (a DayTimeNano) Abs() DayTimeNano {
	if a.Days < 0 {
		return a.Neg()
	}
	return a
}

// Sign returns -1, 0, or +1.
func (a DayTimeNano) Sign() int {
	if a.Days < 0 {
		return -1
	}
	if a.Days == 0 && a.Nanos == 0 {
		return 0
	}
	return 1
}

// IsZero returns whether a is zero.
func (a DayTimeNano) IsZero() bool {
	return a == DayTimeNano{}
}

// Cmp compares a and b and returns -1, 0, or +1.
func (a DayTimeNano) Cmp(b DayTimeNano) int {
	switch {
	case a.Days < b.Days:
		return -1
	case a.Days > b.Days:
		return 1
	case a.Nanos < b.Nanos:
		return -1
	case a.Nanos > b.Nanos:
		return 1
	}
	return 0
}

// Compare is Cmp as a function.
func Compare(a, b DayTimeNano) int { return a.Cmp(b) }

// TruncDays returns the number of whole days
// in a, rounded towards zero, and the signed
// remainder.
func (a DayTimeNano) TruncDays() (int64, DayTimeNano) {
	if a.Days < 0 && a.Nanos != 0 {
		return a.Days + 1, DayTimeNano{Days: -1, Nanos: a.Nanos}
	}
	return a.Days, DayTimeNano{Nanos: a.Nanos}
}

// Int64 returns a as a count of nanoseconds
// if it fits in an int64.
func (a DayTimeNano) Int64() (int64, bool) {
	n := a.Big()
	if !n.IsInt64() {
		return 0, false
	}
	return n.Int64(), true
}

// Float64 returns the nearest float64 to a.
func (a DayTimeNano) Float64() float64 {
	f, _ := new(big.Float).SetInt(a.Big()).Float64()
	return f
}

// Ratio returns a/b as the nearest float64.
// b must not be zero.
func (a DayTimeNano) Ratio(b DayTimeNano) float64 {
	f, _ := new(big.Rat).SetFrac(a.Big(), b.Big()).Float64()
	return f
}

// In returns a as a (possibly fractional) number
// of units of unitNanos nanoseconds.
func (a DayTimeNano) In(unitNanos int64) float64 {
	f, _ := new(big.Rat).SetFrac(a.Big(), big.NewInt(unitNanos)).Float64()
	return f
}

// Split returns a broken into a whole number of
// units of unitNanos, rounded towards zero, and
// the remainder in nanoseconds, which has the sign
// of a. The quotient must fit in an int64.
func (a DayTimeNano) Split(unitNanos int64) (int64, int64, bool) {
	q, r := new(big.Int).QuoRem(a.Big(), big.NewInt(unitNanos), new(big.Int))
	if !q.IsInt64() {
		return 0, 0, false
	}
	return q.Int64(), r.Int64(), true
}

func (a DayTimeNano) String() string {
	return a.Big().String() + "ns"
}

// CheckEpoch returns an error if a is not
// within MaxEpochDays of the epoch.
func CheckEpoch(a DayTimeNano) error {
	if !InEpochRange(a) {
		return terr.Rangef("epoch nanoseconds %s outside of the representable range", a)
	}
	return nil
}

// InEpochRange returns whether a is within
// MaxEpochDays (inclusive) of the epoch.
func InEpochRange(a DayTimeNano) bool {
	if a.Days < -MaxEpochDays || a.Days > MaxEpochDays {
		return false
	}
	return a.Days != MaxEpochDays || a.Nanos == 0
}

// MaxTime returns the largest magnitude of
// a time duration.
func MaxTime() DayTimeNano { return maxTime }

// CheckTime returns an error if the magnitude
// of a exceeds MaxTime.
func CheckTime(a DayTimeNano) error {
	if a.Abs().Cmp(maxTime) > 0 {
		return terr.Rangef("time duration %s exceeds 2**53 seconds", a)
	}
	return nil
}
