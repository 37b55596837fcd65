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
	"math/big"
	"testing"
)

func TestRoundingModes(t *testing.T) {
	// values in tenths, rounded to whole units
	cases := []struct {
		mode RoundingMode
		in   []int64
		want []int64
	}{
		{Ceil, []int64{-15, -5, 5, 15, 16}, []int64{-1, 0, 1, 2, 2}},
		{Floor, []int64{-15, -5, 5, 15, 16}, []int64{-2, -1, 0, 1, 1}},
		{Expand, []int64{-15, -5, 5, 15, 11}, []int64{-2, -1, 1, 2, 2}},
		{Trunc, []int64{-15, -5, 5, 15, 19}, []int64{-1, 0, 0, 1, 1}},
		{HalfCeil, []int64{-15, -5, 5, 15, -16}, []int64{-1, 0, 1, 2, -2}},
		{HalfFloor, []int64{-15, -5, 5, 15, 16}, []int64{-2, -1, 0, 1, 2}},
		{HalfExpand, []int64{-15, -5, 5, 15, 14}, []int64{-2, -1, 1, 2, 1}},
		{HalfTrunc, []int64{-15, -5, 5, 15, 16}, []int64{-1, 0, 0, 1, 2}},
		{HalfEven, []int64{-15, -5, 5, 15, 25}, []int64{-2, 0, 0, 2, 2}},
	}
	for _, c := range cases {
		for i, n := range c.in {
			got := RoundQuo(big.NewInt(n), big.NewInt(10), c.mode).Int64()
			if got != c.want[i] {
				t.Errorf("%s(%d/10) = %d, want %d", c.mode, n, got, c.want[i])
			}
		}
	}
}

// Rounding the negation of a value with the negated
// mode must produce the negation of the rounded value.
func TestNegateSymmetry(t *testing.T) {
	modes := []RoundingMode{Ceil, Floor, Expand, Trunc, HalfCeil, HalfFloor, HalfExpand, HalfTrunc, HalfEven}
	for _, m := range modes {
		for n := int64(-40); n <= 40; n++ {
			a := RoundQuo(big.NewInt(n), big.NewInt(10), m).Int64()
			b := RoundQuo(big.NewInt(-n), big.NewInt(10), m.Negate()).Int64()
			if a != -b {
				t.Fatalf("%s: round(%d/10) = %d but %s(%d/10) = %d", m, n, a, m.Negate(), -n, b)
			}
		}
	}
}

func TestParseRoundingMode(t *testing.T) {
	for _, name := range []string{"ceil", "floor", "expand", "trunc", "halfCeil", "halfFloor", "halfExpand", "halfTrunc", "halfEven"} {
		m, ok := ParseRoundingMode(name)
		if !ok || m.String() != name {
			t.Errorf("ParseRoundingMode(%q) = %v, %v", name, m, ok)
		}
	}
	if _, ok := ParseRoundingMode("HalfEven"); ok {
		t.Error("mode names are case-sensitive")
	}
	if RoundingMode(0).Or(Trunc) != Trunc || Ceil.Or(Trunc) != Ceil {
		t.Error("Or")
	}
}

func TestRoundTo(t *testing.T) {
	a := New(0, 90*NanosPerMinute)
	got, ok := a.RoundTo(FromNanos(NanosPerHour), HalfEven)
	if !ok || got != FromNanos(2*NanosPerHour) {
		t.Errorf("RoundTo = %v", got)
	}
	got, _ = a.Neg().RoundTo(FromNanos(NanosPerHour), HalfExpand)
	if got != FromNanos(-2*NanosPerHour) {
		t.Errorf("RoundTo(neg) = %v", got)
	}
	if RoundInt(17, 5, Floor) != 15 || RoundInt(-17, 5, Floor) != -20 {
		t.Error("RoundInt")
	}
}
