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
	"errors"
	"math/big"
	"math/rand"
	"testing"

	"github.com/SnellerInc/tempo/terr"
)

func TestNormalized(t *testing.T) {
	for i := 0; i < 10000; i++ {
		days := rand.Int63n(2*MaxEpochDays) - MaxEpochDays
		nanos := rand.Int63() - rand.Int63()
		a := New(days, nanos)
		if a.Nanos < 0 || a.Nanos >= NanosPerDay {
			t.Fatalf("New(%d, %d) not normalized: %+v", days, nanos, a)
		}
		want := new(big.Int).Mul(big.NewInt(days), big.NewInt(NanosPerDay))
		want.Add(want, big.NewInt(nanos))
		if a.Big().Cmp(want) != 0 {
			t.Fatalf("New(%d, %d) = %s, want %s", days, nanos, a.Big(), want)
		}
		b := New(rand.Int63n(1000)-500, rand.Int63())
		if got := a.Add(b).Sub(b); got != a {
			t.Fatalf("%v + %v - %v = %v", a, b, b, got)
		}
		if got := a.Neg().Neg(); got != a {
			t.Fatalf("-(-%v) = %v", a, got)
		}
		if a.Add(a.Neg()).Sign() != 0 {
			t.Fatalf("%v - %v != 0", a, a)
		}
	}
}

func TestCompare(t *testing.T) {
	a := FromNanos(-1)
	b := FromNanos(0)
	c := FromNanos(NanosPerDay)
	if a.Cmp(b) != -1 || b.Cmp(a) != 1 || c.Cmp(c) != 0 || b.Cmp(c) != -1 {
		t.Error("Cmp ordering is wrong")
	}
	if a.Sign() != -1 || b.Sign() != 0 || c.Sign() != 1 {
		t.Error("Sign is wrong")
	}
	if a.Days != -1 || a.Nanos != NanosPerDay-1 {
		t.Errorf("FromNanos(-1) = %+v", a)
	}
}

func TestFromUnits(t *testing.T) {
	run := func(n, unit int64) {
		t.Helper()
		got := FromUnits(n, unit)
		want := new(big.Int).Mul(big.NewInt(n), big.NewInt(unit))
		if got.Big().Cmp(want) != 0 {
			t.Errorf("FromUnits(%d, %d) = %s, want %s", n, unit, got.Big(), want)
		}
	}
	run(1<<62, 1)
	run(-(1 << 62), NanosPerMicrosecond)
	run(1<<50, NanosPerSecond)
	run(-12345678901, NanosPerHour)
	run(3, 7*NanosPerDay)
}

func TestTruncDays(t *testing.T) {
	d, r := New(-2, NanosPerDay/2).TruncDays()
	if d != -1 || r.Cmp(FromNanos(-NanosPerDay/2)) != 0 {
		t.Errorf("TruncDays = %d, %v", d, r)
	}
	d, r = New(3, 5).TruncDays()
	if d != 3 || r != FromNanos(5) {
		t.Errorf("TruncDays = %d, %v", d, r)
	}
}

func TestEpochRange(t *testing.T) {
	if err := CheckEpoch(FromDays(MaxEpochDays)); err != nil {
		t.Error(err)
	}
	if err := CheckEpoch(FromDays(-MaxEpochDays)); err != nil {
		t.Error(err)
	}
	err := CheckEpoch(FromDays(MaxEpochDays).AddNanos(1))
	if !errors.Is(err, terr.ErrRange) {
		t.Errorf("expected range error, got %v", err)
	}
	if InEpochRange(FromDays(-MaxEpochDays).AddNanos(-1)) {
		t.Error("one nanosecond before the minimum should be out of range")
	}
}

func TestMaxTime(t *testing.T) {
	if CheckTime(MaxTime()) != nil || CheckTime(MaxTime().Neg()) != nil {
		t.Error("MaxTime itself must be valid")
	}
	if CheckTime(MaxTime().AddNanos(1)) == nil {
		t.Error("expected an error beyond MaxTime")
	}
}

func TestRatio(t *testing.T) {
	if got := FromNanos(NanosPerDay / 2).In(NanosPerDay); got != 0.5 {
		t.Errorf("In = %g", got)
	}
	if got := FromDays(3).Ratio(FromDays(-4)); got != -0.75 {
		t.Errorf("Ratio = %g", got)
	}
	q, r, ok := New(-1, NanosPerDay-1500).Split(NanosPerMicrosecond)
	if !ok || q != -1 || r != -500 {
		t.Errorf("Split = %d, %d, %v", q, r, ok)
	}
}
