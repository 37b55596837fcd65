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

package ints

import (
	"math/rand"
	"testing"
)

func TestFloorDiv(t *testing.T) {
	run := func(x, y, q, r int64) {
		t.Helper()
		if got := FloorDiv(x, y); got != q {
			t.Errorf("FloorDiv(%d, %d) = %d, want %d", x, y, got, q)
		}
		if got := FloorMod(x, y); got != r {
			t.Errorf("FloorMod(%d, %d) = %d, want %d", x, y, got, r)
		}
	}
	run(7, 2, 3, 1)
	run(-7, 2, -4, 1)
	run(-8, 2, -4, 0)
	run(0, 5, 0, 0)
	run(-1, 86400, -1, 86399)
	run(86400, 86400, 1, 0)
}

func TestDivModIdentity(t *testing.T) {
	for i := 0; i < 10000; i++ {
		x := rand.Int63n(1<<40) - 1<<39
		y := rand.Int63n(1<<20) + 1
		q, r := DivMod(x, y)
		if q*y+r != x || r < 0 || r >= y {
			t.Fatalf("DivMod(%d, %d) = (%d, %d)", x, y, q, r)
		}
	}
}

func TestNorm(t *testing.T) {
	hi, lo := Norm(10, -61, 60)
	if hi != 8 || lo != 59 {
		t.Errorf("Norm(10, -61, 60) = (%d, %d)", hi, lo)
	}
	hi, lo = Norm(0, 125, 60)
	if hi != 2 || lo != 5 {
		t.Errorf("Norm(0, 125, 60) = (%d, %d)", hi, lo)
	}
}

func TestClampSign(t *testing.T) {
	if Clamp(13, 1, 12) != 12 || Clamp(0, 1, 12) != 1 || Clamp(5, 1, 12) != 5 {
		t.Error("Clamp")
	}
	if Sign(-3) != -1 || Sign(0) != 0 || Sign(int64(9)) != 1 {
		t.Error("Sign")
	}
	if Abs(-4) != 4 || Abs(4) != 4 {
		t.Error("Abs")
	}
	if !InRange(3, 1, 3) || InRange(4, 1, 3) {
		t.Error("InRange")
	}
}
