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

import "golang.org/x/exp/constraints"

// FloorDiv returns x/y rounded towards negative infinity.
// y must be positive.
func FloorDiv[T constraints.Signed](x, y T) T {
	if x < 0 {
		x = x - y + 1
	}
	return x / y
}

// FloorMod returns the remainder of FloorDiv(x, y),
// which is always in [0, y).
func FloorMod[T constraints.Signed](x, y T) T {
	m := x % y
	if m < 0 {
		m += y
	}
	return m
}

// DivMod returns FloorDiv(x, y) and FloorMod(x, y).
func DivMod[T constraints.Signed](x, y T) (q, r T) {
	return FloorDiv(x, y), FloorMod(x, y)
}

// Norm carries the overflow of lo (in units of base)
// into hi so that the returned lo is within [0, base).
func Norm[T constraints.Signed](hi, lo, base T) (nhi, nlo T) {
	q, r := DivMod(lo, base)
	return hi + q, r
}
