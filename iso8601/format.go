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

package iso8601

import (
	"github.com/SnellerInc/tempo/date"
	"github.com/SnellerInc/tempo/ints"
	"github.com/SnellerInc/tempo/timemath"
)

// AppendOffset appends ns as ±HH:MM, with seconds
// and a fraction only if they are non-zero.
func AppendOffset(b []byte, ns int64) []byte {
	if ns < 0 {
		b = append(b, '-')
		ns = -ns
	} else {
		b = append(b, '+')
	}
	_, t := date.TimeFromNanos(ns)
	b = append(b, byte('0'+t.Hour/10), byte('0'+t.Hour%10), ':',
		byte('0'+t.Minute/10), byte('0'+t.Minute%10))
	if t.Second != 0 || t.SubsecondNanos() != 0 {
		b = append(b, ':', byte('0'+t.Second/10), byte('0'+t.Second%10))
		b = date.AppendFraction(b, t.SubsecondNanos(), date.Auto)
	}
	return b
}

// FormatOffset returns ns formatted by AppendOffset.
func FormatOffset(ns int64) string {
	return string(AppendOffset(make([]byte, 0, 6), ns))
}

// RoundOffset rounds ns to the nearest minute,
// with ties away from zero.
func RoundOffset(ns int64) int64 {
	return timemath.RoundInt(ns, timemath.NanosPerMinute, timemath.HalfExpand)
}

// FormatOffsetMinutes formats ns rounded to the
// nearest minute as ±HH:MM.
func FormatOffsetMinutes(ns int64) string {
	return FormatOffset(RoundOffset(ns))
}

// ValidOffset returns whether ns is strictly
// less than 24 hours in magnitude.
func ValidOffset(ns int64) bool {
	return ints.Abs(ns) < timemath.NanosPerDay
}
