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
	"strconv"

	"github.com/SnellerInc/tempo/date"
	"github.com/SnellerInc/tempo/timemath"
)

// String returns d in ISO 8601 format, for
// example "P1Y2M3DT4H5M6.789S" or "-PT1H".
// The zero duration is "PT0S".
func (d Duration) String() string {
	return string(d.appendISO(make([]byte, 0, 24), date.Auto))
}

// Format returns d in ISO 8601 format with the seconds
// written to precision p. Excess digits are truncated.
func (d Duration) Format(p date.Precision) string {
	if p == date.Minute {
		p = 0
	}
	return string(d.appendISO(make([]byte, 0, 24), p))
}

// AppendISO appends d in ISO 8601 format to b.
func (d Duration) AppendISO(b []byte, p date.Precision) []byte {
	return d.appendISO(b, p)
}

func (d Duration) appendISO(b []byte, p date.Precision) []byte {
	a := d.Abs()
	if d.Sign() < 0 {
		b = append(b, '-')
	}
	b = append(b, 'P')
	part := func(v int64, c byte) {
		if v != 0 {
			b = strconv.AppendInt(b, v, 10)
			b = append(b, c)
		}
	}
	part(a.Years, 'Y')
	part(a.Months, 'M')
	part(a.Weeks, 'W')
	part(a.Days, 'D')

	sub := timemath.FromUnits(a.Seconds, timemath.NanosPerSecond).
		Add(timemath.FromUnits(a.Milliseconds, timemath.NanosPerMillisecond)).
		Add(timemath.FromUnits(a.Microseconds, timemath.NanosPerMicrosecond)).
		Add(timemath.FromNanos(a.Nanoseconds))
	secs, frac, _ := sub.Split(timemath.NanosPerSecond)
	bigger := a.Years|a.Months|a.Weeks|a.Days|a.Hours|a.Minutes != 0
	showSeconds := !sub.IsZero() || !bigger || p != date.Auto
	if a.Hours != 0 || a.Minutes != 0 || showSeconds {
		b = append(b, 'T')
		part(a.Hours, 'H')
		part(a.Minutes, 'M')
		if showSeconds {
			b = strconv.AppendInt(b, secs, 10)
			b = date.AppendFraction(b, int(frac), p)
			b = append(b, 'S')
		}
	}
	return b
}

// MarshalText implements encoding.TextMarshaler
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (d *Duration) UnmarshalText(b []byte) error {
	dn, err := Parse(string(b))
	if err != nil {
		return err
	}
	*d = dn
	return nil
}
