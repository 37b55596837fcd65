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

package tempo

import (
	"github.com/SnellerInc/tempo/duration"
	"github.com/SnellerInc/tempo/relative"
	"github.com/SnellerInc/tempo/terr"
	"github.com/SnellerInc/tempo/timemath"
)

// ParseDuration parses an ISO 8601 duration
// such as "-P1Y2M3DT4H5M6.789S".
func ParseDuration(s string) (Duration, error) {
	return duration.Parse(s)
}

func markerOf(rel RelativeTo) *relative.Marker {
	if rel == nil {
		return nil
	}
	m := rel.marker()
	return &m
}

// RoundDuration rounds d to a multiple of
// opts.Increment opts.Smallest units and balances
// it up to opts.Largest. Years, months and weeks, and
// days in a time zone, require opts.RelativeTo.
func RoundDuration(d Duration, opts RoundOptions) (Duration, error) {
	r, err := opts.normalizeDuration(d)
	if err != nil {
		return Duration{}, err
	}
	return relative.RoundDuration(d, r, markerOf(opts.RelativeTo))
}

// TotalDuration returns d as a fractional
// number of unit, measured from rel if not nil.
func TotalDuration(d Duration, unit Unit, rel RelativeTo) (float64, error) {
	if unit == duration.Auto {
		return 0, terr.Rangef("unit is required")
	}
	return relative.TotalDuration(d, unit, markerOf(rel))
}

// CompareDurations returns -1, 0, or +1 as a is
// shorter than, equal to, or longer than b, measured
// from rel if not nil.
func CompareDurations(a, b Duration, rel RelativeTo) (int, error) {
	return relative.CompareDurations(a, b, markerOf(rel))
}

// AddDurations returns a+b, balanced up to the
// largest unit of either. Calendar units require
// rel.
func AddDurations(a, b Duration, rel RelativeTo) (Duration, error) {
	return relative.AddDurations(a, b, markerOf(rel))
}

// SubtractDurations returns a-b.
func SubtractDurations(a, b Duration, rel RelativeTo) (Duration, error) {
	return relative.AddDurations(a, b.Negated(), markerOf(rel))
}

// FormatDuration returns d as an ISO 8601 duration
// with the fractional seconds selected by opts. The
// seconds are rounded with opts.Mode (Trunc by
// default), carrying into larger time units.
func FormatDuration(d Duration, opts FormatOptions) (string, error) {
	if opts.Smallest == duration.Minute {
		return "", terr.Rangef("smallest unit minute is not allowed when formatting a duration")
	}
	p, step, err := opts.precision()
	if err != nil {
		return "", err
	}
	if step > 1 {
		in := d.Internal()
		t, ok := in.Time.RoundTo(timemath.FromNanos(step), opts.mode())
		if !ok {
			return "", terr.Rangef("rounded duration out of range")
		}
		in.Time = t
		if d, err = duration.FromInternal(in, duration.Larger(d.LargestUnit(), duration.Second)); err != nil {
			return "", err
		}
	}
	return d.Format(p), nil
}
