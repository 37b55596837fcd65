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

type durationParser struct {
	in  string
	pos int
}

func (p *durationParser) errorf(reason string) error {
	return terr.Parse(p.in, p.pos, reason)
}

func (p *durationParser) peek() byte {
	if p.pos < len(p.in) {
		return p.in[p.pos]
	}
	return 0
}

func upper(c byte) byte {
	if c >= 'a' && c <= 'z' {
		return c - 'a' + 'A'
	}
	return c
}

// number reads a decimal integer and an optional
// fraction of up to nine digits, returned as a count
// of billionths.
func (p *durationParser) number() (whole int64, frac int64, hasFrac bool, err error) {
	start := p.pos
	for p.pos < len(p.in) && isDigit(p.in[p.pos]) {
		d := int64(p.in[p.pos] - '0')
		if whole > (1<<63-1-d)/10 {
			return 0, 0, false, p.errorf("number too large")
		}
		whole = whole*10 + d
		p.pos++
	}
	if p.pos == start {
		return 0, 0, false, p.errorf("expected digits")
	}
	if c := p.peek(); c == '.' || c == ',' {
		p.pos++
		fs := p.pos
		for p.pos < len(p.in) && isDigit(p.in[p.pos]) {
			p.pos++
		}
		n := p.pos - fs
		if n == 0 || n > 9 {
			return 0, 0, false, p.errorf("fraction must have 1 to 9 digits")
		}
		for i := fs; i < fs+9; i++ {
			frac *= 10
			if i < p.pos {
				frac += int64(p.in[i] - '0')
			}
		}
		hasFrac = true
	}
	return whole, frac, hasFrac, nil
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

// Parse parses an ISO 8601 duration such as
// "P1Y2M10DT2H30M" or "-PT1.5S". Designators are
// case-insensitive. Only the smallest time component
// present may carry a fraction, which is distributed
// over the smaller units.
func Parse(s string) (Duration, error) {
	p := &durationParser{in: s}
	sign := int64(1)
	switch {
	case p.peek() == '+':
		p.pos++
	case p.peek() == '-':
		sign = -1
		p.pos++
	case len(s) >= 3 && s[:3] == "−":
		sign = -1
		p.pos += 3
	}
	if upper(p.peek()) != 'P' {
		return Duration{}, p.errorf("expected 'P'")
	}
	p.pos++

	var d Duration
	seen := false
	dateFields := []struct {
		c   byte
		dst *int64
	}{{'Y', &d.Years}, {'M', &d.Months}, {'W', &d.Weeks}, {'D', &d.Days}}
	next := 0
	for p.pos < len(p.in) && upper(p.peek()) != 'T' {
		at := p.pos
		v, _, hasFrac, err := p.number()
		if err != nil {
			return Duration{}, err
		}
		if hasFrac {
			p.pos = at
			return Duration{}, p.errorf("fractional date components are not allowed")
		}
		c := upper(p.peek())
		for next < len(dateFields) && dateFields[next].c != c {
			next++
		}
		if next == len(dateFields) {
			return Duration{}, p.errorf("expected Y, M, W, or D designator in order")
		}
		p.pos++
		*dateFields[next].dst = v
		next++
		seen = true
	}

	if upper(p.peek()) == 'T' {
		p.pos++
		timeFields := []struct {
			c    byte
			unit int64
			dst  *int64
		}{
			{'H', timemath.NanosPerHour, &d.Hours},
			{'M', timemath.NanosPerMinute, &d.Minutes},
			{'S', timemath.NanosPerSecond, &d.Seconds},
		}
		next := 0
		anyTime := false
		fracDone := false
		var fracNanos int64
		for p.pos < len(p.in) {
			if fracDone {
				return Duration{}, p.errorf("only the smallest unit may have a fraction")
			}
			v, frac, hasFrac, err := p.number()
			if err != nil {
				return Duration{}, err
			}
			c := upper(p.peek())
			for next < len(timeFields) && timeFields[next].c != c {
				next++
			}
			if next == len(timeFields) {
				return Duration{}, p.errorf("expected H, M, or S designator in order")
			}
			p.pos++
			*timeFields[next].dst = v
			if hasFrac {
				// frac is in billionths of the unit
				fracNanos = frac * (timeFields[next].unit / timemath.NanosPerSecond)
				fracDone = true
			}
			next++
			anyTime = true
		}
		if !anyTime {
			return Duration{}, p.errorf("expected time components after 'T'")
		}
		spreadFraction(&d, fracNanos)
		seen = true
	}
	if !seen {
		return Duration{}, p.errorf("expected at least one component")
	}
	if p.pos != len(p.in) {
		return Duration{}, p.errorf("unexpected trailing characters")
	}
	if sign < 0 {
		d = d.Negated()
	}
	if err := d.Validate(); err != nil {
		return Duration{}, err
	}
	return d, nil
}

// spreadFraction adds n nanoseconds, the fractional
// part of the smallest written component, to the
// minutes through nanoseconds fields of d.
func spreadFraction(d *Duration, n int64) {
	add := func(dst *int64, unit int64) {
		*dst += n / unit
		n %= unit
	}
	add(&d.Minutes, timemath.NanosPerMinute)
	add(&d.Seconds, timemath.NanosPerSecond)
	add(&d.Milliseconds, timemath.NanosPerMillisecond)
	add(&d.Microseconds, timemath.NanosPerMicrosecond)
	d.Nanoseconds += n
}
