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

// Package iso8601 parses the ISO 8601 date and time
// strings, with the RFC 9557 bracketed annotation
// extensions, that are used to serialize calendar
// values, and formats UTC offsets.
package iso8601

import (
	"github.com/SnellerInc/tempo/date"
	"github.com/SnellerInc/tempo/terr"
	"github.com/SnellerInc/tempo/timemath"
)

// Kind selects which value shape a string is parsed as.
type Kind uint8

const (
	KindInvalid Kind = iota
	// KindDateTime is a date with an optional time,
	// used for plain dates and date-times.
	KindDateTime
	// KindTime is a wall-clock time, optionally
	// preceded by a date.
	KindTime
	// KindYearMonth is YYYY-MM or a full date.
	KindYearMonth
	// KindMonthDay is MM-DD, --MM-DD, or a full date.
	KindMonthDay
	// KindZoned is a date-time that must carry
	// a bracketed time zone annotation.
	KindZoned
	// KindInstant is a date-time with a
	// mandatory offset or Z designator.
	KindInstant
)

func (k Kind) String() string {
	switch k {
	case KindDateTime:
		return "date-time"
	case KindTime:
		return "time"
	case KindYearMonth:
		return "year-month"
	case KindMonthDay:
		return "month-day"
	case KindZoned:
		return "zoned date-time"
	case KindInstant:
		return "instant"
	default:
		return "invalid"
	}
}

// Result holds the fields of a parsed string.
type Result struct {
	Date date.Date
	Time date.Time
	// HasTime is false if the string
	// carried only a date.
	HasTime bool
	// UTC is set for the Z designator.
	UTC bool
	// HasOffset is set for a numeric offset,
	// which is then held in Offset as nanoseconds.
	HasOffset bool
	Offset    int64
	// OffsetExact is set if the offset was
	// written with seconds.
	OffsetExact bool
	// Zone is the time zone annotation, if any.
	Zone string
	// Calendar is the u-ca annotation, if any.
	Calendar string
}

// HasOffsetOrZ returns whether the string carried
// any UTC offset information.
func (r *Result) HasOffsetOrZ() bool { return r.UTC || r.HasOffset }

// DateTime returns the date and time of r.
func (r *Result) DateTime() date.DateTime {
	return date.Combine(r.Date, r.Time)
}

type parser struct {
	in  string
	pos int
}

func (p *parser) errorf(reason string) error {
	return terr.Parse(p.in, p.pos, reason)
}

func (p *parser) peek() byte {
	if p.pos < len(p.in) {
		return p.in[p.pos]
	}
	return 0
}

func (p *parser) done() bool { return p.pos >= len(p.in) }

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

// minus is U+2212 MINUS SIGN, accepted
// wherever a '-' sign is.
const minus = "−"

// sign consumes an optional sign and returns
// +1 or -1, or 0 if none is present.
func (p *parser) sign() int {
	switch {
	case p.peek() == '+':
		p.pos++
		return 1
	case p.peek() == '-':
		p.pos++
		return -1
	case len(p.in)-p.pos >= len(minus) && p.in[p.pos:p.pos+len(minus)] == minus:
		p.pos += len(minus)
		return -1
	}
	return 0
}

// digits reads exactly n digits.
func (p *parser) digits(n int) (int, error) {
	if len(p.in)-p.pos < n {
		return 0, p.errorf("expected digits")
	}
	v := 0
	for i := 0; i < n; i++ {
		c := p.in[p.pos+i]
		if !isDigit(c) {
			p.pos += i
			return 0, p.errorf("expected digits")
		}
		v = v*10 + int(c-'0')
	}
	p.pos += n
	return v, nil
}

// field reads exactly two digits within [lo, hi].
func (p *parser) field(lo, hi int, what string) (int, error) {
	at := p.pos
	v, err := p.digits(2)
	if err != nil {
		return 0, err
	}
	if v < lo || v > hi {
		p.pos = at
		return 0, p.errorf(what + " out of range")
	}
	return v, nil
}

// fraction reads an optional decimal fraction of
// one to nine digits and returns it as nanoseconds.
func (p *parser) fraction() (int, error) {
	if c := p.peek(); c != '.' && c != ',' {
		return 0, nil
	}
	p.pos++
	start := p.pos
	for !p.done() && isDigit(p.peek()) {
		p.pos++
	}
	n := p.pos - start
	if n == 0 || n > 9 {
		return 0, p.errorf("fraction must have 1 to 9 digits")
	}
	v := 0
	for i := 0; i < 9; i++ {
		v *= 10
		if i < n {
			v += int(p.in[start+i] - '0')
		}
	}
	return v, nil
}

func (p *parser) year() (int, error) {
	at := p.pos
	switch s := p.sign(); s {
	case 0:
		return p.digits(4)
	default:
		y, err := p.digits(6)
		if err != nil {
			return 0, err
		}
		if s < 0 && y == 0 {
			p.pos = at
			return 0, p.errorf("year -000000 is not allowed")
		}
		return s * y, nil
	}
}

// date reads YYYY-MM-DD or YYYYMMDD.
func (p *parser) date() (date.Date, error) {
	at := p.pos
	y, err := p.year()
	if err != nil {
		return date.Date{}, err
	}
	ext := p.peek() == '-'
	if ext {
		p.pos++
	}
	m, err := p.field(1, 12, "month")
	if err != nil {
		return date.Date{}, err
	}
	if ext {
		if p.peek() != '-' {
			return date.Date{}, p.errorf("expected '-'")
		}
		p.pos++
	}
	d, err := p.field(1, 31, "day")
	if err != nil {
		return date.Date{}, err
	}
	if !date.ValidDate(y, m, d) {
		p.pos = at
		return date.Date{}, p.errorf("invalid date")
	}
	return date.Date{Year: y, Month: m, Day: d}, nil
}

// time reads HH[:MM[:SS[.fff]]] or HH[MM[SS[.fff]]].
// A leap second (60) is read as 59.
func (p *parser) time() (date.Time, error) {
	var t date.Time
	var err error
	if t.Hour, err = p.field(0, 23, "hour"); err != nil {
		return t, err
	}
	ext := p.peek() == ':'
	if !ext && !isDigit(p.peek()) {
		return t, nil
	}
	if ext {
		p.pos++
	}
	if t.Minute, err = p.field(0, 59, "minute"); err != nil {
		return t, err
	}
	if ext && p.peek() != ':' || !ext && !isDigit(p.peek()) {
		return t, nil
	}
	if ext {
		p.pos++
	}
	if t.Second, err = p.field(0, 60, "second"); err != nil {
		return t, err
	}
	if t.Second == 60 {
		t.Second = 59
	}
	ns, err := p.fraction()
	if err != nil {
		return t, err
	}
	t.Millisecond = ns / 1e6
	t.Microsecond = ns / 1e3 % 1e3
	t.Nanosecond = ns % 1e3
	return t, nil
}

// offset reads ±HH[:MM[:SS[.fff]]] or ±HH[MM[SS[.fff]]]
// and returns it in nanoseconds, along with whether
// seconds were present.
func (p *parser) offset() (int64, bool, error) {
	s := p.sign()
	if s == 0 {
		return 0, false, p.errorf("expected offset sign")
	}
	h, err := p.field(0, 23, "offset hours")
	if err != nil {
		return 0, false, err
	}
	ns := int64(h) * timemath.NanosPerHour
	ext := p.peek() == ':'
	if !ext && !isDigit(p.peek()) {
		return int64(s) * ns, false, nil
	}
	if ext {
		p.pos++
	}
	m, err := p.field(0, 59, "offset minutes")
	if err != nil {
		return 0, false, err
	}
	ns += int64(m) * timemath.NanosPerMinute
	if ext && p.peek() != ':' || !ext && !isDigit(p.peek()) {
		return int64(s) * ns, false, nil
	}
	if ext {
		p.pos++
	}
	sec, err := p.field(0, 59, "offset seconds")
	if err != nil {
		return 0, false, err
	}
	frac, err := p.fraction()
	if err != nil {
		return 0, false, err
	}
	ns += int64(sec)*timemath.NanosPerSecond + int64(frac)
	return int64(s) * ns, true, nil
}

func (p *parser) atSign() bool {
	c := p.peek()
	return c == '+' || c == '-' || (len(p.in)-p.pos >= len(minus) && p.in[p.pos:p.pos+len(minus)] == minus)
}

// zoneOrOffset reads an optional Z or numeric offset into r.
func (p *parser) zoneOrOffset(r *Result) error {
	switch {
	case p.peek() == 'Z' || p.peek() == 'z':
		p.pos++
		r.UTC = true
	case p.atSign():
		off, exact, err := p.offset()
		if err != nil {
			return err
		}
		r.HasOffset, r.Offset, r.OffsetExact = true, off, exact
	}
	return nil
}

// ParseOffset parses a complete UTC offset string
// such as "+05:30" or "-08:00:00.5" and returns
// it in nanoseconds.
func ParseOffset(s string) (int64, error) {
	p := &parser{in: s}
	off, _, err := p.offset()
	if err != nil {
		return 0, err
	}
	if !p.done() {
		return 0, p.errorf("unexpected trailing characters")
	}
	return off, nil
}

// IsOffset returns whether s begins like a UTC offset.
func IsOffset(s string) bool {
	p := &parser{in: s}
	return p.atSign()
}

// Parse parses s as a value of kind k.
func Parse(s string, k Kind) (Result, error) {
	switch k {
	case KindDateTime, KindZoned, KindInstant:
		return parseFull(s, k)
	case KindTime:
		return parseTime(s)
	case KindYearMonth:
		if r, err := parseYearMonth(s); err == nil {
			return r, nil
		}
		return parseFull(s, k)
	case KindMonthDay:
		if r, err := parseMonthDay(s); err == nil {
			return r, nil
		}
		return parseFull(s, k)
	}
	return Result{}, terr.Typef("invalid parse kind %d", k)
}

func parseFull(s string, k Kind) (Result, error) {
	var r Result
	p := &parser{in: s}
	var err error
	if r.Date, err = p.date(); err != nil {
		return r, err
	}
	if c := p.peek(); c == 'T' || c == 't' || c == ' ' {
		p.pos++
		if r.Time, err = p.time(); err != nil {
			return r, err
		}
		r.HasTime = true
		if err := p.zoneOrOffset(&r); err != nil {
			return r, err
		}
	}
	if err := p.annotations(&r); err != nil {
		return r, err
	}
	return r, check(p, &r, k)
}

// check enforces the per-kind requirements on
// the offset and annotations of r.
func check(p *parser, r *Result, k Kind) error {
	switch k {
	case KindZoned:
		if r.Zone == "" {
			return p.errorf("missing time zone annotation")
		}
	case KindInstant:
		if !r.HasTime {
			return p.errorf("instant requires a time")
		}
		if !r.HasOffsetOrZ() {
			return p.errorf("instant requires an offset or Z")
		}
	default:
		if r.UTC {
			return p.errorf("Z designator is not allowed for plain values")
		}
	}
	return nil
}

func parseTime(s string) (Result, error) {
	if len(s) > 0 && (s[0] == 'T' || s[0] == 't') {
		return parseTimeOnly(s, 1)
	}
	full, ferr := parseFull(s, KindTime)
	if ferr == nil {
		if !full.HasTime {
			return Result{}, terr.Parse(s, len(s), "missing time")
		}
		return full, nil
	}
	r, err := parseTimeOnly(s, 0)
	if err != nil {
		return Result{}, err
	}
	if _, err := parseYearMonth(s); err == nil {
		return Result{}, terr.Parse(s, 0, "ambiguous time could be a year-month")
	}
	if _, err := parseMonthDay(s); err == nil {
		return Result{}, terr.Parse(s, 0, "ambiguous time could be a month-day")
	}
	return r, nil
}

func parseTimeOnly(s string, at int) (Result, error) {
	var r Result
	p := &parser{in: s, pos: at}
	var err error
	if r.Time, err = p.time(); err != nil {
		return r, err
	}
	r.HasTime = true
	if err := p.zoneOrOffset(&r); err != nil {
		return r, err
	}
	if err := p.annotations(&r); err != nil {
		return r, err
	}
	return r, check(p, &r, KindTime)
}

func parseYearMonth(s string) (Result, error) {
	var r Result
	p := &parser{in: s}
	y, err := p.year()
	if err != nil {
		return r, err
	}
	if p.peek() == '-' {
		p.pos++
	}
	m, err := p.field(1, 12, "month")
	if err != nil {
		return r, err
	}
	r.Date = date.Date{Year: y, Month: m, Day: 1}
	if err := p.annotations(&r); err != nil {
		return r, err
	}
	return r, nil
}

// monthDayYear is the leap year month-day
// values are validated against.
const monthDayYear = 1972

func parseMonthDay(s string) (Result, error) {
	var r Result
	p := &parser{in: s}
	if len(s) >= 2 && s[:2] == "--" {
		p.pos = 2
	}
	m, err := p.field(1, 12, "month")
	if err != nil {
		return r, err
	}
	if p.peek() == '-' {
		p.pos++
	}
	d, err := p.field(1, 31, "day")
	if err != nil {
		return r, err
	}
	if !date.ValidDate(monthDayYear, m, d) {
		return r, p.errorf("invalid month-day")
	}
	r.Date = date.Date{Year: monthDayYear, Month: m, Day: d}
	if err := p.annotations(&r); err != nil {
		return r, err
	}
	return r, nil
}
