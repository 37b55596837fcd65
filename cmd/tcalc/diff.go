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

package main

import (
	"fmt"

	"github.com/SnellerInc/tempo"
)

func diffOptions() tempo.DiffOptions {
	return tempo.DiffOptions{
		Largest:   unitFlag(dashl, "largest"),
		Smallest:  unitFlag(dashs, "smallest"),
		Increment: dashi,
		Mode:      modeFlag(),
	}
}

// until returns the duration from a to b, or from
// b to a when since is set, for values of one kind.
func until(a, b fmt.Stringer, since bool) (tempo.Duration, error) {
	opts := diffOptions()
	switch a := a.(type) {
	case tempo.PlainDate:
		if since {
			return a.Since(b.(tempo.PlainDate), opts)
		}
		return a.Until(b.(tempo.PlainDate), opts)
	case tempo.PlainTime:
		if since {
			return a.Since(b.(tempo.PlainTime), opts)
		}
		return a.Until(b.(tempo.PlainTime), opts)
	case tempo.PlainDateTime:
		if since {
			return a.Since(b.(tempo.PlainDateTime), opts)
		}
		return a.Until(b.(tempo.PlainDateTime), opts)
	case tempo.ZonedDateTime:
		if since {
			return a.Since(b.(tempo.ZonedDateTime), opts)
		}
		return a.Until(b.(tempo.ZonedDateTime), opts)
	case tempo.Instant:
		if since {
			return a.Since(b.(tempo.Instant), opts)
		}
		return a.Until(b.(tempo.Instant), opts)
	case tempo.PlainYearMonth:
		if since {
			return a.Since(b.(tempo.PlainYearMonth), opts)
		}
		return a.Until(b.(tempo.PlainYearMonth), opts)
	}
	return tempo.Duration{}, fmt.Errorf("cannot take the difference of %T values", a)
}

// compare orders a and b, which must be of one kind.
func compare(a, b fmt.Stringer, rel tempo.RelativeTo) (int, error) {
	switch a := a.(type) {
	case tempo.PlainDate:
		return tempo.ComparePlainDate(a, b.(tempo.PlainDate)), nil
	case tempo.PlainTime:
		return tempo.ComparePlainTime(a, b.(tempo.PlainTime)), nil
	case tempo.PlainDateTime:
		return tempo.ComparePlainDateTime(a, b.(tempo.PlainDateTime)), nil
	case tempo.ZonedDateTime:
		return tempo.CompareZonedDateTime(a, b.(tempo.ZonedDateTime)), nil
	case tempo.Instant:
		return tempo.CompareInstant(a, b.(tempo.Instant)), nil
	case tempo.PlainYearMonth:
		return tempo.ComparePlainYearMonth(a, b.(tempo.PlainYearMonth)), nil
	case tempo.Duration:
		return tempo.CompareDurations(a, b.(tempo.Duration), rel)
	}
	return 0, fmt.Errorf("cannot compare %T values", a)
}

func pair(args []string) (fmt.Stringer, fmt.Stringer) {
	k := kindOf(args[1])
	return mustValue(k, args[1]), mustValue(k, args[2])
}

func diffApplet(since bool) func(args []string) bool {
	return func(args []string) bool {
		if len(args) != 3 {
			return false
		}
		a, b := pair(args)
		d, err := until(a, b, since)
		if err != nil {
			exitf("%s", err)
		}
		fmt.Println(d)
		return true
	}
}

func init() {
	addApplet(applet{
		name: "until",
		help: "<from> <to>",
		desc: `print the duration from one value to another
Both values must be of the same kind. The flags
-l, -s, -i and -m select the largest and smallest
units of the result and how it is rounded.
`,
		run: diffApplet(false),
	})
	addApplet(applet{
		name: "since",
		help: "<to> <from>",
		desc: `print the duration from the second value to the first
Rounding is anchored at the first value, so
"since a b" is "until a b" negated with the
rounding mode mirrored.
`,
		run: diffApplet(true),
	})
	addApplet(applet{
		name: "compare",
		help: "<a> <b> [relative-to]",
		desc: `print -1, 0, or 1 as a is before, equal to, or after b
Durations with calendar units are compared
from the optional reference date.
`,
		run: func(args []string) bool {
			if len(args) != 3 && len(args) != 4 {
				return false
			}
			a, b := pair(args)
			c, err := compare(a, b, relativeTo(args[3:]))
			if err != nil {
				exitf("%s", err)
			}
			fmt.Println(c)
			return true
		},
	})
}
