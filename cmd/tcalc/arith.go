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

// add returns v moved by d, which is subtracted
// when sub is set.
func add(v fmt.Stringer, d tempo.Duration, sub bool, rel tempo.RelativeTo) (fmt.Stringer, error) {
	if sub {
		d = d.Negated()
	}
	ov := overflowFlag()
	switch v := v.(type) {
	case tempo.PlainDate:
		return v.Add(d, ov)
	case tempo.PlainTime:
		return v.Add(d), nil
	case tempo.PlainDateTime:
		return v.Add(d, ov)
	case tempo.ZonedDateTime:
		return v.Add(d, ov)
	case tempo.Instant:
		return v.Add(d)
	case tempo.PlainYearMonth:
		return v.Add(d, ov)
	case tempo.Duration:
		return tempo.AddDurations(v, d, rel)
	}
	return nil, fmt.Errorf("cannot add a duration to %T", v)
}

func arithApplet(sub bool) func(args []string) bool {
	return func(args []string) bool {
		if len(args) != 3 && len(args) != 4 {
			return false
		}
		v := mustValue(kindOf(args[1]), args[1])
		d, err := tempo.ParseDuration(args[2])
		if err != nil {
			exitf("%s", err)
		}
		res, err := add(v, d, sub, relativeTo(args[3:]))
		if err != nil {
			exitf("%s", err)
		}
		fmt.Println(res)
		return true
	}
}

func init() {
	addApplet(applet{
		name: "add",
		help: "<value> <duration> [relative-to]",
		desc: `print a value moved forward by a duration
Adding to a date that does not exist in the
target month is constrained unless -o reject
is given. Adding two durations with calendar
units requires a reference date.
`,
		run: arithApplet(false),
	})
	addApplet(applet{
		name: "subtract",
		help: "<value> <duration> [relative-to]",
		desc: `print a value moved back by a duration
`,
		run: arithApplet(true),
	})
}
