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
	"strconv"

	"github.com/SnellerInc/tempo"
)

func roundOptions(rel tempo.RelativeTo) tempo.RoundOptions {
	return tempo.RoundOptions{
		Smallest:   unitFlag(dashs, "smallest"),
		Largest:    unitFlag(dashl, "largest"),
		Increment:  dashi,
		Mode:       modeFlag(),
		RelativeTo: rel,
	}
}

func round(v fmt.Stringer, rel tempo.RelativeTo) (fmt.Stringer, error) {
	opts := roundOptions(rel)
	switch v := v.(type) {
	case tempo.PlainTime:
		return v.Round(opts)
	case tempo.PlainDateTime:
		return v.Round(opts)
	case tempo.ZonedDateTime:
		return v.Round(opts)
	case tempo.Instant:
		return v.Round(opts)
	case tempo.Duration:
		return tempo.RoundDuration(v, opts)
	}
	return nil, fmt.Errorf("cannot round %T", v)
}

func init() {
	addApplet(applet{
		name: "round",
		help: "<value> [relative-to]",
		desc: `print a time or duration rounded to a unit
The unit is given with -s, and -i and -m
select the increment and rounding mode.
Durations may also be balanced up to -l,
and rounding calendar units requires a
reference date.
`,
		run: func(args []string) bool {
			if len(args) != 2 && len(args) != 3 {
				return false
			}
			res, err := round(mustValue(kindOf(args[1]), args[1]), relativeTo(args[2:]))
			if err != nil {
				exitf("%s", err)
			}
			fmt.Println(res)
			return true
		},
	})
	addApplet(applet{
		name: "total",
		help: "<duration> <unit> [relative-to]",
		desc: `print a duration as a fractional number of units
`,
		run: func(args []string) bool {
			if len(args) != 3 && len(args) != 4 {
				return false
			}
			d, err := tempo.ParseDuration(args[1])
			if err != nil {
				exitf("%s", err)
			}
			f, err := tempo.TotalDuration(d, unitFlag(args[2], "total"), relativeTo(args[3:]))
			if err != nil {
				exitf("%s", err)
			}
			fmt.Println(strconv.FormatFloat(f, 'g', -1, 64))
			return true
		},
	})
}
