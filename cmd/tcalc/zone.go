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
	"github.com/SnellerInc/tempo/timezone"
)

func init() {
	addApplet(applet{
		name: "transitions",
		help: "<zoned> [count]",
		desc: `print the offset transitions after a zoned date-time
The search runs backward with -dir previous.
At most count transitions are printed (default 1).
`,
		run: func(args []string) bool {
			if len(args) != 2 && len(args) != 3 {
				return false
			}
			z, err := tempo.ParseZonedDateTime(args[1], tempo.ZonedOptions{})
			if err != nil {
				exitf("%s", err)
			}
			count := 1
			if len(args) == 3 {
				if count, err = strconv.Atoi(args[2]); err != nil || count < 1 {
					exitf("invalid count %q", args[2])
				}
			}
			dir, ok := timezone.ParseDirection(dashdir)
			if !ok {
				exitf("invalid direction %q", dashdir)
			}
			for i := 0; i < count; i++ {
				next, ok := z.Transition(dir)
				if !ok {
					if dashv {
						logf("no more transitions in %s", z.TimeZone().ID())
					}
					break
				}
				fmt.Println(next)
				z = next
			}
			return true
		},
	})
	addApplet(applet{
		name: "in",
		help: "<zoned|instant> <zone>",
		desc: `print an exact time in another time zone
`,
		run: func(args []string) bool {
			if len(args) != 3 {
				return false
			}
			tz, err := timezone.Get(args[2])
			if err != nil {
				exitf("%s", err)
			}
			var z tempo.ZonedDateTime
			switch v := mustValue(kindOf(args[1]), args[1]).(type) {
			case tempo.ZonedDateTime:
				z, err = v.WithTimeZone(tz)
			case tempo.Instant:
				z, err = v.ToZonedDateTime(tz, nil)
			default:
				exitf("%s (%T) is not an exact time", args[1], v)
			}
			if err != nil {
				exitf("%s", err)
			}
			out, err := z.Format(formatOptions())
			if err != nil {
				exitf("%s", err)
			}
			fmt.Println(out)
			return true
		},
	})
}
