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
	"strings"

	"github.com/SnellerInc/tempo"
	"github.com/SnellerInc/tempo/timezone"
)

// guess picks the kind of s when -k is auto.
func guess(s string) string {
	switch {
	case strings.HasPrefix(s, "P"), strings.HasPrefix(s, "-P"), strings.HasPrefix(s, "+P"):
		return "duration"
	case strings.HasPrefix(s, "--"):
		return "monthday"
	case strings.HasPrefix(s, "T"), strings.HasPrefix(s, "t"):
		return "time"
	}
	if _, err := tempo.ParseZonedDateTime(s, tempo.ZonedOptions{}); err == nil {
		return "zoned"
	}
	if _, err := tempo.ParseInstant(s); err == nil {
		return "instant"
	}
	if strings.ContainsAny(s, "Tt") {
		return "datetime"
	}
	if _, err := tempo.ParsePlainDate(s); err == nil {
		return "date"
	}
	if _, err := tempo.ParsePlainYearMonth(s); err == nil {
		return "yearmonth"
	}
	return "time"
}

func kindOf(s string) string {
	if dashk != "auto" {
		return dashk
	}
	k := guess(s)
	if dashv {
		logf("%q is a %s", s, k)
	}
	return k
}

// parseValue parses s as a value of the given kind.
func parseValue(kind, s string) (fmt.Stringer, error) {
	switch kind {
	case "date":
		return tempo.ParsePlainDate(s)
	case "time":
		return tempo.ParsePlainTime(s)
	case "datetime":
		return tempo.ParsePlainDateTime(s)
	case "zoned":
		return tempo.ParseZonedDateTime(s, tempo.ZonedOptions{})
	case "instant":
		return tempo.ParseInstant(s)
	case "yearmonth":
		return tempo.ParsePlainYearMonth(s)
	case "monthday":
		return tempo.ParsePlainMonthDay(s)
	case "duration":
		return tempo.ParseDuration(s)
	}
	return nil, fmt.Errorf("unknown kind %q", kind)
}

func mustValue(kind, s string) fmt.Stringer {
	v, err := parseValue(kind, s)
	if err != nil {
		exitf("%s", err)
	}
	return v
}

// relativeTo parses an optional reference point
// for duration arithmetic.
func relativeTo(args []string) tempo.RelativeTo {
	if len(args) == 0 {
		return nil
	}
	switch v := mustValue(guess(args[0]), args[0]).(type) {
	case tempo.PlainDate:
		return v
	case tempo.PlainDateTime:
		return v
	case tempo.ZonedDateTime:
		return v
	default:
		exitf("%s (%T) cannot be a reference point", args[0], v)
	}
	return nil
}

func formatOptions() tempo.FormatOptions {
	return tempo.FormatOptions{
		Digits:   dashd,
		Smallest: unitFlag(dashs, "smallest"),
		Mode:     modeFlag(),
	}
}

// format writes v with the -d, -s, -m and -z flags applied.
func format(v fmt.Stringer) (string, error) {
	opts := formatOptions()
	switch v := v.(type) {
	case tempo.PlainDate:
		return v.Format(opts)
	case tempo.PlainTime:
		return v.Format(opts)
	case tempo.PlainDateTime:
		return v.Format(opts)
	case tempo.ZonedDateTime:
		return v.Format(opts)
	case tempo.PlainYearMonth:
		return v.Format(opts)
	case tempo.PlainMonthDay:
		return v.Format(opts)
	case tempo.Duration:
		return tempo.FormatDuration(v, opts)
	case tempo.Instant:
		var tz timezone.TimeZone
		if dashz != "" {
			var err error
			if tz, err = timezone.Get(dashz); err != nil {
				return "", err
			}
		}
		return v.Format(opts, tz)
	}
	return v.String(), nil
}

func init() {
	addApplet(applet{
		name: "parse",
		help: "<value>...",
		desc: `parse values and print them in canonical form
The kind of each value is guessed unless -k
is given. The flags -d, -s and -m select the
precision of fractional seconds, and -z writes
instants in a time zone instead of UTC.
`,
		run: func(args []string) bool {
			if len(args) < 2 {
				return false
			}
			for _, s := range args[1:] {
				out, err := format(mustValue(kindOf(s), s))
				if err != nil {
					exitf("%s: %s", s, err)
				}
				fmt.Println(out)
			}
			return true
		},
	})
}
