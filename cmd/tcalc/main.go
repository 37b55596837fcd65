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

// Command tcalc parses, compares, and computes
// with dates, times, and durations.
package main

import (
	"flag"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/SnellerInc/tempo/date"
	"github.com/SnellerInc/tempo/duration"
	"github.com/SnellerInc/tempo/timemath"
	"github.com/SnellerInc/tempo/timezone"
)

var (
	dashv     bool
	dashh     bool
	dashk     string
	dashl     string
	dashs     string
	dashi     int64
	dashm     string
	dasho     string
	dashd     int
	dashz     string
	dashdir   string
	dashrules listFlag
)

type listFlag []string

func (l *listFlag) String() string     { return strings.Join(*l, ",") }
func (l *listFlag) Set(s string) error { *l = append(*l, s); return nil }

func init() {
	flag.BoolVar(&dashv, "v", false, "verbose")
	flag.BoolVar(&dashh, "h", false, "show usage help")
	flag.StringVar(&dashk, "k", "auto", "value kind (auto, date, time, datetime, zoned, instant, yearmonth, monthday, duration)")
	flag.StringVar(&dashl, "l", "", "largest unit")
	flag.StringVar(&dashs, "s", "", "smallest unit")
	flag.Int64Var(&dashi, "i", 0, "rounding increment")
	flag.StringVar(&dashm, "m", "", "rounding mode (ceil, floor, expand, trunc, halfCeil, halfFloor, halfExpand, halfTrunc, halfEven)")
	flag.StringVar(&dasho, "o", "constrain", "overflow (constrain or reject)")
	flag.IntVar(&dashd, "d", 0, "fractional second digits (0 for as many as necessary)")
	flag.StringVar(&dashz, "z", "", "time zone for formatting instants")
	flag.StringVar(&dashdir, "dir", "next", "transition direction (next or previous)")
	flag.Var(&dashrules, "rules", "YAML or JSON time zone rules file to register (may be repeated)")
}

type applet struct {
	name string
	help string
	desc string
	run  func(args []string) bool
}

var applets = make(map[string]applet)

func addApplet(a applet) {
	if _, ok := applets[a.name]; ok {
		panic("duplicate applet " + a.name)
	}
	applets[a.name] = a
}

func exitf(f string, args ...interface{}) {
	if !strings.HasSuffix(f, "\n") {
		f += "\n"
	}
	fmt.Fprintf(os.Stderr, f, args...)
	os.Exit(1)
}

func logf(f string, args ...interface{}) {
	if f[len(f)-1] != '\n' {
		f += "\n"
	}
	fmt.Fprintf(os.Stderr, f, args...)
}

func unitFlag(s, what string) duration.Unit {
	if s == "" {
		return duration.Auto
	}
	u, ok := duration.ParseUnit(s)
	if !ok {
		exitf("invalid %s unit %q", what, s)
	}
	return u
}

func modeFlag() timemath.RoundingMode {
	if dashm == "" {
		return 0
	}
	m, ok := timemath.ParseRoundingMode(dashm)
	if !ok {
		exitf("invalid rounding mode %q", dashm)
	}
	return m
}

func overflowFlag() date.Overflow {
	ov, ok := date.ParseOverflow(dasho)
	if !ok {
		exitf("invalid overflow %q", dasho)
	}
	return ov
}

func loadRules(files []string) {
	for _, name := range files {
		doc, err := os.ReadFile(name)
		if err != nil {
			exitf("reading rules: %s", err)
		}
		var lf func(string, ...interface{})
		if dashv {
			lf = logf
		}
		tz, err := timezone.LoadRules(doc, lf)
		if err != nil {
			exitf("loading %s: %s", name, err)
		}
		if dashv {
			logf("registered time zone %s from %s", tz.ID(), name)
		}
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, "usage:\n")
	names := make([]string, 0, len(applets))
	for name := range applets {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		a := applets[name]
		fmt.Fprintf(os.Stderr, "    %s [flags] %s %s\n", os.Args[0], a.name, a.help)
		desc, _, _ := strings.Cut(a.desc, "\n")
		fmt.Fprintf(os.Stderr, "        %s\n", desc)
	}
	fmt.Fprintf(os.Stderr, "flag usage:\n")
	flag.PrintDefaults()
}

func main() {
	flag.Parse()
	args := flag.Args()
	if len(args) == 0 || dashh {
		if len(args) > 0 {
			if a, ok := applets[args[0]]; ok {
				fmt.Fprintf(os.Stderr, "%s %s\n\n%s", a.name, a.help, a.desc)
				os.Exit(1)
			}
		}
		usage()
		os.Exit(1)
	}
	loadRules(dashrules)
	a, ok := applets[args[0]]
	if !ok {
		usage()
		os.Exit(1)
	}
	if !a.run(args) {
		exitf("usage: %s %s", a.name, a.help)
	}
}
