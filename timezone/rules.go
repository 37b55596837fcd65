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

package timezone

import (
	"bytes"
	"fmt"
	"io"

	"golang.org/x/exp/slices"
	"sigs.k8s.io/yaml"

	"github.com/SnellerInc/tempo/date"
	"github.com/SnellerInc/tempo/iso8601"
	"github.com/SnellerInc/tempo/terr"
	"github.com/SnellerInc/tempo/timemath"
)

// Rules is the document form of a rule-table zone,
// which may be written in YAML or JSON.
//
//	id: Example/Island
//	offset: "+01:00"
//	transitions:
//	  - at: "2024-03-31T01:00:00Z"
//	    offset: "+02:00"
type Rules struct {
	// ID is the identifier the zone is registered under.
	ID string `json:"id"`
	// Offset is the UTC offset in effect
	// before the first transition.
	Offset string `json:"offset"`
	// Transitions lists the offset changes.
	// They need not be sorted.
	Transitions []RuleTransition `json:"transitions,omitempty"`
}

// RuleTransition is a change of UTC offset.
type RuleTransition struct {
	// At is the instant of the change, written
	// as a date-time with an offset or Z.
	At string `json:"at"`
	// Offset is the UTC offset from At onward.
	Offset string `json:"offset"`
}

// just pick an upper limit on documents
const maxRulesSize = 1024 * 1024

// RuleLoader builds rule-table zones.
type RuleLoader struct {
	// Logf, if non-nil, receives diagnostics about
	// transitions that were dropped while loading.
	Logf func(f string, args ...interface{})
}

func (l *RuleLoader) logf(f string, args ...interface{}) {
	if l.Logf != nil {
		l.Logf(f, args...)
	}
}

// Decode reads a Rules document from src and builds it.
func (l *RuleLoader) Decode(src io.Reader) (TimeZone, error) {
	buf, err := io.ReadAll(io.LimitReader(src, maxRulesSize+1))
	if err != nil {
		return nil, err
	}
	if len(buf) > maxRulesSize {
		return nil, terr.Rangef("rules document beyond limit of %d bytes", maxRulesSize)
	}
	r := new(Rules)
	if err := yaml.Unmarshal(buf, r); err != nil {
		return nil, terr.Typef("decoding time zone rules: %s", err)
	}
	return l.Build(r)
}

type ruleTransition struct {
	at     timemath.DayTimeNano
	offset int64
}

type ruleZone struct {
	id      string
	initial int64
	trans   []ruleTransition
}

func parseRuleOffset(s string) (int64, error) {
	ns, err := iso8601.ParseOffset(s)
	if err != nil {
		return 0, err
	}
	if !iso8601.ValidOffset(ns) {
		return 0, terr.Rangef("offset %s out of range", s)
	}
	return ns, nil
}

// Build validates r and returns the zone it describes.
// Transitions that do not change the offset are dropped.
func (l *RuleLoader) Build(r *Rules) (TimeZone, error) {
	if r.ID == "" || iso8601.IsOffset(r.ID) || fold(r.ID) == "utc" {
		return nil, terr.Rangef("invalid rule zone id %q", r.ID)
	}
	z := &ruleZone{id: r.ID}
	var err error
	if z.initial, err = parseRuleOffset(r.Offset); err != nil {
		return nil, fmt.Errorf("zone %s: %w", r.ID, err)
	}
	for i := range r.Transitions {
		res, err := iso8601.Parse(r.Transitions[i].At, iso8601.KindInstant)
		if err != nil {
			return nil, fmt.Errorf("zone %s: transition %d: %w", r.ID, i, err)
		}
		at := res.DateTime().EpochNanoseconds().AddNanos(-res.Offset)
		if err := timemath.CheckEpoch(at); err != nil {
			return nil, fmt.Errorf("zone %s: transition %d: %w", r.ID, i, err)
		}
		off, err := parseRuleOffset(r.Transitions[i].Offset)
		if err != nil {
			return nil, fmt.Errorf("zone %s: transition %d: %w", r.ID, i, err)
		}
		z.trans = append(z.trans, ruleTransition{at: at, offset: off})
	}
	slices.SortStableFunc(z.trans, func(a, b ruleTransition) int {
		return timemath.Compare(a.at, b.at)
	})
	prev := z.initial
	kept := z.trans[:0]
	for i := range z.trans {
		t := z.trans[i]
		if len(kept) > 0 && kept[len(kept)-1].at == t.at {
			l.logf("zone %s: duplicate transition at %s replaced", r.ID, t.at)
			kept = kept[:len(kept)-1]
			prev = z.initial
			if len(kept) > 0 {
				prev = kept[len(kept)-1].offset
			}
		}
		if t.offset == prev {
			l.logf("zone %s: transition at %s does not change the offset; dropped", r.ID, t.at)
			continue
		}
		kept = append(kept, t)
		prev = t.offset
	}
	z.trans = kept
	return z, nil
}

// LoadRules decodes a YAML or JSON Rules
// document and registers the zone it describes.
func LoadRules(doc []byte, logf func(f string, args ...interface{})) (TimeZone, error) {
	l := &RuleLoader{Logf: logf}
	z, err := l.Decode(bytes.NewReader(doc))
	if err != nil {
		return nil, err
	}
	if err := Register(z); err != nil {
		return nil, err
	}
	return z, nil
}

func (z *ruleZone) ID() string { return z.id }

// index returns the number of transitions
// at or before epochNs.
func (z *ruleZone) index(epochNs timemath.DayTimeNano) int {
	i, found := slices.BinarySearchFunc(z.trans, epochNs, func(t ruleTransition, ns timemath.DayTimeNano) int {
		return timemath.Compare(t.at, ns)
	})
	if found {
		i++
	}
	return i
}

func (z *ruleZone) OffsetNanosecondsFor(epochNs timemath.DayTimeNano) int64 {
	i := z.index(epochNs)
	if i == 0 {
		return z.initial
	}
	return z.trans[i-1].offset
}

func (z *ruleZone) PossibleInstantsFor(dt date.DateTime) []timemath.DayTimeNano {
	return possibleInstants(z, dt)
}

func (z *ruleZone) Transition(epochNs timemath.DayTimeNano, dir Direction) (timemath.DayTimeNano, bool) {
	i := z.index(epochNs)
	if dir == Next {
		if i < len(z.trans) {
			return z.trans[i].at, true
		}
		return timemath.DayTimeNano{}, false
	}
	// transitions strictly before epochNs
	j := i
	if j > 0 && z.trans[j-1].at == epochNs {
		j--
	}
	if j > 0 {
		return z.trans[j-1].at, true
	}
	return timemath.DayTimeNano{}, false
}
