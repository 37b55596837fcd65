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

package iso8601

// Annotation is a bracketed key=value suffix.
type Annotation struct {
	Key, Value string
	Critical   bool
}

func isAlpha(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}

func isKeyStart(c byte) bool { return c >= 'a' && c <= 'z' || c == '_' }

func isKeyChar(c byte) bool { return isKeyStart(c) || isDigit(c) || c == '-' }

func isZoneChar(c byte) bool {
	return isAlpha(c) || isDigit(c) || c == '.' || c == '_' || c == '-' || c == '+' || c == '/'
}

// bracket reads "[" ["!"] body "]" and
// returns the body and the critical flag.
func (p *parser) bracket() (string, bool, error) {
	p.pos++
	critical := p.peek() == '!'
	if critical {
		p.pos++
	}
	start := p.pos
	for !p.done() && p.peek() != ']' {
		p.pos++
	}
	if p.done() {
		return "", false, p.errorf("unterminated annotation")
	}
	body := p.in[start:p.pos]
	p.pos++
	return body, critical, nil
}

// annotations reads the optional time zone annotation
// followed by any key=value annotations, and requires
// that nothing else follows.
func (p *parser) annotations(r *Result) error {
	first := true
	calendars := 0
	criticalCalendar := false
	for !p.done() {
		if p.peek() != '[' {
			return p.errorf("unexpected trailing characters")
		}
		at := p.pos
		body, critical, err := p.bracket()
		if err != nil {
			return err
		}
		eq := -1
		for i := 0; i < len(body); i++ {
			if body[i] == '=' {
				eq = i
				break
			}
		}
		if eq < 0 {
			if !first {
				p.pos = at
				return p.errorf("time zone annotation must come first")
			}
			if why := zoneProblem(body); why != "" {
				p.pos = at
				return p.errorf(why)
			}
			r.Zone = body
			first = false
			continue
		}
		first = false
		a := Annotation{Key: body[:eq], Value: body[eq+1:], Critical: critical}
		if !validKey(a.Key) || !validValue(a.Value) {
			p.pos = at
			return p.errorf("malformed annotation")
		}
		switch a.Key {
		case "u-ca":
			calendars++
			criticalCalendar = criticalCalendar || critical
			if calendars > 1 && criticalCalendar {
				p.pos = at
				return p.errorf("conflicting critical calendar annotations")
			}
			if calendars == 1 {
				r.Calendar = a.Value
			}
		default:
			if critical {
				p.pos = at
				return p.errorf("unknown critical annotation")
			}
		}
	}
	return nil
}

// zoneProblem returns why s is not a valid time
// zone annotation, or "" if it is valid.
func zoneProblem(s string) string {
	if s == "" {
		return "empty time zone annotation"
	}
	if IsOffset(s) {
		if _, err := ParseOffset(s); err != nil {
			return "invalid offset time zone annotation"
		}
		return ""
	}
	part := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		if !isZoneChar(c) {
			return "invalid time zone name"
		}
		if c == '/' {
			if part == 0 {
				return "empty time zone name component"
			}
			part = 0
			continue
		}
		if part == 0 && (isDigit(c) || c == '-' || c == '+') {
			return "invalid time zone name"
		}
		part++
	}
	if part == 0 {
		return "empty time zone name component"
	}
	return ""
}

func validKey(k string) bool {
	if k == "" || !isKeyStart(k[0]) {
		return false
	}
	for i := 1; i < len(k); i++ {
		if !isKeyChar(k[i]) {
			return false
		}
	}
	return true
}

// validValue accepts one or more hyphen-separated
// alphanumeric components of 3 to 8 characters.
func validValue(v string) bool {
	n := 0
	for i := 0; i <= len(v); i++ {
		if i == len(v) || v[i] == '-' {
			if n < 3 || n > 8 {
				return false
			}
			n = 0
			continue
		}
		if !isAlpha(v[i]) && !isDigit(v[i]) {
			return false
		}
		n++
	}
	return true
}
