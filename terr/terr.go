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

// Package terr defines the error classes raised
// by the date/time engine.
//
// Every error returned by this module wraps exactly
// one of ErrRange, ErrType, or ErrParse, so callers
// can classify failures with errors.Is.
package terr

import (
	"errors"
	"fmt"
)

var (
	// ErrRange is wrapped by errors for values
	// outside of their permitted range, including
	// out-of-range fields under the reject overflow
	// policy, mixed-sign durations, and unit
	// combinations that cannot be resolved.
	ErrRange = errors.New("range error")
	// ErrType is wrapped by errors for malformed
	// inputs such as incomplete field bags.
	ErrType = errors.New("type error")
	// ErrParse is wrapped by errors for malformed
	// ISO 8601 / RFC 9557 strings.
	ErrParse = errors.New("parse error")
)

// Rangef returns an error wrapping ErrRange.
func Rangef(f string, args ...interface{}) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(f, args...), ErrRange)
}

// Typef returns an error wrapping ErrType.
func Typef(f string, args ...interface{}) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(f, args...), ErrType)
}

// ParseError describes a malformed string.
type ParseError struct {
	// Input is the complete string being parsed.
	Input string
	// Offset is the byte offset in Input
	// at which parsing failed.
	Offset int
	// Reason describes what was expected.
	Reason string
}

// Parse returns a *ParseError for input at offset at.
func Parse(input string, at int, reason string) error {
	if at < 0 {
		at = 0
	}
	if at > len(input) {
		at = len(input)
	}
	return &ParseError{Input: input, Offset: at, Reason: reason}
}

func (e *ParseError) Error() string {
	rest := e.Input[e.Offset:]
	if len(rest) > 16 {
		rest = rest[:16] + "..."
	}
	if rest == "" {
		return fmt.Sprintf("cannot parse %q: %s at end of input", e.Input, e.Reason)
	}
	return fmt.Sprintf("cannot parse %q: %s at %q", e.Input, e.Reason, rest)
}

// Is allows errors.Is(err, ErrParse) to match.
func (e *ParseError) Is(target error) bool {
	return target == ErrParse
}
