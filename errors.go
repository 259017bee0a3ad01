// SPDX-License-Identifier: MPL-2.0
/*
 * Copyright (C) 2024 Damian Peckett <damian@pecke.tt>.
 *
 * This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at http://mozilla.org/MPL/2.0/.
 */

package edf

import "fmt"

// TruncatedBufferError is returned when the buffer ends before the header
// block does.
type TruncatedBufferError struct {
	Size int64 // Size of the buffer
	Want int64 // Number of bytes needed
}

func (e *TruncatedBufferError) Error() string {
	return fmt.Sprintf("edf: truncated header: have %d bytes, need %d", e.Size, e.Want)
}

// FormatError is returned when a numeric field cannot be parsed.
type FormatError struct {
	Field   string // Name of the field
	Channel int    // Channel index, -1 for fixed header fields
	Text    string // Raw field text
	Err     error
}

func (e *FormatError) Error() string {
	if e.Channel < 0 {
		return fmt.Sprintf("edf: invalid %s %q: %v", e.Field, e.Text, e.Err)
	}
	return fmt.Sprintf("edf: channel %d: invalid %s %q: %v", e.Channel, e.Field, e.Text, e.Err)
}

func (e *FormatError) Unwrap() error {
	return e.Err
}

// InvalidSignalCountError is returned when numSignals is negative or larger
// than the configured maximum.
type InvalidSignalCountError struct {
	Count int
	Max   int
}

func (e *InvalidSignalCountError) Error() string {
	return fmt.Sprintf("edf: invalid signal count %d (max %d)", e.Count, e.Max)
}
