// SPDX-License-Identifier: MPL-2.0
/*
 * Copyright (C) 2024 Damian Peckett <damian@pecke.tt>.
 *
 * This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at http://mozilla.org/MPL/2.0/.
 */

package edf

// FixedHeaderSize is the size of the fixed part of the header, before the
// channel block.
const FixedHeaderSize = 256

// DefaultMaxSignals is the largest signal count the 4 byte field can hold.
const DefaultMaxSignals = 9999

type field struct {
	name  string
	width int
}

// Fixed header fields, in file order.
const (
	hdrVersion = iota
	hdrPatientInfo
	hdrRecordingInfo
	hdrStartDate
	hdrStartTime
	hdrHeaderBytes
	hdrReserved
	hdrNumRecords
	hdrDuration
	hdrNumSignals
	numHeaderFields
)

var headerFields = [numHeaderFields]field{
	hdrVersion:       {"version", 8},
	hdrPatientInfo:   {"patientInfo", 80},
	hdrRecordingInfo: {"recordingInfo", 80},
	hdrStartDate:     {"startDate", 8},
	hdrStartTime:     {"startTime", 8},
	hdrHeaderBytes:   {"headerBytes", 8},
	hdrReserved:      {"reserved", 44},
	hdrNumRecords:    {"numRecords", 8},
	hdrDuration:      {"duration", 8},
	hdrNumSignals:    {"numSignals", 4},
}

// Channel block arrays, in file order. Each array holds one entry per signal.
const (
	sigLabel = iota
	sigTransducerType
	sigPhysicalDimension
	sigPhysicalMinimum
	sigPhysicalMaximum
	sigDigitalMinimum
	sigDigitalMaximum
	sigPrefiltering
	sigSamplesPerRecord
	sigReserved
	numSignalFields
)

var signalFields = [numSignalFields]field{
	sigLabel:             {"label", 16},
	sigTransducerType:    {"transducerType", 80},
	sigPhysicalDimension: {"physicalDimension", 8},
	sigPhysicalMinimum:   {"physicalMinimum", 8},
	sigPhysicalMaximum:   {"physicalMaximum", 8},
	sigDigitalMinimum:    {"digitalMinimum", 8},
	sigDigitalMaximum:    {"digitalMaximum", 8},
	sigPrefiltering:      {"prefiltering", 80},
	sigSamplesPerRecord:  {"samplesPerRecord", 8},
	sigReserved:          {"reserved", 32},
}

// headerStarts holds the start offset of every fixed header field.
var headerStarts = func() (starts [numHeaderFields + 1]int) {
	for i, f := range headerFields {
		starts[i+1] = starts[i] + f.width
	}
	return starts
}()

// headerSpan returns the byte range [start, end) of a fixed header field.
func headerSpan(idx int) (int, int) {
	return headerStarts[idx], headerStarts[idx+1]
}

// Layout holds the array offsets of the channel block for a given signal
// count.
type Layout struct {
	numSignals int
	starts     [numSignalFields + 1]int
}

// NewLayout computes the channel block layout for numSignals signals.
func NewLayout(numSignals int) Layout {
	l := Layout{numSignals: numSignals}
	l.starts[0] = FixedHeaderSize
	for i, f := range signalFields {
		l.starts[i+1] = l.starts[i] + numSignals*f.width
	}
	return l
}

// Stride returns the number of channel block bytes used by one signal.
func Stride() int {
	n := 0
	for _, f := range signalFields {
		n += f.width
	}
	return n
}

// span returns the byte range [start, end) of entry i of array idx.
func (l Layout) span(idx, i int) (int, int) {
	w := signalFields[idx].width
	start := l.starts[idx] + i*w
	return start, start + w
}

// Required returns the number of bytes needed to decode every channel. The
// trailing reserved array is not needed.
func (l Layout) Required() int {
	return l.starts[sigReserved]
}

// HeaderBytes returns the full header size, reserved array included, as
// recorded in the headerBytes field of a well-formed file.
func (l Layout) HeaderBytes() int {
	return l.starts[numSignalFields]
}
