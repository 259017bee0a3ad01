// SPDX-License-Identifier: MPL-2.0
/*
 * Copyright (C) 2024 Damian Peckett <damian@pecke.tt>.
 *
 * This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at http://mozilla.org/MPL/2.0/.
 */

package edf_test

import (
	"bytes"
	"fmt"

	"github.com/OpenPSG/edfheader"
)

// encodeHeader writes a header block the way EDF writers do: every field
// left aligned and space padded to its width.
func encodeHeader(hdr edf.Header, channels []edf.Channel) []byte {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "%-8s", hdr.Version)
	fmt.Fprintf(&buf, "%-80s", hdr.PatientInfo)
	fmt.Fprintf(&buf, "%-80s", hdr.RecordingInfo)
	fmt.Fprintf(&buf, "%-8s", hdr.StartDate)
	fmt.Fprintf(&buf, "%-8s", hdr.StartTime)
	fmt.Fprintf(&buf, "%-8d", hdr.HeaderBytes)

	// 44 empty reserved bytes.
	fmt.Fprintf(&buf, "%-44s", "")

	fmt.Fprintf(&buf, "%-8d", hdr.NumRecords)
	fmt.Fprintf(&buf, "%-8s", formatPhysicalValue(hdr.Duration))
	fmt.Fprintf(&buf, "%-4d", hdr.NumSignals)

	for _, ch := range channels {
		fmt.Fprintf(&buf, "%-16s", ch.Label)
	}
	for range channels {
		fmt.Fprintf(&buf, "%-80s", "AgAgCl electrode")
	}
	for _, ch := range channels {
		fmt.Fprintf(&buf, "%-8s", ch.Dimension)
	}
	for _, ch := range channels {
		fmt.Fprintf(&buf, "%-8s", formatPhysicalValue(ch.PhysicalMin))
	}
	for _, ch := range channels {
		fmt.Fprintf(&buf, "%-8s", formatPhysicalValue(ch.PhysicalMax))
	}
	for _, ch := range channels {
		fmt.Fprintf(&buf, "%-8d", ch.DigitalMin)
	}
	for _, ch := range channels {
		fmt.Fprintf(&buf, "%-8d", ch.DigitalMax)
	}
	for range channels {
		fmt.Fprintf(&buf, "%-80s", "HP:0.1Hz LP:75Hz")
	}
	for _, ch := range channels {
		fmt.Fprintf(&buf, "%-8d", ch.SampleRate)
	}

	// Reserved for future use
	for range channels {
		fmt.Fprintf(&buf, "%-32s", "")
	}

	return buf.Bytes()
}

func formatPhysicalValue(val float64) string {
	// Try with 2 decimal places
	s := fmt.Sprintf("%.2f", val)
	if len(s) > 8 {
		// Fall back to no decimal
		s = fmt.Sprintf("%.0f", val)
	}
	return s
}

// put overwrites a fixed-width field of b with s, space padded.
func put(b []byte, start, end int, s string) {
	copy(b[start:end], fmt.Sprintf("%-*s", end-start, s))
}

func sampleHeader() (edf.Header, []edf.Channel) {
	channels := []edf.Channel{
		{
			Label:       "EEG Fp1",
			Dimension:   "uV",
			PhysicalMin: -500,
			PhysicalMax: 500,
			DigitalMin:  -2048,
			DigitalMax:  2047,
			SampleRate:  256,
		},
		{
			Label:       "EEG Fp2",
			Dimension:   "uV",
			PhysicalMin: -250.5,
			PhysicalMax: 250.5,
			DigitalMin:  -32768,
			DigitalMax:  32767,
			SampleRate:  128,
		},
	}
	hdr := edf.Header{
		Version:       edf.Version0,
		PatientInfo:   "X F 01-JAN-1970 Patient_X",
		RecordingInfo: "Startdate 19-OCT-2026 PSG-1 technician device",
		StartDate:     "19.10.26",
		StartTime:     "22.15.00",
		HeaderBytes:   edf.NewLayout(len(channels)).HeaderBytes(),
		NumRecords:    720,
		Duration:      30,
		NumSignals:    len(channels),
	}
	return hdr, channels
}
