// SPDX-License-Identifier: MPL-2.0
/*
 * Copyright (C) 2024 Damian Peckett <damian@pecke.tt>.
 *
 * This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at http://mozilla.org/MPL/2.0/.
 */

package edf

import (
	"fmt"
	"strconv"
	"time"
)

type Version string

const (
	// Version0 represents the version of the EDF/EDF+ standard.
	Version0 Version = "0"
)

// File is the decoded header block of an EDF/EDF+ file.
type File struct {
	Header   Header    `json:"header" yaml:"header"`
	Channels []Channel `json:"channels" yaml:"channels"` // Ordered by signal index
}

// Header represents the fixed 256 byte EDF/EDF+ file header.
type Header struct {
	Version       Version `json:"version" yaml:"version"`             // Version of the EDF/EDF+ standard (usually "0")
	PatientInfo   string  `json:"patientInfo" yaml:"patientInfo"`     // Identification of the patient
	RecordingInfo string  `json:"recordingInfo" yaml:"recordingInfo"` // Identification of the recording session
	StartDate     string  `json:"startDate" yaml:"startDate"`         // Start date of the recording (dd.mm.yy)
	StartTime     string  `json:"startTime" yaml:"startTime"`         // Start time of the recording (hh.mm.ss)
	HeaderBytes   int     `json:"headerBytes" yaml:"headerBytes"`     // Number of bytes in the header, channel block included
	NumRecords    int     `json:"numRecords" yaml:"numRecords"`       // Number of data records, -1 if unknown
	Duration      float64 `json:"duration" yaml:"duration"`           // Duration of a single data record in seconds
	NumSignals    int     `json:"numSignals" yaml:"numSignals"`       // Number of signals in each data record
}

// Channel represents the characteristics of a single signal.
type Channel struct {
	Label       string  `json:"label" yaml:"label"`             // Label of the signal (e.g., EEG Fpz-Cz)
	Dimension   string  `json:"dimension" yaml:"dimension"`     // Physical dimension (e.g., uV, mV)
	PhysicalMin float64 `json:"physicalMin" yaml:"physicalMin"` // Minimum physical value
	PhysicalMax float64 `json:"physicalMax" yaml:"physicalMax"` // Maximum physical value
	DigitalMin  int     `json:"digitalMin" yaml:"digitalMin"`   // Minimum digital value
	DigitalMax  int     `json:"digitalMax" yaml:"digitalMax"`   // Maximum digital value
	SampleRate  int     `json:"sampleRate" yaml:"sampleRate"`   // Number of samples in each data record for this signal
}

// RecordDuration returns the duration of a single data record.
func (h Header) RecordDuration() time.Duration {
	return time.Duration(h.Duration * float64(time.Second))
}

// Start parses the start date and time of the recording.
//
// EDF only stores two year digits; years 85-99 are mapped to 1985-1999 and
// 00-84 to 2000-2084.
func (h Header) Start() (time.Time, error) {
	date, err := time.Parse("02.01.06", h.StartDate)
	if err != nil {
		return time.Time{}, fmt.Errorf("error parsing start date: %w", err)
	}
	clock, err := time.Parse("15.04.05", h.StartTime)
	if err != nil {
		return time.Time{}, fmt.Errorf("error parsing start time: %w", err)
	}

	yy, err := strconv.Atoi(h.StartDate[len(h.StartDate)-2:])
	if err != nil {
		return time.Time{}, fmt.Errorf("error parsing start year: %w", err)
	}
	year := 2000 + yy
	if yy >= 85 {
		year = 1900 + yy
	}

	return time.Date(year, date.Month(), date.Day(),
		clock.Hour(), clock.Minute(), clock.Second(), 0, time.UTC), nil
}
