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
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
)

var (
	errEmpty     = errors.New("empty field")
	errNotFinite = errors.New("value is not finite")
)

// Source is a random access, read-only view over the header bytes of an
// EDF/EDF+ file.
type Source interface {
	io.ReaderAt
	Size() int64
}

// Option configures decoding.
type Option func(*options)

type options struct {
	maxSignals int
	charmap    encoding.Encoding
}

// WithMaxSignals sets the largest accepted signal count. Values below zero
// are ignored.
func WithMaxSignals(n int) Option {
	return func(o *options) {
		if n >= 0 {
			o.maxSignals = n
		}
	}
}

// WithCharmap sets the 8 bit encoding used for text fields. The default is
// ISO 8859-1.
func WithCharmap(enc encoding.Encoding) Option {
	return func(o *options) {
		if enc != nil {
			o.charmap = enc
		}
	}
}

// Decode decodes the header block held in b.
func Decode(b []byte, opts ...Option) (*File, error) {
	return Read(bytes.NewReader(b), opts...)
}

// Read decodes the header block of an EDF/EDF+ file.
func Read(src Source, opts ...Option) (*File, error) {
	o := options{
		maxSignals: DefaultMaxSignals,
		charmap:    charmap.ISO8859_1,
	}
	for _, opt := range opts {
		opt(&o)
	}

	size := src.Size()
	b, err := readSpan(src, 0, FixedHeaderSize)
	if err != nil {
		return nil, err
	}

	d := &decoder{dec: o.charmap.NewDecoder(), channel: -1}
	hdr := d.header(b)
	if d.err != nil {
		return nil, d.err
	}

	if hdr.NumSignals < 0 || hdr.NumSignals > o.maxSignals {
		return nil, &InvalidSignalCountError{Count: hdr.NumSignals, Max: o.maxSignals}
	}

	layout := NewLayout(hdr.NumSignals)
	if want := int64(layout.Required()); size < want {
		return nil, &TruncatedBufferError{Size: size, Want: want}
	}

	// Re-read from offset zero so that layout offsets index b directly.
	b, err = readSpan(src, 0, layout.Required())
	if err != nil {
		return nil, err
	}

	channels := make([]Channel, hdr.NumSignals)
	for i := range channels {
		d.channel = i
		channels[i] = d.channelAt(b, layout, i)
		if d.err != nil {
			return nil, d.err
		}
	}

	return &File{Header: hdr, Channels: channels}, nil
}

func readSpan(src Source, start, end int) ([]byte, error) {
	if size := src.Size(); size < int64(end) {
		return nil, &TruncatedBufferError{Size: size, Want: int64(end)}
	}

	b := make([]byte, end-start)
	n, err := src.ReadAt(b, int64(start))
	if n < len(b) {
		if err == nil || errors.Is(err, io.EOF) {
			err = io.ErrUnexpectedEOF
		}
		return nil, fmt.Errorf("edf: error reading header: %w", err)
	}

	return b, nil
}

// decoder extracts fixed-width fields. The first error is kept and every
// later call becomes a no-op.
type decoder struct {
	dec     *encoding.Decoder
	channel int
	err     error
}

func (d *decoder) header(b []byte) Header {
	field := func(idx int) (string, []byte) {
		start, end := headerSpan(idx)
		return headerFields[idx].name, b[start:end]
	}

	var hdr Header
	_, v := field(hdrVersion)
	hdr.Version = Version(d.text(v))
	_, v = field(hdrPatientInfo)
	hdr.PatientInfo = d.text(v)
	_, v = field(hdrRecordingInfo)
	hdr.RecordingInfo = d.text(v)
	_, v = field(hdrStartDate)
	hdr.StartDate = d.text(v)
	_, v = field(hdrStartTime)
	hdr.StartTime = d.text(v)
	hdr.HeaderBytes = d.atoi(field(hdrHeaderBytes))
	hdr.NumRecords = d.atoi(field(hdrNumRecords))
	hdr.Duration = d.atof(field(hdrDuration))
	hdr.NumSignals = d.atoi(field(hdrNumSignals))
	return hdr
}

func (d *decoder) channelAt(b []byte, l Layout, i int) Channel {
	field := func(idx int) (string, []byte) {
		start, end := l.span(idx, i)
		return signalFields[idx].name, b[start:end]
	}

	var ch Channel
	_, v := field(sigLabel)
	ch.Label = d.text(v)
	_, v = field(sigPhysicalDimension)
	ch.Dimension = d.text(v)
	ch.PhysicalMin = d.atof(field(sigPhysicalMinimum))
	ch.PhysicalMax = d.atof(field(sigPhysicalMaximum))
	ch.DigitalMin = d.atoi(field(sigDigitalMinimum))
	ch.DigitalMax = d.atoi(field(sigDigitalMaximum))
	ch.SampleRate = d.atoi(field(sigSamplesPerRecord))
	return ch
}

func (d *decoder) text(b []byte) string {
	if d.err != nil {
		return ""
	}
	// The charmaps map every byte, so this only fails for other encodings.
	// Fall back to the raw bytes then.
	s, err := d.dec.Bytes(b)
	if err != nil {
		s = b
	}
	return strings.TrimFunc(string(s), isPadding)
}

func (d *decoder) atoi(name string, b []byte) int {
	s := d.text(b)
	if d.err != nil {
		return 0
	}
	v, err := parseInt(s)
	if err != nil {
		d.err = &FormatError{Field: name, Channel: d.channel, Text: s, Err: err}
		return 0
	}
	return v
}

func (d *decoder) atof(name string, b []byte) float64 {
	s := d.text(b)
	if d.err != nil {
		return 0
	}
	v, err := parseFloat(s)
	if err != nil {
		d.err = &FormatError{Field: name, Channel: d.channel, Text: s, Err: err}
		return 0
	}
	return v
}

func isPadding(r rune) bool {
	return r == 0 || unicode.IsSpace(r)
}

func parseInt(s string) (int, error) {
	if s == "" {
		return 0, errEmpty
	}
	i, err := strconv.Atoi(s)
	if err == nil {
		return i, nil
	}
	// Some writers emit integer fields as "256." or "256.0".
	f, ferr := strconv.ParseFloat(s, 64)
	if ferr != nil || f != math.Trunc(f) || math.Abs(f) > math.MaxInt32 {
		return 0, err
	}
	return int(f), nil
}

func parseFloat(s string) (float64, error) {
	if s == "" {
		return 0, errEmpty
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, errNotFinite
	}
	return f, nil
}
