// SPDX-License-Identifier: MPL-2.0
/*
 * Copyright (C) 2024 Damian Peckett <damian@pecke.tt>.
 *
 * This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at http://mozilla.org/MPL/2.0/.
 */

// edf-header decodes and displays the header block of EDF/EDF+ files.
//
// Usage: edf-header [OPTIONS] FILE1 [FILE2 [FILE3 ...]]
//
// Example:
//
//	$> edf-header ./testdata/night.edf
//	=== ./testdata/night.edf ===
//	Version:       0
//	Patient:       X F 01-JAN-1970 Patient_X
//	Recording:     Startdate 19-OCT-2026 PSG-1
//	Start:         2026-10-19 22:15:00
//	Header size:   768 B
//	Data records:  720
//	Record length: 30s
//	Signals:       2
//	    0 EEG Fp1          uV       [-500, 500] [-2048, 2047] 256
//	    1 EEG Fp2          uV       [-500, 500] [-2048, 2047] 256
package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"runtime"

	"github.com/OpenPSG/edfheader"
	"github.com/OpenPSG/edfheader/internal/mmap"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"
)

type config struct {
	format     string
	maxSignals int
	jobs       int
}

func main() {
	log.SetPrefix("edf-header: ")
	log.SetFlags(0)

	if err := newRootCmd(os.Stdout).Execute(); err != nil {
		log.Fatal(err)
	}
}

func newRootCmd(w io.Writer) *cobra.Command {
	var cfg config

	cmd := &cobra.Command{
		Use:           "edf-header [OPTIONS] FILE1 [FILE2 [FILE3 ...]]",
		Short:         "edf-header decodes and displays the header block of EDF/EDF+ files.",
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), w, args, cfg)
		},
	}

	cmd.Flags().StringVarP(&cfg.format, "format", "f", "text", "output format (text, json, yaml)")
	cmd.Flags().IntVar(&cfg.maxSignals, "max-signals", edf.DefaultMaxSignals, "largest accepted signal count")
	cmd.Flags().IntVarP(&cfg.jobs, "jobs", "j", runtime.NumCPU(), "number of files decoded in parallel")

	return cmd
}

type result struct {
	Name string    `json:"name" yaml:"name"`
	File *edf.File `json:"file" yaml:"file"`
}

func run(ctx context.Context, w io.Writer, fnames []string, cfg config) error {
	if ctx == nil {
		ctx = context.Background()
	}

	switch cfg.format {
	case "text", "json", "yaml":
	default:
		return fmt.Errorf("invalid output format %q", cfg.format)
	}

	results := make([]result, len(fnames))

	grp, ctx := errgroup.WithContext(ctx)
	if cfg.jobs > 0 {
		grp.SetLimit(cfg.jobs)
	}
	for i, fname := range fnames {
		i, fname := i, fname
		grp.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			f, err := process(fname, edf.WithMaxSignals(cfg.maxSignals))
			if err != nil {
				return fmt.Errorf("could not decode file %q: %w", fname, err)
			}
			results[i] = result{Name: fname, File: f}
			return nil
		})
	}
	if err := grp.Wait(); err != nil {
		return err
	}

	wbuf := bufio.NewWriter(w)

	switch cfg.format {
	case "json":
		enc := json.NewEncoder(wbuf)
		enc.SetIndent("", "  ")
		if err := enc.Encode(results); err != nil {
			return fmt.Errorf("could not encode json: %w", err)
		}
	case "yaml":
		enc := yaml.NewEncoder(wbuf)
		if err := enc.Encode(results); err != nil {
			return fmt.Errorf("could not encode yaml: %w", err)
		}
		if err := enc.Close(); err != nil {
			return fmt.Errorf("could not encode yaml: %w", err)
		}
	default:
		for _, res := range results {
			display(wbuf, res.Name, res.File)
		}
	}

	return wbuf.Flush()
}

func process(fname string, opts ...edf.Option) (*edf.File, error) {
	h, err := mmap.Open(fname)
	if err != nil {
		return nil, fmt.Errorf("could not open %q: %w", fname, err)
	}
	defer h.Close()

	return edf.Read(h, opts...)
}

func display(w io.Writer, name string, f *edf.File) {
	hdr := f.Header

	start := hdr.StartDate + " " + hdr.StartTime
	if t, err := hdr.Start(); err == nil {
		start = t.Format("2006-01-02 15:04:05")
	}

	records := "unknown"
	if hdr.NumRecords >= 0 {
		records = humanize.Comma(int64(hdr.NumRecords))
	}

	fmt.Fprintf(w, "=== %s ===\n", name)
	fmt.Fprintf(w, "Version:       %s\n", hdr.Version)
	fmt.Fprintf(w, "Patient:       %s\n", hdr.PatientInfo)
	fmt.Fprintf(w, "Recording:     %s\n", hdr.RecordingInfo)
	fmt.Fprintf(w, "Start:         %s\n", start)
	fmt.Fprintf(w, "Header size:   %s\n", humanize.Bytes(uint64(max(hdr.HeaderBytes, 0))))
	fmt.Fprintf(w, "Data records:  %s\n", records)
	fmt.Fprintf(w, "Record length: %v\n", hdr.RecordDuration())
	fmt.Fprintf(w, "Signals:       %d\n", hdr.NumSignals)

	for i, ch := range f.Channels {
		fmt.Fprintf(w, "  % 3d %-16s %-8s [%g, %g] [%d, %d] %d\n",
			i, ch.Label, ch.Dimension,
			ch.PhysicalMin, ch.PhysicalMax,
			ch.DigitalMin, ch.DigitalMax,
			ch.SampleRate,
		)
	}
}
