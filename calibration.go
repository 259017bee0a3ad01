// SPDX-License-Identifier: MPL-2.0
/*
 * Copyright (C) 2024 Damian Peckett <damian@pecke.tt>.
 *
 * This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at http://mozilla.org/MPL/2.0/.
 */

package edf

import "math"

// Calibrated reports whether both calibration ranges are non-empty and
// correctly ordered. The decoder does not enforce this.
func (c Channel) Calibrated() bool {
	return c.DigitalMax > c.DigitalMin && c.PhysicalMax > c.PhysicalMin
}

// Physical converts a digital sample value to physical units using the
// channel calibration.
func (c Channel) Physical(digital int) float64 {
	if c.DigitalMax == c.DigitalMin {
		return 0 // Avoid division by zero
	}
	return c.PhysicalMin + (float64(digital)-float64(c.DigitalMin))*c.Gain()
}

// Digital converts a physical value to the nearest digital sample value,
// clamped to the digital range.
func (c Channel) Digital(physical float64) int {
	if c.PhysicalMax == c.PhysicalMin {
		return 0 // Avoid division by zero
	}
	lo, hi := c.DigitalMin, c.DigitalMax
	if lo > hi {
		lo, hi = hi, lo
	}
	digital := math.Round((physical-c.PhysicalMin)/c.Gain()) + float64(c.DigitalMin)
	return int(math.Max(float64(lo), math.Min(float64(hi), digital)))
}

// Gain returns the physical units per digital step.
func (c Channel) Gain() float64 {
	return (c.PhysicalMax - c.PhysicalMin) / float64(c.DigitalMax-c.DigitalMin)
}
