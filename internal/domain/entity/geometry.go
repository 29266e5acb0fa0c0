// Package entity defines domain entities for the stereo output.
package entity

import "fmt"

// Rect is a window or monitor rectangle in virtual desktop coordinates.
type Rect struct {
	X, Y int // Top-left corner
	W, H int // Width and height
}

// Center returns the center point of the rectangle.
func (r Rect) Center() (cx, cy int) {
	return r.X + r.W/2, r.Y + r.H/2
}

// Contains reports whether the point lies inside the rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Empty reports whether the rectangle has no area.
func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

func (r Rect) String() string {
	return fmt.Sprintf("%dx%d+%d+%d", r.W, r.H, r.X, r.Y)
}

// Monitor describes one attached display.
type Monitor struct {
	ID   int
	Name string
	// PnPID is the EDID manufacturer/product code, e.g. "IWR0110".
	PnPID string
	Rect  Rect
	// FreqMax is the highest refresh rate the monitor reports, in Hz.
	FreqMax int
}

// Monitors is the list of attached displays in enumeration order.
type Monitors []Monitor

// At returns the monitor containing the point, falling back to the
// nearest monitor by center distance, then to the first monitor.
// Returns the zero Monitor when the list is empty.
func (m Monitors) At(x, y int) Monitor {
	if len(m) == 0 {
		return Monitor{}
	}
	for _, mon := range m {
		if mon.Rect.Contains(x, y) {
			return mon
		}
	}
	best := 0
	bestDist := -1
	for i, mon := range m {
		cx, cy := mon.Rect.Center()
		d := (cx-x)*(cx-x) + (cy-y)*(cy-y)
		if bestDist < 0 || d < bestDist {
			best, bestDist = i, d
		}
	}
	return m[best]
}

// HighestFreq returns the monitor with the highest refresh rate.
// Ties keep the earliest monitor.
func (m Monitors) HighestFreq() Monitor {
	if len(m) == 0 {
		return Monitor{}
	}
	best := 0
	for i, mon := range m {
		if mon.FreqMax > m[best].FreqMax {
			best = i
		}
	}
	return m[best]
}
