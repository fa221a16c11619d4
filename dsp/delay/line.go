// Package delay provides the tapped delay line that supplies adaptive
// filters with their feature windows.
package delay

import "fmt"

// Line is a circular delay line over the most recent Len samples.
type Line struct {
	buffer   []float64
	writePos int
	written  int
}

// New returns a delay line of fixed size.
func New(size int) (*Line, error) {
	if size <= 0 {
		return nil, fmt.Errorf("delay size must be > 0: %d", size)
	}
	return &Line{buffer: make([]float64, size)}, nil
}

// Len returns internal buffer size.
func (d *Line) Len() int {
	return len(d.buffer)
}

// Full reports whether at least Len samples have been written since the
// last Reset, i.e. every tap holds a real input sample.
func (d *Line) Full() bool {
	return d.written >= len(d.buffer)
}

// Written returns the number of samples written since the last Reset.
func (d *Line) Written() int {
	return d.written
}

// Write writes one sample.
func (d *Line) Write(sample float64) {
	d.buffer[d.writePos] = sample
	d.writePos++
	if d.writePos >= len(d.buffer) {
		d.writePos = 0
	}
	d.written++
}

// Read returns the sample written delay writes ago. Read(1) is the most
// recent sample and Read(Len()) the oldest one still held.
func (d *Line) Read(delay int) float64 {
	size := len(d.buffer)
	readPos := ((d.writePos-delay)%size + size) % size
	return d.buffer[readPos]
}

// Taps copies the line into dst in reverse chronological order:
//
//	dst[k] = Read(k+1),  k = 0..Len()-1
//
// dst must have length Len().
func (d *Line) Taps(dst []float64) {
	n := len(d.buffer)
	_ = dst[n-1] // bounds check hint
	p := d.writePos
	for k := range n {
		p--
		if p < 0 {
			p = n - 1
		}
		dst[k] = d.buffer[p]
	}
}

// Reset clears line state.
func (d *Line) Reset() {
	for i := range d.buffer {
		d.buffer[i] = 0
	}
	d.writePos = 0
	d.written = 0
}
