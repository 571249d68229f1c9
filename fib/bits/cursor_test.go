/*
DESCRIPTION
  cursor_test.go provides testing of the bit cursor, including a
  write-then-read round-trip property.

AUTHORS
  Saxon A. Nelson-Milton <saxon@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package bits

import (
	"testing"

	"pgregory.net/rapid"
)

// TestRead checks field extraction against hand-worked examples.
func TestRead(t *testing.T) {
	c := NewCursor([]byte{0x8f, 0xe3})

	tests := []struct {
		off   int
		width int
		want  uint32
	}{
		{0, 4, 0x8},
		{4, 4, 0xf},
		{0, 8, 0x8f},
		{8, 8, 0xe3},
		{0, 16, 0x8fe3},
		{6, 6, 0x3e},
		{0, 1, 1},
		{1, 1, 0},
		{15, 1, 1},
		{4, 10, 0x3f8},
	}

	for _, test := range tests {
		got := c.Read(test.off, test.width)
		if got != test.want {
			t.Errorf("Read(%d, %d) = %#x, want %#x", test.off, test.width, got, test.want)
		}
	}
}

// TestFixedWidthReads checks that the convenience wrappers agree with the
// general read.
func TestFixedWidthReads(t *testing.T) {
	c := NewCursor([]byte{0xa5, 0x3c, 0x7e, 0x01})

	for off := 0; off < 24; off++ {
		wrappers := []struct {
			width int
			got   uint32
		}{
			{1, c.Read1(off)},
			{2, c.Read2(off)},
			{3, c.Read3(off)},
			{4, c.Read4(off)},
			{5, c.Read5(off)},
			{6, c.Read6(off)},
			{7, c.Read7(off)},
			{8, c.Read8(off)},
		}
		for _, w := range wrappers {
			if want := c.Read(off, w.width); w.got != want {
				t.Errorf("Read%d(%d) = %#x, want %#x", w.width, off, w.got, want)
			}
		}
	}
}

// TestRoundTrip checks that for any value v and width w <= 32, writing v at
// offset o and reading w bits back at o yields v masked to w bits.
func TestRoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		const size = 16 // Bytes.
		width := rapid.IntRange(1, 32).Draw(t, "width")
		off := rapid.IntRange(0, size*8-width).Draw(t, "off")
		v := rapid.Uint32().Draw(t, "v")

		b := make([]byte, size)
		for i := range b {
			b[i] = byte(rapid.IntRange(0, 255).Draw(t, "fill"))
		}

		Put(b, off, width, v)
		got := NewCursor(b).Read(off, width)
		var want uint32
		if width == 32 {
			want = v
		} else {
			want = v & (1<<uint(width) - 1)
		}
		if got != want {
			t.Fatalf("Read(%d, %d) after Put = %#x, want %#x", off, width, got, want)
		}
	})
}

// TestPutPreservesNeighbours checks that a write touches only its own bit
// range.
func TestPutPreservesNeighbours(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		const size = 8 // Bytes.
		width := rapid.IntRange(1, 32).Draw(t, "width")
		off := rapid.IntRange(0, size*8-width).Draw(t, "off")
		v := rapid.Uint32().Draw(t, "v")

		b := make([]byte, size)
		for i := range b {
			b[i] = byte(rapid.IntRange(0, 255).Draw(t, "fill"))
		}
		before := NewCursor(append([]byte(nil), b...))

		Put(b, off, width, v)
		after := NewCursor(b)
		for i := 0; i < size*8; i++ {
			if i >= off && i < off+width {
				continue
			}
			if before.Read1(i) != after.Read1(i) {
				t.Fatalf("bit %d changed by Put(%d, %d)", i, off, width)
			}
		}
	})
}
