/*
DESCRIPTION
  cursor.go provides a bit-addressed cursor over a byte slice for decoding
  the bitfields of fast information groups.

AUTHORS
  Saxon A. Nelson-Milton <saxon@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package bits provides a bit-addressed view over a byte slice, reading
// unsigned fields of 1 to 32 bits at arbitrary bit offsets, MSB first.
// Bit 0 is the most significant bit of byte 0.
package bits

// Cursor is a read-only bit-addressed view over a byte slice. Fields are
// addressed by absolute bit offset rather than consumed in sequence, since
// FIG decoding frequently revisits and skips regions of the buffer. The
// caller is responsible for staying within the buffer; FIB payloads have a
// fixed, known length.
type Cursor struct {
	b []byte
}

// NewCursor returns a Cursor over b. The cursor holds a reference to b, not
// a copy.
func NewCursor(b []byte) Cursor {
	return Cursor{b: b}
}

// Read returns the width-bit unsigned field starting at bit offset off in
// the least-significant part of a uint32. For example, with the underlying
// bytes []byte{0x8f, 0xe3} (1000 1111, 1110 0011):
// off = 0, width = 4, res = 0x8 (1000)
// off = 4, width = 4, res = 0xf (1111)
// off = 6, width = 6, res = 0x3e (1111 10)
// Width must be between 1 and 32.
func (c Cursor) Read(off, width int) uint32 {
	var v uint32
	for i := off; i < off+width; i++ {
		v = v<<1 | uint32(c.b[i>>3]>>uint(7-i&7)&1)
	}
	return v
}

// Fixed-width convenience wrappers for the common FIG field sizes.

// Read1 returns the single bit at offset off.
func (c Cursor) Read1(off int) uint32 { return c.Read(off, 1) }

// Read2 returns the 2-bit field at offset off.
func (c Cursor) Read2(off int) uint32 { return c.Read(off, 2) }

// Read3 returns the 3-bit field at offset off.
func (c Cursor) Read3(off int) uint32 { return c.Read(off, 3) }

// Read4 returns the 4-bit field at offset off.
func (c Cursor) Read4(off int) uint32 { return c.Read(off, 4) }

// Read5 returns the 5-bit field at offset off.
func (c Cursor) Read5(off int) uint32 { return c.Read(off, 5) }

// Read6 returns the 6-bit field at offset off.
func (c Cursor) Read6(off int) uint32 { return c.Read(off, 6) }

// Read7 returns the 7-bit field at offset off.
func (c Cursor) Read7(off int) uint32 { return c.Read(off, 7) }

// Read8 returns the 8-bit field at offset off.
func (c Cursor) Read8(off int) uint32 { return c.Read(off, 8) }

// Put writes the width least-significant bits of v into b starting at bit
// offset off, MSB first. This is the encoding complement of Cursor.Read and
// is used when building FIGs, e.g. for test fixtures.
func Put(b []byte, off, width int, v uint32) {
	for i := 0; i < width; i++ {
		pos := off + i
		mask := byte(1) << uint(7-pos&7)
		if v>>uint(width-1-i)&1 == 1 {
			b[pos>>3] |= mask
		} else {
			b[pos>>3] &^= mask
		}
	}
}
