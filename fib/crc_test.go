/*
DESCRIPTION
  crc_test.go provides testing of FIB CRC generation and verification
  against a bitwise reference implementation.

AUTHORS
  Dan Kortschak <dan@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package fib

import (
	"encoding/binary"
	"testing"

	"pgregory.net/rapid"
)

// crc16Bitwise is a shift-register reference for the CCITT CRC-16.
func crc16Bitwise(b []byte) uint16 {
	crc := uint16(0xffff)
	for _, v := range b {
		for i := 7; i >= 0; i-- {
			bit := v >> uint(i) & 1
			msb := byte(crc >> 15)
			crc <<= 1
			if bit^msb == 1 {
				crc ^= ccittPoly
			}
		}
	}
	return crc
}

// TestCRCAgainstReference checks the table CRC against the bitwise
// reference over random payloads.
func TestCRCAgainstReference(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		payload := make([]byte, PayloadSize)
		for i := range payload {
			payload[i] = byte(rapid.IntRange(0, 255).Draw(t, "payload"))
		}
		want := crc16Bitwise(payload)
		got := crc16Update(0xffff, ccittTable, payload)
		if got != want {
			t.Fatalf("table CRC = %#x, reference = %#x", got, want)
		}
	})
}

// TestAddVerifyCRC checks that generated blocks verify and corrupted
// blocks do not.
func TestAddVerifyCRC(t *testing.T) {
	payload := fibEnsembleLabel("MyEnsemble")
	blk := AddCRC(payload)

	if !VerifyCRC(blk) {
		t.Fatal("freshly generated block failed verification")
	}
	want := crc16Bitwise(payload) ^ 0xffff
	if got := binary.BigEndian.Uint16(blk[PayloadSize:]); got != want {
		t.Errorf("CRC word = %#x, want %#x", got, want)
	}

	for i := range blk {
		bad := append([]byte(nil), blk...)
		bad[i] ^= 0x40
		if VerifyCRC(bad) {
			t.Errorf("block with byte %d corrupted still verified", i)
		}
	}
	if VerifyCRC(blk[:PayloadSize]) {
		t.Error("short block verified")
	}
}
