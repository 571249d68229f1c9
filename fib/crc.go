/*
DESCRIPTION
  crc.go provides verification of the CRC word carried in the final two
  bytes of each 32-byte fast information block.

AUTHORS
  Dan Kortschak <dan@ausocean.org>
  Saxon A. Nelson-Milton <saxon@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package fib

import "encoding/binary"

// BlockSize is the length of a fast information block as transmitted:
// PayloadSize bytes of FIGs followed by a 16-bit CRC.
const BlockSize = 32

// The FIB CRC is the CCITT CRC-16, generator x^16 + x^12 + x^5 + 1,
// initial state all ones, transmitted as the ones' complement of the
// remainder (ETSI EN 300 401 clause 5.2.1).
const ccittPoly = 0x1021

var ccittTable = crc16MakeTable(ccittPoly)

// AddCRC appends the CRC word to a 30-byte payload, returning a complete
// 32-byte block. This is the encoding complement of VerifyCRC, used when
// synthesising FIC streams.
func AddCRC(payload []byte) []byte {
	t := make([]byte, BlockSize)
	copy(t, payload)
	crc := crc16Update(0xffff, ccittTable, t[:PayloadSize]) ^ 0xffff
	binary.BigEndian.PutUint16(t[PayloadSize:], crc)
	return t
}

// VerifyCRC reports whether the CRC word of a 32-byte FIB matches its
// payload.
func VerifyCRC(fib []byte) bool {
	if len(fib) != BlockSize {
		return false
	}
	crc := crc16Update(0xffff, ccittTable, fib[:PayloadSize]) ^ 0xffff
	return crc == binary.BigEndian.Uint16(fib[PayloadSize:])
}

func crc16MakeTable(poly uint16) *[256]uint16 {
	var t [256]uint16
	for i := range t {
		crc := uint16(i) << 8
		for j := 0; j < 8; j++ {
			if crc&0x8000 != 0 {
				crc = crc<<1 ^ poly
			} else {
				crc <<= 1
			}
		}
		t[i] = crc
	}
	return &t
}

func crc16Update(crc uint16, tab *[256]uint16, p []byte) uint16 {
	for _, v := range p {
		crc = tab[byte(crc>>8)^v] ^ crc<<8
	}
	return crc
}
