/*
DESCRIPTION
  charset.go provides decoding of the fixed 16-byte labels carried in FIG
  type 1 into UTF-8 strings, according to the character-set selector that
  accompanies each label.

AUTHORS
  Trek Hopton <trek@ausocean.org>
  Saxon A. Nelson-Milton <saxon@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package charset decodes DAB ensemble, service and component labels into
// UTF-8 strings. Labels are fixed 16-byte fields tagged with a 4-bit
// character-set selector; the repertoires are defined by ETSI TS 101 756.
package charset

import "strings"

// Character-set selector values, ETSI TS 101 756 table 1.
const (
	EBULatin = 0  // EBU Latin based repertoire.
	UCS2     = 6  // ISO/IEC 10646 UCS-2, big endian.
	UTF8     = 15 // ISO/IEC 10646 UTF-8.
)

// Decode converts a label to UTF-8 according to the given character-set
// selector, with trailing padding (spaces and NULs) trimmed. Trimming is
// required so that lookups by label match reliably. Selector values of 16
// or above are not defined for labels and yield an empty string. Selectors
// without a tabulated repertoire fall back to the EBU Latin set, which is
// what broadcasters overwhelmingly transmit.
func Decode(label []byte, set uint8) string {
	if set >= 16 {
		return ""
	}

	var s string
	switch set {
	case UCS2:
		var b strings.Builder
		for i := 0; i+1 < len(label); i += 2 {
			r := rune(label[i])<<8 | rune(label[i+1])
			if r == 0 {
				break
			}
			b.WriteRune(r)
		}
		s = b.String()
	case UTF8:
		s = string(label)
	default:
		var b strings.Builder
		for _, c := range label {
			b.WriteRune(ebuLatin[c])
		}
		s = b.String()
	}
	return strings.TrimRight(s, " \x00")
}
