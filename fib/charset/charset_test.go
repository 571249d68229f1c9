/*
DESCRIPTION
  charset_test.go provides testing of label decoding for the character
  sets a receiver meets in the field.

AUTHORS
  Trek Hopton <trek@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package charset

import "testing"

func TestDecode(t *testing.T) {
	tests := []struct {
		name  string
		label []byte
		set   uint8
		want  string
	}{
		{
			name:  "EBU Latin plain",
			label: []byte("MyEnsemble      "),
			set:   EBULatin,
			want:  "MyEnsemble",
		},
		{
			name:  "EBU Latin all padding",
			label: []byte("                "),
			set:   EBULatin,
			want:  "",
		},
		{
			name:  "EBU Latin interior space kept",
			label: []byte("Radio One       "),
			set:   EBULatin,
			want:  "Radio One",
		},
		{
			name:  "EBU Latin accented",
			label: []byte{0x80, 0x9a, 0x24, ' ', ' ', ' ', ' ', ' ', ' ', ' ', ' ', ' ', ' ', ' ', ' ', ' '},
			set:   EBULatin,
			want:  "áñł",
		},
		{
			name:  "EBU Latin currency",
			label: []byte{'D', 'A', 'B', 0xaa, ' ', ' ', ' ', ' ', ' ', ' ', ' ', ' ', ' ', ' ', ' ', ' '},
			set:   EBULatin,
			want:  "DAB£",
		},
		{
			name:  "untabulated selector falls back to EBU Latin",
			label: []byte("Classic FM      "),
			set:   3,
			want:  "Classic FM",
		},
		{
			name:  "UCS-2 big endian",
			label: []byte{0x00, 'D', 0x00, 'R', 0x01, 0x61, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00},
			set:   UCS2,
			want:  "DRš",
		},
		{
			name:  "UTF-8 passthrough",
			label: []byte("Rock Antenne\x00\x00\x00\x00"),
			set:   UTF8,
			want:  "Rock Antenne",
		},
		{
			name:  "selector out of range",
			label: []byte("MyEnsemble      "),
			set:   16,
			want:  "",
		},
		{
			name:  "selector far out of range",
			label: []byte("MyEnsemble      "),
			set:   200,
			want:  "",
		},
	}

	for _, test := range tests {
		got := Decode(test.label, test.set)
		if got != test.want {
			t.Errorf("%s: Decode = %q, want %q", test.name, got, test.want)
		}
	}
}
