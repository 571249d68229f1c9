/*
DESCRIPTION
  tables.go holds the UEP sub-channel profile table used by the short form
  of FIG0/1.

AUTHORS
  Saxon A. Nelson-Milton <saxon@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package fib

// Column indices into uepTable.
const (
	uepSize    = 0 // Sub-channel size in capacity units.
	uepLevel   = 1 // Protection level.
	uepBitRate = 2 // Bit rate in kbit/s.
)

// uepTable maps the 6-bit table index of a short-form FIG0/1 record to
// sub-channel size, protection level and bit rate, per ETSI EN 300 401
// clause 6.2.1 (UEP profiles for audio).
var uepTable = [64][3]int{
	{16, 5, 32}, // Index 0
	{21, 4, 32},
	{24, 3, 32},
	{29, 2, 32},
	{35, 1, 32},
	{24, 5, 48}, // Index 5
	{29, 4, 48},
	{35, 3, 48},
	{42, 2, 48},
	{52, 1, 48},
	{29, 5, 56}, // Index 10
	{35, 4, 56},
	{42, 3, 56},
	{52, 2, 56},
	{32, 5, 64},
	{42, 4, 64}, // Index 15
	{48, 3, 64},
	{58, 2, 64},
	{70, 1, 64},
	{40, 5, 80},
	{52, 4, 80}, // Index 20
	{58, 3, 80},
	{70, 2, 80},
	{84, 1, 80},
	{48, 5, 96},
	{58, 4, 96}, // Index 25
	{70, 3, 96},
	{84, 2, 96},
	{104, 1, 96},
	{58, 5, 112},
	{70, 4, 112}, // Index 30
	{84, 3, 112},
	{104, 2, 112},
	{64, 5, 128},
	{84, 4, 128},
	{96, 3, 128}, // Index 35
	{116, 2, 128},
	{140, 1, 128},
	{80, 5, 160},
	{104, 4, 160},
	{116, 3, 160}, // Index 40
	{140, 2, 160},
	{168, 1, 160},
	{96, 5, 192},
	{116, 4, 192},
	{140, 3, 192}, // Index 45
	{168, 2, 192},
	{208, 1, 192},
	{116, 5, 224},
	{140, 4, 224},
	{168, 3, 224}, // Index 50
	{208, 2, 224},
	{232, 1, 224},
	{128, 5, 256},
	{168, 4, 256},
	{192, 3, 256}, // Index 55
	{232, 2, 256},
	{280, 1, 256},
	{160, 5, 320},
	{208, 4, 320},
	{280, 2, 320}, // Index 60
	{192, 5, 384},
	{280, 3, 384},
	{416, 1, 384},
}
