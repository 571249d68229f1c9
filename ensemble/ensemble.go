/*
DESCRIPTION
  ensemble.go defines the records that describe a DAB ensemble: the
  sub-channel layout of the multiplex, the services carried, the service
  components that realise each service, and the broadcast date and time.

AUTHORS
  Saxon A. Nelson-Milton <saxon@ausocean.org>
  Trek Hopton <trek@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package ensemble provides the data model for a DAB ensemble as described
// by the fast information channel, together with the mutable directory that
// the FIB processor maintains and the flattened per-service views served to
// the audio and data decoding consumers.
package ensemble

// NumSubChannels is the size of the sub-channel table; sub-channel
// identifiers are 6 bits.
const NumSubChannels = 64

// Transport-mechanism identifiers, ETSI EN 300 401 clause 6.3.1. Stream
// data and FIDC components exist on air but are not carried here.
const (
	TMidAudio      = 0 // MSC stream audio.
	TMidPacketData = 3 // MSC packet data.
)

// ServiceKind classifies a service by the transport mechanism of its
// components.
type ServiceKind int

const (
	UnknownService ServiceKind = iota
	AudioService
	PacketService
)

// String implements fmt.Stringer.
func (k ServiceKind) String() string {
	switch k {
	case AudioService:
		return "audio"
	case PacketService:
		return "packet"
	default:
		return "unknown"
	}
}

// SubChannel describes one sub-channel of the multiplex: its position and
// extent within the CIF in capacity units, its error protection, and the
// bit rate that follows from them. The identifier doubles as the index of
// the entry in the directory's table, and is -1 until the sub-channel has
// been declared by a FIG0/1.
type SubChannel struct {
	SubChID   int  // 6-bit sub-channel identifier, -1 while undeclared.
	StartAddr int  // Start address within the CIF, in capacity units.
	ShortForm bool // True for UEP (table lookup), false for EEP.
	Length    int  // Size in capacity units.
	BitRate   int  // Derived bit rate in kbit/s.
	ProtLevel int  // Protection level; EEP option B levels are offset by 4.
	FECScheme int  // FEC scheme from FIG0/14, packet mode only.
	Language  int  // Language from FIG0/5, short form only.
}

// Defined reports whether the sub-channel has been declared by a FIG0/1,
// i.e. whether its start address and length are meaningful.
func (sc *SubChannel) Defined() bool {
	return sc.SubChID >= 0
}

// Service is one service of the ensemble, keyed by its 16- or 32-bit
// service identifier. A service is created on first reference by any FIG
// and its label stays empty until a FIG1/1 or FIG1/5 names it.
type Service struct {
	ID          uint32
	Label       string
	PNum        uint16 // Programme number from FIG0/16.
	HasPNum     bool
	Language    int // From FIG0/17.
	HasLanguage bool
	ProgramType int // 5-bit programme type from FIG0/17.
}

// ServiceComponent realises a service on a transport mechanism. Components
// reference their service by identifier, never by pointer, and are unique
// per (service, component number) pair. Audio components carry their
// sub-channel directly; packet components are declared by FIG0/2 and only
// later tied to a sub-channel by FIG0/3.
type ServiceComponent struct {
	TMid        int
	SID         uint32
	ComponentNr int

	// MSC stream audio.
	SubChID int
	PSFlag  int
	ASCTy   int // 6-bit audio service component type.

	// MSC packet data. SubChID is shared with the audio form and is filled
	// by FIG0/3 together with the fields below.
	SCID          int // 12-bit service component identifier.
	CAFlag        int
	DSCTy         int
	DGFlag        int
	PacketAddress int
}

// DateTime is the broadcast civil date and time assembled from FIG0/10,
// with the local time offset from FIG0/9.
type DateTime struct {
	Year    int
	Month   int
	Day     int
	Hour    int
	Minutes int
	Seconds int

	HourOffset   int // Signed whole hours.
	MinuteOffset int // 0 or 30.
}

// AudioData is the flattened description of an audio service: the join of
// its service, audio component and sub-channel records. Valid is false when
// the service is unknown or not yet completely described.
type AudioData struct {
	Valid       bool
	SubChID     int
	StartAddr   int
	ShortForm   bool
	Length      int
	BitRate     int
	ProtLevel   int
	ASCTy       int
	Language    int
	ProgramType int
}

// PacketData is the flattened description of a packet data service. Valid
// is false when the service is unknown or not yet completely described.
type PacketData struct {
	Valid         bool
	SubChID       int
	StartAddr     int
	ShortForm     bool
	Length        int
	BitRate       int
	ProtLevel     int
	FECScheme     int
	DSCTy         int
	DGFlag        int
	PacketAddress int
}
