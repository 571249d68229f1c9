/*
DESCRIPTION
  fig1.go decodes the FIG type 1 label extensions: the ensemble label and
  the service labels, plus the region, component and X-PAD label forms that
  are parsed and discarded.

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

import (
	"github.com/ausocean/dab/fib/bits"
	"github.com/ausocean/dab/fib/charset"
)

// labelLen is the fixed size of a FIG1 label field.
const labelLen = 16

// fig1 decodes a FIG type 1. Labels for other ensembles (OE flag set) are
// ignored. Only the ensemble and service label extensions touch the
// directory; the remaining forms are parsed for protocol completeness.
func (p *Processor) fig1(c bits.Cursor) {
	set := uint8(c.Read4(8))
	oe := c.Read1(8 + 4)
	extension := c.Read3(8 + 5)
	if oe == 1 {
		return
	}

	switch extension {
	case 0: // Ensemble label.
		p.ensembleLabel(c, set)

	case 1: // Service label, 16-bit identifier.
		p.serviceLabel(c, c.Read(16, 16), 32, set)

	case 3: // Region label, not retained.
		readLabel(c, 24)

	case 4: // Service component label, not retained.
		offset := 40
		if c.Read1(16) == 1 { // 32-bit identifier.
			offset = 56
		}
		readLabel(c, offset)

	case 5: // Data service label, 32-bit identifier.
		p.dataServiceLabel(c, c.Read(16, 32), 48, set)

	case 6: // X-PAD user application label, not retained.
		offset := 48
		if c.Read1(16) == 1 { // 32-bit identifier.
			offset = 64
		}
		readLabel(c, offset)

	default:
		p.log.Debug("FIG1 extension passed by", "extension", int(extension))
	}
}

// ensembleLabel decodes the ensemble label. The name and the callback are
// produced once per ensemble epoch; every sighting marks the ensemble as
// synchronised.
func (p *Processor) ensembleLabel(c bits.Cursor, set uint8) {
	if set > 16 {
		return
	}
	if p.firstTime {
		p.ensembleName = charset.Decode(readLabel(c, 32), set)
		p.ctrl.OnNewEnsembleName(p.ensembleName)
	}
	p.firstTime = false
	p.isSynced = true
}

// serviceLabel decodes a programme service label. Labels are written once;
// later sightings of an already-labelled service change nothing.
func (p *Processor) serviceLabel(c bits.Cursor, sid uint32, offset int, set uint8) {
	s := p.dir.FindOrCreateService(sid)
	if s.Label != "" || set > 16 {
		return
	}
	s.Label = charset.Decode(readLabel(c, offset), set)
	p.ctrl.OnServiceDetected(sid, s.Label)
}

// dataServiceLabel decodes a data service label, marked to distinguish it
// from programme services in service lists.
func (p *Processor) dataServiceLabel(c bits.Cursor, sid uint32, offset int, set uint8) {
	s := p.dir.FindOrCreateService(sid)
	if s.Label != "" || set > 16 {
		return
	}
	s.Label = charset.Decode(readLabel(c, offset), set) + " (data)"
}

// readLabel extracts the 16 label bytes starting at the given bit offset.
func readLabel(c bits.Cursor, offset int) []byte {
	label := make([]byte, labelLen)
	for i := range label {
		label[i] = byte(c.Read8(offset + 8*i))
	}
	return label
}
