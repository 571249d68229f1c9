/*
DESCRIPTION
  fig0.go decodes the FIG type 0 extensions that carry the multiplex
  configuration information: sub-channel organisation, service and
  component bindings, packet component details, languages, date and time,
  user applications, FEC schemes and programme attributes.

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

package fib

import (
	"github.com/ausocean/dab/ensemble"
	"github.com/ausocean/dab/fib/bits"
)

// User application types carried by FIG0/13, ETSI TS 101 756 table 16.
const (
	appMOTSlideshow = 0x002
	appMOTWebsite   = 0x003
	appTPEG         = 0x004
	appDGPS         = 0x005
	appTMC          = 0x006
	appEPG          = 0x007
	appDABJava      = 0x008
	appJournaline   = 0x44a
)

// fig0 dispatches a FIG type 0 by its 5-bit extension. Unrecognised
// extensions are skipped; the FIB walk advances by the FIG header length
// regardless, so an unknown extension never consumes extra bytes.
func (p *Processor) fig0(c bits.Cursor) {
	extension := c.Read5(8 + 3)

	switch extension {
	case 0:
		p.fig0Ext0(c)
	case 1:
		p.fig0Ext1(c)
	case 2:
		p.fig0Ext2(c)
	case 3:
		p.fig0Ext3(c)
	case 5:
		p.fig0Ext5(c)
	case 8:
		p.fig0Ext8(c)
	case 9:
		p.fig0Ext9(c)
	case 10:
		p.fig0Ext10(c)
	case 13:
		p.fig0Ext13(c)
	case 14:
		p.fig0Ext14(c)
	case 16:
		p.fig0Ext16(c)
	case 17:
		p.fig0Ext17(c)
	case 18:
		p.fig0Ext18(c)
	case 19:
		p.fig0Ext19(c)
	case 21:
		p.fig0Ext21(c)
	case 22:
		p.fig0Ext22(c)
	default:
		p.log.Debug("FIG0 extension passed by", "extension", int(extension))
	}
}

// fig0Ext0 handles the multiplex change indicator. Reconfiguration is not
// supported; a non-zero change flag is reported and otherwise ignored, the
// correct user action being a retune.
func (p *Processor) fig0Ext0(c bits.Cursor) {
	changeFlag := c.Read2(16 + 16)
	if changeFlag == 0 {
		return
	}

	cifHigh := c.Read5(16+19) % 20
	cifLow := c.Read8(16+24) % 250
	occurrence := c.Read8(16 + 32)
	p.log.Warning("ensemble reconfiguration signalled but not supported; retune to pick up the new configuration",
		"changeFlag", int(changeFlag), "cifCount", int(cifHigh)*250+int(cifLow), "inCIFs", int(occurrence))
}

// fig0Ext1 decodes the basic sub-channel organisation: for each record the
// position and extent of a sub-channel within the CIF and its protection.
func (p *Processor) fig0Ext1(c bits.Cursor) {
	used := 2 // Offset in bytes.
	length := int(c.Read5(3))

	for used < length-1 {
		used = p.subChannelOrg(c, used)
	}
}

// subChannelOrg decodes one FIG0/1 record at the given byte offset and
// returns the offset of the next. Short-form records describe UEP
// sub-channels by table index; long-form records carry an EEP option,
// protection level and size, from which the bit rate follows.
func (p *Processor) subChannelOrg(c bits.Cursor, offset int) int {
	bitOffset := offset * 8
	subChID := int(c.Read6(bitOffset))
	startAddr := int(c.Read(bitOffset+6, 10))

	sub := &p.dir.SubChannels[subChID]
	sub.SubChID = subChID
	sub.StartAddr = startAddr

	if c.Read1(bitOffset+16) == 0 { // Short form.
		tableIndex := c.Read6(bitOffset + 18)
		sub.ShortForm = true
		sub.Length = uepTable[tableIndex][uepSize]
		sub.ProtLevel = uepTable[tableIndex][uepLevel]
		sub.BitRate = uepTable[tableIndex][uepBitRate]
		return (bitOffset + 24) / 8
	}

	// EEP long form.
	sub.ShortForm = false
	option := c.Read3(bitOffset + 17)
	protLevel := int(c.Read2(bitOffset + 20))
	size := int(c.Read(bitOffset+22, 10))
	sub.Length = size
	switch option {
	case 0: // Protection option A.
		sub.ProtLevel = protLevel
		sub.BitRate = size / [4]int{12, 8, 6, 4}[protLevel] * 8
	case 1: // Protection option B, levels stored offset by 4.
		sub.ProtLevel = protLevel + 4
		sub.BitRate = size / [4]int{27, 21, 18, 15}[protLevel] * 32
	default:
		p.log.Debug("undefined EEP protection option", "option", int(option), "subChID", subChID)
	}
	return (bitOffset + 32) / 8
}

// fig0Ext2 binds service components to service identifiers. Each
// sub-record carries a service identifier followed by its components,
// dispatched by transport mechanism.
func (p *Processor) fig0Ext2(c bits.Cursor) {
	used := 2 // Offset in bytes.
	length := int(c.Read5(3))
	pd := c.Read1(8 + 2)

	for used < length {
		used = p.serviceOrg(c, used, pd)
	}
}

// serviceOrg decodes one FIG0/2 sub-record at the given byte offset and
// returns the offset of the next. The service identifier is 32 bits when
// the PD flag is set and 16 bits otherwise.
func (p *Processor) serviceOrg(c bits.Cursor, offset int, pd uint32) int {
	lOffset := offset * 8

	var sid uint32
	if pd == 1 {
		sid = c.Read(lOffset, 32)
		lOffset += 32
	} else {
		sid = c.Read(lOffset, 16)
		lOffset += 16
	}

	numComponents := int(c.Read4(lOffset + 4))
	lOffset += 8

	for i := 0; i < numComponents; i++ {
		tmid := int(c.Read2(lOffset))
		switch tmid {
		case ensemble.TMidAudio:
			ascTy := int(c.Read6(lOffset + 2))
			subChID := int(c.Read6(lOffset + 8))
			psFlag := int(c.Read1(lOffset + 14))
			p.dir.BindAudioService(tmid, sid, i, subChID, psFlag, ascTy)
		case ensemble.TMidPacketData:
			scid := int(c.Read(lOffset+2, 12))
			psFlag := int(c.Read1(lOffset + 14))
			caFlag := int(c.Read1(lOffset + 15))
			p.dir.BindPacketService(tmid, sid, i, scid, psFlag, caFlag)
		default:
			// Stream data and FIDC components are not carried.
		}
		lOffset += 16
	}
	return lOffset / 8
}

// fig0Ext3 decodes the additional description of packet-mode components.
// A record referencing a component that has not yet been declared by a
// FIG0/2 is a no-op; the FIC retransmits, so the record will come round
// again.
func (p *Processor) fig0Ext3(c bits.Cursor) {
	used := 2
	length := int(c.Read5(3))

	for used < length {
		used = p.packetComponentDesc(c, used)
	}
}

func (p *Processor) packetComponentDesc(c bits.Cursor, used int) int {
	scid := int(c.Read(used*8, 12))
	dgFlag := int(c.Read1(used*8 + 16))
	dscTy := int(c.Read6(used*8 + 18))
	subChID := int(c.Read6(used*8 + 24))
	packetAddress := int(c.Read(used*8+30, 10))

	used += 56 / 8
	comp := p.dir.FindPacketComponent(scid)
	if comp == nil {
		return used
	}
	comp.SubChID = subChID
	comp.DSCTy = dscTy
	comp.DGFlag = dgFlag
	comp.PacketAddress = packetAddress
	return used
}

// fig0Ext5 decodes the sub-channel language. Only the short form addresses
// a sub-channel directly; the long form addresses a service component and
// is parsed for advancement only.
func (p *Processor) fig0Ext5(c bits.Cursor) {
	used := 2 // Offset in bytes.
	length := int(c.Read5(3))

	for used < length {
		used = p.subChannelLanguage(c, used)
	}
}

func (p *Processor) subChannelLanguage(c bits.Cursor, offset int) int {
	lOffset := offset * 8
	if c.Read1(lOffset) == 0 { // Short form.
		if c.Read1(lOffset+1) == 0 {
			subChID := c.Read6(lOffset + 2)
			p.dir.SubChannels[subChID].Language = int(c.Read8(lOffset + 8))
		}
		return (lOffset + 16) / 8
	}
	// Long form: SC identifier and language, not retained.
	return (lOffset + 24) / 8
}

// fig0Ext8 parses the service component global definition for advancement
// only; the mapping it carries is not retained.
func (p *Processor) fig0Ext8(c bits.Cursor) {
	used := 2 // Offset in bytes.
	length := int(c.Read5(3))
	pd := c.Read1(8 + 2)

	for used < length {
		used = p.componentGlobalDef(c, used, pd)
	}
}

func (p *Processor) componentGlobalDef(c bits.Cursor, used int, pd uint32) int {
	lOffset := used * 8
	if pd == 1 {
		lOffset += 32
	} else {
		lOffset += 16
	}
	extensionFlag := c.Read1(lOffset)
	lOffset += 8

	if c.Read1(lOffset+8) == 1 { // Long form: 12-bit SCID.
		lOffset += 16
	} else { // Short form: MSC flag and sub-channel.
		lOffset += 8
	}
	if extensionFlag == 1 {
		lOffset += 8 // Rfa.
	}
	return lOffset / 8
}

// fig0Ext9 decodes the ensemble local time offset. The high bit of the
// offset field gives the sign of the whole-hour part; the half-hour bit
// adds 30 minutes.
func (p *Processor) fig0Ext9(c bits.Cursor) {
	const offset = 16
	if c.Read1(offset+2) == 1 {
		p.dateTime.HourOffset = -int(c.Read4(offset + 3))
	} else {
		p.dateTime.HourOffset = int(c.Read4(offset + 3))
	}
	if c.Read1(offset+7) == 1 {
		p.dateTime.MinuteOffset = 30
	} else {
		p.dateTime.MinuteOffset = 0
	}
}

// fig0Ext10 decodes the broadcast date and time. The date is carried as a
// modified Julian date; the seconds field is present only when the UTC
// flag selects the long form, and is otherwise left at its previous value.
// A change of minute with no seconds field rolls the seconds back to zero.
func (p *Processor) fig0Ext10(c bits.Cursor) {
	const offset = 16

	mjd := int(c.Read(offset+1, 17))
	p.dateTime.Year, p.dateTime.Month, p.dateTime.Day = mjdDate(mjd)

	p.dateTime.Hour = int(c.Read5(offset + 21))
	minutes := int(c.Read6(offset + 26))
	if minutes != p.dateTime.Minutes {
		p.dateTime.Seconds = 0
	}
	p.dateTime.Minutes = minutes
	if c.Read1(offset+20) == 1 { // UTC flag: long form with seconds.
		p.dateTime.Seconds = int(c.Read6(offset + 32))
	}
	p.dateFlag = true
	p.ctrl.OnDateTimeUpdate(p.dateTime)
}

// mjdDate converts a modified Julian date to a Gregorian (year, month,
// day), by way of the Julian day number.
func mjdDate(mjd int) (year, month, day int) {
	j := mjd + 2400001 + 32044
	g := j / 146097
	dg := j % 146097
	c := (dg/36524 + 1) * 3 / 4
	dc := dg - c*36524
	b := dc / 1461
	db := dc % 1461
	a := (db/365 + 1) * 3 / 4
	da := db - a*365
	y := g*400 + c*100 + b*4 + a
	m := (da*5+308)/153 - 2
	d := da - (m+4)*153/5 + 122

	year = y - 4800 + (m+2)/12
	month = (m+2)%12 + 1
	day = d + 1
	return year, month, day
}

// fig0Ext13 parses the user application information of each component.
// Recognised application types are acknowledged but not persisted; the
// data decoders negotiate applications from the MSC side.
func (p *Processor) fig0Ext13(c bits.Cursor) {
	used := 2 // Offset in bytes.
	length := int(c.Read5(3))
	pd := c.Read1(8 + 2)

	for used < length {
		used = p.userApplications(c, used, pd)
	}
}

func (p *Processor) userApplications(c bits.Cursor, used int, pd uint32) int {
	lOffset := used * 8
	var sid uint32
	if pd == 1 {
		sid = c.Read(lOffset, 32)
		lOffset += 32
	} else {
		sid = c.Read(lOffset, 16)
		lOffset += 16
	}
	numApps := int(c.Read4(lOffset + 4))
	lOffset += 8

	for i := 0; i < numApps; i++ {
		appType := int(c.Read(lOffset, 11))
		appLen := int(c.Read5(lOffset + 11))
		lOffset += 11 + 5 + 8*appLen
		switch appType {
		case appMOTSlideshow, appMOTWebsite, appTPEG, appDGPS, appTMC, appEPG, appDABJava, appJournaline:
			p.log.Debug("user application", "sid", sid, "type", appType)
		}
	}
	return lOffset / 8
}

// fig0Ext14 decodes the FEC scheme of packet-mode sub-channels. A record
// naming a sub-channel that has not been declared finds no match and is a
// no-op.
func (p *Processor) fig0Ext14(c bits.Cursor) {
	used := 2 // Offset in bytes.
	length := int(c.Read5(3))

	for used < length {
		subChID := int(c.Read6(used * 8))
		scheme := int(c.Read2(used*8 + 6))
		used++

		for i := range p.dir.SubChannels {
			if p.dir.SubChannels[i].SubChID == subChID {
				p.dir.SubChannels[i].FECScheme = scheme
			}
		}
	}
}

// fig0Ext16 decodes programme numbers. Only the first sighting for a
// service is kept.
func (p *Processor) fig0Ext16(c bits.Cursor) {
	length := int(c.Read5(3))
	offset := 16 // In bits.

	for offset < length*8 {
		sid := c.Read(offset, 16)
		s := p.dir.FindOrCreateService(sid)
		if !s.HasPNum {
			s.PNum = uint16(c.Read(offset+16, 16))
			s.HasPNum = true
		}
		offset += 72
	}
}

// fig0Ext17 decodes the programme type of each service, and its language
// when the L flag carries one.
func (p *Processor) fig0Ext17(c bits.Cursor) {
	length := int(c.Read5(3))
	offset := 16 // In bits.

	for offset < length*8 {
		sid := c.Read(offset, 16)
		lFlag := c.Read1(offset + 18)
		ccFlag := c.Read1(offset + 19)
		s := p.dir.FindOrCreateService(sid)
		if lFlag == 1 {
			s.Language = int(c.Read8(offset + 24))
			s.HasLanguage = true
			offset += 8
		}
		s.ProgramType = int(c.Read5(offset + 27))
		if ccFlag == 1 {
			offset += 40
		} else {
			offset += 32
		}
	}
}

// fig0Ext18 parses announcement support for advancement only; announcement
// routing is not supported.
func (p *Processor) fig0Ext18(c bits.Cursor) {
	offset := 16 // In bits.
	length := int(c.Read5(3))

	for offset/8 < length-1 {
		numClusters := int(c.Read5(offset + 35))
		offset += 40 + numClusters*8
	}
}

// fig0Ext19 parses announcement switching for advancement only.
func (p *Processor) fig0Ext19(c bits.Cursor) {
	offset := 16 // In bits.
	length := int(c.Read5(3))

	for offset/8 < length-1 {
		if c.Read1(offset+25) == 1 { // Regional announcement.
			offset += 40
		} else {
			offset += 32
		}
	}
}

// fig0Ext21 skips frequency information.
func (p *Processor) fig0Ext21(c bits.Cursor) {}

// fig0Ext22 parses transmitter identification information for advancement
// only.
func (p *Processor) fig0Ext22(c bits.Cursor) {
	used := 2
	length := int(c.Read5(3))

	for used < length {
		used = p.transmitterID(c, used)
	}
}

func (p *Processor) transmitterID(c bits.Cursor, used int) int {
	if c.Read1(used*8) == 0 { // Main identifier: fixed size.
		return used + 8
	}
	// Sub identifiers: variable size.
	numSubfields := int(c.Read3(used*8 + 13))
	return used + (16+numSubfields*48)/8
}
