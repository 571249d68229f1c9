/*
DESCRIPTION
  queries.go provides the thread-safe read side of the FIB processor:
  snapshot accessors and the joins that assemble fully resolved per-service
  views for the audio and data decoding consumers.

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

import "github.com/ausocean/dab/ensemble"

// ServiceList returns a snapshot copy of the services discovered so far.
func (p *Processor) ServiceList() []ensemble.Service {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]ensemble.Service, len(p.dir.Services))
	copy(out, p.dir.Services)
	return out
}

// EnsembleName returns the ensemble label, empty until one has been
// decoded.
func (p *Processor) EnsembleName() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.ensembleName
}

// SyncReached reports whether a valid ensemble label has been decoded
// since the last clear.
func (p *Processor) SyncReached() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.isSynced
}

// DateTime returns the broadcast date and time, and whether a FIG0/10 has
// completed one since the last clear.
func (p *Processor) DateTime() (ensemble.DateTime, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.dateTime, p.dateFlag
}

// KindOfService classifies the service with the given label by the
// transport mechanism of its components. Services that have not yet been
// labelled are never matched, so an empty label yields UnknownService.
func (p *Processor) KindOfService(label string) ensemble.ServiceKind {
	p.mu.Lock()
	defer p.mu.Unlock()

	for i := range p.dir.Services {
		if p.dir.Services[i].Label == "" || p.dir.Services[i].Label != label {
			continue
		}
		sid := p.dir.Services[i].ID
		for _, sc := range p.dir.Components {
			if sc.SID != sid {
				continue
			}
			switch sc.TMid {
			case ensemble.TMidAudio:
				return ensemble.AudioService
			case ensemble.TMidPacketData:
				return ensemble.PacketService
			default:
				p.log.Debug("component with unexpected transport mechanism", "tmid", sc.TMid, "sid", sid)
			}
		}
	}
	return ensemble.UnknownService
}

// AudioServiceData joins the service with the given label against its
// audio component and sub-channel, returning the flat description the MSC
// audio decoder needs. The result is invalid when the label is unknown,
// the service has no audio component, or the join cannot complete. The
// whole join runs under the processor's lock and therefore reads one
// consistent snapshot.
func (p *Processor) AudioServiceData(label string) ensemble.AudioData {
	p.mu.Lock()
	defer p.mu.Unlock()

	var d ensemble.AudioData
	for i := range p.dir.Services {
		if p.dir.Services[i].Label != label {
			continue
		}
		sid := p.dir.Services[i].ID
		for _, sc := range p.dir.Components {
			if sc.SID != sid {
				continue
			}
			if sc.TMid != ensemble.TMidAudio {
				p.log.Debug("expected an audio component", "label", label, "tmid", sc.TMid)
				return d
			}
			sub := &p.dir.SubChannels[sc.SubChID]
			if !sub.Defined() {
				p.log.Debug("audio sub-channel not yet declared", "label", label, "subChID", sc.SubChID)
				return d
			}
			d.SubChID = sc.SubChID
			d.StartAddr = sub.StartAddr
			d.ShortForm = sub.ShortForm
			d.ProtLevel = sub.ProtLevel
			d.Length = sub.Length
			d.BitRate = sub.BitRate
			d.ASCTy = sc.ASCTy
			d.Language = p.dir.Services[i].Language
			d.ProgramType = p.dir.Services[i].ProgramType
			d.Valid = true
			return d
		}
	}
	p.log.Debug("audio service insufficiently defined", "label", label)
	return d
}

// DataServiceData joins the service with the given label against its
// packet component and sub-channel, returning the flat description the
// packet data decoder needs. The result is invalid when the label is
// unknown, the service has no packet component, or the join cannot
// complete.
func (p *Processor) DataServiceData(label string) ensemble.PacketData {
	p.mu.Lock()
	defer p.mu.Unlock()

	var d ensemble.PacketData
	for i := range p.dir.Services {
		if p.dir.Services[i].Label != label {
			continue
		}
		sid := p.dir.Services[i].ID
		for _, sc := range p.dir.Components {
			if sc.SID != sid {
				continue
			}
			if sc.TMid != ensemble.TMidPacketData {
				p.log.Debug("expected a packet component", "label", label, "tmid", sc.TMid)
				return d
			}
			sub := &p.dir.SubChannels[sc.SubChID]
			if !sub.Defined() {
				p.log.Debug("data sub-channel not yet declared", "label", label, "subChID", sc.SubChID)
				return d
			}
			d.SubChID = sc.SubChID
			d.StartAddr = sub.StartAddr
			d.ShortForm = sub.ShortForm
			d.ProtLevel = sub.ProtLevel
			d.Length = sub.Length
			d.BitRate = sub.BitRate
			d.FECScheme = sub.FECScheme
			d.DSCTy = sc.DSCTy
			d.DGFlag = sc.DGFlag
			d.PacketAddress = sc.PacketAddress
			d.Valid = true
			return d
		}
	}
	p.log.Debug("data service insufficiently defined", "label", label)
	return d
}
