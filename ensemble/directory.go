/*
DESCRIPTION
  directory.go provides the mutable directory of ensemble records that the
  FIB processor maintains: a fixed table of sub-channels and append-only
  lists of services and service components.

AUTHORS
  Saxon A. Nelson-Milton <saxon@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package ensemble

// Directory is the live description of one ensemble. Services and
// components are append-only within a tune session; records are removed
// only by Clear. The directory performs no locking of its own — the FIB
// processor serialises all access under its mutex.
//
// Lookups are linear. An ensemble carries on the order of ten services and
// the FIC retransmits continuously, so there is nothing to be gained from
// keying the lists.
type Directory struct {
	SubChannels []SubChannel // Always NumSubChannels entries.
	Services    []Service
	Components  []ServiceComponent
}

// NewDirectory returns an empty directory with a cleared sub-channel table.
func NewDirectory() *Directory {
	d := &Directory{}
	d.Clear()
	return d
}

// Clear empties the directory, leaving it as freshly constructed: no
// services, no components, and NumSubChannels undeclared sub-channels.
func (d *Directory) Clear() {
	d.Services = nil
	d.Components = nil
	d.SubChannels = make([]SubChannel, NumSubChannels)
	for i := range d.SubChannels {
		d.SubChannels[i].SubChID = -1
	}
}

// FindOrCreateService returns the service with the given identifier,
// appending a new entry on first reference. The returned pointer is only
// good until the service list next grows.
func (d *Directory) FindOrCreateService(id uint32) *Service {
	for i := range d.Services {
		if d.Services[i].ID == id {
			return &d.Services[i]
		}
	}
	d.Services = append(d.Services, Service{ID: id})
	return &d.Services[len(d.Services)-1]
}

// FindPacketComponent returns the first packet-mode component with the
// given service component identifier, or nil if none has been declared yet.
func (d *Directory) FindPacketComponent(scid int) *ServiceComponent {
	for i := range d.Components {
		if d.Components[i].TMid != TMidPacketData {
			continue
		}
		if d.Components[i].SCID == scid {
			return &d.Components[i]
		}
	}
	return nil
}

// hasComponent reports whether a component already exists for the given
// (service, component number) pair.
func (d *Directory) hasComponent(sid uint32, compNr int) bool {
	for i := range d.Components {
		if d.Components[i].SID == sid && d.Components[i].ComponentNr == compNr {
			return true
		}
	}
	return false
}

// BindAudioService connects an audio component to its service, creating the
// service on first reference. A component that already exists for the
// (service, component number) pair is left untouched.
func (d *Directory) BindAudioService(tmid int, sid uint32, compNr, subChID, psFlag, ascTy int) {
	s := d.FindOrCreateService(sid)
	if d.hasComponent(s.ID, compNr) {
		return
	}
	d.Components = append(d.Components, ServiceComponent{
		TMid:        tmid,
		SID:         sid,
		ComponentNr: compNr,
		SubChID:     subChID,
		PSFlag:      psFlag,
		ASCTy:       ascTy,
	})
}

// BindPacketService connects a packet-mode component to its service,
// creating the service on first reference. The sub-channel and packet
// details are filled in later by a FIG0/3 carrying the same SCID. A
// component that already exists for the (service, component number) pair is
// left untouched.
func (d *Directory) BindPacketService(tmid int, sid uint32, compNr, scid, psFlag, caFlag int) {
	s := d.FindOrCreateService(sid)
	if d.hasComponent(s.ID, compNr) {
		return
	}
	d.Components = append(d.Components, ServiceComponent{
		TMid:        tmid,
		SID:         sid,
		ComponentNr: compNr,
		SCID:        scid,
		PSFlag:      psFlag,
		CAFlag:      caFlag,
	})
}
