/*
DESCRIPTION
  directory_test.go provides testing of the ensemble directory invariants:
  service and component uniqueness, the fixed sub-channel table, and reset
  behaviour.

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

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"pgregory.net/rapid"
)

// checkInvariants fails the test if service identifiers are not unique,
// (service, component number) pairs are not unique, or the sub-channel
// table is not exactly NumSubChannels entries.
func checkInvariants(t interface {
	Fatalf(format string, args ...interface{})
}, d *Directory) {
	if len(d.SubChannels) != NumSubChannels {
		t.Fatalf("sub-channel table has %d entries, want %d", len(d.SubChannels), NumSubChannels)
	}
	seenSID := make(map[uint32]bool)
	for _, s := range d.Services {
		if seenSID[s.ID] {
			t.Fatalf("duplicate service %#x", s.ID)
		}
		seenSID[s.ID] = true
	}
	type key struct {
		sid uint32
		nr  int
	}
	seenComp := make(map[key]bool)
	for _, sc := range d.Components {
		k := key{sc.SID, sc.ComponentNr}
		if seenComp[k] {
			t.Fatalf("duplicate component (%#x, %d)", k.sid, k.nr)
		}
		seenComp[k] = true
	}
}

// TestDirectoryInvariants drives the directory with arbitrary bind
// sequences and checks the uniqueness invariants after each operation.
func TestDirectoryInvariants(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		d := NewDirectory()
		n := rapid.IntRange(0, 100).Draw(t, "ops")
		for i := 0; i < n; i++ {
			sid := uint32(rapid.IntRange(0, 7).Draw(t, "sid"))
			compNr := rapid.IntRange(0, 3).Draw(t, "compNr")
			if rapid.Bool().Draw(t, "audio") {
				subCh := rapid.IntRange(0, NumSubChannels-1).Draw(t, "subCh")
				d.BindAudioService(TMidAudio, sid, compNr, subCh, 1, 63)
			} else {
				scid := rapid.IntRange(0, 4095).Draw(t, "scid")
				d.BindPacketService(TMidPacketData, sid, compNr, scid, 0, 0)
			}
			checkInvariants(t, d)
		}
	})
}

// TestBindIsNoOpOnExisting checks that a second bind for the same
// (service, component number) pair leaves the first untouched.
func TestBindIsNoOpOnExisting(t *testing.T) {
	d := NewDirectory()
	d.BindAudioService(TMidAudio, 0x1234, 0, 1, 1, 63)
	d.BindAudioService(TMidAudio, 0x1234, 0, 9, 0, 0)
	d.BindPacketService(TMidPacketData, 0x1234, 0, 42, 0, 0)

	if len(d.Components) != 1 {
		t.Fatalf("got %d components, want 1", len(d.Components))
	}
	want := ServiceComponent{TMid: TMidAudio, SID: 0x1234, ComponentNr: 0, SubChID: 1, PSFlag: 1, ASCTy: 63}
	if diff := cmp.Diff(want, d.Components[0]); diff != "" {
		t.Errorf("component mutated by repeat bind (-want +got):\n%s", diff)
	}
}

// TestFindOrCreateService checks lazy creation and identity.
func TestFindOrCreateService(t *testing.T) {
	d := NewDirectory()
	s := d.FindOrCreateService(0xabcd)
	s.Label = "Radio One"
	if got := d.FindOrCreateService(0xabcd); got.Label != "Radio One" {
		t.Errorf("second lookup got label %q, want %q", got.Label, "Radio One")
	}
	if len(d.Services) != 1 {
		t.Errorf("got %d services, want 1", len(d.Services))
	}
}

// TestFindPacketComponent checks that only packet-mode components match.
func TestFindPacketComponent(t *testing.T) {
	d := NewDirectory()
	d.BindAudioService(TMidAudio, 1, 0, 5, 1, 63)
	if got := d.FindPacketComponent(0); got != nil {
		t.Errorf("audio component matched packet lookup: %+v", got)
	}
	d.BindPacketService(TMidPacketData, 2, 0, 0x123, 0, 0)
	got := d.FindPacketComponent(0x123)
	if got == nil {
		t.Fatal("packet component not found")
	}
	if got.SID != 2 {
		t.Errorf("got component of service %#x, want 0x2", got.SID)
	}
}

// TestClear checks that a cleared directory is indistinguishable from a
// fresh one.
func TestClear(t *testing.T) {
	d := NewDirectory()
	d.BindAudioService(TMidAudio, 1, 0, 5, 1, 63)
	d.BindPacketService(TMidPacketData, 2, 0, 0x123, 0, 0)
	d.SubChannels[5] = SubChannel{SubChID: 5, StartAddr: 100, Length: 29, BitRate: 48}
	d.Clear()

	if diff := cmp.Diff(NewDirectory(), d); diff != "" {
		t.Errorf("cleared directory differs from fresh (-want +got):\n%s", diff)
	}
	checkInvariants(t, d)
}
