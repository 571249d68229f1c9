/*
DESCRIPTION
  processor.go provides the fast information block processor: it walks the
  fast information groups embedded in each 30-byte FIB payload and maintains
  the live directory of the tuned ensemble, from which consumers obtain
  resolved service descriptions.

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

// Package fib decodes the fast information blocks of a DAB ensemble and
// maintains a queryable description of the multiplex: its identity, the
// services carried, the components realising each service, the sub-channel
// layout, and the broadcast date and time. Conformance is to ETSI EN 300
// 401 FIG types 0 and 1.
package fib

import (
	"sync"

	"github.com/ausocean/utils/logging"

	"github.com/ausocean/dab/ensemble"
	"github.com/ausocean/dab/fib/bits"
)

// PayloadSize is the length of a FIB payload once the CRC has been checked
// and stripped.
const PayloadSize = 30

// FIG types. Types 2-6 are defined by the standard but carry nothing we
// need; type 7 marks the end of useful data in a FIB.
const (
	figTypeMCI    = 0 // Multiplex configuration information.
	figTypeLabels = 1 // Labels.
	figTypeEnd    = 7 // End marker / padding.
)

// RadioController receives notifications of first-time discoveries made by
// the processor. Callbacks are invoked with the processor's lock held, so
// that first-time detection stays atomic with the state that justified it;
// implementations must not call back into the Processor, and should hand
// anything slow to another goroutine.
type RadioController interface {
	// OnNewEnsembleName is called once per ensemble epoch, when the
	// ensemble label is first decoded.
	OnNewEnsembleName(name string)

	// OnServiceDetected is called when a programme service label (FIG1/1)
	// is first decoded. Data service labels (FIG1/5) are stored without a
	// callback.
	OnServiceDetected(id uint32, label string)

	// OnDateTimeUpdate is called for every complete FIG0/10 date and time.
	OnDateTimeUpdate(dt ensemble.DateTime)
}

// Processor consumes CRC-validated FIB payloads and maintains the ensemble
// directory. One producer feeds ProcessFIB; any number of consumers may
// query concurrently. A single mutex guards the whole directory: updates
// from one ProcessFIB call are observed atomically by any later query, and
// every query joins against one consistent snapshot.
type Processor struct {
	mu  sync.Mutex
	dir *ensemble.Directory

	ensembleName string
	isSynced     bool
	firstTime    bool
	dateFlag     bool
	dateTime     ensemble.DateTime

	ctrl RadioController
	log  logging.Logger
}

// NewProcessor returns a Processor reporting discoveries to ctrl and
// logging to l.
func NewProcessor(ctrl RadioController, l logging.Logger) *Processor {
	p := &Processor{
		dir:  ensemble.NewDirectory(),
		ctrl: ctrl,
		log:  l,
	}
	p.clearEnsemble()
	return p
}

// ProcessFIB decodes the FIGs of one 30-byte FIB payload and applies them
// to the directory. The payload must already have passed its CRC; fibIndex
// identifies the FIB within the transmission frame and is currently unused.
// FIGs are dispatched by type: 0 and 1 are decoded, 7 terminates the walk,
// and anything else is skipped by its length. A FIG whose declared length
// would run past the end of the payload terminates the walk without
// decoding a partial record.
func (p *Processor) ProcessFIB(buf []byte, fibIndex int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	processed := 0
	for processed < PayloadSize {
		c := bits.NewCursor(buf[processed:])
		figType := c.Read3(0)
		if figType == figTypeEnd {
			return
		}
		length := int(c.Read5(3))
		if processed+length+1 > PayloadSize {
			p.log.Debug("FIG runs past FIB boundary", "type", int(figType), "length", length, "processed", processed)
			return
		}
		switch figType {
		case figTypeMCI:
			p.fig0(c)
		case figTypeLabels:
			p.fig1(c)
		}
		processed += length + 1
	}
}

// ClearEnsemble resets the directory and the ensemble state, as on retune
// or scan restart. The next decoded ensemble label will be reported as a
// new ensemble.
func (p *Processor) ClearEnsemble() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.clearEnsemble()
}

func (p *Processor) clearEnsemble() {
	p.dir.Clear()
	p.ensembleName = ""
	p.firstTime = true
	p.isSynced = false
	p.dateFlag = false
	p.dateTime = ensemble.DateTime{}
}
