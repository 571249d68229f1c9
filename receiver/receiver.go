/*
DESCRIPTION
  receiver.go provides the glue between the fast information channel and
  the rest of a DAB receiver: it accepts raw 32-byte fast information
  blocks from the demodulation front end, verifies their CRCs, feeds the
  payloads to the FIB processor on a dedicated goroutine, and forwards
  resolved service descriptions to the main service channel handler when a
  service is selected.

AUTHORS
  Saxon A. Nelson-Milton <saxon@ausocean.org>
  Alan Noble <alan@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package receiver wires the FIB processor to a demodulation front end and
// a main service channel handler. The front end writes raw FIBs; consumers
// select services by label and the resolved descriptions are handed to the
// MSC side.
package receiver

import (
	"io"
	"sync"
	"time"

	"github.com/ausocean/utils/logging"
	"github.com/ausocean/utils/pool"
	"github.com/pkg/errors"

	"github.com/ausocean/dab/ensemble"
	"github.com/ausocean/dab/fib"
)

// FIBs per transmission frame; the FIB index passed to the processor
// cycles through this range.
const fibsPerFrame = 12

// Pool buffer dimensioning for the front end to processor queue.
const (
	poolElementSize = 4 * fibsPerFrame * fib.BlockSize
	poolNumElements = 64
	poolReadTimeout = 100 * time.Millisecond
	writeTimeout    = 10 * time.Millisecond
)

// MSCHandler receives the resolved description of a selected service and
// reconfigures main service channel decoding accordingly.
type MSCHandler interface {
	SetAudioChannel(ensemble.AudioData)
	SetDataChannel(ensemble.PacketData)
}

// Receiver owns the FIB processor and the goroutine that drains FIBs into
// it. Receiver is an io.Writer; the front end writes whole 32-byte FIBs,
// CRC included.
type Receiver struct {
	proc *fib.Processor
	msc  MSCHandler
	pool *pool.Buffer
	log  logging.Logger

	mu      sync.Mutex
	running bool
	done    chan struct{}
	wg      sync.WaitGroup
	fibNum  int
	badCRC  int
}

// New returns a Receiver reporting FIC discoveries to ctrl and selected
// services to msc.
func New(ctrl fib.RadioController, msc MSCHandler, l logging.Logger) *Receiver {
	return &Receiver{
		proc: fib.NewProcessor(ctrl, l),
		msc:  msc,
		log:  l,
	}
}

// Processor returns the underlying FIB processor, on which the ensemble
// queries may be made at any time.
func (r *Receiver) Processor() *fib.Processor {
	return r.proc
}

// Start starts the FIB handling routine. The directory retains whatever it
// held before, so a stop/start cycle does not lose the ensemble; use
// Restart to retune.
func (r *Receiver) Start() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.running {
		return errors.New("receiver already running")
	}
	r.pool = pool.NewBuffer(poolNumElements, poolElementSize, writeTimeout)
	r.done = make(chan struct{})
	r.running = true
	r.wg.Add(1)
	go r.process()
	return nil
}

// Stop terminates the FIB handling routine and waits for it to drain.
func (r *Receiver) Stop() {
	r.mu.Lock()
	if !r.running {
		r.mu.Unlock()
		return
	}
	r.running = false
	close(r.done)
	r.mu.Unlock()
	r.wg.Wait()
	if r.badCRC != 0 {
		r.log.Info("FIBs dropped on CRC", "count", r.badCRC)
	}
}

// Restart clears the ensemble directory and restarts FIB handling, as on
// retune or scan restart.
func (r *Receiver) Restart() error {
	r.Stop()
	r.proc.ClearEnsemble()
	return r.Start()
}

// Write implements io.Writer. The front end delivers one or more whole
// 32-byte FIBs per call; partial blocks are rejected.
func (r *Receiver) Write(p []byte) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.running {
		return 0, errors.New("receiver not running")
	}
	if len(p) == 0 || len(p)%fib.BlockSize != 0 {
		return 0, errors.Errorf("write of %d bytes is not a whole number of FIBs", len(p))
	}
	n, err := r.pool.Write(p)
	if err != nil {
		return n, errors.Wrap(err, "could not queue FIBs")
	}
	r.pool.Flush()
	return n, nil
}

// process drains the pool buffer, checks each FIB's CRC and hands the
// payloads to the processor.
func (r *Receiver) process() {
	defer r.wg.Done()
	for {
		select {
		case <-r.done:
			r.drain()
			return
		default:
			chunk, err := r.pool.Next(poolReadTimeout)
			switch err {
			case nil:
				r.processChunk(chunk)
			case io.EOF, pool.ErrTimeout:
			default:
				r.log.Error("unexpected error from pool buffer", "error", err.Error())
			}
		}
	}
}

// drain empties anything still queued at stop time so that short feeds,
// e.g. file playback, are fully processed.
func (r *Receiver) drain() {
	for {
		chunk, err := r.pool.Next(writeTimeout)
		if err != nil {
			return
		}
		r.processChunk(chunk)
	}
}

func (r *Receiver) processChunk(chunk *pool.Chunk) {
	b := chunk.Bytes()
	for len(b) >= fib.BlockSize {
		blk := b[:fib.BlockSize]
		b = b[fib.BlockSize:]
		if !fib.VerifyCRC(blk) {
			r.badCRC++
			continue
		}
		r.proc.ProcessFIB(blk[:fib.PayloadSize], r.fibNum)
		r.fibNum = (r.fibNum + 1) % fibsPerFrame
	}
	chunk.Close()
}

// SelectAudioService resolves the audio service with the given label and
// hands it to the MSC handler.
func (r *Receiver) SelectAudioService(label string) error {
	ad := r.proc.AudioServiceData(label)
	if !ad.Valid {
		return errors.Errorf("audio service %q insufficiently defined", label)
	}
	r.msc.SetAudioChannel(ad)
	return nil
}

// SelectDataService resolves the packet data service with the given label
// and hands it to the MSC handler.
func (r *Receiver) SelectDataService(label string) error {
	pd := r.proc.DataServiceData(label)
	if !pd.Valid {
		return errors.Errorf("data service %q insufficiently defined", label)
	}
	r.msc.SetDataChannel(pd)
	return nil
}
