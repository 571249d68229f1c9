/*
DESCRIPTION
  ficdump reads a recorded fast information channel stream — a file of
  consecutive 32-byte fast information blocks as produced by a demodulation
  front end — runs the FIB processor over it, and reports the ensemble it
  describes: name, date and time, and every service with its resolved
  sub-channel parameters.

AUTHORS
  Trek Hopton <trek@ausocean.org>
  Saxon A. Nelson-Milton <saxon@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package main provides ficdump, a tool for inspecting recorded FIC
// streams.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/ausocean/utils/logging"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/ausocean/dab/ensemble"
	"github.com/ausocean/dab/fib"
	"github.com/ausocean/dab/receiver"
)

// Current software version.
const version = "v1.0.0"

// Logging configuration.
const (
	logPath      = "/var/log/ficdump/ficdump.log"
	logMaxSize   = 500 // MB
	logMaxBackup = 10
	logMaxAge    = 28 // days
	logSuppress  = true
)

// controller logs FIC discoveries as they happen.
type controller struct {
	log logging.Logger
}

func (c *controller) OnNewEnsembleName(name string) {
	c.log.Info("ensemble", "name", name)
}

func (c *controller) OnServiceDetected(id uint32, label string) {
	c.log.Info("service detected", "sid", fmt.Sprintf("0x%x", id), "label", label)
}

func (c *controller) OnDateTimeUpdate(dt ensemble.DateTime) {
	c.log.Debug("date and time", "year", dt.Year, "month", dt.Month, "day", dt.Day,
		"hour", dt.Hour, "minutes", dt.Minutes, "seconds", dt.Seconds)
}

// mscLogger stands in for the main service channel handler, logging the
// channel parameters that a selection would apply.
type mscLogger struct {
	log logging.Logger
}

func (m *mscLogger) SetAudioChannel(ad ensemble.AudioData) {
	m.log.Info("audio channel selected", "subChID", ad.SubChID, "startAddr", ad.StartAddr,
		"CUs", ad.Length, "bitRate", ad.BitRate, "protLevel", ad.ProtLevel, "ASCTy", ad.ASCTy)
}

func (m *mscLogger) SetDataChannel(pd ensemble.PacketData) {
	m.log.Info("data channel selected", "subChID", pd.SubChID, "startAddr", pd.StartAddr,
		"CUs", pd.Length, "bitRate", pd.BitRate, "FEC", pd.FECScheme, "DSCTy", pd.DSCTy)
}

func main() {
	var (
		inPath      = flag.String("in", "", "file of consecutive 32-byte FIBs to read")
		verbosity   = flag.Int("verbosity", int(logging.Info), "logging verbosity")
		showVersion = flag.Bool("version", false, "show version")
	)
	flag.Parse()
	if *showVersion {
		fmt.Println(version)
		os.Exit(0)
	}

	// Create lumberjack logger to handle logging to file, and log to
	// stderr as well so results land on the terminal.
	fileLog := &lumberjack.Logger{
		Filename:   logPath,
		MaxSize:    logMaxSize,
		MaxBackups: logMaxBackup,
		MaxAge:     logMaxAge,
	}
	log := logging.New(int8(*verbosity), io.MultiWriter(fileLog, os.Stderr), logSuppress)

	if *inPath == "" {
		log.Fatal("no input file; use -in")
	}
	in, err := os.Open(*inPath)
	if err != nil {
		log.Fatal("could not open input", "error", err.Error())
	}
	defer in.Close()

	rcv := receiver.New(&controller{log: log}, &mscLogger{log: log}, log)
	err = rcv.Start()
	if err != nil {
		log.Fatal("could not start receiver", "error", err.Error())
	}

	buf := make([]byte, 250*fib.BlockSize)
	for {
		n, err := io.ReadFull(in, buf)
		n -= n % fib.BlockSize
		if n > 0 {
			_, werr := rcv.Write(buf[:n])
			if werr != nil {
				log.Error("could not feed FIBs", "error", werr.Error())
			}
		}
		if err != nil {
			if err != io.EOF && err != io.ErrUnexpectedEOF {
				log.Error("read failed", "error", err.Error())
			}
			break
		}
	}
	rcv.Stop()

	report(rcv)
}

// report prints the decoded ensemble to stdout.
func report(rcv *receiver.Receiver) {
	proc := rcv.Processor()

	fmt.Printf("ensemble: %q (synced: %v)\n", proc.EnsembleName(), proc.SyncReached())
	if dt, ok := proc.DateTime(); ok {
		fmt.Printf("time: %04d-%02d-%02d %02d:%02d:%02d (offset %+dh%02dm)\n",
			dt.Year, dt.Month, dt.Day, dt.Hour, dt.Minutes, dt.Seconds,
			dt.HourOffset, dt.MinuteOffset)
	}

	for _, s := range proc.ServiceList() {
		if s.Label == "" {
			fmt.Printf("service 0x%x: unlabelled\n", s.ID)
			continue
		}
		switch proc.KindOfService(s.Label) {
		case ensemble.AudioService:
			ad := proc.AudioServiceData(s.Label)
			if !ad.Valid {
				fmt.Printf("service 0x%x %q: audio, unresolved\n", s.ID, s.Label)
				continue
			}
			fmt.Printf("service 0x%x %q: audio subCh %d start %d CUs %d rate %dkbit/s prot %d\n",
				s.ID, s.Label, ad.SubChID, ad.StartAddr, ad.Length, ad.BitRate, ad.ProtLevel)
		case ensemble.PacketService:
			pd := proc.DataServiceData(s.Label)
			if !pd.Valid {
				fmt.Printf("service 0x%x %q: data, unresolved\n", s.ID, s.Label)
				continue
			}
			fmt.Printf("service 0x%x %q: data subCh %d start %d CUs %d rate %dkbit/s FEC %d addr %d\n",
				s.ID, s.Label, pd.SubChID, pd.StartAddr, pd.Length, pd.BitRate, pd.FECScheme, pd.PacketAddress)
		default:
			fmt.Printf("service 0x%x %q: kind unknown\n", s.ID, s.Label)
		}
	}
}
