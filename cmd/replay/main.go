// Command replay decodes a previously captured raw buffer, either from a
// file written by the capture tool or from the archive database.
package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/banshee-data/iceberg.twist/internal/capturedb"
	"github.com/banshee-data/iceberg.twist/internal/config"
	"github.com/banshee-data/iceberg.twist/internal/fsutil"
	"github.com/banshee-data/iceberg.twist/internal/imu/capture"
	"github.com/banshee-data/iceberg.twist/internal/imu/frame"
	"github.com/banshee-data/iceberg.twist/internal/imu/stats"
	"github.com/banshee-data/iceberg.twist/internal/monitoring"
)

var (
	filePath  = flag.String("file", "", "raw capture file to decode")
	dbPath    = flag.String("db", "", "archive database path")
	captureID = flag.String("capture", "", "archived capture ID to decode (requires -db)")
	list      = flag.Bool("list", false, "list recent archived captures and exit (requires -db)")
	order     = flag.String("order", "", "timestamp/sample byte order: native, little, or big")
	strict    = flag.Bool("strict", false, "use length-prefixed strict framing")
	showStats = flag.Bool("stats", false, "print per-channel sample statistics")
	verbose   = flag.Bool("v", false, "enable debug logging")
)

func loadRaw() ([]byte, error) {
	switch {
	case *filePath != "":
		return fsutil.LoadCapture(fsutil.OSFileSystem{}, *filePath)
	case *dbPath != "" && *captureID != "":
		db, err := capturedb.Open(*dbPath)
		if err != nil {
			return nil, err
		}
		defer db.Close()
		return db.CaptureRaw(*captureID)
	default:
		return nil, fmt.Errorf("either -file or -db with -capture is required")
	}
}

func listCaptures() error {
	db, err := capturedb.Open(*dbPath)
	if err != nil {
		return err
	}
	defer db.Close()

	captures, err := db.RecentCaptures(20)
	if err != nil {
		return err
	}
	for _, c := range captures {
		fmt.Printf("%s  %s  %d bytes\n", c.ID, c.Device, c.ByteCount)
	}
	return nil
}

func main() {
	flag.Parse()
	monitoring.SetDebug(*verbose)

	if *list {
		if *dbPath == "" {
			log.Fatal("-list requires -db")
		}
		if err := listCaptures(); err != nil {
			log.Fatalf("failed to list captures: %v", err)
		}
		return
	}

	// Reuse the config value types so byte-order and framing tokens mean
	// the same thing here as in the capture tool.
	cfg := config.EmptyCaptureConfig()
	if *order != "" {
		cfg.ByteOrder = order
	}
	if *strict {
		mode := "strict"
		cfg.Framing = &mode
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	raw, err := loadRaw()
	if err != nil {
		log.Fatalf("failed to load capture: %v", err)
	}

	session := &capture.Session{
		Decoder: frame.Decoder{Order: cfg.GetByteOrder()},
		Framing: cfg.GetFraming(),
	}
	res, err := session.Run(func() ([]byte, error) { return raw, nil })
	if err != nil {
		log.Fatalf("decode failed: %v", err)
	}

	log.Printf("decoded %d bytes: %d frames, %d malformed candidates",
		len(raw), len(res.Frames), len(res.Failures))
	for i, f := range res.Frames {
		fmt.Printf("frame %d: timestamp=%d samples=%v\n", i, f.Timestamp, f.Samples)
	}
	for _, f := range res.Failures {
		monitoring.Debugf("%s", f)
	}

	if *showStats {
		for _, s := range stats.Summarize(res.Frames) {
			fmt.Printf("channel %d: n=%d mean=%.2f stddev=%.2f min=%d max=%d\n",
				s.Channel, s.Count, s.Mean, s.StdDev, s.Min, s.Max)
		}
	}
}
