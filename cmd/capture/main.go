// Command capture performs one acquisition from the IMU serial link,
// decodes the buffered frames, and optionally persists the raw capture
// to a file and/or the archive database.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os/signal"
	"syscall"

	"github.com/banshee-data/iceberg.twist/internal/capturedb"
	"github.com/banshee-data/iceberg.twist/internal/config"
	"github.com/banshee-data/iceberg.twist/internal/fsutil"
	"github.com/banshee-data/iceberg.twist/internal/imu/capture"
	"github.com/banshee-data/iceberg.twist/internal/imu/frame"
	"github.com/banshee-data/iceberg.twist/internal/imu/stats"
	"github.com/banshee-data/iceberg.twist/internal/monitoring"
	"github.com/banshee-data/iceberg.twist/internal/serialport"
)

var (
	configPath = flag.String("config", "", "path to a capture config JSON file")
	device     = flag.String("port", "", "serial device path (overrides config)")
	baud       = flag.Int("baud", 0, "baud rate (overrides config)")
	wait       = flag.Duration("wait", 0, "how long to let the sensor fill the buffer (overrides config)")
	outPath    = flag.String("out", "", "persist the raw capture to this file")
	dbPath     = flag.String("db", "", "archive database path (overrides config)")
	order      = flag.String("order", "", "timestamp/sample byte order: native, little, or big (overrides config)")
	strict     = flag.Bool("strict", false, "use length-prefixed strict framing")
	showStats  = flag.Bool("stats", false, "print per-channel sample statistics")
	verbose    = flag.Bool("v", false, "enable debug logging")
)

func loadConfig() (*config.CaptureConfig, error) {
	cfg := config.EmptyCaptureConfig()
	if *configPath != "" {
		loaded, err := config.LoadCaptureConfig(*configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	// Flag overrides win over file values.
	if *device != "" {
		cfg.DevicePath = device
	}
	if *baud != 0 {
		cfg.BaudRate = baud
	}
	if *wait != 0 {
		s := wait.String()
		cfg.WaitDuration = &s
	}
	if *order != "" {
		cfg.ByteOrder = order
	}
	if *strict {
		mode := "strict"
		cfg.Framing = &mode
	}
	if *dbPath != "" {
		cfg.ArchivePath = dbPath
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func main() {
	flag.Parse()
	monitoring.SetDebug(*verbose)

	cfg, err := loadConfig()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	transport := serialport.New(serialport.Options{
		Path:        cfg.GetDevicePath(),
		BaudRate:    cfg.GetBaudRate(),
		ReadTimeout: cfg.GetReadTimeout(),
	})

	session := &capture.Session{
		Decoder: frame.Decoder{Order: cfg.GetByteOrder()},
		Framing: cfg.GetFraming(),
	}

	var raw []byte
	res, err := session.Run(func() ([]byte, error) {
		b, err := transport.Acquire(ctx, cfg.GetWaitDuration())
		raw = b
		return b, err
	})
	if err != nil {
		log.Fatalf("capture failed: %v", err)
	}

	log.Printf("captured %d bytes from %s: %d frames, %d malformed candidates",
		len(raw), cfg.GetDevicePath(), len(res.Frames), len(res.Failures))
	for _, f := range res.Failures {
		monitoring.Debugf("%s", f)
	}

	if *outPath != "" {
		if err := fsutil.SaveCapture(fsutil.OSFileSystem{}, *outPath, raw); err != nil {
			log.Fatalf("failed to persist capture: %v", err)
		}
		log.Printf("wrote raw capture to %s", *outPath)
	}

	if archive := cfg.GetArchivePath(); archive != "" {
		db, err := capturedb.Open(archive)
		if err != nil {
			log.Fatalf("failed to open archive: %v", err)
		}
		defer db.Close()

		id, err := db.RecordCapture(cfg.GetDevicePath(), raw)
		if err != nil {
			log.Fatalf("failed to archive capture: %v", err)
		}
		if err := db.RecordFrames(id, res.Frames); err != nil {
			log.Fatalf("failed to archive frames: %v", err)
		}
		log.Printf("archived capture %s", id)
	}

	if *showStats {
		for _, s := range stats.Summarize(res.Frames) {
			fmt.Printf("channel %d: n=%d mean=%.2f stddev=%.2f min=%d max=%d\n",
				s.Channel, s.Count, s.Mean, s.StdDev, s.Min, s.Max)
		}
	}
}
