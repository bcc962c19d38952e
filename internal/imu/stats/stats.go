// Package stats summarises decoded channel samples across the frames of
// a capture.
package stats

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/banshee-data/iceberg.twist/internal/imu/frame"
)

// ChannelSummary aggregates one channel position across all frames that
// carry it.
type ChannelSummary struct {
	Channel int     `json:"channel"`
	Count   int     `json:"count"`
	Mean    float64 `json:"mean"`
	StdDev  float64 `json:"std_dev"`
	Min     int16   `json:"min"`
	Max     int16   `json:"max"`
}

// Summarize computes per-channel statistics over the given frames.
// Frames with differing sample counts contribute to the channels they
// have, so a truncated frame does not poison the rest. An empty input
// yields an empty summary.
func Summarize(frames []frame.Frame) []ChannelSummary {
	var channels [][]float64
	for _, f := range frames {
		for i, s := range f.Samples {
			for len(channels) <= i {
				channels = append(channels, nil)
			}
			channels[i] = append(channels[i], float64(s))
		}
	}

	summaries := make([]ChannelSummary, 0, len(channels))
	for i, values := range channels {
		if len(values) == 0 {
			summaries = append(summaries, ChannelSummary{Channel: i})
			continue
		}

		mean, std := stat.MeanStdDev(values, nil)
		if len(values) < 2 {
			// Sample standard deviation is undefined for a single value.
			std = 0
		}

		summaries = append(summaries, ChannelSummary{
			Channel: i,
			Count:   len(values),
			Mean:    mean,
			StdDev:  std,
			Min:     int16(floats.Min(values)),
			Max:     int16(floats.Max(values)),
		})
	}
	return summaries
}
