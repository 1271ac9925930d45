package constants

import (
	"os"
	"strconv"
)

const (
	DefaultBpm                 = 120.0
	DefaultNumerator           = 4
	DefaultDenominator         = 4
	DefaultDenominatorExponent = 2

	SecondsPerMinute = 60.0

	// HOPO window is 65 ticks at 192 ticks per quarter note, scaled by resolution
	HopoThresholdNumerator   = 65.0
	HopoThresholdDenominator = 192.0

	DefaultListenAddr = ":8080"
	DefaultTrack      = "ExpertSingle"
)

func GetListenAddr() string {
	addr := os.Getenv("CHARTDEX_ADDR")
	if addr != "" {
		return addr
	}
	return DefaultListenAddr
}

func GetDefaultTrack() string {
	track := os.Getenv("CHARTDEX_TRACK")
	if track != "" {
		return track
	}
	return DefaultTrack
}

// GetWorkers returns 0 when unset, meaning one worker per CPU.
func GetWorkers() int {
	n, err := strconv.Atoi(os.Getenv("CHARTDEX_WORKERS"))
	if err != nil || n < 0 {
		return 0
	}
	return n
}
