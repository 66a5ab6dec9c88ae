//go:build linux

package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// captureConfig is the runtime configuration of the capture loop.
type captureConfig struct {
	Interface    string
	FrameType    uint16
	PollInterval time.Duration
	SnapLen      int
	HexDump      bool
}

func defaultCaptureConfig() captureConfig {
	return captureConfig{
		Interface:    "eth0",
		FrameType:    0,
		PollInterval: time.Second,
		SnapLen:      2048,
		HexDump:      true,
	}
}

// sockdump config.toml key mapping to capture settings.
type fileConfig struct {
	Interface    string `toml:"interface"`
	FrameType    int64  `toml:"frame_type"`
	PollInterval string `toml:"poll_interval"`
	SnapLen      int    `toml:"snap_len"`
	HexDump      bool   `toml:"hex_dump"`
}

// loadCaptureConfig overlays config.toml on the defaults.
func loadCaptureConfig(path string) (captureConfig, error) {
	cfg := defaultCaptureConfig()

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return captureConfig{}, fmt.Errorf("load capture config: %w", err)
	}

	if meta.IsDefined("interface") {
		cfg.Interface = strings.TrimSpace(raw.Interface)
	}
	if meta.IsDefined("frame_type") {
		if raw.FrameType < 0 || raw.FrameType > 0xFFFF {
			return captureConfig{}, fmt.Errorf("frame_type %d out of ethertype range", raw.FrameType)
		}
		cfg.FrameType = uint16(raw.FrameType)
	}
	if meta.IsDefined("poll_interval") {
		interval, err := time.ParseDuration(strings.TrimSpace(raw.PollInterval))
		if err != nil {
			return captureConfig{}, fmt.Errorf("parse poll_interval: %w", err)
		}
		cfg.PollInterval = interval
	}
	if meta.IsDefined("snap_len") {
		if raw.SnapLen <= 0 {
			return captureConfig{}, fmt.Errorf("snap_len %d must be positive", raw.SnapLen)
		}
		cfg.SnapLen = raw.SnapLen
	}
	if meta.IsDefined("hex_dump") {
		cfg.HexDump = raw.HexDump
	}

	if cfg.Interface == "" {
		return captureConfig{}, fmt.Errorf("interface must not be empty")
	}

	return cfg, nil
}
