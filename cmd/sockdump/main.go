//go:build linux

package main

import (
	"encoding/hex"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/posixsock/posixsock"
)

// sockdump binds a Packet/Raw socket to one interface in promiscuous
// mode and hex-dumps every frame it sees. It is both a debugging tool
// and a worked example of the bind/poll/read contract.

func initLogger() zerolog.Logger {
	output := zerolog.ConsoleWriter{
		Out:        os.Stdout,
		TimeFormat: time.RFC3339,
	}
	return zerolog.New(output).With().Timestamp().Str("app", "sockdump").Logger()
}

func main() {
	configPath := flag.String("config", "sockdump.toml", "path to the capture config")
	flag.Parse()

	logger := initLogger()

	cfg, err := loadCaptureConfig(*configPath)
	if err != nil {
		logger.Fatal().Err(err).Msg("configuration")
	}

	if err := run(logger, cfg); err != nil {
		logger.Fatal().Err(err).Msg("capture")
	}
}

func run(logger zerolog.Logger, cfg captureConfig) error {
	sock := posixsock.New(posixsock.DomainPacket, posixsock.TypeRaw, posixsock.FrameType(cfg.FrameType), true)
	defer sock.Close()

	if err := sock.Bind(cfg.Interface); err != nil {
		return err
	}
	logger.Info().
		Str("interface", sock.BoundURL()).
		Uint16("frame_type", cfg.FrameType).
		Msg("capturing")

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	buf := make([]byte, cfg.SnapLen)
	frames := 0
	for {
		select {
		case <-stop:
			logger.Info().Int("frames", frames).Msg("stopping")
			return nil
		default:
		}

		ready, err := sock.Poll(cfg.PollInterval, false)
		if err != nil {
			return err
		}
		if ready.Error || ready.Invalid {
			logger.Warn().
				Bool("error", ready.Error).
				Bool("invalid", ready.Invalid).
				Msg("descriptor trouble")
			return nil
		}
		if !ready.DataToRead {
			continue
		}

		n, err := sock.Read(buf)
		if err != nil {
			return err
		}
		if n == 0 {
			continue
		}

		frames++
		event := logger.Info().Int("bytes", n).Int("frame", frames)
		if cfg.HexDump {
			event = event.Str("data", hex.EncodeToString(buf[:n]))
		}
		event.Msg("frame")
	}
}
