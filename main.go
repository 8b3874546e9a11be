// SPDX-License-Identifier: MIT
package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"spectrum/cmd"
	"spectrum/internal/audio"
	"spectrum/internal/config"
	"spectrum/internal/log"
	"spectrum/internal/render"
	"spectrum/internal/tui"
	"spectrum/pkg/build"
)

// main is the entry point for the spectrum visualizer.
// The program flow is divided into three distinct phases:
//
// 1. Startup Phase (Cold Path):
//   - Initialize build information
//   - Parse command line arguments and load the configuration
//   - Initialize PortAudio when capturing from a device
//   - Execute one-off commands if requested
//
// 2. Concurrent Phase (Hot Path):
//   - Start the audio source (callback thread or pacer goroutine)
//   - Run the display loop on the main goroutine
//
// 3. Shutdown Phase (Cold Path):
//   - Handle termination signals or window close
//   - Stop the audio source, then terminate PortAudio
func main() {
	// ==================== STARTUP PHASE (Cold Path) ====================

	// Development builds run without ldflags and keep the defaults.
	if err := build.Initialize(); err != nil {
		log.Debugf("Build: %v, using defaults", err)
	}

	options, err := cmd.ParseArgs()
	if err != nil {
		log.Fatal(err)
	}
	if options.Exit {
		return
	}
	if options.Verbose {
		log.SetLevel(log.LevelDebug)
	}

	cfg, err := config.LoadConfig(options.ConfigPath)
	if err != nil {
		log.Fatal(err)
	}
	cfg.Apply(options)
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}
	level, _ := log.ParseLevel(cfg.LogLevel)
	log.SetLevel(level)

	log.Debugf("Build: %s", build.GetBuildFlags())

	// Handle one-off commands that don't run the visualizer
	if options.Command != "" {
		if err := executeCommand(cfg, options); err != nil {
			log.Fatal(err)
		}
		return
	}

	// PortAudio is only needed when capturing from a device
	if cfg.Audio.Input == "" && !cfg.Audio.Synthetic {
		if err := audio.Initialize(); err != nil {
			log.Fatal(err)
		}
		defer terminateAudio()
	}

	source, err := audio.NewSource(cfg.Audio)
	if err != nil {
		log.Fatal(err)
	}

	// ==================== CONCURRENT PHASE (Hot Path) ====================

	// Setup signal handling for graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// CRITICAL: Start of real-time audio processing. From here on frames
	// arrive on the source's own thread.
	if err := source.Start(ctx); err != nil {
		log.Fatal(err)
	}

	runErr := run(ctx, cfg, source)

	// ==================== SHUTDOWN PHASE (Cold Path) ====================

	stop()
	if err := source.Close(); err != nil {
		log.Errorf("Error closing audio source: %v", err)
	}
	if runErr != nil {
		terminateAudio()
		log.Fatal(runErr)
	}
	log.Info("Shutdown complete")
}

// run drives the configured display mode until it exits or ctx is
// cancelled.
func run(ctx context.Context, cfg *config.Config, source audio.Source) error {
	switch cfg.Display.Mode {
	case config.ModeTerminal:
		// Log lines would tear the frame; hold them until the terminal is
		// restored.
		var held bytes.Buffer
		log.SetOutput(&held)
		err := render.RunTerminal(ctx, cfg, source)
		log.SetOutput(os.Stderr)
		os.Stderr.Write(held.Bytes())
		return err
	default:
		return render.RunWindow(ctx, cfg, source)
	}
}

func terminateAudio() {
	if err := audio.Terminate(); err != nil {
		log.Errorf("%v", err)
	}
}

// executeCommand handles one-off commands that don't run the visualizer,
// such as listing audio devices or rendering a snapshot.
func executeCommand(cfg *config.Config, options *config.Options) error {
	switch options.Command {
	case config.CommandDevices:
		if err := audio.Initialize(); err != nil {
			return err
		}
		defer terminateAudio()

		devices, err := audio.HostDevices()
		if err != nil {
			return fmt.Errorf("failed to list devices: %w", err)
		}
		fmt.Print(tui.RenderDevices(devices))
		return nil

	case config.CommandSnapshot:
		if cfg.Audio.Input == "" {
			return errors.New("snapshot needs an input file, set --input or audio.input")
		}
		file, err := audio.OpenFile(cfg.Audio.Input, cfg.Audio.FrameSize, cfg.Audio.SampleRate, false)
		if err != nil {
			return err
		}
		defer file.Close()
		if options.SnapshotAt < 0 || options.SnapshotAt > file.Duration() {
			return fmt.Errorf("offset %v outside %s (%v long)", options.SnapshotAt, cfg.Audio.Input, file.Duration())
		}

		out, err := os.Create(options.SnapshotOut)
		if err != nil {
			return fmt.Errorf("failed to create snapshot file: %w", err)
		}
		if err := render.Snapshot(cfg, file, options.SnapshotAt, out); err != nil {
			out.Close()
			return err
		}
		if err := out.Close(); err != nil {
			return fmt.Errorf("failed to write snapshot file: %w", err)
		}
		log.Infof("Snapshot: wrote %s at %v", options.SnapshotOut, options.SnapshotAt)
		return nil

	default:
		return fmt.Errorf("unknown command: %s", options.Command)
	}
}
