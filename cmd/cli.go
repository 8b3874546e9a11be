// SPDX-License-Identifier: MIT
package cmd

import (
	"os"

	"spectrum/internal/config"
	"spectrum/pkg/build"

	"github.com/spf13/cobra"
)

// ParseArgs parses os.Args into Options.
func ParseArgs() (*config.Options, error) {
	return parseArgs(os.Args[1:])
}

func parseArgs(args []string) (*config.Options, error) {
	buildInfo := build.GetBuildFlags()
	options := config.NewOptions()

	// Help and version output return without running a command.
	ran := false

	rootCmd := &cobra.Command{
		Use:           buildInfo.Name,
		Short:         buildInfo.Description,
		Version:       buildInfo.Version,
		SilenceErrors: true,
		SilenceUsage:  true,
		Args:          cobra.NoArgs,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd:   true,
			DisableDescriptions: true,
			DisableNoDescFlag:   true,
			HiddenDefaultCmd:    true,
		},
		Run: func(cmd *cobra.Command, args []string) {
			ran = true
		},
	}

	// Display help message
	rootCmd.SetHelpCommand(&cobra.Command{Hidden: true})

	// Devices command
	devicesCmd := &cobra.Command{
		Use:   config.CommandDevices,
		Short: "List available audio devices",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			options.Command = config.CommandDevices
			ran = true
		},
	}
	rootCmd.AddCommand(devicesCmd)

	// Snapshot command
	snapshotCmd := &cobra.Command{
		Use:   config.CommandSnapshot,
		Short: "Render the spectrum of a WAV file at one moment to a PNG",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			options.Command = config.CommandSnapshot
			ran = true
		},
	}
	snapshotCmd.Flags().StringVar(&options.SnapshotOut, "out", config.DefaultSnapshotOut,
		"PNG file to write")
	snapshotCmd.Flags().DurationVar(&options.SnapshotAt, "at", 0,
		"Offset into the input file, e.g. 1.5s")
	rootCmd.AddCommand(snapshotCmd)

	// Configuration
	rootCmd.PersistentFlags().StringVarP(&options.ConfigPath, "config", "c", "",
		"Path to the YAML config file. Default searches spectrum.yaml, configs/spectrum.yaml")

	// Audio Input
	rootCmd.PersistentFlags().StringVarP(&options.Device, "device", "d", "",
		"Input device index or name. Use the 'devices' command to see available devices.")
	rootCmd.PersistentFlags().StringVarP(&options.Input, "input", "i", "",
		"Replay a WAV file instead of capturing from a device")
	rootCmd.PersistentFlags().BoolVar(&options.Synthetic, "synthetic", false,
		"Use a generated test signal instead of a device")

	// Display
	rootCmd.PersistentFlags().StringVarP(&options.Mode, "mode", "m", "",
		"Display mode: window or terminal")

	// Debug Configuration
	rootCmd.PersistentFlags().StringVar(&options.LogLevel, "log-level", "",
		"Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().BoolVarP(&options.Verbose, "verbose", "v", false,
		"Show verbose output")

	// Execute the CLI
	rootCmd.SetArgs(args)
	if err := rootCmd.Execute(); err != nil {
		return nil, err
	}
	options.Exit = !ran

	return options, nil
}
