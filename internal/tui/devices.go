// SPDX-License-Identifier: MIT
// Package tui formats console output for the one-off commands.
package tui

import (
	"fmt"
	"strings"

	"spectrum/internal/audio"

	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFDF5")).
			Background(lipgloss.Color("#25A065")).
			Padding(0, 1).
			Bold(true)

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFDF5"))

	highlightStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#25A065")).
			Bold(true)

	dimStyle = lipgloss.NewStyle().Faint(true)
)

// RenderDevices formats the device list printed by the devices command.
// Devices without input channels are dimmed and the default input is
// highlighted.
func RenderDevices(devices []audio.Device) string {
	var sb strings.Builder

	sb.WriteString(titleStyle.Render("Audio Device List"))
	sb.WriteString("\n\n")

	if len(devices) == 0 {
		sb.WriteString("No audio devices found.\n")
		return sb.String()
	}

	for _, device := range devices {
		marker := " "
		if device.IsDefaultInput {
			marker = "*"
		}

		deviceInfo := fmt.Sprintf("%s [%d] %s (%s)\n", marker, device.ID, device.Name, device.Kind())
		if device.HostAPI != "" {
			deviceInfo += fmt.Sprintf("      Host API: %s\n", device.HostAPI)
		}
		deviceInfo += fmt.Sprintf("      Input channels: %d, Output channels: %d\n",
			device.MaxInputChannels, device.MaxOutputChannels)
		deviceInfo += fmt.Sprintf("      Default sample rate: %.0f Hz\n", device.DefaultSampleRate)
		if device.MaxInputChannels > 0 {
			deviceInfo += fmt.Sprintf("      Input latency: %v low, %v high\n",
				device.DefaultLowInputLatency, device.DefaultHighInputLatency)
		}

		switch {
		case device.IsDefaultInput:
			deviceInfo = highlightStyle.Render(deviceInfo)
		case device.MaxInputChannels < 1:
			deviceInfo = dimStyle.Render(deviceInfo)
		}

		sb.WriteString(deviceInfo)
		sb.WriteString("\n")
	}

	sb.WriteString(infoStyle.Render("* default input • select with --device <index|name>"))
	sb.WriteString("\n")
	return sb.String()
}
