// SPDX-License-Identifier: MIT
package audio

import "context"

// StaticSource serves frames pushed by the caller. It drives offline
// rendering and tests, where frames come from a file position rather
// than a clock.
type StaticSource struct {
	slot Slot
}

var _ Source = (*StaticSource)(nil)

// Push publishes data as the latest frame.
func (s *StaticSource) Push(data []byte) *Frame { return s.slot.Store(data) }

func (s *StaticSource) Start(context.Context) error { return nil }

func (s *StaticSource) Latest() *Frame { return s.slot.Load() }

func (s *StaticSource) Close() error {
	s.slot.Reset()
	return nil
}
