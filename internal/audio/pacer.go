// SPDX-License-Identifier: MIT
package audio

import (
	"context"
	"sync"
	"time"

	"spectrum/internal/log"
)

// pacer calls tick at a fixed interval on its own goroutine, standing in
// for the device callback clock of file and synthetic sources.
type pacer struct {
	interval time.Duration
	tick     func()

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func newPacer(interval time.Duration, tick func()) *pacer {
	return &pacer{interval: interval, tick: tick}
}

// start launches the ticking goroutine. Calling start while running is a
// no-op.
func (p *pacer) start(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.cancel != nil {
		log.Warnf("Audio: pacer already running")
		return
	}

	ctx, p.cancel = context.WithCancel(ctx)
	ticker := time.NewTicker(p.interval)

	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		defer ticker.Stop()
		p.tick()
		for {
			select {
			case <-ticker.C:
				p.tick()
			case <-ctx.Done():
				return
			}
		}
	}()
}

// stop cancels the goroutine and waits for the last tick to return.
func (p *pacer) stop() {
	p.mu.Lock()
	cancel := p.cancel
	p.cancel = nil
	p.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	p.wg.Wait()
}

// frameInterval is the real-time duration of frameSize samples.
func frameInterval(frameSize int, sampleRate float64) time.Duration {
	return time.Duration(float64(frameSize) / sampleRate * float64(time.Second))
}
