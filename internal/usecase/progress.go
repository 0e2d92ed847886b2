package usecase

import (
	"math"
	"sync"
)

// ProgressObserver receives run progress as a percentage and a message.
type ProgressObserver func(percentage int, message string)

// progressReporter serializes observer calls. A nil observer is ignored.
type progressReporter struct {
	mu       sync.Mutex
	observer ProgressObserver
}

func newProgressReporter(observer ProgressObserver) *progressReporter {
	return &progressReporter{observer: observer}
}

func (p *progressReporter) report(percentage int, message string) {
	if p.observer == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.observer(percentage, message)
}

func percent(done, total int) int {
	if total <= 0 {
		return 100
	}
	return int(math.Round(float64(done) / float64(total) * 100))
}
