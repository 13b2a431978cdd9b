package mmio

import (
	"errors"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
)

const (
	defaultWatchInterval   = 10 * time.Millisecond
	defaultWatcherPoolSize = 8
)

var (
	watcherPoolOnce sync.Once
	watcherPool     *ants.Pool
)

// callbackPool lazily builds the shared pool watcher callbacks run on, so
// a slow callback never stalls the poll loop.
func callbackPool() *ants.Pool {
	watcherPoolOnce.Do(func() {
		p, err := ants.NewPool(defaultWatcherPoolSize)
		if err != nil {
			internalLogger.errorf("watcher pool: %v", err)
			return
		}
		watcherPool = p
	})
	return watcherPool
}

// Watcher polls a single register and reports value changes. It does not
// interpret the register; it only compares successive raw values.
type Watcher struct {
	region   *MMIO
	offset   uint64
	width    int
	interval time.Duration
	onChange func(old, new uint64)

	stopCh   chan struct{}
	done     chan struct{}
	stopOnce sync.Once
}

// Watch starts polling the register at offset every interval and invokes
// onChange with the previous and current value whenever it differs. An
// interval of zero picks a default. The first read happens inside Watch, so
// bad offsets and widths fail here rather than later.
//
// The watcher reads the region from its own goroutine. The region itself
// has no internal locking, so while a watcher runs the caller must not
// write the region without its own serialization, and must Stop all
// watchers before Close.
func (m *MMIO) Watch(offset uint64, width int, interval time.Duration, onChange func(old, new uint64)) (*Watcher, error) {
	if onChange == nil {
		return nil, errors.New("mmio: watch callback must not be nil")
	}
	if interval <= 0 {
		interval = defaultWatchInterval
	}
	initial, err := m.ReadUint(offset, width)
	if err != nil {
		return nil, err
	}
	w := &Watcher{
		region:   m,
		offset:   offset,
		width:    width,
		interval: interval,
		onChange: onChange,
		stopCh:   make(chan struct{}),
		done:     make(chan struct{}),
	}
	go w.loop(initial)
	return w, nil
}

func (w *Watcher) loop(last uint64) {
	defer close(w.done)
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()
	for {
		select {
		case <-w.stopCh:
			return
		case <-ticker.C:
			v, err := w.region.ReadUint(w.offset, w.width)
			if err != nil {
				internalLogger.warnf("watcher %s offset=%#x stopped: %v",
					w.region.Name(), w.offset, err)
				return
			}
			if v == last {
				continue
			}
			old, cur := last, v
			last = v
			w.dispatch(old, cur)
		}
	}
}

func (w *Watcher) dispatch(old, cur uint64) {
	if pool := callbackPool(); pool != nil {
		if err := pool.Submit(func() { w.onChange(old, cur) }); err == nil {
			return
		}
	}
	w.onChange(old, cur)
}

// Stop ends the poll loop and waits for it to exit. It is idempotent.
func (w *Watcher) Stop() {
	w.stopOnce.Do(func() { close(w.stopCh) })
	<-w.done
}
