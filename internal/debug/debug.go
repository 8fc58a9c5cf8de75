package debug

import (
	"os"
	"sync"
	"sync/atomic"

	"github.com/go-kit/kit/log"
	"github.com/go-kit/kit/log/level"
)

var (
	enabled int32 = 0
	mutex   sync.RWMutex
	logger  log.Logger = log.NewLogfmtLogger(log.NewSyncWriter(os.Stderr))
)

// Toggle turns on/off debug mode
func Toggle(on bool) {
	val := int32(0)
	if on {
		val = 1
	}
	atomic.StoreInt32(&enabled, val)
}

// SetLogger sets the logger that debug events are written to.
func SetLogger(l log.Logger) {
	mutex.Lock()
	logger = l
	mutex.Unlock()
}

// Do executes a function if debug is enabled, usually for side effects.
func Do(f func()) {
	if atomic.LoadInt32(&enabled) != 1 {
		return
	}
	f()
}

// Log writes the key/value pairs at debug level if debug is enabled.
func Log(keyvals ...interface{}) {
	if atomic.LoadInt32(&enabled) != 1 {
		return
	}
	mutex.RLock()
	l := logger
	mutex.RUnlock()
	_ = level.Debug(l).Log(keyvals...)
}
