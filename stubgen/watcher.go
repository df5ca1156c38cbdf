package stubgen

import (
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/QLYYLQ/iostub/errors"
	"github.com/QLYYLQ/iostub/logger"
)

// ConfigWatcher watches the TOML table file for changes and triggers a
// reload callback, debouncing rapid writes (editors often write a file
// several times in quick succession).
type ConfigWatcher struct {
	configPath     string
	watcher        *fsnotify.Watcher
	onChange       func(configPath string)
	mu             sync.Mutex
	debounceTimer  *time.Timer
	debouncePeriod time.Duration
}

// NewConfigWatcher creates a watcher over configPath. onChange runs
// after each debounced change, on the watcher goroutine.
func NewConfigWatcher(configPath string, onChange func(configPath string)) (*ConfigWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "failed to create fsnotify watcher")
	}

	if err := watcher.Add(configPath); err != nil {
		watcher.Close()
		return nil, errors.Wrapf(err, "failed to watch config file %s", configPath)
	}

	return &ConfigWatcher{
		configPath:     configPath,
		watcher:        watcher,
		onChange:       onChange,
		debouncePeriod: 500 * time.Millisecond,
	}, nil
}

// Start begins watching for config file changes.
func (cw *ConfigWatcher) Start() {
	go cw.watchLoop()
}

func (cw *ConfigWatcher) watchLoop() {
	for {
		select {
		case event, ok := <-cw.watcher.Events:
			if !ok {
				return
			}
			// Only react to Write or Create events
			if event.Op&fsnotify.Write == fsnotify.Write || event.Op&fsnotify.Create == fsnotify.Create {
				logger.Logger.Infow("Config change detected",
					logger.FieldPath, event.Name,
					logger.FieldOperation, event.Op.String())
				cw.scheduleChange()
			}

		case err, ok := <-cw.watcher.Errors:
			if !ok {
				return
			}
			logger.Logger.Warnw("Config watcher error",
				logger.FieldError, err)
		}
	}
}

// scheduleChange debounces rapid file changes before firing onChange.
func (cw *ConfigWatcher) scheduleChange() {
	cw.mu.Lock()
	defer cw.mu.Unlock()

	if cw.debounceTimer != nil {
		cw.debounceTimer.Stop()
	}
	cw.debounceTimer = time.AfterFunc(cw.debouncePeriod, func() {
		cw.onChange(cw.configPath)
	})
}

// Stop stops watching for config changes and cancels any pending
// debounced callback.
func (cw *ConfigWatcher) Stop() error {
	cw.mu.Lock()
	if cw.debounceTimer != nil {
		cw.debounceTimer.Stop()
		cw.debounceTimer = nil
	}
	cw.mu.Unlock()

	return cw.watcher.Close()
}
