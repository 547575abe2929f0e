package socialmanager

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/eringen/socialmanager/options"
)

const optionsDebounce = 500 * time.Millisecond

// loadOptions returns the share settings to start with. A configured options
// file wins over the database and is saved into it.
func (a *App) loadOptions() (options.Options, error) {
	if a.Config.OptionsFile == "" {
		return a.Store.GetOptions()
	}
	opts, err := options.Load(a.Config.OptionsFile)
	if err != nil {
		return options.Options{}, err
	}
	if err := a.Store.SaveOptions(opts); err != nil {
		return options.Options{}, err
	}
	return opts, nil
}

// ReloadOptionsFile reads the options file again and applies it. An invalid
// file leaves the running settings untouched.
func (a *App) ReloadOptionsFile() error {
	opts, err := options.Load(a.Config.OptionsFile)
	if err != nil {
		return err
	}
	if err := a.Store.SaveOptions(opts); err != nil {
		return err
	}
	return a.applyOptions(opts)
}

// OptionsWatcher reloads the options file when it changes on disk.
type OptionsWatcher struct {
	watcher *fsnotify.Watcher
	reload  func()
	path    string

	mu    sync.Mutex
	timer *time.Timer
	once  sync.Once
	done  chan struct{}
}

// WatchOptionsFile starts watching the configured options file. The
// directory is watched rather than the file, since editors often replace
// the file instead of writing to it.
func (a *App) WatchOptionsFile() (*OptionsWatcher, error) {
	path, err := filepath.Abs(a.Config.OptionsFile)
	if err != nil {
		return nil, fmt.Errorf("resolve options file: %w", err)
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}
	if err := fsw.Add(filepath.Dir(path)); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", filepath.Dir(path), err)
	}

	w := &OptionsWatcher{
		watcher: fsw,
		path:    path,
		done:    make(chan struct{}),
		reload: func() {
			if err := a.ReloadOptionsFile(); err != nil {
				a.Echo.Logger.Errorf("reload %s: %v", a.Config.OptionsFile, err)
				return
			}
			a.Echo.Logger.Infof("reloaded share settings from %s", a.Config.OptionsFile)
		},
	}
	go w.run()
	return w, nil
}

func (w *OptionsWatcher) run() {
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			w.schedule()
		case _, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
		case <-w.done:
			return
		}
	}
}

// schedule runs reload once the file has been quiet for optionsDebounce.
func (w *OptionsWatcher) schedule() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(optionsDebounce, w.reload)
}

// Close stops watching. It is safe to call more than once.
func (w *OptionsWatcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.done)
		w.mu.Lock()
		if w.timer != nil {
			w.timer.Stop()
		}
		w.mu.Unlock()
		err = w.watcher.Close()
	})
	return err
}
