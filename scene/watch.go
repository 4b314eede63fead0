package scene

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

const watchDebounce = 100 * time.Millisecond

// Watcher reports writes to YAML scene files. Paths may be files or
// directories; a file is watched through its parent directory so that
// editors which replace the file on save are still seen.
type Watcher struct {
	watcher *fsnotify.Watcher
	files   map[string]struct{}
	dirs    map[string]struct{}
	Events  chan string
	Errors  chan error
	closeCh chan struct{}
	done    chan struct{}
	once    sync.Once

	mu   sync.Mutex
	skip map[string]struct{}
}

func NewWatcher(paths ...string) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("scene: watcher: %w", err)
	}

	files := make(map[string]struct{})
	dirs := make(map[string]struct{})
	watched := make(map[string]struct{})
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			_ = w.Close()
			return nil, fmt.Errorf("scene: watch %s: %w", p, err)
		}
		dir := abs
		if isSceneFile(abs) {
			files[abs] = struct{}{}
			dir = filepath.Dir(abs)
		} else {
			dirs[abs] = struct{}{}
		}
		if _, ok := watched[dir]; ok {
			continue
		}
		if err := w.Add(dir); err != nil {
			_ = w.Close()
			return nil, fmt.Errorf("scene: watch %s: %w", dir, err)
		}
		watched[dir] = struct{}{}
	}

	watcher := &Watcher{
		watcher: w,
		files:   files,
		dirs:    dirs,
		Events:  make(chan string, 16),
		Errors:  make(chan error, 1),
		closeCh: make(chan struct{}),
		done:    make(chan struct{}),
		skip:    make(map[string]struct{}),
	}
	go watcher.run()
	return watcher, nil
}

// Close stops the watcher. It is safe to call more than once.
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
		<-w.done
		close(w.Events)
		close(w.Errors)
	})
	return err
}

// SkipNext drops the next event reported for path, typically one caused by
// the program writing the file itself.
func (w *Watcher) SkipNext(path string) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return
	}
	w.mu.Lock()
	w.skip[abs] = struct{}{}
	w.mu.Unlock()
}

// skipped reports whether name was marked by SkipNext and clears the mark.
func (w *Watcher) skipped(name string) bool {
	abs, err := filepath.Abs(name)
	if err != nil {
		return false
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if _, ok := w.skip[abs]; !ok {
		return false
	}
	delete(w.skip, abs)
	return true
}

// run reports a path once it has been quiet for watchDebounce, so a save
// that truncates and then writes yields one event after the final write.
func (w *Watcher) run() {
	defer close(w.done)
	type firing struct {
		name string
		gen  int
	}
	type debounce struct {
		timer *time.Timer
		gen   int
	}
	pending := make(map[string]debounce)
	fired := make(chan firing)
	gen := 0
	defer func() {
		for _, d := range pending {
			d.timer.Stop()
		}
	}()

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if !w.wants(event.Name) {
				continue
			}
			name := event.Name
			if d, ok := pending[name]; ok {
				d.timer.Stop()
			}
			gen++
			f := firing{name: name, gen: gen}
			pending[name] = debounce{
				timer: time.AfterFunc(watchDebounce, func() {
					select {
					case fired <- f:
					case <-w.closeCh:
					}
				}),
				gen: gen,
			}
		case f := <-fired:
			// A later event for the same path supersedes this timer.
			if d, ok := pending[f.name]; !ok || d.gen != f.gen {
				continue
			}
			delete(pending, f.name)
			if w.skipped(f.name) {
				continue
			}
			select {
			case w.Events <- f.name:
			case <-w.closeCh:
				return
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			select {
			case w.Errors <- err:
			default:
			}
		case <-w.closeCh:
			return
		}
	}
}

func (w *Watcher) wants(name string) bool {
	if !isSceneFile(name) {
		return false
	}
	abs, err := filepath.Abs(name)
	if err != nil {
		return false
	}
	if _, ok := w.files[abs]; ok {
		return true
	}
	_, ok := w.dirs[filepath.Dir(abs)]
	return ok
}

func isSceneFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}
