// Package filesystem finds menu files in a directory and watches it for
// new ones, so that dropping a photo or a text export into the folder is
// enough to ingest it.
package filesystem

import (
	"context"
	"errors"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/menumem/internal/core/domain"
	"github.com/custodia-labs/menumem/internal/logger"
)

// DefaultDebounce is how long a file must stay quiet before it is emitted.
// Editors and copy tools write in several steps.
const DefaultDebounce = 500 * time.Millisecond

// ErrClosed is returned by Watch after Close.
var ErrClosed = errors.New("watcher closed")

// supportedTypes lists the MIME types the ingestion pipeline accepts.
var supportedTypes = map[string]bool{
	"application/json": true,
	"text/plain":       true,
	"text/markdown":    true,
	"text/html":        true,
	"text/csv":         true,
	"image/png":        true,
	"image/jpeg":       true,
	"image/gif":        true,
	"image/webp":       true,
	"image/tiff":       true,
	"image/bmp":        true,
}

// Watcher scans and watches one directory (not its subdirectories) for menu files.
type Watcher struct {
	root     string
	debounce time.Duration

	mu      sync.Mutex
	closed  bool
	watcher *fsnotify.Watcher
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce overrides DefaultDebounce.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		if d > 0 {
			w.debounce = d
		}
	}
}

// New creates a watcher for root.
func New(root string, opts ...Option) *Watcher {
	w := &Watcher{
		root:     root,
		debounce: DefaultDebounce,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Root returns the watched directory.
func (w *Watcher) Root() string {
	return w.root
}

// Validate checks that the root exists and is a readable directory.
func (w *Watcher) Validate() error {
	info, err := os.Stat(w.root)
	if err != nil {
		return fmt.Errorf("root path error: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("root path error: %s is not a directory", w.root)
	}
	if _, err := os.ReadDir(w.root); err != nil {
		return fmt.Errorf("root path not readable: %w", err)
	}
	return nil
}

// Scan returns the supported files already present, sorted by path.
func (w *Watcher) Scan(ctx context.Context) ([]domain.MenuFile, error) {
	if err := w.Validate(); err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(w.root)
	if err != nil {
		return nil, err
	}

	var files []domain.MenuFile
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if entry.IsDir() || isHidden(entry.Name()) {
			continue
		}
		path := filepath.Join(w.root, entry.Name())
		mimeType := DetectMIMEType(path)
		if !IsSupported(mimeType) {
			logger.Debug("watcher: skipping %s (%s)", path, mimeType)
			continue
		}
		files = append(files, domain.MenuFile{Path: path, MIMEType: mimeType})
	}

	sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })
	return files, nil
}

// Watch emits supported files as they are created or rewritten, once
// each has been quiet for the debounce period. The channel closes when
// ctx is cancelled or the watcher is closed.
func (w *Watcher) Watch(ctx context.Context) (<-chan domain.MenuFile, error) {
	if err := w.Validate(); err != nil {
		return nil, err
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return nil, ErrClosed
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := fsw.Add(w.root); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("watch %s: %w", w.root, err)
	}
	w.watcher = fsw

	out := make(chan domain.MenuFile)
	go w.loop(ctx, fsw, out)
	return out, nil
}

func (w *Watcher) loop(ctx context.Context, fsw *fsnotify.Watcher, out chan<- domain.MenuFile) {
	defer close(out)
	defer fsw.Close()

	pending := make(map[string]time.Time)
	ticker := time.NewTicker(max(w.debounce/2, time.Millisecond))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-fsw.Events:
			if !ok {
				return
			}
			if file, ok := w.handleFsEvent(event); ok {
				pending[file.Path] = time.Now()
			} else if event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
				delete(pending, event.Name)
			}

		case err, ok := <-fsw.Errors:
			if !ok {
				return
			}
			logger.Warn("watcher: %v", err)

		case now := <-ticker.C:
			for _, file := range w.settled(pending, now) {
				select {
				case out <- file:
				case <-ctx.Done():
					return
				}
			}
		}
	}
}

// settled removes and returns the pending files quiet for the debounce period.
func (w *Watcher) settled(pending map[string]time.Time, now time.Time) []domain.MenuFile {
	var ready []domain.MenuFile
	for path, seen := range pending {
		if now.Sub(seen) < w.debounce {
			continue
		}
		delete(pending, path)
		if info, err := os.Stat(path); err != nil || info.IsDir() {
			continue
		}
		ready = append(ready, domain.MenuFile{Path: path, MIMEType: DetectMIMEType(path)})
	}
	sort.Slice(ready, func(i, j int) bool { return ready[i].Path < ready[j].Path })
	return ready
}

// handleFsEvent reports whether an event names a file worth ingesting.
// Only creations and writes of supported, non-hidden regular files count.
func (w *Watcher) handleFsEvent(event fsnotify.Event) (domain.MenuFile, bool) {
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
		return domain.MenuFile{}, false
	}

	rel, err := filepath.Rel(w.root, event.Name)
	if err != nil || isHidden(rel) {
		return domain.MenuFile{}, false
	}

	info, err := os.Stat(event.Name)
	if err != nil || info.IsDir() {
		return domain.MenuFile{}, false
	}

	mimeType := DetectMIMEType(event.Name)
	if !IsSupported(mimeType) {
		return domain.MenuFile{}, false
	}
	return domain.MenuFile{Path: event.Name, MIMEType: mimeType}, true
}

// Close stops an active Watch. Watch cannot be called afterwards.
func (w *Watcher) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return nil
	}
	w.closed = true
	if w.watcher != nil {
		return w.watcher.Close()
	}
	return nil
}

// IsSupported reports whether files of this MIME type can be ingested.
func IsSupported(mimeType string) bool {
	return supportedTypes[mimeType]
}

// isHidden reports whether any element of path starts with a dot.
func isHidden(path string) bool {
	for _, part := range strings.Split(filepath.ToSlash(path), "/") {
		if part != "." && part != ".." && strings.HasPrefix(part, ".") {
			return true
		}
	}
	return false
}

// fallbackTypes covers extensions the mime package may not know on every platform.
var fallbackTypes = map[string]string{
	".txt":      "text/plain",
	".text":     "text/plain",
	".md":       "text/markdown",
	".markdown": "text/markdown",
	".html":     "text/html",
	".htm":      "text/html",
	".csv":      "text/csv",
	".json":     "application/json",
	".png":      "image/png",
	".jpg":      "image/jpeg",
	".jpeg":     "image/jpeg",
	".gif":      "image/gif",
	".webp":     "image/webp",
	".tif":      "image/tiff",
	".tiff":     "image/tiff",
	".bmp":      "image/bmp",
}

// DetectMIMEType maps a file extension to a MIME type without parameters.
// Files without an extension are treated as plain text.
func DetectMIMEType(path string) string {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == "" {
		return "text/plain"
	}
	if t, ok := fallbackTypes[ext]; ok {
		return t
	}
	if t := mime.TypeByExtension(ext); t != "" {
		if i := strings.IndexByte(t, ';'); i >= 0 {
			t = t[:i]
		}
		return strings.TrimSpace(t)
	}
	return "application/octet-stream"
}
