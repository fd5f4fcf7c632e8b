package logutil

import (
	"fmt"
	"log"
	"os"
	"sync"
)

const (
	// FileName is the log file written when file logging is enabled
	FileName     = "reply_overlay.log"
	maxSizeBytes = 10 * 1024 * 1024 // 10 MB
	maxArchives  = 3
)

// Setup configures the standard logger. With file logging enabled, output
// goes to FileName with size-based rotation (10MB, max 3 archives);
// otherwise it goes to stderr.
func Setup(enableFileLogging bool) {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	if !enableFileLogging {
		log.SetOutput(os.Stderr)
		return
	}

	w, err := NewRotatingWriter(FileName, maxSizeBytes, maxArchives)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open log file: %v\n", err)
		log.SetOutput(os.Stderr)
		return
	}
	log.SetOutput(w)
}

// RotatingWriter appends to a file and shifts it to .1, .2, ... once it
// would grow past the size limit. The oldest archive is discarded.
type RotatingWriter struct {
	path     string
	maxSize  int64
	archives int

	mu sync.Mutex
	f  *os.File
}

// NewRotatingWriter opens path for appending, rotating first if it is already too large
func NewRotatingWriter(path string, maxSize int64, archives int) (*RotatingWriter, error) {
	w := &RotatingWriter{path: path, maxSize: maxSize, archives: archives}
	if st, err := os.Stat(path); err == nil && st.Size() > maxSize {
		w.rotate()
	}
	if err := w.open(); err != nil {
		return nil, err
	}
	return w, nil
}

func (w *RotatingWriter) open() error {
	f, err := os.OpenFile(w.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		return err
	}
	w.f = f
	return nil
}

func (w *RotatingWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if st, err := w.f.Stat(); err == nil && st.Size()+int64(len(p)) > w.maxSize {
		_ = w.f.Close()
		w.rotate()
		if err := w.open(); err != nil {
			return 0, err
		}
	}
	return w.f.Write(p)
}

// Close closes the current file
func (w *RotatingWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.f.Close()
}

func (w *RotatingWriter) rotate() {
	_ = os.Remove(w.archiveName(w.archives))
	for i := w.archives - 1; i >= 1; i-- {
		_ = os.Rename(w.archiveName(i), w.archiveName(i+1))
	}
	_ = os.Rename(w.path, w.archiveName(1))
}

func (w *RotatingWriter) archiveName(n int) string {
	return fmt.Sprintf("%s.%d", w.path, n)
}
