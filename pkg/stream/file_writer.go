package stream

import (
	"bufio"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// FileWriter is a buffered, append-only io.Writer over a file. A Write
// either buffers all of p or fails.
type FileWriter struct {
	file       *os.File
	writer     *bufio.Writer
	fsyncTimer *time.Timer
	config     FileWriterConfig
	mutex      sync.Mutex
	offset     int64 // Current write offset
	closed     bool
}

// NewFileWriter creates a new file writer with the given configuration
func NewFileWriter(config FileWriterConfig) (*FileWriter, error) {
	if config.BufferSize <= 0 {
		config.BufferSize = DefaultBufferSize
	}

	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(config.FilePath), 0750); err != nil {
		return nil, err
	}

	flags := os.O_CREATE | os.O_WRONLY
	if config.Truncate {
		flags |= os.O_TRUNC
	}
	file, err := os.OpenFile(config.FilePath, flags, 0600)
	if err != nil {
		return nil, err
	}

	// Seek to end for append behavior
	offset, err := file.Seek(0, io.SeekEnd)
	if err != nil {
		_ = file.Close()
		return nil, err
	}

	writer := &FileWriter{
		file:   file,
		writer: bufio.NewWriterSize(file, config.BufferSize),
		config: config,
		offset: offset,
	}

	// Set up fsync timer if interval is configured
	if config.FsyncInterval > 0 {
		writer.fsyncTimer = time.AfterFunc(config.FsyncInterval, func() {
			writer.mutex.Lock()
			defer writer.mutex.Unlock()
			if !writer.closed {
				_ = writer.sync() // Ignore error in timer callback
			}
		})
	}

	return writer, nil
}

// Write buffers p and returns len(p), or an error if any part of p could
// not be accepted.
func (w *FileWriter) Write(p []byte) (int, error) {
	w.mutex.Lock()
	defer w.mutex.Unlock()

	if w.closed {
		return 0, ErrClosed
	}

	n, err := w.writer.Write(p)
	w.offset += int64(n)
	if err != nil {
		return n, err
	}

	// Sync immediately if no fsync interval configured
	if w.config.FsyncInterval == 0 {
		if err := w.sync(); err != nil {
			return n, err
		}
	} else if w.fsyncTimer != nil {
		w.fsyncTimer.Reset(w.config.FsyncInterval)
	}

	return n, nil
}

// Sync forces a fsync to disk
func (w *FileWriter) Sync() error {
	w.mutex.Lock()
	defer w.mutex.Unlock()
	if w.closed {
		return ErrClosed
	}
	return w.sync()
}

// sync flushes buffered writes and fsyncs (internal method)
func (w *FileWriter) sync() error {
	if err := w.writer.Flush(); err != nil {
		return err
	}
	return w.file.Sync()
}

// Close closes the file writer and ensures all data is synced
func (w *FileWriter) Close() error {
	w.mutex.Lock()
	defer w.mutex.Unlock()

	if w.closed {
		return nil
	}
	w.closed = true

	if w.fsyncTimer != nil {
		w.fsyncTimer.Stop()
	}

	if err := w.sync(); err != nil {
		_ = w.file.Close()
		return err
	}

	return w.file.Close()
}

// Size returns the number of bytes written to the file, buffered bytes
// included.
func (w *FileWriter) Size() int64 {
	w.mutex.Lock()
	defer w.mutex.Unlock()
	return w.offset
}

// Path returns the file path
func (w *FileWriter) Path() string {
	return w.config.FilePath
}
