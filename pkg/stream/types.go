// Package stream provides file-backed byte streams for persistence contexts.
package stream

import (
	"errors"
	"time"
)

// FileWriterConfig holds configuration for the file writer
type FileWriterConfig struct {
	FilePath      string        // Path to the snapshot file
	FsyncInterval time.Duration // How often to fsync (0 = every write)
	BufferSize    int           // Write buffer size
	Truncate      bool          // Start from an empty file instead of appending
}

// FileReaderConfig holds configuration for the file reader
type FileReaderConfig struct {
	FilePath    string // Path to the snapshot file
	StartOffset int64  // Offset to start reading from
	BufferSize  int    // Read buffer size
}

// DefaultBufferSize is used when a config leaves BufferSize unset.
const DefaultBufferSize = 4096

// ErrClosed is returned by operations on a closed stream.
var ErrClosed = errors.New("stream closed")
