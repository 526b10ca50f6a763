package stream

import (
	"bufio"
	"io"
	"os"
)

// FileReader provides buffered sequential reads from a file and tracks the
// offset of the next unread byte.
type FileReader struct {
	file   *os.File
	reader *bufio.Reader
	offset int64
	config FileReaderConfig
}

// NewFileReader opens the file named in config for reading
func NewFileReader(config FileReaderConfig) (*FileReader, error) {
	if config.BufferSize <= 0 {
		config.BufferSize = DefaultBufferSize
	}

	file, err := os.Open(config.FilePath)
	if err != nil {
		return nil, err
	}

	// Seek to start offset if specified
	if config.StartOffset > 0 {
		if _, err := file.Seek(config.StartOffset, io.SeekStart); err != nil {
			_ = file.Close()
			return nil, err
		}
	}

	return &FileReader{
		file:   file,
		reader: bufio.NewReaderSize(file, config.BufferSize),
		offset: config.StartOffset,
		config: config,
	}, nil
}

// Read implements io.Reader.
func (r *FileReader) Read(p []byte) (int, error) {
	if r.file == nil {
		return 0, ErrClosed
	}
	n, err := r.reader.Read(p)
	r.offset += int64(n)
	return n, err
}

// SeekTo moves the read position to offset bytes from the start of the file
func (r *FileReader) SeekTo(offset int64) error {
	if r.file == nil {
		return ErrClosed
	}
	if _, err := r.file.Seek(offset, io.SeekStart); err != nil {
		return err
	}

	r.reader.Reset(r.file) // Drop buffered data from the old position
	r.offset = offset
	return nil
}

// Offset returns the current read offset
func (r *FileReader) Offset() int64 {
	return r.offset
}

// Remaining returns the number of bytes between the offset and the end of
// the file.
func (r *FileReader) Remaining() (int64, error) {
	if r.file == nil {
		return 0, ErrClosed
	}
	info, err := r.file.Stat()
	if err != nil {
		return 0, err
	}
	return info.Size() - r.offset, nil
}

// Close closes the file reader
func (r *FileReader) Close() error {
	if r.file == nil {
		return nil
	}
	err := r.file.Close()
	r.file = nil
	return err
}
