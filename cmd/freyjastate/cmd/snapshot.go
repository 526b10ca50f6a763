package cmd

import (
	"bytes"
	"fmt"
	"io"

	"github.com/segmentio/ksuid"

	"github.com/ssargent/freyjastate/pkg/di"
	"github.com/ssargent/freyjastate/pkg/persistence"
	"github.com/ssargent/freyjastate/pkg/session"
	"github.com/ssargent/freyjastate/pkg/stream"
)

func openStore() (di.SnapshotStore, error) {
	store, err := container.GetStoreOpener()(cfg.DataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to open snapshot store: %w", err)
	}
	return store, nil
}

func parseID(arg string) (ksuid.KSUID, error) {
	id, err := ksuid.Parse(arg)
	if err != nil {
		return ksuid.Nil, fmt.Errorf("invalid snapshot id %q: %w", arg, err)
	}
	return id, nil
}

func encodeState(s *session.State) ([]byte, error) {
	m := container.GetMetrics()

	var buf bytes.Buffer
	err := session.EncodeTo(m.InstrumentWriter(&buf), s, cfg.EngineOptions(logger)...)
	m.ObserveTraversal(persistence.Store, err)
	if err != nil {
		return nil, fmt.Errorf("failed to encode state: %w", err)
	}
	return buf.Bytes(), nil
}

// decodeState restores one snapshot from r, which must hold nothing else.
func decodeState(r io.Reader) (*session.State, error) {
	m := container.GetMetrics()

	r = m.InstrumentReader(r)
	s, err := session.DecodeFrom(r, cfg.EngineOptions(logger)...)
	if err == nil {
		var extra [1]byte
		if n, _ := io.ReadFull(r, extra[:]); n != 0 {
			err = fmt.Errorf("%w: trailing bytes after snapshot", persistence.ErrDecode)
		}
	}
	m.ObserveTraversal(persistence.Restore, err)
	if err != nil {
		return nil, fmt.Errorf("failed to decode snapshot: %w", err)
	}
	return s, nil
}

func validateSnapshot(data []byte) (int, error) {
	n, err := session.Validate(data, cfg.EngineOptions(logger)...)
	container.GetMetrics().ObserveTraversal(persistence.Ignore, err)
	if err != nil {
		return n, fmt.Errorf("invalid snapshot: %w", err)
	}
	return n, nil
}

func readSnapshotFile(path string) ([]byte, error) {
	reader, err := stream.NewFileReader(cfg.ReaderConfig(path))
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer reader.Close()

	data, err := io.ReadAll(container.GetMetrics().InstrumentReader(reader))
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return data, nil
}

func writeSnapshotFile(path string, data []byte) error {
	writer, err := stream.NewFileWriter(cfg.WriterConfig(path))
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if _, err := container.GetMetrics().InstrumentWriter(writer).Write(data); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return writer.Close()
}
