// Package di provides dependency injection container
package di

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/segmentio/ksuid"

	"github.com/ssargent/freyjastate/pkg/metrics"
	"github.com/ssargent/freyjastate/pkg/storage"
)

// SnapshotStore is the snapshot persistence used by the CLI
type SnapshotStore interface {
	Create(data []byte) (ksuid.KSUID, error)
	Read(id ksuid.KSUID) ([]byte, error)
	Update(id ksuid.KSUID, data []byte) error
	Delete(id ksuid.KSUID) error
	List() ([]ksuid.KSUID, error)
	Close() error
}

// StoreOpener opens the snapshot store kept in dataDir
type StoreOpener func(dataDir string) (SnapshotStore, error)

// Container holds all the dependencies for the application
type Container struct {
	storeOpener StoreOpener
	registry    *prometheus.Registry
	metrics     *metrics.Metrics
}

// NewContainer creates a new dependency injection container
func NewContainer() *Container {
	registry := prometheus.NewRegistry()
	return &Container{
		storeOpener: openPebbleStore,
		registry:    registry,
		metrics:     metrics.NewMetrics(registry),
	}
}

func openPebbleStore(dataDir string) (SnapshotStore, error) {
	store, err := storage.Open(dataDir)
	if err != nil {
		return nil, err
	}
	return store, nil
}

// GetStoreOpener returns the snapshot store opener
func (c *Container) GetStoreOpener() StoreOpener {
	return c.storeOpener
}

// SetStoreOpener allows overriding the snapshot store opener (for testing)
func (c *Container) SetStoreOpener(opener StoreOpener) {
	c.storeOpener = opener
}

// GetMetrics returns the engine metrics
func (c *Container) GetMetrics() *metrics.Metrics {
	return c.metrics
}

// GetRegistry returns the registry the engine metrics are registered with
func (c *Container) GetRegistry() *prometheus.Registry {
	return c.registry
}
