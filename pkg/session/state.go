package session

import (
	"cmp"

	"github.com/cockroachdb/errors"

	"github.com/ssargent/freyjastate/pkg/bptree"
	"github.com/ssargent/freyjastate/pkg/persistence"
)

const (
	// CurrentVersion is the snapshot version written by default.
	CurrentVersion uint8 = 2
	// MinVersion is the oldest snapshot version that can be read.
	MinVersion uint8 = 1

	versionBackoff uint8 = 2
)

var magic = []byte("FSS")

// Server is one management server the client is registered with.
type Server struct {
	SSID     uint16 `yaml:"ssid" json:"ssid"`
	URI      string `yaml:"uri" json:"uri"`
	Binding  string `yaml:"binding" json:"binding"`
	Priority uint8  `yaml:"priority" json:"priority"`
	Disabled bool   `yaml:"disabled" json:"disabled"`
}

// Observation is an active observe relation. Observations are unique by
// (SSID, Path).
type Observation struct {
	SSID      uint16 `yaml:"ssid" json:"ssid"`
	Path      string `yaml:"path" json:"path"`
	MinPeriod int32  `yaml:"min_period" json:"min_period"`
	MaxPeriod int32  `yaml:"max_period" json:"max_period"`
	LastValue []byte `yaml:"last_value,omitempty" json:"last_value,omitempty"`
}

// CompareObservations orders observations by SSID, then by path.
func CompareObservations(a, b Observation) int {
	if c := cmp.Compare(a.SSID, b.SSID); c != 0 {
		return c
	}
	return cmp.Compare(a.Path, b.Path)
}

// NewObservationSet returns an empty observation set.
func NewObservationSet() *bptree.Set[Observation] {
	return bptree.NewSet(CompareObservations)
}

// State is the persisted part of a client session.
type State struct {
	// Version is the snapshot version. Restore sets it from the stream;
	// store writes CurrentVersion when it is zero.
	Version uint8

	Endpoint    string
	Lifetime    int32
	LastUpdate  int64 // unix nanoseconds
	QueueMode   bool
	Backoff     float64
	Jitter      float32
	PSKIdentity []byte
	Token       [8]byte

	Servers      []Server
	Observations *bptree.Set[Observation]
}

// New returns an empty state at the current version.
func New() *State {
	return &State{
		Version:      CurrentVersion,
		Observations: NewObservationSet(),
	}
}

// Persist runs the snapshot traversal in whatever direction c was created
// for. Restoring requires an empty state such as the one New returns.
//
// An ignore context cannot learn the version from the stream, so it skips
// the body as s.Version describes it. Validate reads the header first and
// has no such restriction.
func (s *State) Persist(c *persistence.Context) error {
	if err := s.persistHeader(c); err != nil {
		return err
	}
	return s.persistBody(c)
}

func (s *State) persistHeader(c *persistence.Context) error {
	if err := c.Magic(magic); err != nil {
		return err
	}

	if c.Direction() == persistence.Store && s.Version == 0 {
		s.Version = CurrentVersion
	}
	if err := c.U8(&s.Version); err != nil {
		return err
	}
	if c.Direction() == persistence.Ignore {
		return nil
	}
	if s.Version < MinVersion || s.Version > CurrentVersion {
		return errors.Wrapf(persistence.ErrDecode, "unsupported snapshot version %d", s.Version)
	}
	return nil
}

func (s *State) persistBody(c *persistence.Context) error {
	version := s.Version
	if version == 0 {
		version = CurrentVersion
	}

	if err := c.String(&s.Endpoint); err != nil {
		return err
	}
	if err := c.I32(&s.Lifetime); err != nil {
		return err
	}
	if err := c.Skip(persistReserved); err != nil {
		return err
	}
	if err := c.I64(&s.LastUpdate); err != nil {
		return err
	}
	if err := c.Bool(&s.QueueMode); err != nil {
		return err
	}
	if version >= versionBackoff {
		if err := c.Float64(&s.Backoff); err != nil {
			return err
		}
		if err := c.Float32(&s.Jitter); err != nil {
			return err
		}
	}
	if err := c.SizedBuffer(&s.PSKIdentity); err != nil {
		return err
	}
	if err := c.Bytes(s.Token[:]); err != nil {
		return err
	}
	if err := persistence.List(c, &s.Servers, persistServer, nil); err != nil {
		return err
	}

	if s.Observations == nil {
		s.Observations = NewObservationSet()
	}
	return persistence.SortedSet(c, s.Observations, persistObservation, releaseObservation)
}

// persistReserved handles the retired reserved field, always zero.
func persistReserved(c *persistence.Context) error {
	var reserved uint64
	return c.U64(&reserved)
}

func persistServer(c *persistence.Context, srv *Server) error {
	if srv == nil {
		// ignore mode: the fields are consumed, never written to
		srv = &Server{}
	}
	if err := c.U16(&srv.SSID); err != nil {
		return err
	}
	if err := c.String(&srv.URI); err != nil {
		return err
	}
	if err := c.String(&srv.Binding); err != nil {
		return err
	}
	if err := c.U8(&srv.Priority); err != nil {
		return err
	}
	return c.Bool(&srv.Disabled)
}

func persistObservation(c *persistence.Context, obs *Observation) error {
	if obs == nil {
		obs = &Observation{}
	}
	if err := c.U16(&obs.SSID); err != nil {
		return err
	}
	if err := c.String(&obs.Path); err != nil {
		return err
	}
	if err := c.I32(&obs.MinPeriod); err != nil {
		return err
	}
	if err := c.I32(&obs.MaxPeriod); err != nil {
		return err
	}
	return c.SizedBuffer(&obs.LastValue)
}

func releaseObservation(obs *Observation) {
	obs.LastValue = nil
}
