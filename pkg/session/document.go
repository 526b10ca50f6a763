package session

import (
	"encoding/hex"
	"time"

	"github.com/cockroachdb/errors"
)

// Document is the editable YAML form of a State.
type Document struct {
	Version      uint8         `yaml:"version,omitempty" json:"version,omitempty"`
	Endpoint     string        `yaml:"endpoint" json:"endpoint"`
	Lifetime     int32         `yaml:"lifetime" json:"lifetime"`
	LastUpdate   time.Time     `yaml:"last_update,omitempty" json:"last_update,omitempty"`
	QueueMode    bool          `yaml:"queue_mode" json:"queue_mode"`
	Backoff      float64       `yaml:"backoff,omitempty" json:"backoff,omitempty"`
	Jitter       float32       `yaml:"jitter,omitempty" json:"jitter,omitempty"`
	PSKIdentity  string        `yaml:"psk_identity,omitempty" json:"psk_identity,omitempty"`
	Token        string        `yaml:"token,omitempty" json:"token,omitempty"` // 16 hex digits
	Servers      []Server      `yaml:"servers,omitempty" json:"servers,omitempty"`
	Observations []Observation `yaml:"observations,omitempty" json:"observations,omitempty"`
}

// FromState converts s into its document form.
func FromState(s *State) *Document {
	doc := &Document{
		Version:     s.Version,
		Endpoint:    s.Endpoint,
		Lifetime:    s.Lifetime,
		QueueMode:   s.QueueMode,
		Backoff:     s.Backoff,
		Jitter:      s.Jitter,
		PSKIdentity: string(s.PSKIdentity),
		Servers:     s.Servers,
	}
	if s.LastUpdate != 0 {
		doc.LastUpdate = time.Unix(0, s.LastUpdate).UTC()
	}
	if s.Token != ([8]byte{}) {
		doc.Token = hex.EncodeToString(s.Token[:])
	}
	if s.Observations != nil {
		doc.Observations = s.Observations.Items()
	}
	return doc
}

// State converts the document into a State, checking what the YAML form
// cannot express on its own.
func (d *Document) State() (*State, error) {
	s := New()
	if d.Version != 0 {
		if d.Version < MinVersion || d.Version > CurrentVersion {
			return nil, errors.Newf("unsupported snapshot version %d", d.Version)
		}
		s.Version = d.Version
	}

	s.Endpoint = d.Endpoint
	s.Lifetime = d.Lifetime
	if !d.LastUpdate.IsZero() {
		s.LastUpdate = d.LastUpdate.UnixNano()
	}
	s.QueueMode = d.QueueMode
	s.Backoff = d.Backoff
	s.Jitter = d.Jitter
	if d.PSKIdentity != "" {
		s.PSKIdentity = []byte(d.PSKIdentity)
	}

	if d.Token != "" {
		token, err := hex.DecodeString(d.Token)
		if err != nil {
			return nil, errors.Wrap(err, "invalid token")
		}
		if len(token) != len(s.Token) {
			return nil, errors.Newf("token must be %d bytes, got %d", len(s.Token), len(token))
		}
		copy(s.Token[:], token)
	}

	s.Servers = d.Servers
	for _, obs := range d.Observations {
		if !s.Observations.Insert(obs) {
			return nil, errors.Newf("duplicate observation %d %s", obs.SSID, obs.Path)
		}
	}
	return s, nil
}
