package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

const sampleYAML = `
endpoint: urn:dev:os:0023C7-000001
lifetime: 86400
last_update: 2025-03-01T12:00:00Z
queue_mode: true
backoff: 2.5
psk_identity: device-1
token: "0102030405060708"
servers:
  - ssid: 1
    uri: coaps://mgmt.example.com:5684
    binding: U
observations:
  - ssid: 1
    path: /3/0/9
    max_period: 60
  - ssid: 1
    path: /3/0/0
`

func TestDocument_State(t *testing.T) {
	var doc Document
	require.NoError(t, yaml.Unmarshal([]byte(sampleYAML), &doc))

	s, err := doc.State()
	require.NoError(t, err)

	assert.Equal(t, CurrentVersion, s.Version)
	assert.Equal(t, "urn:dev:os:0023C7-000001", s.Endpoint)
	assert.Equal(t, int32(86400), s.Lifetime)
	assert.Equal(t, time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC).UnixNano(), s.LastUpdate)
	assert.True(t, s.QueueMode)
	assert.Equal(t, 2.5, s.Backoff)
	assert.Equal(t, []byte("device-1"), s.PSKIdentity)
	assert.Equal(t, [8]byte{1, 2, 3, 4, 5, 6, 7, 8}, s.Token)
	require.Len(t, s.Servers, 1)
	assert.Equal(t, "U", s.Servers[0].Binding)

	// Observations come back sorted by path.
	items := s.Observations.Items()
	require.Len(t, items, 2)
	assert.Equal(t, "/3/0/0", items[0].Path)
	assert.Equal(t, "/3/0/9", items[1].Path)
}

func TestDocument_RoundTrip(t *testing.T) {
	var doc Document
	require.NoError(t, yaml.Unmarshal([]byte(sampleYAML), &doc))
	s, err := doc.State()
	require.NoError(t, err)

	data, err := Encode(s)
	require.NoError(t, err)
	restored, err := Decode(data)
	require.NoError(t, err)

	back := FromState(restored)
	assert.Equal(t, "0102030405060708", back.Token)
	assert.Equal(t, "device-1", back.PSKIdentity)
	assert.True(t, doc.LastUpdate.Equal(back.LastUpdate))
	assert.Equal(t, s.Observations.Items(), back.Observations)

	out, err := yaml.Marshal(back)
	require.NoError(t, err)
	assert.Contains(t, string(out), "endpoint: urn:dev:os:0023C7-000001")
}

func TestDocument_Errors(t *testing.T) {
	tests := []struct {
		name string
		doc  Document
		msg  string
	}{
		{"future version", Document{Version: 9}, "unsupported snapshot version"},
		{"bad token hex", Document{Token: "zz"}, "invalid token"},
		{"short token", Document{Token: "0102"}, "token must be 8 bytes"},
		{
			name: "duplicate observation",
			doc: Document{Observations: []Observation{
				{SSID: 1, Path: "/1/0/1"},
				{SSID: 1, Path: "/1/0/1", MaxPeriod: 5},
			}},
			msg: "duplicate observation",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := tt.doc.State()
			assert.Nil(t, s)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.msg)
		})
	}
}

func TestFromState_Empty(t *testing.T) {
	doc := FromState(New())
	assert.True(t, doc.LastUpdate.IsZero())
	assert.Empty(t, doc.Token)
	assert.Empty(t, doc.Observations)
}
