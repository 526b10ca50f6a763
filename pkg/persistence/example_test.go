package persistence_test

import (
	"bytes"
	"fmt"
	"log"

	"github.com/ssargent/freyjastate/pkg/persistence"
)

type server struct {
	SSID uint16
	URI  string
}

func persistServer(c *persistence.Context, s *server) error {
	if s == nil {
		s = &server{}
	}
	if err := c.U16(&s.SSID); err != nil {
		return err
	}
	return c.String(&s.URI)
}

// Example_roundTrip stores a list of servers and restores it again.
func Example_roundTrip() {
	servers := []server{
		{SSID: 1, URI: "coap://a"},
		{SSID: 2, URI: "coaps://b"},
	}

	var buf bytes.Buffer
	store, err := persistence.NewStore(&buf)
	if err != nil {
		log.Fatal(err)
	}
	if err := persistence.List(store, &servers, persistServer, nil); err != nil {
		log.Fatal(err)
	}
	store.Close()

	fmt.Printf("Encoded %d bytes\n", buf.Len())

	restore, err := persistence.NewRestore(&buf)
	if err != nil {
		log.Fatal(err)
	}
	defer restore.Close()

	var restored []server
	if err := persistence.List(restore, &restored, persistServer, nil); err != nil {
		log.Fatal(err)
	}
	for _, s := range restored {
		fmt.Printf("%d %s\n", s.SSID, s.URI)
	}

	// Output:
	// Encoded 35 bytes
	// 1 coap://a
	// 2 coaps://b
}

// ExampleContext_U32 shows the canonical big-endian layout.
func ExampleContext_U32() {
	var buf bytes.Buffer
	c, _ := persistence.NewStore(&buf)
	defer c.Close()

	v := uint32(0xDEADBEEF)
	if err := c.U32(&v); err != nil {
		log.Fatal(err)
	}
	fmt.Printf("% X\n", buf.Bytes())

	// Output:
	// DE AD BE EF
}
