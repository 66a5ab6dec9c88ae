//go:build linux

package example

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/posixsock/posixsock"
)

// Example 1: Exchanging datagrams over an unnamed connected pair
func ExampleDatagramPair() {
	fmt.Println("=== Example 1: Unnamed Datagram Pair ===")

	a, b, err := posixsock.NewPair(posixsock.DomainUnix, posixsock.TypeDatagram, 0, false)
	if err != nil {
		log.Fatal("Pair creation error:", err)
	}
	defer a.Close()
	defer b.Close()

	if _, err := a.Write([]byte("ping")); err != nil {
		log.Fatal("Write error:", err)
	}

	buf := make([]byte, 64)
	n, err := b.Read(buf)
	if err != nil {
		log.Fatal("Read error:", err)
	}

	fmt.Printf("Pair peer received: %s\n", string(buf[:n]))
}

// Example 2: A Unix-domain stream echo server over a filesystem path
func ExampleUnixStreamEcho() {
	fmt.Println("\n=== Example 2: Unix-Domain Stream Echo ===")

	dir, err := os.MkdirTemp("", "posixsock-example")
	if err != nil {
		log.Fatal("Temp dir error:", err)
	}
	defer os.RemoveAll(dir)
	path := filepath.Join(dir, "echo.sock")

	server := posixsock.New(posixsock.DomainUnix, posixsock.TypeStream, 0, false)
	defer server.Close()

	if err := server.Bind(path); err != nil {
		log.Fatal("Bind error:", err)
	}
	if err := server.Listen(1); err != nil {
		log.Fatal("Listen error:", err)
	}
	fmt.Printf("Echo server bound to %s\n", server.BoundURL())

	go func() {
		conn, err := server.Accept()
		if err != nil {
			log.Println("Accept error:", err)
			return
		}
		defer conn.Close()

		buf := make([]byte, 256)
		n, err := conn.Read(buf)
		if err != nil {
			log.Println("Server read error:", err)
			return
		}
		conn.Write(buf[:n])
	}()

	client := posixsock.New(posixsock.DomainUnix, posixsock.TypeStream, 0, false)
	defer client.Close()

	if err := client.Connect(path); err != nil {
		log.Fatal("Connect error:", err)
	}

	client.Write([]byte("Hello over the stream"))
	buf := make([]byte, 256)
	n, err := client.Read(buf)
	if err != nil {
		log.Fatal("Client read error:", err)
	}

	fmt.Printf("Echo client received: %s\n", string(buf[:n]))
}

// Example 3: Driving a non-blocking socket with the readiness poll
func ExampleNonBlockingPoll() {
	fmt.Println("\n=== Example 3: Non-Blocking Poll Loop ===")

	a, b, err := posixsock.NewPair(posixsock.DomainUnix, posixsock.TypeStream, 0, true)
	if err != nil {
		log.Fatal("Pair creation error:", err)
	}
	defer a.Close()
	defer b.Close()

	// Nothing queued yet: a non-blocking read comes back empty, not
	// failed, and a short poll times out with every flag false.
	buf := make([]byte, 64)
	n, _ := b.Read(buf)
	fmt.Printf("Read before any data: %d bytes\n", n)

	ready, err := b.Poll(10*time.Millisecond, false)
	if err != nil {
		log.Fatal("Poll error:", err)
	}
	fmt.Printf("Poll before any data: readable=%v\n", ready.DataToRead)

	a.Write([]byte("wake up"))

	ready, err = b.Poll(time.Second, false)
	if err != nil {
		log.Fatal("Poll error:", err)
	}
	if ready.DataToRead {
		n, err := b.Read(buf)
		if err != nil {
			log.Fatal("Read error:", err)
		}
		fmt.Printf("Poll loop received: %s\n", string(buf[:n]))
	}
}
