package websocket

import (
	"testing"
	"time"
)

func TestHubRegisterAndBroadcast(t *testing.T) {
	h := NewHub()
	go h.Run()
	defer h.Stop()

	client := &Client{hub: h, send: make(chan []byte, 4), id: "console-1"}
	h.add(client)

	// The run loop finishes registration asynchronously, so keep sending
	// until the frame comes through
	deadline := time.After(time.Second)
	for {
		h.Broadcast("stock.updated", map[string]int{"itemId": 7})
		select {
		case msg := <-client.send:
			if len(msg) == 0 {
				t.Error("Broadcast delivered an empty frame")
			}
			return
		case <-deadline:
			t.Fatal("Broadcast never reached the registered client")
		case <-time.After(10 * time.Millisecond):
		}
	}
}

func TestHubStopUnblocksClientTeardown(t *testing.T) {
	h := NewHub()
	go h.Run()

	client := &Client{hub: h, send: make(chan []byte, 1), id: "console-2"}
	h.add(client)
	h.Stop()

	// A client erroring out after shutdown must not hang on the run loop
	done := make(chan struct{})
	go func() {
		h.drop(client)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("drop blocked after the hub stopped")
	}
}
