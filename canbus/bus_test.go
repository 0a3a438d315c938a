package canbus

import (
	"context"
	"sync"
	"testing"
	"time"
)

func TestRequestResponse(t *testing.T) {
	ft := NewFakeTransport()
	bus := NewBus(ft)
	ft.Push(Frame{ID: 0x10C, Data: [8]byte{0xA0, 1, 2, 3, 4, 5, 6}})

	resp, ok, err := bus.RequestResponse(context.Background(), Frame{ID: 0x109, Data: [8]byte{0xA0}}, time.Second)
	if err != nil {
		t.Fatalf("RequestResponse: %v", err)
	}
	if !ok {
		t.Fatal("RequestResponse: expected a reply")
	}
	if resp.Data[0] != 0xA0 {
		t.Errorf("resp.Data[0] = %#x, want 0xA0", resp.Data[0])
	}
	sent := <-ft.Sent()
	if sent.ID != 0x109 {
		t.Errorf("sent.ID = %#x, want 0x109", sent.ID)
	}
}

func TestRequestResponseTimeout(t *testing.T) {
	ft := NewFakeTransport()
	bus := NewBus(ft)
	_, ok, err := bus.RequestResponse(context.Background(), Frame{ID: 0x109}, 10*time.Millisecond)
	if err != nil {
		t.Fatalf("RequestResponse: %v", err)
	}
	if ok {
		t.Fatal("RequestResponse: expected no reply on timeout")
	}
}

// TestNoOverlappingRequests asserts that a second RequestResponse cannot
// begin sending until the first cycle (including its reply wait) completes,
// by running a slow "device" that only answers after observing exactly one
// pending send.
func TestNoOverlappingRequests(t *testing.T) {
	ft := NewFakeTransport()
	bus := NewBus(ft)

	var wg sync.WaitGroup
	var maxInFlight int

	worker := func(id byte) {
		defer wg.Done()
		bus.RequestResponse(context.Background(), Frame{ID: 0x109, Data: [8]byte{id}}, 50*time.Millisecond)
	}

	wg.Add(2)
	go worker(1)
	go worker(2)

	// Act as the device: hold each reply back briefly and count the sends
	// that are pending before answering. The bus mutex keeps the second
	// send from appearing until the first cycle has its reply.
	for answered := 0; answered < 2; {
		<-ft.Sent()
		inFlight := 1
		select {
		case <-ft.Sent():
			inFlight++
		case <-time.After(10 * time.Millisecond):
		}
		if inFlight > maxInFlight {
			maxInFlight = inFlight
		}
		for i := 0; i < inFlight; i++ {
			ft.Push(Frame{ID: 0x10C})
			answered++
		}
	}
	wg.Wait()

	if maxInFlight > 1 {
		t.Errorf("observed %d concurrent in-flight requests, want at most 1 effectively serialized by the bus mutex", maxInFlight)
	}
}
