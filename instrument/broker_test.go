package instrument_test

import (
	"testing"
	"time"

	"github.com/pianola/pianola/instrument"
)

func TestTrySend(t *testing.T) {
	c := make(chan int, 1)
	if !instrument.TrySend(c, 1) {
		t.Fatalf("TrySend to an empty channel failed")
	}
	if instrument.TrySend(c, 2) {
		t.Fatalf("TrySend to a full channel succeeded")
	}
	if v := <-c; v != 1 {
		t.Fatalf("received %d, want 1", v)
	}
}

func TestTimeoutSend(t *testing.T) {
	c := make(chan int, 1)
	c <- 0
	if instrument.TimeoutSend(c, 1, 10*time.Millisecond) {
		t.Fatalf("TimeoutSend to a full channel succeeded")
	}
	go func() {
		time.Sleep(10 * time.Millisecond)
		<-c
	}()
	if !instrument.TimeoutSend(c, 2, 5*time.Second) {
		t.Fatalf("TimeoutSend failed although the channel was drained")
	}
}

func TestTimeoutReceive(t *testing.T) {
	c := make(chan int, 1)
	if _, ok := instrument.TimeoutReceive(c, 10*time.Millisecond); ok {
		t.Fatalf("received from an empty channel")
	}
	c <- 3
	if v, ok := instrument.TimeoutReceive(c, time.Second); !ok || v != 3 {
		t.Fatalf("TimeoutReceive = %d, %v, want 3, true", v, ok)
	}
	close(c)
	if _, ok := instrument.TimeoutReceive(c, time.Second); ok {
		t.Fatalf("received from a closed channel")
	}
}
