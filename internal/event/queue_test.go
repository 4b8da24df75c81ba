package event

import (
	"testing"
	"time"
)

func TestDispatchNeverBlocksProducer(t *testing.T) {
	q := NewQueue(2)

	done := make(chan struct{})
	go func() {
		for i := 0; i < 50; i++ {
			q.Dispatch(Tick{})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("Dispatch blocked on a full queue")
	}

	received := 0
	timeout := time.After(2 * time.Second)
	for received < 50 {
		select {
		case <-q.C():
			received++
		case <-timeout:
			t.Fatalf("received only %d of 50 events", received)
		}
	}
}

func TestQueueDeliversEventTypes(t *testing.T) {
	q := NewQueue(4)
	q.Dispatch(WidgetReady{})

	select {
	case ev := <-q.C():
		if _, ok := ev.(WidgetReady); !ok {
			t.Fatalf("received %T, want WidgetReady", ev)
		}
	case <-time.After(time.Second):
		t.Fatalf("event never delivered")
	}
}
