package ws

import (
	"encoding/json"
	"testing"
	"time"
)

func recvEvent(t *testing.T, c *Client) Event {
	t.Helper()
	select {
	case msg := <-c.Send:
		var ev Event
		if err := json.Unmarshal(msg, &ev); err != nil {
			t.Fatalf("bad frame %q: %v", msg, err)
		}
		return ev
	case <-time.After(time.Second):
		t.Fatal("no event received")
		return Event{}
	}
}

func assertQuiet(t *testing.T, c *Client) {
	t.Helper()
	select {
	case msg := <-c.Send:
		t.Fatalf("unexpected frame: %s", msg)
	default:
	}
}

func TestPublishReachesAllSessionsOfUser(t *testing.T) {
	hub := NewHub()

	tab1 := NewClient(1, nil, hub)
	tab2 := NewClient(1, nil, hub)
	other := NewClient(2, nil, hub)
	hub.Subscribe(tab1)
	hub.Subscribe(tab2)
	hub.Subscribe(other)

	hub.Publish(1, Event{Type: "task_shared", Message: "hi", Date: time.Now()})

	for _, c := range []*Client{tab1, tab2} {
		ev := recvEvent(t, c)
		if ev.Type != "task_shared" || ev.Message != "hi" {
			t.Errorf("event = %+v", ev)
		}
	}
	assertQuiet(t, other)
}

func TestUnsubscribeRemovesOnlyThatSession(t *testing.T) {
	hub := NewHub()

	tab1 := NewClient(1, nil, hub)
	tab2 := NewClient(1, nil, hub)
	hub.Subscribe(tab1)
	hub.Subscribe(tab2)

	hub.Unsubscribe(tab1)
	if got := hub.SessionCount(1); got != 1 {
		t.Fatalf("SessionCount = %d; want 1", got)
	}

	hub.Publish(1, Event{Type: "task_updated", Message: "still here"})
	assertQuiet(t, tab1)
	recvEvent(t, tab2)

	// double unsubscribe is harmless
	hub.Unsubscribe(tab1)
	if got := hub.SessionCount(1); got != 1 {
		t.Fatalf("SessionCount after repeat = %d; want 1", got)
	}

	hub.Unsubscribe(tab2)
	if got := hub.SessionCount(1); got != 0 {
		t.Fatalf("SessionCount after both = %d; want 0", got)
	}
}

func TestPublishWithNoSubscribersDropsSilently(t *testing.T) {
	hub := NewHub()

	done := make(chan struct{})
	go func() {
		hub.Publish(42, Event{Type: "task_shared", Message: "nobody home"})
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Publish blocked with no subscribers")
	}
}

func TestPublishSkipsFullBuffers(t *testing.T) {
	hub := NewHub()

	slow := NewClient(1, nil, hub)
	fast := NewClient(1, nil, hub)
	hub.Subscribe(slow)
	hub.Subscribe(fast)

	for i := 0; i < sendBuffer; i++ {
		slow.Send <- []byte("{}")
	}

	done := make(chan struct{})
	go func() {
		hub.Publish(1, Event{Type: "task_updated", Message: "drop for slow"})
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Publish blocked on a full send buffer")
	}

	ev := recvEvent(t, fast)
	if ev.Message != "drop for slow" {
		t.Fatalf("fast session got %+v", ev)
	}
}
