package queue

import (
	"reflect"
	"sync"
	"testing"

	"github.com/evbase/escore/event"
)

func stringCollection(t *testing.T, out *[]string) *event.Collection {
	t.Helper()
	c := event.NewCollection(event.NewSignature(reflect.TypeOf("")))
	if _, err := c.AddSubscriber(func(s string) { *out = append(*out, s) }); err != nil {
		t.Fatalf("AddSubscriber failed: %v", err)
	}
	return c
}

func TestQueueFIFO(t *testing.T) {
	q := New()

	var got []string
	a := stringCollection(t, &got)
	b := stringCollection(t, &got)

	if err := q.Enqueue(a, "a1"); err != nil {
		t.Fatalf("Enqueue failed: %v", err)
	}
	if err := q.Enqueue(b, "b1"); err != nil {
		t.Fatalf("Enqueue failed: %v", err)
	}
	if err := q.Enqueue(a, "a2"); err != nil {
		t.Fatalf("Enqueue failed: %v", err)
	}

	if q.Size() != 3 {
		t.Fatalf("Size = %d, want 3", q.Size())
	}
	if !q.Process() {
		t.Fatal("Process returned false on a non-empty queue")
	}

	want := []string{"a1", "b1", "a2"}
	if len(got) != len(want) {
		t.Fatalf("fired %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("fired %v, want %v", got, want)
		}
	}
	if !q.IsEmpty() {
		t.Fatal("queue not empty after Process")
	}
}

func TestQueueEnqueueBindError(t *testing.T) {
	q := New()
	var got []string
	c := stringCollection(t, &got)

	if err := q.Enqueue(c, 42); err == nil {
		t.Fatal("Enqueue with a mismatched argument succeeded")
	}
	if !q.IsEmpty() {
		t.Fatal("failed Enqueue left an entry in the queue")
	}
}

func TestQueueProcessOne(t *testing.T) {
	q := New()
	var got []string
	c := stringCollection(t, &got)

	q.Enqueue(c, "first")
	q.Enqueue(c, "second")

	if !q.ProcessOne() {
		t.Fatal("ProcessOne returned false on a non-empty queue")
	}
	if len(got) != 1 || got[0] != "first" {
		t.Fatalf("fired %v, want [first]", got)
	}
	if q.Size() != 1 {
		t.Fatalf("Size = %d after ProcessOne, want 1", q.Size())
	}

	if !q.ProcessOne() {
		t.Fatal("second ProcessOne returned false")
	}
	if q.ProcessOne() {
		t.Fatal("ProcessOne returned true on an empty queue")
	}
}

func TestQueueProcessEmptyReturnsFalse(t *testing.T) {
	q := New()
	if q.Process() {
		t.Fatal("Process returned true on an empty queue")
	}
}

func TestQueueEnqueueDuringProcessDeferred(t *testing.T) {
	q := New()

	fired := 0
	c := event.NewCollection(event.NewSignature())
	if _, err := c.AddSubscriber(func() {
		fired++
		if fired == 1 {
			if err := q.Enqueue(c); err != nil {
				t.Errorf("re-enqueue failed: %v", err)
			}
		}
	}); err != nil {
		t.Fatalf("AddSubscriber failed: %v", err)
	}

	if err := q.Enqueue(c); err != nil {
		t.Fatalf("Enqueue failed: %v", err)
	}

	// the entry enqueued from inside the subscriber belongs to the next pass
	q.Process()
	if fired != 1 {
		t.Fatalf("first pass fired %d events, want 1", fired)
	}
	if q.IsEmpty() {
		t.Fatal("re-enqueued event missing after first pass")
	}

	q.Process()
	if fired != 2 {
		t.Fatalf("fired %d events after second pass, want 2", fired)
	}
}

func TestQueueProcessUntilEmptyLimit(t *testing.T) {
	q := New()

	fired := 0
	c := event.NewCollection(event.NewSignature())
	// a self-perpetuating event: every invocation queues the next one
	if _, err := c.AddSubscriber(func() {
		fired++
		q.Enqueue(c)
	}); err != nil {
		t.Fatalf("AddSubscriber failed: %v", err)
	}

	q.Enqueue(c)
	passes := q.ProcessUntilEmpty(5)
	if passes != 5 {
		t.Fatalf("passes = %d, want 5", passes)
	}
	if fired != 5 {
		t.Fatalf("fired = %d, want 5", fired)
	}
	if q.IsEmpty() {
		t.Fatal("self-perpetuating event should still be pending after the limit")
	}
}

func TestQueueProcessUntilEmptyUnbounded(t *testing.T) {
	q := New()
	var got []string
	c := stringCollection(t, &got)

	q.Enqueue(c, "x")
	q.Enqueue(c, "y")

	passes := q.ProcessUntilEmpty(0)
	if passes != 1 {
		t.Fatalf("passes = %d, want 1", passes)
	}
	if len(got) != 2 {
		t.Fatalf("fired %d events, want 2", len(got))
	}
}

func TestQueueProcessFor(t *testing.T) {
	q := New()

	var got []string
	a := stringCollection(t, &got)
	b := stringCollection(t, &got)

	q.Enqueue(a, "a1")
	q.Enqueue(b, "b1")
	q.Enqueue(a, "a2")
	q.Enqueue(b, "b2")

	if !q.ProcessFor(a) {
		t.Fatal("ProcessFor returned false with matching entries pending")
	}
	if len(got) != 2 || got[0] != "a1" || got[1] != "a2" {
		t.Fatalf("ProcessFor fired %v, want [a1 a2]", got)
	}
	if q.Size() != 2 {
		t.Fatalf("Size = %d after ProcessFor, want 2", q.Size())
	}

	// the retained entries keep their relative order
	got = got[:0]
	q.Process()
	if len(got) != 2 || got[0] != "b1" || got[1] != "b2" {
		t.Fatalf("remaining entries fired %v, want [b1 b2]", got)
	}

	if q.ProcessFor(a) {
		t.Fatal("ProcessFor returned true with no matching entries")
	}
}

func TestQueueProcessForTailConsistent(t *testing.T) {
	q := New()
	var got []string
	a := stringCollection(t, &got)
	b := stringCollection(t, &got)

	q.Enqueue(a, "a1")
	q.Enqueue(b, "b1")

	// draining the tail entry must leave the list appendable
	q.ProcessFor(b)
	q.Enqueue(a, "a2")

	got = got[:0]
	q.Process()
	if len(got) != 2 || got[0] != "a1" || got[1] != "a2" {
		t.Fatalf("fired %v, want [a1 a2]", got)
	}
}

func TestQueueEnqueueStrings(t *testing.T) {
	q := New()

	var gotX int
	var gotY float64
	c := event.NewCollection(event.NewSignature(reflect.TypeOf(0), reflect.TypeOf(0.0)))
	if _, err := c.AddSubscriber(func(x int, y float64) { gotX, gotY = x, y }); err != nil {
		t.Fatalf("AddSubscriber failed: %v", err)
	}

	if err := q.EnqueueStrings(c, []string{"10", "2.5"}); err != nil {
		t.Fatalf("EnqueueStrings failed: %v", err)
	}
	q.Process()
	if gotX != 10 || gotY != 2.5 {
		t.Fatalf("subscriber saw (%d, %g), want (10, 2.5)", gotX, gotY)
	}

	if err := q.EnqueueStrings(c, []string{"ten", "2.5"}); err == nil {
		t.Fatal("EnqueueStrings with a malformed argument succeeded")
	}
	if !q.IsEmpty() {
		t.Fatal("failed EnqueueStrings left an entry in the queue")
	}
}

func TestQueueClear(t *testing.T) {
	q := New()
	var got []string
	c := stringCollection(t, &got)

	q.Enqueue(c, "x")
	q.Enqueue(c, "y")
	q.Clear()

	if !q.IsEmpty() {
		t.Fatal("queue not empty after Clear")
	}
	q.Process()
	if len(got) != 0 {
		t.Fatalf("cleared entries fired: %v", got)
	}
}

func TestQueueCloseDiscards(t *testing.T) {
	q := New()
	var got []string
	c := stringCollection(t, &got)

	q.Enqueue(c, "x")
	q.Enqueue(c, "y")
	q.Close()

	if !q.IsEmpty() {
		t.Fatal("queue not empty after Close")
	}
	if len(got) != 0 {
		t.Fatalf("Close fired discarded entries: %v", got)
	}
}

func TestQueueConcurrentEnqueue(t *testing.T) {
	q := New()

	var mu sync.Mutex
	fired := 0
	c := event.NewCollection(event.NewSignature(reflect.TypeOf(0)))
	if _, err := c.AddSubscriber(func(int) {
		mu.Lock()
		fired++
		mu.Unlock()
	}); err != nil {
		t.Fatalf("AddSubscriber failed: %v", err)
	}

	const producers = 8
	const perProducer = 50

	var wg sync.WaitGroup
	for p := 0; p < producers; p++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perProducer; i++ {
				if err := q.Enqueue(c, i); err != nil {
					t.Errorf("Enqueue failed: %v", err)
				}
			}
		}()
	}
	wg.Wait()

	if q.Size() != producers*perProducer {
		t.Fatalf("Size = %d, want %d", q.Size(), producers*perProducer)
	}
	q.ProcessUntilEmpty(0)
	if fired != producers*perProducer {
		t.Fatalf("fired = %d, want %d", fired, producers*perProducer)
	}
}
