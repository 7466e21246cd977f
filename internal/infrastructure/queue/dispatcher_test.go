package queue

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/rs/zerolog"

	"github.com/virtualvault/storefront/internal/core/domain"
)

type recordingPublisher struct {
	mu        sync.Mutex
	bySubject map[string][]string
	fail      bool
}

func (p *recordingPublisher) Publish(_ context.Context, e domain.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.fail {
		return errors.New("broker down")
	}
	p.bySubject[e.SubjectID] = append(p.bySubject[e.SubjectID], e.ID)
	return nil
}

func TestDispatcher_PreservesPerSubjectOrder(t *testing.T) {
	pub := &recordingPublisher{bySubject: make(map[string][]string)}
	d := NewDispatcher(4, pub, zerolog.Nop())
	d.Start(context.Background())

	subjects := []string{"order-a", "order-b", "order-c", "user-1", "user-2"}
	const perSubject = 40
	for i := 0; i < perSubject; i++ {
		for _, s := range subjects {
			d.Enqueue(domain.Event{ID: fmt.Sprintf("%s-%03d", s, i), SubjectID: s, Type: domain.EventOrderStatusChanged})
		}
	}
	d.Close()
	d.Wait()

	for _, s := range subjects {
		got := pub.bySubject[s]
		if len(got) != perSubject {
			t.Fatalf("%s: expected %d events, got %d", s, perSubject, len(got))
		}
		for i, id := range got {
			if want := fmt.Sprintf("%s-%03d", s, i); id != want {
				t.Fatalf("%s: event %d out of order: got %s want %s", s, i, id, want)
			}
		}
	}
}

func TestDispatcher_ShardIndexIsStable(t *testing.T) {
	d := NewDispatcher(8, &recordingPublisher{}, zerolog.Nop())
	first := d.shardIndex("order-42")
	for i := 0; i < 10; i++ {
		if got := d.shardIndex("order-42"); got != first {
			t.Fatalf("shard changed from %d to %d", first, got)
		}
	}
	if first < 0 || first >= 8 {
		t.Fatalf("shard %d out of range", first)
	}
}

func TestDispatcher_DefaultWorkers(t *testing.T) {
	d := NewDispatcher(0, &recordingPublisher{}, zerolog.Nop())
	if len(d.workers) != defaultWorkers {
		t.Fatalf("expected %d workers, got %d", defaultWorkers, len(d.workers))
	}
}

func TestDispatcher_EnqueueAfterCloseIsDropped(t *testing.T) {
	pub := &recordingPublisher{bySubject: make(map[string][]string)}
	d := NewDispatcher(1, pub, zerolog.Nop())
	d.Start(context.Background())
	d.Close()
	d.Close()
	d.Enqueue(domain.Event{ID: "late", SubjectID: "order-a"})
	d.Wait()

	if len(pub.bySubject) != 0 {
		t.Fatalf("expected nothing published, got %v", pub.bySubject)
	}
}

func TestDispatcher_PublishErrorsDoNotStopWorkers(t *testing.T) {
	pub := &recordingPublisher{bySubject: make(map[string][]string), fail: true}
	d := NewDispatcher(1, pub, zerolog.Nop())
	d.Start(context.Background())

	d.Enqueue(domain.Event{ID: "1", SubjectID: "order-a"})
	d.Enqueue(domain.Event{ID: "2", SubjectID: "order-a"})
	d.Close()
	d.Wait()
}
