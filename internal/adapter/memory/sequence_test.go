package memory

import (
	"context"
	"sync"
	"testing"

	"github.com/roamhub/booking-ref-system/internal/domain/models"
)

func TestSequenceStore_StartsAtOne(t *testing.T) {
	store := NewSequenceStore()
	key := models.SequenceKey{DatePart: "20260831", ServiceType: "HTL"}

	n, err := store.Next(context.Background(), key)
	if err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Fatalf("first number must be 1, got %d", n)
	}
}

func TestSequenceStore_IndependentKeys(t *testing.T) {
	store := NewSequenceStore()
	ctx := context.Background()

	htl := models.SequenceKey{DatePart: "20260831", ServiceType: "HTL"}
	flt := models.SequenceKey{DatePart: "20260831", ServiceType: "FLT"}
	nextDay := models.SequenceKey{DatePart: "20260901", ServiceType: "HTL"}

	for i := 0; i < 5; i++ {
		if _, err := store.Next(ctx, htl); err != nil {
			t.Fatal(err)
		}
	}

	if n, _ := store.Next(ctx, flt); n != 1 {
		t.Fatalf("different service type must count from 1, got %d", n)
	}
	if n, _ := store.Next(ctx, nextDay); n != 1 {
		t.Fatalf("different day must count from 1, got %d", n)
	}
	if got := store.Last(htl); got != 5 {
		t.Fatalf("htl partition disturbed: %d", got)
	}
}

func TestSequenceStore_CancelledContext(t *testing.T) {
	store := NewSequenceStore()
	key := models.SequenceKey{DatePart: "20260831", ServiceType: "HTL"}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := store.Next(ctx, key); err == nil {
		t.Fatal("expected context error")
	}
	if got := store.Last(key); got != 0 {
		t.Fatalf("cancelled call must not consume a number, got %d", got)
	}
}

func TestSequenceStore_ConcurrentUnique(t *testing.T) {
	tiers := []int{100, 500, 5000}

	for _, n := range tiers {
		store := NewSequenceStore()
		key := models.SequenceKey{DatePart: "20260831", ServiceType: "HTL"}

		got := make([]int64, n)
		start := make(chan struct{})
		var wg sync.WaitGroup

		for i := 0; i < n; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				<-start
				v, err := store.Next(context.Background(), key)
				if err != nil {
					t.Errorf("next: %v", err)
					return
				}
				got[i] = v
			}(i)
		}
		close(start)
		wg.Wait()

		seen := make(map[int64]bool, n)
		for _, v := range got {
			if v < 1 || v > int64(n) {
				t.Fatalf("n=%d: value %d outside [1,%d]", n, v, n)
			}
			if seen[v] {
				t.Fatalf("n=%d: duplicate value %d", n, v)
			}
			seen[v] = true
		}
		if store.Last(key) != int64(n) {
			t.Fatalf("n=%d: last is %d", n, store.Last(key))
		}
	}
}

func BenchmarkSequenceStore_Next(b *testing.B) {
	store := NewSequenceStore()
	key := models.SequenceKey{DatePart: "20260831", ServiceType: "HTL"}
	ctx := context.Background()

	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			if _, err := store.Next(ctx, key); err != nil {
				b.Fatal(err)
			}
		}
	})
}
