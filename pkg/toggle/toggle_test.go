package toggle

import (
	"context"
	"errors"
	"sync"
	"testing"

	"mytube.com/pkg/errno"
)

type memStore struct {
	mu      sync.Mutex
	rows    map[Key]int
	calls   int
	failErr error
}

func newMemStore() *memStore { return &memStore{rows: map[Key]int{}} }

func (s *memStore) Exists(_ context.Context, key Key) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.failErr != nil {
		return false, s.failErr
	}
	return s.rows[key] > 0, nil
}

func (s *memStore) Insert(_ context.Context, key Key) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.rows[key] > 0 {
		return false, nil
	}
	s.rows[key]++
	return true, nil
}

func (s *memStore) Delete(_ context.Context, key Key) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.rows[key] == 0 {
		return false, nil
	}
	delete(s.rows, key)
	return true, nil
}

func TestToggleCycle(t *testing.T) {
	for _, kind := range []Kind{KindVideo, KindComment, KindTweet, KindChannel} {
		t.Run(string(kind), func(t *testing.T) {
			store := newMemStore()
			key := Key{ActorID: "u1", Kind: kind, TargetID: "t1"}
			for i, want := range []bool{true, false, true} {
				res, err := Toggle(context.Background(), store, key)
				if err != nil {
					t.Fatalf("toggle %d: %v", i, err)
				}
				if res.Active != want {
					t.Fatalf("toggle %d: active=%v want %v", i, res.Active, want)
				}
				if n := store.rows[key]; n > 1 {
					t.Fatalf("toggle %d: %d rows for one pair", i, n)
				}
			}
		})
	}
}

func TestSelfSubscriptionRejectedBeforeLookup(t *testing.T) {
	store := newMemStore()
	store.rows[Key{ActorID: "u1", Kind: KindChannel, TargetID: "u1"}] = 1
	_, err := Toggle(context.Background(), store, Key{ActorID: "u1", Kind: KindChannel, TargetID: "u1"})
	if !errors.Is(err, errno.ValidationErr) {
		t.Fatalf("err = %v, want ValidationErr", err)
	}
	if store.calls != 0 {
		t.Errorf("store touched %d times", store.calls)
	}
}

func TestCheckKey(t *testing.T) {
	tests := []struct {
		name string
		key  Key
		want error
	}{
		{"like", Key{ActorID: "a", Kind: KindTweet, TargetID: "a"}, nil},
		{"subscribe", Key{ActorID: "a", Kind: KindChannel, TargetID: "b"}, nil},
		{"self subscribe", Key{ActorID: "a", Kind: KindChannel, TargetID: "a"}, errno.ValidationErr},
		{"anonymous", Key{Kind: KindVideo, TargetID: "v"}, errno.AuthenticationErr},
		{"unknown kind", Key{ActorID: "a", Kind: "playlist", TargetID: "p"}, errno.ValidationErr},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckKey(tt.key)
			if tt.want == nil && err != nil || tt.want != nil && !errors.Is(err, tt.want) {
				t.Errorf("CheckKey() = %v, want %v", err, tt.want)
			}
		})
	}
}

// lostRace reports the key absent, then finds it taken on insert, as when a
// concurrent toggle committed in between.
type lostRace struct{ memStore }

func (s *lostRace) Exists(context.Context, Key) (bool, error) { return false, nil }

func TestToggleLostInsertRaceIsActive(t *testing.T) {
	store := &lostRace{memStore: memStore{rows: map[Key]int{}}}
	key := Key{ActorID: "u1", Kind: KindVideo, TargetID: "v1"}
	store.rows[key] = 1
	res, err := Toggle(context.Background(), store, key)
	if err != nil || !res.Active {
		t.Fatalf("Toggle() = %+v, %v; want active", res, err)
	}
	if store.rows[key] != 1 {
		t.Errorf("rows = %d, want 1", store.rows[key])
	}
}

func TestToggleConcurrentNeverDuplicates(t *testing.T) {
	store := newMemStore()
	key := Key{ActorID: "u1", Kind: KindVideo, TargetID: "v1"}
	var wg sync.WaitGroup
	for i := 0; i < 64; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := Toggle(context.Background(), store, key); err != nil {
				t.Error(err)
			}
		}()
	}
	wg.Wait()
	if n := store.rows[key]; n > 1 {
		t.Fatalf("%d rows for one pair", n)
	}
}

func TestToggleStoreError(t *testing.T) {
	store := newMemStore()
	store.failErr = errors.New("i/o timeout")
	_, err := Toggle(context.Background(), store, Key{ActorID: "u1", Kind: KindVideo, TargetID: "v1"})
	if !errors.Is(err, store.failErr) {
		t.Errorf("err = %v", err)
	}
}
