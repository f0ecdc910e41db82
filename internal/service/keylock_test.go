package service

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/moshiurrahmandeap11/backbencher-Server/internal/domain/model"
)

func TestKeyLocks_SerializesSameKey(t *testing.T) {
	locks := newKeyLocks()
	var inside, maxInside atomic.Int32
	var wg sync.WaitGroup

	for range 10 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock, err := locks.acquire(context.Background(), "users/u1")
			if err != nil {
				t.Errorf("acquire: %v", err)
				return
			}
			n := inside.Add(1)
			for {
				m := maxInside.Load()
				if n <= m || maxInside.CompareAndSwap(m, n) {
					break
				}
			}
			time.Sleep(time.Millisecond)
			inside.Add(-1)
			unlock()
		}()
	}
	wg.Wait()

	if m := maxInside.Load(); m != 1 {
		t.Errorf("одновременно внутри %d владельцев, ожидался 1", m)
	}
	if n := locks.size(); n != 0 {
		t.Errorf("после освобождения осталось %d ключей", n)
	}
}

func TestKeyLocks_IndependentKeys(t *testing.T) {
	locks := newKeyLocks()
	unlockA, err := locks.acquire(context.Background(), "a")
	if err != nil {
		t.Fatalf("acquire a: %v", err)
	}
	defer unlockA()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	unlockB, err := locks.acquire(ctx, "b")
	if err != nil {
		t.Fatalf("ключ b заблокирован ключом a: %v", err)
	}
	unlockB()
}

func TestKeyLocks_ContextCancel(t *testing.T) {
	locks := newKeyLocks()
	unlock, err := locks.acquire(context.Background(), "k")
	if err != nil {
		t.Fatalf("acquire: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if _, err := locks.acquire(ctx, "k"); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("ожидалась DeadlineExceeded, получено %v", err)
	}

	unlock()
	unlock() // повторный вызов безопасен
	if n := locks.size(); n != 0 {
		t.Errorf("после отмены осталось %d ключей", n)
	}
}

func TestStagingScope_RollbackWithoutCommit(t *testing.T) {
	f := newEngineFixture(t)
	slot := f.users.Slots[0]

	sc := newStagingScope(f.files, model.ResourceUsers, testLogger())
	ref, err := sc.stage(slot, "u1", png("a"))
	if err != nil {
		t.Fatalf("stage: %v", err)
	}
	sc.close()

	if f.files.Exists(ref) {
		t.Errorf("файл %s не удалён при откате", ref)
	}
}

func TestStagingScope_CommitReleasesSuperseded(t *testing.T) {
	f := newEngineFixture(t)
	slot := f.users.Slots[0]

	old, err := f.files.Stage(slot.Dir, "u1", slot.Discriminator, png("old"))
	if err != nil {
		t.Fatalf("Stage: %v", err)
	}

	sc := newStagingScope(f.files, model.ResourceUsers, testLogger())
	ref, err := sc.stage(slot, "u1", png("new"))
	if err != nil {
		t.Fatalf("stage: %v", err)
	}
	sc.supersede(old)
	sc.supersede("")
	sc.commit()
	sc.close()

	if f.files.Exists(old) {
		t.Errorf("заменённый файл %s не удалён", old)
	}
	if !f.files.Exists(ref) {
		t.Errorf("новый файл %s удалён после commit", ref)
	}
}
