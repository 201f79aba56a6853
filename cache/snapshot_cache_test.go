package cache

import (
	"context"
	"testing"

	"github.com/go-redis/redis/v8"
)

// fakeSnapshotTx stands in for the Redis transaction, serving a canned
// stored version and recording whether the pipelined write ran.
type fakeSnapshotTx struct {
	storedVersion string
	noVersion     bool
	wrote         bool
}

func (f *fakeSnapshotTx) Get(ctx context.Context, key string) *redis.StringCmd {
	cmd := redis.NewStringCmd(ctx, "get", key)
	if f.noVersion {
		cmd.SetErr(redis.Nil)
	} else {
		cmd.SetVal(f.storedVersion)
	}
	return cmd
}

func (f *fakeSnapshotTx) TxPipelined(ctx context.Context, fn func(redis.Pipeliner) error) ([]redis.Cmder, error) {
	f.wrote = true
	return nil, nil
}

func TestWriteSnapshotTxDropsOlderVersion(t *testing.T) {
	tx := &fakeSnapshotTx{storedVersion: "5"}

	err := writeSnapshotTx(context.Background(), tx, 3, []byte("[]"))
	if err != ErrStaleSnapshot {
		t.Fatalf("want ErrStaleSnapshot, got %v", err)
	}
	if tx.wrote {
		t.Error("stale write reached the pipeline")
	}
}

func TestWriteSnapshotTxDropsEqualVersion(t *testing.T) {
	tx := &fakeSnapshotTx{storedVersion: "5"}

	err := writeSnapshotTx(context.Background(), tx, 5, []byte("[]"))
	if err != ErrStaleSnapshot {
		t.Fatalf("want ErrStaleSnapshot for replayed version, got %v", err)
	}
	if tx.wrote {
		t.Error("replayed write reached the pipeline")
	}
}

func TestWriteSnapshotTxAcceptsNewerVersion(t *testing.T) {
	tx := &fakeSnapshotTx{storedVersion: "5"}

	if err := writeSnapshotTx(context.Background(), tx, 6, []byte("[]")); err != nil {
		t.Fatalf("newer version write failed: %v", err)
	}
	if !tx.wrote {
		t.Error("newer version write never reached the pipeline")
	}
}

func TestWriteSnapshotTxAcceptsFirstWrite(t *testing.T) {
	tx := &fakeSnapshotTx{noVersion: true}

	if err := writeSnapshotTx(context.Background(), tx, 1, []byte("[]")); err != nil {
		t.Fatalf("first write failed: %v", err)
	}
	if !tx.wrote {
		t.Error("first write never reached the pipeline")
	}
}
