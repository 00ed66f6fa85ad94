package cache

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/cloud-ru/mba-roi-go/internal/calculations"
)

type countingStore struct {
	Store
	gets, sets int
}

func (s *countingStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	s.gets++
	return s.Store.Get(ctx, key)
}

func (s *countingStore) Set(ctx context.Context, key string, value []byte) error {
	s.sets++
	return s.Store.Set(ctx, key, value)
}

type failingStore struct{}

func (failingStore) Name() string { return "failing" }
func (failingStore) Get(context.Context, string) ([]byte, bool, error) {
	return nil, false, errors.New("connection refused")
}
func (failingStore) Set(context.Context, string, []byte) error {
	return errors.New("connection refused")
}

func testLogger() (*slog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return slog.New(slog.NewTextHandler(&buf, nil)), &buf
}

func TestROICache_MemoizesResult(t *testing.T) {
	logger, _ := testLogger()
	store := &countingStore{Store: NewMemoryStore(8, time.Minute)}
	c := NewROICache(store, logger)
	ctx := context.Background()

	want, err := calculations.ComputeROI(calculations.DashboardDefaults())
	if err != nil {
		t.Fatalf("ComputeROI() error = %v", err)
	}

	first, err := c.ComputeROI(ctx, calculations.DashboardDefaults())
	if err != nil {
		t.Fatalf("first call error = %v", err)
	}
	second, err := c.ComputeROI(ctx, calculations.DashboardDefaults())
	if err != nil {
		t.Fatalf("second call error = %v", err)
	}

	if *first != *want || *second != *want {
		t.Errorf("cached results differ from direct computation: %+v / %+v vs %+v", first, second, want)
	}
	if store.sets != 1 {
		t.Errorf("expected a single store write, got %d", store.sets)
	}
	if store.gets != 2 {
		t.Errorf("expected two lookups, got %d", store.gets)
	}
}

func TestROICache_DistinguishesInputs(t *testing.T) {
	logger, _ := testLogger()
	c := NewROICache(NewMemoryStore(8, time.Minute), logger)
	ctx := context.Background()

	in := calculations.DashboardDefaults()
	base, err := c.ComputeROI(ctx, in)
	if err != nil {
		t.Fatalf("ComputeROI() error = %v", err)
	}

	in.PostSalary++
	changed, err := c.ComputeROI(ctx, in)
	if err != nil {
		t.Fatalf("ComputeROI() error = %v", err)
	}
	if *base == *changed {
		t.Error("different inputs must not share a cache entry")
	}
}

func TestROICache_IgnoresForeignEntry(t *testing.T) {
	logger, _ := testLogger()
	store := NewMemoryStore(8, time.Minute)
	c := NewROICache(store, logger)
	ctx := context.Background()

	in := calculations.DashboardDefaults()
	other := in
	other.TotalFees = 1

	// запись другого входа под ключом этого входа, как при коллизии хеша
	key := keyPrefix + "collision"
	_ = store.Set(ctx, key, []byte(`{"input":"00","result":{"emi":1}}`))
	if _, ok := c.lookup(ctx, key, "ff"); ok {
		t.Error("entry with a different canonical input must be a miss")
	}

	got, err := c.ComputeROI(ctx, other)
	if err != nil {
		t.Fatalf("ComputeROI() error = %v", err)
	}
	if got.TotalCost != 1+200_000*2 {
		t.Errorf("unexpected total cost %f", got.TotalCost)
	}
}

func TestROICache_StoreFailureIsInvisible(t *testing.T) {
	logger, logs := testLogger()
	c := NewROICache(failingStore{}, logger)

	got, err := c.ComputeROI(context.Background(), calculations.DashboardDefaults())
	if err != nil {
		t.Fatalf("store failure leaked to caller: %v", err)
	}
	if got.TotalCost != 2_550_000 {
		t.Errorf("unexpected total cost %f", got.TotalCost)
	}
	if !bytes.Contains(logs.Bytes(), []byte("connection refused")) {
		t.Errorf("expected store failure to be logged, got %s", logs.String())
	}
}

func TestROICache_CorruptEntry(t *testing.T) {
	logger, _ := testLogger()
	store := NewMemoryStore(8, time.Minute)
	c := NewROICache(store, logger)
	ctx := context.Background()

	in := calculations.DashboardDefaults()
	if _, err := c.ComputeROI(ctx, in); err != nil {
		t.Fatalf("ComputeROI() error = %v", err)
	}
	for key := range store.items {
		_ = store.Set(ctx, key, []byte("not json"))
	}

	got, err := c.ComputeROI(ctx, in)
	if err != nil {
		t.Fatalf("ComputeROI() error = %v", err)
	}
	if got.TotalCost != 2_550_000 {
		t.Errorf("expected recomputation after corrupt entry, got %+v", got)
	}
}

func TestROICache_RejectsInvalidInputs(t *testing.T) {
	logger, _ := testLogger()
	store := &countingStore{Store: NewMemoryStore(8, time.Minute)}
	c := NewROICache(store, logger)

	in := calculations.DashboardDefaults()
	in.LoanTerm = 0
	_, err := c.ComputeROI(context.Background(), in)

	var cfgErr *calculations.ConfigurationError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("expected *ConfigurationError, got %v", err)
	}
	if store.gets != 0 || store.sets != 0 {
		t.Error("invalid inputs must not touch the store")
	}
}

func TestROICache_Disabled(t *testing.T) {
	var c *ROICache
	got, err := c.ComputeROI(context.Background(), calculations.DashboardDefaults())
	if err != nil || got.TotalCost != 2_550_000 {
		t.Fatalf("nil cache should compute directly, got %+v, %v", got, err)
	}
}

func TestROICache_Redis(t *testing.T) {
	s := miniredis.RunT(t)
	client, err := OpenRedis(s.Addr(), 0)
	if err != nil {
		t.Fatalf("OpenRedis returned error: %v", err)
	}
	t.Cleanup(func() { _ = client.Close() })

	logger, _ := testLogger()
	c := NewROICache(NewRedisStore(client, time.Minute), logger)
	ctx := context.Background()

	first, err := c.ComputeROI(ctx, calculations.DashboardDefaults())
	if err != nil {
		t.Fatalf("ComputeROI() error = %v", err)
	}
	if keys := s.Keys(); len(keys) != 1 {
		t.Fatalf("expected one redis key, got %v", keys)
	}

	second, err := c.ComputeROI(ctx, calculations.DashboardDefaults())
	if err != nil {
		t.Fatalf("ComputeROI() error = %v", err)
	}
	if *first != *second {
		t.Errorf("redis round trip changed the result: %+v vs %+v", first, second)
	}
}
