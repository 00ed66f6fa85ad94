package cache

import (
	"context"
	"encoding/binary"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"

	"github.com/cespare/xxhash/v2"
	"github.com/cloud-ru/mba-roi-go/internal/calculations"
	"github.com/cloud-ru/mba-roi-go/internal/metrics"
)

const keyPrefix = "mba-roi:v1:"

// ROICache мемоизирует calculations.ComputeROI. Ошибки хранилища не видны
// вызывающему: при любой проблеме результат просто пересчитывается.
type ROICache struct {
	store  Store
	logger *slog.Logger
}

type roiEntry struct {
	Input  string                 `json:"input"`
	Result calculations.ROIResult `json:"result"`
}

// NewROICache оборачивает store. С nil store кеширование отключено.
func NewROICache(store Store, logger *slog.Logger) *ROICache {
	return &ROICache{store: store, logger: logger}
}

// ComputeROI возвращает результат из кеша или считает и сохраняет его
func (c *ROICache) ComputeROI(ctx context.Context, in calculations.ROIInputs) (*calculations.ROIResult, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	if c == nil || c.store == nil {
		return calculations.ComputeROI(in)
	}

	canonical := canonicalInput(in)
	key := keyPrefix + fmt.Sprintf("%016x", xxhash.Sum64(canonical))
	encoded := hex.EncodeToString(canonical)

	if result, ok := c.lookup(ctx, key, encoded); ok {
		metrics.CacheLookups.WithLabelValues(c.store.Name(), "hit").Inc()
		return result, nil
	}
	metrics.CacheLookups.WithLabelValues(c.store.Name(), "miss").Inc()

	result, err := calculations.ComputeROI(in)
	if err != nil {
		return nil, err
	}

	data, err := json.Marshal(roiEntry{Input: encoded, Result: *result})
	if err != nil {
		c.logger.Warn("failed to encode roi cache entry", "error", err)
		return result, nil
	}
	if err := c.store.Set(ctx, key, data); err != nil {
		c.logger.Warn("failed to store roi cache entry", "backend", c.store.Name(), "error", err)
	}
	return result, nil
}

func (c *ROICache) lookup(ctx context.Context, key, encoded string) (*calculations.ROIResult, bool) {
	data, ok, err := c.store.Get(ctx, key)
	if err != nil {
		c.logger.Warn("roi cache lookup failed", "backend", c.store.Name(), "error", err)
		return nil, false
	}
	if !ok {
		return nil, false
	}

	var entry roiEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		c.logger.Warn("discarding undecodable roi cache entry", "key", key, "error", err)
		return nil, false
	}
	// 64-битный хеш может совпасть у разных входов
	if entry.Input != encoded {
		return nil, false
	}
	return &entry.Result, true
}

// canonicalInput кодирует точные значения всех полей: float64 по битам IEEE-754
func canonicalInput(in calculations.ROIInputs) []byte {
	floats := []float64{
		in.TotalFees,
		in.PreSalary,
		in.PostSalary,
		in.LivingExpenses,
		in.Scholarship,
		in.LoanInterest,
		in.SalaryGrowth,
		in.PostGrowth,
	}

	buf := make([]byte, 0, 8*(len(floats)+2))
	for _, f := range floats {
		buf = binary.BigEndian.AppendUint64(buf, math.Float64bits(f))
	}
	buf = binary.BigEndian.AppendUint64(buf, uint64(int64(in.Duration)))
	buf = binary.BigEndian.AppendUint64(buf, uint64(int64(in.LoanTerm)))
	return buf
}
