package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDailyFiresOncePerDay(t *testing.T) {
	var runs []time.Time
	d := NewDaily("test", 9, 30, time.UTC, func(_ context.Context, now time.Time) error {
		runs = append(runs, now)
		return nil
	})

	ctx := context.Background()

	assert.False(t, d.tick(ctx, time.Date(2024, 6, 15, 9, 29, 0, 0, time.UTC)))
	assert.True(t, d.tick(ctx, time.Date(2024, 6, 15, 9, 30, 0, 0, time.UTC)))
	assert.False(t, d.tick(ctx, time.Date(2024, 6, 15, 9, 31, 0, 0, time.UTC)))
	assert.False(t, d.tick(ctx, time.Date(2024, 6, 15, 23, 0, 0, 0, time.UTC)))

	// tick perdido: dispara no primeiro tick após o horário
	assert.True(t, d.tick(ctx, time.Date(2024, 6, 16, 11, 0, 0, 0, time.UTC)))

	assert.Len(t, runs, 2)
}

func TestDailyUsesLocation(t *testing.T) {
	loc := time.FixedZone("BRT", -3*3600)
	fired := false
	d := NewDaily("test", 9, 0, loc, func(context.Context, time.Time) error {
		fired = true
		return errors.New("ignored")
	})

	// 11:00 UTC = 08:00 BRT
	assert.False(t, d.tick(context.Background(), time.Date(2024, 6, 15, 11, 0, 0, 0, time.UTC)))
	assert.True(t, d.tick(context.Background(), time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)))
	assert.True(t, fired)
}

func TestDailyStopsWithContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	d := NewDaily("test", 0, 0, time.UTC, func(context.Context, time.Time) error { return nil })
	d.interval = time.Hour
	d.Start(ctx)
	cancel()
}
