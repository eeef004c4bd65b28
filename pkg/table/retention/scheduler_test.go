package retention

import (
	"context"
	"testing"
	"time"

	"mercator-hq/tabula/pkg/table/storage"
)

func TestScheduler_Start(t *testing.T) {
	tests := []struct {
		name        string
		schedule    string
		wantRunning bool
		wantError   bool
	}{
		{name: "valid daily schedule", schedule: "0 3 * * *", wantRunning: true},
		{name: "valid hourly schedule", schedule: "0 * * * *", wantRunning: true},
		{name: "empty schedule", schedule: ""},
		{name: "invalid schedule", schedule: "invalid cron", wantError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pruner := NewPruner(storage.NewMemoryStorage(), nil, &Config{
				RetentionDays: 30,
				Schedule:      tt.schedule,
			})
			scheduler := NewScheduler(pruner)

			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			err := scheduler.Start(ctx)
			if (err != nil) != tt.wantError {
				t.Fatalf("Start() error = %v, wantError %v", err, tt.wantError)
			}
			if got := scheduler.IsRunning(); got != tt.wantRunning {
				t.Errorf("IsRunning() = %v, want %v", got, tt.wantRunning)
			}

			next := scheduler.NextRun()
			if tt.wantRunning {
				if next == nil || !next.After(time.Now()) {
					t.Errorf("NextRun() = %v, want a future time", next)
				}
			} else if next != nil {
				t.Errorf("NextRun() = %v, want nil", next)
			}

			scheduler.Stop()
			if scheduler.IsRunning() {
				t.Error("scheduler still running after Stop()")
			}
		})
	}
}

func TestScheduler_StopsOnContextCancel(t *testing.T) {
	pruner := NewPruner(storage.NewMemoryStorage(), nil, &Config{Schedule: "0 3 * * *"})
	scheduler := NewScheduler(pruner)

	ctx, cancel := context.WithCancel(context.Background())
	if err := scheduler.Start(ctx); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}
	cancel()

	deadline := time.Now().Add(2 * time.Second)
	for scheduler.IsRunning() {
		if time.Now().After(deadline) {
			t.Fatal("scheduler did not stop after context cancellation")
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestScheduler_StartTwice(t *testing.T) {
	pruner := NewPruner(storage.NewMemoryStorage(), nil, &Config{Schedule: "0 3 * * *"})
	scheduler := NewScheduler(pruner)
	defer scheduler.Stop()

	ctx := context.Background()
	if err := scheduler.Start(ctx); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}
	if err := scheduler.Start(ctx); err == nil {
		t.Error("expected an error starting a running scheduler")
	}
}
