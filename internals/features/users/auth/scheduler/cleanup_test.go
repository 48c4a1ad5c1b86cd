package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"gorm.io/gorm"
)

func TestRunCleanupContinuesAfterFailure(t *testing.T) {
	var ran []string
	tasks := []Task{
		{Name: "a", Run: func(context.Context, *gorm.DB, time.Time) (int64, error) {
			ran = append(ran, "a")
			return 0, errors.New("boom")
		}},
		{Name: "b", Run: func(context.Context, *gorm.DB, time.Time) (int64, error) {
			ran = append(ran, "b")
			return 3, nil
		}},
	}
	RunCleanup(context.Background(), nil, time.Now(), tasks)
	if len(ran) != 2 {
		t.Fatalf("ran = %v", ran)
	}
}

func TestStartCleanupCronRejectsBadSchedule(t *testing.T) {
	if _, err := StartCleanupCron(nil, "bukan jadwal"); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestStartCleanupCronDefault(t *testing.T) {
	c, err := StartCleanupCron(nil, "")
	if err != nil {
		t.Fatal(err)
	}
	defer c.Stop()
	if len(c.Entries()) != 1 {
		t.Fatalf("entries = %d", len(c.Entries()))
	}
}
