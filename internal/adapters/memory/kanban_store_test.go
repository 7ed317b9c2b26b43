package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/example/commandcenter/internal/models"
)

func TestKanbanStore_IsolatesCallers(t *testing.T) {
	s := NewKanbanStore(&models.KanbanTask{ID: "a", Title: "Alpha", Tags: []string{"x"}})
	ctx := context.Background()

	got, err := s.Load(ctx)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	got[0].Title = "changed"
	got[0].Tags[0] = "changed"

	again, _ := s.Load(ctx)
	if again[0].Title != "Alpha" || again[0].Tags[0] != "x" {
		t.Errorf("store state leaked to caller: %+v", again[0])
	}
}

func TestKanbanStore_SaveErrKeepsState(t *testing.T) {
	s := NewKanbanStore(&models.KanbanTask{ID: "a"})
	s.SaveErr = errors.New("disk full")

	if err := s.Save(context.Background(), nil); err == nil {
		t.Fatal("expected error")
	}
	s.SaveErr = nil

	got, _ := s.Load(context.Background())
	if len(got) != 1 || s.Saves() != 0 {
		t.Errorf("failed save changed state: %v, saves=%d", got, s.Saves())
	}
}
