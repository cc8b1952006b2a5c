package quest

import (
	"errors"
	"testing"

	"github.com/jwebster45206/rpg-engine/pkg/dice"
)

func TestAssignAppendsIncompleteRecord(t *testing.T) {
	var log Log
	rec := log.Assign(dice.New(5), nil)

	if len(log) != 1 {
		t.Fatalf("expected 1 quest, got %d", len(log))
	}
	if rec.Completed {
		t.Error("new quest should be incomplete")
	}
	found := false
	for _, d := range Catalog {
		if d == rec.Description {
			found = true
		}
	}
	if !found {
		t.Errorf("description %q not in catalog", rec.Description)
	}
}

func TestAssignFromCustomPool(t *testing.T) {
	var log Log
	rec := log.Assign(dice.New(5), []string{"Slay the Slime"})
	if rec.Description != "Slay the Slime" {
		t.Errorf("got %q, want %q", rec.Description, "Slay the Slime")
	}
}

func TestCompleteNextInInsertionOrder(t *testing.T) {
	log := Log{
		{Description: "first", Completed: true},
		{Description: "second"},
		{Description: "third"},
	}

	rec, err := log.CompleteNext()
	if err != nil {
		t.Fatalf("CompleteNext() error = %v", err)
	}
	if rec.Description != "second" || !rec.Completed {
		t.Errorf("completed %+v, want second", rec)
	}
	if !log[1].Completed || log[2].Completed {
		t.Errorf("unexpected log state: %+v", log)
	}
	if got := log.Pending(); got != 1 {
		t.Errorf("Pending() = %d, want 1", got)
	}
}

func TestCompleteTwiceReportsNoQuestsPending(t *testing.T) {
	var log Log
	log.Assign(dice.New(1), nil)

	if _, err := log.CompleteNext(); err != nil {
		t.Fatalf("first CompleteNext() error = %v", err)
	}
	if _, err := log.CompleteNext(); !errors.Is(err, ErrNoQuestsPending) {
		t.Fatalf("second CompleteNext() error = %v, want ErrNoQuestsPending", err)
	}
}

func TestRecordStatus(t *testing.T) {
	if got := (Record{}).Status(); got != "Incomplete" {
		t.Errorf("Status() = %q", got)
	}
	if got := (Record{Completed: true}).Status(); got != "Completed" {
		t.Errorf("Status() = %q", got)
	}
}
