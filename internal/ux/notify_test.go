package ux

import (
	"fmt"
	"testing"
)

func TestFeedLatest(t *testing.T) {
	f := NewFeed(8)
	if _, ok := f.Latest(); ok {
		t.Fatalf("expected empty feed")
	}

	f.Info("first")
	f.Success("second")

	latest, ok := f.Latest()
	if !ok {
		t.Fatalf("expected a notice")
	}
	if latest.Message != "second" || latest.Level != LevelSuccess {
		t.Fatalf("unexpected latest notice: %+v", latest)
	}
}

func TestFeedBounded(t *testing.T) {
	f := NewFeed(3)
	for i := 0; i < 10; i++ {
		f.Error(fmt.Sprintf("notice-%d", i))
	}

	all := f.All()
	if len(all) != 3 {
		t.Fatalf("expected 3 retained notices, got %d", len(all))
	}
	if all[0].Message != "notice-7" {
		t.Fatalf("expected oldest retained notice to be notice-7, got %s", all[0].Message)
	}
}

func TestLogNotifierNilLogger(t *testing.T) {
	n := NewLogNotifier(nil)
	// Must not panic.
	n.Success("ok")
	n.Error("bad")
	n.Info("hm")
}
