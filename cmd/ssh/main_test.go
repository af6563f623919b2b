package main

import "testing"

func TestWindowSize(t *testing.T) {
	s := newWindowSize(120, 40)
	if w, h, _ := s.get(); w != 120 || h != 40 {
		t.Fatalf("get() = %d x %d, want 120 x 40", w, h)
	}
	s.set(220, 66)
	if w, h, _ := s.get(); w != 220 || h != 66 {
		t.Errorf("get() = %d x %d, want 220 x 66", w, h)
	}
}
