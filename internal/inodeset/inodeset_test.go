package inodeset

import "testing"

func TestShouldChargeSizeSingleLink(t *testing.T) {
	s := New()
	if !s.ShouldChargeSize(42, 1) {
		t.Fatal("nlink == 1 must always charge")
	}
	if !s.ShouldChargeSize(42, 1) {
		t.Fatal("nlink == 1 must always charge, every time")
	}
}

func TestShouldChargeSizeHardLinkDedup(t *testing.T) {
	s := New()
	if !s.ShouldChargeSize(7, 2) {
		t.Fatal("first observation of a hard-linked inode should charge")
	}
	if s.ShouldChargeSize(7, 2) {
		t.Fatal("second observation of the same inode should not charge again")
	}
	if s.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", s.Len())
	}
}

func TestShouldChargeSizeConcurrent(t *testing.T) {
	s := New()
	const n = 64
	results := make(chan bool, n)
	for i := 0; i < n; i++ {
		go func() { results <- s.ShouldChargeSize(99, 2) }()
	}
	charged := 0
	for i := 0; i < n; i++ {
		if <-results {
			charged++
		}
	}
	if charged != 1 {
		t.Fatalf("exactly one concurrent caller should win the charge, got %d", charged)
	}
}
