package humanize

import "testing"

func TestBytesRaw(t *testing.T) {
	if got := Bytes(12345, false); got != "12345" {
		t.Fatalf("Bytes(12345, false) = %q, want %q", got, "12345")
	}
}

func TestBytesHumanUnits(t *testing.T) {
	cases := []struct {
		n    int64
		want string
	}{
		{0, "0.0B"},
		{512, "512.0B"},
		{1024, "1.0K"},
		{1536, "1.5K"},
		{1024 * 1024, "1.0M"},
		{1024 * 1024 * 1024, "1.0G"},
	}
	for _, c := range cases {
		if got := Bytes(c.n, true); got != c.want {
			t.Errorf("Bytes(%d, true) = %q, want %q", c.n, got, c.want)
		}
	}
}

func TestGrouped(t *testing.T) {
	if got := Grouped(1234567); got != "1,234,567" {
		t.Fatalf("Grouped(1234567) = %q, want %q", got, "1,234,567")
	}
}
