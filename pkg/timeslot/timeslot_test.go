package timeslot

import "testing"

func TestToIndex(t *testing.T) {
	cases := []struct {
		minutes int
		want    int
	}{
		{0, 0},
		{540, 108},  // 09:00
		{510, 102},  // 08:30
		{512, 102},  // rounds down, 0.4 below the boundary
		{513, 103},  // rounds up
		{1439, 288}, // 23:59
	}

	for _, c := range cases {
		if got := ToIndex(c.minutes); got != c.want {
			t.Errorf("ToIndex(%d) = %d, want %d", c.minutes, got, c.want)
		}
	}
}

func TestClock(t *testing.T) {
	h, m := Clock(102)
	if h != 8 || m != 30 {
		t.Errorf("Clock(102) = %d:%d, want 8:30", h, m)
	}

	h, m = Clock(0)
	if h != 0 || m != 0 {
		t.Errorf("Clock(0) = %d:%d, want 0:00", h, m)
	}

	h, m = Clock(287)
	if h != 23 || m != 55 {
		t.Errorf("Clock(287) = %d:%d, want 23:55", h, m)
	}
}

// ToIndex then Clock must land on the same 5-minute bucket as rounding the
// raw minutes directly. An off-by-one here shifts every migrated class.
func TestRoundTripBuckets(t *testing.T) {
	for m := 0; m < 1440; m++ {
		idx := ToIndex(m)
		h, min := Clock(idx)
		if got := h*60 + min; got != idx*5 {
			t.Fatalf("Clock(ToIndex(%d)) = %d minutes, want %d", m, got, idx*5)
		}
		// Nearest bucket check, half rounds up.
		lo, hi := idx*5-2, idx*5+2
		if m < lo || m > hi {
			t.Fatalf("ToIndex(%d) = %d is not the nearest bucket", m, idx)
		}
	}
}
