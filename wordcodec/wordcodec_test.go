package wordcodec

import "testing"

func TestRoundTrip(t *testing.T) {
	for _, v := range []float64{0, 0.1, 12.3, 1000, 6553.5} {
		high, low := WriteWord(v, 0.1)
		got := ReadUWord(high, low, 0.1)
		want := round1(v)
		if got != want {
			t.Errorf("WriteWord/ReadUWord(%v): got %v, want %v", v, got, want)
		}
	}
}

func TestSaturation(t *testing.T) {
	high, low := WriteWord(10000, 0.1)
	if high != 0xFF || low != 0xFF {
		t.Errorf("WriteWord(10000, 0.1) = (%#x, %#x), want (0xFF, 0xFF)", high, low)
	}
}

func TestNegativeSaturatesToZero(t *testing.T) {
	high, low := WriteWord(-5, 0.1)
	if high != 0 || low != 0 {
		t.Errorf("WriteWord(-5, 0.1) = (%#x, %#x), want (0x00, 0x00)", high, low)
	}
}

func TestReadSWord(t *testing.T) {
	cases := []struct {
		high, low byte
		scale     float64
		want      float64
	}{
		{0xFF, 0xFF, 0.1, -0.1},
		{0x80, 0x00, 0.1, -3276.8},
		{0x00, 0x00, 0.1, 0},
		{0x10, 0xFE, 0.1, 435.0},
	}
	for _, c := range cases {
		got := ReadSWord(c.high, c.low, c.scale)
		if got != c.want {
			t.Errorf("ReadSWord(%#x, %#x, %v) = %v, want %v", c.high, c.low, c.scale, got, c.want)
		}
	}
}

func TestReadUWord(t *testing.T) {
	if got := ReadUWord(0x10, 0xFE, 0.1); got != 435.0 {
		t.Errorf("ReadUWord(0x10, 0xFE, 0.1) = %v, want 435.0", got)
	}
}
