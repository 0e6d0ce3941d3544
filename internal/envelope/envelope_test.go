package envelope

import "testing"

func TestEncodeDecodeRoundTripMultipleOfThree(t *testing.T) {
	t.Parallel()

	testCases := [][]byte{
		{},
		{0x00, 0x01, 0x02},
		{0xFF, 0xFE, 0xFD, 0x10, 0x20, 0x30},
		[]byte("hello!"),
	}

	for _, data := range testCases {
		wire := Encode(data, 12345)
		if len(wire)%4 != 0 {
			t.Fatalf("wire length %d not a multiple of 4 for %d-byte input", len(wire), len(data))
		}
		got := DecodeInterstitial(wire, 12345)
		if string(got) != string(data) {
			t.Errorf("round trip mismatch: got %v, want %v", got, data)
		}
		gotCaptcha := DecodeCaptcha(wire, 12345)
		if string(gotCaptcha) != string(data) {
			t.Errorf("captcha round trip mismatch: got %v, want %v", gotCaptcha, data)
		}
	}
}

func TestEncodeTrimsPartialGroupCharacters(t *testing.T) {
	t.Parallel()

	for _, n := range []int{1, 2, 4, 5, 7, 8} {
		data := make([]byte, n)
		for i := range data {
			data[i] = byte(i + 1)
		}
		wire := Encode(data, 99)
		rem := n % 3
		if rem == 0 {
			continue
		}
		groups := (n + 2) / 3
		wantLen := groups*4 - (3 - rem)
		if len(wire) != wantLen {
			t.Errorf("n=%d: wire length %d, want %d", n, len(wire), wantLen)
		}
	}
}

func TestDecodeRecoversRealBytesFromPartialTailGroup(t *testing.T) {
	t.Parallel()

	// n%3 != 0: the real data bytes (everything encode actually saw) must
	// still be the prefix of what decode produces, even though a handful
	// of XOR-noise bytes may trail them (see envelope.go's decode comment).
	data := []byte{0x11, 0x22, 0x33, 0x44} // len 4, rem=1
	wire := Encode(data, 7)
	got := DecodeInterstitial(wire, 7)
	if len(got) < len(data) {
		t.Fatalf("decoded only %d bytes, want at least %d", len(got), len(data))
	}
	for i, want := range data {
		if got[i] != want {
			t.Errorf("byte %d = %x, want %x", i, got[i], want)
		}
	}
}

func TestDiscardsSingleLeftoverCharacter(t *testing.T) {
	t.Parallel()

	wire := Encode([]byte{1, 2, 3}, 5) // 4 clean chars
	wire = append(wire, 'a')           // + 1 stray, truncated-looking char
	got := DecodeInterstitial(wire, 5)
	if len(got) != 3 {
		t.Errorf("trailing 1-char remainder should be discarded, got %d bytes", len(got))
	}
}
