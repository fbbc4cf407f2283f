package ecma

import "testing"

// Astral codepoints must round-trip through the CESU-8 surrogate-pair
// encoding unchanged (§6.3).
func TestCESU8RoundTripsAstralCodepoints(t *testing.T) {
	cases := []string{
		"hello",
		"hello, 世界",
		"emoji: 😀🎉",
		"",
	}
	for _, want := range cases {
		cesu8 := UTF8ToCESU8([]byte(want))
		got := string(CESU8ToUTF8(cesu8))
		if got != want {
			t.Fatalf("round trip of %q got %q", want, got)
		}
	}
}

// NewString must classify by length/ASCII-ness the way §3.7 describes,
// and Hash must be stable across calls (cached after the first).
func TestStringClassificationAndHashStability(t *testing.T) {
	s := newTestStore(t)

	shortCP := s.NewString("hi")
	if rec := s.String(shortCP); rec.Kind != StringDirect {
		t.Fatalf("got kind %v, want StringDirect for a short ASCII string", rec.Kind)
	}

	longASCII := make([]byte, 300)
	for i := range longASCII {
		longASCII[i] = 'a'
	}
	longCP := s.NewString(string(longASCII))
	if rec := s.String(longCP); rec.Kind != StringLong {
		t.Fatalf("got kind %v, want StringLong for a 300-byte string", rec.Kind)
	}

	rec := s.String(shortCP)
	h1 := rec.Hash()
	h2 := rec.Hash()
	if h1 != h2 {
		t.Fatalf("expected a cached hash to stay stable, got %d then %d", h1, h2)
	}
}
