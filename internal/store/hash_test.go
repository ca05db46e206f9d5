package store

import "testing"

func TestHashHex_DeterministicAndDistinguishesInputs(t *testing.T) {
	a := hashHex("/home/dev/project-a")
	b := hashHex("/home/dev/project-a")
	c := hashHex("/home/dev/project-b")

	if a != b {
		t.Fatalf("hashHex not deterministic: %s != %s", a, b)
	}
	if a == c {
		t.Fatalf("hashHex collided for distinct inputs")
	}
	if len(a) != 64 {
		t.Fatalf("expected a 64-char hex digest, got %d chars", len(a))
	}
}
