package provisioning

import (
	"strings"
	"testing"
)

func TestGenerateJoinTokenLengthAndUniqueness(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		tok, err := generateJoinToken(24)
		if err != nil {
			t.Fatalf("generateJoinToken() error = %v", err)
		}
		if len(tok) != 24 {
			t.Fatalf("token length = %d, want 24", len(tok))
		}
		if seen[tok] {
			t.Fatalf("duplicate token generated: %s", tok)
		}
		seen[tok] = true
	}
}

func TestBridgeDialNumberStable(t *testing.T) {
	first := bridgeDialNumber("room-abc")
	if first != bridgeDialNumber("room-abc") {
		t.Fatalf("dial number not stable for the same room")
	}
	if !strings.HasPrefix(first, "+1-555-") {
		t.Fatalf("dial number = %q, want the bridge prefix", first)
	}
}
