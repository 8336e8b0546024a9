package version

import (
	"strings"
	"testing"
)

func TestPlain(t *testing.T) {
	if got, want := Plain(), Major+"."+Minor+"."+Patch+"-dev"; got != want {
		t.Fatalf("Plain() = %q, want %q", got, want)
	}
	if strings.Contains(Plain(), "\x1b") {
		t.Fatal("Plain() must not contain color escapes")
	}
}

func TestVersionMentionsParts(t *testing.T) {
	for _, part := range []string{Major, Minor, Patch} {
		if !strings.Contains(Version, part) {
			t.Fatalf("Version %q does not contain %q", Version, part)
		}
	}
}
