package transcript

import (
	"fmt"
	"strings"
	"testing"
)

func TestExtractSpeakers(t *testing.T) {
	content := strings.Join([]string{
		"John Doe: Let's get started.",
		"Sarah: The pour is on track.",
		"John Doe: Good.",
		"SPEAKER_1: Audio transcription speaker here.",
		"> Mike Chen: quoted reply",
	}, "\n")

	speakers := ExtractSpeakers(content, 0)

	want := map[string]bool{
		"John Doe":  true,
		"Sarah":     true,
		"SPEAKER_1": true,
		"Mike Chen": true,
	}
	if len(speakers) != len(want) {
		t.Fatalf("Expected %d speakers, got %v", len(want), speakers)
	}
	for _, s := range speakers {
		if !want[s] {
			t.Fatalf("Unexpected speaker %q in %v", s, speakers)
		}
	}
}

func TestExtractSpeakersSkipsStopWords(t *testing.T) {
	content := "THE: not a person\nAND: also not\nFOR: nope\nAlice: real"
	speakers := ExtractSpeakers(content, 0)
	if len(speakers) != 1 || speakers[0] != "Alice" {
		t.Fatalf("Expected only Alice, got %v", speakers)
	}
}

func TestExtractSpeakersLimit(t *testing.T) {
	var lines []string
	for i := 0; i < 15; i++ {
		lines = append(lines, fmt.Sprintf("Speaker %c: line", 'A'+i))
	}
	content := strings.Join(lines, "\n")

	speakers := ExtractSpeakers(content, MaxDocumentSpeakers)
	if len(speakers) != MaxDocumentSpeakers {
		t.Fatalf("Expected %d speakers, got %d", MaxDocumentSpeakers, len(speakers))
	}
}

func TestExtractSpeakersEmpty(t *testing.T) {
	if got := ExtractSpeakers("no dialogue here at all", 0); len(got) != 0 {
		t.Fatalf("Expected none, got %v", got)
	}
}
