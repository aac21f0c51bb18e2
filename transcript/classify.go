// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package transcript

import (
	"regexp"
	"strings"

	"github.com/poiesic/insightd/core"
)

// classifyPrefixLen bounds how much content the classifier inspects.
// Transcripts announce themselves early; scanning megabytes of
// attachment text buys nothing.
const classifyPrefixLen = 2000

// speakerLineThreshold is the fraction of non-blank lines that must
// carry a speaker tag for content to count as a transcript.
const speakerLineThreshold = 0.15

// meetingTitleWords are title substrings that mark a document as a
// meeting regardless of its body.
var meetingTitleWords = []string{
	"meeting", "call", "session", "standup", "sync", "review",
	"discussion", "conference", "huddle", "briefing", "kickoff",
}

// speakerLinePatterns match the conversation formats transcription
// tools emit: "John Doe: ", "SPEAKER_1: ", "[10:30] Text", "> John:".
var speakerLinePatterns = []*regexp.Regexp{
	regexp.MustCompile(`\b[A-Z][a-zA-Z ]+: `),
	regexp.MustCompile(`\b[A-Z_]+\d*: `),
	regexp.MustCompile(`(?m)^\[[^\]]+\] *[A-Z]`),
	regexp.MustCompile(`> *[A-Z][a-zA-Z ]+:`),
}

// Classify decides whether a document is a meeting transcript.
//
// A meeting-flavored title is decisive on its own. Otherwise the
// content prefix is scanned for conversation structure, and the
// document is a meeting when enough of its lines look like speaker
// turns. Everything else is CategoryOther.
func Classify(title, content string) core.DocumentCategory {
	if TitleSuggestsMeeting(title) {
		return core.CategoryMeeting
	}
	if SpeakerLineRatio(content) > speakerLineThreshold {
		return core.CategoryMeeting
	}
	return core.CategoryOther
}

// TitleSuggestsMeeting reports whether the title contains a meeting
// indicator word.
func TitleSuggestsMeeting(title string) bool {
	lower := strings.ToLower(title)
	for _, word := range meetingTitleWords {
		if strings.Contains(lower, word) {
			return true
		}
	}
	return false
}

// SpeakerLineRatio returns the ratio of speaker-pattern matches to
// non-blank lines in the content prefix. Returns 0 for content with no
// non-blank lines.
func SpeakerLineRatio(content string) float64 {
	prefix := content
	if len(prefix) > classifyPrefixLen {
		prefix = prefix[:classifyPrefixLen]
	}

	nonBlank := 0
	for _, line := range strings.Split(prefix, "\n") {
		if strings.TrimSpace(line) != "" {
			nonBlank++
		}
	}
	if nonBlank == 0 {
		return 0
	}

	matches := 0
	for _, pattern := range speakerLinePatterns {
		matches += len(pattern.FindAllString(prefix, -1))
	}
	return float64(matches) / float64(nonBlank)
}
