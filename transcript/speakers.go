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
)

// MaxDocumentSpeakers caps the participant list stored per document.
const MaxDocumentSpeakers = 10

// MaxChunkSpeakers caps the speakers attributed to a single chunk.
const MaxChunkSpeakers = 5

// speakerNamePatterns capture the name portion of a speaker turn.
var speakerNamePatterns = []*regexp.Regexp{
	regexp.MustCompile(`\b([A-Z][a-zA-Z ]{2,30}): `),
	regexp.MustCompile(`\b([A-Z_]+\d*): `),
	regexp.MustCompile(`> *([A-Z][a-zA-Z ]+):`),
}

// speakerStopWords are capitalized sentence fragments that match the
// name patterns but are never people.
var speakerStopWords = map[string]bool{
	"THE": true,
	"AND": true,
	"FOR": true,
}

// ExtractSpeakers returns the distinct speaker names found in content,
// in order of first appearance, capped at limit. Pass 0 for no cap.
func ExtractSpeakers(content string, limit int) []string {
	seen := make(map[string]bool)
	var speakers []string

	for _, pattern := range speakerNamePatterns {
		for _, match := range pattern.FindAllStringSubmatch(content, -1) {
			name := strings.TrimSpace(match[1])
			if len(name) <= 1 || speakerStopWords[name] || seen[name] {
				continue
			}
			seen[name] = true
			speakers = append(speakers, name)
		}
	}

	if limit > 0 && len(speakers) > limit {
		speakers = speakers[:limit]
	}
	return speakers
}
