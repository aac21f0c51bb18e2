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
	"strconv"
	"strings"

	"github.com/poiesic/insightd/core"
)

// Default chunk geometry, tuned for transcript passages that keep
// enough surrounding turns to stay meaningful as embedding input.
const (
	DefaultTargetSize  = 1500
	DefaultOverlapSize = 300
	DefaultMinSize     = 800
	DefaultMaxSize     = 2500
)

// Chunker splits document content into overlapping chunks along
// speaker and paragraph boundaries.
type Chunker struct {
	targetSize  int
	overlapSize int
	minSize     int
	maxSize     int
}

// ChunkerOption is a functional option for configuring a Chunker.
type ChunkerOption func(*Chunker)

// WithTargetSize sets the preferred chunk size in bytes.
func WithTargetSize(n int) ChunkerOption {
	return func(c *Chunker) { c.targetSize = n }
}

// WithOverlapSize sets how many trailing bytes of a chunk are repeated
// at the start of the next one.
func WithOverlapSize(n int) ChunkerOption {
	return func(c *Chunker) { c.overlapSize = n }
}

// WithMinSize sets the smallest chunk worth keeping on its own.
func WithMinSize(n int) ChunkerOption {
	return func(c *Chunker) { c.minSize = n }
}

// WithMaxSize sets the hard upper bound on chunk size.
func WithMaxSize(n int) ChunkerOption {
	return func(c *Chunker) { c.maxSize = n }
}

// NewChunker creates a Chunker with default geometry, adjusted by the
// given options.
func NewChunker(opts ...ChunkerOption) *Chunker {
	c := &Chunker{
		targetSize:  DefaultTargetSize,
		overlapSize: DefaultOverlapSize,
		minSize:     DefaultMinSize,
		maxSize:     DefaultMaxSize,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// speakerTurnRe marks lines that open a new speaker turn, used as
// preferred split points.
var speakerTurnRe = regexp.MustCompile(`^\s*(\[[^\]]+\]\s*)?([A-Z][a-zA-Z ]{0,30}|[A-Z_]+\d*):`)

// timeTagRe matches inline clock tags like [10:30] or [1:02:45].
var timeTagRe = regexp.MustCompile(`\[(\d{1,2}):(\d{2})(?::(\d{2}))?\]`)

// Split breaks content into chunks. Boundaries land on speaker turns
// or blank lines where possible, consecutive chunks share an overlap,
// and indexes are dense in content order. Each chunk carries the
// speakers heard in it and the clock range its time tags span.
func (c *Chunker) Split(content string) []*core.Chunk {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil
	}

	segments := c.segment(content)
	texts := c.assemble(segments)

	chunks := make([]*core.Chunk, 0, len(texts))
	for i, text := range texts {
		chunk := &core.Chunk{
			Index:   i,
			Content: text,
			Speaker: strings.Join(ExtractSpeakers(text, MaxChunkSpeakers), ", "),
		}
		chunk.StartSec, chunk.EndSec = timeRange(text)
		chunks = append(chunks, chunk)
	}
	return chunks
}

// segment splits content into blocks at speaker turns and blank lines,
// hard-splitting any block that exceeds the max chunk size.
func (c *Chunker) segment(content string) []string {
	var segments []string
	var block []string

	flush := func() {
		text := strings.TrimSpace(strings.Join(block, "\n"))
		block = block[:0]
		if text == "" {
			return
		}
		for len(text) > c.maxSize {
			cut := c.targetSize
			if idx := strings.LastIndexAny(text[:cut], " \n"); idx > 0 {
				cut = idx
			}
			segments = append(segments, strings.TrimSpace(text[:cut]))
			text = strings.TrimSpace(text[cut:])
		}
		if text != "" {
			segments = append(segments, text)
		}
	}

	for _, line := range strings.Split(content, "\n") {
		if strings.TrimSpace(line) == "" || speakerTurnRe.MatchString(line) {
			flush()
		}
		if strings.TrimSpace(line) != "" {
			block = append(block, line)
		}
	}
	flush()

	return segments
}

// assemble greedily packs segments into chunks up to the target size,
// carrying an overlap of trailing segments into each new chunk.
func (c *Chunker) assemble(segments []string) []string {
	var chunks []string
	var cur []string
	curLen := 0
	// Segments before overlapLen are carried over from the previous
	// chunk; the rest are new content.
	overlapLen := 0

	emit := func() {
		chunks = append(chunks, strings.Join(cur, "\n"))
		cur, curLen = c.overlapTail(cur)
		overlapLen = len(cur)
	}

	for _, seg := range segments {
		if curLen > 0 && curLen+len(seg)+1 > c.maxSize {
			emit()
		}
		if curLen > 0 {
			curLen++
		}
		cur = append(cur, seg)
		curLen += len(seg)

		if curLen >= c.targetSize {
			emit()
		}
	}
	if len(cur) > overlapLen {
		final := strings.Join(cur, "\n")
		fresh := strings.Join(cur[overlapLen:], "\n")
		// A short trailer folds into the previous chunk instead of
		// standing alone.
		if len(chunks) > 0 && len(final) < c.minSize &&
			len(chunks[len(chunks)-1])+len(fresh)+1 <= c.maxSize {
			chunks[len(chunks)-1] += "\n" + fresh
		} else {
			chunks = append(chunks, final)
		}
	}

	return chunks
}

// overlapTail returns the trailing segments of a finished chunk that
// fit in the overlap budget, to seed the next chunk.
func (c *Chunker) overlapTail(cur []string) ([]string, int) {
	total := 0
	start := len(cur)
	for start > 0 {
		next := total + len(cur[start-1])
		if total > 0 {
			next++
		}
		if next > c.overlapSize {
			break
		}
		total = next
		start--
	}
	tail := make([]string, len(cur)-start)
	copy(tail, cur[start:])
	return tail, total
}

// timeRange returns the first and last clock tags in the text as
// seconds from the start of the recording. Both are zero when the text
// carries no tags.
func timeRange(text string) (float64, float64) {
	matches := timeTagRe.FindAllStringSubmatch(text, -1)
	if len(matches) == 0 {
		return 0, 0
	}
	return tagSeconds(matches[0]), tagSeconds(matches[len(matches)-1])
}

// tagSeconds converts a matched tag to seconds. Two-part tags read as
// hours and minutes, three-part tags as hours, minutes, and seconds.
func tagSeconds(match []string) float64 {
	a, _ := strconv.Atoi(match[1])
	b, _ := strconv.Atoi(match[2])
	if match[3] == "" {
		return float64(a*3600 + b*60)
	}
	s, _ := strconv.Atoi(match[3])
	return float64(a*3600 + b*60 + s)
}
