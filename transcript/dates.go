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
	"fmt"
	"regexp"
	"strings"
	"time"
)

// datePrefixLen bounds how much content is scanned when the title
// carries no date. Dates show up in headers, not buried mid-document.
const datePrefixLen = 500

var (
	isoDateRe       = regexp.MustCompile(`(\d{4}-\d{2}-\d{2})`)
	slashDateRe     = regexp.MustCompile(`(\d{1,2})[/-](\d{1,2})[/-](\d{4})`)
	monthDayYearRe  = regexp.MustCompile(`(?i)(Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)[a-z]*\s+(\d{1,2}),\s+(\d{4})`)
	dayMonthYearRe  = regexp.MustCompile(`(?i)(\d{1,2})\s+(Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)[a-z]*\s+(\d{4})`)
	separatedDateRe = regexp.MustCompile(`(\d{4})[_.](\d{2})[_.](\d{2})`)
)

var monthNumbers = map[string]string{
	"jan": "01", "feb": "02", "mar": "03", "apr": "04",
	"may": "05", "jun": "06", "jul": "07", "aug": "08",
	"sep": "09", "oct": "10", "nov": "11", "dec": "12",
}

// ExtractDate finds the event date carried in a document's title or,
// failing that, in the head of its content. The second return value is
// false when no parseable date was found; callers fall back to the
// upload time and flag the result.
func ExtractDate(title, content string) (time.Time, bool) {
	if t, ok := findDate(title); ok {
		return t, true
	}

	prefix := content
	if len(prefix) > datePrefixLen {
		prefix = prefix[:datePrefixLen]
	}
	return findDate(prefix)
}

// findDate tries each supported date shape in order and returns the
// first one that parses to a real calendar date.
func findDate(text string) (time.Time, bool) {
	if text == "" {
		return time.Time{}, false
	}

	if m := isoDateRe.FindStringSubmatch(text); m != nil {
		if t, ok := parseISO(m[1]); ok {
			return t, true
		}
	}

	// MM/DD/YYYY or MM-DD-YYYY
	if m := slashDateRe.FindStringSubmatch(text); m != nil {
		if t, ok := parseISO(fmt.Sprintf("%s-%s-%s", m[3], pad2(m[1]), pad2(m[2]))); ok {
			return t, true
		}
	}

	// "September 23, 2024"
	if m := monthDayYearRe.FindStringSubmatch(text); m != nil {
		month := monthNumbers[strings.ToLower(m[1])]
		if t, ok := parseISO(fmt.Sprintf("%s-%s-%s", m[3], month, pad2(m[2]))); ok {
			return t, true
		}
	}

	// "23 September 2024"
	if m := dayMonthYearRe.FindStringSubmatch(text); m != nil {
		month := monthNumbers[strings.ToLower(m[2])]
		if t, ok := parseISO(fmt.Sprintf("%s-%s-%s", m[3], month, pad2(m[1]))); ok {
			return t, true
		}
	}

	// YYYY_MM_DD or YYYY.MM.DD
	if m := separatedDateRe.FindStringSubmatch(text); m != nil {
		if t, ok := parseISO(fmt.Sprintf("%s-%s-%s", m[1], m[2], m[3])); ok {
			return t, true
		}
	}

	return time.Time{}, false
}

func pad2(s string) string {
	if len(s) == 1 {
		return "0" + s
	}
	return s
}

// parseISO parses a YYYY-MM-DD string, rejecting impossible dates like
// month 13.
func parseISO(s string) (time.Time, bool) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
