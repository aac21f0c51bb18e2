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


package openai

// repairJSON patches the one malformation the extractor model produces
// often enough to matter: an object key that lost its opening quote, as
// in `{ type": "decision"}`. Anything it does not recognize passes
// through untouched, so a later json.Unmarshal still reports real
// syntax errors.
func repairJSON(s string) string {
	in := []rune(s)
	out := make([]rune, 0, len(in)+100)

	i := 0
	for i < len(in) {
		ch := in[i]

		// Keys only appear after { or , so everything else copies through.
		if ch != '{' && ch != ',' {
			out = append(out, ch)
			i++
			continue
		}

		out = append(out, ch)
		i++

		for i < len(in) && (in[i] == ' ' || in[i] == '\n' || in[i] == '\t') {
			out = append(out, in[i])
			i++
		}

		// A key position starting with a letter instead of a quote is
		// the candidate; scan the bare word.
		if i < len(in) && in[i] != '"' && isLetter(in[i]) {
			keyStart := i
			for i < len(in) && (isLetter(in[i]) || in[i] == '_' || in[i] == ' ') {
				i++
			}
			keyEnd := i

			// Only rewrite when the word ends in ": — the closing
			// quote survived, the opening one went missing.
			if i+1 < len(in) && in[i] == '"' && in[i+1] == ':' {
				out = append(out, '"')
				for j := keyStart; j < keyEnd; j++ {
					// Trim padding inside the reconstructed key but
					// keep interior spaces.
					if in[j] != ' ' || (j > keyStart && j < keyEnd-1) {
						out = append(out, in[j])
					}
				}
				// The closing quote at in[i] is copied on the next pass.
				continue
			}

			// False alarm; emit the word as scanned.
			for j := keyStart; j < i; j++ {
				out = append(out, in[j])
			}
		}
	}

	return string(out)
}
