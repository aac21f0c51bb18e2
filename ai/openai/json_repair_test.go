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

import "testing"

func TestRepairJSON(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "missing opening quote after brace",
			in:   `{type": "decision"}`,
			want: `{"type": "decision"}`,
		},
		{
			name: "missing opening quote after comma",
			in:   `{"title": "Pour delayed", severity": "high"}`,
			want: `{"title": "Pour delayed", "severity": "high"}`,
		},
		{
			name: "well-formed input untouched",
			in:   `{"type": "risk", "confidence": 0.8}`,
			want: `{"type": "risk", "confidence": 0.8}`,
		},
		{
			name: "bare word that is not a key",
			in:   `{"note": "crane, maybe tomorrow"}`,
			want: `{"note": "crane, maybe tomorrow"}`,
		},
		{
			name: "whitespace before broken key",
			in:   "{\n  due_date\": \"2026-09-01\"}",
			want: "{\n  \"due_date\": \"2026-09-01\"}",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := repairJSON(tt.in); got != tt.want {
				t.Fatalf("repairJSON(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
