package core

import (
	"testing"
)

func TestIDFromContent(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name:    "same content produces same ID",
			content: "test content",
		},
		{
			name:    "empty string",
			content: "",
		},
		{
			name:    "long content",
			content: "This is a much longer piece of content that should still hash consistently",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id1 := IDFromContent(tt.content)
			id2 := IDFromContent(tt.content)

			if id1 != id2 {
				t.Errorf("IDFromContent() produced different IDs for same content: %d vs %d", id1, id2)
			}
		})
	}
}

func TestIDFromContent_Different(t *testing.T) {
	id1 := IDFromContent("content1")
	id2 := IDFromContent("content2")

	if id1 == id2 {
		t.Errorf("IDFromContent() produced same ID for different content")
	}
}

func TestProject_Tuple(t *testing.T) {
	tests := []struct {
		name    string
		project Project
		want    string
	}{
		{
			name:    "basic project",
			project: Project{Name: "Riverside Tower"},
			want:    "(project,Riverside Tower)",
		},
		{
			name:    "empty name",
			project: Project{},
			want:    "(project,)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.project.Tuple(); got != tt.want {
				t.Errorf("Tuple() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestQueueStatus_String(t *testing.T) {
	tests := []struct {
		status QueueStatus
		want   string
	}{
		{StatusPending, "pending"},
		{StatusProcessing, "processing"},
		{StatusCompleted, "completed"},
		{StatusFailed, "failed"},
		{QueueStatus(999), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.status.String(); got != tt.want {
			t.Errorf("QueueStatus(%d).String() = %q, want %q", tt.status, got, tt.want)
		}
	}
}

func TestQueueStatus_Terminal(t *testing.T) {
	tests := []struct {
		status QueueStatus
		want   bool
	}{
		{StatusPending, false},
		{StatusProcessing, false},
		{StatusCompleted, true},
		{StatusFailed, true},
	}

	for _, tt := range tests {
		if got := tt.status.Terminal(); got != tt.want {
			t.Errorf("QueueStatus(%d).Terminal() = %v, want %v", tt.status, got, tt.want)
		}
	}
}

func TestParseInsightType(t *testing.T) {
	// Round-trip every member of the closed set.
	for typ, name := range insightTypeNames {
		got, ok := ParseInsightType(name)
		if !ok {
			t.Errorf("ParseInsightType(%q) not recognized", name)
			continue
		}
		if got != typ {
			t.Errorf("ParseInsightType(%q) = %d, want %d", name, got, typ)
		}
		if typ.String() != name {
			t.Errorf("InsightType(%d).String() = %q, want %q", typ, typ.String(), name)
		}
	}

	if _, ok := ParseInsightType("todo"); ok {
		t.Errorf("ParseInsightType(\"todo\") accepted a name outside the closed set")
	}
	if got := InsightType(999).String(); got != "unknown" {
		t.Errorf("InsightType(999).String() = %q, want \"unknown\"", got)
	}
}

func TestParseSeverity(t *testing.T) {
	tests := []struct {
		name string
		want Severity
	}{
		{"low", SeverityLow},
		{"medium", SeverityMedium},
		{"high", SeverityHigh},
		{"critical", SeverityCritical},
		{"urgent", SeverityMedium},
		{"", SeverityMedium},
	}

	for _, tt := range tests {
		if got := ParseSeverity(tt.name); got != tt.want {
			t.Errorf("ParseSeverity(%q) = %d, want %d", tt.name, got, tt.want)
		}
	}
}
