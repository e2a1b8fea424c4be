package domain

import "testing"

func TestParseDefectStatus(t *testing.T) {
	tests := []struct {
		raw     string
		want    DefectStatus
		wantErr bool
	}{
		{"NEW", DefectStatusNew, false},
		{"OPEN", DefectStatusOpen, false},
		{"IN_PROGRESS", DefectStatusInProgress, false},
		{"UNDER_REVIEW", DefectStatusUnderReview, false},
		{"CLOSED", DefectStatusClosed, false},
		{"new", "", true},
		{"DONE", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := ParseDefectStatus(tt.raw)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseDefectStatus(%q) error = %v, wantErr %v", tt.raw, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseDefectStatus(%q) = %v, want %v", tt.raw, got, tt.want)
			}
		})
	}
}

func TestParseDefectPriority(t *testing.T) {
	tests := []struct {
		raw     string
		want    DefectPriority
		wantErr bool
	}{
		{"LOW", DefectPriorityLow, false},
		{"MEDIUM", DefectPriorityMedium, false},
		{"HIGH", DefectPriorityHigh, false},
		{"CRITICAL", DefectPriorityCritical, false},
		{"URGENT", "", true},
		{"medium", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := ParseDefectPriority(tt.raw)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseDefectPriority(%q) error = %v, wantErr %v", tt.raw, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseDefectPriority(%q) = %v, want %v", tt.raw, got, tt.want)
			}
		})
	}
}

func TestDisplayLabels(t *testing.T) {
	if got := DefectStatusInProgress.DisplayLabel(); got != "In progress" {
		t.Errorf("status label = %q", got)
	}
	if got := DefectStatusUnderReview.DisplayLabel(); got != "Under review" {
		t.Errorf("status label = %q", got)
	}
	if got := DefectPriorityCritical.DisplayLabel(); got != "Critical" {
		t.Errorf("priority label = %q", got)
	}
	// Unknown values render as-is rather than vanishing.
	if got := DefectStatus("ARCHIVED").DisplayLabel(); got != "ARCHIVED" {
		t.Errorf("unknown status label = %q", got)
	}
}

func TestHasPhoto(t *testing.T) {
	defect := &Defect{}
	if defect.HasPhoto() {
		t.Error("empty photo slot reported as occupied")
	}
	defect.Photo = []byte{0xff, 0xd8}
	if !defect.HasPhoto() {
		t.Error("photo slot reported as empty")
	}
}
