package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"testing"
	"time"

	"github.com/spec-kit/defect-service/internal/domain"
	apperrors "github.com/spec-kit/defect-service/pkg/util"
)

func TestWriteProjectDefectsCSV(t *testing.T) {
	f := newFixture()
	due := time.Date(2026, 11, 5, 0, 0, 0, 0, time.UTC)
	priority := domain.DefectPriorityHigh
	mustCreate(t, f, manager, DefectCreateInput{
		ObjectID: 10,
		Title:    "Cracked beam",
		Priority: &priority,
		DueDate:  &due,
	})

	report := NewReportService(f.projects, f.objects, f.defects)

	var buf bytes.Buffer
	if err := report.WriteProjectDefectsCSV(context.Background(), 100, &buf); err != nil {
		t.Fatalf("WriteProjectDefectsCSV: %v", err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("parse csv: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("rows = %d, want header + 1 defect", len(records))
	}
	if records[0][0] != "defect_id" || records[0][3] != "status" {
		t.Errorf("header = %v", records[0])
	}

	row := records[1]
	if row[1] != "Tower A" || row[2] != "Cracked beam" {
		t.Errorf("row = %v", row)
	}
	if row[3] != "New" || row[4] != "High" {
		t.Errorf("status/priority must render as labels, got %q/%q", row[3], row[4])
	}
	if row[5] != "2026-11-05" {
		t.Errorf("due date = %q", row[5])
	}
}

func TestWriteProjectDefectsCSVUnknownProject(t *testing.T) {
	f := newFixture()
	report := NewReportService(f.projects, f.objects, f.defects)

	err := report.WriteProjectDefectsCSV(context.Background(), 404, &bytes.Buffer{})
	if !apperrors.IsNotFound(err) {
		t.Fatalf("expected NOT_FOUND, got %v", err)
	}
}
