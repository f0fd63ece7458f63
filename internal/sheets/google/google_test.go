package google

import (
	"context"
	"testing"
	"time"

	"inventory/internal/core"
	"inventory/internal/sheets"
)

func TestNew_MissingSpreadsheetID(t *testing.T) {
	_, err := New(context.Background(), Options{})
	if err == nil {
		t.Fatal("expected error for missing spreadsheet id")
	}
	if err.Error() != "missing spreadsheet id" {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestNew_MissingCredentials(t *testing.T) {
	_, err := New(context.Background(), Options{SpreadsheetID: "abc"})
	if err == nil {
		t.Fatal("expected error for missing oauth client")
	}

	_, err = New(context.Background(), Options{
		SpreadsheetID: "abc",
		ClientJSON:    `{"installed":{}}`,
	})
	if err == nil {
		t.Fatal("expected error for missing oauth token")
	}
}

func TestExportCells(t *testing.T) {
	now := time.Date(2024, 3, 5, 10, 30, 0, 0, time.UTC)
	row := sheets.RowForExpense(core.Expense{
		ExpenseID: "e-1",
		Category:  "Fuel",
		Amount:    core.Num(150),
	})

	cells := exportCells(row, now)

	if len(cells) != 6 {
		t.Fatalf("cells = %v", cells)
	}
	if cells[0] != "expenses" || cells[1] != "e-1" || cells[2] != "2024-03-05 10:30:00" {
		t.Fatalf("prefix cells = %v", cells[:3])
	}
	if cells[3] != "Fuel" || cells[4] != 150.0 {
		t.Fatalf("record cells = %v", cells[3:])
	}
}

func TestRowRange(t *testing.T) {
	tests := []struct {
		row   int
		width int
		want  string
	}{
		{1, 1, "Records!A1:A1"},
		{5, 6, "Records!A5:F5"},
		{12, 26, "Records!A12:Z12"},
		{12, 27, "Records!A12:AA12"},
		{3, 0, "Records!A3:A3"},
	}

	for _, tt := range tests {
		if got := rowRange("Records", tt.row, tt.width); got != tt.want {
			t.Errorf("rowRange(%d, %d) = %q, want %q", tt.row, tt.width, got, tt.want)
		}
	}
}
