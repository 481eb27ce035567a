package csvio

import (
	"strings"
	"testing"

	"github.com/adsdash/adsdash/internal/models"
)

func TestParseHeaderKeyedRows(t *testing.T) {
	in := "date,campaign,spend\n2025-01-01,A,100\n2025-01-02,B,50\n"
	rows, headers, err := Parse(strings.NewReader(in))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(headers) != 3 || headers[1] != "campaign" {
		t.Fatalf("headers: %v", headers)
	}
	if len(rows) != 2 || rows[0]["spend"] != "100" || rows[1]["campaign"] != "B" {
		t.Fatalf("rows: %v", rows)
	}
}

func TestParseSkipsEmptyLinesAndPadsShortRecords(t *testing.T) {
	in := "date,campaign,spend\n2025-01-01,A\n\n,,\n2025-01-02,B,50\n"
	rows, _, err := Parse(strings.NewReader(in))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if v, ok := rows[0]["spend"]; !ok || v != "" {
		t.Fatalf("short record not padded: %v", rows[0])
	}
}

func TestParseQuotedValues(t *testing.T) {
	in := "date,campaign\n2025-01-01,\"Brand, Awareness\"\n"
	rows, _, err := Parse(strings.NewReader(in))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rows[0]["campaign"] != "Brand, Awareness" {
		t.Fatalf("quote handling wrong: %q", rows[0]["campaign"])
	}
}

func TestParseStructuralErrorAbortsWholeParse(t *testing.T) {
	in := "date,campaign\n2025-01-01,\"broken\n"
	rows, _, err := Parse(strings.NewReader(in))
	if err == nil {
		t.Fatal("expected a structural error")
	}
	if rows != nil {
		t.Fatalf("no partial rows on structural error, got %d", len(rows))
	}
}

func TestParseEmptyInput(t *testing.T) {
	if _, _, err := Parse(strings.NewReader("")); err != ErrNoHeader {
		t.Fatalf("expected ErrNoHeader, got %v", err)
	}
}

func TestUnparseShapeAndEscaping(t *testing.T) {
	rows := []models.NormalizedRow{
		{Date: "2025-01-01", Campaign: "Brand, Awareness", Adset: "S1", Ad: "X", Spend: 10.5, Impressions: 1000, Clicks: 3, Conversions: 1, Revenue: 20},
	}
	b, err := Unparse(rows)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out := string(b)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if lines[0] != "date,campaign,adset,ad,spend,impressions,clicks,conversions,revenue" {
		t.Fatalf("header: %q", lines[0])
	}
	if !strings.Contains(lines[1], `"Brand, Awareness"`) {
		t.Fatalf("comma value not escaped: %q", lines[1])
	}
	if !strings.Contains(lines[1], "10.5") {
		t.Fatalf("numeric formatting wrong: %q", lines[1])
	}
}

func TestParseUnparseRoundTrip(t *testing.T) {
	rows := []models.NormalizedRow{
		{Date: "2025-01-01", Campaign: "A", Adset: "S", Ad: "X", Spend: 1, Impressions: 2, Clicks: 3, Conversions: 4, Revenue: 5},
	}
	b, err := Unparse(rows)
	if err != nil {
		t.Fatalf("unparse: %v", err)
	}
	raw, headers, err := Parse(strings.NewReader(string(b)))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(headers) != 9 || len(raw) != 1 || raw[0]["revenue"] != "5" {
		t.Fatalf("round trip lost data: %v", raw)
	}
}
