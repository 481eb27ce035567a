package ingest

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func TestReadAllReportsProgress(t *testing.T) {
	data := strings.Repeat("x", 1000)
	rd := NewReader(100)

	var fracs []float64
	got, err := rd.ReadAll(context.Background(), strings.NewReader(data), int64(len(data)), func(f float64) {
		fracs = append(fracs, f)
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(got) != data {
		t.Fatal("bytes lost or reordered")
	}
	if len(fracs) == 0 || fracs[len(fracs)-1] != 1 {
		t.Fatalf("final progress must be 1, got %v", fracs)
	}
	for i := 1; i < len(fracs); i++ {
		if fracs[i] < fracs[i-1] {
			t.Fatalf("progress went backwards: %v", fracs)
		}
	}
	for _, f := range fracs {
		if f < 0 || f > 1 {
			t.Fatalf("fraction out of range: %v", f)
		}
	}
}

func TestReadAllUnknownSizeStillCompletes(t *testing.T) {
	rd := NewReader(8)
	var fracs []float64
	got, err := rd.ReadAll(context.Background(), bytes.NewReader([]byte("abcdef")), 0, func(f float64) {
		fracs = append(fracs, f)
	})
	if err != nil || string(got) != "abcdef" {
		t.Fatalf("got %q, err %v", got, err)
	}
	if len(fracs) != 1 || fracs[0] != 1 {
		t.Fatalf("unknown size should only report completion, got %v", fracs)
	}
}

func TestReadAllCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	rd := NewReader(4)
	if _, err := rd.ReadAll(ctx, strings.NewReader("data"), 4, nil); err == nil {
		t.Fatal("expected context error")
	}
}
