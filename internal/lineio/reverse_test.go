package lineio

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func writeTempFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "lines.txt")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}
	return path
}

func TestReverseReader_ReadLine(t *testing.T) {
	content := "first\nsecond\nthird\n"
	rr := NewReverseReader(strings.NewReader(content), int64(len(content)))

	var got []string
	for {
		line, err := rr.ReadLine()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			t.Fatalf("ReadLine failed: %v", err)
		}
		got = append(got, line)
	}

	want := []string{"third", "second", "first"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("lines = %v, want %v", got, want)
	}
}

func TestReverseReader_SmallChunks(t *testing.T) {
	// Chunk size of 1 forces every line across chunk boundaries.
	content := "alpha\nbeta\ngamma"
	rr := NewReverseReader(strings.NewReader(content), int64(len(content)))
	rr.SetChunkSize(1)

	var got []string
	for {
		line, err := rr.ReadLine()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			t.Fatalf("ReadLine failed: %v", err)
		}
		got = append(got, line)
	}

	want := []string{"gamma", "beta", "alpha"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("lines = %v, want %v", got, want)
	}
}

func TestReverseReader_MultibyteAcrossChunks(t *testing.T) {
	// Multi-byte UTF-8 content with a chunk size that lands mid-rune.
	content := "Jurídico\nBeneficiário\n日本語テキスト\n"
	rr := NewReverseReader(strings.NewReader(content), int64(len(content)))
	rr.SetChunkSize(3)

	var got []string
	for {
		line, err := rr.ReadLine()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			t.Fatalf("ReadLine failed: %v", err)
		}
		got = append(got, line)
	}

	want := []string{"日本語テキスト", "Beneficiário", "Jurídico"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("lines = %v, want %v", got, want)
	}
}

func TestReverseReader_CRLFAndBlankLines(t *testing.T) {
	content := "one\r\n\ntwo\r\nthree"
	rr := NewReverseReader(strings.NewReader(content), int64(len(content)))

	var got []string
	for {
		line, err := rr.ReadLine()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			t.Fatalf("ReadLine failed: %v", err)
		}
		got = append(got, line)
	}

	want := []string{"three", "two", "one"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("lines = %v, want %v", got, want)
	}
}

func TestReverseFileLines(t *testing.T) {
	path := writeTempFile(t, "a\nb\nc\n")

	lines, err := ReverseFileLines(path)
	if err != nil {
		t.Fatalf("ReverseFileLines failed: %v", err)
	}

	want := []string{"c", "b", "a"}
	if !reflect.DeepEqual(lines, want) {
		t.Errorf("lines = %v, want %v", lines, want)
	}
}

func TestReverseFileLines_Empty(t *testing.T) {
	path := writeTempFile(t, "")

	lines, err := ReverseFileLines(path)
	if err != nil {
		t.Fatalf("ReverseFileLines failed: %v", err)
	}
	if len(lines) != 0 {
		t.Errorf("expected no lines, got %v", lines)
	}
}

func TestLastLines(t *testing.T) {
	path := writeTempFile(t, "a\nb\nc\nd\ne\n")

	tests := []struct {
		name string
		n    int
		want []string
	}{
		{name: "subset", n: 2, want: []string{"d", "e"}},
		{name: "all", n: 5, want: []string{"a", "b", "c", "d", "e"}},
		{name: "more than available", n: 10, want: []string{"a", "b", "c", "d", "e"}},
		{name: "zero", n: 0, want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lines, err := LastLines(path, tt.n)
			if err != nil {
				t.Fatalf("LastLines failed: %v", err)
			}
			if len(lines) == 0 && len(tt.want) == 0 {
				return
			}
			if !reflect.DeepEqual(lines, tt.want) {
				t.Errorf("lines = %v, want %v", lines, tt.want)
			}
		})
	}
}

func TestLastLines_NegativeCount(t *testing.T) {
	path := writeTempFile(t, "a\n")

	if _, err := LastLines(path, -1); err == nil {
		t.Error("expected an error for a negative line count")
	}
}

func TestLastLines_MissingFile(t *testing.T) {
	if _, err := LastLines(filepath.Join(t.TempDir(), "missing.txt"), 3); err == nil {
		t.Error("expected an error for a missing file")
	}
}
