package shift

import (
	"strings"
	"testing"
)

func TestChunkLinesShortText(t *testing.T) {
	chunks := ChunkLines("привет\nмир", 100)
	if len(chunks) != 1 || chunks[0] != "привет\nмир" {
		t.Fatalf("chunks = %q", chunks)
	}
}

func TestChunkLinesSplitsOnLineBoundary(t *testing.T) {
	var lines []string
	for i := 0; i < 10; i++ {
		lines = append(lines, strings.Repeat("с", 30))
	}
	text := strings.Join(lines, "\n")

	chunks := ChunkLines(text, 100)
	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks, got %d", len(chunks))
	}
	for i, c := range chunks {
		if n := len([]rune(c)); n > 100 {
			t.Errorf("chunk %d has %d runes, limit 100", i, n)
		}
		// Записи не рвутся: каждая строка куска — целая исходная запись.
		for _, l := range strings.Split(c, "\n") {
			if len([]rune(l)) != 30 {
				t.Errorf("chunk %d contains partial record %q", i, l)
			}
		}
	}
}

func TestChunkLinesOversizedRecord(t *testing.T) {
	text := strings.Repeat("в", 250)
	chunks := ChunkLines(text, 100)
	if len(chunks) != 3 {
		t.Fatalf("chunks = %d, want 3", len(chunks))
	}
	total := 0
	for i, c := range chunks {
		n := len([]rune(c))
		if n > 100 {
			t.Errorf("chunk %d has %d runes, limit 100", i, n)
		}
		total += n
	}
	if total != 250 {
		t.Fatalf("total runes = %d, want 250", total)
	}
}

func TestChunkLinesPreservesContent(t *testing.T) {
	var lines []string
	for i := 0; i < 50; i++ {
		lines = append(lines, strings.Repeat("С", 20))
	}
	text := strings.Join(lines, "\n")

	chunks := ChunkLines(text, 64)
	joined := strings.Join(chunks, "\n")
	if strings.ReplaceAll(joined, "\n", "") != strings.ReplaceAll(text, "\n", "") {
		t.Fatal("chunking lost content")
	}
}
