package scan

import (
	"fmt"
	"reflect"
	"strings"
	"testing"
)

// eventLine renders one 10-field row whose values encode (row, column)
// as row*100+column, so tests can verify the exact column mapping after
// extraction without float comparison surprises.
func eventLine(row int) string {
	fields := make([]string, 10)
	fields[0] = fmt.Sprintf("%d", row+1) // event id
	for c := 1; c < 10; c++ {
		fields[c] = fmt.Sprintf("%d", row*100+c)
	}
	return strings.Join(fields, "  ")
}

// buildLog assembles a log with the given header lines and block sizes.
func buildLog(header []string, blockRows ...int) string {
	var b strings.Builder
	for _, h := range header {
		b.WriteString(h + "\n")
	}
	row := 0
	for _, n := range blockRows {
		b.WriteString("## start\n")
		for i := 0; i < n; i++ {
			b.WriteString(eventLine(row) + "\n")
			row++
		}
		b.WriteString("## stop\n")
	}
	return b.String()
}

func TestScan_MatchedPairs(t *testing.T) {
	content := buildLog([]string{"preamble 1", "preamble 2"}, 3, 5)

	res, err := Scan(strings.NewReader(content), "##")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if len(res.Blocks) != 2 {
		t.Fatalf("Expected 2 blocks, got %d", len(res.Blocks))
	}
	if res.Truncated {
		t.Error("Expected no truncation flag")
	}

	b0 := res.Blocks[0]
	if b0.StartLine != 3 || b0.StopLine != 7 {
		t.Errorf("Block 0 lines = (%d, %d), want (3, 7)", b0.StartLine, b0.StopLine)
	}
	if b0.Length() != 3 {
		t.Errorf("Block 0 length = %d, want 3", b0.Length())
	}
	if res.Blocks[1].Length() != 5 {
		t.Errorf("Block 1 length = %d, want 5", res.Blocks[1].Length())
	}

	// Offsets bookmark the byte right after each sentinel line.
	wantStart := int64(len("preamble 1\npreamble 2\n## start\n"))
	if b0.StartOffset != wantStart {
		t.Errorf("Block 0 start offset = %d, want %d", b0.StartOffset, wantStart)
	}
}

func TestScan_Deterministic(t *testing.T) {
	content := buildLog([]string{"h"}, 2, 4, 1)

	first, err := Scan(strings.NewReader(content), "##")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	second, err := Scan(strings.NewReader(content), "##")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Errorf("Scan is not deterministic: %+v vs %+v", first, second)
	}
}

func TestScan_OddSentinelCount(t *testing.T) {
	// A complete block followed by a dangling start sentinel.
	content := buildLog(nil, 2) + "## start\n" + eventLine(2) + "\n"

	res, err := Scan(strings.NewReader(content), "##")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if !res.Truncated {
		t.Error("Expected truncation flag for odd sentinel count")
	}
	if len(res.Blocks) != 1 {
		t.Errorf("Expected the even-paired prefix block, got %d blocks", len(res.Blocks))
	}
}

func TestScan_EmptyBlocksExcluded(t *testing.T) {
	// Second block has no rows between its sentinels.
	content := buildLog(nil, 3) + "## start\n## stop\n"

	res, err := Scan(strings.NewReader(content), "##")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if len(res.Blocks) != 2 {
		t.Fatalf("Expected 2 recorded blocks, got %d", len(res.Blocks))
	}
	valid := res.ValidBlocks()
	if len(valid) != 1 {
		t.Fatalf("Expected 1 valid block, got %d", len(valid))
	}
	if valid[0].Length() != 3 {
		t.Errorf("Valid block length = %d, want 3", valid[0].Length())
	}
}

func TestScan_NoBlocks(t *testing.T) {
	res, err := Scan(strings.NewReader("just text\nno sentinels here\n"), "##")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(res.ValidBlocks()) != 0 {
		t.Errorf("Expected no valid blocks, got %d", len(res.ValidBlocks()))
	}
}

func TestScan_NoTrailingNewline(t *testing.T) {
	content := "## start\n" + eventLine(0) + "\n## stop" // no final newline

	res, err := Scan(strings.NewReader(content), "##")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(res.Blocks) != 1 {
		t.Fatalf("Expected 1 block, got %d", len(res.Blocks))
	}
	if res.Blocks[0].Length() != 1 {
		t.Errorf("Block length = %d, want 1", res.Blocks[0].Length())
	}
}
