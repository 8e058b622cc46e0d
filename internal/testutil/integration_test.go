package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSnapshotBuiltInBoard(t *testing.T) {
	bin := BuildBinary(t)
	output := RunSnapshot(t, bin, "-snapshot", "-width", "60", "-height", "12")
	for _, want := range []string{"Home", "Inbox", "Projects", "Archive", "type to filter)"} {
		if !strings.Contains(output, want) {
			t.Fatalf("expected %q in snapshot:\n%s", want, output)
		}
	}
}

func TestSnapshotCatalogPage(t *testing.T) {
	bin := BuildBinary(t)
	path := filepath.Join(t.TempDir(), "board.yaml")
	catalog := "pages:\n" +
		"  - id: main\n    title: Main\n    entries:\n      - {id: todo, label: Todo, target: todo}\n" +
		"  - id: todo\n    title: Todo list\n    entries:\n      - {id: milk, label: Buy milk, detail: today}\n"
	if err := os.WriteFile(path, []byte(catalog), 0o644); err != nil {
		t.Fatalf("write catalog: %v", err)
	}
	output := RunSnapshot(t, bin, "-snapshot", "-catalog", path, "-page", "todo", "-transition", "scheduled")
	if !strings.Contains(output, "Todo list") || !strings.Contains(output, "Buy milk") {
		t.Fatalf("expected todo page in snapshot:\n%s", output)
	}
	if strings.Contains(output, "Main") {
		t.Fatalf("expected only the requested page:\n%s", output)
	}
}
