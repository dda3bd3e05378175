package audit

import (
	"bufio"
	"encoding/json"
	"os"
	"strings"
	"sync"
	"testing"
	"time"
)

func TestWriter_AppendsJSONLines(t *testing.T) {
	workspace := t.TempDir()
	w := NewWriter(workspace)

	events := []Event{
		{Time: time.Now().UTC(), Type: TypePolicyAllow, Command: "ls -la", Result: "allow"},
		{Time: time.Now().UTC(), Type: TypeExecFinish, Command: "ls -la", Result: "success", RequestID: "req-1"},
	}
	for _, ev := range events {
		if err := w.Append(ev); err != nil {
			t.Fatalf("Append error: %v", err)
		}
	}

	file, err := os.Open(w.Path())
	if err != nil {
		t.Fatalf("open audit file: %v", err)
	}
	defer file.Close()

	var lines []Event
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		var ev Event
		if err := json.Unmarshal(scanner.Bytes(), &ev); err != nil {
			t.Fatalf("line is not valid JSON: %v", err)
		}
		lines = append(lines, ev)
	}
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	if lines[0].Type != TypePolicyAllow || lines[1].RequestID != "req-1" {
		t.Fatalf("unexpected events: %+v", lines)
	}
	if !strings.HasSuffix(w.Path(), "audit.jsonl") {
		t.Fatalf("unexpected audit path: %s", w.Path())
	}
}

func TestWriter_ConcurrentAppends(t *testing.T) {
	w := NewWriter(t.TempDir())

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = w.Append(Event{Time: time.Now().UTC(), Type: TypePolicyAllow})
		}()
	}
	wg.Wait()

	data, err := os.ReadFile(w.Path())
	if err != nil {
		t.Fatalf("read audit file: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 8 {
		t.Fatalf("expected 8 lines, got %d", len(lines))
	}
}
