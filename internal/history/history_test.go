package history

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestAppendAndRead(t *testing.T) {
	store, err := NewStore(filepath.Join(t.TempDir(), "logs", "memory.md"))
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}

	if err := store.Append("잔액 알려줘", "현재 잔액은 1,000,000원입니다."); err != nil {
		t.Fatalf("Append: %v", err)
	}
	if err := store.Append("고마워", "별말씀을요!"); err != nil {
		t.Fatalf("Append: %v", err)
	}

	text, err := store.Read()
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if !strings.Contains(text, "잔액 알려줘") || !strings.Contains(text, "별말씀을요!") {
		t.Fatalf("history missing appended turns: %q", text)
	}
}

func TestReadMissingFile(t *testing.T) {
	store, err := NewStore(filepath.Join(t.TempDir(), "memory.md"))
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}

	text, err := store.Read()
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if text != "" {
		t.Fatalf("expected empty history, got %q", text)
	}
}
