package tools

import (
	"context"
	"testing"
)

func TestRegistry_RegisterAndGet(t *testing.T) {
	reg := NewRegistry()
	if err := reg.Register(&countingTool{}); err != nil {
		t.Fatalf("Register error: %v", err)
	}

	if _, ok := reg.Get("guarded_tool"); !ok {
		t.Fatal("expected registered tool to be retrievable")
	}
	if _, ok := reg.Get("missing"); ok {
		t.Fatal("expected missing tool to be absent")
	}
}

func TestRegistry_RegisterDuplicateFails(t *testing.T) {
	reg := NewRegistry()
	if err := reg.Register(&countingTool{}); err != nil {
		t.Fatalf("Register error: %v", err)
	}
	if err := reg.Register(&countingTool{}); err == nil {
		t.Fatal("expected duplicate registration to fail")
	}
}

func TestRegistry_NamesAndInfos(t *testing.T) {
	reg := NewRegistry()
	if err := reg.Register(&countingTool{}); err != nil {
		t.Fatalf("Register error: %v", err)
	}

	names := reg.Names()
	if len(names) != 1 || names[0] != "guarded_tool" {
		t.Fatalf("unexpected names: %v", names)
	}

	infos, err := reg.GetToolInfos(context.Background())
	if err != nil {
		t.Fatalf("GetToolInfos error: %v", err)
	}
	if len(infos) != 1 || infos[0].Name != "guarded_tool" {
		t.Fatalf("unexpected infos: %+v", infos)
	}
}
