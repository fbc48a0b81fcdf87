package provider_test

import (
	"context"
	"testing"

	"github.com/kbukum/lightning-transcriber/provider"
)

type fakeProvider struct {
	name      string
	available bool
}

func (f *fakeProvider) Name() string                       { return f.name }
func (f *fakeProvider) IsAvailable(_ context.Context) bool { return f.available }

func TestRegistryCreate(t *testing.T) {
	reg := provider.NewRegistry[*fakeProvider]()
	reg.RegisterFactory("fake", func(cfg map[string]any) (*fakeProvider, error) {
		name, _ := cfg["name"].(string)
		return &fakeProvider{name: name, available: true}, nil
	})

	p, err := reg.Create("fake", map[string]any{"name": "engine-a"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Name() != "engine-a" {
		t.Fatalf("expected engine-a, got %s", p.Name())
	}
}

func TestRegistryCreateUnknown(t *testing.T) {
	reg := provider.NewRegistry[*fakeProvider]()
	if _, err := reg.Create("nope", nil); err == nil {
		t.Fatal("expected error for unregistered factory")
	}
}

func TestRegistryInstanceCache(t *testing.T) {
	reg := provider.NewRegistry[*fakeProvider]()
	inst := &fakeProvider{name: "cached"}
	reg.Set("cached", inst)

	got, ok := reg.Get("cached")
	if !ok {
		t.Fatal("expected cached instance")
	}
	if got != inst {
		t.Fatal("expected the same instance back")
	}
	if _, ok := reg.Get("missing"); ok {
		t.Fatal("unexpected instance for missing name")
	}
}

func TestRegistryList(t *testing.T) {
	reg := provider.NewRegistry[*fakeProvider]()
	reg.RegisterFactory("whisper", nil)
	reg.RegisterFactory("mlx", nil)

	names := reg.List()
	if len(names) != 2 || names[0] != "mlx" || names[1] != "whisper" {
		t.Fatalf("expected sorted [mlx whisper], got %v", names)
	}
}
