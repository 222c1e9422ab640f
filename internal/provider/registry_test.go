package provider

import (
	"context"
	"testing"
)

type stubGenerator struct {
	name string
}

func (s stubGenerator) Name() string { return s.name }

func (s stubGenerator) Generate(ctx context.Context, systemPrompt, userMessage string) (string, error) {
	return "", nil
}

func TestRegistryResolve(t *testing.T) {
	t.Parallel()

	registry := NewRegistry()
	registry.Register(stubGenerator{name: "anthropic"})
	registry.Register(stubGenerator{name: "openai"})

	generator, err := registry.Resolve("openai")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if generator.Name() != "openai" {
		t.Fatalf("resolved %q", generator.Name())
	}

	if _, err := registry.Resolve("mistral"); err == nil {
		t.Fatal("unregistered provider should not resolve")
	}
}

func TestRegistryRegisterReplaces(t *testing.T) {
	t.Parallel()

	registry := NewRegistry()
	first := stubGenerator{name: "anthropic"}
	registry.Register(first)
	registry.Register(stubGenerator{name: "anthropic"})

	generator, err := registry.Resolve("anthropic")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if generator.Name() != "anthropic" {
		t.Fatalf("resolved %q", generator.Name())
	}
}
