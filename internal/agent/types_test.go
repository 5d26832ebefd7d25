package agent_test

import (
	"context"
	"errors"
	"testing"

	"resume-optimizer/internal/agent"
)

type mockTool struct {
	name        string
	description string
	params      map[string]interface{}
	exec        func(ctx context.Context, args map[string]interface{}) (interface{}, error)
}

func (m *mockTool) Name() string                       { return m.name }
func (m *mockTool) Description() string                { return m.description }
func (m *mockTool) Parameters() map[string]interface{} { return m.params }
func (m *mockTool) Execute(ctx context.Context, args map[string]interface{}) (interface{}, error) {
	if m.exec != nil {
		return m.exec(ctx, args)
	}
	return nil, nil
}

var searchSchema = map[string]interface{}{
	"type": "object",
	"properties": map[string]interface{}{
		"query": map[string]interface{}{"type": "string", "minLength": 1},
		"top_k": map[string]interface{}{"type": "integer", "minimum": 1, "maximum": 10},
	},
	"required": []interface{}{"query"},
}

func TestToolRegistry(t *testing.T) {
	registry := agent.NewToolRegistry()

	tool1 := &mockTool{name: "tool1", description: "desc1", params: nil}
	tool2 := &mockTool{name: "tool2", description: "desc2", params: searchSchema}

	registry.MustRegister(tool2, tool1)

	t.Run("Get existing tool", func(t *testing.T) {
		got, ok := registry.Get("tool1")
		if !ok || got.Name() != "tool1" {
			t.Errorf("expected tool1 to be found")
		}
	})

	t.Run("Get non-existing tool", func(t *testing.T) {
		_, ok := registry.Get("missing")
		if ok {
			t.Errorf("expected 'missing' tool to not be found")
		}
	})

	t.Run("List tools sorted", func(t *testing.T) {
		tools := registry.List()
		if len(tools) != 2 {
			t.Fatalf("expected 2 tools, got %d", len(tools))
		}
		if tools[0].Name() != "tool1" || tools[1].Name() != "tool2" {
			t.Errorf("expected sorted order, got %s, %s", tools[0].Name(), tools[1].Name())
		}
	})

	t.Run("ToFunctionDefinitions", func(t *testing.T) {
		defs := registry.ToFunctionDefinitions()
		if len(defs) != 2 {
			t.Fatalf("expected 2 tools, got %d", len(defs))
		}
		if defs[1].Name != "tool2" || defs[1].Parameters["type"] != "object" {
			t.Errorf("unexpected definition: %+v", defs[1])
		}
	})

	t.Run("Duplicate registration", func(t *testing.T) {
		err := registry.Register(&mockTool{name: "tool1"})
		if !errors.Is(err, agent.ErrDuplicateTool) {
			t.Errorf("expected ErrDuplicateTool, got %v", err)
		}
	})

	t.Run("Empty name", func(t *testing.T) {
		err := registry.Register(&mockTool{name: "  "})
		if !errors.Is(err, agent.ErrInvalidTool) {
			t.Errorf("expected ErrInvalidTool, got %v", err)
		}
	})

	t.Run("Broken schema", func(t *testing.T) {
		err := registry.Register(&mockTool{name: "broken", params: map[string]interface{}{"type": 42}})
		if !errors.Is(err, agent.ErrInvalidTool) {
			t.Errorf("expected ErrInvalidTool, got %v", err)
		}
	})
}

func TestToolRegistry_Validate(t *testing.T) {
	registry := agent.NewToolRegistry()
	registry.MustRegister(&mockTool{name: "web_search", params: searchSchema})

	tests := []struct {
		name    string
		tool    string
		args    map[string]interface{}
		wantErr error
	}{
		{name: "valid", tool: "web_search", args: map[string]interface{}{"query": "nlp keywords", "top_k": 3}},
		{name: "missing required", tool: "web_search", args: map[string]interface{}{}, wantErr: agent.ErrInvalidArguments},
		{name: "nil args", tool: "web_search", args: nil, wantErr: agent.ErrInvalidArguments},
		{name: "out of range", tool: "web_search", args: map[string]interface{}{"query": "x", "top_k": 50}, wantErr: agent.ErrInvalidArguments},
		{name: "wrong type", tool: "web_search", args: map[string]interface{}{"query": 7}, wantErr: agent.ErrInvalidArguments},
		{name: "unknown tool", tool: "delete_everything", args: nil, wantErr: agent.ErrUnknownTool},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := registry.Validate(tt.tool, tt.args)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}
