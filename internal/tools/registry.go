package tools

import (
	"context"
	"fmt"
	"sync"

	"github.com/cloudwego/eino/components/tool"
	"github.com/cloudwego/eino/schema"
)

// Tool represents an executable tool.
// Eino tools implement ToolInfo + InvokableRun.
type Tool interface {
	Info(ctx context.Context) (*schema.ToolInfo, error)
	InvokableRun(ctx context.Context, args string, opts ...tool.Option) (string, error)
}

// GuardAction is the guard's decision for one tool invocation.
type GuardAction string

const (
	GuardAllow GuardAction = "allow"
	GuardDeny  GuardAction = "deny"
)

// GuardResult is returned by the guard hook before a tool runs.
type GuardResult struct {
	Action  GuardAction
	Message string
}

// GuardFunc inspects a pending invocation and may refuse it.
type GuardFunc func(ctx context.Context, name, argsJSON string) (GuardResult, error)

// Registry manages tools by name.
type Registry struct {
	mu    sync.RWMutex
	tools map[string]Tool
	guard GuardFunc
}

// NewRegistry creates a new registry.
func NewRegistry() *Registry {
	return &Registry{tools: make(map[string]Tool)}
}

// Register adds a tool to registry.
func (r *Registry) Register(tool Tool) error {
	info, err := tool.Info(context.Background())
	if err != nil {
		return err
	}
	if info == nil || info.Name == "" {
		return fmt.Errorf("tool info missing name")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.tools[info.Name]; exists {
		return fmt.Errorf("tool already registered: %s", info.Name)
	}
	r.tools[info.Name] = tool
	return nil
}

// SetGuard installs the hook consulted before every Execute.
func (r *Registry) SetGuard(guard GuardFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.guard = guard
}

// Get retrieves a tool by name.
func (r *Registry) Get(name string) (Tool, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tool, ok := r.tools[name]
	return tool, ok
}

// List returns all tools.
func (r *Registry) List() []Tool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]Tool, 0, len(r.tools))
	for _, tool := range r.tools {
		result = append(result, tool)
	}
	return result
}

// Names returns the registered tool names.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.tools))
	for name := range r.tools {
		names = append(names, name)
	}
	return names
}

// GetToolInfos collects schema infos for binding to a tool-calling layer.
func (r *Registry) GetToolInfos(ctx context.Context) ([]*schema.ToolInfo, error) {
	infos := make([]*schema.ToolInfo, 0, len(r.List()))
	for _, tool := range r.List() {
		info, err := tool.Info(ctx)
		if err != nil {
			return nil, err
		}
		infos = append(infos, info)
	}
	return infos, nil
}

// Execute runs a registered tool after consulting the guard. A guard denial
// surfaces as an error before the tool runs.
func (r *Registry) Execute(ctx context.Context, name, argsJSON string) (string, error) {
	tool, ok := r.Get(name)
	if !ok {
		return "", fmt.Errorf("unknown tool: %s", name)
	}

	r.mu.RLock()
	guard := r.guard
	r.mu.RUnlock()

	if guard != nil {
		result, err := guard(ctx, name, argsJSON)
		if err != nil {
			return "", err
		}
		if result.Action == GuardDeny {
			msg := result.Message
			if msg == "" {
				msg = "blocked by guard"
			}
			return "", fmt.Errorf("tool %s denied: %s", name, msg)
		}
	}

	return tool.InvokableRun(ctx, argsJSON)
}
