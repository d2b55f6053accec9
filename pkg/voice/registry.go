// Package voice maps spoken-command transcripts to handlers. The registry is
// an injected dependency, constructed in main and passed to the API layer;
// there is no global instance.
package voice

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Handler executes a command. The transcript is the full recognized phrase.
type Handler func(ctx context.Context, transcript string) (string, error)

// Command is one registered voice command.
type Command struct {
	Name    string
	Phrases []string
	Handler Handler
}

// Registry holds registered commands and dispatches transcripts to them.
type Registry struct {
	mu       sync.RWMutex
	commands map[string]*Command
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{commands: make(map[string]*Command)}
}

// Register adds a command. Phrases are matched case-insensitively.
func (r *Registry) Register(name string, phrases []string, h Handler) error {
	if name == "" {
		return fmt.Errorf("command name must not be empty")
	}
	if len(phrases) == 0 {
		return fmt.Errorf("command %q needs at least one phrase", name)
	}
	if h == nil {
		return fmt.Errorf("command %q needs a handler", name)
	}

	lowered := make([]string, len(phrases))
	for i, p := range phrases {
		lowered[i] = strings.ToLower(strings.TrimSpace(p))
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.commands[name]; exists {
		return fmt.Errorf("command %q already registered", name)
	}
	r.commands[name] = &Command{Name: name, Phrases: lowered, Handler: h}
	return nil
}

// Commands returns the registered command names, sorted.
func (r *Registry) Commands() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.commands))
	for name := range r.commands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Dispatch finds the command whose phrase best matches the transcript and
// runs it. A phrase matches when the transcript contains it; when several
// commands match, the longest phrase wins (more specific beats generic).
func (r *Registry) Dispatch(ctx context.Context, transcript string) (string, error) {
	needle := strings.ToLower(strings.TrimSpace(transcript))
	if needle == "" {
		return "", fmt.Errorf("empty transcript")
	}

	r.mu.RLock()
	var best *Command
	bestLen := 0
	for _, cmd := range r.commands {
		for _, phrase := range cmd.Phrases {
			if strings.Contains(needle, phrase) && len(phrase) > bestLen {
				best = cmd
				bestLen = len(phrase)
			}
		}
	}
	r.mu.RUnlock()

	if best == nil {
		return "", fmt.Errorf("no command matches %q", transcript)
	}
	return best.Handler(ctx, transcript)
}
