// Package policy guards command execution with a persistent set of blocked
// base commands. The base command is the first whitespace-delimited token of
// a command line, lowercased; arguments never take part in the decision.
//
// Persistence is best-effort: a missing or corrupt store yields an empty set
// and failed writes are logged, so a broken configuration never prevents the
// manager from starting.
package policy

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"github.com/viant/commander/logger"
	"github.com/viant/commander/service/dao/blocklist"
)

// Policy holds the blocked command set
type Policy struct {
	store   blocklist.Store
	logger  logger.Logger
	seed    []string
	blocked map[string]struct{}
	mux     sync.RWMutex
}

// Normalize lowercases and trims a command token
func Normalize(command string) string {
	return strings.ToLower(strings.TrimSpace(command))
}

// BaseCommand returns the normalized first token of a command line
func BaseCommand(commandLine string) string {
	fields := strings.Fields(commandLine)
	if len(fields) == 0 {
		return ""
	}
	return Normalize(fields[0])
}

// Load replaces the in-memory set with the persisted one. Any failure
// resets the set to empty. When nothing was persisted yet, the configured
// seed commands become the initial set and are written back.
func (p *Policy) Load(ctx context.Context) {
	document, err := p.store.Load(ctx)

	p.mux.Lock()
	defer p.mux.Unlock()
	p.blocked = map[string]struct{}{}
	switch {
	case errors.Is(err, blocklist.ErrNotFound):
		if len(p.seed) == 0 {
			return
		}
		for _, command := range p.seed {
			if token := Normalize(command); token != "" {
				p.blocked[token] = struct{}{}
			}
		}
		p.persist(ctx)
	case err != nil:
		p.logger.Error("failed to load blocked commands, using empty blocklist", err)
	default:
		for _, command := range document.BlockedCommands {
			if token := Normalize(command); token != "" {
				p.blocked[token] = struct{}{}
			}
		}
	}
}

// Validate returns false iff the base command of commandLine is blocked
func (p *Policy) Validate(commandLine string) bool {
	base := BaseCommand(commandLine)
	p.mux.RLock()
	defer p.mux.RUnlock()
	_, blocked := p.blocked[base]
	return !blocked
}

// Block adds a command; it returns false when the command was already blocked
func (p *Policy) Block(ctx context.Context, command string) bool {
	token := Normalize(command)
	if token == "" {
		return false
	}
	p.mux.Lock()
	defer p.mux.Unlock()
	if _, ok := p.blocked[token]; ok {
		return false
	}
	p.blocked[token] = struct{}{}
	p.persist(ctx)
	return true
}

// Unblock removes a command; it returns false when the command was not blocked
func (p *Policy) Unblock(ctx context.Context, command string) bool {
	token := Normalize(command)
	p.mux.Lock()
	defer p.mux.Unlock()
	if _, ok := p.blocked[token]; !ok {
		return false
	}
	delete(p.blocked, token)
	p.persist(ctx)
	return true
}

// List returns blocked commands in lexicographic order
func (p *Policy) List() []string {
	p.mux.RLock()
	defer p.mux.RUnlock()
	return p.sorted()
}

func (p *Policy) sorted() []string {
	ret := make([]string, 0, len(p.blocked))
	for token := range p.blocked {
		ret = append(ret, token)
	}
	sort.Strings(ret)
	return ret
}

// persist rewrites the store; the caller holds the write lock
func (p *Policy) persist(ctx context.Context) {
	if err := p.store.Save(ctx, &blocklist.Document{BlockedCommands: p.sorted()}); err != nil {
		p.logger.Error("failed to save blocked commands", err)
	}
}

// New creates a policy backed by store. The set is empty until Load is called.
func New(store blocklist.Store, options ...Option) *Policy {
	ret := &Policy{
		store:   store,
		logger:  logger.Nop(),
		blocked: map[string]struct{}{},
	}
	for _, option := range options {
		option(ret)
	}
	return ret
}

type ctxKeyT struct{}

var ctxKey ctxKeyT

// WithPolicy embeds policy in ctx.
func WithPolicy(ctx context.Context, p *Policy) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxKey, p)
}

// FromContext extracts the policy, nil when absent.
func FromContext(ctx context.Context) *Policy {
	if ctx == nil {
		return nil
	}
	if v, ok := ctx.Value(ctxKey).(*Policy); ok {
		return v
	}
	return nil
}
