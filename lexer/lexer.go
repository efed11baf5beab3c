package lexer

import (
	"fmt"
	"time"

	"github.com/opal-lang/langkit/text"
)

// TelemetryMode controls production-safe token-count/timing collection,
// mirroring the zero-overhead-by-default pattern the rest of the corpus
// uses for its lexers.
type TelemetryMode int

const (
	TelemetryOff TelemetryMode = iota
	TelemetryBasic
	TelemetryTiming
)

// Option configures a Lexer at construction time.
type Option func(*Lexer)

// WithTelemetryBasic records per-type token counts only.
func WithTelemetryBasic() Option {
	return func(l *Lexer) { l.telemetryMode = TelemetryBasic }
}

// WithTelemetryTiming records per-type token counts and timing.
func WithTelemetryTiming() Option {
	return func(l *Lexer) { l.telemetryMode = TelemetryTiming }
}

// TokenTelemetry aggregates timing for one NodeType across a Lex call.
type TokenTelemetry struct {
	Type      NodeType
	Count     int
	TotalTime time.Duration
}

// Lexer interprets an ordered rule table per spec §4.2.
type Lexer struct {
	rules    []*Rule
	registry *Registry

	telemetryMode TelemetryMode
	telemetry     map[NodeType]*TokenTelemetry
}

// New compiles rules in declaration order and returns a Lexer. registry may
// be nil if no rule uses a custom function.
func New(rules []*Rule, registry *Registry, opts ...Option) (*Lexer, error) {
	for i, r := range rules {
		if err := r.Compile(); err != nil {
			return nil, fmt.Errorf("lexer: rule %d (%s): %w", i, r.Pattern, err)
		}
	}
	if registry == nil {
		registry = NewRegistry()
	}
	l := &Lexer{rules: rules, registry: registry}
	for _, opt := range opts {
		opt(l)
	}
	if l.telemetryMode > TelemetryOff {
		l.telemetry = make(map[NodeType]*TokenTelemetry)
	}
	return l, nil
}

// Telemetry returns a copy of the collected per-type stats, or nil if
// telemetry was not enabled.
func (l *Lexer) Telemetry() map[NodeType]*TokenTelemetry {
	if l.telemetry == nil {
		return nil
	}
	out := make(map[NodeType]*TokenTelemetry, len(l.telemetry))
	for k, v := range l.telemetry {
		cp := *v
		out[k] = &cp
	}
	return out
}

// NextToken attempts every rule, in declaration order, anchored at the
// start of remaining. The first rule whose regex matches wins; its
// CustomFn, if any, may then override the consumed length. An unmatched
// byte becomes a single-byte ERROR token.
func (l *Lexer) NextToken(remaining []byte) Token {
	for _, r := range l.rules {
		loc := r.re.FindIndex(remaining)
		if loc == nil || loc[0] != 0 {
			continue
		}
		length := loc[1]
		if r.CustomFn != "" {
			if fn, ok := l.registry.Lookup(r.CustomFn); ok {
				if n, ok2 := fn(remaining[length:]); ok2 {
					length += n
				}
			}
		}
		return Token{Type: r.Type, Length: text.Unit(length)}
	}
	return Token{Type: ErrorType, Length: 1}
}

// Lex repeatedly consumes remaining until it is empty. The returned
// vector's cumulative length always equals len(input).
func (l *Lexer) Lex(input []byte) []Token {
	var tokens []Token
	remaining := input
	for len(remaining) > 0 {
		var start time.Time
		if l.telemetryMode >= TelemetryTiming {
			start = time.Now()
		}
		tok := l.NextToken(remaining)
		if tok.Length == 0 {
			// A zero-length rule match would loop forever; treat it as an
			// ERROR byte so Lex always makes progress.
			tok = Token{Type: ErrorType, Length: 1}
		}
		l.recordTelemetry(tok.Type, start)
		tokens = append(tokens, tok)
		remaining = remaining[tok.Length:]
	}
	return tokens
}

func (l *Lexer) recordTelemetry(ty NodeType, start time.Time) {
	if l.telemetryMode == TelemetryOff {
		return
	}
	t, ok := l.telemetry[ty]
	if !ok {
		t = &TokenTelemetry{Type: ty}
		l.telemetry[ty] = t
	}
	t.Count++
	if l.telemetryMode >= TelemetryTiming {
		t.TotalTime += time.Since(start)
	}
}
