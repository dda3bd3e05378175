package policy

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
)

// Ruleset performs pure allow/block decisions for shell command strings.
// It is immutable once built and safe for concurrent use.
type Ruleset struct {
	deny  []*regexp.Regexp
	allow map[string]struct{}
}

// NewRuleset compiles the denylist and builds the allowlist set. Extra deny
// patterns that fail to compile are a construction error, not a runtime one.
func NewRuleset(cfg Config) (*Ruleset, error) {
	var denySources []string
	var allowBases []string
	if !cfg.NoDefaults {
		denySources = append(denySources, defaultDenyPatterns...)
		allowBases = append(allowBases, defaultAllowBases...)
	}
	denySources = append(denySources, cfg.DenyExtra...)
	allowBases = append(allowBases, cfg.AllowExtra...)

	deny, err := compilePatterns(denySources)
	if err != nil {
		return nil, fmt.Errorf("compile deny pattern: %w", err)
	}

	allow := make(map[string]struct{}, len(allowBases))
	for _, base := range allowBases {
		base = strings.TrimSpace(base)
		if base == "" {
			continue
		}
		allow[base] = struct{}{}
	}

	return &Ruleset{deny: deny, allow: allow}, nil
}

// DefaultRuleset builds a ruleset from the built-in lists only.
func DefaultRuleset() *Ruleset {
	rs, err := NewRuleset(Config{})
	if err != nil {
		// built-in patterns are compile-checked by tests
		panic(err)
	}
	return rs
}

// segmentSplit separates a compound command on shell control operators
// (;, &&, ||, |, &) so every stage can be allowlist-checked independently.
var segmentSplit = regexp.MustCompile(`[;&|]+`)

// Evaluate classifies a command string as allowed or blocked. The denylist
// is checked against the full string first; an allowlist hit never rescues
// a denylist match.
func (r *Ruleset) Evaluate(command string) Verdict {
	command = strings.TrimSpace(command)
	if command == "" {
		return Verdict{Action: ActionBlock, Reason: ReasonEmptyCommand}
	}

	for _, pat := range r.deny {
		if pat.MatchString(command) {
			return Verdict{
				Action:  ActionBlock,
				Reason:  ReasonDangerousPattern,
				Pattern: pat.String(),
			}
		}
	}

	// Backticks and $( ) can smuggle an arbitrary inner command past the
	// base-token check, so substitution is rejected outright.
	if strings.Contains(command, "`") || strings.Contains(command, "$(") {
		return Verdict{Action: ActionBlock, Reason: ReasonSubstitution}
	}

	for _, segment := range segmentSplit.Split(command, -1) {
		segment = strings.TrimSpace(segment)
		if segment == "" {
			continue
		}
		base := BaseCommand(segment)
		if _, ok := r.allow[base]; !ok {
			return Verdict{
				Action: ActionBlock,
				Reason: fmt.Sprintf("%s: %s", ReasonNotAllowlisted, base),
			}
		}
	}

	return Verdict{Action: ActionAllow}
}

// Allowlist returns the allowlisted base commands in unspecified order.
func (r *Ruleset) Allowlist() []string {
	bases := make([]string, 0, len(r.allow))
	for base := range r.allow {
		bases = append(bases, base)
	}
	return bases
}

// Denylist returns the compiled denylist pattern sources in match order.
func (r *Ruleset) Denylist() []string {
	sources := make([]string, 0, len(r.deny))
	for _, pat := range r.deny {
		sources = append(sources, pat.String())
	}
	return sources
}

// BaseCommand extracts the allowlist lookup key: the first whitespace
// delimited token, reduced to its final path element so /bin/ls and ls
// resolve identically. Matching stays case-sensitive.
func BaseCommand(command string) string {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return ""
	}
	return filepath.Base(fields[0])
}
