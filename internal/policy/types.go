package policy

// Action is the policy decision for a candidate command.
type Action string

const (
	ActionAllow Action = "allow"
	ActionBlock Action = "block"
)

// Reasons attached to blocked verdicts.
const (
	ReasonDangerousPattern = "matches dangerous pattern"
	ReasonNotAllowlisted   = "command not in allowlist"
	ReasonSubstitution     = "command substitution is not permitted"
	ReasonEmptyCommand     = "empty command"
)

// Config contains the policy inputs required to build a ruleset.
type Config struct {
	// AllowExtra extends the default allowlist with additional base commands.
	AllowExtra []string
	// DenyExtra extends the default denylist with additional regex patterns.
	DenyExtra []string
	// NoDefaults drops the built-in lists so callers can supply exact rules.
	NoDefaults bool
}

// Verdict is the deterministic policy result.
type Verdict struct {
	Action  Action
	Reason  string
	Pattern string // denylist pattern source, set on dangerous-pattern blocks
}

// Allowed reports whether the verdict permits execution.
func (v Verdict) Allowed() bool {
	return v.Action == ActionAllow
}
