package policy

import "regexp"

// defaultDenyPatterns are regex patterns that match destructive command
// shapes. They are tested against the full command string, so an allowlisted
// base command cannot rescue a dangerous invocation.
var defaultDenyPatterns = []string{
	// rm with force/recursive flags targeting root or home, in either flag order
	`(?i)\brm\s+(-[a-z]*r[a-z]*\s+-[a-z]*f[a-z]*|-[a-z]*f[a-z]*\s+-[a-z]*r[a-z]*|-[a-z]*rf[a-z]*|-[a-z]*fr[a-z]*)\s+/\s*(\*)?\s*$`,
	`(?i)\brm\s+(-[a-z]*r[a-z]*\s+-[a-z]*f[a-z]*|-[a-z]*f[a-z]*\s+-[a-z]*r[a-z]*|-[a-z]*rf[a-z]*|-[a-z]*fr[a-z]*)\s+~`,
	// sudo variants of rm
	`(?i)\bsudo\s+rm\s+(-[a-z]*r[a-z]*\s+-[a-z]*f[a-z]*|-[a-z]*f[a-z]*\s+-[a-z]*r[a-z]*|-[a-z]*rf[a-z]*|-[a-z]*fr[a-z]*)\s+/`,
	// explicitly disabling root safeguards
	`(?i)--no-preserve-root`,
	// fork bomb
	`:\(\)\s*\{.*\|.*&\s*\}\s*;`,
	// raw block device writes
	`(?i)\bdd\s+if=`,
	`>\s*/dev/(sd|hd|nvme|vd)`,
	// filesystem creation and partitioning
	`(?i)\bmkfs\b`,
	`(?i)\bmkfs\.`,
	`(?i)\b(fdisk|parted|diskpart)\b`,
	// Windows format and mass delete
	`(?i)\bformat\s+[a-z]:`,
	`(?i)\bdel\s+/[a-z]\s+/[a-z]\s+/[a-z]`,
	// system termination
	`(?i)\b(shutdown|reboot|poweroff)\b`,
	`(?i)\bhalt\b`,
	`(?i)\bkill\s+(-9\s+)?1\s*$`,
	`(?i)\bkillall\s+-9\b`,
}

// defaultAllowBases are base commands vetted for agent use: read-only
// utilities, VCS, package managers, container tooling, and common file
// manipulation. Anything absent is denied by default.
var defaultAllowBases = []string{
	// read-only inspection
	"ls", "cat", "head", "tail", "grep", "find", "wc", "du", "df", "stat",
	"file", "which", "pwd", "echo", "env", "printenv", "ps", "uname",
	"whoami", "hostname", "date", "uptime", "tree", "sleep",
	// text processing
	"sed", "awk", "sort", "uniq", "cut", "tr", "diff", "xargs",
	// file manipulation
	"mkdir", "cp", "mv", "touch", "ln", "tar", "gzip", "gunzip", "zip", "unzip",
	// VCS and build tooling
	"git", "go", "make", "cargo", "npm", "npx", "yarn", "pip", "pip3",
	// runtimes
	"python", "python3", "node", "ruby", "java",
	// containers and infra
	"docker", "kubectl", "helm",
	// network fetch
	"curl", "wget", "ping",
	// shells (the full string still has to survive the denylist)
	"sh", "bash",
}

func compilePatterns(sources []string) ([]*regexp.Regexp, error) {
	compiled := make([]*regexp.Regexp, 0, len(sources))
	for _, src := range sources {
		re, err := regexp.Compile(src)
		if err != nil {
			return nil, err
		}
		compiled = append(compiled, re)
	}
	return compiled, nil
}
