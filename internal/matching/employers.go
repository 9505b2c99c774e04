package matching

import "strings"

// DefaultEmployerTokens is the reference set of elite-employer name fragments
// used by the company rule when no table is injected.
var DefaultEmployerTokens = []string{
	"meta",
	"google",
	"apple",
	"amazon",
	"netflix",
	"microsoft",
	"openai",
}

// EmployerTokens is an immutable, normalized lookup table of employer name fragments.
type EmployerTokens struct {
	tokens []string
}

// NewEmployerTokens builds a table from raw tokens. Tokens are lowercased and trimmed;
// blanks and duplicates are dropped. Order is preserved.
func NewEmployerTokens(raw []string) EmployerTokens {
	seen := make(map[string]bool, len(raw))
	tokens := make([]string, 0, len(raw))
	for _, t := range raw {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		tokens = append(tokens, t)
	}
	return EmployerTokens{tokens: tokens}
}

// Match reports whether company contains any token (case-insensitive substring)
func (e EmployerTokens) Match(company string) bool {
	lower := strings.ToLower(company)
	if strings.TrimSpace(lower) == "" {
		return false
	}
	for _, t := range e.tokens {
		if strings.Contains(lower, t) {
			return true
		}
	}
	return false
}

// Tokens returns a copy of the normalized tokens
func (e EmployerTokens) Tokens() []string {
	out := make([]string, len(e.tokens))
	copy(out, e.tokens)
	return out
}

// Len returns the number of tokens in the table
func (e EmployerTokens) Len() int {
	return len(e.tokens)
}
