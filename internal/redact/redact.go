// Package redact strips sensitive fragments from error text before it is
// logged: connection strings, bearer tokens, SQL statements, and file paths
// have no business in log output or error responses.
package redact

import (
	"regexp"
)

// Placeholders substituted for redacted fragments.
const (
	CredentialPlaceholder = "[REDACTED_CREDENTIAL]"
	TokenPlaceholder      = "[REDACTED_TOKEN]"
	PathPlaceholder       = "[REDACTED_PATH]"
	SQLPlaceholder        = "[REDACTED_SQL]"
)

var replacements = []struct {
	pattern     *regexp.Regexp
	placeholder string
}{
	// Connection strings with inline credentials (postgres://user:pw@host).
	{regexp.MustCompile(`(?i)(postgres|postgresql|mysql)://[^@\s]+@[^\s]+`), CredentialPlaceholder},

	// JWTs: three dot-separated base64url segments starting with eyJ.
	{regexp.MustCompile(`eyJ[A-Za-z0-9_-]+\.eyJ[A-Za-z0-9_-]+\.[A-Za-z0-9_-]+`), TokenPlaceholder},

	// Secret-bearing key=value pairs.
	{regexp.MustCompile(`(?i)(password|secret|token|api[_-]?key)(['"\s:=]+)[^\s'"&]{4,}`), CredentialPlaceholder},

	// SQL statements leaking schema details from driver errors.
	{regexp.MustCompile(`(?i)(SELECT|INSERT|UPDATE|DELETE)\s[\s\w,*()='"$]+(?:FROM|INTO|SET)\b[\s\w,*()='"$]*`), SQLPlaceholder},

	// Absolute unix paths.
	{regexp.MustCompile(`(/[\w.-]+){2,}`), PathPlaceholder},
}

// String redacts sensitive fragments from s.
func String(s string) string {
	for _, r := range replacements {
		s = r.pattern.ReplaceAllString(s, r.placeholder)
	}
	return s
}

// Error redacts an error's message. Returns an empty string for nil.
func Error(err error) string {
	if err == nil {
		return ""
	}
	return String(err.Error())
}
