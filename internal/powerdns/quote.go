package powerdns

import (
	"regexp"
	"strings"
)

// quotedStringSequenceRE matches one or more RFC-1035-style quoted strings
// separated by whitespace. Each quoted string allows escaping via backslash
// (e.g., \" for a literal quote).
var quotedStringSequenceRE = regexp.MustCompile(`^\s*"([^"\\]|\\.)*"(?:\s+"([^"\\]|\\.)*")*\s*$`)

// textTypes carry character-strings, which the API only accepts quoted.
var textTypes = map[string]bool{"TXT": true, "SPF": true}

// isQuotedStringSequence returns true if s consists of one or more
// RFC-1035-style quoted strings separated by whitespace: "..." "...".
func isQuotedStringSequence(s string) bool { return quotedStringSequenceRE.MatchString(s) }

// quoteText quotes the content of TXT and SPF records typed without quotes.
func quoteText(rrType, content string) string {
	if !textTypes[rrType] || isQuotedStringSequence(content) {
		return content
	}

	escaped := strings.NewReplacer(`\`, `\\`, `"`, `\"`).Replace(content)

	return `"` + escaped + `"`
}
