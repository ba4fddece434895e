package mailbox

import "regexp"

// DefaultCodePattern matches the six-digit codes the service emails.
const DefaultCodePattern = `\b(\d{6})\b`

var defaultCodeRe = regexp.MustCompile(DefaultCodePattern)

// ExtractCode pulls the first verification code out of a message body
// using pattern (or the default six-digit pattern when pattern is empty).
// Returns false when the body contains no code or the pattern is invalid.
//
// The first capture group wins when the pattern defines one; otherwise the
// whole match is the code.
func ExtractCode(body, pattern string) (string, bool) {
	re := defaultCodeRe
	if pattern != "" {
		var err error
		re, err = regexp.Compile(pattern)
		if err != nil {
			return "", false
		}
	}

	m := re.FindStringSubmatch(body)
	if m == nil {
		return "", false
	}
	if len(m) > 1 && m[1] != "" {
		return m[1], true
	}
	return m[0], true
}
