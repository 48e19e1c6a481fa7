package logger

import (
	"regexp"
	"strings"
)

var emailRegex = regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)

// redactValue masks emails in a field value. Fields whose key mentions
// email or recipient are masked outright; other fields only have embedded
// addresses replaced.
func redactValue(key, val string) string {
	k := strings.ToLower(key)
	if strings.Contains(k, "email") || strings.Contains(k, "recipient") {
		return RedactEmail(val)
	}
	return emailRegex.ReplaceAllStringFunc(val, RedactEmail)
}

// RedactEmail masks an email address for safe logging.
// "john.doe@example.com" becomes "jo***@example.com"; local parts of two
// characters or fewer are fully masked.
func RedactEmail(email string) string {
	local, dom, ok := strings.Cut(email, "@")
	if !ok || strings.Contains(dom, "@") {
		return "***@***"
	}
	if len(local) > 2 {
		return local[:2] + "***@" + dom
	}
	return "***@" + dom
}
