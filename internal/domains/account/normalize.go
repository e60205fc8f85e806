package account

import "strings"

// NormalizeIdentifier is the single normalization rule for identity-bearing
// strings (username, nickname): trim surrounding whitespace, lowercase.
// Every write path goes through it so creation and update cannot diverge.
func NormalizeIdentifier(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// NormalizeEmail applies the same rule to the optional email. A nil pointer
// or a blank value both mean "absent" and normalize to nil.
func NormalizeEmail(email *string) *string {
	if email == nil {
		return nil
	}
	normalized := NormalizeIdentifier(*email)
	if normalized == "" {
		return nil
	}
	return &normalized
}
