package utils

import "strings"

// MaskEmail hides most of the local part: u***r@example.com.
func MaskEmail(email string) string {
	at := strings.IndexByte(email, '@')
	if at < 0 {
		return email
	}
	local, domain := email[:at], email[at+1:]
	if local == "" {
		return "*@" + domain
	}
	if len(local) <= 2 {
		return local[:1] + "*@" + domain
	}
	return local[:1] + strings.Repeat("*", len(local)-2) + local[len(local)-1:] + "@" + domain
}

// MaskPhone keeps only the last four digits: ******5678.
func MaskPhone(phone string) string {
	if len(phone) < 4 {
		return phone
	}
	return strings.Repeat("*", len(phone)-4) + phone[len(phone)-4:]
}

// MaskIdentifier picks the right masking for an email-or-phone identifier.
// Used for logs so codes recipients are never written out in full.
func MaskIdentifier(identifier string) string {
	if strings.ContainsRune(identifier, '@') {
		return MaskEmail(identifier)
	}
	return MaskPhone(identifier)
}
