package utils

import "strings"

// Common throwaway email providers. Matching one only raises the advisory
// risk score on a seller application; it never blocks the application.
var disposableDomains = map[string]bool{
	"mailinator.com":    true,
	"guerrillamail.com": true,
	"10minutemail.com":  true,
	"tempmail.com":      true,
	"temp-mail.org":     true,
	"throwawaymail.com": true,
	"yopmail.com":       true,
	"trashmail.com":     true,
	"sharklasers.com":   true,
	"getnada.com":       true,
}

// IsDisposableEmail reports whether the address uses a known throwaway domain.
func IsDisposableEmail(email string) bool {
	at := strings.LastIndex(email, "@")
	if at < 0 || at == len(email)-1 {
		return false
	}
	return disposableDomains[strings.ToLower(email[at+1:])]
}
