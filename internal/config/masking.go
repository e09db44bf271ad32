package config

import "strings"

// maskSecret masks a secret, keeping only the first and last 4 characters.
func maskSecret(secret string) string {
	if secret == "" {
		return ""
	}

	if len(secret) < 8 {
		return "***"
	}

	prefix := secret[:4]
	suffix := secret[len(secret)-4:]
	masked := strings.Repeat("*", len(secret)-8)

	return prefix + masked + suffix
}

// MaskPassword masks the portal password for display in errors and logs.
func MaskPassword(password string) string {
	return maskSecret(password)
}
