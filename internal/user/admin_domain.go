package user

import (
	"strings"
)

var adminDomain string

func InitAdminDomain(config string) {
	adminDomain = strings.TrimPrefix(strings.ToLower(strings.TrimSpace(config)), "@")
}

func IsAdminEmail(email string) bool {
	if adminDomain == "" {
		return false
	}
	return strings.HasSuffix(NormalizeEmail(email), "@"+adminDomain)
}

// NormalizeEmail lowercases and trims an email so lookups are case insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
