package utils

import (
	"fmt"
	"os"
)

// GetJWTSecret returns the signing secret for access tokens.
func GetJWTSecret() []byte {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		fmt.Println("WARNING: JWT_SECRET environment variable not set.")
		return []byte("default-insecure-secret-only-for-development")
	}
	return []byte(secret)
}

// GetSiteURL returns the public base URL of the site, without a trailing
// slash. Webhook callbacks and checkout redirects are built from it.
func GetSiteURL() string {
	url := os.Getenv("SITE_URL")
	for len(url) > 0 && url[len(url)-1] == '/' {
		url = url[:len(url)-1]
	}
	return url
}
