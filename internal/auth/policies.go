package auth

import (
	"fmt"

	"github.com/casbin/casbin/v2"

	"senateur-site/internal/logger"
)

// SeedDefaultPolicies ensures that the application has a baseline set of authorization rules.
// It checks if each default policy exists before adding it, making the operation idempotent
// and safe to run on every application start.
func SeedDefaultPolicies(e casbin.IEnforcer, log logger.Logger) {
	log.Info("Seeding default authorization policies...")

	// Anonymous visitors browse the public site and may log in; the admin
	// role additionally owns the whole back-office.
	policies := [][]string{
		{"anonymous", "/", "GET"},
		{"anonymous", "/about", "GET"},
		{"anonymous", "/programs", "GET"},
		{"anonymous", "/activities", "GET"},
		{"anonymous", "/news", "GET"},
		{"anonymous", "/news/*", "GET"},
		{"anonymous", "/documents", "GET"},
		{"anonymous", "/media", "GET"},
		{"anonymous", "/contact", "GET"},
		{"anonymous", "/contact", "POST"},
		{"anonymous", "/robots.txt", "GET"},
		{"anonymous", "/sitemap.xml", "GET"},
		{"anonymous", "/uploads/*", "GET"},
		{"anonymous", "/static/*", "GET"},
		{"anonymous", "/auth/login", "GET"},
		{"anonymous", "/auth/login", "POST"},
		{"anonymous", "/auth/oidc", "GET"},
		{"anonymous", "/auth/callback", "GET"},
		{"anonymous", "/auth/logout", "POST"},

		{"admin", "/admin", "GET"},
		{"admin", "/admin/*", "GET"},
		{"admin", "/admin/*", "POST"},
	}
	for _, p := range policies {
		if has, _ := e.HasPolicy(p); !has {
			if _, err := e.AddPolicy(p); err != nil {
				log.Error(err, fmt.Sprintf("Failed to add policy %v", p))
			}
		}
	}

	// Granting the 'admin' role all permissions of the 'anonymous' role.
	if has, _ := e.HasRoleForUser("admin", "anonymous"); !has {
		if _, err := e.AddRoleForUser("admin", "anonymous"); err != nil {
			log.Error(err, "Failed to add role 'admin' -> 'anonymous'")
		}
	}
	log.Info("Policy seeding complete.")
}
