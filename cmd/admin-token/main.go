package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"txdash/pkg/auth"
	"txdash/pkg/config"
)

// admin-token prints a bearer token accepted by the /api/init guard.
func main() {
	subject := flag.String("subject", "operator", "token subject")
	ttl := flag.Duration("ttl", 0, "token lifetime (defaults to ADMIN_TOKEN_TTL_HOURS)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if cfg.Auth.AdminSecret == "" {
		log.Fatal("ADMIN_JWT_SECRET is not set")
	}

	lifetime := cfg.Auth.TokenTTL
	if *ttl > 0 {
		lifetime = *ttl
	}

	token, err := auth.NewJWTManager(cfg.Auth.AdminSecret, lifetime).GenerateToken(*subject, auth.RoleAdmin)
	if err != nil {
		log.Fatalf("Failed to generate token: %v", err)
	}

	fmt.Println(token)
	log.Printf("token for %q expires at %s", *subject, time.Now().Add(lifetime).Format(time.RFC3339))
}
