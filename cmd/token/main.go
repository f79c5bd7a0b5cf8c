// Command token mints a bearer token for one extension install.
//
// Usage:
//
//	token -label "work laptop" [-client <uuid>]
//
// Requires AUTH_JWT_SECRET (or auth.jwt_secret in config.yaml). The token is
// printed to stdout; the client ID it was issued for goes to stderr.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/google/uuid"

	"github.com/heartmarshall/wordlookup/internal/auth"
	"github.com/heartmarshall/wordlookup/internal/config"
)

func main() {
	label := flag.String("label", "", "free-form label recorded in the token")
	clientFlag := flag.String("client", "", "client ID to reuse (default: a new random ID)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if !cfg.Auth.Enabled() {
		log.Fatal("auth is disabled: set AUTH_JWT_SECRET")
	}

	clientID := uuid.New()
	if *clientFlag != "" {
		clientID, err = uuid.Parse(*clientFlag)
		if err != nil {
			log.Fatalf("invalid client ID: %v", err)
		}
	}

	jwtManager := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.AccessTokenTTL)
	token, err := jwtManager.GenerateAccessToken(clientID, *label)
	if err != nil {
		log.Fatalf("generate token: %v", err)
	}

	fmt.Fprintf(os.Stderr, "client %s, expires in %s\n", clientID, cfg.Auth.AccessTokenTTL)
	fmt.Println(token)
}
