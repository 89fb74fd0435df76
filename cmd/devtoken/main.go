// Command devtoken prints a bearer token for a student, signed with the
// server's JWT_SECRET, for local testing against the API.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/pflag"
	"github.com/vytor/reviewflash/internal/auth"
	"github.com/vytor/reviewflash/internal/config"
)

func main() {
	student := pflag.StringP("student", "s", "", "student id to put in the token subject")
	ttl := pflag.Duration("ttl", 8*time.Hour, "token lifetime")
	secret := pflag.String("secret", "", "signing secret (defaults to JWT_SECRET)")
	pflag.Parse()

	if *student == "" {
		fmt.Fprintln(os.Stderr, "--student is required")
		pflag.Usage()
		os.Exit(2)
	}

	key := *secret
	if key == "" {
		key = config.Load().JWTSecret
	}
	if key == "" {
		fmt.Fprintln(os.Stderr, "no secret: set JWT_SECRET or pass --secret")
		os.Exit(1)
	}

	token, err := auth.NewIssuer(key).Issue(*student, *ttl)
	if err != nil {
		fmt.Fprintf(os.Stderr, "issue token: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(token)
}
