// Command tokengen prints a service token for the decision API.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/iamasit07/4-in-a-row/bot/internal/config"
	"github.com/iamasit07/4-in-a-row/bot/pkg/auth"
)

func main() {
	_ = godotenv.Load()
	cfg := config.LoadConfig()

	subject := flag.String("subject", "coordinator", "token subject")
	role := flag.String("role", "service", "token role")
	ttl := flag.Duration("ttl", cfg.ServiceTokenTTL, "token lifetime, 0 for none")
	flag.Parse()

	token, err := auth.GenerateServiceToken(cfg.JWTSecret, *subject, *role, *ttl)
	if err != nil {
		fmt.Fprintln(os.Stderr, "tokengen:", err)
		os.Exit(1)
	}
	fmt.Println(token)
}
