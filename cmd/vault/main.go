package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/aussiebroadwan/credvault/internal/vault/app"
	"github.com/aussiebroadwan/credvault/pkg/cryptox"
	"github.com/spf13/pflag"
)

const usage = `Usage: vault <command> [flags]

Commands:
  serve         run the HTTP server (default)
  create-user   add an operator account
  gen-key       print a random value for VAULT_ENCRYPTION_KEY
`

func main() {
	cmd := "serve"
	args := os.Args[1:]
	if len(args) > 0 && args[0] != "" && args[0][0] != '-' {
		cmd, args = args[0], args[1:]
	}

	var err error
	switch cmd {
	case "serve":
		err = serve(args)
	case "create-user":
		err = createUser(args)
	case "gen-key":
		err = genKey()
	case "help":
		fmt.Print(usage)
	default:
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	if err != nil {
		log.Fatalf("%s: %v", cmd, err)
	}
}

func loadApp() (*app.Application, error) {
	cfg, err := app.LoadConfig()
	if err != nil {
		return nil, err
	}
	return app.New(cfg)
}

func serve(args []string) error {
	flags := pflag.NewFlagSet("serve", pflag.ExitOnError)
	if err := flags.Parse(args); err != nil {
		return err
	}

	application, err := loadApp()
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}
	return application.Run()
}

func createUser(args []string) error {
	flags := pflag.NewFlagSet("create-user", pflag.ExitOnError)
	username := flags.StringP("username", "u", "", "operator username")
	password := flags.StringP("password", "p", "", "operator password (generated when empty)")
	no2FA := flags.Bool("no-2fa", false, "skip TOTP enrolment")
	if err := flags.Parse(args); err != nil {
		return err
	}
	if *username == "" {
		flags.Usage()
		return fmt.Errorf("--username is required")
	}

	generated := false
	if *password == "" {
		p, err := cryptox.GeneratePassword()
		if err != nil {
			return err
		}
		*password, generated = p, true
	}

	application, err := loadApp()
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}
	defer application.Close()

	u, enrol, err := application.AuthService().CreateUser(context.Background(), *username, *password, !*no2FA)
	if err != nil {
		return err
	}

	fmt.Printf("created user %s (%s)\n", u.Username, u.ID)
	if generated {
		fmt.Printf("password: %s\n", *password)
	}
	if enrol != nil {
		fmt.Printf("2FA secret: %s\n", enrol.Secret)
		fmt.Printf("otpauth URL: %s\n", enrol.OTPAuthURL)
	}
	return nil
}

func genKey() error {
	key, err := cryptox.GenerateToken(cryptox.TokenSize256)
	if err != nil {
		return err
	}
	fmt.Println(key)
	return nil
}
