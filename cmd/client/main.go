// tablebook-client is the front-end stand-in: it runs the client-side
// validation rules, drives the simulated authentication context, and keeps
// the fabricated session in Redis so it survives between invocations.
// Nothing here talks to the API with verified credentials; see the session
// package notes before pointing this at anything real.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/gildedfork/tablebook/internal/config"
	"github.com/gildedfork/tablebook/internal/observability"
	"github.com/gildedfork/tablebook/internal/session"
	"github.com/gildedfork/tablebook/internal/validation"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	var (
		email     = flag.String("email", "", "account email")
		password  = flag.String("password", "", "account password")
		firstName = flag.String("first-name", "", "first name (signup)")
		lastName  = flag.String("last-name", "", "last name (signup)")
		confirm   = flag.String("confirm-password", "", "password confirmation (signup)")
		terms     = flag.Bool("agree-terms", false, "agree to the terms (signup)")
		signUp    = flag.Bool("signup", false, "sign up instead of logging in")
		logout    = flag.Bool("logout", false, "clear the stored session and exit")
		device    = flag.String("device", "local", "device id namespacing the stored session")
	)
	flag.Parse()

	cfg := config.Load()
	log := observability.NewLogger(cfg.Env)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	store := pickStore(ctx, cfg, *device)
	mgr := session.NewManager(store, session.DefaultLatency)

	// rehydrate whatever a previous run left behind
	mgr.CheckAuth(ctx)

	if *logout {
		mgr.Logout(ctx)
		fmt.Println("logged out")
		return
	}

	if u, ok := mgr.CurrentUser(); ok {
		printUser("already authenticated", u)
		return
	}

	// client-side validation blocks submission before any network call
	var errs validation.Fields
	if *signUp {
		errs = validation.SignUpForm(*firstName, *lastName, *email, *password, *confirm, *terms)
	} else {
		errs = validation.LoginForm(*email, *password)
	}
	if len(errs) > 0 {
		for field, msg := range errs {
			fmt.Fprintf(os.Stderr, "%s: %s\n", field, msg)
		}
		os.Exit(1)
	}

	var (
		u   session.User
		err error
	)
	if *signUp {
		u, err = mgr.SignUp(ctx, *firstName, *lastName, *email, *password)
	} else {
		u, err = mgr.Login(ctx, *email, *password)
	}
	if err != nil {
		log.Error("authentication failed", "err", err)
		os.Exit(1)
	}

	printUser("authenticated", u)
}

// pickStore prefers Redis; an unreachable instance degrades to a
// process-local session.
func pickStore(ctx context.Context, cfg config.Config, device string) session.Store {
	rs := session.NewRedisStore(session.RedisConfig{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
		Prefix:   device,
	})
	if err := rs.Ping(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "redis unavailable, session will not persist:", err)
		return session.NewMemoryStore()
	}
	return rs
}

func printUser(label string, u session.User) {
	raw, _ := json.MarshalIndent(u, "", "  ")
	fmt.Printf("%s:\n%s\n", label, raw)
}
