// grantadmin promotes an existing account to the admin role. There is no API
// endpoint for role changes, so operators run this against the database
// directly.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"server/internal/adapter/repo"
	"server/internal/domain"
	"server/internal/infra"
)

func main() {
	var (
		usernameFlag string
		demoteFlag   bool
	)
	flag.StringVar(&usernameFlag, "username", "", "username of the account to update")
	flag.BoolVar(&demoteFlag, "demote", false, "set the role back to user instead of admin")
	flag.Parse()

	username := strings.TrimSpace(usernameFlag)
	if username == "" {
		exitWithError(errors.New("-username is required"))
	}

	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		exitWithError(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	pool, err := infra.NewDBPool(ctx, cfg)
	if err != nil {
		exitWithError(fmt.Errorf("connect database: %w", err))
	}
	defer pool.Close()

	role := domain.UserRoleAdmin
	if demoteFlag {
		role = domain.UserRoleUser
	}

	user, err := repo.NewUserRepository(pool).SetRole(ctx, username, role)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			exitWithError(fmt.Errorf("no user named %q", username))
		}
		exitWithError(err)
	}
	fmt.Printf("user %s now has role %s\n", user.Username, user.Role)
}

func exitWithError(err error) {
	fmt.Fprintln(os.Stderr, "grantadmin:", err)
	os.Exit(1)
}
