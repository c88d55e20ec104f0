// Package main консольный клиент админ-панели.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"

	"github.com/subflow/admin-client/internal/api"
	"github.com/subflow/admin-client/internal/config"
	"github.com/subflow/admin-client/internal/lib/jwtpeek"
	"github.com/subflow/admin-client/internal/lib/sl"
	"github.com/subflow/admin-client/internal/lib/validate"
	"github.com/subflow/admin-client/internal/notify"
	"github.com/subflow/admin-client/internal/tokenstore"
)

const usage = `adminctl - консольный клиент админ-панели

Usage: adminctl <command> [flags]

Auth:
  login             --email --password
  logout
  whoami
  forgot-password   --email
  verify-otp        --email --code
  reset-password    --email --password --confirm
  change-password   --current --new --confirm

Data:
  stats
  analytics
  users             [--page] [--limit]
  profile
  update-profile    [--name] [--avatar <file>]
  plans             [--page] [--limit]
  plan-create       --name [--price-month] [--price-year]
  plan-update       <id> [--name] [--price-month] [--price-year]
  plan-activate     <id>
  plan-deactivate   <id>
  plan-delete       <id>

Config file is taken from --config or the CONFIG_PATH environment variable.
`

func main() {
	_ = godotenv.Load()

	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	if len(args) == 0 || args[0] == "help" || args[0] == "--help" || args[0] == "-h" {
		fmt.Print(usage)
		return nil
	}

	command := args[0]
	flags := pflag.NewFlagSet(command, pflag.ContinueOnError)
	configPath := flags.String("config", "", "path to config file (default: CONFIG_PATH)")

	email := flags.String("email", "", "account email")
	password := flags.String("password", "", "account password")
	confirm := flags.String("confirm", "", "password confirmation")
	code := flags.String("code", "", "one-time code from email")
	current := flags.String("current", "", "current password")
	newPassword := flags.String("new", "", "new password")
	page := flags.Int("page", 1, "page number")
	limit := flags.Int("limit", 10, "page size")
	name := flags.String("name", "", "display name")
	avatar := flags.String("avatar", "", "path to avatar image")
	priceMonth := flags.Float64("price-month", 0, "monthly price")
	priceYear := flags.Float64("price-year", 0, "yearly price")

	if err := flags.Parse(args[1:]); err != nil {
		return err
	}

	var cfg *config.Config
	if *configPath != "" {
		cfg = config.MustLoadPath(*configPath)
	} else {
		cfg = config.MustLoad()
	}

	level := slog.LevelInfo
	if cfg.Env == "local" {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	store, err := newStore(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to init token store", sl.Err(err))
		return err
	}

	client := api.New(cfg.API, logger, store, notify.NewLog(logger))
	client.OnUnauthorized(func() {
		logger.Warn("session expired, run 'adminctl login' again")
	})
	client.LoadToken(ctx)

	switch command {
	case "login":
		if err := validate.Email(*email); err != nil {
			return err
		}
		if _, err := client.Login(ctx, *email, *password); err != nil {
			return err
		}
		fmt.Println("logged in as", *email)
		return nil

	case "logout":
		client.ClearToken(ctx)
		fmt.Println("logged out")
		return nil

	case "whoami":
		return whoami(client)

	case "forgot-password":
		if err := validate.Email(*email); err != nil {
			return err
		}
		_, err := client.ForgotPassword(ctx, *email)
		return err

	case "verify-otp":
		if err := validate.Email(*email); err != nil {
			return err
		}
		if err := validate.OTP(*code); err != nil {
			return err
		}
		_, err := client.VerifyOTP(ctx, *email, *code)
		return err

	case "reset-password":
		if err := validate.Email(*email); err != nil {
			return err
		}
		if err := validate.NewPassword(*password, *confirm); err != nil {
			return err
		}
		_, err := client.ResetPassword(ctx, *email, *password, *confirm)
		return err

	case "change-password":
		if err := validate.NewPassword(*newPassword, *confirm); err != nil {
			return err
		}
		_, err := client.ChangePassword(ctx, *current, *newPassword, *confirm)
		return err

	case "stats":
		return printStats(ctx, client)

	case "analytics":
		return printAnalytics(ctx, client)

	case "users":
		return printUsers(ctx, client, *page, *limit)

	case "profile":
		return printProfile(ctx, client)

	case "update-profile":
		return updateProfile(ctx, client, *name, *avatar)

	case "plans":
		return printPlans(ctx, client, *page, *limit)

	case "plan-create":
		params := api.PlanParams{Name: *name}
		if flags.Changed("price-month") {
			params.PriceMonth = priceMonth
		}
		if flags.Changed("price-year") {
			params.PriceYear = priceYear
		}
		_, err := client.CreateSubscriptionPlan(ctx, params)
		return err

	case "plan-update":
		id, err := planID(flags)
		if err != nil {
			return err
		}
		params := api.PlanParams{Name: *name}
		if flags.Changed("price-month") {
			params.PriceMonth = priceMonth
		}
		if flags.Changed("price-year") {
			params.PriceYear = priceYear
		}
		_, err = client.UpdateSubscriptionPlan(ctx, id, params)
		return err

	case "plan-activate":
		return togglePlan(ctx, client, flags, api.PlanActionActive)

	case "plan-deactivate":
		return togglePlan(ctx, client, flags, api.PlanActionInactive)

	case "plan-delete":
		return togglePlan(ctx, client, flags, api.PlanActionDelete)

	default:
		fmt.Print(usage)
		return fmt.Errorf("unknown command: %s", command)
	}
}

// newStore выбирает бэкенд хранилища токенов из конфига.
func newStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (tokenstore.Store, error) {
	const op = "main.newStore"

	switch cfg.TokenStore.Backend {
	case "memory":
		return tokenstore.NewMemory(), nil
	case "redis":
		store, err := tokenstore.NewRedis(ctx, cfg.RedisConnection, "adminctl")
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		return store, nil
	case "file", "":
		path, err := cfg.ResolveTokenFilePath()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		logger.Debug("using file token store", slog.String("path", path))
		return tokenstore.NewFile(path), nil
	default:
		return nil, fmt.Errorf("%s: unknown token store backend %q", op, cfg.TokenStore.Backend)
	}
}

func planID(flags *pflag.FlagSet) (string, error) {
	if flags.NArg() < 1 {
		return "", fmt.Errorf("plan id is required")
	}
	return flags.Arg(0), nil
}

func togglePlan(ctx context.Context, client *api.Client, flags *pflag.FlagSet, action api.PlanAction) error {
	id, err := planID(flags)
	if err != nil {
		return err
	}
	_, err = client.ToggleSubscriptionPlan(ctx, id, action)
	return err
}

func whoami(client *api.Client) error {
	token := client.Token()
	if token == "" {
		return fmt.Errorf("not logged in")
	}
	claims, err := jwtpeek.Peek(token)
	if err != nil {
		return err
	}
	fmt.Println("subject:", claims.Subject)
	if !claims.ExpiresAt.IsZero() {
		fmt.Println("expires:", claims.ExpiresAt.Format(time.RFC3339))
		if claims.Expired(time.Now()) {
			fmt.Println("token is expired")
		}
	}
	return nil
}

func printStats(ctx context.Context, client *api.Client) error {
	stats, err := client.GetDashboardStats(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("total users:          %d\n", stats.TotalUsers)
	fmt.Printf("active subscriptions: %d\n", stats.ActiveSubscriptions)
	fmt.Printf("total revenue:        %.2f\n", stats.TotalRevenue)
	for _, stat := range stats.UserJoinStats {
		fmt.Printf("  %-3s %d\n", stat.Day, stat.Users)
	}
	return nil
}

func printAnalytics(ctx context.Context, client *api.Client) error {
	analytics, err := client.GetSubscriptionAnalytics(ctx)
	if err != nil {
		return err
	}
	for _, item := range analytics {
		fmt.Printf("%-10s users=%-5d share=%.0f%%\n", item.Name, item.Value, item.Percentage)
	}
	return nil
}

func printUsers(ctx context.Context, client *api.Client, page, limit int) error {
	result, err := client.GetUsers(ctx, page, limit)
	if err != nil {
		return err
	}
	for _, user := range result.Data {
		fmt.Printf("%-10s %-25s %-8s %s\n", user.ID, user.Email, user.Status, user.PlanName)
	}
	fmt.Printf("page %d (total %d users)\n", result.Page, result.Total)
	if result.HasNextPage {
		fmt.Printf("next: adminctl users --page %d --limit %d\n", result.Page+1, limit)
	}
	return nil
}

func printProfile(ctx context.Context, client *api.Client) error {
	profile, err := client.GetProfile(ctx)
	if err != nil {
		return err
	}
	fmt.Println("id:     ", profile.ID)
	fmt.Println("name:   ", profile.Name)
	fmt.Println("email:  ", profile.Email)
	fmt.Println("role:   ", profile.Role)
	fmt.Println("joined: ", profile.JoinedDate)
	if profile.Avatar != "" {
		fmt.Println("avatar: ", profile.Avatar)
	}
	return nil
}

func updateProfile(ctx context.Context, client *api.Client, name, avatarPath string) error {
	params := api.UpdateProfileParams{Name: name}

	if avatarPath != "" {
		file, err := os.Open(avatarPath)
		if err != nil {
			return err
		}
		defer func() {
			_ = file.Close()
		}()
		params.AvatarName = file.Name()
		params.Avatar = file
	}

	_, err := client.UpdateProfile(ctx, params)
	return err
}

func printPlans(ctx context.Context, client *api.Client, page, limit int) error {
	plans, err := client.GetSubscriptionPlans(ctx, page, limit)
	if err != nil {
		return err
	}
	for _, plan := range plans {
		state := "active"
		if !plan.IsActive {
			state = "inactive"
		}
		fmt.Printf("%-14s %-12s %-8s month=%s year=%s\n",
			plan.ID, plan.Name, state, formatPrice(plan.PriceMonth), formatPrice(plan.PriceYear))
	}
	return nil
}

func formatPrice(price *float64) string {
	if price == nil {
		return "-"
	}
	return fmt.Sprintf("%.2f", *price)
}
