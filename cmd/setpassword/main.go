// Command setpassword resets a dashboard user's password.
//
//	setpassword [-u username] [-d dsn]
package main

import (
	"bufio"
	"context"
	"database/sql"
	"flag"
	"fmt"
	"os"

	"github.com/dmitrijs2005/oscardash/internal/admin"
	"github.com/dmitrijs2005/oscardash/internal/flagx"
	"github.com/dmitrijs2005/oscardash/internal/logging"
	"github.com/dmitrijs2005/oscardash/internal/server/config"
	"github.com/dmitrijs2005/oscardash/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/oscardash/internal/server/services"
)

func run(ctx context.Context, cfg *config.Config, logger logging.Logger) error {
	fs := flag.NewFlagSet("setpassword", flag.ContinueOnError)
	userName := fs.String("u", "", "username (prompted when omitted)")
	if err := fs.Parse(flagx.FilterArgs(os.Args[1:], []string{"-u"})); err != nil {
		return err
	}

	db, err := sql.Open("pgx", cfg.DatabaseDSN)
	if err != nil {
		return fmt.Errorf("db init error: %w", err)
	}
	defer db.Close()

	svc := services.NewUserService(db, repomanager.NewPostgresRepositoryManager(), cfg, logger)

	return admin.SetPassword(ctx, svc, *userName, bufio.NewReader(os.Stdin), os.Stdout)
}

func main() {
	ctx := context.Background()
	cfg := config.LoadConfig()
	logger := logging.New(os.Stderr, cfg.LogLevel, cfg.LogFormat).With("module", "setpassword")

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error(ctx, "password reset failed", "error", err)
		os.Exit(1)
	}
}
