package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"campcrew-funnel/internal/config"
	"campcrew-funnel/internal/storage"
	"campcrew-funnel/pkg/logger"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

const usage = `usage: leadctl <command> [flags]

commands:
  export    write the lead journal to an xlsx file
  rollback  undo the latest journal migration
`

func main() {
	_ = godotenv.Load()

	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if !cfg.Database.Enabled() {
		fmt.Fprintln(os.Stderr, "DB_HOST is not set")
		os.Exit(1)
	}

	zapLogger, err := logger.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer zapLogger.Sync()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	journal, err := storage.NewPostgresJournal(ctx, cfg.Database, zapLogger)
	if err != nil {
		zapLogger.Fatal("Failed to open lead journal", zap.Error(err))
	}
	defer journal.Close()

	switch os.Args[1] {
	case "export":
		fs := flag.NewFlagSet("export", flag.ExitOnError)
		out := fs.String("o", fmt.Sprintf("leads_%s.xlsx", time.Now().Format("20060102")), "output file")
		fs.Parse(os.Args[2:])

		data, err := journal.Export(ctx)
		if err != nil {
			zapLogger.Fatal("Failed to export leads", zap.Error(err))
		}
		if err := os.WriteFile(*out, data, 0o644); err != nil {
			zapLogger.Fatal("Failed to write export", zap.String("path", *out), zap.Error(err))
		}
		zapLogger.Info("Leads exported", zap.String("path", *out), zap.Int("bytes", len(data)))
	case "rollback":
		if err := journal.Rollback(ctx); err != nil {
			zapLogger.Fatal("Rollback failed", zap.Error(err))
		}
	default:
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}
}
