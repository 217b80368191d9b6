package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"film-vault/internal/app"
	"film-vault/internal/config"
	"film-vault/internal/service"
	"film-vault/pkg/logger"

	"go.uber.org/zap"
)

// reconcile 按观看/下载记录重新计算电影计数
//
//	go run ./cmd/reconcile -dry-run
//	go run ./cmd/reconcile -movie-id 42
func main() {
	configPath := flag.String("config", "configs/config.yaml", "配置文件路径")
	dryRun := flag.Bool("dry-run", false, "只打印差异，不写库")
	movieID := flag.Int64("movie-id", 0, "只处理指定电影")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	if err := logger.Init(cfg.Log.Level, cfg.Log.Format, cfg.Log.Output, cfg.Log.FilePath); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	os.Exit(run(cfg, *dryRun, *movieID))
}

func run(cfg *config.Config, dryRun bool, movieID int64) int {
	ctx := context.Background()

	a, err := app.New(ctx, cfg)
	if err != nil {
		logger.Error("Failed to init application", zap.Error(err))
		return 1
	}
	defer a.Close()

	opts := service.ReconcileOptions{DryRun: dryRun}
	if movieID > 0 {
		opts.MovieID = &movieID
	}

	report, err := a.Reconcile.Reconcile(ctx, opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Reconcile failed: %v\n", err)
		return 1
	}

	for _, c := range report.Changes {
		fmt.Println(c.String())
	}
	for _, f := range report.Failures {
		fmt.Fprintf(os.Stderr, "Movie %d failed: %s\n", f.MovieID, f.Error)
	}

	mode := "Updated"
	if report.DryRun {
		mode = "Would update"
	}
	fmt.Printf("%s %d of %d movies.\n", mode, report.Changed, report.Scanned)

	if len(report.Failures) > 0 {
		return 1
	}
	return 0
}
