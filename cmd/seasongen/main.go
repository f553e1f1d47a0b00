// Command seasongen writes a synthetic season snapshot for load testing
// and demos.
package main

import (
	"context"
	"flag"
	"os"

	"github.com/tribeline/scorekeep/internal/adapters/snapshot"
	"github.com/tribeline/scorekeep/internal/seasongen"
	"github.com/tribeline/scorekeep/pkg/logger"
)

func main() {
	cfg := seasongen.NewConfig()

	out := flag.String("out", "season.json", "output snapshot path")
	flag.IntVar(&cfg.Castaways, "castaways", cfg.Castaways, "contestants in the season")
	flag.IntVar(&cfg.Tribes, "tribes", cfg.Tribes, "starting tribes")
	flag.IntVar(&cfg.Members, "members", cfg.Members, "league members")
	flag.IntVar(&cfg.Episodes, "episodes", cfg.Episodes, "aired episodes")
	flag.IntVar(&cfg.MergeEpisode, "merge", cfg.MergeEpisode, "merge episode")
	flag.Int64Var(&cfg.Seed, "seed", cfg.Seed, "rng seed")
	flag.BoolVar(&cfg.Shauhin, "shauhin", false, "enable the betting overlay")
	flag.BoolVar(&cfg.SecondaryPicks, "secondary", false, "enable the secondary pick overlay")
	flag.Parse()

	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}
	log := logger.Get()
	ctx := context.Background()

	season, err := seasongen.Generate(ctx, cfg, log)
	if err != nil {
		log.Error(ctx, "generation failed", logger.Error(err))
		os.Exit(1)
	}
	if err := snapshot.Save(ctx, *out, season); err != nil {
		log.Error(ctx, "failed to write snapshot", logger.Error(err))
		os.Exit(1)
	}
	log.Info(ctx, "snapshot written", logger.String("path", *out))
}
