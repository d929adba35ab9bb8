// Package main provides the Faction API load generator.
//
// loadgen spawns simulated users against a running backend and reports
// per-endpoint success, failure, and latency. Task failures are classified
// and recorded; the run itself only stops on timeout or interrupt.
//
// Usage:
//
//	# 100 users against a local backend for one minute
//	loadgen --host http://localhost:8000 --users 100 --run-time 1m
//
//	# Shape the run from a YAML file, flags override
//	loadgen --config loadgen.yaml --users 10000 --spawn-rate 100
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/faction-learning/factiondb/internal/loadtest"
)

var (
	cfgFile   string
	host      string
	users     int
	spawnRate float64
	waitMin   time.Duration
	waitMax   time.Duration
	runTime   time.Duration
)

var rootCmd = &cobra.Command{
	Use:           "loadgen",
	Short:         "Faction API load generator",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadtest.DefaultConfig()
		if cfgFile != "" {
			var err error
			cfg, err = loadtest.LoadConfig(cfgFile)
			if err != nil {
				return err
			}
		}

		// Flags override file values when set.
		f := cmd.Flags()
		if f.Changed("host") {
			cfg.Host = host
		}
		if f.Changed("users") {
			cfg.Users = users
		}
		if f.Changed("spawn-rate") {
			cfg.SpawnRate = spawnRate
		}
		if f.Changed("wait-min") {
			cfg.WaitMin = loadtest.Duration(waitMin)
		}
		if f.Changed("wait-max") {
			cfg.WaitMax = loadtest.Duration(waitMax)
		}
		if f.Changed("run-time") {
			cfg.RunTime = loadtest.Duration(runTime)
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		fmt.Printf("Spawning %d users against %s (%.0f/s)\n", cfg.Users, cfg.Host, cfg.SpawnRate)

		runner := loadtest.NewRunner(cfg, nil)
		if err := runner.Run(ctx); err != nil {
			return err
		}

		fmt.Println()
		runner.Stats().Print(os.Stdout)
		return nil
	},
}

func init() {
	f := rootCmd.Flags()
	f.StringVar(&cfgFile, "config", "", "YAML config file")
	f.StringVar(&host, "host", "http://localhost:8000", "backend base URL")
	f.IntVar(&users, "users", 10, "number of concurrent simulated users")
	f.Float64Var(&spawnRate, "spawn-rate", 10, "users started per second")
	f.DurationVar(&waitMin, "wait-min", time.Second, "minimum wait between a user's tasks")
	f.DurationVar(&waitMax, "wait-max", 3*time.Second, "maximum wait between a user's tasks")
	f.DurationVar(&runTime, "run-time", 0, "stop after this duration (0 = run until interrupted)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
