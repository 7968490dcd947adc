package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"riichiengine/feature"
	"riichiengine/internal/config"
	"riichiengine/internal/metrics"
	"riichiengine/internal/rlog"
	"riichiengine/validate"
	"riichiengine/validate/report"

	"github.com/spf13/cobra"
)

var configFile string

var rootCmd = &cobra.Command{
	Use:   "mjai-validate",
	Short: "validates mjai event logs against the engine's own legality checks",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.Load(configFile)
		if err != nil {
			rlog.Fatal("config load failed: %v", err)
		}
		rlog.Init(cfg.AppName, cfg.Log.Level)
		rlog.Info("loaded config: %+v", cfg.Validate)

		go func() {
			rlog.Info("statsviz listening, URL: http://localhost:%d/debug/statsviz/", cfg.MetricPort)
			if err := metrics.Serve(fmt.Sprintf("0.0.0.0:%d", cfg.MetricPort)); err != nil {
				rlog.Error("statsviz server stopped: %v", err)
			}
		}()

		reportEvery, err := time.ParseDuration(cfg.Validate.ReportEvery)
		if err != nil {
			reportEvery = 10 * time.Second
		}

		var pub *feature.Publisher
		if cfg.Nats.Url != "" {
			pub, err = feature.NewPublisher(cfg.Nats.Url, cfg.Nats.Topic)
			if err != nil {
				rlog.Error("feature publisher unavailable: %v", err)
				pub = nil
			} else {
				defer pub.Close()
			}
		}

		rep, err := validate.Run(context.Background(), cfg.Validate.LogDir, cfg.Validate.Concurrency,
			cfg.Rules.ToRuleSet(), reportEvery, pub)
		if err != nil {
			rlog.Fatal("validate run failed: %v", err)
		}

		for _, res := range rep.Results {
			if res.Err != nil {
				rlog.Error("log %s: %v", res.LogPath, res.Err)
				continue
			}
			for _, v := range res.Violations {
				rlog.Warn("log %s line %d: %s (actor=%d type=%s)", v.LogPath, v.Line, v.Detail, v.Actor, v.Type)
			}
		}
		rlog.Info("validated %d logs, %d violations", len(rep.Results), rep.TotalViolations())

		if cfg.Database.Mongo.Url != "" {
			store, err := report.Connect(context.Background(), cfg.Database.Mongo.Url, cfg.Database.Mongo.Db, cfg.Database.Mongo.Collection)
			if err != nil {
				rlog.Error("mongo report store unavailable: %v", err)
			} else {
				defer store.Close(context.Background())
				if err := store.Save(context.Background(), rep, time.Now()); err != nil {
					rlog.Error("saving validation report: %v", err)
				}
			}
		}

		if rep.Failed() {
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.Flags().StringVar(&configFile, "config", "", "config file path")
	rootCmd.MarkFlagRequired("config")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		rlog.Error("error happen: %v", err)
		os.Exit(1)
	}
}
