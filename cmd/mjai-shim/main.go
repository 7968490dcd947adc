package main

import (
	"fmt"
	"os"

	"riichiengine/internal/config"
	"riichiengine/internal/metrics"
	"riichiengine/internal/rlog"
	"riichiengine/shim"
	"riichiengine/shim/debugsrv"

	"github.com/spf13/cobra"
)

var configFile string

var rootCmd = &cobra.Command{
	Use:   "mjai-shim",
	Short: "runs the WebSocket binding shim plus its debug HTTP endpoint",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.Load(configFile)
		if err != nil {
			rlog.Fatal("config load failed: %v", err)
		}
		rlog.Init(cfg.AppName, cfg.Log.Level)

		go func() {
			rlog.Info("statsviz listening, URL: http://localhost:%d/debug/statsviz/", cfg.MetricPort)
			if err := metrics.Serve(fmt.Sprintf("0.0.0.0:%d", cfg.MetricPort)); err != nil {
				rlog.Error("statsviz server stopped: %v", err)
			}
		}()

		srv := shim.NewServer(cfg.Jwt.Secret, cfg.Rules.ToRuleSet())

		go func() {
			dbg := debugsrv.New(srv)
			if err := dbg.Run(cfg.Shim.DebugAddr); err != nil {
				rlog.Error("debug http server stopped: %v", err)
			}
		}()

		if err := srv.Run(cfg.Shim.WsAddr); err != nil {
			rlog.Fatal("shim websocket server stopped: %v", err)
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
