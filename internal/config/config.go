// Package config loads the viper-backed configuration shared by every
// cmd/* entry point: logging, the ruleset the agari package scores
// against, and the collaborator packages (validate, shim) wire from it.
package config

import (
	"fmt"

	"riichiengine/agari"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// Config is the full on-disk shape. Every entry point reads the whole
// file; an entry point that doesn't need a section just ignores it.
type Config struct {
	AppName    string     `mapstructure:"appName"`
	Log        LogConf    `mapstructure:"log"`
	MetricPort int        `mapstructure:"metricPort"`
	Rules      RulesConf  `mapstructure:"rules"`
	Validate   ValidateConf `mapstructure:"validate"`
	Shim       ShimConf   `mapstructure:"shim"`
	Database   DatabaseConf `mapstructure:"database"`
	Nats       NatsConf   `mapstructure:"nats"`
	Jwt        JwtConf    `mapstructure:"jwt"`
}

type LogConf struct {
	Level string `mapstructure:"level"`
}

// RulesConf mirrors agari.RuleSet field-for-field so a table config
// can override the conservative defaults.
type RulesConf struct {
	KazoeYakumanCap     bool `mapstructure:"kazoeYakumanCap"`
	DoubleYakuman       bool `mapstructure:"doubleYakuman"`
	KokushiAnkanChankan bool `mapstructure:"kokushiAnkanChankan"`
}

func (r RulesConf) ToRuleSet() agari.RuleSet {
	return agari.RuleSet{
		KazoeYakumanCap:     r.KazoeYakumanCap,
		DoubleYakuman:       r.DoubleYakuman,
		KokushiAnkanChankan: r.KokushiAnkanChankan,
	}
}

type ValidateConf struct {
	LogDir      string `mapstructure:"logDir"`
	Concurrency int    `mapstructure:"concurrency"`
	ReportEvery string `mapstructure:"reportEvery"` // duration string, e.g. "5s"
}

type ShimConf struct {
	WsAddr    string `mapstructure:"wsAddr"`
	DebugAddr string `mapstructure:"debugAddr"`
}

type DatabaseConf struct {
	Mongo MongoConf `mapstructure:"mongo"`
	Redis RedisConf `mapstructure:"redis"`
}

type MongoConf struct {
	Url        string `mapstructure:"url"`
	Db         string `mapstructure:"db"`
	Collection string `mapstructure:"collection"`
}

type RedisConf struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type NatsConf struct {
	Url   string `mapstructure:"url"`
	Topic string `mapstructure:"topic"`
}

type JwtConf struct {
	Secret string `mapstructure:"secret"`
	Expire int    `mapstructure:"expire"` // seconds
}

// Load reads configFile into a Config and keeps watching it for
// changes, matching the teacher's config.InitConfig reload behavior.
func Load(configFile string) (*Config, error) {
	cfg := new(Config)
	v := viper.New()
	v.SetConfigFile(configFile)
	def := agari.DefaultRuleSet()
	v.SetDefault("rules.kazoeYakumanCap", def.KazoeYakumanCap)
	v.SetDefault("rules.doubleYakuman", def.DoubleYakuman)
	v.SetDefault("rules.kokushiAnkanChankan", def.KokushiAnkanChankan)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("config: read %s: %w", configFile, err)
	}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal %s: %w", configFile, err)
	}

	v.WatchConfig()
	v.OnConfigChange(func(in fsnotify.Event) {
		if err := v.Unmarshal(cfg); err != nil {
			// a bad edit to a live config file must not crash the process;
			// the previous good config stays in effect.
			return
		}
	})

	return cfg, nil
}
