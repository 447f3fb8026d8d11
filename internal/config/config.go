// Package config loads runtime settings with viper. Precedence: explicit
// flags, then DOCPILOT_* environment variables, then a docpilot.yaml in the
// workspace, then defaults.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// UI mode names accepted by --ui / DOCPILOT_UI.
const (
	UITUI   = "tui"
	UILine  = "line"
	UIPlain = "plain"
)

// Settings is the resolved runtime configuration.
type Settings struct {
	// Workspace is the sandbox root; no write may land outside it.
	Workspace string `mapstructure:"workspace"`

	// UI selects the decision surface: tui, line, or plain.
	UI string `mapstructure:"ui"`

	// AutoApprove skips all prompting. Sandboxing still applies.
	AutoApprove bool `mapstructure:"auto_approve"`

	// DecisionTimeout bounds how long an approval prompt may stay open.
	DecisionTimeout time.Duration `mapstructure:"decision_timeout"`

	LogLevel string `mapstructure:"log_level"`
}

// Load resolves settings for the given workspace. An empty workspace
// defaults to the current directory.
func Load(workspace string) (*Settings, error) {
	v := viper.New()
	v.SetDefault("workspace", ".")
	v.SetDefault("ui", UILine)
	v.SetDefault("auto_approve", false)
	v.SetDefault("decision_timeout", 300*time.Second)
	v.SetDefault("log_level", "info")

	v.SetEnvPrefix("DOCPILOT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if workspace != "" {
		v.Set("workspace", workspace)
	}

	root, err := filepath.Abs(v.GetString("workspace"))
	if err != nil {
		return nil, fmt.Errorf("resolve workspace: %w", err)
	}
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("workspace %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("workspace %s is not a directory", root)
	}

	v.SetConfigName("docpilot")
	v.SetConfigType("yaml")
	v.AddConfigPath(root)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	s.Workspace = root

	switch s.UI {
	case UITUI, UILine, UIPlain:
	default:
		return nil, fmt.Errorf("unknown ui mode %q (want %s, %s, or %s)", s.UI, UITUI, UILine, UIPlain)
	}
	if s.DecisionTimeout <= 0 {
		s.DecisionTimeout = 300 * time.Second
	}
	return &s, nil
}
