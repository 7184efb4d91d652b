package main

import (
	"os"
	"path/filepath"
	"testing"
)

// resetFlags restores global flag state after each test.
func resetFlags(t *testing.T) {
	t.Helper()
	orig := struct{ data, mode, fmt, level string }{flagData, flagMode, flagFmt, flagLogLevel}
	t.Cleanup(func() {
		flagData = orig.data
		flagMode = orig.mode
		flagFmt = orig.fmt
		flagLogLevel = orig.level
	})

	flagData = defaultData
	flagMode = defaultMode
	flagFmt = "json"
	flagLogLevel = defaultLogLevel
}

// unsetEnv temporarily unsets an environment variable and restores it on cleanup.
func unsetEnv(t *testing.T, key string) {
	t.Helper()
	prev, exists := os.LookupEnv(key)
	os.Unsetenv(key)
	t.Cleanup(func() {
		if exists {
			os.Setenv(key, prev)
		} else {
			os.Unsetenv(key)
		}
	})
}

// setEnv temporarily sets an environment variable and restores it on cleanup.
func setEnv(t *testing.T, key, val string) {
	t.Helper()
	prev, exists := os.LookupEnv(key)
	os.Setenv(key, val)
	t.Cleanup(func() {
		if exists {
			os.Setenv(key, prev)
		} else {
			os.Unsetenv(key)
		}
	})
}

// isolate clears every variable resolveConfig reads and points HOME at an
// empty temp dir, which is returned.
func isolate(t *testing.T) string {
	t.Helper()
	resetFlags(t)
	for _, k := range []string{"CAPEC_DATA", "CAPEC_PARSE_MODE", "LOG_LEVEL"} {
		unsetEnv(t, k)
	}
	tmp := t.TempDir()
	setEnv(t, "HOME", tmp)
	return tmp
}

func writeConfig(t *testing.T, home, content string) {
	t.Helper()
	cfgDir := filepath.Join(home, ".capec-rel")
	if err := os.MkdirAll(cfgDir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(cfgDir, "config.yaml"), []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
}

// TestResolveConfigEnv verifies that CAPEC_* variables override the defaults.
func TestResolveConfigEnv(t *testing.T) {
	isolate(t)
	setEnv(t, "CAPEC_DATA", "/data/env.csv")
	setEnv(t, "CAPEC_PARSE_MODE", "strict")
	setEnv(t, "LOG_LEVEL", "debug")

	resolveConfig()

	if flagData != "/data/env.csv" {
		t.Errorf("flagData: got %q", flagData)
	}
	if flagMode != "strict" {
		t.Errorf("flagMode: got %q", flagMode)
	}
	if flagLogLevel != "debug" {
		t.Errorf("flagLogLevel: got %q", flagLogLevel)
	}
}

func TestResolveConfigFlagTakesPrecedenceOverEnv(t *testing.T) {
	isolate(t)
	setEnv(t, "CAPEC_DATA", "/data/env.csv")

	flagData = "/data/flag.csv"
	resolveConfig()

	if flagData != "/data/flag.csv" {
		t.Errorf("flag should win over env: got %q", flagData)
	}
}

func TestResolveConfigYAML(t *testing.T) {
	home := isolate(t)
	writeConfig(t, home, "data: /data/file.csv\nmode: strict\nformat: table\nlog_level: error\n")

	resolveConfig()

	if flagData != "/data/file.csv" {
		t.Errorf("flagData from config: got %q", flagData)
	}
	if flagMode != "strict" {
		t.Errorf("flagMode from config: got %q", flagMode)
	}
	if flagFmt != "table" {
		t.Errorf("flagFmt from config: got %q", flagFmt)
	}
	if flagLogLevel != "error" {
		t.Errorf("flagLogLevel from config: got %q", flagLogLevel)
	}
}

func TestResolveConfigEnvNotOverriddenByFile(t *testing.T) {
	home := isolate(t)
	setEnv(t, "CAPEC_DATA", "/data/env.csv")
	writeConfig(t, home, "data: /data/file.csv\n")

	resolveConfig()

	if flagData != "/data/env.csv" {
		t.Errorf("env should win over config file: got %q", flagData)
	}
}

func TestResolveConfigMissingFile(t *testing.T) {
	isolate(t)

	resolveConfig()

	if flagData != defaultData || flagMode != defaultMode {
		t.Errorf("defaults should be kept: got %q %q", flagData, flagMode)
	}
}

func TestResolveConfigInvalidYAML(t *testing.T) {
	home := isolate(t)
	writeConfig(t, home, "data: [unterminated\n")

	resolveConfig()

	if flagData != defaultData {
		t.Errorf("invalid config should be ignored: got %q", flagData)
	}

	if _, err := readConfigFile(filepath.Join(home, ".capec-rel", "config.yaml")); err == nil {
		t.Error("readConfigFile should report the parse error")
	}
}

func TestNewLogger(t *testing.T) {
	log, err := newLogger("debug", true)
	if err != nil {
		t.Fatalf("newLogger: %v", err)
	}
	if log.GetLevel().String() != "debug" {
		t.Errorf("level: got %s", log.GetLevel())
	}

	if _, err := newLogger("loud", false); err == nil {
		t.Error("expected an error for an unknown level")
	}
}

func TestServeConfigAppliesFlags(t *testing.T) {
	isolate(t)
	for _, k := range []string{"PORT", "LISTEN_HOST", "CORS_ORIGINS", "LAYOUT_SEED", "LAYOUT_ITERATIONS", "ENABLE_GRAPHQL"} {
		unsetEnv(t, k)
	}

	flagData = "/data/x.csv"
	flagMode = "strict"
	flagLogLevel = "debug"

	cfg, err := serveConfig()
	if err != nil {
		t.Fatalf("serveConfig: %v", err)
	}

	if cfg.DataPath != "/data/x.csv" || cfg.ParseMode != "strict" || cfg.LogLevel != "debug" {
		t.Errorf("flags not applied: %+v", cfg)
	}
	if cfg.Addr() != "127.0.0.1:8501" {
		t.Errorf("addr: got %q", cfg.Addr())
	}
}

func TestServeConfigRejectsBadMode(t *testing.T) {
	isolate(t)

	flagMode = "sloppy"

	if _, err := serveConfig(); err == nil {
		t.Error("expected a validation error")
	}
}
