package config

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/BurntSushi/toml"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Format != DefaultFormat {
		t.Errorf("expected format %q, got %q", DefaultFormat, cfg.Format)
	}
	if cfg.MaxDepth != 0 {
		t.Errorf("expected unlimited max_depth, got %d", cfg.MaxDepth)
	}
	if len(cfg.Files) != 0 {
		t.Errorf("expected no default files, got %v", cfg.Files)
	}
}

func TestLoadFrom_Nonexistent(t *testing.T) {
	t.Setenv(EnvFormat, "")
	t.Setenv(EnvMaxDepth, "")

	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("expected no error for missing file, got %v", err)
	}
	if !reflect.DeepEqual(cfg, Default()) {
		t.Errorf("expected default config, got %+v", cfg)
	}
}

func TestLoadFrom_AllFields(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv(EnvFormat, "")
	t.Setenv(EnvMaxDepth, "")

	path := writeConfig(t, `
files = ["~/.config/sway/config", "/etc/sway/config"]
format = "json"
max_depth = 4
env_file = "~/.config/dotd/env"

[env]
THEME = "dark"
`)

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom failed: %v", err)
	}

	wantFiles := []string{filepath.Join(home, ".config/sway/config"), "/etc/sway/config"}
	if !reflect.DeepEqual(cfg.Files, wantFiles) {
		t.Errorf("Files = %v, want %v", cfg.Files, wantFiles)
	}
	if cfg.Format != "json" {
		t.Errorf("Format = %q, want json", cfg.Format)
	}
	if cfg.MaxDepth != 4 {
		t.Errorf("MaxDepth = %d, want 4", cfg.MaxDepth)
	}
	if cfg.EnvFile != filepath.Join(home, ".config/dotd/env") {
		t.Errorf("EnvFile = %q, want expanded path", cfg.EnvFile)
	}
	if cfg.Env["THEME"] != "dark" {
		t.Errorf("Env[THEME] = %q, want dark", cfg.Env["THEME"])
	}
}

func TestLoadFrom_Invalid(t *testing.T) {
	t.Setenv(EnvFormat, "")
	t.Setenv(EnvMaxDepth, "")

	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{"bad toml", `format = `, "failed to parse config file"},
		{"unknown format", `format = "xml"`, `invalid format "xml"`},
		{"negative depth", `max_depth = -1`, "invalid max_depth"},
		{"relative file", `files = ["./config"]`, "files[0] must be absolute"},
		{"relative env file", `env_file = "env"`, "env_file must be absolute"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := LoadFrom(writeConfig(t, tt.content))
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %q, want to contain %q", err, tt.wantErr)
			}
			if !reflect.DeepEqual(cfg, Default()) {
				t.Errorf("expected default config on error, got %+v", cfg)
			}
		})
	}
}

func TestLoadFrom_EnvOverrides(t *testing.T) {
	t.Setenv(EnvFormat, "yaml")
	t.Setenv(EnvMaxDepth, "7")

	cfg, err := LoadFrom(writeConfig(t, "format = \"json\"\nmax_depth = 2\n"))
	if err != nil {
		t.Fatalf("LoadFrom failed: %v", err)
	}
	if cfg.Format != "yaml" {
		t.Errorf("Format = %q, want yaml from %s", cfg.Format, EnvFormat)
	}
	if cfg.MaxDepth != 7 {
		t.Errorf("MaxDepth = %d, want 7 from %s", cfg.MaxDepth, EnvMaxDepth)
	}
}

func TestLoadFrom_BadEnvOverride(t *testing.T) {
	t.Setenv(EnvFormat, "")
	t.Setenv(EnvMaxDepth, "deep")

	if _, err := LoadFrom(writeConfig(t, "")); err == nil {
		t.Error("expected error for non-numeric DOTD_MAX_DEPTH")
	}
}

func TestPath(t *testing.T) {
	t.Run("xdg", func(t *testing.T) {
		t.Setenv("XDG_CONFIG_HOME", "/xdg")
		got, err := Path()
		if err != nil {
			t.Fatalf("Path failed: %v", err)
		}
		if got != filepath.Join("/xdg", "dotd", "config.toml") {
			t.Errorf("Path() = %q", got)
		}
	})

	t.Run("home fallback", func(t *testing.T) {
		t.Setenv("XDG_CONFIG_HOME", "")
		t.Setenv("HOME", "/home/test")
		got, err := Path()
		if err != nil {
			t.Fatalf("Path failed: %v", err)
		}
		if got != filepath.Join("/home/test", ".config", "dotd", "config.toml") {
			t.Errorf("Path() = %q", got)
		}
	})
}

func TestInit(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	path, err := Init(false)
	if err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("config file not created: %v", err)
	}

	if _, err := Init(false); err == nil {
		t.Error("expected error when config already exists")
	}
	if _, err := Init(true); err != nil {
		t.Errorf("Init with force failed: %v", err)
	}
}

func TestDefaultConfigParses(t *testing.T) {
	t.Parallel()

	var cfg Config
	if _, err := toml.Decode(DefaultConfig(), &cfg); err != nil {
		t.Fatalf("default config is not valid TOML: %v", err)
	}
	if cfg.Format != DefaultFormat {
		t.Errorf("default template format = %q, want %q", cfg.Format, DefaultFormat)
	}
}

func TestValidatePath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path    string
		wantErr bool
	}{
		{"", false},
		{"~", false},
		{"~/conf", false},
		{"/etc/conf", false},
		{"conf", true},
		{"./conf", true},
		{"../conf", true},
	}

	for _, tt := range tests {
		err := ValidatePath(tt.path, "files[0]")
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidatePath(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
		}
	}
}

func TestValidateFormat(t *testing.T) {
	t.Parallel()

	for _, f := range ValidFormats {
		if err := ValidateFormat(f); err != nil {
			t.Errorf("ValidateFormat(%q) = %v", f, err)
		}
	}
	err := ValidateFormat("xml")
	if err == nil {
		t.Fatal("expected error for xml")
	}
	if want := `"text", "json", "toml", or "yaml"`; !strings.Contains(err.Error(), want) {
		t.Errorf("error = %q, want to list %s", err, want)
	}
}

func TestFormatOptions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		opts []string
		want string
	}{
		{[]string{"a"}, `"a"`},
		{[]string{"a", "b"}, `"a" or "b"`},
		{[]string{"a", "b", "c"}, `"a", "b", or "c"`},
	}
	for _, tt := range tests {
		if got := formatOptions(tt.opts); got != tt.want {
			t.Errorf("formatOptions(%v) = %q, want %q", tt.opts, got, tt.want)
		}
	}
}

func TestWithConfig_FromContext(t *testing.T) {
	t.Parallel()

	cfg := &Config{Format: "toml"}
	ctx := WithConfig(context.Background(), cfg)
	if got := FromContext(ctx); got != cfg {
		t.Error("FromContext did not return the stored config")
	}

	if got := FromContext(context.Background()); got.Format != DefaultFormat {
		t.Errorf("fallback config format = %q, want %q", got.Format, DefaultFormat)
	}
}
