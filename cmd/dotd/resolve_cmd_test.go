package main

import (
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/raphi011/dotd/internal/config"
	"github.com/raphi011/dotd/internal/resolve"
	"github.com/raphi011/dotd/internal/storage"
)

func TestResolveCmd_Text(t *testing.T) {
	t.Parallel()

	root := writeTree(t, map[string]string{
		"main.conf":         "include $ROOT/conf.d/*.conf\nactive off\n",
		"conf.d/font.conf":  "font Terminus\n",
		"conf.d/other.conf": "# nothing\n",
	})
	cfg := &config.Config{Format: "text", Env: map[string]string{"ROOT": root}}
	ctx, out := testContext(t, cfg)

	cmd := newResolveCmd()
	cmd.SetContext(ctx)
	cmd.SetArgs([]string{filepath.Join(root, "main.conf")})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("resolve failed: %v", err)
	}

	want := "active\tfalse\n" +
		"font\tTerminus\n" +
		"file\t" + filepath.Join(root, "conf.d/font.conf") + "\n" +
		"file\t" + filepath.Join(root, "conf.d/other.conf") + "\n" +
		"file\t" + filepath.Join(root, "main.conf") + "\n"
	if got := out.String(); got != want {
		t.Errorf("output =\n%s\nwant\n%s", got, want)
	}
}

func TestResolveCmd_JSONAndSave(t *testing.T) {
	t.Parallel()

	root := writeTree(t, map[string]string{
		"main.conf": "font Fira\n",
	})
	snap := filepath.Join(root, "state", "snap.json")
	ctx, out := testContext(t, nil)

	cmd := newResolveCmd()
	cmd.SetContext(ctx)
	cmd.SetArgs([]string{"-f", "json", "--save", snap, filepath.Join(root, "main.conf")})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("resolve failed: %v", err)
	}

	var printed resolve.Result
	if err := json.Unmarshal([]byte(out.String()), &printed); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out.String())
	}
	if printed.Font != "Fira" || !printed.Active || len(printed.Files) != 1 {
		t.Errorf("printed = %+v", printed)
	}

	saved, err := storage.LoadSnapshot(snap)
	if err != nil {
		t.Fatalf("snapshot not written: %v", err)
	}
	if saved.Font != printed.Font || saved.Files[0] != printed.Files[0] {
		t.Errorf("snapshot %+v does not match output %+v", saved, printed)
	}
}

func TestResolveCmd_DefaultFilesFromConfig(t *testing.T) {
	t.Parallel()

	root := writeTree(t, map[string]string{
		"main.conf": "active no\n",
	})
	cfg := &config.Config{Format: "yaml", Files: []string{filepath.Join(root, "main.conf")}}
	ctx, out := testContext(t, cfg)

	cmd := newResolveCmd()
	cmd.SetContext(ctx)
	cmd.SetArgs([]string{})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if !strings.Contains(out.String(), "active: false") {
		t.Errorf("expected yaml output from config format, got:\n%s", out.String())
	}
}

func TestResolveCmd_Errors(t *testing.T) {
	t.Parallel()

	root := writeTree(t, map[string]string{
		"bad.conf": "colour red\n",
	})

	tests := []struct {
		name    string
		args    []string
		wantErr error
		wantMsg string
	}{
		{
			name:    "no files",
			args:    []string{},
			wantErr: errNoFiles,
		},
		{
			name:    "missing file",
			args:    []string{filepath.Join(root, "missing.conf")},
			wantErr: resolve.ErrPathNotFound,
		},
		{
			name:    "unknown directive",
			args:    []string{filepath.Join(root, "bad.conf")},
			wantErr: resolve.ErrUnknownDirective,
			wantMsg: "bad.conf:1",
		},
		{
			name:    "invalid format",
			args:    []string{"-f", "ini", filepath.Join(root, "bad.conf")},
			wantMsg: `invalid format "ini"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			ctx, out := testContext(t, nil)

			cmd := newResolveCmd()
			cmd.SetContext(ctx)
			cmd.SetArgs(tt.args)

			err := cmd.Execute()
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
			if tt.wantMsg != "" && !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("error = %q, want to contain %q", err, tt.wantMsg)
			}
			if out.String() != "" {
				t.Errorf("nothing should be printed on error, got %q", out.String())
			}
		})
	}
}
