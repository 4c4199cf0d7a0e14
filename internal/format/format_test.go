package format

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/raphi011/dotd/internal/resolve"
)

var sample = resolve.Result{
	Active: false,
	Font:   `"DejaVu Sans Mono"`,
	Files:  []string{"/etc/dotd/a.conf", "/etc/dotd/b.conf"},
}

func TestRender_Plain(t *testing.T) {
	t.Parallel()

	got, err := Render(sample, Text, false)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	want := "active\tfalse\n" +
		"font\t\"DejaVu Sans Mono\"\n" +
		"file\t/etc/dotd/a.conf\n" +
		"file\t/etc/dotd/b.conf\n"
	if got != want {
		t.Errorf("Render() =\n%s\nwant\n%s", got, want)
	}
}

func TestRender_EmptyFormatIsText(t *testing.T) {
	t.Parallel()

	got, err := Render(sample, "", false)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if !strings.HasPrefix(got, "active\tfalse\n") {
		t.Errorf("expected plain text output, got %q", got)
	}
}

func TestRender_Table(t *testing.T) {
	t.Parallel()

	got, err := Render(sample, Text, true)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	for _, want := range []string{"KEY", "VALUE", "active", "font", "DejaVu Sans Mono", "/etc/dotd/b.conf"} {
		if !strings.Contains(got, want) {
			t.Errorf("table output missing %q:\n%s", want, got)
		}
	}
	if strings.Contains(got, "\t") {
		t.Error("table output should not contain tabs")
	}
}

func TestRender_Structured(t *testing.T) {
	t.Parallel()

	tests := []struct {
		format string
		decode func(string) (resolve.Result, error)
	}{
		{JSON, func(s string) (resolve.Result, error) {
			var r resolve.Result
			err := json.Unmarshal([]byte(s), &r)
			return r, err
		}},
		{TOML, func(s string) (resolve.Result, error) {
			var r resolve.Result
			_, err := toml.Decode(s, &r)
			return r, err
		}},
		{YAML, func(s string) (resolve.Result, error) {
			var r resolve.Result
			err := yaml.Unmarshal([]byte(s), &r)
			return r, err
		}},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			t.Parallel()

			out, err := Render(sample, tt.format, true)
			if err != nil {
				t.Fatalf("Render failed: %v", err)
			}
			got, err := tt.decode(out)
			if err != nil {
				t.Fatalf("output does not decode: %v\n%s", err, out)
			}
			if got.Active != sample.Active || got.Font != sample.Font || len(got.Files) != 2 {
				t.Errorf("decoded %+v, want %+v", got, sample)
			}
		})
	}
}

func TestRender_JSONEmptyFiles(t *testing.T) {
	t.Parallel()

	out, err := Render(resolve.Default().Result(), JSON, false)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if !strings.Contains(out, `"files": []`) {
		t.Errorf("expected empty files array, got:\n%s", out)
	}
}

func TestRender_UnknownFormat(t *testing.T) {
	t.Parallel()

	if _, err := Render(sample, "ini", false); err == nil {
		t.Fatal("expected error for unknown format")
	}
}
