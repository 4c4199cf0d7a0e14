package format

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"
	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/raphi011/dotd/internal/resolve"
	"github.com/raphi011/dotd/internal/ui/styles"
)

// Supported output formats
const (
	Text = "text"
	JSON = "json"
	TOML = "toml"
	YAML = "yaml"
)

// Render formats res in the given format. styled only affects text output.
func Render(res resolve.Result, format string, styled bool) (string, error) {
	switch format {
	case Text, "":
		if styled {
			return renderTable(res), nil
		}
		return renderPlain(res), nil
	case JSON:
		data, err := json.MarshalIndent(res, "", "  ")
		if err != nil {
			return "", fmt.Errorf("encode json: %w", err)
		}
		return string(data) + "\n", nil
	case TOML:
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(res); err != nil {
			return "", fmt.Errorf("encode toml: %w", err)
		}
		return buf.String(), nil
	case YAML:
		data, err := yaml.Marshal(res)
		if err != nil {
			return "", fmt.Errorf("encode yaml: %w", err)
		}
		return string(data), nil
	}
	return "", fmt.Errorf("unknown format %q", format)
}

// Rows returns the KEY/VALUE rows shown in text output.
func Rows(res resolve.Result) [][]string {
	rows := [][]string{
		{"active", strconv.FormatBool(res.Active)},
		{"font", res.Font},
	}
	for _, f := range res.Files {
		rows = append(rows, []string{"file", f})
	}
	return rows
}

func renderPlain(res resolve.Result) string {
	var b strings.Builder
	for _, row := range Rows(res) {
		b.WriteString(row[0])
		b.WriteByte('\t')
		b.WriteString(row[1])
		b.WriteByte('\n')
	}
	return b.String()
}

// renderTable renders the rows with lipgloss/table. No borders are rendered;
// file rows are muted so the settings stand out.
func renderTable(res resolve.Result) string {
	rows := Rows(res)

	t := table.New().
		Headers("KEY", "VALUE").
		Rows(rows...).
		BorderTop(false).
		BorderBottom(false).
		BorderLeft(false).
		BorderRight(false).
		BorderHeader(false).
		BorderColumn(false).
		BorderRow(false).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return styles.HeaderCell
			case rows[row][0] == "file":
				return styles.FileCell
			case col == 0:
				return styles.KeyCell
			}
			return styles.ValueCell
		})

	return t.String() + "\n"
}
