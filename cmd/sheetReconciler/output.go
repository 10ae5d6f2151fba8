package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/mattn/go-isatty"
	"github.com/olekukonko/tablewriter"
)

// Format is an output format of the CLI.
type Format string

const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
)

// Tabular is implemented by reports that can be printed as a table.
type Tabular interface {
	TableHeaders() []string
	TableRows() [][]string
}

// Formatter writes a report in one output format.
type Formatter interface {
	Format(w io.Writer, data any) error
}

// NewFormatter creates the formatter of the given format.
func NewFormatter(format Format) Formatter {
	switch format {
	case FormatJSON:
		return &JSONFormatter{Indent: "  "}
	case FormatYAML:
		return &YAMLFormatter{}
	default:
		return &TableFormatter{}
	}
}

// ParseFormat validates a format name. An empty name selects table output on a
// terminal and JSON otherwise.
func ParseFormat(s string) (Format, error) {
	format := Format(strings.ToLower(s))
	switch format {
	case FormatTable, FormatJSON, FormatYAML:
		return format, nil
	case "":
		if isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd()) {
			return FormatTable, nil
		}
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("invalid format: %s (must be table, json or yaml)", s)
	}
}

type JSONFormatter struct {
	Indent string
}

func (f *JSONFormatter) Format(w io.Writer, data any) error {
	encoder := json.NewEncoder(w)
	if f.Indent != "" {
		encoder.SetIndent("", f.Indent)
	}
	return encoder.Encode(data)
}

type YAMLFormatter struct{}

func (f *YAMLFormatter) Format(w io.Writer, data any) error {
	yamlData, err := yaml.MarshalWithOptions(data,
		yaml.Indent(2),
		yaml.IndentSequence(false),
	)
	if err != nil {
		return err
	}
	_, err = w.Write(yamlData)
	return err
}

// TableFormatter prints Tabular reports and falls back to JSON for anything else.
type TableFormatter struct{}

func (f *TableFormatter) Format(w io.Writer, data any) error {
	tabular, ok := data.(Tabular)
	if !ok {
		return (&JSONFormatter{Indent: "  "}).Format(w, data)
	}

	table := tablewriter.NewTable(w)

	headers := tabular.TableHeaders()
	headerData := make([]any, len(headers))
	for i, h := range headers {
		headerData[i] = h
	}
	table.Header(headerData...)

	for _, row := range tabular.TableRows() {
		rowData := make([]any, len(row))
		for i, cell := range row {
			rowData[i] = cell
		}
		if err := table.Append(rowData...); err != nil {
			return err
		}
	}

	return table.Render()
}
