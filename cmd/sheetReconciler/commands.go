package main

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/siherrmann/sheetReconciler"
	"github.com/siherrmann/sheetReconciler/model"
	"github.com/siherrmann/sheetReconciler/reconcile"
	"github.com/siherrmann/sheetReconciler/script"
	"github.com/siherrmann/sheetReconciler/sheet"
	"github.com/siherrmann/sheetReconciler/upload"

	"github.com/spf13/cobra"
)

func newServeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the web form",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := sheetReconciler.ServerConfigFromEnv()
			cfg.Port = a.config.Port
			cfg.Collision = a.config.Collision
			if a.config.StorageMode != "" {
				if err := os.Setenv("SHEET_RECONCILER_STORAGE_MODE", a.config.StorageMode); err != nil {
					return err
				}
			}
			a.logger.Info("Starting web form", slog.String("port", cfg.Port))
			sheetReconciler.ReconcilerServer(cfg)
			return nil
		},
	}
	cmd.Flags().String("port", "", "Port to listen on (default: 5000)")
	cmd.Flags().String("storage-mode", "", "Storage of uploaded workbooks: local, memory, s3")
	cmd.Flags().String("collision", "", "Columns present in both mapping sheets: keep_left or suffix_both (default: keep_left)")
	return cmd
}

// diffReport is the output of the diff command.
type diffReport struct {
	FileA                string `json:"file_a" yaml:"file_a"`
	FileB                string `json:"file_b" yaml:"file_b"`
	Key                  string `json:"key" yaml:"key"`
	NewRowsCount         int    `json:"new_rows_count" yaml:"new_rows_count"`
	NonExistingRowsCount int    `json:"non_existing_rows_count" yaml:"non_existing_rows_count"`
	Extracted            string `json:"extracted,omitempty" yaml:"extracted,omitempty"`
	ExtractedRows        int    `json:"extracted_rows,omitempty" yaml:"extracted_rows,omitempty"`
}

func (r diffReport) TableHeaders() []string {
	headers := []string{"FILE A", "FILE B", "KEY", "NEW ROWS", "NON EXISTING ROWS"}
	if r.Extracted != "" {
		headers = append(headers, "EXTRACTED", "EXTRACTED ROWS")
	}
	return headers
}

func (r diffReport) TableRows() [][]string {
	row := []string{r.FileA, r.FileB, r.Key, strconv.Itoa(r.NewRowsCount), strconv.Itoa(r.NonExistingRowsCount)}
	if r.Extracted != "" {
		row = append(row, r.Extracted, strconv.Itoa(r.ExtractedRows))
	}
	return [][]string{row}
}

func newDiffCmd(a *app) *cobra.Command {
	var (
		key     string
		sheetA  string
		sheetB  string
		extract string
		out     string
	)

	cmd := &cobra.Command{
		Use:   "diff A.xlsx B.xlsx",
		Short: "Count the rows present in only one of two workbooks",
		Long: `diff counts the rows of B whose key is not in A (new rows) and the rows of A
whose key is not in B (non existing rows). With --extract the selected rows are
written to a workbook.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := ParseFormat(a.config.Format)
			if err != nil {
				return err
			}

			tableA, err := readWorkbookFile(args[0], sheetA)
			if err != nil {
				return err
			}
			tableB, err := readWorkbookFile(args[1], sheetB)
			if err != nil {
				return err
			}

			r, err := reconcile.New(tableA, tableB, key)
			if err != nil {
				return err
			}
			counts := r.DiffCounts()
			a.logger.Info("Compared workbooks", slog.Int("new_rows", counts.NewCount), slog.Int("non_existing_rows", counts.MissingCount))

			report := diffReport{
				FileA:                args[0],
				FileB:                args[1],
				Key:                  key,
				NewRowsCount:         counts.NewCount,
				NonExistingRowsCount: counts.MissingCount,
			}

			if extract != "" {
				which, err := reconcile.ParseWhich(extract)
				if err != nil {
					return err
				}
				rows, err := r.ExtractRows(which)
				if err != nil {
					return err
				}
				if out == "" {
					out = which.String() + ".xlsx"
				}
				if err := writeWorkbookFile(out, rows, which.String()); err != nil {
					return err
				}
				report.Extracted = out
				report.ExtractedRows = rows.Len()
			}

			return NewFormatter(format).Format(cmd.OutOrStdout(), report)
		},
	}

	cmd.Flags().StringVarP(&key, "key", "k", "", "Key column present in both workbooks")
	cmd.Flags().StringVar(&sheetA, "sheet-a", "", "Sheet of workbook A (default: first sheet)")
	cmd.Flags().StringVar(&sheetB, "sheet-b", "", "Sheet of workbook B (default: first sheet)")
	cmd.Flags().StringVar(&extract, "extract", "", "Write rows to a workbook: new_rows or non_existing_rows")
	cmd.Flags().StringVarP(&out, "out", "o", "", "Output workbook of --extract (default: <extract>.xlsx)")
	cmd.Flags().StringP("format", "f", "", "Output format: table, json, yaml")
	_ = cmd.MarkFlagRequired("key")

	return cmd
}

func newCopyMappingsCmd(a *app) *cobra.Command {
	var (
		out        string
		scriptFile string
		scriptOut  string
		fieldMap   string
		columns    bool
	)

	cmd := &cobra.Command{
		Use:   "copy-mappings [WORKBOOK]",
		Short: "Copy existing mappings into the rows that need them",
		Long: `copy-mappings reads the sheets "existing-mappings" and "need-mapping" of the
workbook (default: copier.xlsx) from the workspace, joins them on MAPPING_KEY and
writes the mapped columns to final_table.xlsx in the workspace.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := "copier.xlsx"
			if len(args) == 1 {
				name = args[0]
			}

			filesystem, err := a.filesystem()
			if err != nil {
				return err
			}

			cfg := reconcile.DefaultMappingConfig()
			cfg.Join.Collision, err = reconcile.ParseCollisionPolicy(a.config.Collision)
			if err != nil {
				return err
			}
			reader, err := filesystem.Open(name)
			if err != nil {
				return fmt.Errorf("failed to open %s: %w", name, err)
			}
			tables, err := sheet.ReadSheets(reader, name, cfg.Sheets()...)
			reader.Close()
			if err != nil {
				return err
			}

			if columns {
				joined, err := reconcile.MappingColumns(tables, cfg)
				if err != nil {
					return err
				}
				for _, column := range joined {
					fmt.Fprintln(cmd.OutOrStdout(), column)
				}
				return nil
			}

			result, err := reconcile.CopyMappings(tables, cfg)
			if err != nil {
				return err
			}

			data, err := sheet.Bytes(result, "final_table")
			if err != nil {
				return err
			}
			if err := filesystem.Write(out, bytes.NewReader(data), int64(len(data))); err != nil {
				return fmt.Errorf("failed to write %s: %w", out, err)
			}
			a.logger.Info("Wrote mapping result", slog.String("file", out), slog.Int("rows", result.Len()))
			fmt.Fprintf(cmd.OutOrStdout(), "Processed %d rows and %d columns.\n", result.Len(), len(result.Columns))

			if scriptFile == "" {
				return nil
			}
			return writeScript(cmd.OutOrStdout(), result, scriptFile, fieldMap, scriptOut)
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "final_table.xlsx", "Result workbook written to the workspace")
	cmd.Flags().StringVar(&scriptFile, "script", "", "Template file expanded once per result row")
	cmd.Flags().StringVar(&fieldMap, "field-map", "", "JSON object of placeholder to column (default: column names)")
	cmd.Flags().StringVar(&scriptOut, "script-out", "", "Output file of --script (default: stdout)")
	cmd.Flags().String("collision", "", "Columns present in both sheets: keep_left or suffix_both (default: keep_left)")
	cmd.Flags().BoolVar(&columns, "columns", false, "Print the joined columns instead of writing the result")
	cmd.Flags().String("storage-mode", "", "Workspace storage: local, memory, s3 (default: local workspace directory)")

	return cmd
}

// filesystem returns the workspace: the configured storage mode, or the local
// workspace directory when none is set.
func (a *app) filesystem() (upload.Filesystem, error) {
	if a.config.StorageMode == "" {
		return upload.NewFilesystemLocal(a.config.Workspace), nil
	}
	if err := os.Setenv("SHEET_RECONCILER_STORAGE_MODE", a.config.StorageMode); err != nil {
		return nil, err
	}
	return upload.CreateFilesystemFromEnv()
}

func writeScript(stdout io.Writer, result *model.Table, templateFile, rawFieldMap, scriptOut string) error {
	// #nosec G304 -- the template path is given by the user on the command line.
	template, err := os.ReadFile(templateFile)
	if err != nil {
		return fmt.Errorf("failed to read template: %w", err)
	}

	fieldMap := model.IdentityFieldMap(result.Columns)
	if strings.TrimSpace(rawFieldMap) != "" {
		fieldMap = model.FieldMap{}
		if err := fieldMap.Unmarshal(rawFieldMap); err != nil {
			return fmt.Errorf("invalid field map: %w", err)
		}
	}

	out, err := script.Expand(result, string(template), fieldMap)
	if err != nil {
		return err
	}

	if scriptOut == "" {
		_, err = io.WriteString(stdout, out)
		return err
	}
	return os.WriteFile(scriptOut, []byte(out), 0644)
}

func readWorkbookFile(path, sheetName string) (*model.Table, error) {
	// #nosec G304 -- the workbook path is given by the user on the command line.
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return sheet.Read(file, sheet.ReadOptions{File: filepath.Base(path), Sheet: sheetName})
}

func writeWorkbookFile(path string, table *model.Table, sheetName string) error {
	data, err := sheet.Bytes(table, sheetName)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
