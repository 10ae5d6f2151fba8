package reconcile

import (
	"fmt"

	"github.com/siherrmann/sheetReconciler/model"
)

// MappingConfig describes the copier workbook: the sheet needing mappings is
// joined with the sheet of existing mappings on Key.
type MappingConfig struct {
	ExistingSheet   string
	NeedSheet       string
	Key             string
	MappedPrefix    string
	RequiredColumns []string
	// Join decides how columns present in both sheets are named.
	Join JoinOptions
}

// DefaultMappingConfig returns the layout of the PBS drug mapping workbook.
func DefaultMappingConfig() MappingConfig {
	return MappingConfig{
		ExistingSheet:   "existing-mappings",
		NeedSheet:       "need-mapping",
		Key:             "MAPPING_KEY",
		MappedPrefix:    "MAP_PBS_DRUG_ID_",
		RequiredColumns: []string{"MAPPED_SYNONYM_ID", "PBS_CODE"},
		Join:            DefaultJoinOptions(),
	}
}

// Sheets returns the sheet names to load from the copier workbook.
func (c MappingConfig) Sheets() []string {
	return []string{c.ExistingSheet, c.NeedSheet}
}

// CopyMappings joins the need sheet (A) with the existing sheet (B) of the loaded
// workbook and projects the mapped columns.
func CopyMappings(tables map[string]*model.Table, cfg MappingConfig) (*model.Table, error) {
	r, err := newMappingReconciler(tables, cfg)
	if err != nil {
		return nil, err
	}
	return r.InnerJoinProject(cfg.MappedPrefix, cfg.RequiredColumns)
}

// MappingColumns returns the joined columns of the copier workbook before projection,
// to pick MappedPrefix and RequiredColumns from.
func MappingColumns(tables map[string]*model.Table, cfg MappingConfig) ([]string, error) {
	r, err := newMappingReconciler(tables, cfg)
	if err != nil {
		return nil, err
	}
	return r.JoinedColumns(), nil
}

func newMappingReconciler(tables map[string]*model.Table, cfg MappingConfig) (*Reconciler, error) {
	need, ok := tables[cfg.NeedSheet]
	if !ok {
		return nil, fmt.Errorf("sheet %q not loaded", cfg.NeedSheet)
	}
	existing, ok := tables[cfg.ExistingSheet]
	if !ok {
		return nil, fmt.Errorf("sheet %q not loaded", cfg.ExistingSheet)
	}
	return New(need, existing, cfg.Key, cfg.Join)
}
