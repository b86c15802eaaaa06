package storage

import (
	"encoding/json"
	"io"
	"os"
)

// ExportData is a run with its samples inlined, one map per column.
type ExportData struct {
	RunMetadata
	Steps   int                  `json:"steps"`
	Times   []float64            `json:"times,omitempty"`
	Samples map[string][]float64 `json:"samples,omitempty"`
}

// NewExportData combines meta with table. A nil table exports metadata only.
func NewExportData(meta *RunMetadata, table *Table) ExportData {
	data := ExportData{RunMetadata: *meta}
	if table == nil {
		return data
	}

	data.Steps = len(table.Times)
	data.Times = table.Times
	data.Samples = make(map[string][]float64, len(table.Columns))
	for _, name := range table.Columns {
		data.Samples[name] = table.Column(name)
	}
	return data
}

func ExportJSON(path string, meta *RunMetadata, table *Table) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	return WriteJSON(file, meta, table)
}

func WriteJSON(w io.Writer, meta *RunMetadata, table *Table) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(NewExportData(meta, table))
}
