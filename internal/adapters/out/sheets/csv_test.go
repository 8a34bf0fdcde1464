package sheets_test

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"studydesk/internal/adapters/out/sheets"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCSVExporter_Append(t *testing.T) {
	path := filepath.Join(t.TempDir(), "export", "orders.csv")
	e := sheets.NewCSVExporter(path, []string{"Группа", "Комментарий"})

	require.NoError(t, e.Append(t.Context(), []string{"ИВТ-21", "Нет"}))
	require.NoError(t, e.Append(t.Context(), []string{"ПИ-12", "Срочно, с графиками"}))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"Группа", "Комментарий"},
		{"ИВТ-21", "Нет"},
		{"ПИ-12", "Срочно, с графиками"},
	}, rows)
}

func TestCSVExporter_RejectsWrongWidth(t *testing.T) {
	e := sheets.NewCSVExporter(filepath.Join(t.TempDir(), "orders.csv"), []string{"a", "b"})

	assert.Error(t, e.Append(t.Context(), []string{"only one"}))
}
