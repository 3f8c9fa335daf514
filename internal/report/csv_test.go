package report

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"waternet/internal/facade"
)

func TestWriteDeficitReport_StampsFilenameWithRunID(t *testing.T) {
	base := t.TempDir()
	w, err := NewWriter(base, "net1")
	require.NoError(t, err)

	require.NoError(t, w.WriteDeficitReport([]facade.DeficitRow{{City: "C1", Demand: 10, Deficit: 4}}))

	entries, err := os.ReadDir(filepath.Join(base, "net1"))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.True(t, strings.HasPrefix(entries[0].Name(), w.RunID()+"_"))
	require.True(t, strings.HasSuffix(entries[0].Name(), "deficit_report.csv"))
}

func TestNewWriter_EachInstanceGetsDistinctRunID(t *testing.T) {
	base := t.TempDir()
	w1, err := NewWriter(base, "net1")
	require.NoError(t, err)
	w2, err := NewWriter(base, "net1")
	require.NoError(t, err)
	require.NotEqual(t, w1.RunID(), w2.RunID())
}
