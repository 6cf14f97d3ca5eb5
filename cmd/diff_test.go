package cmd

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// Legacy colon grammar and canonical tab grammar describing the same
// coordinates must normalize to identical canonical text.
func TestCanonicalText_NormalizesGrammars(t *testing.T) {
	legacy := writeFile(t, "legacy.txt",
		"Point I: 1.000000 2.000000 3.000000\n"+
			"Point P: to_be_defined\n")
	canonical := writeFile(t, "canonical.txt",
		"[POINTS]\n"+
			"Label\tStatus\tX\tY\tZ\n"+
			"I\tdefined\t1.000000\t2.000000\t3.000000\n"+
			"P\tto_be_defined\t\t\t\n")

	ctx := context.Background()
	a, err := canonicalText(ctx, legacy)
	require.NoError(t, err)
	b, err := canonicalText(ctx, canonical)
	require.NoError(t, err)

	require.Equal(t, a, b)
	require.Contains(t, a, "[POINTS]")
	require.Contains(t, a, "I\tdefined\t1.000000\t2.000000\t3.000000")
}

func TestCanonicalText_MissingFile(t *testing.T) {
	_, err := canonicalText(context.Background(), filepath.Join(t.TempDir(), "nope.txt"))
	require.Error(t, err)
}
