package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCatalogue(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	cmd := NewCatalogueCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	require.NoError(t, cmd.Execute())
	return out.String()
}

func TestCatalogueCmd_Table(t *testing.T) {
	out := runCatalogue(t, "--shuffle-seed", "3")

	assert.Contains(t, out, "All Media (19)  Photos (17)  Videos (2)")
	assert.Contains(t, out, "240 KB")
	assert.Contains(t, out, "5 MB")
	assert.Contains(t, out, "VIDEO")
}

func TestCatalogueCmd_JSONIsReproducible(t *testing.T) {
	first := runCatalogue(t, "--shuffle-seed", "11", "--json")
	second := runCatalogue(t, "--shuffle-seed", "11", "--json")
	assert.Equal(t, first, second)

	var out catalogueOutput
	require.NoError(t, json.Unmarshal([]byte(first), &out))
	assert.Len(t, out.Entries, 19)
	assert.Equal(t, 19, out.Counts.Total)
}

func TestCatalogueCmd_Filter(t *testing.T) {
	var out catalogueOutput
	require.NoError(t, json.Unmarshal([]byte(runCatalogue(t, "--filter", "video", "--json")), &out))

	assert.Len(t, out.Entries, 2)
	for _, e := range out.Entries {
		assert.True(t, e.IsVideo())
	}
	assert.Equal(t, 2, out.Counts.Videos)
}

func TestCatalogueCmd_SeedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.yaml")
	doc := "entries:\n  - id: 1\n    src: img/a.jpeg\n    name: A\n    size: 1024\n    type: photo\n"
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	out := runCatalogue(t, "--seed-file", path)
	assert.Contains(t, out, "1 KB")
	assert.Contains(t, out, "All Media (1)  Photos (1)  Videos (0)")
}

func TestCatalogueCmd_UnknownFilter(t *testing.T) {
	cmd := NewCatalogueCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--filter", "audio"})
	assert.Error(t, cmd.Execute())
}
