package shapefile

import (
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/twpayne/go-geom"
)

func TestWriteFixture_WritesSiblingFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "PH_Adm4_BgySubMuns.shp")
	require.NoError(t, WriteFixture(path, []Feature{
		{ProvinceCode: 401000000, Name: "A", Rings: [][]geom.Coord{cwSquare(0, 0, 1)}},
	}))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	slices.Sort(names)
	assert.Equal(t, []string{
		"PH_Adm4_BgySubMuns.dbf",
		"PH_Adm4_BgySubMuns.shp",
		"PH_Adm4_BgySubMuns.shx",
	}, names)

	r, err := Open(path, discardLogger())
	require.NoError(t, err)
	defer r.Close()
	assert.Len(t, readAll(t, r), 1)
}

func TestWriteFixture_UppercaseExtension(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "BGY.SHP")
	require.NoError(t, WriteFixture(path, nil))

	_, err := os.Stat(filepath.Join(dir, "BGY.dbf"))
	require.NoError(t, err)
}
