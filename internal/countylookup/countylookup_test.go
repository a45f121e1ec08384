package countylookup

import (
	"archive/zip"
	"os"
	"path/filepath"
	"testing"

	"github.com/jonas-p/go-shp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type row struct {
	state, cwa, name, fips string
	lon, lat               float64
}

// writeCountyShapefile builds a small county shapefile in dir
func writeCountyShapefile(t *testing.T, dir string, rows []row) string {
	t.Helper()
	path := filepath.Join(dir, "c_test.shp")

	w, err := shp.Create(path, shp.POLYGON)
	require.NoError(t, err)

	require.NoError(t, w.SetFields([]shp.Field{
		shp.StringField("STATE", 2),
		shp.StringField("CWA", 9),
		shp.StringField("COUNTYNAME", 24),
		shp.StringField("FIPS", 5),
		shp.FloatField("LON", 12, 5),
		shp.FloatField("LAT", 12, 5),
	}))

	for _, r := range rows {
		square := [][]shp.Point{{
			{X: r.lon - 0.1, Y: r.lat - 0.1},
			{X: r.lon - 0.1, Y: r.lat + 0.1},
			{X: r.lon + 0.1, Y: r.lat + 0.1},
			{X: r.lon + 0.1, Y: r.lat - 0.1},
			{X: r.lon - 0.1, Y: r.lat - 0.1},
		}}
		poly := shp.Polygon(*shp.NewPolyLine(square))
		n := int(w.Write(&poly))

		require.NoError(t, w.WriteAttribute(n, 0, r.state))
		require.NoError(t, w.WriteAttribute(n, 1, r.cwa))
		require.NoError(t, w.WriteAttribute(n, 2, r.name))
		require.NoError(t, w.WriteAttribute(n, 3, r.fips))
		require.NoError(t, w.WriteAttribute(n, 4, r.lon))
		require.NoError(t, w.WriteAttribute(n, 5, r.lat))
	}
	w.Close()
	return path
}

var georgiaRows = []row{
	{"GA", "FFC", "Fulton", "13121", -84.47, 33.79},
	{"GA", "FFC", "DeKalb", "13089", -84.23, 33.77},
	{"GA", "GSP", "Rabun", "13241", -83.40, 34.88},
	{"GA", "GSP", "Habersham", "13137", -83.53, 34.63},
	{"SC", "GSP", "Oconee", "45073", -83.07, 34.75},
	{"GA", "GSP", "Rabun", "13241", -83.40, 34.88},
}

func TestLoad(t *testing.T) {
	path := writeCountyShapefile(t, t.TempDir(), georgiaRows)

	counties, err := Load(path)
	require.NoError(t, err)
	require.Len(t, counties, 6)

	fulton := counties[0]
	assert.Equal(t, "Fulton", fulton.Name)
	assert.Equal(t, "GA", fulton.State)
	assert.Equal(t, "FFC", fulton.CWA)
	assert.Equal(t, "13121", fulton.FIPS)
	assert.InDelta(t, 33.79, fulton.Lat, 0.0001)
	assert.InDelta(t, -84.47, fulton.Lon, 0.0001)
}

func TestLoad_MissingFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.shp")
	w, err := shp.Create(path, shp.POINT)
	require.NoError(t, err)
	require.NoError(t, w.SetFields([]shp.Field{shp.StringField("NAME", 10)}))
	w.Close()

	_, err = Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "COUNTYNAME")
}

func TestLoad_NoFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.shp"))
	assert.Error(t, err)
}

func TestForOffice(t *testing.T) {
	path := writeCountyShapefile(t, t.TempDir(), georgiaRows)
	counties, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"Habersham", "Oconee", "Rabun"}, ForOffice(counties, "gsp", ""))
	assert.Equal(t, []string{"Habersham", "Rabun"}, ForOffice(counties, "GSP", "ga"))
	assert.Equal(t, []string{"DeKalb", "Fulton"}, ForOffice(counties, "FFC", "GA"))
	assert.Empty(t, ForOffice(counties, "BMX", ""))
}

func TestUnzipFile(t *testing.T) {
	dir := t.TempDir()
	zipPath := filepath.Join(dir, "c.zip")

	f, err := os.Create(zipPath)
	require.NoError(t, err)
	zw := zip.NewWriter(f)
	for _, name := range []string{"c_test.shp", "c_test.dbf"} {
		fw, err := zw.Create(name)
		require.NoError(t, err)
		_, err = fw.Write([]byte("data"))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())

	out := filepath.Join(dir, "out")
	require.NoError(t, os.MkdirAll(out, 0755))
	files, err := unzipFile(zipPath, out)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{filepath.Join(out, "c_test.shp"), filepath.Join(out, "c_test.dbf")}, files)
}

func TestUnzipFile_RejectsZipSlip(t *testing.T) {
	dir := t.TempDir()
	zipPath := filepath.Join(dir, "evil.zip")

	f, err := os.Create(zipPath)
	require.NoError(t, err)
	zw := zip.NewWriter(f)
	_, err = zw.Create("../escape.shp")
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())

	_, err = unzipFile(zipPath, filepath.Join(dir, "out"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "illegal file path")
}
