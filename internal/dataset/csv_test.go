package dataset

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/zip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCSV = `country_or_area,year,value,category
Australia,2014,393126.946994288,carbon_dioxide_co2_emissions_without_land_use_land_use_change_and_forestry_lulucf_in_kilotonne_co2_equivalent
Australia,2013,396913.93653029,carbon_dioxide_co2_emissions_without_land_use_land_use_change_and_forestry_lulucf_in_kilotonne_co2_equivalent
Austria,1990,3.5,methane_ch4_emissions_without_land_use_land_use_change_and_forestry_lulucf_in_kilotonne_co2_equivalent
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func writeZip(t *testing.T, entries map[string]string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "archive.zip")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	w := zip.NewWriter(f)
	for name, content := range entries {
		entry, err := w.Create(name)
		require.NoError(t, err)
		_, err = entry.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return path
}

func TestLoadCSV(t *testing.T) {
	rows, err := Load(writeFile(t, "data.csv", sampleCSV))
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, "Australia", rows[0].Country)
	assert.Equal(t, int64(2014), rows[0].Year)
	assert.InDelta(t, 393126.946994288, rows[0].Value, 1e-9)
	assert.Equal(t, "Austria", rows[2].Country)
	assert.Contains(t, rows[2].Category, "methane_ch4_emissions")
}

func TestLoadZipMatchesCSV(t *testing.T) {
	fromCSV, err := Load(writeFile(t, "data.csv", sampleCSV))
	require.NoError(t, err)

	fromZip, err := Load(writeZip(t, map[string]string{"greenhouse_gas_inventory_data_data.csv": sampleCSV}))
	require.NoError(t, err)

	assert.Equal(t, fromCSV, fromZip)
}

func TestLoadZipWithoutCSV(t *testing.T) {
	_, err := Load(writeZip(t, map[string]string{"README.txt": "nothing here"}))
	assert.ErrorIs(t, err, ErrNoCSVInArchive)
}

func TestParseExtraColumnsAndBOM(t *testing.T) {
	data := "\xEF\xBB\xBFcategory,value,year,country_or_area,unit\nco2_emissions,10,2000,Chile,kt\n"
	rows, err := Parse([]byte(data))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, Row{Country: "Chile", Year: 2000, Value: 10, Category: "co2_emissions"}, rows[0])
}

func TestParseErrors(t *testing.T) {
	cases := []struct {
		tag  string
		data string
	}{
		{tag: "empty", data: ""},
		{tag: "missing column", data: "country_or_area,year,value\nChile,2000,1\n"},
		{tag: "non numeric year", data: "country_or_area,year,value,category\nChile,two thousand,1,co2_emissions\n"},
		{tag: "non numeric value", data: "country_or_area,year,value,category\nChile,2000,lots,co2_emissions\n"},
		{tag: "empty year", data: "country_or_area,year,value,category\nChile,2000,1,co2_emissions\nPeru,,5,co2_emissions\n"},
		{tag: "empty value", data: "country_or_area,year,value,category\nChile,2000,,co2_emissions\n"},
		{tag: "fractional year", data: "country_or_area,year,value,category\nChile,2000.5,1,co2_emissions\n"},
	}

	for _, c := range cases {
		t.Run(c.tag, func(t *testing.T) {
			_, err := Parse([]byte(c.data))
			assert.Error(t, err)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.csv"))
	assert.Error(t, err)
}
