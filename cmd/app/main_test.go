package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/Domenick1991/routesuggest/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadTable_CSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "routes.csv")
	body := "airline,source_airport,destination_airport,source_country,price,distance\n" +
		"AirlineX,DEL,BOM,India,3000,1150\n" +
		"AirlineY,DEL,BOM,India,2500,1150\n"
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	cfg := config.Default()
	cfg.Dataset.Path = path

	table, err := loadTable(context.Background(), &cfg)
	require.NoError(t, err)
	assert.Equal(t, 2, table.Len())
	assert.Equal(t, []string{"DEL"}, table.ListAirports("India"))
}

func TestLoadTable_MissingFileIsFatal(t *testing.T) {
	cfg := config.Default()
	cfg.Dataset.Path = filepath.Join(t.TempDir(), "missing.csv")

	table, err := loadTable(context.Background(), &cfg)
	assert.Nil(t, table)
	assert.Error(t, err)
}

func TestLoadTable_UnknownSource(t *testing.T) {
	cfg := config.Default()
	cfg.Dataset.Source = "parquet"

	_, err := loadTable(context.Background(), &cfg)
	assert.Error(t, err)
}
