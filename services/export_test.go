package services

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"barbearia-backend/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportFilename(t *testing.T) {
	assert.Equal(t, "faturamento_3_2025.csv", ExportFilename(time.March, 2025))
	assert.Equal(t, "faturamento_12_2024.csv", ExportFilename(time.December, 2024))
}

func TestWriteCSVEmptyPeriod(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, nil, nil, nil))

	reader := csv.NewReader(&buf)
	reader.Comma = ';'
	rows, err := reader.ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 1, "header row only")
	assert.Equal(t, CSVHeader, rows[0])
}

func TestWriteCSVRoundTrip(t *testing.T) {
	barber := staffRecord("João Silva", "joao@shop.com")
	corte := models.Service{ID: uuid.New(), Name: "Corte", Price: decimal.NewFromInt(30)}
	barba := models.Service{ID: uuid.New(), Name: "Barba", Price: decimal.NewFromInt(20)}

	when := time.Date(2025, time.March, 15, 14, 30, 0, 0, time.Local)
	txs := []models.Transaction{
		makeTx(barber.ID, when, 100, 0.40, models.MethodPix),
		makeTx(barber.ID, when.Add(time.Hour), 35.5, 0.40, models.MethodDinheiro),
		makeTx(uuid.New(), when.Add(2*time.Hour), 20, 0.40, models.MethodDebito), // unknown barber
	}
	txs[0].ServiceIDs = models.UUIDSlice{corte.ID, barba.ID}
	txs[1].ServiceIDs = models.UUIDSlice{uuid.New()} // deleted service

	staff := map[uuid.UUID]models.User{barber.ID: barber}
	catalog := map[uuid.UUID]models.Service{corte.ID: corte, barba.ID: barba}

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, txs, staff, catalog))

	reader := csv.NewReader(&buf)
	reader.Comma = ';'
	rows, err := reader.ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, len(txs)+1, "one row per transaction plus header")

	// re-summed commission column matches the aggregator
	sum := decimal.Zero
	for _, row := range rows[1:] {
		val, err := decimal.NewFromString(strings.Replace(row[7], ",", ".", 1))
		require.NoError(t, err)
		sum = sum.Add(val)
	}
	expected := Summarize(txs).Commission.Round(2)
	assert.True(t, sum.Equal(expected), "csv commission %s != aggregate %s", sum, expected)

	assert.Equal(t, "15/03/2025", rows[1][0])
	assert.Equal(t, "14:30", rows[1][1])
	assert.Equal(t, "João Silva", rows[1][2])
	assert.Equal(t, "Corte, Barba", rows[1][3])
	assert.Equal(t, "100,00", rows[1][4])
	assert.Equal(t, "40", rows[1][6])

	assert.Equal(t, "Serviço", rows[2][3])
	assert.Equal(t, "35,50", rows[2][4])
	assert.Equal(t, "Desconhecido", rows[3][2])
}
