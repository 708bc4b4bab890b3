package services

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"barbearia-backend/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Semicolon-delimited because the numeric fields use the pt-BR comma
// decimal separator, which would collide with a comma-delimited format.
var CSVHeader = []string{
	"Data", "Hora", "Barbeiro", "Serviços", "Valor Total",
	"Método", "Comissão %", "Comissão R$", "Lucro Casa",
}

// ExportFilename follows the faturamento_<month>_<year>.csv convention of
// the revenue screen.
func ExportFilename(month time.Month, year int) string {
	return fmt.Sprintf("faturamento_%d_%d.csv", int(month), year)
}

// WriteCSV writes one row per transaction. Deleted services and unknown
// barbers degrade to placeholder labels instead of failing the export.
func WriteCSV(w io.Writer, txs []models.Transaction, staff map[uuid.UUID]models.User, catalog map[uuid.UUID]models.Service) error {
	writer := csv.NewWriter(w)
	writer.Comma = ';'

	if err := writer.Write(CSVHeader); err != nil {
		return err
	}

	for _, tx := range txs {
		commission := txCommission(tx)
		house := txHouse(tx)
		rate := tx.CommissionRate
		if rate.IsZero() && tx.Total.IsPositive() && commission.IsPositive() {
			rate = commission.DivRound(tx.Total, 4)
		}

		row := []string{
			tx.Date.Format("02/01/2006"),
			tx.Date.Format("15:04"),
			barberLabel(tx.BarberID, staff),
			serviceLabels(tx.ServiceIDs, catalog),
			formatBRL(tx.Total),
			tx.Method,
			formatPercent(rate),
			formatBRL(commission),
			formatBRL(house),
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

func barberLabel(id uuid.UUID, staff map[uuid.UUID]models.User) string {
	if user, ok := staff[id]; ok {
		if user.Name != "" {
			return user.Name
		}
		return user.Email
	}
	return "Desconhecido"
}

func serviceLabels(ids models.UUIDSlice, catalog map[uuid.UUID]models.Service) string {
	names := make([]string, 0, len(ids))
	for _, id := range ids {
		if svc, ok := catalog[id]; ok {
			names = append(names, svc.Name)
		} else {
			// soft reference, the service was deleted after the sale
			names = append(names, "Serviço")
		}
	}
	return strings.Join(names, ", ")
}

// formatBRL renders a money value with two decimals and a comma separator.
func formatBRL(d decimal.Decimal) string {
	return strings.Replace(d.StringFixed(2), ".", ",", 1)
}

func formatPercent(rate decimal.Decimal) string {
	return strings.Replace(rate.Mul(oneHundred).String(), ".", ",", 1)
}
