package accounts

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"

	umTypes "github.com/crarsdecor/CRM/pkg/user-management/types"
)

var csvHeader = []string{"_id", "name", "email", "createdAt"}

// AccountExporter streams user accounts into a CSV document.
type AccountExporter struct {
	writer    io.Writer
	csvWriter *csv.Writer
	counter   int
}

func NewAccountExporter(writer io.Writer) (*AccountExporter, error) {
	ae := &AccountExporter{
		writer:    writer,
		csvWriter: csv.NewWriter(writer),
	}
	if err := ae.csvWriter.Write(csvHeader); err != nil {
		return nil, err
	}
	return ae, nil
}

func (ae *AccountExporter) WriteAccount(user umTypes.User) error {
	if ae.csvWriter == nil {
		return fmt.Errorf("exporter not initialized")
	}
	record := []string{
		user.ID.Hex(),
		user.Name,
		user.Email,
		user.CreatedAt.UTC().Format(time.RFC3339),
	}
	if err := ae.csvWriter.Write(record); err != nil {
		return err
	}
	ae.counter += 1
	return nil
}

// Count returns the number of accounts written so far.
func (ae *AccountExporter) Count() int {
	return ae.counter
}

func (ae *AccountExporter) Finish() error {
	ae.csvWriter.Flush()
	return ae.csvWriter.Error()
}
