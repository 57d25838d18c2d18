package ledger

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"

	"github.com/kimpers/tokentax-scripts/internal/domain"
)

// CSVWriter writes the trade ledger to a file, one row per trade. The file
// is rewritten from scratch each run: opening truncates and writes the
// header.
type CSVWriter struct {
	file *os.File
	w    *csv.Writer
}

// Compile-time interface check.
var _ Writer = (*CSVWriter)(nil)

// NewCSVWriter opens (and truncates) the ledger file and writes the header.
func NewCSVWriter(path string) (*CSVWriter, error) {
	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create ledger file: %w", err)
	}

	w := csv.NewWriter(file)
	if err := w.Write(Columns); err != nil {
		file.Close()
		return nil, fmt.Errorf("write header: %w", err)
	}

	return &CSVWriter{file: file, w: w}, nil
}

// Append writes one trade row and flushes it to the file.
func (c *CSVWriter) Append(_ context.Context, trade domain.TradeRecord) error {
	if err := c.w.Write(row(trade)); err != nil {
		return fmt.Errorf("write trade row: %w", err)
	}
	c.w.Flush()
	if err := c.w.Error(); err != nil {
		return fmt.Errorf("flush trade row: %w", err)
	}
	return nil
}

// Close flushes pending rows and closes the file.
func (c *CSVWriter) Close() error {
	c.w.Flush()
	if err := c.w.Error(); err != nil {
		c.file.Close()
		return fmt.Errorf("flush ledger: %w", err)
	}
	return c.file.Close()
}
