// Package exchange reads and writes layout files.
//
// A file optionally starts with a crop block (a cropX,cropY,cropWidth,cropHeight
// header and one row of values) followed by a blank line. The record header
// and one row per item follow.
package exchange

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/rpggio/seatmap/internal/domain/floor"
	"github.com/rpggio/seatmap/internal/domain/furniture"
)

var (
	// ErrEmptyFile is returned when a file has no rows at all.
	ErrEmptyFile = errors.New("layout file is empty")
	// ErrMissingHeader is returned when no record header row is found.
	ErrMissingHeader = errors.New("layout file has no record header")
)

var cropHeader = []string{"cropX", "cropY", "cropWidth", "cropHeight"}

// File is the content of a layout file.
type File struct {
	Crop    *floor.Crop
	Records []furniture.Record
}

// Write encodes f. The crop block is always written; its values are blank
// when f.Crop is nil.
func Write(w io.Writer, f File) error {
	cw := csv.NewWriter(w)
	cw.UseCRLF = true

	cropValues := make([]string, len(cropHeader))
	if f.Crop != nil {
		cropValues = []string{
			strconv.Itoa(f.Crop.X),
			strconv.Itoa(f.Crop.Y),
			strconv.Itoa(f.Crop.Width),
			strconv.Itoa(f.Crop.Height),
		}
	}
	if err := cw.Write(cropHeader); err != nil {
		return fmt.Errorf("writing crop header: %w", err)
	}
	if err := cw.Write(cropValues); err != nil {
		return fmt.Errorf("writing crop values: %w", err)
	}
	cw.Flush()
	if _, err := io.WriteString(w, "\r\n"); err != nil {
		return fmt.Errorf("writing separator: %w", err)
	}

	if err := cw.Write(furniture.Header()); err != nil {
		return fmt.Errorf("writing record header: %w", err)
	}
	for _, rec := range f.Records {
		if err := cw.Write(rec.Fields()); err != nil {
			return fmt.Errorf("writing record %s: %w", rec.TableID, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// Read decodes a layout file. Files without a crop block are accepted.
// Rows that are entirely blank are skipped.
func Read(r io.Reader) (File, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.TrimLeadingSpace = true

	rows, err := cr.ReadAll()
	if err != nil {
		return File{}, fmt.Errorf("parsing layout file: %w", err)
	}
	if len(rows) == 0 {
		return File{}, ErrEmptyFile
	}
	rows[0][0] = strings.TrimPrefix(rows[0][0], "\ufeff")

	var out File
	if strings.EqualFold(strings.TrimSpace(rows[0][0]), cropHeader[0]) {
		if len(rows) > 1 && !isHeader(rows[1]) {
			out.Crop = parseCrop(rows[1])
			rows = rows[2:]
		} else {
			rows = rows[1:]
		}
	}

	for len(rows) > 0 && blank(rows[0]) {
		rows = rows[1:]
	}
	if len(rows) == 0 || !isHeader(rows[0]) {
		return File{}, ErrMissingHeader
	}

	header := rows[0]
	for _, row := range rows[1:] {
		if blank(row) {
			continue
		}
		out.Records = append(out.Records, furniture.RecordFromFields(header, row))
	}
	return out, nil
}

func isHeader(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) == "table_id" {
			return true
		}
	}
	return false
}

func blank(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

// parseCrop reads the crop values; a row with no usable value yields nil.
func parseCrop(row []string) *floor.Crop {
	var vals [4]int
	found := false
	for i := range vals {
		if i >= len(row) {
			break
		}
		n, err := strconv.ParseFloat(strings.TrimSpace(row[i]), 64)
		if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
			continue
		}
		vals[i] = int(math.Round(n))
		found = true
	}
	if !found {
		return nil
	}
	return &floor.Crop{X: vals[0], Y: vals[1], Width: vals[2], Height: vals[3]}
}
