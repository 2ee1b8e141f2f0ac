package furniture

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/rpggio/seatmap/internal/domain/geometry"
)

// Record is the flat string form used by file import and export.
type Record struct {
	TableID        string `json:"table_id"`
	Index          string `json:"index"`
	Name           string `json:"name"`
	Left           string `json:"left"`
	Top            string `json:"top"`
	Width          string `json:"width"`
	Height         string `json:"height"`
	Capacity       string `json:"capacity"`
	Occupied       string `json:"occupied"`
	ExtraSeatLimit string `json:"extraSeatLimit"`
	Tags           string `json:"tags"`
	Description    string `json:"description"`
	UpdateTime     string `json:"updateTime"`
	Available      string `json:"available"`
	Floor          string `json:"floor"`
}

var recordHeader = []string{
	"table_id", "index", "name", "left", "top", "width", "height",
	"capacity", "occupied", "extraSeatLimit", "tags", "description",
	"updateTime", "available", "floor",
}

// Header returns the record field names in file order.
func Header() []string {
	out := make([]string, len(recordHeader))
	copy(out, recordHeader)
	return out
}

// Fields returns the record values in Header order.
func (r Record) Fields() []string {
	return []string{
		r.TableID, r.Index, r.Name, r.Left, r.Top, r.Width, r.Height,
		r.Capacity, r.Occupied, r.ExtraSeatLimit, r.Tags, r.Description,
		r.UpdateTime, r.Available, r.Floor,
	}
}

// RecordFromFields maps a row of values onto a Record using header for
// column names. Unknown columns are ignored and missing ones stay empty.
func RecordFromFields(header, values []string) Record {
	var r Record
	for i, name := range header {
		if i >= len(values) {
			break
		}
		v := values[i]
		switch strings.TrimSpace(name) {
		case "table_id":
			r.TableID = v
		case "index":
			r.Index = v
		case "name":
			r.Name = v
		case "left":
			r.Left = v
		case "top":
			r.Top = v
		case "width":
			r.Width = v
		case "height":
			r.Height = v
		case "capacity":
			r.Capacity = v
		case "occupied":
			r.Occupied = v
		case "extraSeatLimit":
			r.ExtraSeatLimit = v
		case "tags":
			r.Tags = v
		case "description":
			r.Description = v
		case "updateTime":
			r.UpdateTime = v
		case "available":
			r.Available = v
		case "floor":
			r.Floor = v
		}
	}
	return r
}

// ToRecord flattens an item into its record form.
func ToRecord(f Furniture) Record {
	r := Record{
		TableID:        f.ID,
		Index:          strconv.Itoa(f.Index),
		Name:           f.Name,
		Left:           formatFloat(f.Position.X),
		Top:            formatFloat(f.Position.Y),
		Width:          formatFloat(f.Size.W),
		Height:         formatFloat(f.Size.H),
		Capacity:       strconv.Itoa(f.Capacity),
		Occupied:       strconv.Itoa(f.Occupied),
		ExtraSeatLimit: strconv.Itoa(f.ExtraSeatLimit),
		Tags:           strings.Join(f.Tags, ","),
		Description:    f.Description,
		Available:      strconv.FormatBool(f.Available),
		Floor:          f.FloorID,
	}
	if f.LastOccupiedAt != nil {
		r.UpdateTime = f.LastOccupiedAt.UTC().Format(time.RFC3339Nano)
	}
	return r
}

// FromRecord parses a record, coercing malformed values instead of failing.
// Ids and ordinals left empty are assigned by the importer.
func FromRecord(r Record) Furniture {
	f := Furniture{
		ID:             strings.TrimSpace(r.TableID),
		FloorID:        strings.TrimSpace(r.Floor),
		Index:          parseInt(r.Index),
		Name:           r.Name,
		Position:       geometry.Point{X: parseFloat(r.Left), Y: parseFloat(r.Top)},
		Size:           geometry.Size{W: parseFloat(r.Width), H: parseFloat(r.Height)},
		Capacity:       parseInt(r.Capacity),
		ExtraSeatLimit: parseInt(r.ExtraSeatLimit),
		Occupied:       parseInt(r.Occupied),
		Tags:           strings.Split(r.Tags, ","),
		Description:    r.Description,
		Available:      parseBool(r.Available),
		LastOccupiedAt: parseTime(r.UpdateTime),
	}
	f.Normalize()
	if f.Index < 0 {
		f.Index = 0
	}
	return f
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func parseFloat(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// parseInt accepts integral and fractional input; fractions truncate.
func parseInt(s string) int {
	s = strings.TrimSpace(s)
	if v, err := strconv.ParseInt(s, 10, 64); err == nil {
		if v > math.MaxInt32 || v < math.MinInt32 {
			return 0
		}
		return int(v)
	}
	v := parseFloat(s)
	if v > math.MaxInt32 || v < math.MinInt32 {
		return 0
	}
	return int(v)
}

func parseBool(s string) bool {
	s = strings.TrimSpace(s)
	return strings.EqualFold(s, "true") || s == "1"
}

func parseTime(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	ts, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return nil
	}
	ts = ts.UTC()
	return &ts
}
