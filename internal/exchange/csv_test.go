package exchange

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rpggio/seatmap/internal/domain/floor"
	"github.com/rpggio/seatmap/internal/domain/furniture"
	"github.com/stretchr/testify/require"
)

func TestWriteRead(t *testing.T) {
	recs := []furniture.Record{
		{TableID: "1F_01", Index: "1", Name: "A", Left: "20", Top: "31.25", Width: "1", Height: "1",
			Capacity: "4", Occupied: "2", ExtraSeatLimit: "1", Tags: "window,sofa", Description: `say "hi"`,
			Available: "true", Floor: "1F"},
		{TableID: "s_1F_02", Index: "2", Name: "2", Left: "40", Top: "50", Width: "0.75", Height: "0.75",
			Capacity: "0", Occupied: "0", ExtraSeatLimit: "0", Available: "false", Floor: "1F"},
	}
	crop := &floor.Crop{X: 12, Y: 8, Width: 1024, Height: 768}

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, File{Crop: crop, Records: recs}))
	require.True(t, strings.HasPrefix(buf.String(), "cropX,cropY,cropWidth,cropHeight\r\n12,8,1024,768\r\n\r\ntable_id,"))

	got, err := Read(&buf)
	require.NoError(t, err)
	require.Equal(t, crop, got.Crop)
	require.Equal(t, recs, got.Records)
}

func TestWriteWithoutCrop(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, File{}))

	got, err := Read(&buf)
	require.NoError(t, err)
	require.Nil(t, got.Crop)
	require.Empty(t, got.Records)
}

func TestReadWithoutCropBlock(t *testing.T) {
	in := "table_id,name,left,top\n1F_01,A,20,30\n\n1F_02,B,60,70\n"
	got, err := Read(strings.NewReader(in))
	require.NoError(t, err)
	require.Nil(t, got.Crop)
	require.Len(t, got.Records, 2)
	require.Equal(t, "B", got.Records[1].Name)
	require.Equal(t, "70", got.Records[1].Top)
	require.Empty(t, got.Records[1].Capacity)
}

func TestReadTolerantValues(t *testing.T) {
	in := "\ufeffcropX,cropY,cropWidth,cropHeight\n10.4,x,300,200\n\ntable_id,occupied,tags\n1F_01,abc,\"a,b\"\n"
	got, err := Read(strings.NewReader(in))
	require.NoError(t, err)
	require.Equal(t, &floor.Crop{X: 10, Width: 300, Height: 200}, got.Crop)
	require.Len(t, got.Records, 1)
	require.Equal(t, "a,b", got.Records[0].Tags)

	f := furniture.FromRecord(got.Records[0])
	require.Equal(t, 0, f.Occupied)
	require.Equal(t, []string{"a", "b"}, f.Tags)
}

func TestReadErrors(t *testing.T) {
	_, err := Read(strings.NewReader(""))
	require.ErrorIs(t, err, ErrEmptyFile)

	_, err = Read(strings.NewReader("cropX,cropY,cropWidth,cropHeight\n1,2,3,4\n\nfoo,bar\n"))
	require.ErrorIs(t, err, ErrMissingHeader)
}
