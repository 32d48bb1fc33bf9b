package export

import (
	"fmt"
	"io"
	"math"
	"time"

	"github.com/bgraf/trackmix/geotrack"
	parquetbuffer "github.com/xitongsys/parquet-go-source/buffer"
	"github.com/xitongsys/parquet-go/parquet"
	"github.com/xitongsys/parquet-go/writer"
)

// PointRow is one track point in the Parquet export.
type PointRow struct {
	Track     int32   `parquet:"name=track, type=INT32"`
	Name      string  `parquet:"name=name, type=BYTE_ARRAY, convertedtype=UTF8, encoding=PLAIN_DICTIONARY"`
	Lat       float64 `parquet:"name=lat, type=DOUBLE"`
	Lon       float64 `parquet:"name=lon, type=DOUBLE"`
	Elevation float64 `parquet:"name=elevation, type=DOUBLE"`
	Time      string  `parquet:"name=time, type=BYTE_ARRAY, convertedtype=UTF8"`
}

// PointRows flattens tracks into rows. Missing elevations become NaN and
// missing times an empty string.
func PointRows(tracks []geotrack.Track) []PointRow {
	var rows []PointRow
	for i := range tracks {
		for _, p := range tracks[i].Points {
			row := PointRow{
				Track:     int32(i),
				Name:      tracks[i].Name,
				Lat:       p.Lat,
				Lon:       p.Lon,
				Elevation: p.Elevation.GetOr(math.NaN()),
			}
			if p.Time.IsSome() {
				row.Time = p.Time.Get().UTC().Format(time.RFC3339)
			}
			rows = append(rows, row)
		}
	}
	return rows
}

// WritePoints encodes all points of tracks as a snappy compressed Parquet file.
func WritePoints(w io.Writer, tracks []geotrack.Track) error {
	fw := parquetbuffer.NewBufferFile()

	pw, err := writer.NewParquetWriter(fw, new(PointRow), 4)
	if err != nil {
		return fmt.Errorf("could not create parquet writer: %w", err)
	}
	pw.CompressionType = parquet.CompressionCodec_SNAPPY

	for _, row := range PointRows(tracks) {
		if err := pw.Write(row); err != nil {
			_ = pw.WriteStop()
			return fmt.Errorf("could not write parquet row: %w", err)
		}
	}

	if err := pw.WriteStop(); err != nil {
		return fmt.Errorf("could not finish parquet file: %w", err)
	}
	if err := fw.Close(); err != nil {
		return fmt.Errorf("could not close parquet buffer: %w", err)
	}

	if _, err := w.Write(fw.Bytes()); err != nil {
		return fmt.Errorf("could not write parquet file: %w", err)
	}

	return nil
}
