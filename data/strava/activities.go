// Package strava reads the activities.csv of a Strava bulk export and uses it to
// enrich already loaded tracks.
package strava

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

var ErrMissingColumn = errors.New("missing column")

// Columns lists the accepted header names per field. The first header present in
// the file wins.
type Columns struct {
	FileName     []string
	ActivityName []string
	ActivityType []string
	Equipment    []string
	Duration     []string
}

// DefaultColumns covers the English and the Russian Strava export.
var DefaultColumns = Columns{
	FileName:     []string{"Filename", "Название файла"},
	ActivityName: []string{"Activity Name", "Название тренировки"},
	ActivityType: []string{"Activity Type", "Тип активности"},
	Equipment:    []string{"Activity Gear", "Снаряжение для физической активности"},
	Duration:     []string{"Elapsed Time", "Общее время"},
}

type Activity struct {
	FileName  string
	Name      string
	Type      string
	Equipment string
	Duration  float64 // seconds
}

type columnIndex struct {
	fileName, name, activityType, equipment, duration int
}

// ReadActivities parses a delimited file with header row. Only the file name
// column is mandatory; absent optional columns yield empty values.
func ReadActivities(r io.Reader, cols Columns) ([]Activity, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}

	idx := columnIndex{
		fileName:     lookupColumn(header, cols.FileName),
		name:         lookupColumn(header, cols.ActivityName),
		activityType: lookupColumn(header, cols.ActivityType),
		equipment:    lookupColumn(header, cols.Equipment),
		duration:     lookupColumn(header, cols.Duration),
	}
	if idx.fileName < 0 {
		return nil, fmt.Errorf("%w: file name (%s)", ErrMissingColumn, strings.Join(cols.FileName, ", "))
	}

	var activities []Activity
	line := 1
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("read row %d: %w", line, err)
		}

		activities = append(activities, Activity{
			FileName:  field(row, idx.fileName),
			Name:      field(row, idx.name),
			Type:      field(row, idx.activityType),
			Equipment: field(row, idx.equipment),
			Duration:  parseSeconds(field(row, idx.duration)),
		})
	}

	return activities, nil
}

// lookupColumn returns the index of the first occurrence of the first known name.
// Strava exports repeat some headers; the first occurrence is the summary value.
func lookupColumn(header []string, names []string) int {
	for _, name := range names {
		for i, h := range header {
			if strings.EqualFold(strings.TrimSpace(h), name) {
				return i
			}
		}
	}
	return -1
}

func field(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func parseSeconds(s string) float64 {
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", "."), 64)
	if err != nil {
		return 0
	}
	return v
}
