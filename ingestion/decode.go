package ingestion

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/poiesic/hanap/core"
)

// maxLineSize bounds a single import line.
const maxLineSize = 1 << 20

// importRecord is one line of a JSON Lines import file.
//
//	{"first_name":"Juan","last_name":"Dela Cruz","date_of_death":"2001-07-03",
//	 "plot_number":"A-12","cemetery_id":1,"cemetery_name":"Manila North Cemetery"}
type importRecord struct {
	FirstName    string  `json:"first_name"`
	MiddleName   string  `json:"middle_name"`
	LastName     string  `json:"last_name"`
	DateOfBirth  string  `json:"date_of_birth"`
	DateOfDeath  string  `json:"date_of_death"`
	PlotId       core.ID `json:"plot_id"`
	PlotNumber   string  `json:"plot_number"`
	PlotType     string  `json:"plot_type"`
	CemeteryId   core.ID `json:"cemetery_id"`
	CemeteryName string  `json:"cemetery_name"`
}

// DecodeRecords reads burial records from JSON Lines. Blank lines are
// ignored. Dates use the YYYY-MM-DD layout and may be empty when unknown.
// The first malformed line stops decoding with an error naming the line.
func DecodeRecords(r io.Reader) ([]*core.Record, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	var records []*core.Record
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}

		var in importRecord
		if err := json.Unmarshal([]byte(text), &in); err != nil {
			return nil, fmt.Errorf("%w: line %d: %w", ErrMalformedRecord, line, err)
		}
		record, err := in.toRecord()
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %w", ErrMalformedRecord, line, err)
		}
		records = append(records, record)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return records, nil
}

func (in importRecord) toRecord() (*core.Record, error) {
	birth, err := parseDate(in.DateOfBirth)
	if err != nil {
		return nil, fmt.Errorf("date_of_birth: %w", err)
	}
	death, err := parseDate(in.DateOfDeath)
	if err != nil {
		return nil, fmt.Errorf("date_of_death: %w", err)
	}
	return &core.Record{
		PlotId:       in.PlotId,
		FirstName:    strings.TrimSpace(in.FirstName),
		MiddleName:   strings.TrimSpace(in.MiddleName),
		LastName:     strings.TrimSpace(in.LastName),
		DateOfBirth:  birth,
		DateOfDeath:  death,
		PlotNumber:   strings.TrimSpace(in.PlotNumber),
		PlotType:     strings.ToLower(strings.TrimSpace(in.PlotType)),
		CemeteryId:   in.CemeteryId,
		CemeteryName: strings.TrimSpace(in.CemeteryName),
	}, nil
}

func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	return time.Parse(time.DateOnly, s)
}
