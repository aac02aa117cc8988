package feed

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	attribution "github.com/goliatone/go-attribution/components/attribution"
)

// csvDateLayout matches the export format of the outreach pipeline.
const csvDateLayout = "2006-01-02"

// ReadCSVFile loads records from a CSV export on disk.
func ReadCSVFile(path string) ([]attribution.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("feed: open csv: %w", err)
	}
	defer f.Close()
	return ReadCSV(f)
}

// ReadCSV decodes a header-mapped CSV export into records. Unknown columns
// are ignored so exports can carry extra fields.
func ReadCSV(r io.Reader) ([]attribution.Record, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("feed: read csv header: %w", err)
	}
	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[name] = i
	}
	if _, ok := columns["date"]; !ok {
		return nil, fmt.Errorf("feed: csv is missing the date column")
	}

	var records []attribution.Record
	line := 1
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("feed: read csv row: %w", err)
		}
		line++
		record, err := rowToRecord(columns, row)
		if err != nil {
			return nil, fmt.Errorf("feed: csv line %d: %w", line, err)
		}
		records = append(records, record)
	}
	return records, nil
}

func rowToRecord(columns map[string]int, row []string) (attribution.Record, error) {
	cell := func(name string) string {
		idx, ok := columns[name]
		if !ok || idx >= len(row) {
			return ""
		}
		return row[idx]
	}
	num := func(name string) (int, error) {
		raw := cell(name)
		if raw == "" {
			return 0, nil
		}
		value, err := strconv.Atoi(raw)
		if err != nil {
			return 0, fmt.Errorf("column %s: %w", name, err)
		}
		return value, nil
	}

	date, err := time.Parse(csvDateLayout, cell("date"))
	if err != nil {
		return attribution.Record{}, fmt.Errorf("column date: %w", err)
	}

	record := attribution.Record{
		Date:          date.UTC(),
		DisplayDate:   cell("display_date"),
		Region:        cell("region"),
		Persona:       cell("persona"),
		InboxProvider: cell("inbox_provider"),
		CampaignName:  cell("campaign_name"),
		TTLBucket:     cell("ttl_bucket"),
		RevenueRange:  cell("revenue_range"),
	}
	if record.DisplayDate == "" {
		record.DisplayDate = record.Date.Format("Jan 2")
	}

	fields := []struct {
		name   string
		target *int
	}{
		{"emails_sent", &record.EmailsSent},
		{"replies", &record.Replies},
		{"positive_replies", &record.PositiveReplies},
		{"meetings_booked", &record.MeetingsBooked},
		{"bounces", &record.Bounces},
		{"estimated_pipeline_value", &record.PipelineValue},
		{"planned_sent", &record.PlannedSent},
		{"planned_replies", &record.PlannedReplies},
		{"planned_mqls", &record.PlannedMQLs},
		{"planned_sqls", &record.PlannedSQLs},
		{"planned_bounces", &record.PlannedBounces},
	}
	for _, f := range fields {
		value, err := num(f.name)
		if err != nil {
			return attribution.Record{}, err
		}
		*f.target = value
	}
	return record, nil
}

// CSVSource serves records from a CSV export, re-reading on every fetch so
// file updates show up after a dataset reload.
type CSVSource struct {
	Path string
}

// Records loads the export.
func (s CSVSource) Records(_ context.Context) ([]attribution.Record, error) {
	return ReadCSVFile(s.Path)
}
