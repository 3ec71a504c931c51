package main

import (
	"fmt"
	"strconv"

	"stylus/internal/catalog"
	"stylus/internal/library"
)

var recordHeaders = []string{"ID", "Title", "Artist", "Rating", "Ownership", "Format", "Year"}

// Rating and Year are numeric.
var recordRightCols = []int{4, 7}

func recordRow(record *catalog.Record) []string {
	year := ""
	if record.ReleaseYear > 0 {
		year = strconv.Itoa(record.ReleaseYear)
	}
	rating := ""
	if record.Rating > 0 {
		rating = fmt.Sprintf("%d/%d", record.Rating, catalog.RatingMax)
	}
	return []string{
		record.ID,
		record.Title,
		record.ArtistName,
		rating,
		string(record.Ownership),
		string(record.Format),
		year,
	}
}

func recordTable(records []*catalog.Record) string {
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, recordRow(record))
	}
	return renderTable(recordHeaders, rows, recordRightCols...)
}

func matchTable(matches []library.Match) string {
	headers := append([]string{"Match"}, recordHeaders...)
	rightCols := make([]int, 0, len(recordRightCols))
	for _, col := range recordRightCols {
		rightCols = append(rightCols, col+1)
	}
	rows := make([][]string, 0, len(matches))
	for _, m := range matches {
		rows = append(rows, append([]string{m.Classification.String()}, recordRow(m.Record)...))
	}
	return renderTable(headers, rows, rightCols...)
}
