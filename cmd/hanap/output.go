package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/poiesic/hanap"
	"github.com/poiesic/hanap/core"
	"github.com/poiesic/hanap/ingestion"
)

var (
	headerColor   = color.New(color.FgCyan, color.Bold)
	positiveColor = color.New(color.FgGreen)
	negativeColor = color.New(color.FgRed)
	warningColor  = color.New(color.FgYellow)
)

func printTable(w io.Writer, header []string, rows [][]string) {
	table := tablewriter.NewWriter(w)
	table.SetHeader(header)
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(true)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("\t")
	table.SetNoWhiteSpace(true)
	table.AppendBulk(rows)
	table.Render()
}

func printSearchResponse(w io.Writer, resp *hanap.SearchResponse) {
	headerColor.Fprintf(w, "Interpreted as %s", resp.Context.Intent)
	if summary := describeContext(&resp.Context); summary != "" {
		headerColor.Fprintf(w, ": %s", summary)
	}
	fmt.Fprintln(w)

	if len(resp.Results) == 0 {
		negativeColor.Fprintln(w, "No burials found.")
		if len(resp.Suggestions) > 0 {
			warningColor.Fprintf(w, "Did you mean: %s?\n", strings.Join(resp.Suggestions, ", "))
		}
		return
	}

	rows := make([][]string, 0, len(resp.Results))
	for i, result := range resp.Results {
		r := result.Record
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			r.DisplayName(),
			formatDate(r.DateOfBirth),
			formatDate(r.DateOfDeath),
			r.PlotNumber,
			r.CemeteryName,
			strconv.FormatFloat(result.Score, 'f', 3, 64),
		})
	}
	printTable(w, []string{"#", "Name", "Born", "Died", "Plot", "Cemetery", "Score"}, rows)
	positiveColor.Fprintf(w, "%d of %d candidates shown (page %d, %d per page)\n",
		len(resp.Results), resp.Total, resp.Page, resp.PageSize)
}

// describeContext lists the interpreted fields worth showing a user.
func describeContext(sc *core.SearchContext) string {
	var parts []string
	if name := strings.TrimSpace(sc.FirstName + " " + sc.LastName); name != "" {
		parts = append(parts, "name "+name)
	}
	if sc.YearOfDeath != 0 {
		parts = append(parts, fmt.Sprintf("died %d", sc.YearOfDeath))
	}
	if sc.YearOfBirth != 0 {
		parts = append(parts, fmt.Sprintf("born %d", sc.YearOfBirth))
	}
	if sc.DateRange != nil {
		parts = append(parts, fmt.Sprintf("years %d-%d", sc.DateRange.Start, sc.DateRange.End))
	}
	if sc.PlotNumber != "" {
		parts = append(parts, "plot "+sc.PlotNumber)
	}
	if sc.CemeteryName != "" {
		parts = append(parts, "cemetery "+sc.CemeteryName)
	}
	return strings.Join(parts, ", ")
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format(time.DateOnly)
}

func printNames(w io.Writer, names []string, empty string) {
	if len(names) == 0 {
		warningColor.Fprintln(w, empty)
		return
	}
	for _, name := range names {
		fmt.Fprintln(w, name)
	}
}

func printCemeteries(w io.Writer, cemeteries []core.Cemetery) {
	if len(cemeteries) == 0 {
		warningColor.Fprintln(w, "No cemeteries.")
		return
	}
	rows := make([][]string, 0, len(cemeteries))
	for _, c := range cemeteries {
		rows = append(rows, []string{
			strconv.FormatUint(uint64(c.Id), 10),
			c.Name,
			strconv.Itoa(c.Burials),
		})
	}
	printTable(w, []string{"Id", "Name", "Burials"}, rows)
}

func printImportResult(w io.Writer, result *ingestion.Result) {
	positiveColor.Fprintf(w, "Added %d records\n", len(result.Added))
	if result.Skipped > 0 {
		warningColor.Fprintf(w, "Skipped %d duplicate records\n", result.Skipped)
	}
	for _, rejection := range result.Rejected {
		negativeColor.Fprintf(w, "Rejected record %d: %v\n", rejection.Index+1, rejection.Err)
	}
}
