package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/tyler180/sportsref/internal/scrape"
)

// header returns "id" then the result's columns, or the sorted union of row
// keys when the result carries no column table.
func header(res scrape.Result, only []string) []string {
	var names []string
	if len(res.Columns) > 0 {
		names = res.Columns.Names()
	} else {
		seen := map[string]bool{}
		for _, it := range res.Items {
			for k := range it.Row {
				if !seen[k] {
					seen[k] = true
					names = append(names, k)
				}
			}
		}
		sort.Strings(names)
	}
	if len(only) > 0 {
		keep := map[string]bool{}
		for _, c := range only {
			keep[c] = true
		}
		filtered := names[:0:0]
		for _, n := range names {
			if keep[n] {
				filtered = append(filtered, n)
			}
		}
		names = filtered
	}
	return append([]string{"id"}, names...)
}

func cell(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	}
	return fmt.Sprint(v)
}

func render(w io.Writer, format string, res scrape.Result, only []string) error {
	cols := header(res, only)
	switch format {
	case "json":
		rows := make([]map[string]any, len(res.Items))
		for i, it := range res.Items {
			row := map[string]any{"id": it.ID}
			for _, c := range cols[1:] {
				row[c] = it.Row[c]
			}
			rows[i] = row
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(rows)
	case "table", "":
	default:
		return fmt.Errorf("unknown format %q", format)
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetTitle(res.Name)
	t.SetStyle(table.StyleRounded)

	// a single entity reads better as field/value pairs
	if len(res.Items) == 1 {
		it := res.Items[0]
		t.AppendHeader(table.Row{"Field", "Value"})
		t.AppendRow(table.Row{"id", it.ID})
		for _, c := range cols[1:] {
			t.AppendRow(table.Row{c, cell(it.Row[c])})
		}
		t.Render()
		return nil
	}

	head := make(table.Row, len(cols))
	for i, c := range cols {
		head[i] = c
	}
	t.AppendHeader(head)
	for _, it := range res.Items {
		row := make(table.Row, len(cols))
		row[0] = it.ID
		for i, c := range cols[1:] {
			row[i+1] = cell(it.Row[c])
		}
		t.AppendRow(row)
	}
	t.Render()
	return nil
}
