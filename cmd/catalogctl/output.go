package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"gopkg.in/yaml.v3"
)

// outputResult writes result to w in the specified format.
func outputResult(w io.Writer, result interface{}, format string) error {
	switch format {
	case "json":
		return outputJSON(w, result)
	case "yaml":
		return outputYAML(w, result)
	case "table", "":
		return outputTable(w, result)
	default:
		return fmt.Errorf("unknown output format %q (want table, json or yaml)", format)
	}
}

func outputJSON(w io.Writer, result interface{}) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}

func outputYAML(w io.Writer, result interface{}) error {
	data, err := yaml.Marshal(result)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

func outputTable(out io.Writer, result interface{}) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	defer w.Flush()

	switch r := result.(type) {
	case OrderResult:
		outputOrderTable(w, r)
	case TabsResult:
		outputTabsTable(w, r)
	case HashResult:
		outputHashTable(w, r)
	default:
		// Fall back to JSON for unknown types
		return outputJSON(out, result)
	}
	return nil
}

func outputOrderTable(w *tabwriter.Writer, r OrderResult) {
	fmt.Fprintf(w, "FRAGMENT\t%s\n", r.Fragment)
	fmt.Fprintf(w, "TAB\t%s\n", r.State.Tab)
	fmt.Fprintf(w, "FILTER\t%s\n", r.State.Filter)
	fmt.Fprintf(w, "VISIBLE\t%d/%d\n\n", len(r.Cards), r.Total)

	fmt.Fprintln(w, "POS\tINDEX\tRARITY\tLABEL\tGROUPS\tFLAGS")
	for i, c := range r.Cards {
		fmt.Fprintf(w, "%d\t%d\t%d\t%s\t%s\t%s\n",
			i+1, c.DisplayIndex, c.Rarity, c.Label, joinOrDash(c.Groups), joinOrDash(c.Flags))
	}
}

func outputTabsTable(w *tabwriter.Writer, r TabsResult) {
	fmt.Fprintln(w, "ID\tKIND\tVALUE\tNOTE")
	for _, t := range r.Tabs {
		note := ""
		switch t.ID {
		case r.Fallback:
			note = "fallback"
		case r.Rarity:
			note = "chips"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", t.ID, t.Kind, dash(t.Value), note)
	}
}

func outputHashTable(w *tabwriter.Writer, r HashResult) {
	fmt.Fprintf(w, "FRAGMENT:\t%s\n", r.Fragment)
	fmt.Fprintf(w, "PARSED:\ttab=%s filter=%s\n", r.Parsed.Tab, r.Parsed.Filter)
	fmt.Fprintf(w, "STATE:\ttab=%s filter=%s\n", r.State.Tab, r.State.Filter)
}

func joinOrDash(vals []string) string {
	return dash(strings.Join(vals, ","))
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
