package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/spf13/cobra"
)

func TestWriteJSONKeepsTitlesVerbatim(t *testing.T) {
	var buf bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&buf)

	if err := writeJSON(cmd, map[string]string{"title": "Tom & Jerry <3"}); err != nil {
		t.Fatalf("writeJSON: %v", err)
	}
	requireContains(t, buf.String(), `"title": "Tom & Jerry <3"`)
	if !strings.HasSuffix(buf.String(), "}\n") {
		t.Fatalf("expected trailing newline, got %q", buf.String())
	}
}

func TestRenderTablePadsShortRows(t *testing.T) {
	out := renderTable([]string{"Title", "Year"}, [][]string{{"Dune"}}, []columnAlignment{alignLeft, alignRight})
	requireContains(t, out, "Title")
	requireContains(t, out, "Dune")
	if renderTable(nil, nil, nil) != "" {
		t.Fatal("expected empty output without headers")
	}
}
