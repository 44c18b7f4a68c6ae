// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package report writes a Markdown summary of a batch run.
package report

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"

	"github.com/pdiddy/geo-engine/pkg/types"
)

// Write renders the run report for res to w. templateKey, when non-nil,
// names the answer template each question matched.
func Write(w io.Writer, res *types.RunResult, now time.Time, templateKey func(string) string) error {
	if res == nil {
		return fmt.Errorf("no run result to report")
	}
	md := markdown.NewMarkdown(w)

	md.H1("GEO Run Report")
	md.PlainText("")
	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Run ID", "`" + res.ID + "`"},
			{"Generated", now.UTC().Format(time.RFC3339)},
			{"Questions processed", strconv.Itoa(res.Stats.QuestionsProcessed)},
			{"Pages generated", strconv.Itoa(res.Stats.PagesGenerated)},
			{"Citations added", strconv.Itoa(res.Stats.CitationsAdded)},
		},
	})
	md.PlainText("")

	writePages(md, res, templateKey)
	writeSources(md, res)

	return md.Build()
}

func writePages(md *markdown.Markdown, res *types.RunResult, templateKey func(string) string) {
	md.H2("Pages")
	md.PlainText("")
	if len(res.Pages) == 0 {
		md.PlainText("No pages generated.")
		md.PlainText("")
		return
	}

	rows := make([][]string, 0, len(res.Pages))
	for _, p := range res.Pages {
		tmpl := "-"
		if templateKey != nil {
			tmpl = templateKey(p.Question)
		}
		rows = append(rows, []string{p.Question, "`" + p.Filename + "`", tmpl, strconv.Itoa(len(p.Citations))})
	}
	md.Table(markdown.TableSet{
		Header: []string{"Question", "File", "Template", "Citations"},
		Rows:   rows,
	})
	md.PlainText("")
}

func writeSources(md *markdown.Markdown, res *types.RunResult) {
	counts := map[string]int{}
	for _, p := range res.Pages {
		for _, c := range p.Citations {
			counts[c.Source]++
		}
	}

	md.H2("Citation Sources")
	md.PlainText("")
	if len(counts) == 0 {
		md.Note("No citations matched this run.")
		md.PlainText("")
		return
	}

	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if counts[names[i]] != counts[names[j]] {
			return counts[names[i]] > counts[names[j]]
		}
		return names[i] < names[j]
	})

	items := make([]string, 0, len(names))
	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle("Citations by Source"),
		piechart.WithShowData(true),
	)
	for _, name := range names {
		items = append(items, fmt.Sprintf("%s: %d", name, counts[name]))
		chart.LabelAndIntValue(name, uint64(counts[name]))
	}
	md.BulletList(items...)
	md.PlainText("")
	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")
}

// WriteFile writes the run report to path, creating parent directories.
func WriteFile(path string, res *types.RunResult, now time.Time, templateKey func(string) string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating report directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating report: %w", err)
	}
	if err := Write(f, res, now, templateKey); err != nil {
		f.Close()
		return fmt.Errorf("writing report: %w", err)
	}
	return f.Close()
}
