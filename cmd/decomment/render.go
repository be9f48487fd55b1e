package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fatih/color"

	"decomment/internal/driver"
)

var (
	cleanedColor = color.New(color.FgGreen)
	mutedColor   = color.New(color.Faint)
	errorColor   = color.New(color.FgRed, color.Bold)
)

type textOptions struct {
	check      bool
	quiet      bool
	errorsOnly bool // progress view already showed per-file status
}

type summary struct {
	total     int
	changed   int
	unchanged int
	errors    int
}

func summarize(results []driver.Result) summary {
	s := summary{total: len(results)}
	for _, res := range results {
		switch {
		case res.Err != nil:
			s.errors++
		case res.Changed:
			s.changed++
		default:
			s.unchanged++
		}
	}
	return s
}

// mustPrintf panics when the output is gone; there is nobody left to report to.
func mustPrintf(w io.Writer, format string, args ...any) {
	if _, err := fmt.Fprintf(w, format, args...); err != nil {
		panic(err)
	}
}

func renderText(out, errOut io.Writer, results []driver.Result, opts textOptions) {
	for _, res := range results {
		if res.Err != nil {
			mustPrintf(errOut, "%s %s: %v\n", errorColor.Sprint("error processing"), res.Path, res.Err)
			continue
		}
		if opts.errorsOnly {
			continue
		}
		switch {
		case res.Changed && opts.check:
			mustPrintf(out, "%s %s\n", cleanedColor.Sprint("would clean"), res.Path)
		case res.Changed:
			mustPrintf(out, "%s %s\n", cleanedColor.Sprint("cleaned"), res.Path)
		case !opts.quiet:
			mustPrintf(out, "%s\n", mutedColor.Sprintf("no comments found in %s", res.Path))
		}
	}
}

func renderSummary(out io.Writer, s summary, check bool) {
	verb := "cleaned"
	if check {
		verb = "would clean"
	}
	mustPrintf(out, "%d files: %d %s, %d unchanged, %d errors\n", s.total, s.changed, verb, s.unchanged, s.errors)
}

func renderStdout(out, errOut io.Writer, results []driver.Result) {
	for _, res := range results {
		if res.Err != nil {
			mustPrintf(errOut, "%s %s: %v\n", errorColor.Sprint("error processing"), res.Path, res.Err)
			continue
		}
		if _, err := out.Write(res.Cleaned); err != nil {
			panic(err)
		}
	}
}

func renderJSON(out io.Writer, results []driver.Result, check bool) error {
	type jsonResult struct {
		Path          string `json:"path"`
		Changed       bool   `json:"changed"`
		Cached        bool   `json:"cached,omitempty"`
		LineComments  int    `json:"line_comments"`
		BlockComments int    `json:"block_comments"`
		BytesRemoved  int    `json:"bytes_removed"`
		Error         string `json:"error,omitempty"`
		CheckRun      bool   `json:"check"`
	}

	payload := make([]jsonResult, 0, len(results))
	for _, res := range results {
		jr := jsonResult{
			Path:          res.Path,
			Changed:       res.Changed,
			Cached:        res.Cached,
			LineComments:  res.Stats.LineComments,
			BlockComments: res.Stats.BlockComments,
			BytesRemoved:  res.Stats.BytesRemoved,
			CheckRun:      check,
		}
		if res.Err != nil {
			jr.Error = res.Err.Error()
		}
		payload = append(payload, jr)
	}

	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(payload)
}
