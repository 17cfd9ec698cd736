// Package output renders evaluation reports and the check catalog as
// coloured text, JSON or YAML.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/jwalton/go-supportscolor"
	"gopkg.in/yaml.v3"

	"github.com/vertti/repocheck/pkg/check"
	"github.com/vertti/repocheck/pkg/linter"
	"github.com/vertti/repocheck/pkg/signoff"
)

// Format selects the rendering.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat parses a format name, case-insensitively.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatText, FormatJSON, FormatYAML:
		return f, nil
	case "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("invalid output format %q (supported: text, json, yaml)", s)
	}
}

const (
	green = "\033[32m"
	red   = "\033[31m"
	dim   = "\033[2m"
	reset = "\033[0m"
)

// Printer writes reports to W. Color only affects FormatText.
type Printer struct {
	W      io.Writer
	Format Format
	Color  bool
}

// NewPrinter returns a Printer that colours text output when stdout
// supports it.
func NewPrinter(w io.Writer, format Format) *Printer {
	return &Printer{W: w, Format: format, Color: supportscolor.Stdout().SupportsColor}
}

func (p *Printer) paint(color, s string) string {
	if !p.Color {
		return s
	}
	return color + s + reset
}

// formatLabel dims a leading "label:" in a detail line.
func (p *Printer) formatLabel(s string) string {
	i := strings.Index(s, ": ")
	if !p.Color || i <= 0 {
		return s
	}
	return dim + s[:i+1] + reset + s[i+1:]
}

type resultView struct {
	ID         check.ID         `json:"id" yaml:"id"`
	Weight     int              `json:"weight" yaml:"weight"`
	Categories []check.Category `json:"categories" yaml:"categories"`
	Passed     bool             `json:"passed" yaml:"passed"`
	URL        string           `json:"url,omitempty" yaml:"url,omitempty"`
	Details    []string         `json:"details,omitempty" yaml:"details,omitempty"`
	Error      string           `json:"error,omitempty" yaml:"error,omitempty"`
}

type reportView struct {
	Root   string       `json:"root" yaml:"root"`
	Mode   check.Mode   `json:"mode" yaml:"mode"`
	Passed int          `json:"passed" yaml:"passed"`
	Failed int          `json:"failed" yaml:"failed"`
	Digest string       `json:"digest" yaml:"digest"`
	Checks []resultView `json:"checks" yaml:"checks"`
}

func newReportView(r *linter.Report) reportView {
	v := reportView{
		Root:   r.Root,
		Mode:   r.Mode,
		Passed: r.Passed,
		Failed: r.Failed,
		Digest: r.Digest,
		Checks: make([]resultView, 0, len(r.Results)),
	}
	for _, res := range r.Results {
		rv := resultView{
			ID:         res.ID,
			Weight:     res.Metadata.Weight,
			Categories: res.Metadata.Categories,
			Passed:     res.Output.Passed,
			URL:        res.Output.URL,
			Details:    res.Output.Details,
		}
		if res.Output.Err != nil {
			rv.Error = res.Output.Err.Error()
		}
		v.Checks = append(v.Checks, rv)
	}
	return v
}

// PrintReport renders an evaluation report.
func (p *Printer) PrintReport(r *linter.Report) error {
	switch p.Format {
	case FormatJSON:
		return p.json(newReportView(r))
	case FormatYAML:
		return p.yaml(newReportView(r))
	}

	for _, res := range r.Results {
		status := p.paint(green, "[OK]")
		if !res.Output.Passed {
			status = p.paint(red, "[FAIL]")
		}
		line := fmt.Sprintf("%s %s", status, res.ID)
		if res.Output.URL != "" {
			line += " " + p.paint(dim, res.Output.URL)
		}
		if _, err := fmt.Fprintln(p.W, line); err != nil {
			return err
		}
		for _, d := range res.Output.Details {
			fmt.Fprintf(p.W, "      %s\n", p.formatLabel(d))
		}
		if res.Output.Err != nil {
			fmt.Fprintf(p.W, "      error: %v\n", res.Output.Err)
		}
	}
	_, err := fmt.Fprintf(p.W, "\n%d passed, %d failed\n", r.Passed, r.Failed)
	return err
}

type checkView struct {
	ID           check.ID         `json:"id" yaml:"id"`
	Weight       int              `json:"weight" yaml:"weight"`
	Categories   []check.Category `json:"categories" yaml:"categories"`
	ExternalName string           `json:"external_name,omitempty" yaml:"external_name,omitempty"`
}

// PrintChecks renders the check catalog.
func (p *Printer) PrintChecks(metas []check.Metadata) error {
	views := make([]checkView, 0, len(metas))
	for _, m := range metas {
		views = append(views, checkView{ID: m.ID, Weight: m.Weight, Categories: m.Categories, ExternalName: m.ExternalName})
	}

	switch p.Format {
	case FormatJSON:
		return p.json(views)
	case FormatYAML:
		return p.yaml(views)
	}

	tw := tabwriter.NewWriter(p.W, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tWEIGHT\tCATEGORIES\tSCORECARD")
	for _, v := range views {
		cats := make([]string, len(v.Categories))
		for i, c := range v.Categories {
			cats[i] = string(c)
		}
		external := v.ExternalName
		if external == "" {
			external = "-"
		}
		fmt.Fprintf(tw, "%s\t%d\t%s\t%s\n", v.ID, v.Weight, strings.Join(cats, ","), external)
	}
	return tw.Flush()
}

type verdictView struct {
	Passed   bool   `json:"passed" yaml:"passed"`
	Consumed int    `json:"consumed" yaml:"consumed"`
	Visited  int    `json:"visited" yaml:"visited"`
	Merges   int    `json:"merges" yaml:"merges"`
	Signed   int    `json:"signed" yaml:"signed"`
	Skipped  int    `json:"skipped" yaml:"skipped"`
	Unsigned string `json:"unsigned,omitempty" yaml:"unsigned,omitempty"`
}

// PrintVerdict renders a sign-off analysis.
func (p *Printer) PrintVerdict(v signoff.Verdict) error {
	view := verdictView(v)
	switch p.Format {
	case FormatJSON:
		return p.json(view)
	case FormatYAML:
		return p.yaml(view)
	}

	status := p.paint(green, "[OK]")
	if !v.Passed {
		status = p.paint(red, "[FAIL]")
	}
	_, err := fmt.Fprintf(p.W, "%s sign-off: %d of %d non-merge commits signed off\n", status, v.Signed, v.Visited-v.Merges)
	if err != nil {
		return err
	}
	fmt.Fprintf(p.W, "      %s %d inspected, %d merges, %d unreadable\n", p.paint(dim, "commits:"), v.Consumed, v.Merges, v.Skipped)
	if v.Unsigned != "" {
		fmt.Fprintf(p.W, "      %s %s\n", p.paint(dim, "unsigned:"), v.Unsigned)
	}
	return nil
}

func (p *Printer) json(v any) error {
	enc := json.NewEncoder(p.W)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (p *Printer) yaml(v any) error {
	enc := yaml.NewEncoder(p.W)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}
