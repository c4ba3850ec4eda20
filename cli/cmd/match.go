package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/goccy/go-yaml"
	"github.com/sahilm/fuzzy"

	"github.com/ardnew/namedlogs/log"
	"github.com/ardnew/namedlogs/logs"
	"github.com/ardnew/namedlogs/namespace"
)

// Output formats of the match command.
const (
	FormatTable = "table"
	FormatJSON  = "json"
	FormatYAML  = "yaml"
)

// maxSuggestions limits the names suggested for each unmatched token.
const maxSuggestions = 3

// Match evaluates namespaces against the configured pattern.
type Match struct {
	Namespaces []string `arg:"" help:"Namespaces to evaluate, in addition to sources and known namespaces" name:"namespace" optional:""`

	Where   string `help:"Only show namespaces for which the expression is true (fields: namespace, enabled, matched, level, severity)" short:"w"`
	Format  string `default:"table" enum:"table,json,yaml" help:"Output format (${enum})" short:"o"`
	Suggest bool   `help:"Suggest namespaces for pattern tokens that match none" short:"S"`
}

// Result is the state of one namespace under the active pattern.
type Result struct {
	Namespace string `expr:"namespace" json:"namespace" yaml:"namespace"`
	Enabled   bool   `expr:"enabled"   json:"enabled"   yaml:"enabled"`
	Matched   bool   `expr:"matched"   json:"matched"   yaml:"matched"`
	Level     string `expr:"level"     json:"level"     yaml:"level"`
	Severity  int    `expr:"severity"  json:"severity"  yaml:"severity"`
}

// Suggestion lists the known namespaces closest to a pattern token that
// matches none of them.
type Suggestion struct {
	Token string   `json:"token"   yaml:"token"`
	Names []string `json:"names"   yaml:"names"`
}

// Run executes the match command.
func (m *Match) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	sources, err := sourceNamespaces(ctx)
	if err != nil {
		return ErrReadSource.Wrap(err)
	}

	cfg := configFrom(ctx)
	names := cfg.NamespaceList(slices.Concat(m.Namespaces, sources)...)

	results := Evaluate(factoryFrom(ctx), names)

	if m.Where != "" {
		program, err := CompileFilter(m.Where)
		if err != nil {
			return err
		}

		if results, err = Filter(program, results); err != nil {
			return err
		}
	}

	log.DebugContext(ctx, "match",
		slog.Int("namespaces", len(names)),
		slog.Int("results", len(results)),
		slog.String("where", m.Where),
	)

	var suggest []Suggestion
	if m.Suggest {
		suggest = Suggest(cfg.Namespaces, names)
	}

	return m.write(ctx, outputFrom(ctx), results, suggest)
}

func (m *Match) write(
	ctx context.Context,
	w io.Writer,
	results []Result,
	suggest []Suggestion,
) error {
	var (
		data []byte
		err  error
	)

	switch m.Format {
	case FormatJSON:
		data, err = json.MarshalIndent(results, "", "  ")
		data = append(data, '\n')

	case FormatYAML:
		data, err = yaml.MarshalContext(ctx, results, yaml.Indent(2))

	default:
		_, err = io.WriteString(w, RenderTable(w, results)+"\n")
		if err != nil {
			return err
		}

		for _, s := range suggest {
			fmt.Fprintf(w, "no namespace matches %q (did you mean: %s?)\n",
				s.Token, strings.Join(s.Names, ", "))
		}

		return nil
	}

	if err != nil {
		return ErrMarshal.With(slog.String("format", m.Format)).Wrap(err)
	}

	for _, s := range suggest {
		log.WarnContext(ctx, "no namespace matches token",
			slog.String("token", s.Token),
			slog.Any("suggest", s.Names),
		)
	}

	_, err = w.Write(data)

	return err
}

// Evaluate returns the state of each of names under the rules of f.
// Requesting a name creates its handle in f.
func Evaluate(f *logs.Factory, names []string) []Result {
	rules := f.Rules()
	results := make([]Result, 0, len(names))

	for _, name := range names {
		level := f.Get(name).Level()

		results = append(results, Result{
			Namespace: name,
			Enabled:   f.Enabled(name),
			Matched:   rules.Matches(name),
			Level:     level.String(),
			Severity:  int(level),
		})
	}

	return results
}

// CompileFilter compiles a boolean expression over the fields of [Result].
func CompileFilter(src string) (*vm.Program, error) {
	program, err := expr.Compile(src, expr.Env(Result{}), expr.AsBool())
	if err != nil {
		return nil, ErrFilter.With(slog.String("where", src)).Wrap(err)
	}

	return program, nil
}

// Filter returns the results for which program evaluates to true.
func Filter(program *vm.Program, results []Result) ([]Result, error) {
	kept := make([]Result, 0, len(results))

	for _, r := range results {
		out, err := vm.Run(program, r)
		if err != nil {
			return nil, ErrFilter.
				With(slog.String("namespace", r.Namespace)).
				Wrap(err)
		}

		if ok, _ := out.(bool); ok {
			kept = append(kept, r)
		}
	}

	return kept, nil
}

// Suggest returns, for each token of spec that matches none of names, the
// names closest to it by fuzzy match.
func Suggest(spec string, names []string) []Suggestion {
	var out []Suggestion

	for tok := range namespace.Tokens(spec) {
		pattern := strings.TrimPrefix(tok, namespace.Negate)
		rules := namespace.Compile(pattern)

		if slices.ContainsFunc(names, rules.Matches) {
			continue
		}

		query := strings.ReplaceAll(pattern, namespace.Wildcard, "")
		matches := fuzzy.Find(query, names)

		s := Suggestion{Token: tok}
		for i := 0; i < len(matches) && i < maxSuggestions; i++ {
			s.Names = append(s.Names, matches[i].Str)
		}

		if len(s.Names) > 0 {
			out = append(out, s)
		}
	}

	return out
}

// RenderTable renders results as a bordered table, styled for w.
func RenderTable(w io.Writer, results []Result) string {
	r := lipgloss.NewRenderer(w)

	var (
		header   = r.NewStyle().Bold(true).Padding(0, 1)
		cell     = r.NewStyle().Padding(0, 1)
		enabled  = cell.Foreground(lipgloss.Color("2"))
		disabled = cell.Foreground(lipgloss.Color("8"))
	)

	rows := make([][]string, 0, len(results))
	for _, res := range results {
		rows = append(rows, []string{
			res.Namespace,
			strconv.FormatBool(res.Enabled),
			strconv.FormatBool(res.Matched),
			res.Level,
		})
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(r.NewStyle().Foreground(lipgloss.Color("8"))).
		Headers("NAMESPACE", "ENABLED", "MATCHED", "LEVEL").
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return header
			case row >= 0 && row < len(results) && results[row].Enabled:
				return enabled
			default:
				return disabled
			}
		})

	return t.String()
}
