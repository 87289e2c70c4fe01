package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/kr/pretty"
	"github.com/sergi/go-diff/diffmatchpatch"
	"github.com/spf13/cobra"

	"github.com/viridian-dev/viridian"
	"github.com/viridian-dev/viridian/internal/demo"
	"github.com/viridian-dev/viridian/pkg/engine"
	"github.com/viridian-dev/viridian/pkg/host"
	"github.com/viridian-dev/viridian/pkg/render"
)

type renderOptions struct {
	clicks     []string
	inputs     []string
	pretty     bool
	diff       bool
	dump       bool
	showConfig bool
}

func renderCmd() *cobra.Command {
	var opts renderOptions

	cmd := &cobra.Command{
		Use:   "render [demo]",
		Short: "Render a demo once and print the HTML",
		Long: `Render a demo application into an in-memory document and print the
body HTML. Events can be replayed against elements by id; each event is
followed by a full render pass.

Examples:
  viridian render counter
  viridian render counter --click inc --click inc --diff
  viridian render todo --input draft=milk --click add --dump`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := "counter"
			if len(args) == 1 {
				name = args[0]
			}
			return runRender(cmd, name, opts)
		},
	}

	cmd.Flags().StringArrayVar(&opts.clicks, "click", nil, "Click the element with this id (repeatable)")
	cmd.Flags().StringArrayVar(&opts.inputs, "input", nil, "Send an input event as id=value (repeatable, runs before clicks)")
	cmd.Flags().BoolVarP(&opts.pretty, "pretty", "p", false, "Indent block elements")
	cmd.Flags().BoolVar(&opts.diff, "diff", false, "Print a diff of the HTML after each event")
	cmd.Flags().BoolVar(&opts.dump, "dump", false, "Dump commit statistics and the fiber tree")
	cmd.Flags().BoolVar(&opts.showConfig, "show-config", false, "Print the resolved configuration first")

	return cmd
}

// step is one replayed event.
type step struct {
	id string
	ev host.Event
}

func parseSteps(opts renderOptions) ([]step, error) {
	var steps []step
	for _, in := range opts.inputs {
		id, value, ok := strings.Cut(in, "=")
		if !ok || id == "" {
			return nil, errors.Newf("--input %q: want id=value", in)
		}
		steps = append(steps, step{id: id, ev: host.Event{Type: "input", Value: value}})
	}
	for _, id := range opts.clicks {
		steps = append(steps, step{id: id, ev: host.Event{Type: "click"}})
	}
	return steps, nil
}

func runRender(cmd *cobra.Command, name string, opts renderOptions) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	app, err := demo.Lookup(name)
	if err != nil {
		return err
	}
	steps, err := parseSteps(opts)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if opts.showConfig {
		data, err := cfg.Marshal()
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%s\n%s\n", faint("# resolved configuration"), data)
	}

	a, err := viridian.NewApp(cfg, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	var stats []engine.CommitStats
	a.Engine().OnCommit(func(s engine.CommitStats) { stats = append(stats, s) })

	r := render.NewRenderer(render.RendererConfig{Pretty: opts.pretty, OmitIDs: true})
	html := func() string { return r.Children(a.Document().Body()) }

	if err := a.Render(app.Root()); err != nil {
		return err
	}
	prev := html()
	if opts.diff {
		fmt.Fprintln(out, prev)
	}

	for _, s := range steps {
		node, ok := a.Document().QueryAttr("id", s.id)
		if !ok {
			return errors.Newf("no element with id %q", s.id)
		}
		if n := a.Document().Dispatch(node, s.ev); n == 0 {
			warn(cmd, "#%s has no %s listener", s.id, s.ev.Type)
		}
		if err := a.Engine().Flush(); err != nil {
			return err
		}
		if opts.diff {
			next := html()
			fmt.Fprintf(out, "%s\n", faint(fmt.Sprintf("# %s #%s", s.ev.Type, s.id)))
			printDiff(out, prev, next)
			prev = next
		}
	}

	if !opts.diff {
		fmt.Fprintln(out, html())
	}
	if opts.dump {
		fmt.Fprintf(out, "%s\n%# v\n", faint("# commits"), pretty.Formatter(stats))
		fmt.Fprintf(out, "%s\n%s", faint("# fiber tree"), a.Engine().Current())
	}
	success(cmd, "%s rendered in %d commit(s)", name, len(stats))
	return nil
}

// printDiff writes an inline character diff of two renders.
func printDiff(w io.Writer, before, after string) {
	if before == after {
		fmt.Fprintln(w, faint("(no change)"))
		return
	}
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffCleanupSemantic(dmp.DiffMain(before, after, false))
	fmt.Fprintln(w, dmp.DiffPrettyText(diffs))
}
