package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/personafuse/fusion"
	"github.com/katalvlaran/personafuse/persona"
)

var errPairArgs = errors.New(`want two persona names: fuse A B, or fuse Long Name x Other Name`)

// joinName lets multi-word names be typed without quotes.
func joinName(args []string) string {
	return strings.TrimSpace(strings.Join(args, " "))
}

// splitPair reads two names either as exactly two arguments or as words
// separated by a lone "x".
func splitPair(args []string) (string, string, error) {
	for i, arg := range args {
		if arg == "x" && i > 0 && i < len(args)-1 {
			return joinName(args[:i]), joinName(args[i+1:]), nil
		}
	}
	if len(args) == 2 {
		return args[0], args[1], nil
	}
	return "", "", errPairArgs
}

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
}

// title renders s bold when w is a colour-capable terminal, plain otherwise.
func title(w io.Writer, s string) string {
	return lipgloss.NewRenderer(w).NewStyle().Bold(true).Render(s)
}

func (a *app) personaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "persona <name>",
		Short: "Information about a specific persona",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.showPersona(cmd.OutOrStdout(), joinName(args))
		},
	}
}

func (a *app) showPersona(w io.Writer, name string) error {
	p, err := a.engine.Persona(name)
	if err != nil {
		return err
	}
	writePersona(w, p)
	return nil
}

func writePersona(w io.Writer, p persona.Entity) {
	fmt.Fprintln(w, title(w, p.Name))
	fmt.Fprintf(w, "Arcana: %s\n", p.Arcana)
	fmt.Fprintf(w, "Base level: %d\n", p.Level)
	fmt.Fprintf(w, "Kind: %s\n", p.Kind)

	tw := newTable(w)
	fmt.Fprintln(tw, strings.Join(persona.StatNames[:], "\t"))
	stats := make([]string, len(p.Stats))
	for i, v := range p.Stats {
		stats[i] = fmt.Sprint(v)
	}
	fmt.Fprintln(tw, strings.Join(stats, "\t"))
	tw.Flush()

	tw = newTable(w)
	fmt.Fprintln(tw, strings.Join(persona.ElementNames[:], "\t"))
	codes := make([]string, len(p.Affinities))
	for i, af := range p.Affinities {
		codes[i] = af.Code()
	}
	fmt.Fprintln(tw, strings.Join(codes, "\t"))
	tw.Flush()

	if p.Kind == persona.KindGuillotine {
		fmt.Fprintf(w, "Guillotine fusion: %s\n", strings.Join(p.Ingredients, ", "))
	}
}

func (a *app) arcanaCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "arcana",
		Aliases: []string{"arcanas"},
		Short:   "List every arcana",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.showArcana(cmd.OutOrStdout())
		},
	}
}

func (a *app) showArcana(w io.Writer) error {
	cat := a.engine.Catalog()
	compat := cat.CompatibilityGraph()
	tw := newTable(w)
	fmt.Fprintln(tw, "ARCANA\tPERSONAS\tHIGHEST LEVEL\tFUSES WITH")
	for _, name := range a.engine.Arcana() {
		arc, _ := cat.Arcanum(name)
		fmt.Fprintf(tw, "%s\t%d\t%d\t%d\n", name, len(arc.Personas), arc.HighestLevel, len(compat.Children(name)))
	}
	return tw.Flush()
}

func (a *app) personasCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "personas <arcana>",
		Short: "List the personas of an arcana",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.showPersonas(cmd.OutOrStdout(), joinName(args))
		},
	}
}

func (a *app) showPersonas(w io.Writer, arcana string) error {
	ps, err := a.engine.PersonasIn(arcana)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "There are %d personas in the %s arcana:\n", len(ps), arcana)
	tw := newTable(w)
	fmt.Fprintln(tw, "LEVEL\tNAME\tKIND")
	for _, p := range ps {
		fmt.Fprintf(tw, "%d\t%s\t%s\n", p.Level, p.Name, p.Kind)
	}
	return tw.Flush()
}

func (a *app) fusionsToCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fusions-to <name>",
		Short: "Every pair that fuses into a persona",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.showFusionsTo(cmd.OutOrStdout(), joinName(args))
		},
	}
}

func (a *app) showFusionsTo(w io.Writer, name string) error {
	pairs, err := a.engine.FusionsTo(name)
	if errors.Is(err, fusion.ErrNotApplicable) {
		p, _ := a.engine.Persona(name)
		if p.Kind == persona.KindGuillotine {
			recipe, rerr := a.engine.SpecialRecipe(name)
			if rerr != nil {
				return rerr
			}
			fmt.Fprintf(w, "Guillotine fusion for %s: %s\n", name, strings.Join(recipe, ", "))
			return nil
		}
		fmt.Fprintf(w, "%s is a %s persona and cannot be fused.\n", name, p.Kind)
		return nil
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "%d fusions for %s:\n", len(pairs), name)
	for _, pair := range pairs {
		fmt.Fprintln(w, pair)
	}
	return nil
}

func (a *app) fuseCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "fuse <a> <b>",
		Aliases: []string{"fusion-result"},
		Short:   "The persona two personas fuse into",
		Example: "  fusioncalc fuse Arsene Pixie\n  fusioncalc fuse Queen Mab x Saki Mitama",
		Args:    cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			x, y, err := splitPair(args)
			if err != nil {
				return err
			}
			return a.showFuse(cmd.OutOrStdout(), x, y)
		},
	}
}

func (a *app) showFuse(w io.Writer, x, y string) error {
	result, err := a.engine.Fuse(x, y)
	if errors.Is(err, fusion.ErrNoFusion) {
		fmt.Fprintf(w, "Fusion is impossible between %s and %s\n", x, y)
		return nil
	}
	if err != nil {
		return err
	}

	px, _ := a.engine.Persona(x)
	py, _ := a.engine.Persona(y)
	fmt.Fprintf(w, "%s x %s = %s\n", px.Label(), py.Label(), result.Label())
	return nil
}

func (a *app) relatedCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "related <name>",
		Aliases: []string{"related-fusions"},
		Short:   "Every fusion a persona is an ingredient of",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.showRelated(cmd.OutOrStdout(), joinName(args))
		},
	}
}

func (a *app) showRelated(w io.Writer, name string) error {
	rows, err := a.engine.RelatedFusions(name)
	if err != nil {
		return err
	}
	p, _ := a.engine.Persona(name)

	fmt.Fprintf(w, "Fusions %s is an ingredient in (%d):\n", name, len(rows))
	tw := newTable(w)
	fmt.Fprintln(tw, "PARTNER\tLEVEL\tARCANA\tRESULT\tLEVEL\tARCANA")
	for _, r := range rows {
		fmt.Fprintf(tw, "%s\t%d\t%s\t%s\t%d\t%s\n",
			r.Partner.Name, r.Partner.Level, r.Partner.Arcana,
			r.Result.Name, r.Result.Level, r.Result.Arcana)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	results, err := a.engine.Results(name)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "%s reaches %d distinct personas.\n", p.Name, len(results))
	return nil
}

func (a *app) chainCmd() *cobra.Command {
	var maxSteps int

	cmd := &cobra.Command{
		Use:     "chain <from> <to>",
		Short:   "Shortest sequence of fusions from one persona to another",
		Example: "  fusioncalc chain Arsene Silky\n  fusioncalc chain Jack Frost x Queen Mab --max-steps 3",
		Args:    cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			from, to, err := splitPair(args)
			if err != nil {
				return err
			}
			return a.showChain(cmd.Context(), cmd.OutOrStdout(), from, to, maxSteps)
		},
	}
	cmd.Flags().IntVar(&maxSteps, "max-steps", 0, "longest chain to look for (0 means no limit)")

	return cmd
}

func (a *app) showChain(ctx context.Context, w io.Writer, from, to string, maxSteps int) error {
	steps, err := a.engine.Chain(ctx, from, to, fusion.WithMaxSteps(maxSteps))
	if errors.Is(err, fusion.ErrNoChain) {
		fmt.Fprintf(w, "No fusion chain from %s to %s\n", from, to)
		return nil
	}
	if err != nil {
		return err
	}

	if len(steps) == 0 {
		fmt.Fprintf(w, "%s is already %s\n", from, to)
		return nil
	}
	for i, s := range steps {
		fmt.Fprintf(w, "%d. %s x %s = %s\n", i+1, s.From.Label(), s.Partner.Label(), s.Result.Label())
	}
	return nil
}

func (a *app) keyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "key",
		Short: "Abbreviation key for the affinity table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			showKey(cmd.OutOrStdout())
			return nil
		},
	}
}

func showKey(w io.Writer) {
	fmt.Fprintln(w, title(w, "Abbreviation key"))
	tw := newTable(w)
	for _, row := range [][2]string{
		{"phys", "physical"},
		{"elec", "electricity"},
		{"psych", "psychic"},
		{"nucl", "nuclear"},
	} {
		fmt.Fprintf(tw, "%s\t%s\n", row[0], row[1])
	}
	for af := persona.Neutral; af <= persona.Repel; af++ {
		fmt.Fprintf(tw, "%s\t%s\n", af.Code(), af)
	}
	tw.Flush()
}

func (a *app) aboutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "about",
		Short: "What personas and fusion are",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			showAbout(cmd.OutOrStdout())
			return nil
		},
	}
}

func showAbout(w io.Writer) {
	fmt.Fprintln(w, title(w, "About persona fusion"))
	fmt.Fprint(w, `Every persona has a name, a base level and an arcana. Two personas fuse
into a third: the arcana of the result comes from a compatibility chart,
and the result is the persona of that arcana whose base level is nearest
the average of the two ingredients. Same-arcana fusions round down and
never return an ingredient; cross-arcana fusions round up.

Treasure personas shift the other ingredient up or down its own arcana by
a fixed amount instead. Guillotine personas are made from a fixed list of
three or more ingredients and never come out of a two-persona fusion.

Working out one fusion is easy. Knowing every pair that produces a given
persona means trying all pairs, which is what this calculator does up front.
`)
}
