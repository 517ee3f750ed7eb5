package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

const shellMenu = `Commands:
  about                  what personas and fusion are
  persona <name>         information about a persona
  arcana                 list every arcana
  personas <arcana>      personas of an arcana
  fusions-to <name>      every pair that fuses into a persona
  fuse <a> x <b>         the result of fusing two personas
  related <name>         every fusion a persona is an ingredient of
  chain <a> x <b>        shortest fusion chain from one persona to another
  key                    abbreviation key
  m                      this menu
  quit                   leave the shell`

func (a *app) shellCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Interactive calculator",
		Long: `shell reads one command per line from stdin and answers it against the
loaded catalogue, which is built once for the whole session. Multi-word names
need no quotes; separate the two ingredients of "fuse" with a lone x.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			in := cmd.InOrStdin()
			return a.runShell(cmd.Context(), in, cmd.OutOrStdout(), isTerminal(in))
		},
	}
}

func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// runShell executes lines from in until "quit" or EOF. Command errors are
// printed and the loop continues. The prompt is only written when
// interactive is set.
func (a *app) runShell(ctx context.Context, in io.Reader, out io.Writer, interactive bool) error {
	fmt.Fprintln(out, title(out, "Persona fusion calculator"))
	fmt.Fprintln(out, shellMenu)

	sc := bufio.NewScanner(in)
	for {
		if interactive {
			fmt.Fprint(out, "\n> ")
		}
		if !sc.Scan() {
			return sc.Err()
		}

		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}
		verb, args := strings.ToLower(fields[0]), fields[1:]
		if verb == "quit" || verb == "exit" {
			return nil
		}

		if err := a.dispatch(ctx, out, verb, args); err != nil {
			fmt.Fprintf(out, "Error: %v\n", err)
		}
	}
}

func (a *app) dispatch(ctx context.Context, out io.Writer, verb string, args []string) error {
	needName := func(what string) (string, error) {
		name := joinName(args)
		if name == "" {
			return "", fmt.Errorf("%s needs a name", what)
		}
		return name, nil
	}

	switch verb {
	case "m", "menu", "help":
		fmt.Fprintln(out, shellMenu)
	case "about":
		showAbout(out)
	case "key":
		showKey(out)
	case "arcana", "arcanas":
		return a.showArcana(out)
	case "persona":
		name, err := needName(verb)
		if err != nil {
			return err
		}
		return a.showPersona(out, name)
	case "personas":
		name, err := needName(verb)
		if err != nil {
			return err
		}
		return a.showPersonas(out, name)
	case "fusions-to":
		name, err := needName(verb)
		if err != nil {
			return err
		}
		return a.showFusionsTo(out, name)
	case "related", "related-fusions":
		name, err := needName(verb)
		if err != nil {
			return err
		}
		return a.showRelated(out, name)
	case "fuse", "fusion-result":
		x, y, err := splitPair(args)
		if err != nil {
			return err
		}
		return a.showFuse(out, x, y)
	case "chain":
		x, y, err := splitPair(args)
		if err != nil {
			return err
		}
		return a.showChain(ctx, out, x, y, 0)
	default:
		return fmt.Errorf("unknown command %q, enter m for the menu", verb)
	}

	return nil
}
