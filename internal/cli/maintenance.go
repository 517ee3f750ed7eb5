package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/personafuse/dataset"
)

func (a *app) exportCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the loaded catalogue as a YAML bundle",
		Long: `export writes the catalogue in use (after DLC filtering) as one YAML
document that --data accepts back. Without -o it goes to stdout.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cat := a.engine.Catalog()
			if output == "" {
				return dataset.WriteBundle(cmd.OutOrStdout(), cat)
			}

			f, err := os.Create(output)
			if err != nil {
				return fmt.Errorf("create %s: %w", output, err)
			}
			if err := dataset.WriteBundle(f, cat); err != nil {
				f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "wrote %s\n", output)
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file")

	return cmd
}

func (a *app) verifyCmd() *cobra.Command {
	var workers int

	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Cross-check the fusion table and print its size",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("workers") {
				workers = a.cfg.VerifyWorkers
			}
			if err := a.engine.Verify(cmd.Context(), workers); err != nil {
				return err
			}

			st := a.engine.Stats()
			tw := newTable(cmd.OutOrStdout())
			fmt.Fprintf(tw, "personas\t%d\n", st.Personas)
			fmt.Fprintf(tw, "arcana\t%d\n", st.Arcana)
			fmt.Fprintf(tw, "fusions\t%d\n", st.Fusions)
			fmt.Fprintf(tw, "distinct results\t%d\n", st.Results)
			fmt.Fprintf(tw, "graph edges\t%d\n", st.Edges)
			fmt.Fprintf(tw, "build time\t%s\n", st.BuildTime)
			if err := tw.Flush(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "ok")
			return nil
		},
	}
	cmd.Flags().IntVar(&workers, "workers", 0, "parallel checks (overrides FUSION_VERIFY_WORKERS; 0 means unbounded)")

	return cmd
}
