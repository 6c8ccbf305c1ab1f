package cli

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/matzehuels/biblio/pkg/books"
)

// lookupCommand creates the lookup command, which resolves ISBNs once and
// prints the results.
func (c *CLI) lookupCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "lookup <isbn> [isbn...]",
		Short: "Resolve one or more ISBNs and print the book records",
		Example: `  biblio lookup 9780316769488
  biblio lookup --json 0316769487 9780140283334`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}

			resolver, store, err := c.newResolver(ctx, cfg)
			if err != nil {
				return err
			}
			defer store.Close()

			out := printer{w: cmd.OutOrStdout()}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")

			for _, isbn := range args {
				prog := newProgress(loggerFromContext(ctx))

				var spin *Spinner
				if !asJSON {
					spin = newSpinner(ctx, cmd.ErrOrStderr(), "Resolving "+isbn+"...")
					spin.Start()
				}
				res, err := resolver.ResolveByIdentifier(ctx, isbn)
				if spin != nil {
					spin.Stop()
				}
				if err != nil {
					if !asJSON {
						out.error("%s: %v", isbn, err)
					}
					return err
				}
				prog.done("resolved " + books.NormalizeIdentifier(isbn))

				if asJSON {
					if err := enc.Encode(res); err != nil {
						return err
					}
					continue
				}
				if res.OK() {
					out.record(isbn, res.Book)
				} else {
					out.lookupError(isbn, res.Err)
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print results as JSON")
	return cmd
}
