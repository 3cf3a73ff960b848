package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/husonlab/dendroscope3-sub003/pkg/embed"
)

var strategySummaries = map[string]string{
	embed.Unoptimized:       "guide tree as read, children by edge order",
	embed.Algorithm2008:     "greedy insertion along reticulation dependencies",
	embed.Algorithm2009:     "branch and bound over child permutations",
	embed.Algorithm2010:     "circular order from hardwired clusters",
	embed.Algorithm2010Dist: "circular order from shortest-path distances",
	embed.AlgorithmLSA:      "barycentric sweeps over the LSA tree",
}

// strategiesCommand lists the embedding strategies.
func (c *CLI) strategiesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "strategies",
		Short: "List the embedding strategies",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			nameStyle := lipgloss.NewStyle().Width(20)
			for _, name := range embed.Names() {
				line := nameStyle.Render(name) + " " + StyleDim.Render(strategySummaries[name])
				if name == c.Config.Embed.Strategy {
					line = StyleTitle.Render(nameStyle.Render(name)) + " " + StyleDim.Render(strategySummaries[name]+" (default)")
				}
				fmt.Fprintln(w, line)
			}
			return nil
		},
	}
}
