/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: grains.go
Description: The grains command. Lists each mask grain with a worked example.
*/

package commands

import (
	"fmt"

	"github.com/kleascm/bytefreq/pkg/mask"
	"github.com/spf13/cobra"
)

// ListGrains prints the grain catalogue
func ListGrains(cmd *cobra.Command, args []string) {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "bytefreq - Available Grains")
	fmt.Fprintln(out, "===========================")
	fmt.Fprintln(out)

	for _, g := range mask.Catalogue() {
		fmt.Fprintf(out, "%s  %s\n", g.Grain, g.Name)
		fmt.Fprintf(out, "   Description: %s\n", g.Description)
		fmt.Fprintf(out, "   Example: %s -> %s\n", g.Example, mask.Mask(g.Example, g.Grain))
		fmt.Fprintln(out)
	}

	fmt.Fprintf(out, "Use --grain to choose one; the default is %s\n", mask.DefaultGrain)
}
