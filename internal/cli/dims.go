package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/QtravelPL/duckling/internal/dims"
)

// dimsCmd represents the dims command
var dimsCmd = &cobra.Command{
	Use:   "dims",
	Short: "List available dimensions",
	Long: `List every built-in dimension by its wire name. A dimension whose
rules build on another one's tokens shows that dependency.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		reg := dims.New()
		for _, name := range reg.Names() {
			d, ok := reg.FindByName(name)
			if !ok {
				continue
			}
			deps := d.Dependencies()
			if len(deps) == 0 {
				fmt.Println(name)
				continue
			}
			names := make([]string, len(deps))
			for i, s := range deps {
				names[i] = s.Name()
			}
			fmt.Printf("%s (after %s)\n", name, strings.Join(names, ", "))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(dimsCmd)
}
