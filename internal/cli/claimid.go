package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/claritygate/claritygate/internal/ident"
)

var claimIDSelfTest bool

// claimIDCmd represents the claim-id command
var claimIDCmd = &cobra.Command{
	Use:   "claim-id <text> <location>",
	Short: "Compute a stable claim identifier",
	Long: `Compute the stable identifier for a claim from its text and its
structural location (heading-slug/ordinal).

The identifier is whitespace-insensitive: outer whitespace and repeated
internal whitespace in the text never change the result.

Example:
  claritygate claim-id "Base price is $99/mo" "api-pricing/1"
  # Output: claim-75fb137a

  claritygate claim-id --test`,
	Args: cobra.ArbitraryArgs,
	RunE: runClaimID,
}

func init() {
	rootCmd.AddCommand(claimIDCmd)

	claimIDCmd.Flags().BoolVar(&claimIDSelfTest, "test", false, "run the published test vectors and normalization checks")
}

func runClaimID(cmd *cobra.Command, args []string) error {
	if claimIDSelfTest {
		if len(args) != 0 {
			return usageError(cmd)
		}
		if !ident.SelfTest(os.Stdout) {
			return Exit(1)
		}
		return nil
	}

	if len(args) != 2 {
		return usageError(cmd)
	}

	id, err := ident.Generate(args[0], args[1])
	if err != nil {
		return err
	}

	fmt.Println(id)
	return nil
}
