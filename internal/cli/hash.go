package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/claritygate/claritygate/internal/dochash"
	"github.com/claritygate/claritygate/internal/model"
	"github.com/claritygate/claritygate/internal/pipeline"
)

var (
	hashVerify   bool
	hashSelfTest bool
)

// hashCmd represents the hash command
var hashCmd = &cobra.Command{
	Use:   "hash <path>",
	Short: "Compute or verify a document integrity hash",
	Long: `Compute the integrity hash of a document: the SHA-256 of its content
after BOM and line-ending normalization, excluding the document's own
document-sha256 line.

With --verify, check the document against its stored hash instead and
exit 0 on match, 1 on mismatch or when no stored hash is present.

Example:
  claritygate hash my-doc.cgd.md
  claritygate hash --verify my-doc.cgd.md
  claritygate hash --test`,
	Args: cobra.ArbitraryArgs,
	RunE: runHash,
}

func init() {
	rootCmd.AddCommand(hashCmd)

	hashCmd.Flags().BoolVar(&hashVerify, "verify", false, "verify the document against its stored hash")
	hashCmd.Flags().BoolVar(&hashSelfTest, "test", false, "run fixed normalization self-checks")
}

func runHash(cmd *cobra.Command, args []string) error {
	if hashSelfTest {
		if len(args) != 0 {
			return usageError(cmd)
		}
		if !dochash.SelfTest(os.Stdout) {
			return Exit(1)
		}
		return nil
	}

	if len(args) != 1 {
		return usageError(cmd)
	}
	path := args[0]

	reader := pipeline.NewReader(model.DefaultConfig().Scan.MaxBytes)
	content, err := reader.Read(path)
	if err != nil {
		return err
	}

	if hashVerify {
		result, err := dochash.Verify(content)
		if err != nil {
			return err
		}
		switch {
		case result.OK:
			fmt.Printf("PASS: Hash verified: %s\n", result.Computed)
			return nil
		case result.Stored == "":
			fmt.Println("FAIL: No document-sha256 found")
			return Exit(1)
		default:
			fmt.Println("FAIL: Hash mismatch")
			fmt.Printf("  Stored:   %s\n", result.Stored)
			fmt.Printf("  Computed: %s\n", result.Computed)
			return Exit(1)
		}
	}

	digest, err := dochash.Compute(content)
	if err != nil {
		return err
	}

	fmt.Println(digest)
	return nil
}
