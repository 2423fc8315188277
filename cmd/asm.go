/*
Copyright © 2024 Jeff Berkowitz (pdxjjb@gmail.com)
*/
package cmd

import (
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/gmofishsauce/e20/pkg/asm"
	"github.com/gmofishsauce/e20/pkg/obj"
)

var asmOutput string
var asmListing bool

// asmCmd represents the asm command
var asmCmd = &cobra.Command{
	Use:   "asm sourceFile",
	Short: "The E20 assembler",
	Long: `Asm assembles an E20 source file (typically with a .s
suffix) into a machine code file of one ram[...] line per word,
written to stdout or to the file named by --output. With
--listing, the symbol table and assembled words are dumped to
stderr.
`,

	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return assemble(args[0])
	},
}

func init() {
	rootCmd.AddCommand(asmCmd)
	asmCmd.Flags().StringVarP(&asmOutput, "output", "o", "", "write machine code to a file")
	asmCmd.Flags().BoolVar(&asmListing, "listing", false, "dump symbols and words to stderr")
}

func assemble(name string) error {
	log.SetFlags(log.Lmsgprefix)
	log.SetPrefix("asm: ")

	src, err := os.ReadFile(name)
	if err != nil {
		return err
	}
	a := asm.New()
	words, err := a.Assemble(string(src))
	if err != nil {
		return err
	}

	out := os.Stdout
	if asmOutput != "" {
		if out, err = os.Create(asmOutput); err != nil {
			return err
		}
		defer out.Close()
	}
	if err := obj.Write(out, words); err != nil {
		return err
	}
	if asmListing {
		a.WriteListing(os.Stderr)
	}
	return nil
}
