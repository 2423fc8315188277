/*
Copyright © 2024 Jeff Berkowitz (pdxjjb@gmail.com)
*/
package cmd

import (
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/gmofishsauce/e20/pkg/cache"
	"github.com/gmofishsauce/e20/pkg/obj"
	"github.com/gmofishsauce/e20/pkg/sim"
)

var cacheSpec string
var maxSteps uint64

// The state report prints this many words of memory.
const reportWords = 128

// simCmd represents the sim command
var simCmd = &cobra.Command{
	Use:   "sim binFile",
	Short: "The E20 simulator",
	Long: `Sim loads an E20 machine code file (typically with a .bin
suffix) and executes it until the program halts, then prints the
final architectural state.

With --cache, the run instead prints a cache trace: the memory
accesses of the same execution are fed through a one- or two-level
set-associative cache model, and each hit, miss and store is
logged as it happens.
`,

	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return simulate(args[0])
	},
}

func init() {
	rootCmd.AddCommand(simCmd)
	simCmd.Flags().StringVar(&cacheSpec, "cache", "",
		"cache configuration: size,associativity,blocksize (one cache)\n"+
			"or size,associativity,blocksize,size,associativity,blocksize (two caches)")
	simCmd.Flags().Uint64Var(&maxSteps, "max-steps", 0, "abort after this many steps (0 = no limit)")
}

func simulate(name string) error {
	log.SetFlags(log.Lmsgprefix)
	log.SetPrefix("sim: ")

	f, err := os.Open(name)
	if err != nil {
		return err
	}
	defer f.Close()
	words, err := obj.Read(f)
	if err != nil {
		return err
	}

	m := sim.New()
	m.Load(words)

	var obs sim.Observer
	if cacheSpec != "" {
		cfgs, err := cache.ParseSpec(cacheSpec)
		if err != nil {
			return err
		}
		h := cache.New(os.Stdout, cfgs...)
		h.WriteSummary()
		obs = h
	}

	if err := m.Run(obs, maxSteps); err != nil {
		return err
	}
	if cacheSpec == "" {
		return m.WriteState(os.Stdout, reportWords)
	}
	return nil
}
