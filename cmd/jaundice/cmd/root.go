package cmd

import (
	"strings"

	"github.com/spf13/cobra"
)

// demoURLs is a mixed sample: a missing page, an unknown host, known sites.
var demoURLs = []string{
	"https://inosmi.ru/not/exist.html",
	"https://inosmiy.ru/20221106/virusy-257514193.html",
	"https://inosmi.ru/20221106/videoigry-257474918.html",
	"https://lenta.ru/news/2022/11/27/20_strausov/",
	"https://inosmi.ru/20221104/mars-257472040.html",
	"https://inosmi.ru/20221127/bessmertie-258272850.html",
}

// Flags shared by all subcommands.
var Flags struct {
	Output string
}

var rootCmd = &cobra.Command{
	Use:          "jaundice",
	Short:        "Rate news articles by their share of emotionally charged words",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		_, err := newPrinter(Flags.Output)
		return err
	},
}

// Execute runs the CLI.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&Flags.Output, "output", "o", outputTable,
		"output format: "+strings.Join([]string{outputTable, outputJSON, outputYAML}, ", "))

	rootCmd.AddCommand(rateCmd, queryCmd, wordsCmd)
}
