package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/user/jaundice-service/internal/entity"
	"gopkg.in/yaml.v3"
)

const (
	outputTable = "table"
	outputJSON  = "json"
	outputYAML  = "yaml"
)

type printer func(w io.Writer, cards []entity.ArticleCard) error

func newPrinter(format string) (printer, error) {
	switch format {
	case outputTable:
		return printTable, nil
	case outputJSON:
		return printJSON, nil
	case outputYAML:
		return printYAML, nil
	}
	return nil, fmt.Errorf("unknown output format %q", format)
}

func printJSON(w io.Writer, cards []entity.ArticleCard) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(cards)
}

func printYAML(w io.Writer, cards []entity.ArticleCard) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(cards); err != nil {
		return err
	}
	return enc.Close()
}

func printTable(w io.Writer, cards []entity.ArticleCard) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "STATUS\tRATING\tWORDS\tURL")
	for _, c := range cards {
		rating, words := "-", "-"
		if c.Rating != nil {
			rating = strconv.FormatFloat(*c.Rating, 'f', 2, 64)
		}
		if c.WordsNumber != nil {
			words = strconv.Itoa(*c.WordsNumber)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", c.Status, rating, words, c.URL)
	}
	return tw.Flush()
}
