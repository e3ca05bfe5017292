package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/ringsim/internal/notation"
	"github.com/san-kum/ringsim/internal/ringing"
	"github.com/spf13/cobra"
)

func listMethods(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SLOT\tNAME\tBELLS\tLEAD\tNOTATION")
	for i, spec := range cfg.AllMethods() {
		m := notation.ParseWith(logger, spec.Notation, spec.Cover)
		stage := fmt.Sprintf("%d", m.Bells)
		if m.TenorAdded {
			stage += "+"
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%s\n", i+1, spec.Name, stage, m.LeadLength(), spec.Notation)
	}
	return w.Flush()
}

func showMethod(cmd *cobra.Command, args []string) error {
	spec, m, err := parseMethod(cmd, args)
	if err != nil {
		return err
	}

	fmt.Printf("Method:   %s\n", spec.Title)
	fmt.Printf("Notation: %s\n", orRounds(spec.Notation))
	fmt.Printf("Bells:    %d", m.Bells)
	if m.TenorAdded {
		fmt.Print(" (covering tenor added)")
	}
	fmt.Println()
	fmt.Printf("Lead:     %d changes\n", m.LeadLength())
	fmt.Printf("Places:   %s\n\n", m.String())

	for i, row := range m.Lead() {
		fmt.Printf("%4d: %s\n", i, row)
	}
	return nil
}

// defaultRows is two changes of rounds followed by one lead.
func defaultRows(m *notation.Method) int {
	if changes > 0 {
		return changes
	}
	return 2 + m.LeadLength()
}

func formatRow(row []int) string {
	var b strings.Builder
	for _, bell := range row {
		b.WriteByte(notation.SymbolOf(bell - 1))
	}
	return b.String()
}

func printRows(cmd *cobra.Command, args []string) error {
	_, m, err := parseMethod(cmd, args)
	if err != nil {
		return err
	}
	for i, row := range ringing.Generate(m, defaultRows(m)) {
		fmt.Printf("%4d  %s\n", i, formatRow(row))
	}
	return nil
}

func plotLine(cmd *cobra.Command, args []string) error {
	spec, m, err := parseMethod(cmd, args)
	if err != nil {
		return err
	}
	if lineBell < 1 || lineBell > m.Bells {
		return fmt.Errorf("bell %d is not rung in a %d bell method", lineBell, m.Bells)
	}
	rows := ringing.Generate(m, defaultRows(m))
	graph := asciigraph.Plot(ringing.PlaceOf(rows, lineBell),
		asciigraph.Height(m.Bells),
		asciigraph.LowerBound(1),
		asciigraph.UpperBound(float64(m.Bells)),
		asciigraph.Precision(0),
		asciigraph.SeriesColors(asciigraph.Blue),
		asciigraph.Caption(fmt.Sprintf("%s: place of %c over %d rows", spec.Title, notation.SymbolOf(lineBell-1), len(rows))),
	)
	fmt.Println(graph)
	return nil
}
