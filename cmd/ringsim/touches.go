package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/san-kum/ringsim/internal/config"
	"github.com/san-kum/ringsim/internal/ringing"
	"github.com/san-kum/ringsim/internal/storage"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func recordTouch(cmd *cobra.Command, args []string) error {
	spec, m, err := parseMethod(cmd, args)
	if err != nil {
		return err
	}

	store := storage.New(cfg.DataDir)
	if err := store.Init(); err != nil {
		return fmt.Errorf("failed to init storage: %w", err)
	}

	rows := ringing.Generate(m, defaultRows(m))
	id, err := store.Save(storage.Touch{
		TouchMetadata: storage.TouchMetadata{
			Method:     spec.Name,
			Notation:   spec.Notation,
			Cover:      spec.Cover,
			Bells:      m.Bells,
			TenorAdded: m.TenorAdded,
			LeadLength: m.LeadLength(),
		},
		Rows: rows,
	})
	if err != nil {
		return fmt.Errorf("failed to save touch: %w", err)
	}

	logger.Info("touch recorded", "id", id, "rows", len(rows))
	fmt.Printf("Recorded %d rows of %s\n", len(rows), spec.Title)
	fmt.Printf("Touch ID: %s\n", id)
	return nil
}

func listTouches(cmd *cobra.Command, args []string) error {
	touches, err := storage.New(cfg.DataDir).List()
	if err != nil {
		return err
	}
	if len(touches) == 0 {
		fmt.Println("No recorded touches")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tMETHOD\tBELLS\tCHANGES\tRECORDED")
	for _, t := range touches {
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%s\n", t.ID, t.Method, t.Bells, t.Changes, t.Timestamp.Format("2006-01-02 15:04:05"))
	}
	return w.Flush()
}

func exportCSV(cmd *cobra.Command, args []string) error {
	store := storage.New(cfg.DataDir)
	meta, err := store.Load(args[0])
	if err != nil {
		return err
	}
	rows, err := store.LoadRows(args[0])
	if err != nil {
		return err
	}

	w := csv.NewWriter(os.Stdout)
	header := []string{"change"}
	for i := 1; i <= meta.Bells; i++ {
		header = append(header, fmt.Sprintf("p%d", i))
	}
	w.Write(header)
	for i, row := range rows {
		rec := []string{strconv.Itoa(i)}
		for _, b := range row {
			rec = append(rec, strconv.Itoa(b))
		}
		w.Write(rec)
	}
	w.Flush()
	return w.Error()
}

func initConfig(cmd *cobra.Command, args []string) error {
	if _, err := os.Stat(args[0]); err == nil {
		return fmt.Errorf("%s already exists", args[0])
	}
	def := config.DefaultConfig()
	def.Methods = []config.MethodSpec{
		{Name: "my-method", Title: "My Method", Notation: "x16x16x16-12"},
	}
	if err := config.Save(args[0], def); err != nil {
		return err
	}
	fmt.Printf("Wrote %s\n", args[0])
	return nil
}

func showConfig(cmd *cobra.Command, args []string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	_, err = os.Stdout.Write(data)
	return err
}
