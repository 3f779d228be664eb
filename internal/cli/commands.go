// Taxiboard - NYC Yellow Taxi Warehouse Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/taxiboard

package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tomtom215/taxiboard/internal/textui"
)

func addFormatFlag(cmd *cobra.Command, format *string) {
	cmd.Flags().StringVarP(format, "format", "f", textui.FormatTable,
		"output format ("+strings.Join(textui.Formats, "|")+")")
	_ = cmd.RegisterFlagCompletionFunc("format", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return textui.Formats, cobra.ShellCompDirectiveNoFileComp
	})
}

func newRenderCommand(env Env) *cobra.Command {
	var (
		panelID string
		format  string
	)

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Run the dashboard queries and print every panel",
		Example: `  # Whole dashboard as tables
  taxiboard render

  # One panel as Markdown
  taxiboard render --panel pickup-hour --format markdown

  # Against a local DuckDB copy
  taxiboard render --driver duckdb --duckdb-path taxi.duckdb`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := newStack(cmd, env, format)
			if err != nil {
				return err
			}
			defer s.close()

			if panelID != "" {
				if _, err := lookupPanel(env, panelID); err != nil {
					return err
				}
				view, err := s.renderer.RenderPanel(cmd.Context(), panelID)
				if err != nil {
					return err
				}
				if err := s.printer.Panel(view); err != nil {
					return err
				}
				if view.Error != nil {
					return fmt.Errorf("panel %s failed", panelID)
				}
				return nil
			}

			page, err := s.renderer.Render(cmd.Context())
			if err != nil {
				return err
			}
			if err := s.printer.Page(page); err != nil {
				return err
			}
			if failed := page.Failed(); len(failed) > 0 {
				return fmt.Errorf("%d panel(s) failed: %s", len(failed), strings.Join(failed, ", "))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&panelID, "panel", "p", "", "render only this panel")
	addFormatFlag(cmd, &format)
	return cmd
}

func newPanelsCommand(env Env) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "panels",
		Short: "List the dashboard panels",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			printer, err := textui.NewPrinter(cmd.OutOrStdout(), nil, format)
			if err != nil {
				return err
			}
			return printer.Catalog(env.Catalog.Panels())
		},
	}

	addFormatFlag(cmd, &format)
	return cmd
}

func newSQLCommand(env Env) *cobra.Command {
	var panelID string

	cmd := &cobra.Command{
		Use:     "sql",
		Short:   "Print the SQL a panel runs",
		Example: `  taxiboard sql --panel kpis`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := lookupPanel(env, panelID)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), strings.TrimSpace(p.SQL))
			return err
		},
	}

	cmd.Flags().StringVarP(&panelID, "panel", "p", "", "panel id")
	_ = cmd.MarkFlagRequired("panel")
	return cmd
}
