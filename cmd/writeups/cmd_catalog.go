package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/MKhiriev/go-writeups/internal/app"
	"github.com/MKhiriev/go-writeups/internal/catalog"
	"github.com/MKhiriev/go-writeups/models"
)

var (
	errUnknownFacet    = errors.New("unknown facet value")
	errWriteupNotFound = errors.New(strings.ToLower(app.MsgWriteupNotFound))
)

func newListCmd(deps *commandDeps) *cobra.Command {
	sel := models.NewFilterSelection()

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List writeups, optionally filtered",
		Example: `  writeups list --platform HTB --difficulty easy
  writeups list --search pwn`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := validateSelection(sel); err != nil {
				return err
			}

			return deps.runApp(cmd, func(ctx context.Context, a appHandle) error {
				all, err := a.Catalog().Load(ctx)
				if err != nil {
					fmt.Fprintln(cmd.ErrOrStderr(), "error:", fetchErrorLine(err))
					return err
				}
				writeWriteupTable(cmd.OutOrStdout(), all, a.Catalog().Filter(all, sel))
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&sel.Platform, "platform", models.FilterAll, "platform facet: "+strings.Join(catalog.PlatformChoices, ", "))
	cmd.Flags().StringVar(&sel.Difficulty, "difficulty", models.FilterAll, "difficulty facet: "+strings.Join(catalog.DifficultyChoices, ", "))
	cmd.Flags().StringVar(&sel.Search, "search", "", "case-insensitive text matched against titles and tags")

	return cmd
}

func newShowCmd(deps *commandDeps) *cobra.Command {
	var raw bool

	cmd := &cobra.Command{
		Use:   "show <slug>",
		Short: "Show one writeup",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			slug := strings.TrimSpace(args[0])

			return deps.runApp(cmd, func(ctx context.Context, a appHandle) error {
				w, err := a.Catalog().Get(ctx, slug)
				if err != nil {
					fmt.Fprintln(cmd.ErrOrStderr(), "error:", fetchErrorLine(err))
					return err
				}
				if w == nil {
					fmt.Fprintln(cmd.ErrOrStderr(), app.MsgWriteupNotFound+":", slug)
					return errWriteupNotFound
				}
				return writeWriteup(cmd.OutOrStdout(), *w, raw)
			})
		},
	}

	cmd.Flags().BoolVar(&raw, "raw", false, "print the markdown body without rendering")

	return cmd
}

func validateSelection(sel models.FilterSelection) error {
	if !catalog.ValidChoice(catalog.PlatformChoices, sel.Platform) {
		return fmt.Errorf("%w: platform %q (choose from %s)", errUnknownFacet, sel.Platform, strings.Join(catalog.PlatformChoices, ", "))
	}
	if !catalog.ValidChoice(catalog.DifficultyChoices, sel.Difficulty) {
		return fmt.Errorf("%w: difficulty %q (choose from %s)", errUnknownFacet, sel.Difficulty, strings.Join(catalog.DifficultyChoices, ", "))
	}
	return nil
}

func writeWriteupTable(w io.Writer, all, filtered []models.Writeup) {
	if len(filtered) == 0 {
		fmt.Fprintln(w, "No writeups found.", catalog.EmptyStateMessage(len(all)))
	} else {
		t := table.New().
			Border(lipgloss.NormalBorder()).
			Headers("TITLE", "SLUG", "PLATFORM", "DIFFICULTY", "STATUS", "TAGS")
		for _, wu := range filtered {
			t.Row(wu.Title, wu.Slug, string(wu.Platform), string(wu.Difficulty), string(wu.Status), strings.Join(wu.Tags, ", "))
		}
		fmt.Fprintln(w, t.String())
	}

	stats := catalog.Summarize(all)
	fmt.Fprintf(w, "Total: %d | Completed: %d | In progress: %d | Shown: %d\n",
		stats.Total, stats.Completed, stats.InProgress, len(filtered))
}

func writeWriteup(w io.Writer, wu models.Writeup, raw bool) error {
	fmt.Fprintf(w, "%s [%s · %s · %s]\n", wu.Title, wu.Platform, wu.Difficulty, wu.Status)
	if len(wu.Tags) > 0 {
		fmt.Fprintf(w, "Tags: %s\n", strings.Join(wu.Tags, ", "))
	}
	if wu.Points != nil {
		fmt.Fprintf(w, "Points: %d\n", *wu.Points)
	}
	fmt.Fprintf(w, "Published: %s\n\n", wu.CreatedAt.Format(time.DateOnly))

	var md strings.Builder
	if wu.Description != nil && *wu.Description != "" {
		md.WriteString("> " + *wu.Description + "\n\n")
	}
	if wu.Content != nil {
		md.WriteString(*wu.Content)
	}

	if raw {
		_, err := fmt.Fprintln(w, md.String())
		return err
	}

	out, err := glamour.Render(md.String(), "auto")
	if err != nil {
		return fmt.Errorf("render markdown: %w", err)
	}
	_, err = fmt.Fprint(w, out)
	return err
}
