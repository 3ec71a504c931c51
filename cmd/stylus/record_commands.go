package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"stylus/internal/catalog"
	"stylus/internal/ipc"
)

func newShowCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "show <id>...",
		Short: "Display one or more records by id",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClient(func(client *ipc.Client) error {
				byID, err := client.GetByIDMap(args)
				if err != nil {
					return err
				}
				records := make([]*catalog.Record, 0, len(args))
				var missing []string
				for _, id := range args {
					if record, ok := byID[id]; ok {
						records = append(records, record)
					} else {
						missing = append(missing, id)
					}
				}
				if asJSON {
					return writeJSON(cmd.OutOrStdout(), records)
				}
				stdout := cmd.OutOrStdout()
				if len(records) > 0 {
					fmt.Fprintln(stdout, recordTable(records))
				}
				for _, id := range missing {
					fmt.Fprintf(stdout, "No record with id %s\n", id)
				}
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit records as JSON")
	return cmd
}

func newListCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List every record in the catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClient(func(client *ipc.Client) error {
				records, err := client.GetAll()
				if err != nil {
					return err
				}
				if asJSON {
					return writeJSON(cmd.OutOrStdout(), records)
				}
				stdout := cmd.OutOrStdout()
				if len(records) == 0 {
					fmt.Fprintln(stdout, "Catalog is empty")
					return nil
				}
				fmt.Fprintln(stdout, recordTable(records))
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit records as JSON")
	return cmd
}

func newSearchCommand(ctx *commandContext) *cobra.Command {
	var artist string
	var title string
	var titleFallback string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "search",
		Short: "Search records by artist, optionally classified against a title",
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(artist) == "" {
				return errors.New("--artist is required")
			}
			return ctx.withClient(func(client *ipc.Client) error {
				stdout := cmd.OutOrStdout()
				if strings.TrimSpace(title) == "" {
					records, err := client.GetByArtist(artist)
					if err != nil {
						return err
					}
					if asJSON {
						return writeJSON(cmd.OutOrStdout(), records)
					}
					if len(records) == 0 {
						fmt.Fprintln(stdout, "No matching records")
						return nil
					}
					fmt.Fprintln(stdout, recordTable(records))
					return nil
				}

				matches, err := client.GetByArtistAndTitle(artist, title, titleFallback)
				if err != nil {
					return err
				}
				if asJSON {
					return writeJSON(cmd.OutOrStdout(), matches)
				}
				if len(matches) == 0 {
					fmt.Fprintln(stdout, "No matching records")
					return nil
				}
				fmt.Fprintln(stdout, matchTable(matches))
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&artist, "artist", "", "Artist name to search for")
	cmd.Flags().StringVar(&title, "title", "", "Release title to classify matches against")
	cmd.Flags().StringVar(&titleFallback, "title-fallback", "", "Alternate title tried when the primary yields nothing")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit results as JSON")
	return cmd
}

func newAddCommand(ctx *commandContext) *cobra.Command {
	var record catalog.Record
	var ownership string
	var format string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a record to the catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			record.Ownership = catalog.OwnershipStatus(ownership)
			record.Format = catalog.Format(format)
			return ctx.withClient(func(client *ipc.Client) error {
				added, err := client.Add(&record)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Added %s (%s by %s)\n", added.ID, added.Title, added.ArtistName)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&record.ID, "id", "", "Record id (generated when omitted)")
	cmd.Flags().StringVar(&record.Title, "title", "", "Release title")
	cmd.Flags().StringVar(&record.ArtistName, "artist", "", "Artist name")
	cmd.Flags().StringVar(&record.ArtistNameLocalized, "artist-localized", "", "Localized artist name")
	cmd.Flags().IntVar(&record.Rating, "rating", 0, "Rating from 0 to 10")
	cmd.Flags().IntVar(&record.ReleaseYear, "year", 0, "Release year")
	cmd.Flags().StringVar(&ownership, "ownership", string(catalog.OwnershipInCollection), "Ownership status")
	cmd.Flags().StringVar(&format, "format", "", "Physical or digital format")
	_ = cmd.MarkFlagRequired("title")
	_ = cmd.MarkFlagRequired("artist")
	return cmd
}

func newRateCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "rate <id> <rating>",
		Short: "Set a record's rating",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			rating, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid rating %q", args[1])
			}
			return ctx.withClient(func(client *ipc.Client) error {
				if err := client.UpdateRating(args[0], rating); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Rated %s %d/%d\n", args[0], rating, catalog.RatingMax)
				return nil
			})
		},
	}
}

func newRemoveCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <id>...",
		Aliases: []string{"remove"},
		Short:   "Remove records from the catalog",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClient(func(client *ipc.Client) error {
				for _, id := range args {
					if err := client.Delete(id); err != nil {
						return fmt.Errorf("remove %s: %w", id, err)
					}
					fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", id)
				}
				return nil
			})
		},
	}
}

func newCountCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "count",
		Short: "Print the number of records in the catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClient(func(client *ipc.Client) error {
				count, err := client.Count()
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), count)
				return nil
			})
		},
	}
}
