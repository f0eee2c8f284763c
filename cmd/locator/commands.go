package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/samirrijal/crestfield/internal/adapters/directory"
	"github.com/samirrijal/crestfield/internal/core/domain"
	"github.com/samirrijal/crestfield/internal/core/ports"
	"github.com/samirrijal/crestfield/internal/core/usecases"
)

type cli struct {
	file     string
	asJSON   bool
	stations *usecases.StationService
	links    *usecases.DirectionsService
	chat     *usecases.ChatService
}

func newRootCmd() *cobra.Command {
	c := &cli{}

	root := &cobra.Command{
		Use:           "locator",
		Short:         "Crestfield station directory CLI",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.init(cmd.Context())
		},
	}
	root.PersistentFlags().StringVar(&c.file, "file", "", "YAML station directory (defaults to the built-in directory)")
	root.PersistentFlags().BoolVar(&c.asJSON, "json", false, "print JSON instead of a table")

	root.AddCommand(
		c.listCmd(),
		c.searchCmd(),
		c.nearbyCmd(),
		c.directionsCmd(),
		c.chatCmd(),
		c.exportCmd(),
	)
	return root
}

func (c *cli) init(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	var src ports.DirectorySource = directory.Builtin{}
	if c.file != "" {
		src = directory.YAMLSource{Path: c.file}
	}
	repo, err := directory.Load(ctx, src)
	if err != nil {
		return err
	}
	c.stations = usecases.NewStationService(repo, nil)
	c.links = usecases.NewDirectionsService()
	c.chat = usecases.NewChatService(domain.DefaultPhone)
	return nil
}

func (c *cli) listCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List every station",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			stations, err := c.stations.List(cmd.Context())
			if err != nil {
				return err
			}
			return c.printStations(cmd.OutOrStdout(), stations)
		},
	}
}

func (c *cli) searchCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "search <query>",
		Short:   "Search stations by name, address or state",
		Example: "  locator search lagos",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			q := ""
			if len(args) == 1 {
				q = args[0]
			}
			stations, err := c.stations.Search(cmd.Context(), q)
			if err != nil {
				return err
			}
			return c.printStations(cmd.OutOrStdout(), stations)
		},
	}
}

func (c *cli) nearbyCmd() *cobra.Command {
	var (
		lat, lon, radius float64
		limit            int
	)
	cmd := &cobra.Command{
		Use:   "nearby",
		Short: "Stations nearest to a point",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			stations, err := c.stations.FindNearby(cmd.Context(), lat, lon, radius, limit)
			if err != nil {
				return err
			}
			return c.printStations(cmd.OutOrStdout(), stations)
		},
	}
	cmd.Flags().Float64Var(&lat, "lat", 0, "latitude")
	cmd.Flags().Float64Var(&lon, "lon", 0, "longitude")
	cmd.Flags().Float64Var(&radius, "radius", 50000, "radius in meters")
	cmd.Flags().IntVar(&limit, "limit", 10, "maximum stations")
	_ = cmd.MarkFlagRequired("lat")
	_ = cmd.MarkFlagRequired("lon")
	return cmd
}

func (c *cli) directionsCmd() *cobra.Command {
	var provider string
	cmd := &cobra.Command{
		Use:   "directions <station-id>",
		Short: "Print directions deep links for a station",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := c.station(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if provider != "" {
				link, err := c.links.Link(*st, provider)
				if err != nil {
					return err
				}
				return c.print(out, link, func(w io.Writer) { fmt.Fprintln(w, link.URL) })
			}
			links := c.links.Links(*st)
			return c.print(out, links, func(w io.Writer) {
				tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
				for _, l := range links {
					fmt.Fprintf(tw, "%s\t%s\n", l.Label, l.URL)
				}
				_ = tw.Flush()
			})
		},
	}
	cmd.Flags().StringVar(&provider, "provider", "", "google, apple or waze")
	return cmd
}

func (c *cli) chatCmd() *cobra.Command {
	var (
		message int
		text    string
		station string
	)
	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Print a chat deep link",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				link domain.ChatLink
				err  error
			)
			switch {
			case station != "":
				st, serr := c.station(cmd.Context(), station)
				if serr != nil {
					return serr
				}
				link, err = c.chat.StationLink(*st)
			case cmd.Flags().Changed("message"):
				link, err = c.chat.QuickLink(message)
			case text != "":
				link, err = c.chat.TextLink(text)
			default:
				link, err = c.chat.DefaultLink()
			}
			if err != nil {
				return err
			}
			return c.print(cmd.OutOrStdout(), link, func(w io.Writer) { fmt.Fprintln(w, link.URL) })
		},
	}
	cmd.Flags().IntVar(&message, "message", 0, "quick message index")
	cmd.Flags().StringVar(&text, "text", "", "free text message")
	cmd.Flags().StringVar(&station, "station", "", "station id")
	return cmd
}

func (c *cli) exportCmd() *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the directory as GeoJSON or YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			stations, err := c.stations.List(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			switch format {
			case "geojson":
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(domain.FeatureCollection(stations))
			case "yaml":
				data, err := directory.MarshalYAML(stations)
				if err != nil {
					return err
				}
				_, err = out.Write(data)
				return err
			default:
				return fmt.Errorf("unknown format %q (want geojson or yaml)", format)
			}
		},
	}
	cmd.Flags().StringVar(&format, "format", "geojson", "geojson or yaml")
	return cmd
}

func (c *cli) station(ctx context.Context, arg string) (*domain.Station, error) {
	id, err := strconv.Atoi(arg)
	if err != nil || id <= 0 {
		return nil, fmt.Errorf("invalid station id %q", arg)
	}
	return c.stations.GetByID(ctx, id)
}

func (c *cli) print(w io.Writer, v any, text func(io.Writer)) error {
	if c.asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
	text(w)
	return nil
}

func (c *cli) printStations(w io.Writer, stations []domain.Station) error {
	return c.print(w, stations, func(w io.Writer) {
		if len(stations) == 0 {
			fmt.Fprintln(w, "No stations found")
			return
		}
		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tNAME\tREGION\tHOURS\tADDRESS")
		for _, s := range stations {
			fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", s.ID, s.Name, s.Region, s.Hours, s.Address)
		}
		_ = tw.Flush()
	})
}
