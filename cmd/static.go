package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/s0up4200/flightradar/flightradar"
)

var airportLight bool

var airlineCmd = &cobra.Command{
	Use:   "airline ICAO",
	Short: "Look up an airline by ICAO code",
	Args:  cobra.ExactArgs(1),
	RunE:  runAirline,
}

var airportCmd = &cobra.Command{
	Use:   "airport CODE...",
	Short: "Look up airports by IATA or ICAO code",
	Long: `Look up one or more airports by IATA or ICAO code. Lookups run
concurrently and results are printed in the order given.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAirport,
}

func init() {
	airportCmd.Flags().BoolVar(&airportLight, "light", false, "only fetch the basic airport record")

	rootCmd.AddCommand(airlineCmd)
	rootCmd.AddCommand(airportCmd)
}

func runAirline(cmd *cobra.Command, args []string) error {
	airline, err := client.GetAirlineLight(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("failed to get airline: %w", err)
	}

	return printer.print(airline,
		[]string{"ICAO", "IATA", "NAME"},
		[][]string{{airline.ICAO, str(airline.IATA), airline.Name}},
	)
}

func runAirport(cmd *cobra.Command, args []string) error {
	g, ctx := errgroup.WithContext(cmd.Context())
	g.SetLimit(4)

	if airportLight {
		airports := make([]*flightradar.AirportLight, len(args))
		for i, code := range args {
			g.Go(func() error {
				a, err := client.GetAirportLight(ctx, code)
				if err != nil {
					return fmt.Errorf("failed to get airport %s: %w", code, err)
				}
				airports[i] = a
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return err
		}

		rows := make([][]string, 0, len(airports))
		for _, a := range airports {
			rows = append(rows, []string{a.ICAO, str(a.IATA), str(a.Name)})
		}
		return printer.print(airports, []string{"ICAO", "IATA", "NAME"}, rows)
	}

	airports := make([]*flightradar.Airport, len(args))
	for i, code := range args {
		g.Go(func() error {
			a, err := client.GetAirport(ctx, code)
			if err != nil {
				return fmt.Errorf("failed to get airport %s: %w", code, err)
			}
			airports[i] = a
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	rows := make([][]string, 0, len(airports))
	for _, a := range airports {
		rows = append(rows, []string{
			a.ICAO,
			str(a.IATA),
			str(a.Name),
			a.City,
			a.Country.Code,
			coord(a.Lat),
			coord(a.Lon),
			strconv.Itoa(a.Elevation),
			a.Timezone.Name,
			strconv.Itoa(len(a.Runways)),
		})
	}
	return printer.print(airports,
		[]string{"ICAO", "IATA", "NAME", "CITY", "COUNTRY", "LAT", "LON", "ELEV", "TIMEZONE", "RUNWAYS"},
		rows,
	)
}
