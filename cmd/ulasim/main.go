package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/hako/durafmt"
	"github.com/joho/godotenv"
	"github.com/kktculasim/ulasim-backend/internal/models"
	"github.com/kktculasim/ulasim-backend/pkg/client"
)

const usage = `usage: ulasim [-server URL] <command> [flags]

commands:
  locations                         list every known place
  schedules -from X -to Y           direct departures
  search -from X -to Y [-at HH:MM]  direct departures and transfer itineraries
  nearest -lat N -lon N             closest stop
  issue-types                       report vocabulary
  report -schedule ID -type T [-description D]
`

func main() {
	_ = godotenv.Load()

	defaultServer := os.Getenv("ULASIM_SERVER")
	if defaultServer == "" {
		defaultServer = "http://localhost:8080"
	}

	server := flag.String("server", defaultServer, "server base URL")
	timeout := flag.Duration("timeout", 15*time.Second, "request timeout")
	flag.Usage = func() { fmt.Fprint(os.Stderr, usage) }
	flag.Parse()

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	c := client.New(*server, *timeout)
	ctx := context.Background()

	var err error
	switch cmd, args := flag.Arg(0), flag.Args()[1:]; cmd {
	case "locations":
		err = runLocations(ctx, c)
	case "schedules":
		err = runSchedules(ctx, c, args)
	case "search":
		err = runSearch(ctx, c, args)
	case "nearest":
		err = runNearest(ctx, c, args)
	case "issue-types":
		err = runIssueTypes(ctx, c)
	case "report":
		err = runReport(ctx, c, args)
	default:
		flag.Usage()
		os.Exit(2)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func runLocations(ctx context.Context, c *client.Client) error {
	result, err := c.Locations(ctx)
	if err != nil {
		return err
	}
	if result.Status == models.ResultFailed {
		return errors.New("location list unavailable")
	}
	for _, name := range result.Locations {
		fmt.Println(name)
	}
	return nil
}

func routeFlags(name string, args []string) (from, to, at string, err error) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.StringVar(&from, "from", "", "origin place")
	fs.StringVar(&to, "to", "", "destination place")
	fs.StringVar(&at, "at", "", "earliest departure HH:MM[:SS] (search only)")
	if err = fs.Parse(args); err != nil {
		return
	}
	if strings.TrimSpace(from) == "" || strings.TrimSpace(to) == "" {
		err = errors.New("-from and -to are required")
	}
	return
}

func runSchedules(ctx context.Context, c *client.Client, args []string) error {
	from, to, _, err := routeFlags("schedules", args)
	if err != nil {
		return err
	}
	result, err := c.Schedules(ctx, from, to)
	if err != nil {
		return err
	}
	printSchedules(result)
	return nil
}

func runSearch(ctx context.Context, c *client.Client, args []string) error {
	from, to, at, err := routeFlags("search", args)
	if err != nil {
		return err
	}
	outcome, err := client.NewSearchSession(c).Search(ctx, from, to, at)
	if err != nil {
		return err
	}
	printSchedules(outcome.Schedules)
	fmt.Println()
	printSmartRoutes(outcome.SmartRoutes)
	return nil
}

func printSchedules(result *models.ScheduleSearchResult) {
	if result.Status != models.ResultFound {
		fmt.Println(result.Message)
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "SAAT\tFİRMA\tFİYAT\tKALAN\tSEFER")
	for _, r := range result.Results {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			r.DepartureTime, r.CompanyName, formatPrice(r.Price), formatCountdown(r.Countdown), r.ScheduleID)
	}
	w.Flush()
}

func printSmartRoutes(result *models.SmartRouteSearchResult) {
	if result.Status != models.ResultFound {
		fmt.Println(result.Message)
		return
	}

	for i, route := range result.Routes {
		header := fmt.Sprintf("%d) %s, %.2f TL", i+1, route.RouteType, route.TotalPrice)
		if route.RouteType == models.SmartRouteTransfer && route.TransferPoint != nil {
			header += fmt.Sprintf(", aktarma %s (%d dk bekleme)", *route.TransferPoint, route.WaitTimeMinutes)
		}
		fmt.Println(header)
		for _, leg := range route.Legs {
			fmt.Printf("   %d. %s %s → %s (%s)\n", leg.LegNumber, leg.DepartureTime, leg.From, leg.To, leg.Company)
		}
	}
}

func formatPrice(price *float64) string {
	if price == nil {
		return "-"
	}
	return fmt.Sprintf("%.2f TL", *price)
}

func formatCountdown(cd *models.Countdown) string {
	if cd == nil {
		return "-"
	}
	if cd.State == models.CountdownMissed {
		return "kaçırıldı"
	}
	if cd.MinutesLeft == 0 {
		return "şimdi"
	}
	return durafmt.Parse(time.Duration(cd.MinutesLeft) * time.Minute).LimitFirstN(2).String()
}

func runNearest(ctx context.Context, c *client.Client, args []string) error {
	fs := flag.NewFlagSet("nearest", flag.ContinueOnError)
	lat := fs.Float64("lat", 0, "latitude")
	lon := fs.Float64("lon", 0, "longitude")
	if err := fs.Parse(args); err != nil {
		return err
	}

	nearest, err := c.NearestStop(ctx, *lat, *lon)
	if err != nil {
		return err
	}
	fmt.Printf("%s (%.2f km)\n", nearest.Stop.Name, nearest.DistanceKm)
	return nil
}

func runIssueTypes(ctx context.Context, c *client.Client) error {
	options, err := c.IssueTypes(ctx)
	if err != nil {
		return err
	}
	for _, o := range options {
		fmt.Printf("%-16s %s\n", o.Value, o.Label)
	}
	return nil
}

func runReport(ctx context.Context, c *client.Client, args []string) error {
	fs := flag.NewFlagSet("report", flag.ContinueOnError)
	var req models.SubmitReportRequest
	fs.StringVar(&req.ScheduleID, "schedule", "", "schedule id")
	fs.StringVar(&req.IssueType, "type", "", "issue type, see issue-types")
	fs.StringVar(&req.Description, "description", "", "free text")
	if err := fs.Parse(args); err != nil {
		return err
	}

	report, err := c.SubmitReport(ctx, req)
	if err != nil {
		return err
	}
	fmt.Printf("Bildirim alındı: %s\n", report.ID)
	return nil
}
