package cmd

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/rustyeddy/fxcashflow/calendar"
	"github.com/rustyeddy/fxcashflow/curve"
	"github.com/rustyeddy/fxcashflow/feed"
	"github.com/rustyeddy/fxcashflow/market"
	"github.com/spf13/cobra"
)

var curveCmd = &cobra.Command{
	Use:   "curve",
	Short: "Inspect a forward points report",
	Long: `Load a forward points report and print its curves. With --pair the
pillars of that curve are listed and each --date is interpolated from the
anchor (the later of --as-of and --value-date).

Examples:
  fxcashflow curve --points points.csv
  fxcashflow curve --points points.csv --pair USD/CNY --as-of 2025-12-22 --date 2026-01-14`,
	Args: cobra.NoArgs,
	RunE: runCurve,
}

var curveFlags struct {
	points, pair, asOf, valueDate string
	dates                         []string
}

func init() {
	rootCmd.AddCommand(curveCmd)

	f := curveCmd.Flags()
	f.StringVarP(&curveFlags.points, "points", "p", "", "forward points report CSV")
	f.StringVar(&curveFlags.pair, "pair", "", "currency pair, e.g. USD/CNY")
	f.StringVar(&curveFlags.asOf, "as-of", "", "as-of date YYYY-MM-DD (default today)")
	f.StringVar(&curveFlags.valueDate, "value-date", "", "near value date YYYY-MM-DD")
	f.StringSliceVarP(&curveFlags.dates, "date", "d", nil, "target dates YYYY-MM-DD to interpolate")
}

func runCurve(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if flagChanged(cmd, "points") {
		cfg.Input.Points = curveFlags.points
	}
	if flagChanged(cmd, "as-of") {
		cfg.AsOf = curveFlags.asOf
	}
	if cfg.Input.Points == "" {
		return fmt.Errorf("a forward points report is required (--points)")
	}
	asOf, err := cfg.AsOfDate(time.Now())
	if err != nil {
		return err
	}
	log := newLogger(cmd, cfg)

	load, err := feed.ReadCurvesFile(cfg.Input.Points)
	if err != nil {
		return err
	}
	for _, re := range load.Rejected {
		log.Warn().Int("line", re.Line).Str("pair", re.Key).Err(re.Err).Msg("points row rejected")
	}

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	defer tw.Flush()

	if curveFlags.pair == "" {
		fmt.Fprintln(tw, "PAIR\tPILLARS\tSPOT")
		for _, p := range load.Curves.Pairs() {
			c, _ := load.Curves.Get(p)
			spot := "-"
			if rate, err := c.SpotRate(); err == nil {
				spot = rate.String()
			}
			fmt.Fprintf(tw, "%s\t%d\t%s\n", p, len(c.Quotes()), spot)
		}
		return nil
	}

	pair, err := market.ParseCompactPair(curveFlags.pair)
	if err != nil {
		return err
	}
	c, ok := load.Curves.Get(pair)
	if !ok {
		return fmt.Errorf("%s: %w", pair, curve.ErrNoCurve)
	}

	fmt.Fprintln(tw, "TENOR\tSETTLEMENT\tBID\tASK\tMID")
	for _, q := range c.Quotes() {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", q.Tenor, q.Settlement.Format("2006-01-02"),
			q.BidPoints, q.AskPoints, q.MidPoints())
	}
	if rate, err := c.SpotRate(); err == nil {
		fmt.Fprintf(tw, "SPOT\t\t\t\t%s\n", rate)
	}

	if len(curveFlags.dates) == 0 {
		return nil
	}
	valueDate, err := parseDay(curveFlags.valueDate)
	if err != nil {
		return fmt.Errorf("value date: %w", err)
	}
	anchor := curve.Anchor(asOf, valueDate)
	fmt.Fprintf(tw, "\nANCHOR %s\nDATE\tPOINTS\n", anchor.Format("2006-01-02"))
	for _, s := range curveFlags.dates {
		target, err := parseDay(s)
		if err != nil {
			return fmt.Errorf("date %q: %w", s, err)
		}
		pts, err := c.Interpolate(anchor, target)
		if err != nil {
			fmt.Fprintf(tw, "%s\t%v\n", s, err)
			continue
		}
		fmt.Fprintf(tw, "%s\t%s\n", s, pts.Round(6))
	}
	return nil
}

func parseDay(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, err
	}
	return calendar.Day(t), nil
}
