// README: Offline tariff simulator; runs the quote engine against an in-memory rule table.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"parkd/internal/modules/tariff"
	"parkd/internal/types"
)

func main() {
	var (
		vehicle     = flag.String("vehicle", "CAR", "vehicle type: BICYCLE|MOTORCYCLE|CAR|TRUCK_BUS")
		entryArg    = flag.String("entry", "", "entry instant, RFC3339 (required)")
		exitArg     = flag.String("exit", "", "exit instant, RFC3339 (required)")
		unit        = flag.String("unit", "HOUR", "billing unit: MINUTE|BLOCK_15|BLOCK_30|HOUR|DAY")
		rounding    = flag.String("rounding", "CEIL", "rounding: CEIL|FLOOR|NEAREST")
		dayPrice    = flag.Int64("day-price", 3000, "unit price for DAY periods (minor units)")
		nightPrice  = flag.Int64("night-price", 2000, "unit price for NIGHT periods (minor units)")
		minCharge   = flag.Int64("min-charge", 0, "minimum charge per segment (0 = none)")
		grace       = flag.Int("grace", 0, "grace minutes")
		dailyMax    = flag.Int64("daily-max", 0, "daily maximum (0 = none)")
		lostTicket  = flag.Bool("lost-ticket", false, "apply lost-ticket surcharge")
		lostFee     = flag.Int64("lost-fee", 0, "lost-ticket fee (0 = none)")
		currency    = flag.String("currency", "COP", "currency code")
		holidayArgs = flag.String("holidays", "", "comma-separated holiday dates (YYYY-MM-DD)")
	)
	flag.Parse()

	entry, err := time.Parse(time.RFC3339, *entryArg)
	if err != nil {
		fail("invalid -entry: %v", err)
	}
	exit, err := time.Parse(time.RFC3339, *exitArg)
	if err != nil {
		fail("invalid -exit: %v", err)
	}

	vt := tariff.VehicleType(*vehicle)
	if !vt.Valid() {
		fail("invalid -vehicle %q", *vehicle)
	}

	rules := buildRuleTable(vt, tariff.BillingUnit(*unit), tariff.Rounding(*rounding),
		*dayPrice, *nightPrice, *minCharge)

	cfg := tariff.Config{GraceMinutes: *grace, Currency: *currency}
	if *dailyMax > 0 {
		cfg.DailyMax = dailyMax
	}
	if *lostFee > 0 {
		cfg.LostTicketFee = lostFee
	}

	holidaySet := map[string]bool{}
	if *holidayArgs != "" {
		for _, d := range strings.Split(*holidayArgs, ",") {
			holidaySet[strings.TrimSpace(d)] = true
		}
	}

	opts := tariff.DefaultOptions()
	opts.LostTicket = *lostTicket

	quote, err := tariff.CalculateQuote(
		tariff.QuoteInput{
			LotID:       "sim",
			VehicleType: vt,
			EntryAt:     entry,
			ExitAt:      exit,
			Options:     opts,
		},
		rules.lookup,
		cfg,
		func(date string) bool { return holidaySet[date] },
	)
	if err != nil {
		fail("quote failed: %v", err)
	}

	printQuote(quote)
}

type ruleTable struct {
	rules map[[2]string]tariff.Rule
}

func buildRuleTable(vt tariff.VehicleType, unit tariff.BillingUnit, rounding tariff.Rounding, dayPrice, nightPrice, minCharge int64) *ruleTable {
	t := &ruleTable{rules: map[[2]string]tariff.Rule{}}
	id := 0
	for _, d := range []tariff.DayType{tariff.DayWeekday, tariff.DayWeekend, tariff.DayHoliday} {
		for _, p := range []tariff.Period{tariff.PeriodDay, tariff.PeriodNight} {
			id++
			price := dayPrice
			if p == tariff.PeriodNight {
				price = nightPrice
			}
			r := tariff.Rule{
				ID:          types.ID(fmt.Sprintf("sim-%d", id)),
				VehicleType: vt,
				DayType:     d,
				Period:      p,
				Unit:        unit,
				UnitPrice:   price,
				Rounding:    rounding,
				IsActive:    true,
			}
			if minCharge > 0 {
				mc := minCharge
				r.MinimumCharge = &mc
			}
			t.rules[[2]string{string(d), string(p)}] = r
		}
	}
	return t
}

func (t *ruleTable) lookup(_ tariff.VehicleType, d tariff.DayType, p tariff.Period) (tariff.Rule, bool) {
	r, ok := t.rules[[2]string{string(d), string(p)}]
	return r, ok
}

func printQuote(q *tariff.Quote) {
	b := q.Breakdown
	fmt.Printf("total: %d %s\n", q.Total, q.Currency)
	fmt.Printf("minutes: total=%d billable=%d grace=%d\n",
		b.TotalMinutes, b.BillableMinutes, b.GraceAppliedMinutes)
	for _, s := range b.Segments {
		fmt.Printf("  [%s, %s) %s/%s %d x %d = %d\n",
			s.From.Format("2006-01-02 15:04"), s.To.Format("2006-01-02 15:04"),
			s.DayType, s.Period, s.UnitsBilled, s.UnitPrice, s.Subtotal)
	}
	if b.DailyMaxApplied {
		fmt.Printf("daily max applied: %d\n", *b.DailyMaxAmount)
	}
	if b.LostTicketFeeApplied {
		fmt.Printf("lost ticket fee: %d\n", *b.LostTicketFeeAmount)
	}
	for _, w := range q.Warnings {
		fmt.Printf("warning: %s\n", w)
	}
}

func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
