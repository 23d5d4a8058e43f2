// README: Pure quote engine: segmentation, rule resolution, and billing math.
package tariff

import (
	"errors"
	"fmt"
	"math"
	"time"

	"parkd/internal/types"
)

var (
	ErrInvalidWindow = errors.New("entry must be before exit")
	ErrNoTariff      = errors.New("no tariff configured")
)

// RuleLookup resolves the single active rule for a classified segment.
// The snapshot behind it is read once by the caller; the engine itself
// never touches storage.
type RuleLookup func(vehicleType VehicleType, dayType DayType, period Period) (Rule, bool)

// HolidayLookup reports whether an ISO date (YYYY-MM-DD, lot-local) is
// a registered holiday.
type HolidayLookup func(dateISO string) bool

const (
	dayStartHour = 6
	dayEndHour   = 19

	// Each loop step crosses at least one midnight/06:00/19:00
	// boundary, so 2*(days spanned)+2 steps suffice; the cap only
	// guards against a broken clock or location.
	maxSegmentSteps = 4096
)

// CalculateQuote computes the charge for one parking window. It is a
// pure function: identical inputs, rule snapshot, config, and holiday
// set always produce identical output. Input instants must already be
// expressed in the lot's local location.
func CalculateQuote(in QuoteInput, resolve RuleLookup, cfg Config, isHoliday HolidayLookup) (*Quote, error) {
	if !in.EntryAt.Before(in.ExitAt) {
		return nil, ErrInvalidWindow
	}

	totalMinutes := int64(in.ExitAt.Sub(in.EntryAt) / time.Minute)

	graceMinutes := int64(0)
	if in.Options.ApplyGrace {
		graceMinutes = int64(cfg.GraceMinutes)
	}

	q := &Quote{
		Currency: cfg.Currency,
		Breakdown: Breakdown{
			TotalMinutes: totalMinutes,
			Segments:     []Segment{},
			RuleIDsUsed:  []types.ID{},
		},
	}

	// Fully grace-absorbed windows never reach segmentation, so a
	// short stay in an unconfigured bucket is still free of charge.
	if totalMinutes <= graceMinutes {
		q.Breakdown.GraceAppliedMinutes = totalMinutes
		return q, nil
	}
	q.Breakdown.GraceAppliedMinutes = graceMinutes
	// BillableMinutes is a reporting figure: billing still covers the
	// full [entryAt, exitAt) window. See TestGraceDoesNotShrinkWindow.
	q.Breakdown.BillableMinutes = totalMinutes - graceMinutes

	classifyDay := func(t time.Time) DayType {
		if in.Options.OverrideDayType != nil {
			return *in.Options.OverrideDayType
		}
		return classifyDayType(t, isHoliday)
	}

	var sum int64
	seen := map[string]bool{}
	for _, w := range splitWindow(in.EntryAt, in.ExitAt) {
		dayType := classifyDay(w.from)
		period := classifyPeriod(w.from)

		rule, ok := resolve(in.VehicleType, dayType, period)
		if !ok {
			q.Breakdown.PartiallyBilled = true
			q.Warnings = append(q.Warnings, fmt.Sprintf(
				"no active tariff for %s %s/%s; interval [%s, %s) not billed",
				in.VehicleType, dayType, period,
				w.from.Format(time.RFC3339), w.to.Format(time.RFC3339)))
			continue
		}

		seg := billSegment(w, dayType, period, rule)
		sum += seg.Subtotal
		q.Breakdown.Segments = append(q.Breakdown.Segments, seg)
		if !seen[string(rule.ID)] {
			seen[string(rule.ID)] = true
			q.Breakdown.RuleIDsUsed = append(q.Breakdown.RuleIDsUsed, rule.ID)
		}
	}

	if len(q.Breakdown.Segments) == 0 {
		return nil, fmt.Errorf("%w for vehicle type %s", ErrNoTariff, in.VehicleType)
	}
	if in.Options.ApplyDailyMax && cfg.DailyMax != nil && sum > *cfg.DailyMax {
		capped := *cfg.DailyMax
		sum = capped
		q.Breakdown.DailyMaxApplied = true
		q.Breakdown.DailyMaxAmount = &capped
	}

	if in.Options.LostTicket {
		if cfg.LostTicketFee != nil {
			fee := *cfg.LostTicketFee
			sum += fee
			q.Breakdown.LostTicketFeeApplied = true
			q.Breakdown.LostTicketFeeAmount = &fee
		} else {
			q.Warnings = append(q.Warnings, "lost ticket reported but no lost-ticket fee configured; no fee applied")
		}
	}

	q.Total = sum
	return q, nil
}

type window struct {
	from, to time.Time
}

// splitWindow partitions [entry, exit) into maximal runs of constant
// (day type, period). Each step advances to the nearest of: the next
// midnight, the next 06:00, the next 19:00, or exit.
func splitWindow(entry, exit time.Time) []window {
	var out []window
	current := entry
	for steps := 0; current.Before(exit); steps++ {
		next := exit
		if steps < maxSegmentSteps-1 {
			for _, b := range boundariesAfter(current) {
				if b.Before(next) {
					next = b
				}
			}
		}
		out = append(out, window{from: current, to: next})
		current = next
	}
	return out
}

// boundariesAfter returns the next midnight, 06:00, and 19:00 strictly
// after t, in t's location.
func boundariesAfter(t time.Time) [3]time.Time {
	y, m, d := t.Date()
	loc := t.Location()

	midnight := time.Date(y, m, d+1, 0, 0, 0, 0, loc)
	six := time.Date(y, m, d, dayStartHour, 0, 0, 0, loc)
	if !six.After(t) {
		six = time.Date(y, m, d+1, dayStartHour, 0, 0, 0, loc)
	}
	nineteen := time.Date(y, m, d, dayEndHour, 0, 0, 0, loc)
	if !nineteen.After(t) {
		nineteen = time.Date(y, m, d+1, dayEndHour, 0, 0, 0, loc)
	}
	return [3]time.Time{midnight, six, nineteen}
}

// classifyDayType classifies an instant as holiday, weekend, or
// weekday. The holiday check wins over the weekend check.
func classifyDayType(t time.Time, isHoliday HolidayLookup) DayType {
	if isHoliday != nil && isHoliday(t.Format("2006-01-02")) {
		return DayHoliday
	}
	switch t.Weekday() {
	case time.Saturday, time.Sunday:
		return DayWeekend
	}
	return DayWeekday
}

// classifyPeriod maps an instant to DAY for local hours [06,19) and
// NIGHT otherwise. Rule StartTime/EndTime are not consulted.
func classifyPeriod(t time.Time) Period {
	h := t.Hour()
	if h >= dayStartHour && h < dayEndHour {
		return PeriodDay
	}
	return PeriodNight
}

func billSegment(w window, dayType DayType, period Period, rule Rule) Segment {
	minutes := w.to.Sub(w.from).Minutes()
	units := roundUnits(minutes/float64(unitMinutes(rule.Unit)), rule.Rounding)

	subtotal := units * rule.UnitPrice
	if rule.MinimumCharge != nil && subtotal < *rule.MinimumCharge {
		subtotal = *rule.MinimumCharge
	}

	return Segment{
		From:        w.from,
		To:          w.to,
		DayType:     dayType,
		Period:      period,
		Unit:        rule.Unit,
		UnitsBilled: units,
		UnitPrice:   rule.UnitPrice,
		Subtotal:    subtotal,
		RuleID:      rule.ID,
	}
}

func unitMinutes(u BillingUnit) int64 {
	switch u {
	case UnitMinute:
		return 1
	case UnitBlock15:
		return 15
	case UnitBlock30:
		return 30
	case UnitHour:
		return 60
	case UnitDay:
		return 1440
	}
	return 1
}

// roundUnits converts a raw unit count to a billed integer count.
// NEAREST rounds half away from zero.
func roundUnits(raw float64, mode Rounding) int64 {
	switch mode {
	case RoundFloor:
		return int64(math.Floor(raw))
	case RoundNearest:
		return int64(math.Floor(raw + 0.5))
	default: // CEIL
		return int64(math.Ceil(raw))
	}
}
