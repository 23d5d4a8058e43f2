// README: Tariff rule definitions, pricing config, and quote value types.
package tariff

import (
	"time"

	"parkd/internal/types"
)

type VehicleType string

const (
	VehicleBicycle    VehicleType = "BICYCLE"
	VehicleMotorcycle VehicleType = "MOTORCYCLE"
	VehicleCar        VehicleType = "CAR"
	VehicleTruckBus   VehicleType = "TRUCK_BUS"
)

func (v VehicleType) Valid() bool {
	switch v {
	case VehicleBicycle, VehicleMotorcycle, VehicleCar, VehicleTruckBus:
		return true
	}
	return false
}

type DayType string

const (
	DayWeekday DayType = "WEEKDAY"
	DayWeekend DayType = "WEEKEND"
	DayHoliday DayType = "HOLIDAY"
)

func (d DayType) Valid() bool {
	switch d {
	case DayWeekday, DayWeekend, DayHoliday:
		return true
	}
	return false
}

type Period string

const (
	PeriodDay   Period = "DAY"
	PeriodNight Period = "NIGHT"
)

type BillingUnit string

const (
	UnitMinute  BillingUnit = "MINUTE"
	UnitBlock15 BillingUnit = "BLOCK_15"
	UnitBlock30 BillingUnit = "BLOCK_30"
	UnitHour    BillingUnit = "HOUR"
	UnitDay     BillingUnit = "DAY"
)

type Rounding string

const (
	RoundCeil    Rounding = "CEIL"
	RoundFloor   Rounding = "FLOOR"
	RoundNearest Rounding = "NEAREST"
)

// Rule is one tariff row. At most one active rule exists per
// (lot, vehicle type, day type, period); the admin side enforces that,
// the engine only assumes it.
type Rule struct {
	ID          types.ID
	LotID       types.ID
	CompanyID   types.ID
	VehicleType VehicleType
	DayType     DayType
	Period      Period
	// StartTime/EndTime are display metadata only; period math is
	// derived purely from the clock hour.
	StartTime     string
	EndTime       string
	Unit          BillingUnit
	UnitPrice     int64
	MinimumCharge *int64
	Rounding      Rounding
	IsActive      bool
}

// Config holds per-lot pricing knobs. The zero value means
// no grace, no daily cap, no lost-ticket fee.
type Config struct {
	GraceMinutes  int
	DailyMax      *int64
	LostTicketFee *int64
	Currency      string
}

type Options struct {
	LostTicket      bool
	OverrideDayType *DayType
	ApplyGrace      bool
	ApplyDailyMax   bool
}

// DefaultOptions returns the options a plain quote uses: grace and
// daily max on, no lost ticket, no day-type override.
func DefaultOptions() Options {
	return Options{ApplyGrace: true, ApplyDailyMax: true}
}

type QuoteInput struct {
	LotID       types.ID
	CompanyID   types.ID
	VehicleType VehicleType
	EntryAt     time.Time
	ExitAt      time.Time
	Options     Options
}

// Segment is a maximal sub-interval of the billed window with constant
// day-type and period classification. Segments are derived per quote
// and never persisted.
type Segment struct {
	From        time.Time   `json:"from"`
	To          time.Time   `json:"to"`
	DayType     DayType     `json:"day_type"`
	Period      Period      `json:"period"`
	Unit        BillingUnit `json:"unit"`
	UnitsBilled int64       `json:"units_billed"`
	UnitPrice   int64       `json:"unit_price"`
	Subtotal    int64       `json:"subtotal"`
	RuleID      types.ID    `json:"rule_id"`
}

type Breakdown struct {
	TotalMinutes         int64      `json:"total_minutes"`
	BillableMinutes      int64      `json:"billable_minutes"`
	GraceAppliedMinutes  int64      `json:"grace_applied_minutes"`
	Segments             []Segment  `json:"segments"`
	DailyMaxApplied      bool       `json:"daily_max_applied"`
	DailyMaxAmount       *int64     `json:"daily_max_amount,omitempty"`
	LostTicketFeeApplied bool       `json:"lost_ticket_fee_applied"`
	LostTicketFeeAmount  *int64     `json:"lost_ticket_fee_amount,omitempty"`
	RuleIDsUsed          []types.ID `json:"rule_ids_used"`
	PartiallyBilled      bool       `json:"partially_billed"`
}

type Quote struct {
	Total     int64     `json:"total"`
	Currency  string    `json:"currency"`
	Breakdown Breakdown `json:"breakdown"`
	Warnings  []string  `json:"warnings,omitempty"`
}
