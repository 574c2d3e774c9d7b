package scheduling

import (
	"fmt"
	"math"

	"fieldline/models"
)

// priceMultiplier composes the slot's multiplier. Composition is
// multiplicative and order-independent: weekend, peak and urgency factors
// each multiply the running total, rounded to two decimal places.
func priceMultiplier(cfg Config, isPeak, isWeekend bool, urgency models.UrgencyLevel) float64 {
	multiplier := 1.0
	if isWeekend {
		multiplier *= cfg.WeekendMultiplier
	}
	if isPeak {
		multiplier *= cfg.PeakMultiplier
	}
	switch urgency {
	case models.UrgencyEmergency:
		multiplier *= cfg.EmergencyMultiplier
	case models.UrgencySameDay:
		multiplier *= cfg.SameDayMultiplier
	}
	return round2(multiplier)
}

// PriceMultiplier returns the multiplier a slot would carry for the given
// business and urgency.
func (e *Engine) PriceMultiplier(business models.Business, slot models.TimeSlot, urgency models.UrgencyLevel) float64 {
	cfg := e.cfg.forBusiness(business)
	return priceMultiplier(cfg, slot.IsPeak, isWeekend(slot.Start), urgency)
}

// PriceBreakdown itemizes the final job price for customer-facing display.
// Every applied multiplier appears as its own line item, followed by the flat
// extra-technician fee and the per-day billing note for multi-day jobs.
func (e *Engine) PriceBreakdown(business models.Business, basePrice float64, slot models.TimeSlot, job models.JobRequirements) models.PriceBreakdown {
	cfg := e.cfg.forBusiness(business)
	job = job.Normalized()

	breakdown := models.PriceBreakdown{
		BasePrice:      basePrice,
		Multipliers:    []models.PriceLineItem{},
		AdditionalFees: []models.FeeLineItem{},
	}

	finalPrice := basePrice

	if isWeekend(slot.Start) {
		finalPrice *= cfg.WeekendMultiplier
		breakdown.Multipliers = append(breakdown.Multipliers, models.PriceLineItem{
			Name:       "Weekend Service",
			Multiplier: cfg.WeekendMultiplier,
		})
	}
	if slot.IsPeak {
		finalPrice *= cfg.PeakMultiplier
		breakdown.Multipliers = append(breakdown.Multipliers, models.PriceLineItem{
			Name:       "Peak Hours",
			Multiplier: cfg.PeakMultiplier,
		})
	}
	switch job.Urgency {
	case models.UrgencyEmergency:
		finalPrice *= cfg.EmergencyMultiplier
		breakdown.Multipliers = append(breakdown.Multipliers, models.PriceLineItem{
			Name:       "Emergency Service",
			Multiplier: cfg.EmergencyMultiplier,
		})
	case models.UrgencySameDay:
		finalPrice *= cfg.SameDayMultiplier
		breakdown.Multipliers = append(breakdown.Multipliers, models.PriceLineItem{
			Name:       "Same-Day Service",
			Multiplier: cfg.SameDayMultiplier,
		})
	}

	if job.RequiredTechs > 1 {
		extra := job.RequiredTechs - 1
		fee := basePrice * cfg.ExtraTechFeeRate * float64(extra)
		finalPrice += fee
		breakdown.AdditionalFees = append(breakdown.AdditionalFees, models.FeeLineItem{
			Name:   fmt.Sprintf("Additional Technician(s) (%d)", extra),
			Amount: round2(fee),
		})
	}

	if job.DaysNeeded > 1 {
		breakdown.AdditionalFees = append(breakdown.AdditionalFees, models.FeeLineItem{
			Name: fmt.Sprintf("Multi-Day Job (%d days)", job.DaysNeeded),
			Note: "Price applies per day",
		})
		finalPrice *= float64(job.DaysNeeded)
	}

	breakdown.FinalPrice = round2(finalPrice)
	return breakdown
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
