package models

// PriceLineItem is one applied multiplier in a price breakdown. Callers show
// these to the customer, so each applied multiplier must appear individually.
type PriceLineItem struct {
	Name       string  `json:"name"`
	Multiplier float64 `json:"multiplier"`
}

// FeeLineItem is a flat fee added on top of the multiplied base price.
type FeeLineItem struct {
	Name   string  `json:"name"`
	Amount float64 `json:"amount,omitempty"`
	Note   string  `json:"note,omitempty"`
}

// PriceBreakdown itemizes how a quote was reached.
type PriceBreakdown struct {
	BasePrice      float64         `json:"basePrice"`
	Multipliers    []PriceLineItem `json:"multipliers"`
	AdditionalFees []FeeLineItem   `json:"additionalFees"`
	FinalPrice     float64         `json:"finalPrice"`
}
