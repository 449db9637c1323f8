package calc

import (
	"github.com/shopspring/decimal"

	"github.com/homebond/bond-engine/internal/domain"
	customError "github.com/homebond/bond-engine/pkg/errors"
)

// TransferDutyEffectiveDate identifies the duty and fee schedule version in
// force below. Results are only reproducible against the same table, so the
// date travels with every result.
const TransferDutyEffectiveDate = "2025-04-01"

// dutyBracket is one row of the SARS transfer duty table: amounts above
// lowerBound are taxed at ratePercent, on top of the base duty accumulated
// by the lower brackets.
type dutyBracket struct {
	lowerBound  decimal.Decimal
	base        decimal.Decimal
	ratePercent decimal.Decimal
}

// SARS transfer duty table, 1 April 2025.
var dutyBrackets = []dutyBracket{
	{lowerBound: decimal.NewFromInt(13_310_000), base: decimal.NewFromInt(1_241_456), ratePercent: decimal.NewFromInt(13)},
	{lowerBound: decimal.NewFromInt(2_994_800), base: decimal.NewFromInt(106_784), ratePercent: decimal.NewFromInt(11)},
	{lowerBound: decimal.NewFromInt(2_329_300), base: decimal.NewFromInt(53_544), ratePercent: decimal.NewFromInt(8)},
	{lowerBound: decimal.NewFromInt(1_663_800), base: decimal.NewFromInt(13_614), ratePercent: decimal.NewFromInt(6)},
	{lowerBound: decimal.NewFromInt(1_210_000), base: decimal.Zero, ratePercent: decimal.NewFromInt(3)},
}

// feeBand is one row of a conveyancing fee schedule: a flat fee for amounts
// up to the band ceiling, plus a percentage of the amount above it for the
// open-ended top band. Fee values are VAT inclusive.
type feeBand struct {
	upTo decimal.Decimal
	fee  decimal.Decimal
}

// Transfer attorney fee guideline bands, keyed by purchase price.
var transferAttorneyBands = []feeBand{
	{upTo: decimal.NewFromInt(500_000), fee: decimal.NewFromInt(11_350)},
	{upTo: decimal.NewFromInt(1_000_000), fee: decimal.NewFromInt(21_000)},
	{upTo: decimal.NewFromInt(2_000_000), fee: decimal.NewFromInt(30_400)},
	{upTo: decimal.NewFromInt(4_000_000), fee: decimal.NewFromInt(41_500)},
}

// Bond attorney fee guideline bands, keyed by loan amount.
var bondAttorneyBands = []feeBand{
	{upTo: decimal.NewFromInt(500_000), fee: decimal.NewFromInt(10_700)},
	{upTo: decimal.NewFromInt(1_000_000), fee: decimal.NewFromInt(19_600)},
	{upTo: decimal.NewFromInt(2_000_000), fee: decimal.NewFromInt(28_200)},
	{upTo: decimal.NewFromInt(4_000_000), fee: decimal.NewFromInt(38_900)},
}

// Deeds office registration fee bands, keyed by loan amount.
var deedsOfficeBands = []feeBand{
	{upTo: decimal.NewFromInt(300_000), fee: decimal.NewFromInt(522)},
	{upTo: decimal.NewFromInt(600_000), fee: decimal.NewFromInt(655)},
	{upTo: decimal.NewFromInt(800_000), fee: decimal.NewFromInt(916)},
	{upTo: decimal.NewFromInt(1_000_000), fee: decimal.NewFromInt(1_047)},
	{upTo: decimal.NewFromInt(2_000_000), fee: decimal.NewFromInt(1_309)},
	{upTo: decimal.NewFromInt(4_000_000), fee: decimal.NewFromInt(1_832)},
	{upTo: decimal.NewFromInt(6_000_000), fee: decimal.NewFromInt(2_617)},
}

// topBandRatePercent applies to the slice of the amount above the last band
// ceiling for the attorney fee schedules.
var topBandRatePercent = decimal.NewFromFloat(0.5)

// TransferCosts applies the versioned duty and fee schedules to a purchase.
// Pure table lookup plus arithmetic; the first-time-buyer flag is carried on
// the result for display but carries no duty relief under the current table.
func TransferCosts(purchasePrice, loanAmount decimal.Decimal, firstTimeBuyer bool) (*domain.TransferCostResult, error) {
	if purchasePrice.LessThanOrEqual(decimal.Zero) {
		return nil, customError.WrapNegativeAmount("purchase price", purchasePrice.String())
	}

	if loanAmount.IsNegative() {
		return nil, customError.WrapNegativeAmount("loan amount", loanAmount.String())
	}

	duty := transferDuty(purchasePrice)
	transferFee := bandedFee(transferAttorneyBands, purchasePrice, true)
	bondFee := decimal.Zero
	deedsFee := decimal.Zero
	if loanAmount.IsPositive() {
		bondFee = bandedFee(bondAttorneyBands, loanAmount, true)
		deedsFee = bandedFee(deedsOfficeBands, loanAmount, false)
	}

	total := duty.Add(transferFee).Add(bondFee).Add(deedsFee)

	return &domain.TransferCostResult{
		PurchasePrice:         purchasePrice,
		LoanAmount:            loanAmount,
		FirstTimeBuyer:        firstTimeBuyer,
		TransferDuty:          duty,
		TransferAttorneyFee:   transferFee,
		BondAttorneyFee:       bondFee,
		BondRegistrationFee:   deedsFee,
		Total:                 total,
		ScheduleEffectiveDate: TransferDutyEffectiveDate,
	}, nil
}

func transferDuty(purchasePrice decimal.Decimal) decimal.Decimal {
	for _, bracket := range dutyBrackets {
		if purchasePrice.GreaterThan(bracket.lowerBound) {
			excess := purchasePrice.Sub(bracket.lowerBound)
			return bracket.base.Add(excess.Mul(bracket.ratePercent).Div(oneHundred)).Round(2)
		}
	}
	return decimal.Zero
}

// bandedFee picks the flat fee for the band the amount falls into. Above the
// last band the fee grows by topBandRatePercent of the excess when openTop
// is set, otherwise the last band's fee applies.
func bandedFee(bands []feeBand, amount decimal.Decimal, openTop bool) decimal.Decimal {
	for _, band := range bands {
		if amount.LessThanOrEqual(band.upTo) {
			return band.fee
		}
	}

	last := bands[len(bands)-1]
	if !openTop {
		return last.fee
	}

	excess := amount.Sub(last.upTo)
	return last.fee.Add(excess.Mul(topBandRatePercent).Div(oneHundred)).Round(2)
}
