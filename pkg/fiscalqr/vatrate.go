package fiscalqr

// VATBand is one of the four VAT bands a document can carry amounts for.
type VATBand int

const (
	BandExempt VATBand = iota
	BandReduced
	BandIntermediate
	BandNormal
)

// Region identifies a Portuguese VAT fiscal region, keyed by the value
// its indicator field carries in the payload.
type Region string

const (
	RegionMainland Region = "PT"
	RegionAzores   Region = "PT-AC"
	RegionMadeira  Region = "PT-MA"
)

// vatRates holds the current VAT percentage per region and band.
var vatRates = map[Region]map[VATBand]int{
	RegionMainland: {BandExempt: 0, BandReduced: 6, BandIntermediate: 13, BandNormal: 23},
	RegionAzores:   {BandExempt: 0, BandReduced: 4, BandIntermediate: 9, BandNormal: 18},
	RegionMadeira:  {BandExempt: 0, BandReduced: 5, BandIntermediate: 12, BandNormal: 22},
}

// VATRate returns the percentage applied in a region for a band. Used
// when presenting the decoded amounts, not during validation.
func VATRate(region Region, band VATBand) (int, bool) {
	rates, ok := vatRates[region]
	if !ok {
		return 0, false
	}
	rate, ok := rates[band]
	return rate, ok
}
