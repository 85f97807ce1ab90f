package benchmark

import (
	"finhealth/pkg/models"
)

// SeedRows returns the stock benchmark table: one row per supported industry
// plus the global default. Values are SME-scale industry averages; margins
// and expected growth in percent, days in days.
func SeedRows() []models.IndustryBenchmark {
	return []models.IndustryBenchmark{
		{
			Industry:               models.IndustryManufacturing,
			AvgCurrentRatio:        1.5,
			AvgQuickRatio:          1.0,
			AvgGrossMargin:         30,
			AvgNetMargin:           8,
			AvgROA:                 7,
			AvgROE:                 14,
			AvgInventoryTurnover:   6,
			AvgReceivablesDays:     55,
			AvgPayablesDays:        45,
			AvgCashConversionCycle: 70,
			AvgDebtToEquity:        1.2,
			AvgInterestCoverage:    4,
			ExpectedRevenueGrowth:  8,
		},
		{
			Industry:               models.IndustryRetail,
			AvgCurrentRatio:        1.3,
			AvgQuickRatio:          0.6,
			AvgGrossMargin:         25,
			AvgNetMargin:           4,
			AvgROA:                 8,
			AvgROE:                 16,
			AvgInventoryTurnover:   8,
			AvgReceivablesDays:     15,
			AvgPayablesDays:        35,
			AvgCashConversionCycle: 26,
			AvgDebtToEquity:        1.0,
			AvgInterestCoverage:    5,
			ExpectedRevenueGrowth:  10,
		},
		{
			Industry:               models.IndustryAgriculture,
			AvgCurrentRatio:        1.6,
			AvgQuickRatio:          0.9,
			AvgGrossMargin:         22,
			AvgNetMargin:           6,
			AvgROA:                 5,
			AvgROE:                 10,
			AvgInventoryTurnover:   4,
			AvgReceivablesDays:     40,
			AvgPayablesDays:        30,
			AvgCashConversionCycle: 101,
			AvgDebtToEquity:        0.9,
			AvgInterestCoverage:    3.5,
			ExpectedRevenueGrowth:  6,
		},
		{
			Industry:               models.IndustryServices,
			AvgCurrentRatio:        1.8,
			AvgQuickRatio:          1.7,
			AvgGrossMargin:         45,
			AvgNetMargin:           12,
			AvgROA:                 10,
			AvgROE:                 18,
			AvgInventoryTurnover:   12,
			AvgReceivablesDays:     60,
			AvgPayablesDays:        30,
			AvgCashConversionCycle: 60,
			AvgDebtToEquity:        0.6,
			AvgInterestCoverage:    6,
			ExpectedRevenueGrowth:  12,
		},
		{
			Industry:               models.IndustryLogistics,
			AvgCurrentRatio:        1.2,
			AvgQuickRatio:          1.1,
			AvgGrossMargin:         20,
			AvgNetMargin:           5,
			AvgROA:                 6,
			AvgROE:                 12,
			AvgInventoryTurnover:   15,
			AvgReceivablesDays:     50,
			AvgPayablesDays:        40,
			AvgCashConversionCycle: 34,
			AvgDebtToEquity:        1.5,
			AvgInterestCoverage:    3,
			ExpectedRevenueGrowth:  9,
		},
		{
			Industry:               models.IndustryEcommerce,
			AvgCurrentRatio:        1.4,
			AvgQuickRatio:          1.0,
			AvgGrossMargin:         35,
			AvgNetMargin:           3,
			AvgROA:                 6,
			AvgROE:                 15,
			AvgInventoryTurnover:   10,
			AvgReceivablesDays:     10,
			AvgPayablesDays:        40,
			AvgCashConversionCycle: 7,
			AvgDebtToEquity:        0.8,
			AvgInterestCoverage:    4,
			ExpectedRevenueGrowth:  15,
		},
		defaultRow(),
	}
}

func defaultRow() models.IndustryBenchmark {
	return models.IndustryBenchmark{
		Industry:               models.DefaultIndustry,
		AvgCurrentRatio:        1.5,
		AvgQuickRatio:          1.0,
		AvgGrossMargin:         30,
		AvgNetMargin:           7,
		AvgROA:                 7,
		AvgROE:                 14,
		AvgInventoryTurnover:   8,
		AvgReceivablesDays:     45,
		AvgPayablesDays:        38,
		AvgCashConversionCycle: 53,
		AvgDebtToEquity:        1.0,
		AvgInterestCoverage:    4,
		ExpectedRevenueGrowth:  10,
	}
}
