package output

// DefaultAssumptions lists key modeling assumptions rendered in detailed outputs.
var DefaultAssumptions = []string{
	"Property value compounds yearly at the estimated appreciation rate, pro rata by month",
	"Installments are corrected monthly at the annual correction rate / 12",
	"Capital gains tax: 15% to 5M, 17.5% to 10M, 20% to 30M, 22.5% above, over the corrected cost",
	"Fixed-income tax: 22.5% / 20% / 17.5% / 15% by holding period (180 / 360 / 720 days), 30-day months",
	"Tax-exempt instrument (LCI) yield carries no income tax",
	"Transfer tax and registration are reported as acquisition costs and do not enter net profit",
}
