package reporters

// Export unexported functions for external tests.
var (
	CalcColumnWidthsFor = calcColumnWidthsFor
	BuildResultRow      = buildResultRow
	SeverityRank        = severityRank
)
