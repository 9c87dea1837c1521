package compliance

// Aggregate combines per-device audit results into a fleet report.
//
// Devices appear in submission order. Aggregate copies the input slice and
// never mutates the results, so calling it twice on the same input yields
// identical reports; fleet totals always equal the sum of per-device counts.
func Aggregate(results []DeviceAuditResult) *FleetReport {
	report := &FleetReport{
		Results: make([]DeviceAuditResult, len(results)),
	}
	copy(report.Results, results)

	for _, res := range report.Results {
		report.Totals.High += res.Counts.High
		report.Totals.Medium += res.Counts.Medium
		report.Totals.Low += res.Counts.Low
		if res.Status == StatusPass {
			report.Passed++
		} else {
			report.Failed++
		}
	}
	return report
}
