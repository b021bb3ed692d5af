package main

import (
	"time"

	cveanalyzer "github.com/satwikbh/CveAnalyzer"
)

// firstFeedYear is the earliest year fetched or ingested by default.
// NVD publishes feeds back to 2002, but older entries rarely matter for
// remediation work.
const firstFeedYear = 2014

// resolveYears returns the requested years, or the default range from
// firstFeedYear through the current year when none were given.
func resolveYears(years []int) ([]int, error) {
	if len(years) == 0 {
		current := time.Now().Year()
		for year := firstFeedYear; year <= current; year++ {
			years = append(years, year)
		}
		return years, nil
	}
	for _, year := range years {
		if year < 2002 {
			return nil, cveanalyzer.Errorf(cveanalyzer.EINVALID, "no feed published for year %d", year)
		}
	}
	return years, nil
}
