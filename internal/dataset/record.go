// Package dataset loads NCRB-style crime statistics tables into memory.
package dataset

import "sort"

// CrimeRecord is one row of a crime statistics table. Records are
// immutable once loaded; all downstream aggregation is pure.
type CrimeRecord struct {
	State     string
	Year      int // 0 when the source has no usable year
	Group     string
	SubGroup  string
	Crimes    float64
	Recovered float64
	LossValue float64
}

// Dataset is a named record set loaded from a single CSV file.
type Dataset struct {
	Name    string
	File    string
	Records []CrimeRecord
}

// Years returns the sorted distinct years present in the dataset.
// Records without a year are excluded.
func (d *Dataset) Years() []int {
	seen := make(map[int]struct{})
	for _, r := range d.Records {
		if r.Year != 0 {
			seen[r.Year] = struct{}{}
		}
	}
	years := make([]int, 0, len(seen))
	for y := range seen {
		years = append(years, y)
	}
	sort.Ints(years)
	return years
}

// Groups returns the sorted distinct crime group names in the dataset.
func (d *Dataset) Groups() []string {
	seen := make(map[string]struct{})
	for _, r := range d.Records {
		if r.Group != "" {
			seen[r.Group] = struct{}{}
		}
	}
	groups := make([]string, 0, len(seen))
	for g := range seen {
		groups = append(groups, g)
	}
	sort.Strings(groups)
	return groups
}
