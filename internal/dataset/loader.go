package dataset

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// stateColumnAliases lists the header names NCRB exports use for the
// state/UT column, in lookup order. The first match is treated as the
// state column.
var stateColumnAliases = []string{
	"Area_Name",
	"STATE/UT",
	"State/UT",
	"State",
	"STATE",
	"District",
	"DISTRICT",
}

// canonicalStateNames maps legacy or variant state names found in the
// datasets to the canonical names used by the boundary file.
var canonicalStateNames = map[string]string{
	"NCT of Delhi":                "Delhi",
	"Orissa":                      "Odisha",
	"Uttaranchal":                 "Uttarakhand",
	"Jammu & Kashmir":             "Jammu and Kashmir",
	"Andaman & Nicobar Islands":   "Andaman and Nicobar",
	"Dadra & Nagar Haveli":        "Dadra and Nagar Haveli",
	"Daman & Diu":                 "Daman and Diu",
}

// CanonicalState returns the canonical form of a dataset state name.
func CanonicalState(name string) string {
	name = strings.TrimSpace(name)
	if canonical, ok := canonicalStateNames[name]; ok {
		return canonical
	}
	return name
}

// columnLayout describes where the interesting columns live in a parsed
// header row. Index -1 means the column is absent.
type columnLayout struct {
	state    int
	year     int
	group    int
	subGroup int

	crimes         int
	recovered      int
	valueStolen    int
	valueRecovered int
}

// Load reads one CSV file into a record slice.
//
// Property-crime exports carry explicit stolen/recovered case and value
// columns. Other exports get their crime count from the best available
// numeric column (headers mentioning case/crime/total are preferred) and
// report zero recovery and loss. Rows with an empty state are skipped;
// unparseable numbers contribute zero.
func Load(path string) ([]CrimeRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if len(rows) < 1 {
		return nil, fmt.Errorf("dataset %s is empty", path)
	}

	header := rows[0]
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	layout, err := resolveLayout(header, rows[1:])
	if err != nil {
		return nil, fmt.Errorf("dataset %s: %w", path, err)
	}

	records := make([]CrimeRecord, 0, len(rows)-1)
	for _, row := range rows[1:] {
		rec, ok := parseRow(row, layout)
		if !ok {
			continue
		}
		records = append(records, rec)
	}
	return records, nil
}

func resolveLayout(header []string, body [][]string) (columnLayout, error) {
	index := make(map[string]int, len(header))
	for i, name := range header {
		index[name] = i
	}

	layout := columnLayout{
		state:          -1,
		year:           -1,
		group:          -1,
		subGroup:       -1,
		crimes:         -1,
		recovered:      -1,
		valueStolen:    -1,
		valueRecovered: -1,
	}

	for _, alias := range stateColumnAliases {
		if i, ok := index[alias]; ok {
			layout.state = i
			break
		}
	}
	if layout.state == -1 {
		return layout, fmt.Errorf("no state column found (looked for %s)", strings.Join(stateColumnAliases, ", "))
	}

	if i, ok := index["Year"]; ok {
		layout.year = i
	}
	if i, ok := index["Group_Name"]; ok {
		layout.group = i
	}
	if i, ok := index["Sub_Group_Name"]; ok {
		layout.subGroup = i
	}

	// Property crime exports have a fixed, known shape.
	if i, ok := index["Cases_Property_Stolen"]; ok {
		layout.crimes = i
		if j, ok := index["Cases_Property_Recovered"]; ok {
			layout.recovered = j
		}
		if j, ok := index["Value_of_Property_Stolen"]; ok {
			layout.valueStolen = j
		}
		if j, ok := index["Value_of_Property_Recovered"]; ok {
			layout.valueRecovered = j
		}
		return layout, nil
	}

	layout.crimes = pickCountColumn(header, body, layout)
	if layout.crimes == -1 {
		return layout, fmt.Errorf("no numeric column usable as a crime count")
	}
	return layout, nil
}

// pickCountColumn chooses the crime-count column for generic datasets:
// the first numeric column whose header mentions case/crime/total, or
// failing that the first numeric column at all.
func pickCountColumn(header []string, body [][]string, layout columnLayout) int {
	reserved := map[int]bool{
		layout.state:    true,
		layout.year:     true,
		layout.group:    true,
		layout.subGroup: true,
	}

	first := -1
	for i, name := range header {
		if reserved[i] || !columnIsNumeric(body, i) {
			continue
		}
		if first == -1 {
			first = i
		}
		lower := strings.ToLower(name)
		if strings.Contains(lower, "case") || strings.Contains(lower, "crime") || strings.Contains(lower, "total") {
			return i
		}
	}
	return first
}

// columnIsNumeric reports whether the first non-empty value in the
// column parses as a number.
func columnIsNumeric(body [][]string, col int) bool {
	for _, row := range body {
		if col >= len(row) {
			continue
		}
		v := strings.TrimSpace(row[col])
		if v == "" {
			continue
		}
		_, err := strconv.ParseFloat(v, 64)
		return err == nil
	}
	return false
}

func parseRow(row []string, layout columnLayout) (CrimeRecord, bool) {
	state := CanonicalState(field(row, layout.state))
	if state == "" {
		return CrimeRecord{}, false
	}

	rec := CrimeRecord{
		State:    state,
		Group:    fieldOrDefault(row, layout.group, "Overall"),
		SubGroup: fieldOrDefault(row, layout.subGroup, "Overall"),
	}

	if layout.year != -1 {
		if y, err := strconv.Atoi(field(row, layout.year)); err == nil {
			rec.Year = y
		}
	}

	rec.Crimes = number(row, layout.crimes)
	rec.Recovered = number(row, layout.recovered)
	if layout.valueStolen != -1 {
		rec.LossValue = number(row, layout.valueStolen) - number(row, layout.valueRecovered)
	}
	return rec, true
}

func field(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func fieldOrDefault(row []string, i int, def string) string {
	if v := field(row, i); v != "" {
		return v
	}
	return def
}

func number(row []string, i int) float64 {
	v, err := strconv.ParseFloat(field(row, i), 64)
	if err != nil {
		return 0
	}
	return v
}
