package domain

import (
	"fmt"
	"sort"
)

// Weekdays are the DayOfWeek values in chart order.
var Weekdays = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// FrequencyTable maps a label to the number of records carrying it.
type FrequencyTable map[string]int

// Count returns the count for label, zero when the label was never seen.
func (t FrequencyTable) Count(label string) int {
	return t[label]
}

// Total returns the sum of all counts.
func (t FrequencyTable) Total() int {
	n := 0
	for _, c := range t {
		n += c
	}
	return n
}

// Labels returns every label in the table sorted lexically.
func (t FrequencyTable) Labels() []string {
	labels := make([]string, 0, len(t))
	for l := range t {
		labels = append(labels, l)
	}
	sort.Strings(labels)
	return labels
}

// CountBy counts the records of ds by the value of field. Labels listed in
// expected are present in the result with a zero count when no record
// carries them.
func CountBy(ds Dataset, field string, expected ...string) (FrequencyTable, error) {
	table := make(FrequencyTable, len(expected))
	for _, label := range expected {
		table[label] = 0
	}

	for i, rec := range ds.Records {
		v, err := rec.Get(field)
		if err != nil {
			return nil, fmt.Errorf("count by %s: record %d: %w", field, i, err)
		}
		table[v]++
	}
	return table, nil
}
