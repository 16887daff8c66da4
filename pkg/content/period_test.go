package content

import (
	"testing"
	"time"
)

func TestParsePeriodStart(t *testing.T) {
	tests := []struct {
		period string
		want   time.Time
	}{
		{"March 2020 - Present", date(2020, time.March, 1)},
		{"Jan 2019 - Feb 2020", date(2019, time.January, 1)},
		{"may 2018 - Dec 2018", date(2018, time.May, 1)},
		{"SEPTEMBER 2016 - Apr 2018", date(2016, time.September, 1)},
		{"2024 - Present", date(2024, time.January, 1)},
		{"2023", date(2023, time.January, 1)},
		{"2021-06 - 2022-01", date(2021, time.June, 1)},
		{"2020-02-15 - Present", date(2020, time.February, 15)},
		{"June 3, 2015 - July 2016", date(2015, time.June, 3)},
		{"Present", UnknownPeriodStart},
		{"", UnknownPeriodStart},
		{"Spring 2020 - Fall 2020", UnknownPeriodStart},
		{"Marchish 2020 - Present", UnknownPeriodStart},
		{"March +202 - Present", UnknownPeriodStart},
		{"Jan -999 - Dec 2001", UnknownPeriodStart},
		{"+202", UnknownPeriodStart},
	}

	for _, tt := range tests {
		t.Run(tt.period, func(t *testing.T) {
			if got := ParsePeriodStart(tt.period); !got.Equal(tt.want) {
				t.Errorf("ParsePeriodStart(%q) = %v, want %v", tt.period, got, tt.want)
			}
		})
	}
}

func TestParsePeriodStart_Ordering(t *testing.T) {
	older := ParsePeriodStart("Jan 2019 - Feb 2020")
	newer := ParsePeriodStart("March 2020 - Present")
	if !newer.After(older) {
		t.Errorf("expected %v after %v", newer, older)
	}
	if !older.After(ParsePeriodStart("garbage")) {
		t.Error("expected unknown period to sort oldest")
	}
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
