package main

import "testing"

func TestCheckTargets(t *testing.T) {
	cases := []struct {
		name        string
		in, out     string
		pg, reports bool
		ok          bool
	}{
		{"csv to csv", "in.csv", "out.csv", false, false, true},
		{"postgres only", "-", "", true, false, true},
		{"reports only", "in.csv", "", false, true, true},
		{"missing input", "", "out.csv", false, false, false},
		{"no sink", "in.csv", "", false, false, false},
	}
	for _, tc := range cases {
		err := checkTargets(tc.in, tc.out, tc.pg, tc.reports)
		if (err == nil) != tc.ok {
			t.Fatalf("%s: checkTargets err = %v, want ok=%v", tc.name, err, tc.ok)
		}
	}
}
