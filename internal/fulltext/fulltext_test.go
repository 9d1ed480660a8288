package fulltext

import "testing"

func TestFindDOI(t *testing.T) {
	for _, tc := range []struct {
		name string
		text string
		want string
	}{
		{
			"plain",
			"available at doi 10.1000/182 in the archive",
			"10.1000/182",
		},
		{
			"trailing punctuation",
			"see https://doi.org/10.1002/andp.19053221004. More text",
			"10.1002/andp.19053221004",
		},
		{
			"first of several",
			"10.1000/182 then 10.1000/183",
			"10.1000/182",
		},
		{
			"none",
			"no identifiers in this text",
			"",
		},
		{
			"bare prefix rejected",
			"version 10.04/beta of the software",
			"",
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			got := findDOI(tc.text)
			switch {
			case tc.want == "" && got != nil:
				t.Errorf("findDOI() = %v, want none", got)
			case tc.want != "" && (got == nil || got.String() != tc.want):
				t.Errorf("findDOI() = %v, want %s", got, tc.want)
			}
		})
	}
}
