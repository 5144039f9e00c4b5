package funding

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func amount(v int64) *int64 {
	return &v
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want *int64
	}{
		{name: "millions with decimal", raw: "$1.5M", want: amount(1_500_000)},
		{name: "thousands", raw: "$500K", want: amount(500_000)},
		{name: "billions", raw: "$2B", want: amount(2_000_000_000)},
		{name: "plain integer", raw: "1000", want: amount(1000)},
		{name: "empty", raw: "", want: nil},
		{name: "not a number", raw: "N/A", want: nil},
		{name: "decimal millions", raw: "$12.5M", want: amount(12_500_000)},
		{name: "currency symbol and commas", raw: "$1,000", want: amount(1000)},
		{name: "garbage text", raw: "undisclosed", want: nil},
		{name: "suffix without digits", raw: "$M", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.raw)
			if tt.want == nil {
				assert.Nil(t, got)
				return
			}
			if assert.NotNil(t, got) {
				assert.Equal(t, *tt.want, *got)
			}
		})
	}
}

func TestNormalizeMalformedSuffixes(t *testing.T) {
	//K is checked first, so it is stripped first; the leftover B makes the
	//number unparseable and the whole value is treated as absent
	assert.Nil(t, Normalize("$2KB"))

	//suffixes are uppercase on the site, lowercase is not a unit
	assert.Nil(t, Normalize("$2k"))
}
