package purchase

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseMode(t *testing.T) {
	req := require.New(t)
	cases := []struct {
		in   string
		want Mode
		err  error
	}{
		{"marketplace", ModeMarketplaceFulfillment, nil},
		{"MINT", ModeSimpleMint, nil},
		{"simple_mint", ModeSimpleMint, nil},
		{"auction", 0, ErrUnsupportedMode},
	}
	for _, c := range cases {
		m, err := ParseMode(c.in)
		req.Equal(c.err, err, c.in)
		if err == nil {
			req.Equal(c.want, m, c.in)
			req.Equal(c.want.RequiresListing(), m == ModeMarketplaceFulfillment)
		}
	}
}
