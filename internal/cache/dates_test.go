package cache

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDateSortKey(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "full date",
			in:   "Sunday, September 13, 2015 at 3:44:42",
			want: "2015-09-13 3:44:42",
		},
		{
			name: "single digit day zero padded",
			in:   "Monday, January 5, 2020 at 10:00:00",
			want: "2020-01-05 10:00:00",
		},
		{
			name: "empty stays empty",
			in:   "",
			want: "",
		},
		{
			name: "no comma parts pass through",
			in:   "13 Sep 2015",
			want: "13 Sep 2015",
		},
		{
			name: "unknown month defaults to january",
			in:   "Sunday, Foobar 13, 2015 at 3:44:42",
			want: "2015-01-13 3:44:42",
		},
		{
			name: "bad day defaults to first",
			in:   "Sunday, September xx, 2015 at 3:44:42",
			want: "2015-09-01 3:44:42",
		},
		{
			name: "bad year defaults to epoch",
			in:   "Sunday, September 13, nope at 3:44:42",
			want: "1970-09-13 3:44:42",
		},
		{
			name: "missing year and time",
			in:   "Sunday, September 13",
			want: "1970-09-13 00:00:00",
		},
		{
			name: "missing time",
			in:   "Sunday, September 13, 2015",
			want: "2015-09-13 00:00:00",
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tc.want, dateSortKey(tc.in))
		})
	}
}

func TestDateSortKeyOrdering(t *testing.T) {
	t.Parallel()

	older := dateSortKey("Monday, January 5, 2020 at 1:00:00")
	newer := dateSortKey("Tuesday, February 3, 2021 at 1:00:00")
	require.Less(t, older, newer)

	// Unparseable dates sort before everything real.
	require.Less(t, dateSortKey(""), older)
}
