package main

import (
	"os"
	"testing"
)

func TestRunReturnsExitCodes(t *testing.T) {
	t.Chdir(t.TempDir())
	saved := os.Args
	defer func() { os.Args = saved }()

	cases := []struct {
		args []string
		want int
	}{
		{[]string{"connect4"}, 2},
		{[]string{"connect4", "bogus"}, 2},
		{[]string{"connect4", "join"}, 2},
		{[]string{"connect4", "--transport", "carrier-pigeon", "local"}, 2},
	}
	for _, tc := range cases {
		os.Args = tc.args
		if got := run(); got != tc.want {
			t.Fatalf("%v: exit code %d, want %d", tc.args, got, tc.want)
		}
	}
}
