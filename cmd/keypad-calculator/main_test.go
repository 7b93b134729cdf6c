package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/karupanerura/keypad-calculator/internal/keypad"
)

func TestSplitKeys(t *testing.T) {
	t.Parallel()

	for _, tt := range []struct {
		source string
		want   []string
	}{
		{source: "1,+,2,=", want: []string{"1", "+", "2", "="}},
		{source: " 1 , × ,, 2 ", want: []string{"1", "×", "2"}},
		{source: "", want: nil},
	} {
		tt := tt
		t.Run(tt.source, func(t *testing.T) {
			t.Parallel()

			if diff := cmp.Diff(tt.want, splitKeys(tt.source)); diff != "" {
				t.Errorf("(-want +got):\n%s", diff)
			}
		})
	}
}

func TestInteract(t *testing.T) {
	t.Parallel()

	in := strings.NewReader("1 2 + 3\n=\n")
	var out bytes.Buffer
	if err := interact(context.Background(), in, &out, keypad.DefaultKeymap()); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff("12+3\n15\n", out.String()); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestRun(t *testing.T) {
	t.Parallel()

	if code := run([]string{"-k", "2,^,10,=", "-e", "1024"}); code != 0 {
		t.Errorf("exit code = %d, want 0", code)
	}
	if code := run([]string{"-k", "1,+,1,=", "-e", "3"}); code != 1 {
		t.Errorf("exit code = %d, want 1", code)
	}
	if code := run([]string{"-k", "1", "-l", ":0"}); code != 1 {
		t.Errorf("exit code = %d, want 1", code)
	}
}
