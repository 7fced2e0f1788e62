package main

import (
	"bytes"
	"testing"
)

func TestResolveCmd(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{name: "quarter turn", args: []string{"resolve", "--rotation", "90", "A", "B"}, want: "B\n"},
		{name: "three quarter turn", args: []string{"resolve", "--rotation", "270", "A", "B"}, want: "A\n"},
		{name: "negative", args: []string{"resolve", "--rotation=-10", "A", "B", "C"}, want: "A\n"},
		{name: "single label", args: []string{"resolve", "only"}, want: "only\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := newRootCmd()
			var out bytes.Buffer
			root.SetOut(&out)
			root.SetArgs(tt.args)

			if err := root.Execute(); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if out.String() != tt.want {
				t.Fatalf("output = %q, want %q", out.String(), tt.want)
			}
		})
	}
}

func TestResolveCmdRequiresLabels(t *testing.T) {
	root := newRootCmd()
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"resolve", "--rotation", "10"})

	if err := root.Execute(); err == nil {
		t.Fatalf("expected error without labels")
	}
}
