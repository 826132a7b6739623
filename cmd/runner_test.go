package main

import (
	"testing"

	"github.com/desertthunder/spotify-cli/internal/output"
	"github.com/desertthunder/spotify-cli/internal/rpc"
)

func TestParsePosition(t *testing.T) {
	tc := []struct {
		input   string
		want    int
		wantErr bool
	}{
		{input: "90", want: 90000},
		{input: "90s", want: 90000},
		{input: "5000ms", want: 5000},
		{input: "1:30", want: 90000},
		{input: "1:02:30", want: 3750000},
		{input: " 45 ", want: 45000},
		{input: "0", want: 0},
		{input: "1:2:3:4", wantErr: true},
		{input: "abc", wantErr: true},
		{input: "-5", wantErr: true},
		{input: "1:xx", wantErr: true},
	}

	for _, c := range tc {
		t.Run(c.input, func(t *testing.T) {
			got, err := parsePosition(c.input)
			if c.wantErr {
				if err == nil {
					t.Fatalf("parsePosition(%q) = %d, want error", c.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("parsePosition(%q): %v", c.input, err)
			}
			if got != c.want {
				t.Errorf("parsePosition(%q) = %d, want %d", c.input, got, c.want)
			}
		})
	}
}

func TestExpandTimeRange(t *testing.T) {
	tc := []struct {
		input string
		want  string
	}{
		{input: "short", want: "short_term"},
		{input: "medium", want: "medium_term"},
		{input: "long", want: "long_term"},
		{input: "long_term", want: "long_term"},
	}
	for _, c := range tc {
		if got := expandTimeRange(c.input); got != c.want {
			t.Errorf("expandTimeRange(%q) = %q, want %q", c.input, got, c.want)
		}
	}
}

func TestFromRPCSuccess(t *testing.T) {
	reply := &rpc.Response{
		JSONRPC: "2.0",
		Result: map[string]any{
			"message": "2 pin(s)",
			"payload": map[string]any{"pins": []any{}},
		},
	}

	resp := fromRPC(reply)
	if resp.IsError() {
		t.Fatalf("fromRPC() = %+v", resp)
	}
	if resp.Message != "2 pin(s)" {
		t.Errorf("message = %q", resp.Message)
	}
	if resp.Payload == nil {
		t.Error("payload should survive the round trip")
	}
}

func TestFromRPCError(t *testing.T) {
	reply := &rpc.Response{
		JSONRPC: "2.0",
		Error: &rpc.Error{
			Code:    404,
			Message: "Pin not found: \"misc\"",
			Data:    map[string]any{"kind": "not_found", "details": "no such alias"},
		},
	}

	resp := fromRPC(reply)
	if !resp.IsError() {
		t.Fatal("expected error envelope")
	}
	if resp.Code != 404 || resp.Message != "Pin not found: \"misc\"" {
		t.Errorf("envelope = %d %q", resp.Code, resp.Message)
	}
	if resp.Error.Kind != output.ErrKindNotFound {
		t.Errorf("kind = %q", resp.Error.Kind)
	}
	if resp.Error.Details != "no such alias" {
		t.Errorf("details = %q", resp.Error.Details)
	}
}

func TestFromRPCErrorWithoutData(t *testing.T) {
	reply := &rpc.Response{
		JSONRPC: "2.0",
		Error:   &rpc.Error{Code: -32601, Message: "Method not found: nope"},
	}

	resp := fromRPC(reply)
	if resp.Error.Kind != output.ErrKindAPI {
		t.Errorf("kind = %q, want the api fallback", resp.Error.Kind)
	}
}
