package httpstream

import "testing"

func TestSplitHeaderLine(t *testing.T) {
	cases := []struct {
		line      string
		name      string
		value     string
		ok        bool
	}{
		{"Host: example.com", "Host", "example.com", true},
		{"X-Empty:", "", "", false},
		{"NoColon", "", "", false},
		{"  Leading : value  ", "Leading", "value", true},
		{": no-name", "", "", false},
	}
	for _, c := range cases {
		name, value, ok := splitHeaderLine([]byte(c.line))
		if ok != c.ok || name != c.name || value != c.value {
			t.Errorf("splitHeaderLine(%q) = (%q, %q, %v), want (%q, %q, %v)",
				c.line, name, value, ok, c.name, c.value, c.ok)
		}
	}
}

func TestParseHeaderBlockBasic(t *testing.T) {
	input := []byte("Host: example.com\r\nContent-Type: text/plain\r\n\r\nbody follows")
	res := parseHeaderBlock(input, DefaultConfig())
	if res.err != nil {
		t.Fatalf("unexpected error: %v", res.err)
	}
	if res.needsMore {
		t.Fatal("unexpected needsMore")
	}
	if got, _ := res.header.Get("host"); got != "example.com" {
		t.Fatalf("Host = %q", got)
	}
	if res.consumed != len(input)-len("body follows") {
		t.Fatalf("consumed = %d, want %d", res.consumed, len(input)-len("body follows"))
	}
}

func TestParseHeaderBlockNeedsMoreData(t *testing.T) {
	input := []byte("Host: example.com\r\n")
	res := parseHeaderBlock(input, DefaultConfig())
	if !res.needsMore {
		t.Fatal("expected needsMore for a block without its terminator")
	}
}

func TestParseHeaderBlockEmptyValueRejected(t *testing.T) {
	input := []byte("X-Empty:\r\n\r\n")
	res := parseHeaderBlock(input, DefaultConfig())
	if res.err == nil {
		t.Fatal("expected empty header value to be rejected per spec §9")
	}
}

func TestParseHeaderBlockTooManyHeaders(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxHeaders = 2
	input := []byte("A: 1\r\nB: 2\r\nC: 3\r\n\r\n")
	res := parseHeaderBlock(input, cfg)
	if res.err == nil || res.err.Code != ErrTooManyHeaders {
		t.Fatalf("expected ErrTooManyHeaders, got %v", res.err)
	}
}

func TestParseHeaderBlockLineTooLong(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxHeaderLineLength = 16
	long := make([]byte, 40)
	for i := range long {
		long[i] = 'a'
	}
	input := append([]byte("X: "), long...)
	input = append(input, '\r', '\n', '\r', '\n')
	res := parseHeaderBlock(input, cfg)
	if res.err == nil {
		t.Fatal("expected error for a header line exceeding the configured limit")
	}
}

func TestParseHeaderBlockRejectsBareLF(t *testing.T) {
	input := []byte("Host: example.com\n\n")
	res := parseHeaderBlock(input, DefaultConfig())
	if res.err == nil {
		t.Fatal("expected a bare LF line terminator to be rejected")
	}
}
