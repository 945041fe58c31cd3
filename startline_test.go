package httpstream

import "testing"

func TestParseRequestLineComplete(t *testing.T) {
	res := parseRequestLine([]byte("GET /index.html HTTP/1.1\r\nHost: x\r\n\r\n"))
	if res.err != nil || res.needsMore {
		t.Fatalf("unexpected result: %+v", res)
	}
	if res.line.Method != "GET" || res.line.Target != "/index.html" || res.line.Version != "HTTP/1.1" {
		t.Fatalf("unexpected line: %+v", res.line)
	}
	want := len("GET /index.html HTTP/1.1\r\n")
	if res.consumed != want {
		t.Fatalf("consumed = %d, want %d", res.consumed, want)
	}
}

func TestParseRequestLineNeedsMoreData(t *testing.T) {
	partials := []string{
		"",
		"GE",
		"GET ",
		"GET /index.html",
		"GET /index.html HTTP/1.1",
	}
	for _, p := range partials {
		res := parseRequestLine([]byte(p))
		if !res.needsMore {
			t.Errorf("parseRequestLine(%q): expected needsMore, got %+v", p, res)
		}
	}
}

func TestParseRequestLineInvalidMethod(t *testing.T) {
	res := parseRequestLine([]byte("IN\tVALID / HTTP/1.1\r\n"))
	if res.err == nil || res.err.Code != ErrInvalidMethod {
		t.Fatalf("expected ErrInvalidMethod, got %+v", res)
	}
}

func TestParseRequestLineInvalidVersion(t *testing.T) {
	res := parseRequestLine([]byte("GET / HTTP/2.0\r\n"))
	if res.err == nil || res.err.Code != ErrInvalidVersion {
		t.Fatalf("expected ErrInvalidVersion, got %+v", res)
	}
}

func TestParseStatusLineWithReason(t *testing.T) {
	res := parseStatusLine([]byte("HTTP/1.1 404 Not Found Here\r\n"))
	if res.err != nil || res.needsMore {
		t.Fatalf("unexpected result: %+v", res)
	}
	if res.line.StatusCode != 404 || res.line.Reason != "Not Found Here" {
		t.Fatalf("unexpected line: %+v", res.line)
	}
}

func TestParseStatusLineEmptyReason(t *testing.T) {
	res := parseStatusLine([]byte("HTTP/1.1 200\r\n"))
	if res.err != nil || res.needsMore {
		t.Fatalf("unexpected result: %+v", res)
	}
	if res.line.StatusCode != 200 || res.line.Reason != "" {
		t.Fatalf("unexpected line: %+v", res.line)
	}
}

func TestParseStatusLineNeedsMoreData(t *testing.T) {
	partials := []string{
		"",
		"HTTP",
		"HTTP/1.1 ",
		"HTTP/1.1 20",
		"HTTP/1.1 200",
	}
	for _, p := range partials {
		res := parseStatusLine([]byte(p))
		if !res.needsMore {
			t.Errorf("parseStatusLine(%q): expected needsMore, got %+v", p, res)
		}
	}
}

func TestParseStatusLineTooManyDigits(t *testing.T) {
	res := parseStatusLine([]byte("HTTP/1.1 20000 Bad\r\n"))
	if res.err == nil || res.err.Code != ErrInvalidStatusCode {
		t.Fatalf("expected ErrInvalidStatusCode, got %+v", res)
	}
}

func TestParseStatusLineInvalidVersion(t *testing.T) {
	res := parseStatusLine([]byte("HTTP/2.0 200 OK\r\n"))
	if res.err == nil || res.err.Code != ErrInvalidVersion {
		t.Fatalf("expected ErrInvalidVersion, got %+v", res)
	}
}
