package httpstream

import (
	"strings"
	"testing"
)

func TestHeaderAppendPreservesOrderAndCase(t *testing.T) {
	h := NewHeader()
	h.Append("X-First", "1")
	h.Append("X-Second", "2")
	h.Append("x-first", "3")

	names := h.Names()
	if len(names) != 2 || names[0] != "X-First" || names[1] != "X-Second" {
		t.Fatalf("unexpected Names(): %v", names)
	}
	if h.Size() != 2 {
		t.Fatalf("Size() = %d, want 2", h.Size())
	}
	if h.TotalEntries() != 3 {
		t.Fatalf("TotalEntries() = %d, want 3", h.TotalEntries())
	}
}

func TestHeaderGetJoinsMultipleValues(t *testing.T) {
	h := NewHeader()
	h.Append("Set-Cookie", "a=1")
	h.Append("Set-Cookie", "b=2")

	got, ok := h.Get("set-cookie")
	if !ok {
		t.Fatal("expected Get to find Set-Cookie")
	}
	if got != "a=1, b=2" {
		t.Fatalf("Get() = %q, want %q", got, "a=1, b=2")
	}

	all, ok := h.GetAll("SET-COOKIE")
	if !ok || len(all) != 2 || all[0] != "a=1" || all[1] != "b=2" {
		t.Fatalf("GetAll() = %v, %v", all, ok)
	}
}

func TestHeaderSetReplacesAllEntries(t *testing.T) {
	h := NewHeader()
	h.Append("X-Tag", "a")
	h.Append("X-Tag", "b")
	h.Set("x-tag", "c")

	all, ok := h.GetAll("X-Tag")
	if !ok || len(all) != 1 || all[0] != "c" {
		t.Fatalf("GetAll() after Set = %v, %v", all, ok)
	}
}

func TestHeaderDelete(t *testing.T) {
	h := NewHeader()
	h.Append("A", "1")
	h.Append("B", "2")

	if !h.Delete("a") {
		t.Fatal("expected Delete to report removal")
	}
	if h.Delete("a") {
		t.Fatal("expected second Delete to report no removal")
	}
	if _, ok := h.Get("A"); ok {
		t.Fatal("expected A to be gone")
	}
	if v, ok := h.Get("B"); !ok || v != "2" {
		t.Fatalf("expected B to survive deletion of A, got %q %v", v, ok)
	}
}

func TestHeaderCaseInsensitiveAccess(t *testing.T) {
	h := NewHeader()
	h.Append("Content-Type", "text/plain")

	for _, variant := range []string{"content-type", "CONTENT-TYPE", "Content-type"} {
		v, ok := h.Get(variant)
		if !ok || v != "text/plain" {
			t.Errorf("Get(%q) = %q, %v; want text/plain, true", variant, v, ok)
		}
	}
}

func TestHeaderToObject(t *testing.T) {
	h := NewHeader()
	h.Append("A", "1")
	h.Append("a", "2")

	obj := h.ToObject()
	if obj["a"] != "1, 2" {
		t.Fatalf("ToObject()[\"a\"] = %q, want %q", obj["a"], "1, 2")
	}
}

func TestHeaderToBytesRoundTrip(t *testing.T) {
	h := NewHeader()
	h.Append("Host", "example.com")
	h.Append("X-Multi", "a")
	h.Append("X-Multi", "b")

	wire := h.ToBytes()
	res := parseHeaderBlock(wire, DefaultConfig())
	if res.err != nil {
		t.Fatalf("parseHeaderBlock after ToBytes failed: %v", res.err)
	}
	if !h.Equals(res.header) {
		t.Fatalf("round-tripped header not Equals original")
	}
}

func TestHeaderClone(t *testing.T) {
	h := NewHeader()
	h.Append("A", "1")
	c := h.Clone()
	c.Append("B", "2")

	if h.Size() != 1 {
		t.Fatalf("mutating clone affected original: Size() = %d", h.Size())
	}
	if c.Size() != 2 {
		t.Fatalf("clone missing its own mutation: Size() = %d", c.Size())
	}
}

func TestHeaderGetAllCountsDuplicatesNamesDoesNot(t *testing.T) {
	h := NewHeader()
	h.Append("X-Tag", "a")
	h.Append("x-Tag", "b")
	h.Append("Other", "c")

	all, _ := h.GetAll("x-tag")
	count := 0
	for _, n := range h.Names() {
		if strings.EqualFold(n, "x-tag") {
			count++
		}
	}
	// Names() reports distinct logical names, so it undercounts duplicate
	// entries by construction; TotalEntries-by-name is what GetAll mirrors.
	if count != 1 {
		t.Fatalf("Names() reported %d distinct entries for a duplicated header", count)
	}
	if len(all) != 2 {
		t.Fatalf("GetAll() returned %d entries, want 2", len(all))
	}
}
