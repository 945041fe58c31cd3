package httpstream

import "strings"

// headerEntry is one wire-order header field: the name exactly as it
// appeared on the wire, and its value.
type headerEntry struct {
	name  string
	value string
}

// Header is the case-insensitive, multi-valued, order-preserving header
// container described in spec §3/§4.3. Per spec §9's explicit
// re-architecture note, the source of truth is an ordered vector of entries;
// the lowercase-name index stores the *indices* into that vector rather than
// any synthetic per-entry key.
type Header struct {
	entries []headerEntry
	index   map[string][]int
}

// NewHeader returns an empty Header ready for use.
func NewHeader() *Header {
	return &Header{
		index: make(map[string][]int),
	}
}

func lowerHeaderName(name string) string {
	return strings.ToLower(name)
}

// Append adds a new entry under name without touching any existing entry
// sharing the same lowercase name. The original case of name is preserved.
func (h *Header) Append(name, value string) {
	key := lowerHeaderName(name)
	idx := len(h.entries)
	h.entries = append(h.entries, headerEntry{name: name, value: value})
	h.index[key] = append(h.index[key], idx)
}

// Set replaces every entry sharing name's lowercase form with a single new
// entry carrying name's given case.
func (h *Header) Set(name, value string) {
	h.Delete(name)
	h.Append(name, value)
}

// Get returns the comma-joined values (in insertion order) of every entry
// sharing name's lowercase form, or ok=false if there is no such entry.
func (h *Header) Get(name string) (string, bool) {
	idxs, ok := h.index[lowerHeaderName(name)]
	if !ok || len(idxs) == 0 {
		return "", false
	}
	if len(idxs) == 1 {
		return h.entries[idxs[0]].value, true
	}
	values := make([]string, len(idxs))
	for i, idx := range idxs {
		values[i] = h.entries[idx].value
	}
	return strings.Join(values, ", "), true
}

// GetAll returns the per-entry values (in insertion order) of every entry
// sharing name's lowercase form, or ok=false if there is no such entry.
func (h *Header) GetAll(name string) ([]string, bool) {
	idxs, ok := h.index[lowerHeaderName(name)]
	if !ok || len(idxs) == 0 {
		return nil, false
	}
	values := make([]string, len(idxs))
	for i, idx := range idxs {
		values[i] = h.entries[idx].value
	}
	return values, true
}

// Delete removes every entry sharing name's lowercase form, reporting
// whether anything was removed.
func (h *Header) Delete(name string) bool {
	key := lowerHeaderName(name)
	idxs, ok := h.index[key]
	if !ok || len(idxs) == 0 {
		return false
	}

	remove := make(map[int]bool, len(idxs))
	for _, idx := range idxs {
		remove[idx] = true
	}

	kept := h.entries[:0:0]
	for i, e := range h.entries {
		if !remove[i] {
			kept = append(kept, e)
		}
	}
	h.entries = kept
	h.rebuildIndex()
	return true
}

// rebuildIndex recomputes the lowercase-name index from scratch. Called
// after any mutation that can shift entry positions (Delete).
func (h *Header) rebuildIndex() {
	idx := make(map[string][]int, len(h.index))
	for i, e := range h.entries {
		key := lowerHeaderName(e.name)
		idx[key] = append(idx[key], i)
	}
	h.index = idx
}

// Names returns the distinct original-case header names, in the order each
// was first inserted.
func (h *Header) Names() []string {
	seen := make(map[string]bool, len(h.index))
	names := make([]string, 0, len(h.index))
	for _, e := range h.entries {
		key := lowerHeaderName(e.name)
		if seen[key] {
			continue
		}
		seen[key] = true
		names = append(names, e.name)
	}
	return names
}

// Size returns the number of distinct lowercase header names.
func (h *Header) Size() int {
	return len(h.index)
}

// TotalEntries returns the total number of entries, including duplicates
// under the same logical name.
func (h *Header) TotalEntries() int {
	return len(h.entries)
}

// ToObject returns a mapping from lowercase header name to the same
// comma-joined value Get would return for that name.
func (h *Header) ToObject() map[string]string {
	obj := make(map[string]string, len(h.index))
	for key, idxs := range h.index {
		if len(idxs) == 0 {
			continue
		}
		if len(idxs) == 1 {
			obj[key] = h.entries[idxs[0]].value
			continue
		}
		values := make([]string, len(idxs))
		for i, idx := range idxs {
			values[i] = h.entries[idx].value
		}
		obj[key] = strings.Join(values, ", ")
	}
	return obj
}

// ToBytes serializes every entry as "Name: Value\r\n" in insertion order,
// followed by the terminating blank line.
func (h *Header) ToBytes() []byte {
	var size int
	for _, e := range h.entries {
		size += len(e.name) + len(e.value) + 4 // ": " + "\r\n"
	}
	size += 2 // terminating CRLF

	buf := make([]byte, 0, size)
	for _, e := range h.entries {
		buf = append(buf, e.name...)
		buf = append(buf, ':', ' ')
		buf = append(buf, e.value...)
		buf = append(buf, '\r', '\n')
	}
	buf = append(buf, '\r', '\n')
	return buf
}

// Clone returns a deep copy of h, independent of the original: mutating the
// clone never affects h and vice versa.
func (h *Header) Clone() *Header {
	c := &Header{
		entries: make([]headerEntry, len(h.entries)),
		index:   make(map[string][]int, len(h.index)),
	}
	copy(c.entries, h.entries)
	for key, idxs := range h.index {
		cp := make([]int, len(idxs))
		copy(cp, idxs)
		c.index[key] = cp
	}
	return c
}

// Equals reports whether h and other carry the same entries in the same
// wire order, per spec §8's toBytes/parseHeaders round-trip property.
func (h *Header) Equals(other *Header) bool {
	if other == nil {
		return false
	}
	if len(h.entries) != len(other.entries) {
		return false
	}
	for i, e := range h.entries {
		o := other.entries[i]
		if e.name != o.name || e.value != o.value {
			return false
		}
	}
	return true
}

// Range calls f for every entry in insertion order. f must not mutate h.
func (h *Header) Range(f func(name, value string)) {
	for _, e := range h.entries {
		f(e.name, e.value)
	}
}
