// Package domain contains the daemon's configuration model and trust
// classification logic.
package domain

import (
	"net/netip"
	"sort"
	"strings"
)

// AddressSet is an immutable, deduplicated set of IP addresses. The zero
// value is the empty set; an empty set and an absent set are the same thing
// everywhere in this package.
type AddressSet struct {
	addrs map[netip.Addr]struct{}
}

// NewAddressSet builds a set from the given addresses, collapsing duplicates.
// Invalid (zero) addresses are ignored.
func NewAddressSet(addrs ...netip.Addr) AddressSet {
	if len(addrs) == 0 {
		return AddressSet{}
	}
	m := make(map[netip.Addr]struct{}, len(addrs))
	for _, a := range addrs {
		if a.IsValid() {
			m[a] = struct{}{}
		}
	}
	if len(m) == 0 {
		return AddressSet{}
	}
	return AddressSet{addrs: m}
}

// Contains reports whether the set holds the given address.
func (s AddressSet) Contains(a netip.Addr) bool {
	_, ok := s.addrs[a]
	return ok
}

// Len returns the number of addresses in the set.
func (s AddressSet) Len() int {
	return len(s.addrs)
}

// IsEmpty reports whether the set holds no addresses.
func (s AddressSet) IsEmpty() bool {
	return len(s.addrs) == 0
}

// Difference returns a new set holding the addresses of s that appear in
// none of the given sets. An empty result is the zero AddressSet.
func (s AddressSet) Difference(others ...AddressSet) AddressSet {
	var remaining []netip.Addr
	for a := range s.addrs {
		excluded := false
		for _, o := range others {
			if o.Contains(a) {
				excluded = true
				break
			}
		}
		if !excluded {
			remaining = append(remaining, a)
		}
	}
	return NewAddressSet(remaining...)
}

// Equal reports whether both sets hold exactly the same addresses.
func (s AddressSet) Equal(other AddressSet) bool {
	if len(s.addrs) != len(other.addrs) {
		return false
	}
	for a := range s.addrs {
		if !other.Contains(a) {
			return false
		}
	}
	return true
}

// Addrs returns the addresses in stable sorted order.
func (s AddressSet) Addrs() []netip.Addr {
	out := make([]netip.Addr, 0, len(s.addrs))
	for a := range s.addrs {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Less(out[j]) })
	return out
}

// Strings returns the addresses as sorted strings, for logging and output.
func (s AddressSet) Strings() []string {
	addrs := s.Addrs()
	out := make([]string, len(addrs))
	for i, a := range addrs {
		out[i] = a.String()
	}
	return out
}

// String renders the set as a comma-separated list.
func (s AddressSet) String() string {
	return strings.Join(s.Strings(), ",")
}
