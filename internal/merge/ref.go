package merge

import (
	"fmt"
	"hash/fnv"
)

// RefKind distinguishes the two tab identity spaces.
type RefKind int

const (
	// RefLive identifies a currently-open tab by its registry ID.
	RefLive RefKind = iota
	// RefGhost identifies a closed-but-bookmarked tab by a URL hash.
	RefGhost
)

// TabRef is the identity of a unified tab. Live tabs and ghost entries live
// in separate identity spaces, so a collision between the two is impossible
// by construction. TabRef is comparable and safe to use as a map key.
type TabRef struct {
	Kind RefKind
	Live int64  // set when Kind == RefLive
	Hash string // set when Kind == RefGhost
}

// LiveRef builds the identity of an open tab.
func LiveRef(id int64) TabRef {
	return TabRef{Kind: RefLive, Live: id}
}

// GhostRef builds the identity of a closed bookmark from its URL. The same
// URL always hashes to the same ref, so selection tracking and render keys
// stay stable across recomputations.
func GhostRef(url string) TabRef {
	h := fnv.New64a()
	h.Write([]byte(url))
	return TabRef{Kind: RefGhost, Hash: fmt.Sprintf("%016x", h.Sum64())}
}

// IsLive reports whether the ref points at an open tab.
func (r TabRef) IsLive() bool {
	return r.Kind == RefLive
}

// Key returns a stable string form usable as a render key.
func (r TabRef) Key() string {
	if r.Kind == RefLive {
		return fmt.Sprintf("live:%d", r.Live)
	}
	return "ghost:" + r.Hash
}
