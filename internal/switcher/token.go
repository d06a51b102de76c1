package switcher

import "encoding/binary"

// Remote token layout accepted by _AXUIElementCreateWithRemoteToken.
const (
	tokenSize      = 20
	tokenOffPID    = 0x00
	tokenOffZero   = 0x04
	tokenOffMagic  = 0x08
	tokenOffIndex  = 0x0c
	tokenMagicCoco = 0x636f636f // "coco"
)

// probeToken addresses the accessibility elements of one process by index.
type probeToken [tokenSize]byte

func newProbeToken(pid int) *probeToken {
	var t probeToken
	binary.NativeEndian.PutUint32(t[tokenOffPID:], uint32(int32(pid)))
	binary.NativeEndian.PutUint32(t[tokenOffZero:], 0)
	binary.NativeEndian.PutUint32(t[tokenOffMagic:], tokenMagicCoco)
	return &t
}

// at returns the token bytes for the element at index.
func (t *probeToken) at(index uint64) []byte {
	binary.NativeEndian.PutUint64(t[tokenOffIndex:], index)
	return t[:]
}
