package switcher

import "encoding/binary"

// Layout of the window-server event record that makes a window key.
const (
	keyRecordSize = 0xf8

	keyRecordOffSize     = 0x04
	keyRecordOffFlavor   = 0x08
	keyRecordOffMarker   = 0x20
	keyRecordMarkerLen   = 0x10
	keyRecordOffType     = 0x3a
	keyRecordOffWindowID = 0x3c

	keyRecordType = 0x10
)

// KeyWindowFlavor selects the phase of the synthesized key-window event.
type KeyWindowFlavor byte

const (
	FlavorDown KeyWindowFlavor = 0x01
	FlavorUp   KeyWindowFlavor = 0x02
)

// KeyWindowRecord is the opaque event record posted to a process to make
// one of its windows key.
type KeyWindowRecord [keyRecordSize]byte

// NewKeyWindowRecord returns a record for windowID with the down flavor set.
func NewKeyWindowRecord(windowID uint32) *KeyWindowRecord {
	var r KeyWindowRecord
	r[keyRecordOffSize] = keyRecordSize
	r[keyRecordOffType] = keyRecordType
	binary.NativeEndian.PutUint32(r[keyRecordOffWindowID:], windowID)
	for i := keyRecordOffMarker; i < keyRecordOffMarker+keyRecordMarkerLen; i++ {
		r[i] = 0xff
	}
	r.SetFlavor(FlavorDown)
	return &r
}

// SetFlavor switches the record between its down and up phases.
func (r *KeyWindowRecord) SetFlavor(f KeyWindowFlavor) {
	r[keyRecordOffFlavor] = byte(f)
}

// WindowID returns the window id encoded in the record.
func (r *KeyWindowRecord) WindowID() uint32 {
	return binary.NativeEndian.Uint32(r[keyRecordOffWindowID:])
}

// Bytes returns the record as a slice backed by r.
func (r *KeyWindowRecord) Bytes() []byte {
	return r[:]
}
