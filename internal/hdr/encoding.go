package hdr

import (
	"encoding/binary"
	"fmt"
)

// MetadataSize is the size of the packed metadata record in bytes.
// MasterSequence(8) + ExposureValue(4) + ExposureIndex(1) + ExposureCount(1) + Profile(1) = 15
const MetadataSize = 15

// AppendBinary appends the packed little-endian record to b.
func (m Metadata) AppendBinary(b []byte) ([]byte, error) {
	b = binary.LittleEndian.AppendUint64(b, m.MasterSequence)
	b = binary.LittleEndian.AppendUint32(b, m.ExposureValue)
	return append(b, m.ExposureIndex, m.ExposureCount, byte(m.Profile)), nil
}

// MarshalBinary returns the packed record: no padding, fields in declaration order.
func (m Metadata) MarshalBinary() ([]byte, error) {
	return m.AppendBinary(make([]byte, 0, MetadataSize))
}

// UnmarshalBinary decodes a record produced by MarshalBinary.
func (m *Metadata) UnmarshalBinary(b []byte) error {
	if len(b) != MetadataSize {
		return fmt.Errorf("metadata record: got %d bytes, want %d", len(b), MetadataSize)
	}
	profile := ProfileID(b[14])
	if !profile.Valid() {
		return fmt.Errorf("metadata record: invalid profile %d", profile)
	}
	m.MasterSequence = binary.LittleEndian.Uint64(b[0:8])
	m.ExposureValue = binary.LittleEndian.Uint32(b[8:12])
	m.ExposureIndex = b[12]
	m.ExposureCount = b[13]
	m.Profile = profile
	return nil
}
