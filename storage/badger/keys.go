package badger

import (
	"encoding/binary"

	"github.com/poiesic/hanap/core"
)

// Key prefixes for different data types
const (
	recordPrefix      = "rec:"
	fingerprintPrefix = "recfp:"
	recordIDSeq       = "recseq"
)

// makeRecordKey generates a key for a burial record by ID.
// Format: prefix:id, with the ID big-endian so records iterate in ID order.
func makeRecordKey(id core.ID) []byte {
	return appendID([]byte(recordPrefix), id)
}

// makeFingerprintKey generates a key for the content fingerprint index.
// Format: prefix:fingerprint
func makeFingerprintKey(fingerprint core.ID) []byte {
	return appendID([]byte(fingerprintPrefix), fingerprint)
}

func appendID(prefix []byte, id core.ID) []byte {
	buf := make([]byte, len(prefix)+8)
	offset := copy(buf, prefix)
	binary.BigEndian.PutUint64(buf[offset:], uint64(id))
	return buf
}
