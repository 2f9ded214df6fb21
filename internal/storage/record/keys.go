package record

import (
	"encoding/binary"
	"fmt"
)

const (
	metaPrefix = "meta/"
	runPrefix  = "run/"
)

func metaKey(runID string) []byte {
	return []byte(metaPrefix + runID)
}

func framePrefix(runID string) []byte {
	return []byte(runPrefix + runID + "/")
}

func frameKey(prefix []byte, version uint64) []byte {
	key := make([]byte, len(prefix)+8)
	copy(key, prefix)
	binary.BigEndian.PutUint64(key[len(prefix):], version)
	return key
}

func frameVersion(prefix, key []byte) (uint64, error) {
	if len(key) != len(prefix)+8 {
		return 0, fmt.Errorf("record: malformed frame key %q", key)
	}
	return binary.BigEndian.Uint64(key[len(prefix):]), nil
}
