package badger

import (
	"encoding/binary"
	"fmt"

	"github.com/veritell/matchbook/core"
)

// Key prefixes for different data types
const (
	entityRecordPrefix = "entrec"
	entityNamePrefix   = "entnam"
	entityAltPrefix    = "entalt"
	entityTokenPrefix  = "enttok"
)

// keySeparator terminates the variable-length string component of an index
// key. NUL never appears in normalized names so prefix scans on a name
// cannot bleed into longer names that merely extend it.
const keySeparator = byte(0x00)

// makeEntityRecordKey generates a key for an entity record by ID.
func makeEntityRecordKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", entityRecordPrefix, id))
}

// makeNameIndexKey generates a composite key for a name index.
// Format: prefix:name\x00id
func makeNameIndexKey(prefix, name string, id core.ID) []byte {
	head := prefix + ":"
	buf := make([]byte, len(head)+len(name)+1+8)
	offset := copy(buf, head)
	offset += copy(buf[offset:], name)
	buf[offset] = keySeparator
	offset++
	binary.BigEndian.PutUint64(buf[offset:], uint64(id))
	return buf
}

// makePartialNameIndexKey generates a partial key for prefix scans over a
// name index. Format: prefix:name
func makePartialNameIndexKey(prefix, name string) []byte {
	return []byte(prefix + ":" + name)
}

// parseNameIndexKey extracts the indexed name and entity ID from a name
// index key produced by makeNameIndexKey.
func parseNameIndexKey(prefix string, key []byte) (string, core.ID, bool) {
	head := len(prefix) + 1
	// head + separator + 8-byte ID is the minimum well-formed key
	if len(key) < head+9 {
		return "", 0, false
	}
	body := key[head : len(key)-8]
	if body[len(body)-1] != keySeparator {
		return "", 0, false
	}
	name := string(body[:len(body)-1])
	id := core.ID(binary.BigEndian.Uint64(key[len(key)-8:]))
	return name, id, true
}
