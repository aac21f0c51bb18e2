package badger

import (
	"encoding/binary"
	"fmt"
	"strings"
	"time"

	"github.com/poiesic/insightd/core"
)

// Key prefixes for different data types
const (
	documentPrefix         = "docrec"
	documentOccurredPrefix = "dococcd"
	documentIDSeq          = "docrecseq"
	queueItemPrefix        = "quirec"
	queuePendingPrefix     = "quipend"
	queueActivePrefix      = "quiact"
	queueItemIDSeq         = "quirecseq"
	chunkPrefix            = "chkrec"
	chunkIDSeq             = "chkrecseq"
	insightPrefix          = "insrec"
	insightDocPrefix       = "insdoc"
	insightIDSeq           = "insrecseq"
	projectPrefix          = "projrec"
	projectNamePrefix      = "projname"
	projectIDSeq           = "projrecseq"
)

// makeDocumentKey generates a key for a document by ID.
func makeDocumentKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", documentPrefix, id))
}

// makeDocumentOccurredKey generates a composite key for the occurred-at index.
// Format: prefix:timestamp:id
func makeDocumentOccurredKey(occurredAt time.Time, id core.ID) []byte {
	return makeTimeIDKey(documentOccurredPrefix, occurredAt, id)
}

// makePartialDocumentOccurredKey generates a partial key for occurred-at range queries.
func makePartialDocumentOccurredKey(occurredAt time.Time) []byte {
	return makeTimeKey(documentOccurredPrefix, occurredAt)
}

// makeQueueItemKey generates a key for a queue item by ID.
func makeQueueItemKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", queueItemPrefix, id))
}

// makeQueuePendingKey generates a composite key for the pending-order index.
// Keys sort by creation time, so an ascending iteration visits pending
// items oldest-first. Format: prefix:createdAt:id
func makeQueuePendingKey(createdAt time.Time, id core.ID) []byte {
	return makeTimeIDKey(queuePendingPrefix, createdAt, id)
}

// makeQueueActiveKey generates the per-document non-terminal marker key.
// Present exactly while the document has a pending or processing item.
func makeQueueActiveKey(documentID core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", queueActivePrefix, documentID))
}

// makeChunkKey generates a composite key for a chunk.
// Keys sort by document then index. Format: prefix:documentID:index
func makeChunkKey(documentID core.ID, index int) []byte {
	prefix := chunkPrefix + ":"
	buf := make([]byte, len(prefix)+16)
	offset := copy(buf, prefix)
	// Write in BigEndian order so lexicographic sort works correctly
	binary.BigEndian.PutUint64(buf[offset:], uint64(documentID))
	offset += 8
	binary.BigEndian.PutUint64(buf[offset:], uint64(index))
	return buf
}

// makePartialChunkKey generates a partial key covering a document's chunk set.
func makePartialChunkKey(documentID core.ID) []byte {
	prefix := chunkPrefix + ":"
	buf := make([]byte, len(prefix)+8)
	offset := copy(buf, prefix)
	binary.BigEndian.PutUint64(buf[offset:], uint64(documentID))
	return buf
}

// makeInsightKey generates a key for an insight by ID.
func makeInsightKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", insightPrefix, id))
}

// makeInsightDocKey generates a composite key for the document index.
// Format: prefix:documentID:insightID
func makeInsightDocKey(documentID, insightID core.ID) []byte {
	prefix := insightDocPrefix + ":"
	buf := make([]byte, len(prefix)+16)
	offset := copy(buf, prefix)
	binary.BigEndian.PutUint64(buf[offset:], uint64(documentID))
	offset += 8
	binary.BigEndian.PutUint64(buf[offset:], uint64(insightID))
	return buf
}

// makePartialInsightDocKey generates a partial key covering a document's insights.
func makePartialInsightDocKey(documentID core.ID) []byte {
	prefix := insightDocPrefix + ":"
	buf := make([]byte, len(prefix)+8)
	offset := copy(buf, prefix)
	binary.BigEndian.PutUint64(buf[offset:], uint64(documentID))
	return buf
}

// makeProjectKey generates a key for a project by ID.
func makeProjectKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", projectPrefix, id))
}

// makeProjectNameKey generates a key for project lookup by name.
// Names are case-folded so lookups are case-insensitive.
func makeProjectNameKey(name string) []byte {
	return []byte(projectNamePrefix + ":" + strings.ToLower(name))
}

// makeTimeIDKey builds prefix:timestamp:id with BigEndian encoding so
// lexicographic key order matches chronological order.
func makeTimeIDKey(prefix string, timestamp time.Time, id core.ID) []byte {
	p := prefix + ":"
	buf := make([]byte, len(p)+16)
	offset := copy(buf, p)
	binary.BigEndian.PutUint64(buf[offset:], uint64(timestamp.UnixMicro()))
	offset += 8
	binary.BigEndian.PutUint64(buf[offset:], uint64(id))
	return buf
}

// makeTimeKey builds prefix:timestamp for range scans.
func makeTimeKey(prefix string, timestamp time.Time) []byte {
	p := prefix + ":"
	buf := make([]byte, len(p)+8)
	offset := copy(buf, p)
	binary.BigEndian.PutUint64(buf[offset:], uint64(timestamp.UnixMicro()))
	return buf
}
