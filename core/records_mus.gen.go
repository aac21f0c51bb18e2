// Code generated by musgen-go. DO NOT EDIT.

package core

import (
	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/raw"
	"github.com/mus-format/mus-go/varint"
)

var (
	mapTYQHΔumxUsBr26jNQgIcnAΞΞ   = ord.NewMapSer[string, string](ord.String, ord.String)
	slicefrDZO7Ge3wZOjSΣwpZΣdTwΞΞ = ord.NewSliceSer[string](ord.String)
	slicehLhCoiN3ohBYXdZIRlAuMgΞΞ = ord.NewSliceSer[float32](varint.Float32)
)

var IDMUS = iDMUS{}

type iDMUS struct{}

func (s iDMUS) Marshal(v ID, bs []byte) (n int) {
	return varint.Uint64.Marshal(uint64(v), bs)
}

func (s iDMUS) Unmarshal(bs []byte) (v ID, n int, err error) {
	tmp, n, err := varint.Uint64.Unmarshal(bs)
	if err != nil {
		return
	}
	v = ID(tmp)
	return
}

func (s iDMUS) Size(v ID) (size int) {
	return varint.Uint64.Size(uint64(v))
}

func (s iDMUS) Skip(bs []byte) (n int, err error) {
	return varint.Uint64.Skip(bs)
}

var DocumentCategoryMUS = documentCategoryMUS{}

type documentCategoryMUS struct{}

func (s documentCategoryMUS) Marshal(v DocumentCategory, bs []byte) (n int) {
	return varint.Int.Marshal(int(v), bs)
}

func (s documentCategoryMUS) Unmarshal(bs []byte) (v DocumentCategory, n int, err error) {
	tmp, n, err := varint.Int.Unmarshal(bs)
	if err != nil {
		return
	}
	v = DocumentCategory(tmp)
	return
}

func (s documentCategoryMUS) Size(v DocumentCategory) (size int) {
	return varint.Int.Size(int(v))
}

func (s documentCategoryMUS) Skip(bs []byte) (n int, err error) {
	return varint.Int.Skip(bs)
}

var QueueStatusMUS = queueStatusMUS{}

type queueStatusMUS struct{}

func (s queueStatusMUS) Marshal(v QueueStatus, bs []byte) (n int) {
	return varint.Int.Marshal(int(v), bs)
}

func (s queueStatusMUS) Unmarshal(bs []byte) (v QueueStatus, n int, err error) {
	tmp, n, err := varint.Int.Unmarshal(bs)
	if err != nil {
		return
	}
	v = QueueStatus(tmp)
	return
}

func (s queueStatusMUS) Size(v QueueStatus) (size int) {
	return varint.Int.Size(int(v))
}

func (s queueStatusMUS) Skip(bs []byte) (n int, err error) {
	return varint.Int.Skip(bs)
}

var InsightTypeMUS = insightTypeMUS{}

type insightTypeMUS struct{}

func (s insightTypeMUS) Marshal(v InsightType, bs []byte) (n int) {
	return varint.Int.Marshal(int(v), bs)
}

func (s insightTypeMUS) Unmarshal(bs []byte) (v InsightType, n int, err error) {
	tmp, n, err := varint.Int.Unmarshal(bs)
	if err != nil {
		return
	}
	v = InsightType(tmp)
	return
}

func (s insightTypeMUS) Size(v InsightType) (size int) {
	return varint.Int.Size(int(v))
}

func (s insightTypeMUS) Skip(bs []byte) (n int, err error) {
	return varint.Int.Skip(bs)
}

var SeverityMUS = severityMUS{}

type severityMUS struct{}

func (s severityMUS) Marshal(v Severity, bs []byte) (n int) {
	return varint.Int.Marshal(int(v), bs)
}

func (s severityMUS) Unmarshal(bs []byte) (v Severity, n int, err error) {
	tmp, n, err := varint.Int.Unmarshal(bs)
	if err != nil {
		return
	}
	v = Severity(tmp)
	return
}

func (s severityMUS) Size(v Severity) (size int) {
	return varint.Int.Size(int(v))
}

func (s severityMUS) Skip(bs []byte) (n int, err error) {
	return varint.Int.Skip(bs)
}

var DocumentMUS = documentMUS{}

type documentMUS struct{}

func (s documentMUS) Marshal(v Document, bs []byte) (n int) {
	n = IDMUS.Marshal(v.Id, bs)
	n += ord.String.Marshal(v.Title, bs[n:])
	n += ord.String.Marshal(v.Content, bs[n:])
	n += DocumentCategoryMUS.Marshal(v.Category, bs[n:])
	n += ord.String.Marshal(v.Source, bs[n:])
	n += raw.TimeUnixMicro.Marshal(v.OccurredAt, bs[n:])
	n += raw.TimeUnixMicro.Marshal(v.CreatedAt, bs[n:])
	n += raw.TimeUnixMicro.Marshal(v.UpdatedAt, bs[n:])
	n += IDMUS.Marshal(v.ProjectId, bs[n:])
	n += slicefrDZO7Ge3wZOjSΣwpZΣdTwΞΞ.Marshal(v.Participants, bs[n:])
	return n + mapTYQHΔumxUsBr26jNQgIcnAΞΞ.Marshal(v.Metadata, bs[n:])
}

func (s documentMUS) Unmarshal(bs []byte) (v Document, n int, err error) {
	v.Id, n, err = IDMUS.Unmarshal(bs)
	if err != nil {
		return
	}
	var n1 int
	v.Title, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Content, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Category, n1, err = DocumentCategoryMUS.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Source, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.OccurredAt, n1, err = raw.TimeUnixMicro.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.CreatedAt, n1, err = raw.TimeUnixMicro.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.UpdatedAt, n1, err = raw.TimeUnixMicro.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.ProjectId, n1, err = IDMUS.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Participants, n1, err = slicefrDZO7Ge3wZOjSΣwpZΣdTwΞΞ.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Metadata, n1, err = mapTYQHΔumxUsBr26jNQgIcnAΞΞ.Unmarshal(bs[n:])
	n += n1
	return
}

func (s documentMUS) Size(v Document) (size int) {
	size = IDMUS.Size(v.Id)
	size += ord.String.Size(v.Title)
	size += ord.String.Size(v.Content)
	size += DocumentCategoryMUS.Size(v.Category)
	size += ord.String.Size(v.Source)
	size += raw.TimeUnixMicro.Size(v.OccurredAt)
	size += raw.TimeUnixMicro.Size(v.CreatedAt)
	size += raw.TimeUnixMicro.Size(v.UpdatedAt)
	size += IDMUS.Size(v.ProjectId)
	size += slicefrDZO7Ge3wZOjSΣwpZΣdTwΞΞ.Size(v.Participants)
	return size + mapTYQHΔumxUsBr26jNQgIcnAΞΞ.Size(v.Metadata)
}

func (s documentMUS) Skip(bs []byte) (n int, err error) {
	n, err = IDMUS.Skip(bs)
	if err != nil {
		return
	}
	var n1 int
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = DocumentCategoryMUS.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = raw.TimeUnixMicro.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = raw.TimeUnixMicro.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = raw.TimeUnixMicro.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = IDMUS.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = slicefrDZO7Ge3wZOjSΣwpZΣdTwΞΞ.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = mapTYQHΔumxUsBr26jNQgIcnAΞΞ.Skip(bs[n:])
	n += n1
	return
}

var QueueItemMUS = queueItemMUS{}

type queueItemMUS struct{}

func (s queueItemMUS) Marshal(v QueueItem, bs []byte) (n int) {
	n = IDMUS.Marshal(v.Id, bs)
	n += IDMUS.Marshal(v.DocumentId, bs[n:])
	n += ord.String.Marshal(v.Title, bs[n:])
	n += QueueStatusMUS.Marshal(v.Status, bs[n:])
	n += varint.Int.Marshal(v.RetryCount, bs[n:])
	n += ord.String.Marshal(v.ErrorMessage, bs[n:])
	n += varint.Int.Marshal(v.InsightCount, bs[n:])
	n += raw.TimeUnixMicro.Marshal(v.CreatedAt, bs[n:])
	n += raw.TimeUnixMicro.Marshal(v.StartedAt, bs[n:])
	n += raw.TimeUnixMicro.Marshal(v.CompletedAt, bs[n:])
	return n + mapTYQHΔumxUsBr26jNQgIcnAΞΞ.Marshal(v.Metadata, bs[n:])
}

func (s queueItemMUS) Unmarshal(bs []byte) (v QueueItem, n int, err error) {
	v.Id, n, err = IDMUS.Unmarshal(bs)
	if err != nil {
		return
	}
	var n1 int
	v.DocumentId, n1, err = IDMUS.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Title, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Status, n1, err = QueueStatusMUS.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.RetryCount, n1, err = varint.Int.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.ErrorMessage, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.InsightCount, n1, err = varint.Int.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.CreatedAt, n1, err = raw.TimeUnixMicro.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.StartedAt, n1, err = raw.TimeUnixMicro.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.CompletedAt, n1, err = raw.TimeUnixMicro.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Metadata, n1, err = mapTYQHΔumxUsBr26jNQgIcnAΞΞ.Unmarshal(bs[n:])
	n += n1
	return
}

func (s queueItemMUS) Size(v QueueItem) (size int) {
	size = IDMUS.Size(v.Id)
	size += IDMUS.Size(v.DocumentId)
	size += ord.String.Size(v.Title)
	size += QueueStatusMUS.Size(v.Status)
	size += varint.Int.Size(v.RetryCount)
	size += ord.String.Size(v.ErrorMessage)
	size += varint.Int.Size(v.InsightCount)
	size += raw.TimeUnixMicro.Size(v.CreatedAt)
	size += raw.TimeUnixMicro.Size(v.StartedAt)
	size += raw.TimeUnixMicro.Size(v.CompletedAt)
	return size + mapTYQHΔumxUsBr26jNQgIcnAΞΞ.Size(v.Metadata)
}

func (s queueItemMUS) Skip(bs []byte) (n int, err error) {
	n, err = IDMUS.Skip(bs)
	if err != nil {
		return
	}
	var n1 int
	n1, err = IDMUS.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = QueueStatusMUS.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = varint.Int.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = varint.Int.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = raw.TimeUnixMicro.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = raw.TimeUnixMicro.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = raw.TimeUnixMicro.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = mapTYQHΔumxUsBr26jNQgIcnAΞΞ.Skip(bs[n:])
	n += n1
	return
}

var ProjectMUS = projectMUS{}

type projectMUS struct{}

func (s projectMUS) Marshal(v Project, bs []byte) (n int) {
	n = IDMUS.Marshal(v.Id, bs)
	n += ord.String.Marshal(v.Name, bs[n:])
	n += slicefrDZO7Ge3wZOjSΣwpZΣdTwΞΞ.Marshal(v.Aliases, bs[n:])
	n += slicefrDZO7Ge3wZOjSΣwpZΣdTwΞΞ.Marshal(v.Keywords, bs[n:])
	n += ord.String.Marshal(v.Status, bs[n:])
	n += raw.TimeUnixMicro.Marshal(v.InsertedAt, bs[n:])
	return n + raw.TimeUnixMicro.Marshal(v.UpdatedAt, bs[n:])
}

func (s projectMUS) Unmarshal(bs []byte) (v Project, n int, err error) {
	v.Id, n, err = IDMUS.Unmarshal(bs)
	if err != nil {
		return
	}
	var n1 int
	v.Name, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Aliases, n1, err = slicefrDZO7Ge3wZOjSΣwpZΣdTwΞΞ.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Keywords, n1, err = slicefrDZO7Ge3wZOjSΣwpZΣdTwΞΞ.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Status, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.InsertedAt, n1, err = raw.TimeUnixMicro.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.UpdatedAt, n1, err = raw.TimeUnixMicro.Unmarshal(bs[n:])
	n += n1
	return
}

func (s projectMUS) Size(v Project) (size int) {
	size = IDMUS.Size(v.Id)
	size += ord.String.Size(v.Name)
	size += slicefrDZO7Ge3wZOjSΣwpZΣdTwΞΞ.Size(v.Aliases)
	size += slicefrDZO7Ge3wZOjSΣwpZΣdTwΞΞ.Size(v.Keywords)
	size += ord.String.Size(v.Status)
	size += raw.TimeUnixMicro.Size(v.InsertedAt)
	return size + raw.TimeUnixMicro.Size(v.UpdatedAt)
}

func (s projectMUS) Skip(bs []byte) (n int, err error) {
	n, err = IDMUS.Skip(bs)
	if err != nil {
		return
	}
	var n1 int
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = slicefrDZO7Ge3wZOjSΣwpZΣdTwΞΞ.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = slicefrDZO7Ge3wZOjSΣwpZΣdTwΞΞ.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = raw.TimeUnixMicro.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = raw.TimeUnixMicro.Skip(bs[n:])
	n += n1
	return
}

var ChunkMUS = chunkMUS{}

type chunkMUS struct{}

func (s chunkMUS) Marshal(v Chunk, bs []byte) (n int) {
	n = IDMUS.Marshal(v.Id, bs)
	n += IDMUS.Marshal(v.DocumentId, bs[n:])
	n += varint.Int.Marshal(v.Index, bs[n:])
	n += ord.String.Marshal(v.Content, bs[n:])
	n += ord.String.Marshal(v.Speaker, bs[n:])
	n += varint.Float64.Marshal(v.StartSec, bs[n:])
	n += varint.Float64.Marshal(v.EndSec, bs[n:])
	n += slicehLhCoiN3ohBYXdZIRlAuMgΞΞ.Marshal(v.Vector, bs[n:])
	return n + raw.TimeUnixMicro.Marshal(v.InsertedAt, bs[n:])
}

func (s chunkMUS) Unmarshal(bs []byte) (v Chunk, n int, err error) {
	v.Id, n, err = IDMUS.Unmarshal(bs)
	if err != nil {
		return
	}
	var n1 int
	v.DocumentId, n1, err = IDMUS.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Index, n1, err = varint.Int.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Content, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Speaker, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.StartSec, n1, err = varint.Float64.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.EndSec, n1, err = varint.Float64.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Vector, n1, err = slicehLhCoiN3ohBYXdZIRlAuMgΞΞ.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.InsertedAt, n1, err = raw.TimeUnixMicro.Unmarshal(bs[n:])
	n += n1
	return
}

func (s chunkMUS) Size(v Chunk) (size int) {
	size = IDMUS.Size(v.Id)
	size += IDMUS.Size(v.DocumentId)
	size += varint.Int.Size(v.Index)
	size += ord.String.Size(v.Content)
	size += ord.String.Size(v.Speaker)
	size += varint.Float64.Size(v.StartSec)
	size += varint.Float64.Size(v.EndSec)
	size += slicehLhCoiN3ohBYXdZIRlAuMgΞΞ.Size(v.Vector)
	return size + raw.TimeUnixMicro.Size(v.InsertedAt)
}

func (s chunkMUS) Skip(bs []byte) (n int, err error) {
	n, err = IDMUS.Skip(bs)
	if err != nil {
		return
	}
	var n1 int
	n1, err = IDMUS.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = varint.Int.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = varint.Float64.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = varint.Float64.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = slicehLhCoiN3ohBYXdZIRlAuMgΞΞ.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = raw.TimeUnixMicro.Skip(bs[n:])
	n += n1
	return
}

var InsightMUS = insightMUS{}

type insightMUS struct{}

func (s insightMUS) Marshal(v Insight, bs []byte) (n int) {
	n = IDMUS.Marshal(v.Id, bs)
	n += IDMUS.Marshal(v.DocumentId, bs[n:])
	n += IDMUS.Marshal(v.ProjectId, bs[n:])
	n += InsightTypeMUS.Marshal(v.Type, bs[n:])
	n += ord.String.Marshal(v.Title, bs[n:])
	n += ord.String.Marshal(v.Description, bs[n:])
	n += SeverityMUS.Marshal(v.Severity, bs[n:])
	n += varint.Float32.Marshal(v.Confidence, bs[n:])
	n += ord.String.Marshal(v.Assignee, bs[n:])
	n += raw.TimeUnixMicro.Marshal(v.DueDate, bs[n:])
	n += varint.Float64.Marshal(v.FinancialImpact, bs[n:])
	n += ord.Bool.Marshal(v.Resolved, bs[n:])
	n += raw.TimeUnixMicro.Marshal(v.DocumentDate, bs[n:])
	n += ord.Bool.Marshal(v.DateFallback, bs[n:])
	n += raw.TimeUnixMicro.Marshal(v.CreatedAt, bs[n:])
	return n + mapTYQHΔumxUsBr26jNQgIcnAΞΞ.Marshal(v.Metadata, bs[n:])
}

func (s insightMUS) Unmarshal(bs []byte) (v Insight, n int, err error) {
	v.Id, n, err = IDMUS.Unmarshal(bs)
	if err != nil {
		return
	}
	var n1 int
	v.DocumentId, n1, err = IDMUS.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.ProjectId, n1, err = IDMUS.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Type, n1, err = InsightTypeMUS.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Title, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Description, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Severity, n1, err = SeverityMUS.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Confidence, n1, err = varint.Float32.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Assignee, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.DueDate, n1, err = raw.TimeUnixMicro.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.FinancialImpact, n1, err = varint.Float64.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Resolved, n1, err = ord.Bool.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.DocumentDate, n1, err = raw.TimeUnixMicro.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.DateFallback, n1, err = ord.Bool.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.CreatedAt, n1, err = raw.TimeUnixMicro.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Metadata, n1, err = mapTYQHΔumxUsBr26jNQgIcnAΞΞ.Unmarshal(bs[n:])
	n += n1
	return
}

func (s insightMUS) Size(v Insight) (size int) {
	size = IDMUS.Size(v.Id)
	size += IDMUS.Size(v.DocumentId)
	size += IDMUS.Size(v.ProjectId)
	size += InsightTypeMUS.Size(v.Type)
	size += ord.String.Size(v.Title)
	size += ord.String.Size(v.Description)
	size += SeverityMUS.Size(v.Severity)
	size += varint.Float32.Size(v.Confidence)
	size += ord.String.Size(v.Assignee)
	size += raw.TimeUnixMicro.Size(v.DueDate)
	size += varint.Float64.Size(v.FinancialImpact)
	size += ord.Bool.Size(v.Resolved)
	size += raw.TimeUnixMicro.Size(v.DocumentDate)
	size += ord.Bool.Size(v.DateFallback)
	size += raw.TimeUnixMicro.Size(v.CreatedAt)
	return size + mapTYQHΔumxUsBr26jNQgIcnAΞΞ.Size(v.Metadata)
}

func (s insightMUS) Skip(bs []byte) (n int, err error) {
	n, err = IDMUS.Skip(bs)
	if err != nil {
		return
	}
	var n1 int
	n1, err = IDMUS.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = IDMUS.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = InsightTypeMUS.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = SeverityMUS.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = varint.Float32.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = raw.TimeUnixMicro.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = varint.Float64.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = ord.Bool.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = raw.TimeUnixMicro.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = ord.Bool.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = raw.TimeUnixMicro.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = mapTYQHΔumxUsBr26jNQgIcnAΞΞ.Skip(bs[n:])
	n += n1
	return
}
