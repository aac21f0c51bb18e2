// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package storage

import (
	"github.com/poiesic/insightd/core"
)

// MarshalID serializes an ID to bytes.
func MarshalID(id core.ID) []byte {
	buf := make([]byte, core.IDMUS.Size(id))
	core.IDMUS.Marshal(id, buf)
	return buf
}

// UnmarshalID deserializes an ID from bytes.
func UnmarshalID(data []byte) (core.ID, error) {
	var id core.ID
	id, _, err := core.IDMUS.Unmarshal(data)
	return id, err
}

// MarshalDocument serializes a Document to bytes.
func MarshalDocument(doc *core.Document) []byte {
	buf := make([]byte, core.DocumentMUS.Size(*doc))
	core.DocumentMUS.Marshal(*doc, buf)
	return buf
}

// UnmarshalDocument deserializes a Document from bytes.
func UnmarshalDocument(data []byte) (*core.Document, error) {
	doc, _, err := core.DocumentMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

// MarshalQueueItem serializes a QueueItem to bytes.
func MarshalQueueItem(item *core.QueueItem) []byte {
	buf := make([]byte, core.QueueItemMUS.Size(*item))
	core.QueueItemMUS.Marshal(*item, buf)
	return buf
}

// UnmarshalQueueItem deserializes a QueueItem from bytes.
func UnmarshalQueueItem(data []byte) (*core.QueueItem, error) {
	item, _, err := core.QueueItemMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// MarshalChunk serializes a Chunk to bytes.
func MarshalChunk(chunk *core.Chunk) []byte {
	buf := make([]byte, core.ChunkMUS.Size(*chunk))
	core.ChunkMUS.Marshal(*chunk, buf)
	return buf
}

// UnmarshalChunk deserializes a Chunk from bytes.
func UnmarshalChunk(data []byte) (*core.Chunk, error) {
	chunk, _, err := core.ChunkMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &chunk, nil
}

// MarshalInsight serializes an Insight to bytes.
func MarshalInsight(insight *core.Insight) []byte {
	buf := make([]byte, core.InsightMUS.Size(*insight))
	core.InsightMUS.Marshal(*insight, buf)
	return buf
}

// UnmarshalInsight deserializes an Insight from bytes.
func UnmarshalInsight(data []byte) (*core.Insight, error) {
	insight, _, err := core.InsightMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &insight, nil
}

// MarshalProject serializes a Project to bytes.
func MarshalProject(project *core.Project) []byte {
	buf := make([]byte, core.ProjectMUS.Size(*project))
	core.ProjectMUS.Marshal(*project, buf)
	return buf
}

// UnmarshalProject deserializes a Project from bytes.
func UnmarshalProject(data []byte) (*core.Project, error) {
	project, _, err := core.ProjectMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &project, nil
}
