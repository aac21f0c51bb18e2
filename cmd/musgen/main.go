package main

import (
	"os"
	"reflect"
	"strings"

	musgen "github.com/mus-format/musgen-go/mus"
	genops "github.com/mus-format/musgen-go/options/generate"
	structops "github.com/mus-format/musgen-go/options/struct"
	typeops "github.com/mus-format/musgen-go/options/type"
	"github.com/poiesic/insightd/core"
)

func main() {
	cwd, err := os.Getwd()
	if err != nil {
		panic(err)
	}
	// If we're in the core subpackage, cd up to project root
	if strings.HasSuffix(cwd, "core") {
		if err := os.Chdir(".."); err != nil {
			panic(err)
		}
	}
	g, err := musgen.NewCodeGenerator(
		genops.WithPkgPath("github.com/poiesic/insightd/core"),
	)
	if err != nil {
		panic(err)
	}

	g.AddDefinedType(reflect.TypeFor[core.ID]())
	g.AddDefinedType(reflect.TypeFor[core.DocumentCategory]())
	g.AddDefinedType(reflect.TypeFor[core.QueueStatus]())
	g.AddDefinedType(reflect.TypeFor[core.InsightType]())
	g.AddDefinedType(reflect.TypeFor[core.Severity]())

	// Unix micro timestamps
	opts := typeops.WithTimeUnit(typeops.Micro)
	err = g.AddStruct(reflect.TypeFor[core.Document](),
		structops.WithField(),     // Id
		structops.WithField(),     // Title
		structops.WithField(),     // Content
		structops.WithField(),     // Category
		structops.WithField(),     // Source
		structops.WithField(opts), // OccurredAt
		structops.WithField(opts), // CreatedAt
		structops.WithField(opts), // UpdatedAt
		structops.WithField(),     // ProjectId
		structops.WithField(),     // Participants
		structops.WithField())     // Metadata
	if err != nil {
		panic(err)
	}

	err = g.AddStruct(reflect.TypeFor[core.QueueItem](),
		structops.WithField(),     // Id
		structops.WithField(),     // DocumentId
		structops.WithField(),     // Title
		structops.WithField(),     // Status
		structops.WithField(),     // RetryCount
		structops.WithField(),     // ErrorMessage
		structops.WithField(),     // InsightCount
		structops.WithField(opts), // CreatedAt
		structops.WithField(opts), // StartedAt
		structops.WithField(opts), // CompletedAt
		structops.WithField())     // Metadata
	if err != nil {
		panic(err)
	}

	err = g.AddStruct(reflect.TypeFor[core.Project](),
		structops.WithField(),     // Id
		structops.WithField(),     // Name
		structops.WithField(),     // Aliases
		structops.WithField(),     // Keywords
		structops.WithField(),     // Status
		structops.WithField(opts), // InsertedAt
		structops.WithField(opts)) // UpdatedAt
	if err != nil {
		panic(err)
	}

	err = g.AddStruct(reflect.TypeFor[core.Chunk](),
		structops.WithField(),     // Id
		structops.WithField(),     // DocumentId
		structops.WithField(),     // Index
		structops.WithField(),     // Content
		structops.WithField(),     // Speaker
		structops.WithField(),     // StartSec
		structops.WithField(),     // EndSec
		structops.WithField(),     // Vector
		structops.WithField(opts)) // InsertedAt
	if err != nil {
		panic(err)
	}

	err = g.AddStruct(reflect.TypeFor[core.Insight](),
		structops.WithField(),     // Id
		structops.WithField(),     // DocumentId
		structops.WithField(),     // ProjectId
		structops.WithField(),     // Type
		structops.WithField(),     // Title
		structops.WithField(),     // Description
		structops.WithField(),     // Severity
		structops.WithField(),     // Confidence
		structops.WithField(),     // Assignee
		structops.WithField(opts), // DueDate
		structops.WithField(),     // FinancialImpact
		structops.WithField(),     // Resolved
		structops.WithField(opts), // DocumentDate
		structops.WithField(),     // DateFallback
		structops.WithField(opts), // CreatedAt
		structops.WithField())     // Metadata
	if err != nil {
		panic(err)
	}

	bs, err := g.Generate()
	if err != nil {
		panic(err)
	}

	err = os.WriteFile("./core/records_mus.gen.go", bs, 0644)
	if err != nil {
		panic(err)
	}
}
