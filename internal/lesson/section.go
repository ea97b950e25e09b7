// Package lesson decomposes AI-generated lesson blobs into typed sections
// and serializes edited sections back into the canonical text form.
package lesson

import (
	"fmt"

	"github.com/gosimple/slug"
	"github.com/jinzhu/copier"
)

// Kind classifies a section inside a lesson document.
type Kind string

const (
	KindObjectives   Kind = "objectives"
	KindMaterials    Kind = "materials"
	KindIntroduction Kind = "introduction"
	KindContent      Kind = "content"
	KindActivities   Kind = "activities"
	KindAssessment   Kind = "assessment"
	KindHomework     Kind = "homework"
	KindResources    Kind = "resources"
	KindOther        Kind = "other"
)

// Section is one named, orderable unit of a lesson document.
//
// Content never includes the section's own title line. Duration is in
// minutes; 0 means unset.
type Section struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Content  string `json:"content"`
	Duration int    `json:"duration,omitempty"`
	Kind     Kind   `json:"kind"`
}

// assignIDs gives every section a stable, unique ID derived from its title.
// Duplicate titles within one parse are disambiguated by position.
func assignIDs(sections []*Section) {
	seen := make(map[string]int)
	for _, section := range sections {
		id := slug.Make(section.Title)
		if id == "" {
			id = string(section.Kind)
		}
		seen[id]++
		if n := seen[id]; n > 1 {
			id = fmt.Sprintf("%s-%d", id, n)
		}
		section.ID = id
	}
}

// CloneSections deep-copies a section list so edits never leak into the
// parsed original.
func CloneSections(sections []*Section) []*Section {
	var result []*Section
	if err := copier.CopyWithOption(&result, &sections, copier.Option{DeepCopy: true}); err != nil {
		// Sections contain only value fields; a copy failure is a programming error.
		panic(err)
	}
	return result
}
