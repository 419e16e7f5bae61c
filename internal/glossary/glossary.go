// Package glossary maps game titles to Cloud Translation glossary resources.
package glossary

import (
	"fmt"
	"sort"
	"strings"
)

// Entry is one glossary: the display name shown to users, the glossary ID
// registered with Cloud Translation and the CSV it was built from.
type Entry struct {
	Name      string `mapstructure:"name"`
	ID        string `mapstructure:"id"`
	SourceURI string `mapstructure:"source_uri"`
}

// Catalog is an immutable set of glossary entries.
type Catalog struct {
	entries []Entry
	byName  map[string]int
	byID    map[string]int
}

// NewCatalog validates entries: every ID is required and both names and IDs
// must be unique.
func NewCatalog(entries []Entry) (Catalog, error) {
	c := Catalog{
		entries: make([]Entry, 0, len(entries)),
		byName:  make(map[string]int, len(entries)),
		byID:    make(map[string]int, len(entries)),
	}
	for _, e := range entries {
		e.Name = strings.TrimSpace(e.Name)
		e.ID = strings.TrimSpace(e.ID)
		if e.ID == "" {
			return Catalog{}, fmt.Errorf("glossary %q has no id", e.Name)
		}
		if e.Name == "" {
			e.Name = e.ID
		}
		if _, dup := c.byID[e.ID]; dup {
			return Catalog{}, fmt.Errorf("duplicate glossary id %q", e.ID)
		}
		if _, dup := c.byName[e.Name]; dup {
			return Catalog{}, fmt.Errorf("duplicate glossary name %q", e.Name)
		}
		c.byID[e.ID] = len(c.entries)
		c.byName[e.Name] = len(c.entries)
		c.entries = append(c.entries, e)
	}
	return c, nil
}

// Default returns the built-in catalog of game glossaries.
func Default() Catalog {
	c, err := NewCatalog(defaultEntries)
	if err != nil {
		panic(err)
	}
	return c
}

var defaultEntries = []Entry{
	{Name: "全部/전체", ID: "glossary_all", SourceURI: "gs://longtukorea/glossary/glossary_all_20230801.csv"},
	{Name: "루나", ID: "glossary_luna", SourceURI: "gs://longtukorea/glossary/루나 용어집.csv"},
	{Name: "마이티아레나", ID: "glossary_mighty_arena", SourceURI: "gs://longtukorea/glossary/마이티아레나_용어집.csv"},
	{Name: "보스레이브", ID: "glossary_bosslave", SourceURI: "gs://longtukorea/glossary/보스레이브_용어_0407.csv"},
	{Name: "블라스트M", ID: "glossary_blast_m", SourceURI: "gs://longtukorea/glossary/블라스트M_용어_0528.csv"},
	{Name: "블레스", ID: "glossary_bless", SourceURI: "gs://longtukorea/glossary/블레스_용어집.csv"},
	{Name: "검과마법", ID: "glossary_sword_and_magic", SourceURI: "gs://longtukorea/glossary/용어집-검과마법 업데이트 번역-180427.csv"},
	{Name: "천존", ID: "glossary_cheonjon", SourceURI: "gs://longtukorea/glossary/천존_용어집.csv"},
	{Name: "카이로스", ID: "glossary_kairos", SourceURI: "gs://longtukorea/glossary/카이로스 용어집.csv"},
	{Name: "太王/태왕", ID: "glossary_tea_wang", SourceURI: "gs://longtukorea/glossary/태왕_단가_용어집.csv"},
	{Name: "열강 GLOBAL", ID: "glossary_yulgang_global", SourceURI: "gs://longtukorea/glossary/YULGANG GLOBAL.csv"},
}

// Resolve finds an entry by glossary ID or display name. Display names are
// matched case-insensitively.
func (c Catalog) Resolve(nameOrID string) (Entry, bool) {
	key := strings.TrimSpace(nameOrID)
	if i, ok := c.byID[key]; ok {
		return c.entries[i], true
	}
	if i, ok := c.byName[key]; ok {
		return c.entries[i], true
	}
	for _, e := range c.entries {
		if strings.EqualFold(e.Name, key) {
			return e, true
		}
	}
	return Entry{}, false
}

// Entries returns the catalog in declaration order.
func (c Catalog) Entries() []Entry {
	return append([]Entry(nil), c.entries...)
}

// IDs returns the glossary IDs sorted.
func (c Catalog) IDs() []string {
	ids := make([]string, 0, len(c.entries))
	for _, e := range c.entries {
		ids = append(ids, e.ID)
	}
	sort.Strings(ids)
	return ids
}

// ResourceName formats the Cloud Translation resource name of a glossary.
func ResourceName(project, location, id string) string {
	return fmt.Sprintf("projects/%s/locations/%s/glossaries/%s", project, location, id)
}
