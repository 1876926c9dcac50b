// Package catalog is the static district -> block -> panchayat hierarchy
// of Tamil Nadu used to address scoring requests.
package catalog

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"
)

//go:embed tamil_nadu.json
var tamilNaduJSON []byte

type District struct {
	Name   string  `json:"name"`
	Blocks []Block `json:"blocks"`
}

type Block struct {
	Name       string   `json:"name"`
	Panchayats []string `json:"panchayats"`
}

// Location addresses a unit at any level; finer fields may be empty.
type Location struct {
	District  string `json:"district"`
	Block     string `json:"block,omitempty"`
	Panchayat string `json:"panchayat,omitempty"`
}

// Name is the finest populated level, used in narratives.
func (l Location) Name() string {
	for _, s := range []string{l.Panchayat, l.Block, l.District} {
		if s = strings.TrimSpace(s); s != "" {
			return s
		}
	}
	return ""
}

// Catalog is read-only after Parse.
type Catalog struct {
	districts []District
	index     map[string]*District
}

// Default returns the embedded Tamil Nadu catalog.
func Default() *Catalog {
	c, err := Parse(tamilNaduJSON)
	if err != nil {
		panic(fmt.Sprintf("catalog: embedded data: %v", err))
	}
	return c
}

// Parse decodes a JSON array of districts, preserving order.
func Parse(b []byte) (*Catalog, error) {
	var ds []District
	if err := json.Unmarshal(b, &ds); err != nil {
		return nil, err
	}
	c := &Catalog{districts: ds, index: make(map[string]*District, len(ds))}
	for i := range ds {
		key := fold(ds[i].Name)
		if _, dup := c.index[key]; dup {
			return nil, fmt.Errorf("duplicate district %q", ds[i].Name)
		}
		c.index[key] = &c.districts[i]
	}
	return c, nil
}

// Districts returns the full hierarchy in catalog order.
func (c *Catalog) Districts() []District { return c.districts }

// DistrictNames lists district names in catalog order.
func (c *Catalog) DistrictNames() []string {
	out := make([]string, 0, len(c.districts))
	for _, d := range c.districts {
		out = append(out, d.Name)
	}
	return out
}

// District looks a district up case-insensitively.
func (c *Catalog) District(name string) (District, bool) {
	d, ok := c.index[fold(name)]
	if !ok {
		return District{}, false
	}
	return *d, true
}

// Resolve checks that every populated level of loc exists and returns loc
// with names in their catalog spelling.
func (c *Catalog) Resolve(loc Location) (Location, bool) {
	d, ok := c.District(loc.District)
	if !ok {
		return Location{}, false
	}
	out := Location{District: d.Name}
	if strings.TrimSpace(loc.Block) == "" {
		return out, strings.TrimSpace(loc.Panchayat) == ""
	}
	for _, b := range d.Blocks {
		if fold(b.Name) != fold(loc.Block) {
			continue
		}
		out.Block = b.Name
		if strings.TrimSpace(loc.Panchayat) == "" {
			return out, true
		}
		for _, p := range b.Panchayats {
			if fold(p) == fold(loc.Panchayat) {
				out.Panchayat = p
				return out, true
			}
		}
		return Location{}, false
	}
	return Location{}, false
}

func fold(s string) string { return strings.ToLower(strings.TrimSpace(s)) }
