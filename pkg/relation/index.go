package relation

import "strings"

var indexPrefixes = []string{"CREATE UNIQUE INDEX ", "CREATE INDEX "}

// Index is a catalog index of a materialized view. Definition is the full
// CREATE INDEX statement as pg_get_indexdef renders it.
type Index struct {
	Owner      Name
	IndexName  string
	Definition string
}

// Retarget returns the index with its definition pointing to another
// relation. Only the ON clause of the definition is changed.
func (i Index) Retarget(to Name) (Index, error) {
	p, err := i.split()
	if err != nil {
		return Index{}, err
	}

	ref := to.Key()
	if p.qualified {
		ref = to.Qualified()
	}

	return Index{
		Owner:      to,
		IndexName:  i.IndexName,
		Definition: p.head + QuoteIdent(i.IndexName) + " ON " + p.only + ref + p.tail,
	}, nil
}

// Renamed returns the index with a different name, keeping its owner.
func (i Index) Renamed(name string) (Index, error) {
	p, err := i.split()
	if err != nil {
		return Index{}, err
	}

	return Index{
		Owner:      i.Owner,
		IndexName:  name,
		Definition: p.head + QuoteIdent(name) + " ON " + p.only + p.owner + p.tail,
	}, nil
}

type indexParts struct {
	head      string
	only      string
	owner     string
	qualified bool
	tail      string
}

func (i Index) split() (indexParts, error) {
	var res indexParts
	def := i.Definition
	for _, prefix := range indexPrefixes {
		if !strings.HasPrefix(def, prefix) {
			continue
		}
		rest, ok := "", false
		for _, n := range spellings(i.IndexName) {
			if rest, ok = strings.CutPrefix(def[len(prefix):], n+" ON "); ok {
				break
			}
		}
		if !ok {
			continue
		}
		res.head = prefix
		if after, found := strings.CutPrefix(rest, "ONLY "); found {
			res.only = "ONLY "
			rest = after
		}

		for _, ref := range i.ownerRefs() {
			if strings.HasPrefix(rest, ref.text+" ") {
				res.owner = ref.text
				res.qualified = ref.qualified
				res.tail = rest[len(ref.text):]
				return res, nil
			}
		}
		return res, IndexDefinitionError(i, "owner reference not found")
	}
	return res, IndexDefinitionError(i, "unexpected CREATE INDEX header")
}

type ownerRef struct {
	text      string
	qualified bool
}

// ownerRefs lists spellings of the owner, schema-qualified ones first.
func (i Index) ownerRefs() []ownerRef {
	var res []ownerRef
	locals := spellings(i.Owner.Local)
	if i.Owner.Schema != "" {
		for _, s := range spellings(i.Owner.Schema) {
			for _, l := range locals {
				res = append(res, ownerRef{text: s + "." + l, qualified: true})
			}
		}
	}
	for _, l := range locals {
		res = append(res, ownerRef{text: l})
	}
	return res
}
