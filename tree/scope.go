package tree

import "github.com/wordring/htmlx/atom"

// Target is the polymorphic argument inSpecificScope walks the stack
// looking for (spec.md §4.5, "target polymorphically accepts a
// (namespace, tag) pair, a concrete node handle, or a list of tags"). Go
// idiomatically models the original's compile-time dispatch on the
// argument's static type as an interface with a single predicate method.
type Target interface {
	matches(e stackEntry) bool
}

type tagTarget struct {
	ns string
	id atom.TagID
}

func (t tagTarget) matches(e stackEntry) bool { return e.ns == t.ns && e.id == t.id }

// TagInHTML builds a Target matching a single HTML-namespace tag.
func TagInHTML(id atom.TagID) Target { return tagTarget{ns: NamespaceHTML, id: id} }

type tagSetTarget struct{ ids []atom.TagID }

func (t tagSetTarget) matches(e stackEntry) bool {
	if e.ns != NamespaceHTML {
		return false
	}
	for _, id := range t.ids {
		if e.id == id {
			return true
		}
	}
	return false
}

// TagSetInHTML builds a Target matching any of several HTML-namespace tags.
func TagSetInHTML(ids ...atom.TagID) Target { return tagSetTarget{ids: ids} }

type nodeTarget struct{ entry stackEntry }

func (t nodeTarget) matches(e stackEntry) bool { return e.handle == t.entry.handle }

// nodeHandleTarget builds a Target matching the stack entry at idx by handle.
func nodeHandleTarget(b *Builder, idx int) Target { return nodeTarget{entry: b.open[idx]} }

// scopeKind selects which closer set inSpecificScope uses (spec.md §4.5,
// "five scope flavours").
type scopeKind int

const (
	scopeDefault scopeKind = iota
	scopeListItem
	scopeButton
	scopeTable
	scopeSelect
)

// defaultScopeClosers is the standard's base list used by the default,
// list-item and button scope flavours (table and select scope use their
// own closer lists in isScopeCloser).
var defaultScopeClosers = map[atom.TagID]bool{
	atom.TagApplet: true, atom.TagCaption: true, atom.TagHTML: true,
	atom.TagTable: true, atom.TagTd: true, atom.TagTh: true,
	atom.TagMarquee: true, atom.TagObject: true, atom.TagTemplate: true,
}

// isSpecialCategory reports whether e is in the HTML Standard's "special"
// element category: every HTML-namespace element atom.IsSpecial names, plus
// the fixed list of foreign elements the standard calls out by name (MathML
// text integration points and annotation-xml, the three SVG elements with
// HTML integration points). Shared by isScopeCloser and the adoption
// agency's furthest-block / any-other-end-tag special-category checks
// (spec.md §4.5) so foreign elements are never silently treated as
// non-special in one caller and special in the other.
func isSpecialCategory(e stackEntry) bool {
	if e.ns == NamespaceMathML {
		switch e.id {
		case atom.TagMi, atom.TagMo, atom.TagMn, atom.TagMs, atom.TagMtext, atom.TagAnnotationXML:
			return true
		}
		return false
	}
	if e.ns == NamespaceSVG {
		switch e.id {
		case atom.TagForeignObject, atom.TagDesc, atom.TagTitle:
			return true
		}
		return false
	}
	if e.ns != NamespaceHTML {
		return false
	}
	return atom.IsSpecial(e.id)
}

// isScopeCloser reports whether e stops inSpecificScope's walk for kind.
// Table and select scope use their own closer lists, which (unlike
// default/list-item/button scope) do not fall back to isSpecialCategory for
// foreign elements: table scope's closer list is exactly {html, table,
// template} with no MathML/SVG specials, and select scope closes on every
// element except optgroup/option regardless of namespace.
func isScopeCloser(kind scopeKind, e stackEntry) bool {
	switch kind {
	case scopeSelect:
		// select scope closes on everything except optgroup/option
		// (inverted: the predicate says "does NOT stop here").
		return !(e.ns == NamespaceHTML && (e.id == atom.TagOptgroup || e.id == atom.TagOption))
	case scopeTable:
		return e.ns == NamespaceHTML && (e.id == atom.TagHTML || e.id == atom.TagTable || e.id == atom.TagTemplate)
	}

	if e.ns != NamespaceHTML {
		return isSpecialCategory(e)
	}
	switch kind {
	case scopeListItem:
		if defaultScopeClosers[e.id] || e.id == atom.TagOl || e.id == atom.TagUl {
			return true
		}
		return false
	case scopeButton:
		if defaultScopeClosers[e.id] || e.id == atom.TagButton {
			return true
		}
		return false
	default:
		return defaultScopeClosers[e.id]
	}
}

// inSpecificScope walks the open-elements stack top-down, returning true
// iff target is found before a scope-closer (spec.md §4.5).
func (b *Builder) inSpecificScope(kind scopeKind, target Target) bool {
	for i := len(b.open) - 1; i >= 0; i-- {
		e := b.open[i]
		if target.matches(e) {
			return true
		}
		if isScopeCloser(kind, e) {
			return false
		}
	}
	return false
}

func (b *Builder) hasElementInScope(id atom.TagID) bool {
	return b.inSpecificScope(scopeDefault, TagInHTML(id))
}

func (b *Builder) hasElementInScopeSet(ids ...atom.TagID) bool {
	return b.inSpecificScope(scopeDefault, TagSetInHTML(ids...))
}

func (b *Builder) hasElementInListItemScope(id atom.TagID) bool {
	return b.inSpecificScope(scopeListItem, TagInHTML(id))
}

func (b *Builder) hasElementInButtonScope(id atom.TagID) bool {
	return b.inSpecificScope(scopeButton, TagInHTML(id))
}

func (b *Builder) hasElementInTableScope(id atom.TagID) bool {
	return b.inSpecificScope(scopeTable, TagInHTML(id))
}

func (b *Builder) hasElementInTableScopeSet(ids ...atom.TagID) bool {
	return b.inSpecificScope(scopeTable, TagSetInHTML(ids...))
}

func (b *Builder) hasElementInSelectScope(id atom.TagID) bool {
	return b.inSpecificScope(scopeSelect, TagInHTML(id))
}
