package tree

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/wordring/htmlx/atom"
)

func entry(id atom.TagID, ns string) stackEntry {
	return stackEntry{id: id, ns: ns}
}

func TestHasElementInScopeStopsAtTableBoundary(t *testing.T) {
	b := &Builder{open: []stackEntry{
		entry(atom.TagHTML, NamespaceHTML),
		entry(atom.TagBody, NamespaceHTML),
		entry(atom.TagTable, NamespaceHTML),
		entry(atom.TagTr, NamespaceHTML),
		entry(atom.TagTd, NamespaceHTML),
		entry(atom.TagDiv, NamespaceHTML),
	}}
	assert.True(t, b.hasElementInScope(atom.TagDiv))
	// a <p> above the table boundary is not reachable in default scope.
	b.open = append([]stackEntry{entry(atom.TagP, NamespaceHTML)}, b.open...)
	assert.False(t, b.hasElementInScope(atom.TagP))
}

func TestHasElementInListItemScopeStopsAtUl(t *testing.T) {
	b := &Builder{open: []stackEntry{
		entry(atom.TagHTML, NamespaceHTML),
		entry(atom.TagBody, NamespaceHTML),
		entry(atom.TagUl, NamespaceHTML),
		entry(atom.TagLi, NamespaceHTML),
	}}
	assert.True(t, b.hasElementInListItemScope(atom.TagLi))

	b3 := &Builder{open: []stackEntry{
		entry(atom.TagUl, NamespaceHTML),
		entry(atom.TagLi, NamespaceHTML),
	}}
	assert.False(t, b3.hasElementInListItemScope(atom.TagOl))
}

func TestHasElementInButtonScopeStopsAtButton(t *testing.T) {
	b := &Builder{open: []stackEntry{
		entry(atom.TagHTML, NamespaceHTML),
		entry(atom.TagButton, NamespaceHTML),
		entry(atom.TagP, NamespaceHTML),
	}}
	assert.True(t, b.hasElementInButtonScope(atom.TagP))

	b2 := &Builder{open: []stackEntry{
		entry(atom.TagP, NamespaceHTML),
		entry(atom.TagButton, NamespaceHTML),
	}}
	assert.False(t, b2.hasElementInButtonScope(atom.TagP))
}

func TestForeignNamespaceIntegrationPointsCloseScope(t *testing.T) {
	b := &Builder{open: []stackEntry{
		entry(atom.TagHTML, NamespaceHTML),
		entry(atom.TagAnnotationXML, NamespaceMathML),
		entry(atom.TagDiv, NamespaceHTML),
	}}
	// MathML annotation-xml is a default-scope closer.
	assert.False(t, b.hasElementInScope(atom.TagHTML))
}

func TestSelectScopeOnlyPassesOptgroupAndOption(t *testing.T) {
	b := &Builder{open: []stackEntry{
		entry(atom.TagSelect, NamespaceHTML),
		entry(atom.TagOptgroup, NamespaceHTML),
		entry(atom.TagOption, NamespaceHTML),
	}}
	assert.True(t, b.hasElementInSelectScope(atom.TagSelect))

	b2 := &Builder{open: []stackEntry{
		entry(atom.TagDiv, NamespaceHTML),
		entry(atom.TagSelect, NamespaceHTML),
	}}
	// select scope closes on everything except optgroup/option, including
	// select itself when it isn't the target being searched for.
	assert.False(t, b2.hasElementInSelectScope(atom.TagUnknown))
}

func TestStackPushPopAndCurrent(t *testing.T) {
	b := &Builder{}
	assert.Equal(t, stackEntry{}, b.current())

	b.open = append(b.open, entry(atom.TagHTML, NamespaceHTML))
	b.open = append(b.open, entry(atom.TagBody, NamespaceHTML))
	assert.Equal(t, atom.TagBody, b.current().id)

	top := b.popElement()
	assert.Equal(t, atom.TagBody, top.id)
	assert.Equal(t, atom.TagHTML, b.current().id)
}

func TestPopUntilTagStopsInclusively(t *testing.T) {
	b := &Builder{open: []stackEntry{
		entry(atom.TagHTML, NamespaceHTML),
		entry(atom.TagDiv, NamespaceHTML),
		entry(atom.TagSpan, NamespaceHTML),
	}}
	b.popUntilTag(atom.TagDiv)
	assert.Equal(t, atom.TagHTML, b.current().id)
}

func TestGenerateImpliedEndTagsStopsAtException(t *testing.T) {
	b := &Builder{open: []stackEntry{
		entry(atom.TagHTML, NamespaceHTML),
		entry(atom.TagLi, NamespaceHTML),
		entry(atom.TagP, NamespaceHTML),
	}}
	b.generateImpliedEndTags(atom.TagLi)
	// <p> is implied-end, popped; <li> is the exception and stays.
	assert.Equal(t, atom.TagLi, b.current().id)
}
