package tree

import (
	"github.com/wordring/htmlx/atom"
	"github.com/wordring/htmlx/dom"
	"github.com/wordring/htmlx/token"
)

// svgTagNameAdjustments is the HTML Standard's "adjust SVG tag name"
// table: SVG element names the tokenizer lower-cases but the tree builder
// must restore to their correct mixed-case form, the tag-name sibling of
// atom.SVGAttrTable (spec.md §4.5's foreign-content attribute tables,
// extended here to tag names since the standard specifies both).
var svgTagNameAdjustments = map[string]string{
	"altglyph":            "altGlyph",
	"altglyphdef":         "altGlyphDef",
	"altglyphitem":        "altGlyphItem",
	"animatecolor":        "animateColor",
	"animatemotion":       "animateMotion",
	"animatetransform":    "animateTransform",
	"clippath":            "clipPath",
	"feblend":             "feBlend",
	"fecolormatrix":       "feColorMatrix",
	"fecomponenttransfer": "feComponentTransfer",
	"fecomposite":         "feComposite",
	"feconvolvematrix":    "feConvolveMatrix",
	"fediffuselighting":   "feDiffuseLighting",
	"fedisplacementmap":   "feDisplacementMap",
	"fedistantlight":      "feDistantLight",
	"fedropshadow":        "feDropShadow",
	"feflood":             "feFlood",
	"fefunca":             "feFuncA",
	"fefuncb":             "feFuncB",
	"fefuncg":             "feFuncG",
	"fefuncr":             "feFuncR",
	"fegaussianblur":      "feGaussianBlur",
	"feimage":             "feImage",
	"femerge":             "feMerge",
	"femergenode":         "feMergeNode",
	"femorphology":        "feMorphology",
	"feoffset":            "feOffset",
	"fepointlight":        "fePointLight",
	"fespecularlighting":  "feSpecularLighting",
	"fespotlight":         "feSpotLight",
	"fetile":              "feTile",
	"feturbulence":        "feTurbulence",
	"foreignobject":       "foreignObject",
	"glyphref":            "glyphRef",
	"lineargradient":      "linearGradient",
	"radialgradient":      "radialGradient",
	"textpath":            "textPath",
}

// useForeignContentRules implements spec.md §4.5 step 1: the adjusted
// current node is in a foreign namespace and the token does not meet one
// of the integration-point/text-token exceptions.
func (b *Builder) useForeignContentRules(tok token.Token) bool {
	if len(b.open) == 0 {
		return false
	}
	cur := b.adjustedCurrentNode()
	if cur.ns == NamespaceHTML {
		return false
	}

	if atom.IsMathMLTextIntegrationPoint(cur.id) && cur.ns == NamespaceMathML {
		if tok.Kind == token.KindCharacter {
			return false
		}
		if tok.Kind == token.KindStartTag {
			id := atom.TagID(tok.TagID)
			if id != atom.TagMglyph && id != atom.TagMalignmark {
				return false
			}
		}
	}
	if cur.ns == NamespaceMathML && cur.id == atom.TagAnnotationXML && tok.Kind == token.KindStartTag && atom.TagID(tok.TagID) == atom.TagSvg {
		return false
	}
	if htmlIntegrationPoint(cur) && (tok.Kind == token.KindStartTag || tok.Kind == token.KindCharacter) {
		return false
	}
	if tok.Kind == token.KindEOF {
		return false
	}
	return true
}

func htmlIntegrationPoint(e stackEntry) bool {
	if e.ns == NamespaceSVG {
		switch e.id {
		case atom.TagForeignObject, atom.TagDesc, atom.TagTitle:
			return true
		}
	}
	if e.ns == NamespaceMathML && e.id == atom.TagAnnotationXML {
		// annotation-xml is an HTML integration point only when its start
		// tag carried an encoding of text/html or application/xhtml+xml.
		enc, ok := e.tok.Attr("encoding")
		return atom.IsHTMLIntegrationPoint(e.id, e.ns, enc, "", ok)
	}
	return false
}

// processForeignContent implements the "rules for parsing tokens in
// foreign content" (returns true to reprocess the same token under the
// normal insertion-mode rules, matching the "act as described in the
// 'anything else' entry below" breakout cases).
func (b *Builder) processForeignContent(tok *token.Token) bool {
	switch tok.Kind {
	case token.KindCharacter:
		if tok.CodePoint == 0 {
			b.reportError(token.ErrUnexpectedNullCharacter)
			b.insertCharacter(0xFFFD)
			return false
		}
		if !isHTMLWhitespace(tok.CodePoint) {
			b.framesetOK = false
		}
		b.insertCharacter(tok.CodePoint)
		return false
	case token.KindComment:
		b.insertComment(*tok, dom.NoHandle)
		return false
	case token.KindDOCTYPE:
		b.reportError(token.ErrUnexpectedDOCTYPE)
		return false
	case token.KindStartTag:
		return b.foreignStartTag(tok)
	case token.KindEndTag:
		return b.foreignEndTag(tok)
	}
	return false
}

// breakoutStartTags is the fixed list of HTML-namespace start tags that
// always break out of foreign content back to HTML insertion-mode rules.
var breakoutStartTags = map[atom.TagID]bool{
	atom.TagB: true, atom.TagBig: true, atom.TagBlockquote: true, atom.TagBody: true,
	atom.TagBr: true, atom.TagCenter: true, atom.TagCode: true, atom.TagDd: true,
	atom.TagDiv: true, atom.TagDl: true, atom.TagDt: true, atom.TagEm: true,
	atom.TagEmbed: true, atom.TagH1: true, atom.TagH2: true, atom.TagH3: true,
	atom.TagH4: true, atom.TagH5: true, atom.TagH6: true, atom.TagHead: true,
	atom.TagHr: true, atom.TagI: true, atom.TagImg: true, atom.TagLi: true,
	atom.TagListing: true, atom.TagMenu: true, atom.TagMeta: true, atom.TagNobr: true,
	atom.TagOl: true, atom.TagP: true, atom.TagPre: true, atom.TagRuby: true,
	atom.TagS: true, atom.TagSmall: true, atom.TagSpan: true, atom.TagStrong: true,
	atom.TagStrike: true, atom.TagSub: true, atom.TagSup: true, atom.TagTable: true,
	atom.TagTt: true, atom.TagU: true, atom.TagUl: true, atom.TagVar: true,
	// TagFont breaks out only when carrying color/face/size; handled as a
	// special case in foreignStartTag rather than this unconditional set.
}

func (b *Builder) foreignStartTag(tok *token.Token) bool {
	id := atom.TagID(tok.TagID)
	if id == atom.TagFont {
		_, hasColor := tok.Attr("color")
		_, hasFace := tok.Attr("face")
		_, hasSize := tok.Attr("size")
		if !hasColor && !hasFace && !hasSize {
			goto foreign
		}
		return b.breakOutOfForeignContent(tok)
	}
	if breakoutStartTags[id] {
		return b.breakOutOfForeignContent(tok)
	}
foreign:
	cur := b.adjustedCurrentNode()
	ns := cur.ns
	if ns == NamespaceMathML {
		b.adjustMathMLAttributes(tok)
	} else if ns == NamespaceSVG {
		if adj, ok := svgTagNameAdjustments[tok.TagName]; ok {
			tok.TagName = adj
		}
		b.adjustSVGAttributes(tok)
	}
	b.adjustForeignAttributes(tok)
	b.insertForeignElement(*tok, ns)
	if tok.SelfClosing {
		if ns == NamespaceSVG && tok.TagName == "script" {
			b.popElement()
			acknowledgeSelfClosing(tok)
			return false
		}
		b.popElement()
		acknowledgeSelfClosing(tok)
	}
	return false
}

func (b *Builder) breakOutOfForeignContent(tok *token.Token) bool {
	b.reportError(token.ErrUnexpectedStartTag)
	for !b.atHTMLIntegrationOrHTML() {
		b.popElement()
	}
	return true
}

func (b *Builder) atHTMLIntegrationOrHTML() bool {
	if len(b.open) == 0 {
		return true
	}
	cur := b.current()
	if cur.ns == NamespaceHTML {
		return true
	}
	return htmlIntegrationPoint(cur)
}

func (b *Builder) foreignEndTag(tok *token.Token) bool {
	if len(b.open) == 0 {
		return false
	}
	if b.current().id == atom.TagScript && b.current().ns == NamespaceSVG && tok.TagName == "script" {
		b.popElement()
		return false
	}
	// Find the first matching node on the stack, walking down; if an
	// HTML-namespace node is hit first, reprocess under HTML rules.
	for i := len(b.open) - 1; i >= 0; i-- {
		e := b.open[i]
		if i == 0 {
			return false
		}
		if asciiLowerEq(e.name(b), tok.TagName) {
			b.open = b.open[:i]
			return false
		}
		if e.ns == NamespaceHTML {
			return true
		}
	}
	return false
}

func (e stackEntry) name(b *Builder) string {
	if e.id != atom.TagUnknown {
		return atom.TagName(e.id)
	}
	return e.tok.TagName
}

func asciiLowerEq(a, c string) bool {
	if len(a) != len(c) {
		return false
	}
	for i := 0; i < len(a); i++ {
		x, y := a[i], c[i]
		if x >= 'A' && x <= 'Z' {
			x += 32
		}
		if y >= 'A' && y <= 'Z' {
			y += 32
		}
		if x != y {
			return false
		}
	}
	return true
}

// adjustMathMLAttributes performs the single definitionurl ->
// definitionURL rewrite (spec.md §4.5).
func (b *Builder) adjustMathMLAttributes(tok *token.Token) {
	for i := range tok.Attributes {
		if tok.Attributes[i].LocalName == "definitionurl" {
			tok.Attributes[i].LocalName = "definitionURL"
		}
	}
}

// adjustSVGAttributes restores the camelCase form of SVG attribute names
// the tokenizer lower-cased (spec.md §4.5, atom.SVGAttrTable).
func (b *Builder) adjustSVGAttributes(tok *token.Token) {
	for i := range tok.Attributes {
		if adj, ok := atom.SVGAttrTable[tok.Attributes[i].LocalName]; ok {
			tok.Attributes[i].LocalName = adj
		}
	}
}

// adjustForeignAttributes rewrites xlink:*/xml:*/xmlns(:xlink) attributes
// into explicit (prefix, local_name, namespace) triples (spec.md §4.5,
// atom.ForeignAttrTable).
func (b *Builder) adjustForeignAttributes(tok *token.Token) {
	for i := range tok.Attributes {
		key := tok.Attributes[i].Name()
		if fa, ok := atom.ForeignAttrTable[key]; ok {
			tok.Attributes[i].Prefix = fa.Prefix
			tok.Attributes[i].LocalName = fa.LocalName
			tok.Attributes[i].Namespace = fa.Namespace
		}
	}
}

func isHTMLWhitespace(r rune) bool {
	switch r {
	case '\t', '\n', '\f', '\r', ' ':
		return true
	}
	return false
}
