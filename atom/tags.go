package atom

import "github.com/wordring/htmlx/dat"

// TagID is a small integer identifier for an HTML, MathML, or SVG element
// name, resolved once by the tokenizer so the tree builder never
// string-compares tag names on its hot path (spec.md §4.6).
type TagID int32

// TagUnknown is returned for any tag name not in the table; the tree
// builder falls back to string comparison against Token.TagName for such
// names (custom elements, unknown foreign elements), exactly as the
// standard requires.
const TagUnknown TagID = 0

//go:generate true
const (
	TagA TagID = iota + 1
	TagAddress
	TagApplet
	TagArea
	TagArticle
	TagAside
	TagAnnotationXML
	TagB
	TagBase
	TagBasefont
	TagBgsound
	TagBig
	TagBlockquote
	TagBody
	TagBr
	TagButton
	TagCaption
	TagCenter
	TagCode
	TagCol
	TagColgroup
	TagDd
	TagDesc
	TagDetails
	TagDialog
	TagDir
	TagDiv
	TagDl
	TagDt
	TagEm
	TagEmbed
	TagFieldset
	TagFigcaption
	TagFigure
	TagFont
	TagFooter
	TagForeignObject
	TagForm
	TagFrame
	TagFrameset
	TagH1
	TagH2
	TagH3
	TagH4
	TagH5
	TagH6
	TagHead
	TagHeader
	TagHgroup
	TagHr
	TagHTML
	TagI
	TagIframe
	TagImg
	TagImage
	TagInput
	TagKeygen
	TagLi
	TagLink
	TagListing
	TagMain
	TagMarquee
	TagMath
	TagMarker
	TagMenu
	TagMeta
	TagMi
	TagMglyph
	TagMalignmark
	TagMn
	TagMo
	TagMs
	TagMtext
	TagNav
	TagNobr
	TagNoembed
	TagNoframes
	TagNoscript
	TagObject
	TagOl
	TagOptgroup
	TagOption
	TagP
	TagParam
	TagPlaintext
	TagPre
	TagRb
	TagRp
	TagRt
	TagRtc
	TagRuby
	TagS
	TagScript
	TagSection
	TagSelect
	TagSmall
	TagSource
	TagSpan
	TagStrike
	TagStrong
	TagStyle
	TagSub
	TagSummary
	TagSup
	TagSvg
	TagTable
	TagTbody
	TagTd
	TagTemplate
	TagTextarea
	TagTfoot
	TagTh
	TagThead
	TagTitle
	TagTr
	TagTrack
	TagTt
	TagU
	TagUl
	TagVar
	TagVideo
	TagWbr
	TagXmp
)

var tagNames = map[TagID]string{
	TagA: "a", TagAddress: "address", TagApplet: "applet", TagArea: "area",
	TagArticle: "article", TagAside: "aside", TagAnnotationXML: "annotation-xml",
	TagB: "b", TagBase: "base", TagBasefont: "basefont", TagBgsound: "bgsound",
	TagBig: "big", TagBlockquote: "blockquote", TagBody: "body", TagBr: "br",
	TagButton: "button", TagCaption: "caption", TagCenter: "center",
	TagCode: "code", TagCol: "col", TagColgroup: "colgroup", TagDd: "dd",
	TagDesc: "desc", TagDetails: "details", TagDialog: "dialog", TagDir: "dir",
	TagDiv: "div", TagDl: "dl", TagDt: "dt", TagEm: "em", TagEmbed: "embed",
	TagFieldset: "fieldset", TagFigcaption: "figcaption", TagFigure: "figure",
	TagFont: "font", TagFooter: "footer", TagForeignObject: "foreignObject",
	TagForm: "form", TagFrame: "frame", TagFrameset: "frameset",
	TagH1: "h1", TagH2: "h2", TagH3: "h3", TagH4: "h4", TagH5: "h5", TagH6: "h6",
	TagHead: "head", TagHeader: "header", TagHgroup: "hgroup", TagHr: "hr",
	TagHTML: "html", TagI: "i", TagIframe: "iframe", TagImg: "img",
	TagImage: "image", TagInput: "input", TagKeygen: "keygen", TagLi: "li",
	TagLink: "link", TagListing: "listing", TagMain: "main", TagMarquee: "marquee",
	TagMath: "math", TagMarker: "marker", TagMenu: "menu", TagMeta: "meta",
	TagMi: "mi", TagMglyph: "mglyph", TagMalignmark: "malignmark", TagMn: "mn", TagMo: "mo", TagMs: "ms",
	TagMtext: "mtext", TagNav: "nav", TagNobr: "nobr", TagNoembed: "noembed",
	TagNoframes: "noframes", TagNoscript: "noscript", TagObject: "object",
	TagOl: "ol", TagOptgroup: "optgroup", TagOption: "option", TagP: "p",
	TagParam: "param", TagPlaintext: "plaintext", TagPre: "pre", TagRb: "rb",
	TagRp: "rp", TagRt: "rt", TagRtc: "rtc", TagRuby: "ruby", TagS: "s",
	TagScript: "script", TagSection: "section", TagSelect: "select",
	TagSmall: "small", TagSource: "source", TagSpan: "span", TagStrike: "strike",
	TagStrong: "strong", TagStyle: "style", TagSub: "sub", TagSummary: "summary",
	TagSup: "sup", TagSvg: "svg",
	TagTable: "table", TagTbody: "tbody", TagTd: "td", TagTemplate: "template",
	TagTextarea: "textarea", TagTfoot: "tfoot", TagTh: "th", TagThead: "thead",
	TagTitle: "title", TagTr: "tr", TagTrack: "track", TagTt: "tt", TagU: "u",
	TagUl: "ul", TagVar: "var", TagVideo: "video", TagWbr: "wbr", TagXmp: "xmp",
}

// Tags is the C4 trie mapping lower-case HTML/MathML/SVG tag-name bytes to
// TagID values, populated once at init time.
var Tags = dat.New(dat.WithCapacity(512))

func init() {
	for id, name := range tagNames {
		it, err := Tags.Insert([]byte(name))
		dat.Assert(err == nil, "atom: tag table insert %q: %v", name, err)
		v, _ := Tags.At([]byte(name))
		_ = v.Set(int32(id))
		_ = it
	}
}

// LookupTag resolves name (already ASCII-lowercased by the tokenizer) to a
// TagID, or TagUnknown if name is not in the table.
func LookupTag(name []byte) TagID {
	v, ok := Tags.At(name)
	if !ok {
		return TagUnknown
	}
	return TagID(v.Get())
}

// TagName returns id's canonical name, or "" for TagUnknown.
func TagName(id TagID) string { return tagNames[id] }

// voidElements is the spec's list of elements that are never followed by an
// end tag and never have children (used by the tokenizer's self-closing
// acknowledgement rule and the tree builder's "insert and immediately pop"
// shorthand).
var voidElements = map[TagID]bool{
	TagArea: true, TagBase: true, TagBr: true, TagCol: true, TagEmbed: true,
	TagHr: true, TagImg: true, TagInput: true, TagKeygen: true, TagLink: true,
	TagMeta: true, TagParam: true, TagSource: true, TagTrack: true, TagWbr: true,
}

// IsVoid reports whether id names a void HTML element.
func IsVoid(id TagID) bool { return voidElements[id] }

// specialElements is the HTML Standard's "special" category (used by the
// implied-end-tag generation set's complement and by several in-body
// end-tag "any other" rules); namespace-qualified where the standard
// qualifies it (the HTML-namespace subset is listed here, the MathML/SVG
// members are checked alongside a namespace test by the tree package).
var specialElements = map[TagID]bool{
	TagAddress: true, TagApplet: true, TagArea: true, TagArticle: true,
	TagAside: true, TagBase: true, TagBasefont: true, TagBgsound: true,
	TagBlockquote: true, TagBody: true, TagBr: true, TagButton: true,
	TagCaption: true, TagCenter: true, TagCol: true, TagColgroup: true,
	TagDd: true, TagDetails: true, TagDir: true, TagDiv: true, TagDl: true,
	TagDt: true, TagEmbed: true, TagFieldset: true, TagFigcaption: true,
	TagFigure: true, TagFooter: true, TagForm: true, TagFrame: true,
	TagFrameset: true, TagH1: true, TagH2: true, TagH3: true, TagH4: true,
	TagH5: true, TagH6: true, TagHead: true, TagHeader: true, TagHgroup: true,
	TagHr: true, TagHTML: true, TagIframe: true, TagImg: true, TagInput: true,
	TagKeygen: true, TagLi: true, TagLink: true, TagListing: true,
	TagMain: true, TagMarquee: true, TagMenu: true, TagMeta: true, TagNav: true,
	TagNoembed: true, TagNoframes: true, TagNoscript: true, TagObject: true,
	TagOl: true, TagP: true, TagParam: true, TagPlaintext: true, TagPre: true,
	TagScript: true, TagSection: true, TagSelect: true, TagSource: true,
	TagStyle: true, TagSummary: true, TagTable: true, TagTbody: true,
	TagTd: true, TagTemplate: true, TagTextarea: true, TagTfoot: true,
	TagTh: true, TagThead: true, TagTitle: true, TagTr: true, TagTrack: true,
	TagUl: true, TagXmp: true,
}

// IsSpecial reports whether id names an HTML-namespace "special" element.
func IsSpecial(id TagID) bool { return specialElements[id] }

// formattingElements is the active-formatting-element category (spec.md
// §4.5, "list of active formatting elements").
var formattingElements = map[TagID]bool{
	TagA: true, TagB: true, TagBig: true, TagCode: true, TagEm: true,
	TagFont: true, TagI: true, TagNobr: true, TagS: true, TagSmall: true,
	TagStrike: true, TagStrong: true, TagTt: true, TagU: true,
}

// IsFormatting reports whether id names an active-formatting-element
// candidate.
func IsFormatting(id TagID) bool { return formattingElements[id] }

// impliedEndTagSet is generate_implied_end_tags' default set (spec.md
// §4.5).
var impliedEndTagSet = map[TagID]bool{
	TagDd: true, TagDt: true, TagLi: true, TagOptgroup: true, TagOption: true,
	TagP: true, TagRb: true, TagRp: true, TagRt: true, TagRtc: true,
}

// impliedEndTagThoroughSet adds the table-structure elements for
// generate_implied_end_tags_thoroughly.
var impliedEndTagThoroughSet = map[TagID]bool{
	TagCaption: true, TagColgroup: true, TagTbody: true, TagTd: true,
	TagTfoot: true, TagTh: true, TagThead: true, TagTr: true,
}

// IsImpliedEnd reports whether id is in the implied-end-tag set; thorough
// additionally includes the table-structure elements.
func IsImpliedEnd(id TagID, thorough bool) bool {
	if impliedEndTagSet[id] {
		return true
	}
	return thorough && impliedEndTagThoroughSet[id]
}

// MathMLTextIntegrationPoints are the MathML elements inside which HTML
// parsing rules resume for text content (spec.md glossary, "Integration
// point").
var mathMLTextIntegrationPoints = map[TagID]bool{
	TagMi: true, TagMo: true, TagMn: true, TagMs: true, TagMtext: true,
}

func IsMathMLTextIntegrationPoint(id TagID) bool { return mathMLTextIntegrationPoints[id] }

func IsHTMLIntegrationPoint(id TagID, namespace string, encoding, typeAttr string, hasEncoding bool) bool {
	switch {
	case namespace == "mathml" && id == TagAnnotationXML && hasEncoding:
		e := asciiLower(encoding)
		return e == "text/html" || e == "application/xhtml+xml"
	case namespace == "svg" && (id == TagForeignObject || id == TagDesc || id == TagTitle):
		return true
	}
	return false
}

func asciiLower(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c + 32
		}
	}
	return string(b)
}
