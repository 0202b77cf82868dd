package atom

import "github.com/wordring/htmlx/dat"

// AttrID is a small integer identifier for an attribute's local name.
type AttrID int32

const AttrUnknown AttrID = 0

const (
	AttrClass AttrID = iota + 1
	AttrIDName
	AttrStyle
	AttrCharset
	AttrContent
	AttrHTTPEquiv
	AttrType
	AttrSrc
	AttrHref
	AttrName
	AttrColor
	AttrFace
	AttrSize
	AttrAlign
	AttrDefinitionURL
	AttrDefinitionurl
	AttrEncoding
	AttrXLinkActuate
	AttrXLinkArcrole
	AttrXLinkHref
	AttrXLinkRole
	AttrXLinkShow
	AttrXLinkTitle
	AttrXLinkType
	AttrXMLBase
	AttrXMLLang
	AttrXMLSpace
	AttrXMLNS
	AttrXMLNSXLink
)

var attrNames = map[AttrID]string{
	AttrClass: "class", AttrIDName: "id", AttrStyle: "style", AttrCharset: "charset",
	AttrContent: "content", AttrHTTPEquiv: "http-equiv", AttrType: "type",
	AttrSrc: "src", AttrHref: "href", AttrName: "name", AttrColor: "color",
	AttrFace: "face", AttrSize: "size", AttrAlign: "align",
	AttrDefinitionURL: "definitionURL", AttrDefinitionurl: "definitionurl",
	AttrEncoding: "encoding",
	AttrXLinkActuate: "xlink:actuate", AttrXLinkArcrole: "xlink:arcrole",
	AttrXLinkHref: "xlink:href", AttrXLinkRole: "xlink:role",
	AttrXLinkShow: "xlink:show", AttrXLinkTitle: "xlink:title",
	AttrXLinkType: "xlink:type", AttrXMLBase: "xml:base", AttrXMLLang: "xml:lang",
	AttrXMLSpace: "xml:space", AttrXMLNS: "xmlns", AttrXMLNSXLink: "xmlns:xlink",
}

// Attrs is the C4 trie mapping lower-case attribute-name bytes to AttrID.
var Attrs = dat.New(dat.WithCapacity(128))

func init() {
	for id, name := range attrNames {
		_, err := Attrs.Insert([]byte(name))
		dat.Assert(err == nil, "atom: attr table insert %q: %v", name, err)
		v, _ := Attrs.At([]byte(name))
		_ = v.Set(int32(id))
	}
}

// LookupAttr resolves name to an AttrID, or AttrUnknown.
func LookupAttr(name []byte) AttrID {
	v, ok := Attrs.At(name)
	if !ok {
		return AttrUnknown
	}
	return AttrID(v.Get())
}

// AttrNameOf returns id's attribute-name string (named AttrNameOf rather
// than AttrName to avoid colliding with the AttrName id constant above).
func AttrNameOf(id AttrID) string { return attrNames[id] }

// ForeignAttr describes one entry of the XLink/XML/XMLNS adjustment table
// (spec.md §4.5, "adjust_foreign_attributes"): a flat attribute name is
// rewritten to an explicit (prefix, local_name, namespace) triple.
type ForeignAttr struct {
	Prefix    string
	LocalName string
	Namespace string
}

// ForeignAttrTable is the adjust_foreign_attributes table, keyed by the
// token's raw (unprefixed, as tokenized) attribute name.
var ForeignAttrTable = map[string]ForeignAttr{
	"xlink:actuate": {"xlink", "actuate", "http://www.w3.org/1999/xlink"},
	"xlink:arcrole": {"xlink", "arcrole", "http://www.w3.org/1999/xlink"},
	"xlink:href":    {"xlink", "href", "http://www.w3.org/1999/xlink"},
	"xlink:role":    {"xlink", "role", "http://www.w3.org/1999/xlink"},
	"xlink:show":    {"xlink", "show", "http://www.w3.org/1999/xlink"},
	"xlink:title":   {"xlink", "title", "http://www.w3.org/1999/xlink"},
	"xlink:type":    {"xlink", "type", "http://www.w3.org/1999/xlink"},
	"xml:base":      {"xml", "base", "http://www.w3.org/XML/1998/namespace"},
	"xml:lang":      {"xml", "lang", "http://www.w3.org/XML/1998/namespace"},
	"xml:space":     {"xml", "space", "http://www.w3.org/XML/1998/namespace"},
	"xmlns":         {"", "xmlns", "http://www.w3.org/2000/xmlns/"},
	"xmlns:xlink":   {"xmlns", "xlink", "http://www.w3.org/2000/xmlns/"},
}

// SVGAttrTable is adjust_svg_attributes: SVG attribute names that the
// tokenizer lower-cases but the tree builder must restore to their correct
// mixed-case form (spec.md §4.5).
var SVGAttrTable = map[string]string{
	"attributename":       "attributeName",
	"attributetype":       "attributeType",
	"basefrequency":       "baseFrequency",
	"baseprofile":         "baseProfile",
	"calcmode":            "calcMode",
	"clippathunits":       "clipPathUnits",
	"diffuseconstant":     "diffuseConstant",
	"edgemode":            "edgeMode",
	"filterunits":         "filterUnits",
	"glyphref":            "glyphRef",
	"gradienttransform":   "gradientTransform",
	"gradientunits":       "gradientUnits",
	"kernelmatrix":        "kernelMatrix",
	"kernelunitlength":    "kernelUnitLength",
	"keypoints":           "keyPoints",
	"keysplines":          "keySplines",
	"keytimes":            "keyTimes",
	"lengthadjust":        "lengthAdjust",
	"limitingconeangle":   "limitingConeAngle",
	"markerheight":        "markerHeight",
	"markerunits":         "markerUnits",
	"markerwidth":         "markerWidth",
	"maskcontentunits":    "maskContentUnits",
	"maskunits":           "maskUnits",
	"numoctaves":          "numOctaves",
	"pathlength":          "pathLength",
	"patterncontentunits": "patternContentUnits",
	"patterntransform":    "patternTransform",
	"patternunits":        "patternUnits",
	"pointsatx":           "pointsAtX",
	"pointsaty":           "pointsAtY",
	"pointsatz":           "pointsAtZ",
	"preservealpha":       "preserveAlpha",
	"preserveaspectratio": "preserveAspectRatio",
	"primitiveunits":      "primitiveUnits",
	"refx":                "refX",
	"refy":                "refY",
	"repeatcount":         "repeatCount",
	"repeatdur":           "repeatDur",
	"requiredextensions":  "requiredExtensions",
	"requiredfeatures":    "requiredFeatures",
	"specularconstant":    "specularConstant",
	"specularexponent":    "specularExponent",
	"spreadmethod":        "spreadMethod",
	"startoffset":         "startOffset",
	"stddeviation":        "stdDeviation",
	"stitchtiles":         "stitchTiles",
	"surfacescale":        "surfaceScale",
	"systemlanguage":      "systemLanguage",
	"tablevalues":         "tableValues",
	"targetx":             "targetX",
	"targety":             "targetY",
	"textlength":          "textLength",
	"viewbox":             "viewBox",
	"viewtarget":          "viewTarget",
	"xchannelselector":    "xChannelSelector",
	"ychannelselector":    "yChannelSelector",
	"zoomandpan":          "zoomAndPan",
}
