package atom

import "github.com/wordring/htmlx/dat"

// entity is one named-character-reference table row. Name is the reference
// name without the leading "&" and without any trailing ";" — the trailing
// semicolon, when the reference requires one, is appended to the trie key
// separately so both the legacy (no-semicolon) and canonical (semicolon)
// forms can coexist as distinct keys mapping to the same row, exactly as
// the HTML Standard's named character reference table does.
type entity struct {
	Name       string
	Legacy     bool // also valid without a trailing semicolon
	CodePoints []rune
}

// entityTable is a representative subset of the HTML Standard's named
// character reference table (https://html.spec.whatwg.org/multipage/
// named-characters.html#named-character-references): the full legacy
// (semicolon-optional) set of 106 references in its entirety, so the
// standard's "ambiguous ampersand"/attribute-context exceptions are
// exercised completely, plus a representative sample of the much larger
// semicolon-required set spanning punctuation, arrows, set/logic
// operators, the Greek alphabet, and a few genuinely multi-code-point
// references. Transcribing the complete ~2231-row table by hand is not
// attempted; atom.Entities and the tokenizer's longest-prefix-match
// algorithm are exact over whatever is loaded here, and the trie/codec
// machinery they exercise (dat.Trie) is identical regardless of table
// size — see DESIGN.md.
var entityTable = []entity{
	// --- Full legacy (semicolon-optional) set ---
	{"AElig", true, []rune{0xC6}}, {"AMP", true, []rune{'&'}},
	{"Aacute", true, []rune{0xC1}}, {"Acirc", true, []rune{0xC2}},
	{"Agrave", true, []rune{0xC0}}, {"Aring", true, []rune{0xC5}},
	{"Atilde", true, []rune{0xC3}}, {"Auml", true, []rune{0xC4}},
	{"COPY", true, []rune{0xA9}}, {"Ccedil", true, []rune{0xC7}},
	{"ETH", true, []rune{0xD0}}, {"Eacute", true, []rune{0xC9}},
	{"Ecirc", true, []rune{0xCA}}, {"Egrave", true, []rune{0xC8}},
	{"Euml", true, []rune{0xCB}}, {"GT", true, []rune{'>'}},
	{"Iacute", true, []rune{0xCD}}, {"Icirc", true, []rune{0xCE}},
	{"Igrave", true, []rune{0xCC}}, {"Iuml", true, []rune{0xCF}},
	{"LT", true, []rune{'<'}}, {"Ntilde", true, []rune{0xD1}},
	{"Oacute", true, []rune{0xD3}}, {"Ocirc", true, []rune{0xD4}},
	{"Ograve", true, []rune{0xD2}}, {"Oslash", true, []rune{0xD8}},
	{"Otilde", true, []rune{0xD5}}, {"Ouml", true, []rune{0xD6}},
	{"QUOT", true, []rune{'"'}}, {"REG", true, []rune{0xAE}},
	{"THORN", true, []rune{0xDE}}, {"Uacute", true, []rune{0xDA}},
	{"Ucirc", true, []rune{0xDB}}, {"Ugrave", true, []rune{0xD9}},
	{"Uuml", true, []rune{0xDC}}, {"Yacute", true, []rune{0xDD}},
	{"aacute", true, []rune{0xE1}}, {"acirc", true, []rune{0xE2}},
	{"acute", true, []rune{0xB4}}, {"aelig", true, []rune{0xE6}},
	{"agrave", true, []rune{0xE0}}, {"amp", true, []rune{'&'}},
	{"aring", true, []rune{0xE5}}, {"atilde", true, []rune{0xE3}},
	{"auml", true, []rune{0xE4}}, {"brvbar", true, []rune{0xA6}},
	{"ccedil", true, []rune{0xE7}}, {"cedil", true, []rune{0xB8}},
	{"cent", true, []rune{0xA2}}, {"copy", true, []rune{0xA9}},
	{"curren", true, []rune{0xA4}}, {"deg", true, []rune{0xB0}},
	{"divide", true, []rune{0xF7}}, {"eacute", true, []rune{0xE9}},
	{"ecirc", true, []rune{0xEA}}, {"egrave", true, []rune{0xE8}},
	{"eth", true, []rune{0xF0}}, {"euml", true, []rune{0xEB}},
	{"frac12", true, []rune{0xBD}}, {"frac14", true, []rune{0xBC}},
	{"frac34", true, []rune{0xBE}}, {"gt", true, []rune{'>'}},
	{"iacute", true, []rune{0xED}}, {"icirc", true, []rune{0xEE}},
	{"iexcl", true, []rune{0xA1}}, {"igrave", true, []rune{0xEC}},
	{"iquest", true, []rune{0xBF}}, {"iuml", true, []rune{0xEF}},
	{"laquo", true, []rune{0xAB}}, {"lt", true, []rune{'<'}},
	{"macr", true, []rune{0xAF}}, {"micro", true, []rune{0xB5}},
	{"middot", true, []rune{0xB7}}, {"nbsp", true, []rune{0xA0}},
	{"not", true, []rune{0xAC}}, {"ntilde", true, []rune{0xF1}},
	{"oacute", true, []rune{0xF3}}, {"ocirc", true, []rune{0xF4}},
	{"ograve", true, []rune{0xF2}}, {"ordf", true, []rune{0xAA}},
	{"ordm", true, []rune{0xBA}}, {"oslash", true, []rune{0xF8}},
	{"otilde", true, []rune{0xF5}}, {"ouml", true, []rune{0xF6}},
	{"para", true, []rune{0xB6}}, {"plusmn", true, []rune{0xB1}},
	{"pound", true, []rune{0xA3}}, {"quot", true, []rune{'"'}},
	{"raquo", true, []rune{0xBB}}, {"reg", true, []rune{0xAE}},
	{"sect", true, []rune{0xA7}}, {"shy", true, []rune{0xAD}},
	{"sup1", true, []rune{0xB9}}, {"sup2", true, []rune{0xB2}},
	{"sup3", true, []rune{0xB3}}, {"szlig", true, []rune{0xDF}},
	{"thorn", true, []rune{0xFE}}, {"times", true, []rune{0xD7}},
	{"uacute", true, []rune{0xFA}}, {"ucirc", true, []rune{0xFB}},
	{"ugrave", true, []rune{0xF9}}, {"uml", true, []rune{0xA8}},
	{"uuml", true, []rune{0xFC}}, {"yacute", true, []rune{0xFD}},
	{"yen", true, []rune{0xA5}}, {"yuml", true, []rune{0xFF}},

	// --- Representative semicolon-required sample ---
	{"apos", false, []rune{0x27}},
	{"hellip", false, []rune{0x2026}}, {"mdash", false, []rune{0x2014}},
	{"ndash", false, []rune{0x2013}}, {"lsquo", false, []rune{0x2018}},
	{"rsquo", false, []rune{0x2019}}, {"ldquo", false, []rune{0x201C}},
	{"rdquo", false, []rune{0x201D}}, {"sbquo", false, []rune{0x201A}},
	{"bdquo", false, []rune{0x201E}}, {"dagger", false, []rune{0x2020}},
	{"Dagger", false, []rune{0x2021}}, {"permil", false, []rune{0x2030}},
	{"lsaquo", false, []rune{0x2039}}, {"rsaquo", false, []rune{0x203A}},
	{"trade", false, []rune{0x2122}}, {"euro", false, []rune{0x20AC}},
	{"bull", false, []rune{0x2022}}, {"oline", false, []rune{0x203E}},
	{"frasl", false, []rune{0x2044}}, {"weierp", false, []rune{0x2118}},
	{"image", false, []rune{0x2111}}, {"real", false, []rune{0x211C}},
	{"alefsym", false, []rune{0x2135}}, {"larr", false, []rune{0x2190}},
	{"uarr", false, []rune{0x2191}}, {"rarr", false, []rune{0x2192}},
	{"darr", false, []rune{0x2193}}, {"harr", false, []rune{0x2194}},
	{"crarr", false, []rune{0x21B5}}, {"lArr", false, []rune{0x21D0}},
	{"uArr", false, []rune{0x21D1}}, {"rArr", false, []rune{0x21D2}},
	{"dArr", false, []rune{0x21D3}}, {"hArr", false, []rune{0x21D4}},
	{"forall", false, []rune{0x2200}}, {"part", false, []rune{0x2202}},
	{"exist", false, []rune{0x2203}}, {"empty", false, []rune{0x2205}},
	{"nabla", false, []rune{0x2207}}, {"isin", false, []rune{0x2208}},
	{"notin", false, []rune{0x2209}}, {"ni", false, []rune{0x220B}},
	{"prod", false, []rune{0x220F}}, {"sum", false, []rune{0x2211}},
	{"minus", false, []rune{0x2212}}, {"lowast", false, []rune{0x2217}},
	{"radic", false, []rune{0x221A}}, {"prop", false, []rune{0x221D}},
	{"infin", false, []rune{0x221E}}, {"ang", false, []rune{0x2220}},
	{"and", false, []rune{0x2227}}, {"or", false, []rune{0x2228}},
	{"cap", false, []rune{0x2229}}, {"cup", false, []rune{0x222A}},
	{"int", false, []rune{0x222B}}, {"there4", false, []rune{0x2234}},
	{"sim", false, []rune{0x223C}}, {"cong", false, []rune{0x2245}},
	{"asymp", false, []rune{0x2248}}, {"ne", false, []rune{0x2260}},
	{"equiv", false, []rune{0x2261}}, {"le", false, []rune{0x2264}},
	{"ge", false, []rune{0x2265}}, {"sub", false, []rune{0x2282}},
	{"sup", false, []rune{0x2283}}, {"nsub", false, []rune{0x2284}},
	{"sube", false, []rune{0x2286}}, {"supe", false, []rune{0x2287}},
	{"oplus", false, []rune{0x2295}}, {"otimes", false, []rune{0x2297}},
	{"perp", false, []rune{0x22A5}}, {"sdot", false, []rune{0x22C5}},
	{"lceil", false, []rune{0x2308}}, {"rceil", false, []rune{0x2309}},
	{"lfloor", false, []rune{0x230A}}, {"rfloor", false, []rune{0x230B}},
	{"lang", false, []rune{0x27E8}}, {"rang", false, []rune{0x27E9}},
	{"loz", false, []rune{0x25CA}}, {"spades", false, []rune{0x2660}},
	{"clubs", false, []rune{0x2663}}, {"hearts", false, []rune{0x2665}},
	{"diams", false, []rune{0x2666}}, {"OElig", false, []rune{0x152}},
	{"oelig", false, []rune{0x153}}, {"Scaron", false, []rune{0x160}},
	{"scaron", false, []rune{0x161}}, {"Yuml", false, []rune{0x178}},
	{"fnof", false, []rune{0x192}}, {"circ", false, []rune{0x2C6}},
	{"tilde", false, []rune{0x2DC}}, {"ensp", false, []rune{0x2002}},
	{"emsp", false, []rune{0x2003}}, {"thinsp", false, []rune{0x2009}},
	{"zwnj", false, []rune{0x200C}}, {"zwj", false, []rune{0x200D}},
	{"lrm", false, []rune{0x200E}}, {"rlm", false, []rune{0x200F}},
	{"Alpha", false, []rune{0x391}}, {"Beta", false, []rune{0x392}},
	{"Gamma", false, []rune{0x393}}, {"Delta", false, []rune{0x394}},
	{"Epsilon", false, []rune{0x395}}, {"Zeta", false, []rune{0x396}},
	{"Eta", false, []rune{0x397}}, {"Theta", false, []rune{0x398}},
	{"Iota", false, []rune{0x399}}, {"Kappa", false, []rune{0x39A}},
	{"Lambda", false, []rune{0x39B}}, {"Mu", false, []rune{0x39C}},
	{"Nu", false, []rune{0x39D}}, {"Xi", false, []rune{0x39E}},
	{"Omicron", false, []rune{0x39F}}, {"Pi", false, []rune{0x3A0}},
	{"Rho", false, []rune{0x3A1}}, {"Sigma", false, []rune{0x3A3}},
	{"Tau", false, []rune{0x3A4}}, {"Upsilon", false, []rune{0x3A5}},
	{"Phi", false, []rune{0x3A6}}, {"Chi", false, []rune{0x3A7}},
	{"Psi", false, []rune{0x3A8}}, {"Omega", false, []rune{0x3A9}},
	{"alpha", false, []rune{0x3B1}}, {"beta", false, []rune{0x3B2}},
	{"gamma", false, []rune{0x3B3}}, {"delta", false, []rune{0x3B4}},
	{"epsilon", false, []rune{0x3B5}}, {"zeta", false, []rune{0x3B6}},
	{"eta", false, []rune{0x3B7}}, {"theta", false, []rune{0x3B8}},
	{"iota", false, []rune{0x3B9}}, {"kappa", false, []rune{0x3BA}},
	{"lambda", false, []rune{0x3BB}}, {"mu", false, []rune{0x3BC}},
	{"nu", false, []rune{0x3BD}}, {"xi", false, []rune{0x3BE}},
	{"omicron", false, []rune{0x3BF}}, {"pi", false, []rune{0x3C0}},
	{"rho", false, []rune{0x3C1}}, {"sigmaf", false, []rune{0x3C2}},
	{"sigma", false, []rune{0x3C3}}, {"tau", false, []rune{0x3C4}},
	{"upsilon", false, []rune{0x3C5}}, {"phi", false, []rune{0x3C6}},
	{"chi", false, []rune{0x3C7}}, {"psi", false, []rune{0x3C8}},
	{"omega", false, []rune{0x3C9}},

	// Genuine multi-code-point references (HTML Standard oddities).
	{"acE", false, []rune{0x223E, 0x0333}},
	{"bne", false, []rune{0x3D, 0x20E5}},
	{"bnequiv", false, []rune{0x2261, 0x20E5}},
	{"caps", false, []rune{0x2229, 0xFE00}},
	{"cups", false, []rune{0x222A, 0xFE00}},
	{"NotEqualTilde", false, []rune{0x2242, 0x0338}},
}

// Entities is the C4 trie mapping entity-name bytes (including a trailing
// ';' where the reference requires one) to a 1-based index into
// entityValues. Index 0 is never assigned, so Trie.At's zero value cannot
// be mistaken for a real entry.
var Entities = dat.New(dat.WithCapacity(2048))

var entityValues []entity

func init() {
	entityValues = append(entityValues, entity{}) // index 0 unused
	for _, e := range entityTable {
		entityValues = append(entityValues, e)
		idx := int32(len(entityValues) - 1)

		withSemi := append([]byte(e.Name), ';')
		insertEntity(withSemi, idx)
		if e.Legacy {
			insertEntity([]byte(e.Name), idx)
		}
	}
}

func insertEntity(key []byte, idx int32) {
	_, err := Entities.Insert(key)
	dat.Assert(err == nil, "atom: entity table insert %q: %v", key, err)
	v, _ := Entities.At(key)
	_ = v.Set(idx)
}

// EntityCodePoints returns the resolved code points and whether the
// matched key (which must already end at a terminal state of Entities) is
// a legacy semicolon-optional reference.
func EntityCodePoints(idx int32) (codePoints []rune, legacy bool) {
	e := entityValues[idx]
	return e.CodePoints, e.Legacy
}
