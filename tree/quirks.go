package tree

import (
	"strings"

	"github.com/wordring/htmlx/token"
)

// quirksPublicIDs is the literal public-id set that forces quirks mode
// regardless of system-id (spec.md §4.5's "public-id in a literal set").
var quirksPublicIDs = []string{
	"-//w3o//dtd w3 html strict 3.0//en//", "-/w3d/dtd html 4.0 transitional/en",
	"html", "-//ietf//dtd html 2.0//en", "-//ietf//dtd html 2.1e//en",
	"-//ietf//dtd html 3.0//en", "-//ietf//dtd html 3.0//en//",
	"-//ietf//dtd html 3.2//en", "-//ietf//dtd html 3://en",
	"-//ietf//dtd html level 0//en", "-//ietf//dtd html level 0//en//2.0",
	"-//ietf//dtd html level 1//en", "-//ietf//dtd html level 1//en//2.0",
	"-//ietf//dtd html level 2//en", "-//ietf//dtd html level 2//en//2.0",
	"-//ietf//dtd html level 3//en", "-//ietf//dtd html level 3//en//3.0",
	"-//ietf//dtd html strict//en", "-//ietf//dtd html strict//en//3.0",
	"-//ietf//dtd html strict level 3//en//3.0",
	"-//ietf//dtd html//en", "-//ietf//dtd html//en//2.0", "-//ietf//dtd html//en//3.0",
	"-//metrius//dtd metrius presentational//en",
	"-//microsoft//dtd internet explorer 2.0 html strict//en",
	"-//microsoft//dtd internet explorer 2.0 html//en",
	"-//microsoft//dtd internet explorer 2.0 tables//en",
	"-//microsoft//dtd internet explorer 3.0 html strict//en",
	"-//microsoft//dtd internet explorer 3.0 html//en",
	"-//microsoft//dtd internet explorer 3.0 tables//en",
	"-//netscape comm. corp.//dtd html//en", "-//netscape comm. corp.//dtd strict html//en",
	"-//o'reilly and associates//dtd html 2.0//en",
	"-//o'reilly and associates//dtd html extended 1.0//en",
	"-//o'reilly and associates//dtd html extended relaxed 1.0//en",
	"-//softquad software//dtd hotmetal pro 6.0::19990601::extensions to html 4.0//en",
	"-//softquad//dtd hotmetal pro 4.0::19971010::extensions to html 4.0//en",
	"-//spyglass//dtd html 2.0 extended//en",
	"-//sq//dtd html 2.0 hotmetal + extensions//en",
	"-//sun microsystems corp.//dtd hotjava html//en",
	"-//sun microsystems corp.//dtd hotjava strict html//en",
	"-//w3c//dtd html 3 1995-03-24//en", "-//w3c//dtd html 3.2 draft//en",
	"-//w3c//dtd html 3.2 final//en", "-//w3c//dtd html 3.2//en", "-//w3c//dtd html 3.2s draft//en",
	"-//w3c//dtd html 4.0 frameset//en", "-//w3c//dtd html 4.0 transitional//en",
	"-//w3c//dtd html experimental 19960712//en", "-//w3c//dtd html experimental 970421//en",
	"-//w3c//dtd w3 html//en", "-//w3o//dtd w3 html 3.0//en", "-//w3o//dtd w3 html 3.0//en//",
	"-//webtechs//dtd mozilla html 2.0//en", "-//webtechs//dtd mozilla html//en",
}

const quirksSystemIDIBM = "http://www.ibm.com/data/dtd/v11/ibmxhtml1-transitional.dtd"

var limitedQuirksPublicIDPrefixes = []string{
	"-//w3c//dtd xhtml 1.0 frameset//",
	"-//w3c//dtd xhtml 1.0 transitional//",
}

var html401QuirksPublicIDPrefixes = []string{
	"-//w3c//dtd html 4.01 frameset//",
	"-//w3c//dtd html 4.01 transitional//",
}

func hasPrefixFold(s string, prefixes []string) bool {
	s = strings.ToLower(s)
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}

func inSetFold(s string, set []string) bool {
	s = strings.ToLower(s)
	for _, v := range set {
		if s == v {
			return true
		}
	}
	return false
}

// quirksModeForDoctype implements spec.md §4.5's last paragraph: force-
// quirks flag, non-html name, a literal public-id set, the IBM system-id,
// or an ASCII-case-insensitive public-id prefix match (with the HTML 4.01
// prefixes additionally requiring an empty system-id) all select quirks
// mode; the two XHTML prefixes (and the HTML 4.01 prefixes when system-id
// is non-empty) select limited-quirks mode.
func quirksModeForDoctype(tok token.Token) QuirksMode {
	if tok.ForceQuirks || (tok.Name != "" && tok.Name != "html") {
		return Quirks
	}
	if inSetFold(tok.PublicID, quirksPublicIDs) {
		return Quirks
	}
	if strings.EqualFold(tok.SystemID, quirksSystemIDIBM) {
		return Quirks
	}
	if hasPrefixFold(tok.PublicID, html401QuirksPublicIDPrefixes) {
		if tok.SystemID == "" {
			return Quirks
		}
		return LimitedQuirks
	}
	if hasPrefixFold(tok.PublicID, limitedQuirksPublicIDPrefixes) {
		return LimitedQuirks
	}
	return NoQuirks
}
