package tree

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/wordring/htmlx/token"
)

func TestQuirksModeForDoctypeForceQuirks(t *testing.T) {
	tok := token.Token{Kind: token.KindDOCTYPE, Name: "html", ForceQuirks: true}
	assert.Equal(t, Quirks, quirksModeForDoctype(tok))
}

func TestQuirksModeForDoctypeNonHTMLName(t *testing.T) {
	tok := token.Token{Kind: token.KindDOCTYPE, Name: "svg"}
	assert.Equal(t, Quirks, quirksModeForDoctype(tok))
}

func TestQuirksModeForDoctypeLiteralPublicIDSet(t *testing.T) {
	tok := token.Token{Kind: token.KindDOCTYPE, Name: "html", PublicID: "-//IETF//DTD HTML STRICT//EN"}
	assert.Equal(t, Quirks, quirksModeForDoctype(tok))
}

func TestQuirksModeForDoctypeIBMSystemID(t *testing.T) {
	tok := token.Token{
		Kind:     token.KindDOCTYPE,
		Name:     "html",
		SystemID: "http://www.ibm.com/data/dtd/v11/ibmxhtml1-transitional.dtd",
	}
	assert.Equal(t, Quirks, quirksModeForDoctype(tok))
}

func TestQuirksModeForDoctypeXHTMLFramesetPrefixIsLimitedQuirks(t *testing.T) {
	tok := token.Token{Kind: token.KindDOCTYPE, Name: "html", PublicID: "-//W3C//DTD XHTML 1.0 Frameset//EN"}
	assert.Equal(t, LimitedQuirks, quirksModeForDoctype(tok))
}

func TestQuirksModeForDoctypeHTML401WithSystemIDIsLimitedQuirks(t *testing.T) {
	tok := token.Token{
		Kind:     token.KindDOCTYPE,
		Name:     "html",
		PublicID: "-//W3C//DTD HTML 4.01 Transitional//EN",
		SystemID: "http://www.w3.org/TR/html4/loose.dtd",
	}
	assert.Equal(t, LimitedQuirks, quirksModeForDoctype(tok))
}

func TestQuirksModeForDoctypeHTML401WithoutSystemIDIsQuirks(t *testing.T) {
	tok := token.Token{
		Kind:     token.KindDOCTYPE,
		Name:     "html",
		PublicID: "-//W3C//DTD HTML 4.01 Transitional//EN",
	}
	assert.Equal(t, Quirks, quirksModeForDoctype(tok))
}

func TestQuirksModeForDoctypePlainHTML5IsNoQuirks(t *testing.T) {
	tok := token.Token{Kind: token.KindDOCTYPE, Name: "html"}
	assert.Equal(t, NoQuirks, quirksModeForDoctype(tok))
}
