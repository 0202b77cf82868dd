package tokenizer

import (
	"github.com/wordring/htmlx/atom"
	"github.com/wordring/htmlx/token"
)

func (t *Tokenizer) selfClosingStartTagState(r rune, ok bool) stateFn {
	if !ok {
		t.reportError(token.ErrEOFInTag)
		return nil
	}
	switch r {
	case '>':
		t.tag.SelfClosing = true
		t.finishTagName()
		t.emitTag()
		return (*Tokenizer).dataState
	default:
		t.reportError(token.ErrUnexpectedSolidusInTag)
		return (*Tokenizer).beforeAttributeNameState(t, r, ok)
	}
}

func (t *Tokenizer) beforeAttributeNameState(r rune, ok bool) stateFn {
	if !ok {
		return (*Tokenizer).afterAttributeNameState(t, r, ok)
	}
	switch {
	case isWhitespace(r):
		return (*Tokenizer).beforeAttributeNameState
	case r == '/' || r == '>':
		return (*Tokenizer).afterAttributeNameState(t, r, ok)
	case r == '=':
		t.reportError(token.ErrUnexpectedEqualsSignBeforeAttributeName)
		t.startAttr()
		t.attrName = append(t.attrName, r)
		return (*Tokenizer).attributeNameState
	default:
		t.startAttr()
		return (*Tokenizer).attributeNameState(t, r, ok)
	}
}

func (t *Tokenizer) startAttr() {
	t.attrName = t.attrName[:0]
	t.attrValue = t.attrValue[:0]
}

func (t *Tokenizer) attributeNameState(r rune, ok bool) stateFn {
	if !ok {
		return (*Tokenizer).afterAttributeNameState(t, r, ok)
	}
	switch {
	case isWhitespace(r) || r == '/' || r == '>':
		return (*Tokenizer).afterAttributeNameState(t, r, ok)
	case r == '=':
		t.finishAttrName()
		return (*Tokenizer).beforeAttributeValueState
	case isUpper(r):
		t.attrName = append(t.attrName, toLower(r))
		return (*Tokenizer).attributeNameState
	case r == 0:
		t.reportError(token.ErrUnexpectedNullCharacter)
		t.attrName = append(t.attrName, 0xFFFD)
		return (*Tokenizer).attributeNameState
	case r == '"' || r == '\'' || r == '<':
		t.reportError(token.ErrUnexpectedCharacterInAttributeName)
		t.attrName = append(t.attrName, r)
		return (*Tokenizer).attributeNameState
	default:
		t.attrName = append(t.attrName, r)
		return (*Tokenizer).attributeNameState
	}
}

func (t *Tokenizer) finishAttrName() {
	name := string(t.attrName)
	if t.tag.HasAttr(name) {
		t.reportError(token.ErrDuplicateAttribute)
		return
	}
	t.tag.MarkAttr(name)
}

// commitPendingAttr appends the in-progress attribute to the tag's
// attribute list, dropping it (per the standard) if its name duplicates an
// attribute already kept.
func (t *Tokenizer) commitPendingAttr() {
	name := string(t.attrName)
	if name == "" {
		return
	}
	for _, a := range t.tag.Attributes {
		if a.LocalName == name {
			return
		}
	}
	t.tag.Attributes = append(t.tag.Attributes, token.Attribute{
		LocalName: name,
		Value:     string(t.attrValue),
		AttrID:    int32(atom.LookupAttr([]byte(name))),
	})
}

func (t *Tokenizer) afterAttributeNameState(r rune, ok bool) stateFn {
	t.commitPendingAttr()
	if !ok {
		t.reportError(token.ErrEOFInTag)
		return nil
	}
	switch {
	case isWhitespace(r):
		return (*Tokenizer).afterAttributeNameState
	case r == '/':
		return (*Tokenizer).selfClosingStartTagState
	case r == '=':
		return (*Tokenizer).beforeAttributeValueState
	case r == '>':
		t.finishTagName()
		t.emitTag()
		return (*Tokenizer).dataState
	default:
		t.startAttr()
		return (*Tokenizer).attributeNameState(t, r, ok)
	}
}

func (t *Tokenizer) beforeAttributeValueState(r rune, ok bool) stateFn {
	switch {
	case ok && isWhitespace(r):
		return (*Tokenizer).beforeAttributeValueState
	case ok && r == '"':
		return (*Tokenizer).attributeValueDoubleQuotedState
	case ok && r == '\'':
		return (*Tokenizer).attributeValueSingleQuotedState
	case ok && r == '>':
		t.reportError(token.ErrMissingAttributeValue)
		t.commitPendingAttr()
		t.finishTagName()
		t.emitTag()
		return (*Tokenizer).dataState
	default:
		return (*Tokenizer).attributeValueUnquotedState(t, r, ok)
	}
}

func (t *Tokenizer) attributeValueDoubleQuotedState(r rune, ok bool) stateFn {
	if !ok {
		t.reportError(token.ErrEOFInTag)
		return nil
	}
	switch r {
	case '"':
		t.commitPendingAttr()
		return (*Tokenizer).afterAttributeValueQuotedState
	case '&':
		t.tempBuf = []rune{'&'}
		t.returnState = (*Tokenizer).attributeValueDoubleQuotedState
		t.charRefInAttr = true
		return (*Tokenizer).characterReferenceState
	case 0:
		t.reportError(token.ErrUnexpectedNullCharacter)
		t.attrValue = append(t.attrValue, 0xFFFD)
		return (*Tokenizer).attributeValueDoubleQuotedState
	default:
		t.attrValue = append(t.attrValue, r)
		return (*Tokenizer).attributeValueDoubleQuotedState
	}
}

func (t *Tokenizer) attributeValueSingleQuotedState(r rune, ok bool) stateFn {
	if !ok {
		t.reportError(token.ErrEOFInTag)
		return nil
	}
	switch r {
	case '\'':
		t.commitPendingAttr()
		return (*Tokenizer).afterAttributeValueQuotedState
	case '&':
		t.tempBuf = []rune{'&'}
		t.returnState = (*Tokenizer).attributeValueSingleQuotedState
		t.charRefInAttr = true
		return (*Tokenizer).characterReferenceState
	case 0:
		t.reportError(token.ErrUnexpectedNullCharacter)
		t.attrValue = append(t.attrValue, 0xFFFD)
		return (*Tokenizer).attributeValueSingleQuotedState
	default:
		t.attrValue = append(t.attrValue, r)
		return (*Tokenizer).attributeValueSingleQuotedState
	}
}

func (t *Tokenizer) attributeValueUnquotedState(r rune, ok bool) stateFn {
	if !ok {
		t.reportError(token.ErrEOFInTag)
		return nil
	}
	switch {
	case isWhitespace(r):
		t.commitPendingAttr()
		return (*Tokenizer).beforeAttributeNameState
	case r == '&':
		t.tempBuf = []rune{'&'}
		t.returnState = (*Tokenizer).attributeValueUnquotedState
		t.charRefInAttr = true
		return (*Tokenizer).characterReferenceState
	case r == '>':
		t.commitPendingAttr()
		t.finishTagName()
		t.emitTag()
		return (*Tokenizer).dataState
	case r == 0:
		t.reportError(token.ErrUnexpectedNullCharacter)
		t.attrValue = append(t.attrValue, 0xFFFD)
		return (*Tokenizer).attributeValueUnquotedState
	case r == '"' || r == '\'' || r == '<' || r == '=' || r == '`':
		t.reportError(token.ErrUnexpectedCharacterInUnquotedAttributeValue)
		t.attrValue = append(t.attrValue, r)
		return (*Tokenizer).attributeValueUnquotedState
	default:
		t.attrValue = append(t.attrValue, r)
		return (*Tokenizer).attributeValueUnquotedState
	}
}

func (t *Tokenizer) afterAttributeValueQuotedState(r rune, ok bool) stateFn {
	if !ok {
		t.reportError(token.ErrEOFInTag)
		return nil
	}
	switch {
	case isWhitespace(r):
		return (*Tokenizer).beforeAttributeNameState
	case r == '/':
		return (*Tokenizer).selfClosingStartTagState
	case r == '>':
		t.finishTagName()
		t.emitTag()
		return (*Tokenizer).dataState
	default:
		t.reportError(token.ErrUnexpectedCharacterInAttributeName) // "missing-whitespace-between-attributes" family
		return (*Tokenizer).beforeAttributeNameState(t, r, ok)
	}
}
