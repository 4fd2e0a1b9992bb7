package compiler

import (
	"fmt"
	"sort"
	"strings"
	"unicode"
)

// UnicodeCategorySet is an ordered set of Unicode general-category codes
// (e.g. "Lu", "Nd") that together make up one \p-style class.
type UnicodeCategorySet []string

// Contains reports whether r belongs to any category in the set.
func (s UnicodeCategorySet) Contains(r rune) bool {
	for _, code := range s {
		if table, ok := unicode.Categories[code]; ok && unicode.Is(table, r) {
			return true
		}
	}
	return false
}

// digitCategories backs \d / \D per the tokenizer table in §4.2.
var digitCategories = UnicodeCategorySet{"Nd", "No", "Nl"}

// singleLetterCategories maps the one-letter shorthand (L, M, N, P, S, Z, C)
// to the full set of two-letter categories it stands for.
var singleLetterCategories = map[byte]UnicodeCategorySet{
	'L': {"Lu", "Ll", "Lt", "Lm", "Lo"},
	'M': {"Mn", "Mc", "Me"},
	'N': {"Nd", "Nl", "No"},
	'P': {"Pc", "Pd", "Ps", "Pe", "Pi", "Pf", "Po"},
	'S': {"Sm", "Sc", "Sk", "So"},
	'Z': {"Zs", "Zl", "Zp"},
	'C': {"Cc", "Cf", "Cs", "Co", "Cn"},
}

// namedCategories maps both short (Lu) and long (Uppercase_Letter) class
// names to the single category code they select.
var namedCategories = map[string]string{
	"Lu": "Lu", "Uppercase_Letter": "Lu",
	"Ll": "Ll", "Lowercase_Letter": "Ll",
	"Lt": "Lt", "Titlecase_Letter": "Lt",
	"Lm": "Lm", "Modifier_Letter": "Lm",
	"Lo": "Lo", "Other_Letter": "Lo",
	"Mn": "Mn", "Nonspacing_Mark": "Mn",
	"Mc": "Mc", "Spacing_Mark": "Mc",
	"Me": "Me", "Enclosing_Mark": "Me",
	"Nd": "Nd", "Decimal_Number": "Nd",
	"Nl": "Nl", "Letter_Number": "Nl",
	"No": "No", "Other_Number": "No",
	"Pc": "Pc", "Connector_Punctuation": "Pc",
	"Pd": "Pd", "Dash_Punctuation": "Pd",
	"Ps": "Ps", "Open_Punctuation": "Ps",
	"Pe": "Pe", "Close_Punctuation": "Pe",
	"Pi": "Pi", "Initial_Punctuation": "Pi",
	"Pf": "Pf", "Final_Punctuation": "Pf",
	"Po": "Po", "Other_Punctuation": "Po",
	"Sm": "Sm", "Math_Symbol": "Sm",
	"Sc": "Sc", "Currency_Symbol": "Sc",
	"Sk": "Sk", "Modifier_Symbol": "Sk",
	"So": "So", "Other_Symbol": "So",
	"Zs": "Zs", "Space_Separator": "Zs",
	"Zl": "Zl", "Line_Separator": "Zl",
	"Zp": "Zp", "Paragraph_Separator": "Zp",
	"Cc": "Cc", "Control": "Cc",
	"Cf": "Cf", "Format": "Cf",
	"Cs": "Cs", "Surrogate": "Cs",
	"Co": "Co", "Private_Use": "Co",
	"Cn": "Cn", "Unassigned": "Cn",
}

// unicodeClassForSingleLetter resolves a \pX / \PX shorthand letter.
func unicodeClassForSingleLetter(letter byte) (UnicodeCategorySet, error) {
	if set, ok := singleLetterCategories[letter]; ok {
		return set, nil
	}
	return nil, fmt.Errorf("%q is not a known single-letter Unicode class identifier; expected one of L, M, N, P, S, Z, C", string(letter))
}

// unicodeClassForName resolves a \p{Name} / \P{Name} identifier, accepting
// both short (Lu) and long (Uppercase_Letter) forms.
func unicodeClassForName(name string) (UnicodeCategorySet, error) {
	if len(name) == 1 {
		if set, err := unicodeClassForSingleLetter(name[0]); err == nil {
			return set, nil
		}
	}
	if code, ok := namedCategories[name]; ok {
		return UnicodeCategorySet{code}, nil
	}
	return nil, fmt.Errorf("%q is not a known Unicode class identifier; expected one of %s", name, legalClassNames())
}

func legalClassNames() string {
	names := make([]string, 0, len(namedCategories)+7)
	for k := range namedCategories {
		names = append(names, k)
	}
	for l := range singleLetterCategories {
		names = append(names, string(l))
	}
	sort.Strings(names)
	return strings.Join(names, ", ")
}
