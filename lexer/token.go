// SPDX-License-Identifier: MIT
package lexer

import "strconv"

type (
	// TokenID int holding an identifier for the Token types.
	TokenID int

	// Token holds a single lexical unit of the markup source.
	Token struct {
		Val string  // Text of Identifier & String tokens, a substring of the source.
		Num uint32  // Value of Number tokens.
		ID  TokenID // The type of this Token.
		Pos int     // The starting position, (in bytes) of this Token.
	}
)

// iota is used to define an incrementing number sequence for const
// declarations
const (
	_            TokenID = iota // Consume 0 to start actual numbering at 1.
	Identifier                  // `div`, `code-block`.
	String                      // `"text"`, the quotes are excluded from Val.
	Number                      // `123`.
	LeftParen                   // '('.
	RightParen                  // ')'.
	LeftBracket                 // '['.
	RightBracket                // ']'.
	LeftBrace                   // '{'.
	RightBrace                  // '}'.
	DoubleDot                   // '..'.
	Dot                         // '.'.
	Comma                       // ','.
	Colon                       // ':'.
	EndOfInput                  // End of the source.
)

var tokenNames = [...]string{
	Identifier:   "identifier",
	String:       "string literal",
	Number:       "number",
	LeftParen:    "`(`",
	RightParen:   "`)`",
	LeftBracket:  "`[`",
	RightBracket: "`]`",
	LeftBrace:    "`{`",
	RightBrace:   "`}`",
	DoubleDot:    "`..`",
	Dot:          "`.`",
	Comma:        "`,`",
	Colon:        "`:`",
	EndOfInput:   "end of input",
}

// String is the fmt.Stringer implementation for TokenID.
func (id TokenID) String() string {
	if id > 0 && int(id) < len(tokenNames) {
		return tokenNames[id]
	}

	return "TokenID(" + strconv.Itoa(int(id)) + ")"
}

// String renders the Token as it would appear in the source.
func (t Token) String() string {
	switch t.ID {
	case Identifier:
		return t.Val
	case String:
		return strconv.Quote(t.Val)
	case Number:
		return strconv.FormatUint(uint64(t.Num), 10)
	default:
		return t.ID.String()
	}
}
