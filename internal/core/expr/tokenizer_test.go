package expr

import (
	"errors"
	"strings"
	"testing"
)

func collect(t *testing.T, input string) []Token {
	t.Helper()
	tokens, err := NewTokenizer(strings.NewReader(input))
	if err != nil {
		t.Fatalf("NewTokenizer(%q) error = %v", input, err)
	}
	var out []Token
	for {
		tok := tokens.Token()
		out = append(out, tok)
		if tok.Kind == EOF {
			return out
		}
		if err := tokens.Next(); err != nil {
			t.Fatalf("Next() error = %v", err)
		}
	}
}

func TestTokenizer(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []Token
	}{
		{
			name:  "dice sum",
			input: "-2d3+1d4",
			want: []Token{
				{Kind: Subtract, Text: "-", Pos: 0},
				{Kind: Number, Text: "2d3", Pos: 1},
				{Kind: Add, Text: "+", Pos: 4},
				{Kind: Number, Text: "1d4", Pos: 5},
				{Kind: EOF, Pos: 8},
			},
		},
		{
			name:  "whitespace and parens",
			input: " ( 1.5 *\t2 ) / 3 ",
			want: []Token{
				{Kind: OpenParen, Text: "(", Pos: 1},
				{Kind: Number, Text: "1.5", Pos: 3},
				{Kind: Multiply, Text: "*", Pos: 7},
				{Kind: Number, Text: "2", Pos: 9},
				{Kind: CloseParen, Text: ")", Pos: 11},
				{Kind: Divide, Text: "/", Pos: 13},
				{Kind: Number, Text: "3", Pos: 15},
				{Kind: EOF, Pos: 17},
			},
		},
		{
			name:  "second decimal point starts a new token",
			input: "1.2.3",
			want: []Token{
				{Kind: Number, Text: "1.2", Pos: 0},
				{Kind: Number, Text: ".3", Pos: 3},
				{Kind: EOF, Pos: 5},
			},
		},
		{
			name:  "number may start with separator",
			input: "d6dd",
			want: []Token{
				{Kind: Number, Text: "d6dd", Pos: 0},
				{Kind: EOF, Pos: 4},
			},
		},
		{
			name:  "empty",
			input: "   ",
			want:  []Token{{Kind: EOF, Pos: 3}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := collect(t, tt.input)
			if len(got) != len(tt.want) {
				t.Fatalf("got %d tokens %v, want %d", len(got), got, len(tt.want))
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("token[%d] = %+v, want %+v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestTokenizerEOFIsPermanent(t *testing.T) {
	tokens, err := NewTokenizer(strings.NewReader("7"))
	if err != nil {
		t.Fatalf("NewTokenizer() error = %v", err)
	}
	for i := 0; i < 3; i++ {
		if err := tokens.Next(); err != nil {
			t.Fatalf("Next() error = %v", err)
		}
		if tokens.Token().Kind != EOF {
			t.Fatalf("token after end = %v, want EOF", tokens.Token())
		}
	}
}

func TestTokenizerLexError(t *testing.T) {
	tests := []struct {
		input string
		char  rune
		pos   int
	}{
		{input: "#", char: '#', pos: 0},
		{input: "2 x", char: 'x', pos: 2},
		{input: "1\x002", char: 0, pos: 1},
		{input: "2D6", char: 'D', pos: 1},
	}
	for _, tt := range tests {
		tokens, err := NewTokenizer(strings.NewReader(tt.input))
		for err == nil && tokens.Token().Kind != EOF {
			err = tokens.Next()
		}
		var lexErr *LexError
		if !errors.As(err, &lexErr) {
			t.Fatalf("%q: expected LexError, got %v", tt.input, err)
		}
		if lexErr.Char != tt.char || lexErr.Pos != tt.pos {
			t.Fatalf("%q: LexError = %+v, want char %q at %d", tt.input, lexErr, tt.char, tt.pos)
		}
	}
}
