package sexp

import (
	"reflect"
	"testing"

	"github.com/rocforge/go-rocdl/pkg/util/source"
)

// ============================================================================
// Positive Tests
// ============================================================================

func TestSexp_0(t *testing.T) {
	CheckOk(t, nil, "")
}

func TestSexp_1(t *testing.T) {
	e1 := List{nil}
	CheckOk(t, &e1, "()")
}

func TestSexp_2(t *testing.T) {
	e1 := List{nil}
	e2 := List{[]SExp{&e1}}
	CheckOk(t, &e2, "(())")
}

func TestSexp_3(t *testing.T) {
	e1 := Array{nil}
	CheckOk(t, &e1, "[]")
}

func TestSexp_4(t *testing.T) {
	e1 := Array{nil}
	e2 := Array{[]SExp{&e1}}
	CheckOk(t, &e2, "[[]]")
}

func TestSexp_5(t *testing.T) {
	e1 := Array{nil}
	e2 := List{[]SExp{&e1}}
	CheckOk(t, &e2, "([])")
}

func TestSexp_6(t *testing.T) {
	e1 := List{nil}
	e2 := Array{[]SExp{&e1}}
	CheckOk(t, &e2, "[()]")
}

func TestSexp_7(t *testing.T) {
	e1 := Symbol{"symbol"}
	CheckOk(t, &e1, "symbol")
}

func TestSexp_8(t *testing.T) {
	e1 := Symbol{"12345"}
	CheckOk(t, &e1, "12345")
}

func TestSexp_9(t *testing.T) {
	e1 := Symbol{"%0"}
	CheckOk(t, &e1, "%0")
}

func TestSexp_10(t *testing.T) {
	e1 := Symbol{"symbol123"}
	e2 := List{[]SExp{&e1}}
	CheckOk(t, &e2, "(symbol123)")
}

func TestSexp_11(t *testing.T) {
	e1 := Symbol{"symbol"}
	e2 := List{[]SExp{&e1, &e1}}
	CheckOk(t, &e2, "(symbol symbol)")
}

func TestSexp_12(t *testing.T) {
	e1 := Symbol{"memref"}
	e2 := Symbol{"4"}
	e3 := Symbol{"8"}
	e4 := Array{[]SExp{&e2, &e3}}
	e5 := Symbol{"i32"}
	e6 := List{[]SExp{&e1, &e4, &e5}}
	CheckOk(t, &e6, "(memref [4 8] i32)")
}

func TestSexp_13(t *testing.T) {
	e1 := Symbol{"\"hello world\""}
	CheckOk(t, &e1, "\"hello world\"")
}

func TestSexp_14(t *testing.T) {
	// Parentheses within a string literal do not close the list
	e1 := Symbol{"\"s_waitcnt lgkmcnt(0)\""}
	e2 := List{[]SExp{&e1}}
	CheckOk(t, &e2, "(\"s_waitcnt lgkmcnt(0)\")")
}

func TestSexp_15(t *testing.T) {
	e1 := Symbol{`"say \"hi\""`}
	CheckOk(t, &e1, `"say \"hi\""`)
}

func TestSexp_16(t *testing.T) {
	e1 := Symbol{"\"nop\""}
	e2 := Symbol{"\"\""}
	e3 := List{[]SExp{&e1, &e2}}
	CheckOk(t, &e3, "(\"nop\" \"\")")
}

func TestSexp_17(t *testing.T) {
	e1 := Symbol{"a"}
	e2 := Symbol{"b"}
	e3 := List{[]SExp{&e1, &e2}}
	CheckOk(t, &e3, "; header\n(a ; mid\n b)")
}

// ============================================================================
// Negative Tests
// ============================================================================

// unexpected end of list
func TestSexp_Err1(t *testing.T) {
	CheckErr(t, ")")
}

// unexpected end of list
func TestSexp_Err2(t *testing.T) {
	CheckErr(t, "())")
}

// unexpected end of file
func TestSexp_Err3(t *testing.T) {
	CheckErr(t, "(string")
}

// unexpected end of array
func TestSexp_Err4(t *testing.T) {
	CheckErr(t, "]")
}

// list closed inside an array
func TestSexp_Err5(t *testing.T) {
	CheckErr(t, "[)")
}

// unexpected remainder
func TestSexp_Err6(t *testing.T) {
	CheckErr(t, "(a))")
}

// ============================================================================
// ParseAll
// ============================================================================

func TestSexpAll_1(t *testing.T) {
	terms, _, err := ParseAll(source.NewSourceFile("test", []byte("(a)\n(b c)\n")))
	//
	if err != nil {
		t.Error(err)
	} else if len(terms) != 2 {
		t.Errorf("got %d terms, expected 2", len(terms))
	}
}

func TestSexpAll_2(t *testing.T) {
	_, _, err := ParseAll(source.NewSourceFile("test", []byte("(a) (b")))
	//
	if err == nil {
		t.Errorf("input should not have parsed!")
	}
}

// ============================================================================
// Helpers
// ============================================================================

func CheckOk(t *testing.T, sexp1 SExp, input string) {
	sexp2, _, err := Parse(source.NewSourceFile("test", []byte(input)))
	//
	if err != nil {
		t.Error(err)
	} else if !reflect.DeepEqual(sexp1, sexp2) {
		t.Errorf("got %v, expected %v", sexp2, sexp1)
	}
}

func CheckErr(t *testing.T, input string) {
	_, _, err := Parse(source.NewSourceFile("test", []byte(input)))
	//
	if err == nil {
		t.Errorf("input should not have parsed!")
	}
}
