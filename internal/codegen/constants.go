// Package codegen provides code generation helpers and constants shared
// by the emitter in internal/compiler.
package codegen

import "fmt"

// Variable names used in generated matcher code. Keeping these in one
// place means the emitter and any hand-written code that inspects
// generated output agree on names.
const (
	InputName       = "input"
	InputLenName    = "l"
	OffsetName      = "offset"
	ActiveAName     = "activeA"
	ActiveBName     = "activeB"
	ActiveLenName   = "activeLen"
	ScratchGenName  = "scratchGen"
	GenerationName  = "generation"
	CurrentName     = "current"
	NextName        = "next"
	NextLenName     = "nextLen"
	RunesName       = "runes"
	CurrentCharName = "c"
)

// StateName returns the label used for the given dense state index in
// generated code (e.g. "State3").
func StateName(id int) string {
	return fmt.Sprintf("State%d", id)
}

// LowerFirst converts the first character of a string to lowercase when
// it is an ASCII letter; any other string is returned unchanged.
func LowerFirst(s string) string {
	if s == "" || s[0] < 'A' || s[0] > 'Z' {
		return s
	}
	return string(s[0]|0x20) + s[1:]
}

// UpperFirst converts the first character of a string to uppercase when
// it is an ASCII letter; any other string is returned unchanged.
func UpperFirst(s string) string {
	if s == "" || s[0] < 'a' || s[0] > 'z' {
		return s
	}
	return string(s[0]&^0x20) + s[1:]
}
