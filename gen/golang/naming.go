package golang

import (
	"strings"
	"unicode"
)

// Naming derives generated identifiers from entity names. The defaults
// mirror what a reader expects from a metamodel: entity Product becomes
// type ProductMeta, variable Product, file product_meta.go, and member
// names are snake_case of the field names.

// MetaTypeName returns the generated metamodel type name for an entity.
func MetaTypeName(simpleName string) string {
	return sanitizeIdent(simpleName) + "Meta"
}

// VarName returns the generated default-instance variable name.
func VarName(simpleName string) string {
	return sanitizeIdent(simpleName)
}

// ConstructorName returns the generated constructor name.
func ConstructorName(simpleName string) string {
	return "New" + sanitizeIdent(simpleName) + "Meta"
}

// FileName returns the generated file name for an entity.
func FileName(simpleName string) string {
	return SnakeCase(simpleName) + "_meta.go"
}

// MemberName returns the query member name for a Go field name.
func MemberName(fieldName string) string {
	return SnakeCase(fieldName)
}

// AliasName returns the default query alias for an entity.
func AliasName(simpleName string) string {
	return SnakeCase(simpleName)
}

// SnakeCase converts CamelCase to snake_case, keeping initialisms
// together: "ID" becomes "id", "CreatedAt" becomes "created_at",
// "HTTPStatus" becomes "http_status".
func SnakeCase(s string) string {
	var b strings.Builder
	runes := []rune(s)
	for i, r := range runes {
		if unicode.IsUpper(r) {
			prevLower := i > 0 && unicode.IsLower(runes[i-1])
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
			if i > 0 && (prevLower || (nextLower && unicode.IsUpper(runes[i-1]))) {
				b.WriteByte('_')
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// sanitizeIdent strips characters that cannot appear in a Go identifier.
func sanitizeIdent(s string) string {
	var b strings.Builder
	for i, r := range s {
		switch {
		case unicode.IsLetter(r) || r == '_':
			b.WriteRune(r)
		case unicode.IsDigit(r) && i > 0:
			b.WriteRune(r)
		}
	}
	return b.String()
}
