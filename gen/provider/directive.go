package provider

import (
	"go/ast"
	"strings"

	"golang.org/x/tools/go/packages"
)

// typeDecl carries per-type information recovered from the syntax tree:
// the entity directive, doc summaries, and the declaration site.
type typeDecl struct {
	entity    bool
	doc       string
	fieldDocs map[string]string
	file      string
	line      int
}

// entityDirective marks a struct declaration as an entity:
//
//	//querygen:entity
//	type Product struct { ... }
const entityDirective = "//querygen:entity"

// scanTypeDecls walks a package's syntax and records, per type name, the
// entity directive, documentation summaries, and source position.
func scanTypeDecls(pkg *packages.Package) map[string]typeDecl {
	decls := make(map[string]typeDecl)

	for _, file := range pkg.Syntax {
		for _, d := range file.Decls {
			gd, ok := d.(*ast.GenDecl)
			if !ok {
				continue
			}
			for _, spec := range gd.Specs {
				ts, ok := spec.(*ast.TypeSpec)
				if !ok {
					continue
				}

				// A TypeSpec inside a grouped decl carries its own doc;
				// a single decl attaches it to the GenDecl.
				doc := ts.Doc
				if doc == nil {
					doc = gd.Doc
				}

				pos := pkg.Fset.Position(ts.Pos())
				td := typeDecl{
					entity: hasEntityDirective(doc),
					doc:    docSummary(doc),
					file:   pos.Filename,
					line:   pos.Line,
				}

				if st, ok := ts.Type.(*ast.StructType); ok {
					td.fieldDocs = fieldDocs(st)
				}

				decls[ts.Name.Name] = td
			}
		}
	}

	return decls
}

func hasEntityDirective(doc *ast.CommentGroup) bool {
	if doc == nil {
		return false
	}
	for _, c := range doc.List {
		if strings.TrimSpace(c.Text) == entityDirective {
			return true
		}
	}
	return false
}

// docSummary extracts the first sentence of a doc comment, skipping
// directive lines.
func docSummary(doc *ast.CommentGroup) string {
	if doc == nil {
		return ""
	}
	var lines []string
	for _, c := range doc.List {
		text := strings.TrimSpace(strings.TrimPrefix(c.Text, "//"))
		if strings.HasPrefix(c.Text, "//querygen:") {
			continue
		}
		lines = append(lines, text)
	}
	return firstSentence(strings.TrimSpace(strings.Join(lines, " ")))
}

func fieldDocs(st *ast.StructType) map[string]string {
	docs := make(map[string]string)
	for _, f := range st.Fields.List {
		if f.Doc == nil {
			continue
		}
		summary := docSummary(f.Doc)
		if summary == "" {
			continue
		}
		for _, name := range f.Names {
			docs[name.Name] = summary
		}
	}
	return docs
}

// firstSentence truncates text at the first period followed by a space,
// matching go/doc's notion of a synopsis closely enough for our output.
func firstSentence(text string) string {
	for i := 0; i < len(text)-1; i++ {
		if text[i] == '.' && (text[i+1] == ' ' || text[i+1] == '\n') {
			return text[:i+1]
		}
	}
	return text
}
