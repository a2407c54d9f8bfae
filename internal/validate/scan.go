// This file implements the static source scan behind drift detection. It
// parses Go source with the standard library parser and extracts the
// parameter surface of input structs from their `hub:"..."` field tags. The
// scanned code is never type-checked, linked or executed.

package validate

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"reflect"
	"sort"
	"strconv"
	"strings"

	"github.com/zclconf/go-cty/cty"

	"github.com/vk/toolhub/internal/fsutil"
)

// ScannedField is one exported struct field carrying a hub tag.
type ScannedField struct {
	GoName string
	GoType string

	// Type is the cty equivalent of the Go field type. Mapped is false when
	// the Go type has no cty equivalent, in which case Type is unusable.
	Type   cty.Type
	Mapped bool
}

// ScannedStruct is the parameter surface of one input struct found in source.
type ScannedStruct struct {
	Name   string
	File   string
	Fields map[string]ScannedField // keyed by hub tag name
}

// SourceScan is the result of one pass over an implementation source tree.
type SourceScan struct {
	Structs map[string]*ScannedStruct
}

// ParamNames returns the tag names of a scanned struct in sorted order.
func (s *ScannedStruct) ParamNames() []string {
	names := make([]string, 0, len(s.Fields))
	for name := range s.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ScanSource parses every non-test .go file under root and collects every
// struct type, keyed by name, with the parameter surface read from its
// hub-tagged fields. The first declaration of a struct name wins; file order
// is deterministic.
func ScanSource(root string) (*SourceScan, error) {
	files, err := fsutil.FindFilesByExtension(root, ".go")
	if err != nil {
		return nil, fmt.Errorf("failed to walk source root %s: %w", root, err)
	}

	scan := &SourceScan{Structs: make(map[string]*ScannedStruct)}
	fset := token.NewFileSet()

	for _, path := range files {
		if strings.HasSuffix(path, "_test.go") {
			continue
		}
		file, err := parser.ParseFile(fset, path, nil, parser.SkipObjectResolution)
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
		collectStructs(scan, file, path)
	}

	return scan, nil
}

func collectStructs(scan *SourceScan, file *ast.File, path string) {
	ast.Inspect(file, func(n ast.Node) bool {
		spec, ok := n.(*ast.TypeSpec)
		if !ok {
			return true
		}
		structType, ok := spec.Type.(*ast.StructType)
		if !ok {
			return true
		}

		fields := make(map[string]ScannedField)
		for _, field := range structType.Fields.List {
			tagName, ok := hubTagName(field)
			if !ok {
				continue
			}
			ctyType, mapped := goTypeToCty(field.Type)
			goName := ""
			if len(field.Names) > 0 {
				goName = field.Names[0].Name
			}
			fields[tagName] = ScannedField{
				GoName: goName,
				GoType: typeString(field.Type),
				Type:   ctyType,
				Mapped: mapped,
			}
		}
		// Structs with no tagged fields are recorded too: a parameterless
		// method may legitimately name one, and a struct that lost every
		// tagged field must diff as per-param stale, not as missing.
		if _, exists := scan.Structs[spec.Name.Name]; !exists {
			scan.Structs[spec.Name.Name] = &ScannedStruct{
				Name:   spec.Name.Name,
				File:   path,
				Fields: fields,
			}
		}
		return true
	})
}

// hubTagName extracts the parameter name from a field's hub struct tag.
// Fields without a tag, or tagged "-", are not part of the contract.
func hubTagName(field *ast.Field) (string, bool) {
	if field.Tag == nil || len(field.Names) == 0 || !field.Names[0].IsExported() {
		return "", false
	}
	raw, err := strconv.Unquote(field.Tag.Value)
	if err != nil {
		return "", false
	}
	tag := reflect.StructTag(raw).Get("hub")
	name := strings.Split(tag, ",")[0]
	if name == "" || name == "-" {
		return "", false
	}
	return name, true
}

// goTypeToCty maps an AST type expression onto the cty type system. The
// mapping covers the primitives and collections the definition store can
// express; anything else is reported as unmapped.
func goTypeToCty(expr ast.Expr) (cty.Type, bool) {
	switch t := expr.(type) {
	case *ast.Ident:
		switch t.Name {
		case "string":
			return cty.String, true
		case "bool":
			return cty.Bool, true
		case "int", "int8", "int16", "int32", "int64",
			"uint", "uint8", "uint16", "uint32", "uint64",
			"float32", "float64":
			return cty.Number, true
		case "any":
			return cty.DynamicPseudoType, true
		}
		return cty.NilType, false
	case *ast.StarExpr:
		return goTypeToCty(t.X)
	case *ast.ArrayType:
		if t.Len != nil {
			return cty.NilType, false
		}
		elem, ok := goTypeToCty(t.Elt)
		if !ok {
			return cty.NilType, false
		}
		return cty.List(elem), true
	case *ast.MapType:
		key, ok := t.Key.(*ast.Ident)
		if !ok || key.Name != "string" {
			return cty.NilType, false
		}
		elem, ok := goTypeToCty(t.Value)
		if !ok {
			return cty.NilType, false
		}
		return cty.Map(elem), true
	case *ast.InterfaceType:
		if t.Methods == nil || len(t.Methods.List) == 0 {
			return cty.DynamicPseudoType, true
		}
		return cty.NilType, false
	}
	return cty.NilType, false
}

// typeString renders an AST type expression for error messages.
func typeString(expr ast.Expr) string {
	switch t := expr.(type) {
	case *ast.Ident:
		return t.Name
	case *ast.StarExpr:
		return "*" + typeString(t.X)
	case *ast.ArrayType:
		return "[]" + typeString(t.Elt)
	case *ast.MapType:
		return "map[" + typeString(t.Key) + "]" + typeString(t.Value)
	case *ast.SelectorExpr:
		return typeString(t.X) + "." + t.Sel.Name
	case *ast.InterfaceType:
		return "interface{}"
	}
	return fmt.Sprintf("%T", expr)
}
