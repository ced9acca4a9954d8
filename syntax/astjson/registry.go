package astjson

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"go/ast"
	"go/token"
	"reflect"
)

// prototypes lists every concrete node type of go/ast we are willing to
// encode and decode. The registry below is built from it.
var prototypes = []ast.Node{
	&ast.ArrayType{},
	&ast.AssignStmt{},
	&ast.BadDecl{},
	&ast.BadExpr{},
	&ast.BadStmt{},
	&ast.BasicLit{},
	&ast.BinaryExpr{},
	&ast.BlockStmt{},
	&ast.BranchStmt{},
	&ast.CallExpr{},
	&ast.CaseClause{},
	&ast.ChanType{},
	&ast.CommClause{},
	&ast.CompositeLit{},
	&ast.DeclStmt{},
	&ast.DeferStmt{},
	&ast.Ellipsis{},
	&ast.EmptyStmt{},
	&ast.ExprStmt{},
	&ast.Field{},
	&ast.FieldList{},
	&ast.File{},
	&ast.ForStmt{},
	&ast.FuncDecl{},
	&ast.FuncLit{},
	&ast.FuncType{},
	&ast.GenDecl{},
	&ast.GoStmt{},
	&ast.Ident{},
	&ast.IfStmt{},
	&ast.ImportSpec{},
	&ast.IncDecStmt{},
	&ast.IndexExpr{},
	&ast.IndexListExpr{},
	&ast.InterfaceType{},
	&ast.KeyValueExpr{},
	&ast.LabeledStmt{},
	&ast.MapType{},
	&ast.ParenExpr{},
	&ast.RangeStmt{},
	&ast.ReturnStmt{},
	&ast.SelectStmt{},
	&ast.SelectorExpr{},
	&ast.SendStmt{},
	&ast.SliceExpr{},
	&ast.StarExpr{},
	&ast.StructType{},
	&ast.SwitchStmt{},
	&ast.TypeAssertExpr{},
	&ast.TypeSpec{},
	&ast.TypeSwitchStmt{},
	&ast.UnaryExpr{},
	&ast.ValueSpec{},
}

// nodeTypes maps a node-type name ("FuncDecl") to its struct type.
var nodeTypes = make(map[string]reflect.Type)

// tokenByName maps a token's string form ("+", ":=", "INT") back to the token.
var tokenByName = make(map[string]token.Token)

// skipField names struct fields that are not part of the wire format:
// positions (regenerated as unknown on decode), comment attachments, and
// the redundant or cyclic bookkeeping fields of File and Ident.
var skipField = map[string]bool{
	"Doc":        true,
	"Comment":    true,
	"Comments":   true,
	"Obj":        true,
	"Scope":      true,
	"Unresolved": true,
	"Imports":    true,
	"GoVersion":  true,
}

func init() {
	for _, p := range prototypes {
		t := reflect.TypeOf(p).Elem()
		nodeTypes[t.Name()] = t
	}
	for t := token.ILLEGAL; t <= token.TILDE; t++ {
		name := t.String()
		if _, dup := tokenByName[name]; !dup {
			tokenByName[name] = t
		}
	}
}

var (
	posType   = reflect.TypeOf(token.Pos(0))
	tokenType = reflect.TypeOf(token.ILLEGAL)
)
