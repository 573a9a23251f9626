// Copyright (c) 2022 Stephan Lukits. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package crucible

import (
	"go/ast"
	"go/parser"
	"go/token"
	"reflect"
	"runtime"
	"sync"
)

var indexer = suiteIndexer{}

// suiteIndexer provides the index of a suite's method in order of the
// method declarations' appearance in the source file defining them.  A
// source file is parsed at most once; while it is parsed no index may
// be retrieved.
type suiteIndexer struct {
	mutex sync.Mutex
	//     file-name  suite-name method-name index
	files map[string]map[string]map[string]int
}

// get returns the index of given method of given suite which is
// declared in given file.  get returns false if the file can't be
// parsed or it doesn't declare the method.
func (i *suiteIndexer) get(file, suite, method string) (int, bool) {
	i.mutex.Lock()
	defer i.mutex.Unlock()
	i.ensureIndexingOf(file)
	idx, ok := i.files[file][suite][method]
	return idx, ok
}

// ensureIndexingOf parses given file and indexes the methods of each
// receiver type in order of their appearance.
func (i *suiteIndexer) ensureIndexingOf(file string) {
	if _, ok := i.files[file]; ok {
		return
	}
	if i.files == nil {
		i.files = map[string]map[string]map[string]int{}
	}
	suites := map[string]map[string]int{}
	i.files[file] = suites
	f, err := parser.ParseFile(
		token.NewFileSet(), file, nil, parser.SkipObjectResolution)
	if err != nil {
		return
	}
	for _, decl := range f.Decls {
		fd, ok := decl.(*ast.FuncDecl)
		if !ok || fd.Recv == nil || len(fd.Recv.List) != 1 {
			continue
		}
		suite, ok := receiverName(fd.Recv.List[0].Type)
		if !ok {
			continue
		}
		if suites[suite] == nil {
			suites[suite] = map[string]int{}
		}
		suites[suite][fd.Name.Name] = len(suites[suite])
	}
}

// receiverName returns the type name of given receiver type expression
// if it is a (pointer to a) named type.
func receiverName(recv ast.Expr) (string, bool) {
	if star, ok := recv.(*ast.StarExpr); ok {
		recv = star.X
	}
	ident, ok := recv.(*ast.Ident)
	if !ok {
		return "", false
	}
	return ident.Name, true
}

// source is the location of a suite method's declaration.
type source struct {
	file string
	// indexed is true if order is the method's index among the methods
	// of its suite in file; order is the declaration's line otherwise.
	indexed bool
	order   int
}

// before orders the declarations of a file's indexed methods by their
// index followed by the file's other declarations by their line.
func (s source) before(o source) bool {
	if s.file != o.file {
		return s.file < o.file
	}
	if s.indexed != o.indexed {
		return s.indexed
	}
	return s.order < o.order
}

// sourceOf locates the declaration of given suite type's method with
// given name.  sourceOf returns false for methods without source, e.g.
// methods promoted from embedded types.
func sourceOf(rtype reflect.Type, name string) (source, bool) {
	base := rtype
	if base.Kind() == reflect.Pointer {
		base = base.Elem()
	}
	// a value receiver's method of a pointer type is a generated wrapper
	m, ok := base.MethodByName(name)
	if !ok {
		if m, ok = rtype.MethodByName(name); !ok {
			return source{}, false
		}
	}
	fn := runtime.FuncForPC(m.Func.Pointer())
	if fn == nil {
		return source{}, false
	}
	file, line := fn.FileLine(fn.Entry())
	if file == "" || file == "<autogenerated>" {
		return source{}, false
	}
	if idx, ok := indexer.get(file, base.Name(), name); ok {
		return source{file: file, indexed: true, order: idx}, true
	}
	return source{file: file, order: line}, true
}
