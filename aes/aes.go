// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package aes describes aesthetic mappings: the binding of visual
// properties such as "x", "y" or "colour" to expressions over a
// layer's data.
//
// An expression is evaluated against a frame.Frame and produces a
// column: either one value per row, or a single value that the
// caller broadcasts. Expressions wrapped with Calc are "calculated":
// they refer to columns produced by a layer's statistic and are only
// evaluated after the statistic has run.
package aes

import (
	"fmt"
	"reflect"

	"github.com/aclements/go-gg/table"
	"github.com/aclements/ggbuild/frame"
)

// Env is a fallback scope for resolving names that are not columns of
// the data being evaluated.
type Env interface {
	Lookup(name string) (val interface{}, ok bool)
}

// MapEnv is an Env backed by a map. Values may be scalars or slices.
type MapEnv map[string]interface{}

func (e MapEnv) Lookup(name string) (interface{}, bool) {
	v, ok := e[name]
	return v, ok
}

// An Expr computes a column from a Frame. env may be nil, in which
// case only the Frame's columns are in scope.
type Expr interface {
	Eval(data frame.Frame, env Env) (table.Slice, error)
	String() string
}

// NotFoundError is returned when an expression refers to a name that
// is neither a column nor bound in the environment.
type NotFoundError struct {
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("object %q not found", e.Name)
}

// Col returns an expression that evaluates to the named column.
func Col(name string) Expr {
	return colExpr(name)
}

type colExpr string

func (c colExpr) Eval(data frame.Frame, env Env) (table.Slice, error) {
	if col := data.Column(string(c)); col != nil {
		return col, nil
	}
	if env != nil {
		if v, ok := env.Lookup(string(c)); ok {
			if v != nil && reflect.TypeOf(v).Kind() == reflect.Slice {
				return v, nil
			}
			return frame.Of(v), nil
		}
	}
	return nil, &NotFoundError{string(c)}
}

func (c colExpr) String() string { return string(c) }

// Const returns an expression that evaluates to a single value.
func Const(val interface{}) Expr {
	return constExpr{val}
}

type constExpr struct {
	val interface{}
}

func (c constExpr) Eval(frame.Frame, Env) (table.Slice, error) {
	return frame.Of(c.val), nil
}

func (c constExpr) String() string { return fmt.Sprintf("%#v", c.val) }

// Func returns an expression computed by fn. name is used only to
// describe the expression.
func Func(name string, fn func(data frame.Frame, env Env) (table.Slice, error)) Expr {
	return funcExpr{name, fn}
}

type funcExpr struct {
	name string
	fn   func(frame.Frame, Env) (table.Slice, error)
}

func (f funcExpr) Eval(data frame.Frame, env Env) (table.Slice, error) {
	return f.fn(data, env)
}

func (f funcExpr) String() string { return f.name }

// Calc marks e as calculated. Calculated expressions are skipped when
// a layer first maps its aesthetics and evaluated instead against the
// output of the layer's statistic.
func Calc(e Expr) Expr {
	if IsCalculated(e) {
		return e
	}
	return calcExpr{e}
}

type calcExpr struct {
	Expr
}

func (c calcExpr) String() string { return "calc(" + c.Expr.String() + ")" }

// IsCalculated reports whether e was marked by Calc.
func IsCalculated(e Expr) bool {
	_, ok := e.(calcExpr)
	return ok
}

// Strip removes a Calc marker from e, if present.
func Strip(e Expr) Expr {
	if c, ok := e.(calcExpr); ok {
		return c.Expr
	}
	return e
}
