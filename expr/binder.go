// Copyright 2026 The Dyncore Authors
// This file is part of dyncore.
//
// dyncore is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// dyncore is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with dyncore. If not, see <http://www.gnu.org/licenses/>.

package expr

import (
	"fmt"

	"github.com/dyncore/dyncore/fn"
	"github.com/dyncore/dyncore/ident"
	"github.com/dyncore/dyncore/model"
	"github.com/dyncore/dyncore/variant"
)

// VarRefKind distinguishes the two VariableReference cases of §4.6's
// design notes ("object(id) | builtin(handle)").
type VarRefKind uint8

const (
	ObjectRef VarRefKind = iota
	BuiltinRef
)

// VariableReference is a resolved variable: either an object in the design
// or an interned builtin-variable handle (never a raw pointer, per §9's
// "never as raw pointer equality" design note).
type VariableReference struct {
	Kind    VarRefKind
	Object  ident.ObjectID
	Builtin int
}

func (r VariableReference) String() string {
	if r.Kind == ObjectRef {
		return fmt.Sprintf("object(%s)", r.Object)
	}
	return fmt.Sprintf("builtin(%d)", r.Builtin)
}

// VariableDecl is what the caller supplies per variable name at bind time:
// which reference it resolves to, and its declared value type (used to
// compute the bound expression's result type bottom-up).
type VariableDecl struct {
	Ref  VariableReference
	Type variant.ValueType
}

// UnknownVariable is raised when an unbound Variable name has no entry in
// the variables map passed to Bind (§4.6, §7 family 2).
type UnknownVariable struct{ Name string }

func (e *UnknownVariable) Error() string { return "expr: unknown variable " + e.Name }

// UnknownFunction is raised when an unbound Call or operator-mapped name
// has no entry in the functions map passed to Bind.
type UnknownFunction struct{ Name string }

func (e *UnknownFunction) Error() string { return "expr: unknown function " + e.Name }

// ArgumentTypeMismatch carries the first offending argument index and a
// description of the type it needed to satisfy (§7: "argument type
// mismatch carries the offending index").
type ArgumentTypeMismatch struct {
	Index                    int
	ExpectedTypeDescription string
}

func (e *ArgumentTypeMismatch) Error() string {
	return fmt.Sprintf("argument %d: expected %s", e.Index, e.ExpectedTypeDescription)
}

// Bind resolves an unbound Expr against a set of named variables and
// functions, producing a Bound expression whose result type is computed
// bottom-up (§4.6 Binding).
func Bind(e Expr, variables map[string]VariableDecl, functions map[string]fn.Function) (Bound, error) {
	switch n := e.(type) {
	case Value:
		return BoundValue{V: n.V}, nil
	case Variable:
		decl, ok := variables[n.Name]
		if !ok {
			return nil, &UnknownVariable{Name: n.Name}
		}
		return BoundVariable{Ref: decl.Ref, T: decl.Type}, nil
	case Unary:
		operand, err := Bind(n.Operand, variables, functions)
		if err != nil {
			return nil, err
		}
		f, ok := functions[n.Op]
		if !ok {
			model.Panic(model.Faultf("expr: binder's function catalog lacks reserved operator function %q", n.Op))
		}
		if err := validateCall(f, []variant.ValueType{operand.Type()}); err != nil {
			return nil, err
		}
		t := f.ResultType([]variant.ValueType{operand.Type()})
		return BoundUnary{Fn: f, Operand: operand, T: t}, nil
	case Binary:
		left, err := Bind(n.Left, variables, functions)
		if err != nil {
			return nil, err
		}
		right, err := Bind(n.Right, variables, functions)
		if err != nil {
			return nil, err
		}
		f, ok := functions[n.Op]
		if !ok {
			model.Panic(model.Faultf("expr: binder's function catalog lacks reserved operator function %q", n.Op))
		}
		argTypes := []variant.ValueType{left.Type(), right.Type()}
		if err := validateCall(f, argTypes); err != nil {
			return nil, err
		}
		t := f.ResultType(argTypes)
		return BoundBinary{Fn: f, Left: left, Right: right, T: t}, nil
	case Call:
		f, ok := functions[n.Name]
		if !ok {
			return nil, &UnknownFunction{Name: n.Name}
		}
		args := make([]Bound, len(n.Args))
		argTypes := make([]variant.ValueType, len(n.Args))
		for i, a := range n.Args {
			bound, err := Bind(a, variables, functions)
			if err != nil {
				return nil, err
			}
			args[i] = bound
			argTypes[i] = bound.Type()
		}
		if err := validateCall(f, argTypes); err != nil {
			return nil, err
		}
		t := f.ResultType(argTypes)
		return BoundCall{Fn: f, Args: args, T: t}, nil
	default:
		model.Panic(model.Faultf("expr: unhandled unbound expression node %T", e))
		panic("unreachable")
	}
}

func validateCall(f fn.Function, argTypes []variant.ValueType) error {
	err := f.Signature().Validate(argTypes)
	if err == nil {
		return nil
	}
	switch e := err.(type) {
	case *fn.InvalidNumberOfArguments:
		return e
	case *fn.TypeMismatch:
		idx := e.Indices[0]
		sig := f.Signature()
		var arg fn.FunctionArgument
		if idx < len(sig.Positional) {
			arg = sig.Positional[idx]
		} else if sig.Variadic != nil {
			arg = *sig.Variadic
		}
		return &ArgumentTypeMismatch{Index: idx, ExpectedTypeDescription: arg.Type.String()}
	default:
		return err
	}
}
