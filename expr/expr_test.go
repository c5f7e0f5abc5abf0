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

package expr_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dyncore/dyncore/expr"
	"github.com/dyncore/dyncore/fn"
	"github.com/dyncore/dyncore/variant"
)

// TestParseBindEvaluate implements §8 end-to-end scenario 4.
func TestParseBindEvaluate(t *testing.T) {
	ast, err := expr.Parse("2 * (x + 3)")
	require.NoError(t, err)

	xRef := expr.VariableReference{Kind: expr.BuiltinRef, Builtin: 1}
	variables := map[string]expr.VariableDecl{
		"x": {Ref: xRef, Type: variant.Atom(variant.Double)},
	}
	bound, err := expr.Bind(ast, variables, fn.Catalog())
	require.NoError(t, err)
	assert.Equal(t, variant.Atom(variant.Double), bound.Type())

	result, err := bound.Evaluate(map[expr.VariableReference]variant.Variant{
		xRef: variant.FromDouble(4.0),
	})
	require.NoError(t, err)
	d, err := result.DoubleValue()
	require.NoError(t, err)
	assert.Equal(t, 14.0, d)
}

// TestDivisionByZeroPropagatesAsFunctionError implements the §8 boundary
// behaviour for division operators.
func TestDivisionByZeroPropagatesAsFunctionError(t *testing.T) {
	ast, err := expr.Parse("1 / 0")
	require.NoError(t, err)
	bound, err := expr.Bind(ast, nil, fn.Catalog())
	require.NoError(t, err)

	_, err = bound.Evaluate(nil)
	require.Error(t, err)
	var fnErr *fn.FunctionError
	require.ErrorAs(t, err, &fnErr)
	assert.Equal(t, "__div__", fnErr.FunctionName)
}

func TestUnknownVariableError(t *testing.T) {
	ast, err := expr.Parse("y + 1")
	require.NoError(t, err)
	_, err = expr.Bind(ast, nil, fn.Catalog())
	require.Error(t, err)
	var unknown *expr.UnknownVariable
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "y", unknown.Name)
}

func TestUnknownFunctionError(t *testing.T) {
	ast, err := expr.Parse("frobnicate(1)")
	require.NoError(t, err)
	_, err = expr.Bind(ast, nil, fn.Catalog())
	require.Error(t, err)
	var unknown *expr.UnknownFunction
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "frobnicate", unknown.Name)
}

func TestMissingRightParenthesis(t *testing.T) {
	_, err := expr.Parse("(1 + 2")
	require.Error(t, err)
	var syntaxErr *expr.SyntaxError
	require.ErrorAs(t, err, &syntaxErr)
	assert.Equal(t, expr.MissingRightParenthesis, syntaxErr.Kind)
}

func TestExponentIsLeftAssociative(t *testing.T) {
	// 2^3^2 parses as (2^3)^2, not 2^(3^2), per §9.1's decision.
	ast, err := expr.Parse("2 ^ 3 ^ 2")
	require.NoError(t, err)
	bin, ok := ast.(expr.Binary)
	require.True(t, ok)
	outerLeft, ok := bin.Left.(expr.Binary)
	require.True(t, ok, "left-associative parse nests the first application on the left")
	v, ok := outerLeft.Left.(expr.Value)
	require.True(t, ok)
	i, _ := v.V.IntValue()
	assert.Equal(t, int64(2), i)
}

func TestLetterAfterNumberIsLexError(t *testing.T) {
	lex := expr.NewLexer("10x")
	tok := lex.Next()
	assert.Equal(t, expr.ErrorToken, tok.Type)
	assert.Equal(t, expr.LetterAfterNumber, tok.Kind)
}

func TestBareEqualsIsLexError(t *testing.T) {
	lex := expr.NewLexer("=")
	tok := lex.Next()
	assert.Equal(t, expr.ErrorToken, tok.Type)
	assert.Equal(t, expr.InvalidEquals, tok.Kind)
}

func TestNumericUnderscoreSeparators(t *testing.T) {
	lex := expr.NewLexer("1_000")
	tok := lex.Next()
	assert.Equal(t, expr.Int, tok.Type)
	assert.Equal(t, "1000", tok.Text)
}
