// Package test contains assertion helpers shared by package tests.
package test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ava12/tapegen"
)

func Assert(t *testing.T, cond bool, message string, params ...any) {
	t.Helper()
	require.Truef(t, cond, message, params...)
}

func ExpectBool(t *testing.T, expected, got bool) {
	t.Helper()
	require.Equal(t, expected, got)
}

func ExpectInt(t *testing.T, expected, got int) {
	t.Helper()
	require.Equal(t, expected, got)
}

// ExpectErrorCode fails unless e wraps *tapegen.Error with given code.
func ExpectErrorCode(t *testing.T, expected int, e error) {
	t.Helper()
	var te *tapegen.Error
	require.Truef(t, errors.As(e, &te), "expecting error code %d, got %v", expected, e)
	require.Equalf(t, expected, te.Code, "unexpected error: %v", te)
}
