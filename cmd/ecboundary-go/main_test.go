package main

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/coinbase/cb-ecboundary-go/pkg/ecboundary/curve"
	"github.com/coinbase/cb-ecboundary-go/pkg/ecboundary/protocol"
)

func TestPrintTable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, printTable(&buf, backends(), true))
	out := buf.String()
	for _, tag := range curve.Tags() {
		require.Contains(t, out, tag.String())
	}
	require.Equal(t, len(curve.Tags()), strings.Count(strings.SplitN(out, "\n\n", 2)[0], "\n"))
}

func TestSelfCheck(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, runChecks(context.Background(), &buf, backends()))
	require.Equal(t, len(curve.Tags()), strings.Count(buf.String(), "ok   "))
}

func TestSelfCheckReportsDelegateFailure(t *testing.T) {
	errBroken := errors.New("broken host")
	d := protocol.DelegateFunc(func(context.Context, *protocol.Request) (*protocol.Response, error) {
		return nil, errBroken
	})
	for _, b := range backends() {
		require.ErrorIs(t, b.check(context.Background(), d), errBroken)
	}
}
