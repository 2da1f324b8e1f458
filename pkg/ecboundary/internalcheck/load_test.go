package internalcheck

import (
	"testing"

	"golang.org/x/tools/go/packages"
)

const modulePattern = "github.com/coinbase/cb-ecboundary-go/pkg/ecboundary/..."

func loadModule(t *testing.T) []*packages.Package {
	t.Helper()
	cfg := &packages.Config{
		Mode: packages.NeedSyntax | packages.NeedTypes | packages.NeedTypesInfo | packages.NeedFiles | packages.NeedName,
	}

	pkgs, err := packages.Load(cfg, modulePattern)
	if err != nil {
		t.Fatalf("load packages: %v", err)
	}
	if packages.PrintErrors(pkgs) > 0 {
		t.Fatalf("packages under %s failed to type-check", modulePattern)
	}
	if len(pkgs) == 0 {
		t.Fatalf("no packages matched %s", modulePattern)
	}
	return pkgs
}
