// Command ecboundary-go prints the supported curves and runs a loopback
// self check of every backend.
package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"math/big"
	"os"
	"text/tabwriter"

	"github.com/coinbase/cb-ecboundary-go/pkg/ecboundary"
	"github.com/coinbase/cb-ecboundary-go/pkg/ecboundary/curve"
	"github.com/coinbase/cb-ecboundary-go/pkg/ecboundary/curves/bls12377"
	"github.com/coinbase/cb-ecboundary-go/pkg/ecboundary/curves/ed25519"
	"github.com/coinbase/cb-ecboundary-go/pkg/ecboundary/curves/pallas"
	"github.com/coinbase/cb-ecboundary-go/pkg/ecboundary/curves/secp256k1"
	"github.com/coinbase/cb-ecboundary-go/pkg/ecboundary/group"
	"github.com/coinbase/cb-ecboundary-go/pkg/ecboundary/host"
	"github.com/coinbase/cb-ecboundary-go/pkg/ecboundary/logging"
	"github.com/coinbase/cb-ecboundary-go/pkg/ecboundary/protocol"
)

// backend is one row of the curve table.
type backend struct {
	desc  group.Descriptor
	sizes [3]int // affine, projective, scalar
	check func(ctx context.Context, d protocol.Delegate) error
}

func entry[A, P any](g group.Group[A, P]) backend {
	return backend{
		desc:  g,
		sizes: [3]int{g.AffineSize(), g.ProjectiveSize(), g.ScalarSize()},
		check: func(ctx context.Context, d protocol.Delegate) error { return selfCheck(ctx, g, d) },
	}
}

func backends() []backend {
	return []backend{
		entry(pallas.New()),
		entry(bls12377.Edwards()),
		entry(bls12377.G1()),
		entry(bls12377.G2()),
		entry(secp256k1.New()),
		entry(ed25519.New()),
	}
}

func main() {
	verbose := flag.Bool("v", false, "print invariants for every curve")
	skipCheck := flag.Bool("skip-check", false, "do not run the loopback self check")
	flag.Parse()

	log.Printf("ecboundary version: %s (commit %s)", ecboundary.ModuleVersion(), ecboundary.Commit)
	log.Printf("boundary protocol: v%d, at most %d buffers per frame", ecboundary.ProtocolVersion, ecboundary.MaxFrameBuffers())

	if err := printTable(os.Stdout, backends(), *verbose); err != nil {
		log.Fatalf("print curves: %v", err)
	}
	if *skipCheck {
		return
	}
	if err := runChecks(context.Background(), os.Stdout, backends()); err != nil {
		log.Fatalf("self check failed: %v", err)
	}
}

func printTable(w io.Writer, rows []backend, verbose bool) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "TAG\tNAME\tMODEL\tAFFINE\tPROJECTIVE\tSCALAR")
	for _, r := range rows {
		inv := r.desc.Invariants()
		fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%d\t%d\n",
			uint8(r.desc.Tag()), r.desc.Name(), inv.Model, r.sizes[0], r.sizes[1], r.sizes[2])
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	if !verbose {
		return nil
	}
	for _, r := range rows {
		inv := r.desc.Invariants()
		fmt.Fprintf(w, "\n%s\n  base field   %s\n  scalar field %s\n  cofactor     %s\n",
			r.desc.Name(), inv.BaseCharacteristic, inv.ScalarCharacteristic, inv.Cofactor)
	}
	return nil
}

func runChecks(ctx context.Context, w io.Writer, rows []backend) error {
	h, err := host.NewDefault(logging.Discard())
	if err != nil {
		return err
	}
	d := host.Loopback{Handler: h, Frame: true}
	for _, r := range rows {
		if err := r.check(ctx, d); err != nil {
			return fmt.Errorf("%s: %w", r.desc.Name(), err)
		}
		fmt.Fprintf(w, "ok   %s\n", r.desc.Name())
	}
	return nil
}

// selfCheck computes 2*G through d and through the fallback and requires
// identical canonical encodings.
func selfCheck[A, P any](ctx context.Context, g group.Group[A, P], d protocol.Delegate) error {
	if tag, err := curve.Resolve(g.Invariants()); err != nil || tag != g.Tag() {
		return fmt.Errorf("invariants resolve to %s, declared %s: %v", tag, g.Tag(), err)
	}

	bases := []A{g.ToAffine(g.Generator())}
	scalars := []*big.Int{big.NewInt(2)}

	viaDelegate := ecboundary.New(ecboundary.Config{Logger: logging.Discard()})
	if err := viaDelegate.Install(g, d); err != nil {
		return err
	}
	viaFallback := ecboundary.New(ecboundary.Config{Logger: logging.Discard()})
	if err := viaFallback.SetFallback(g, true); err != nil {
		return err
	}

	p1, err := ecboundary.MultiScalarMul(ctx, viaDelegate, g, bases, scalars)
	if err != nil {
		return fmt.Errorf("delegate: %w", err)
	}
	p2, err := ecboundary.MultiScalarMul(ctx, viaFallback, g, bases, scalars)
	if err != nil {
		return fmt.Errorf("fallback: %w", err)
	}

	want := g.MarshalCanonical(g.Double(g.Generator()))
	if !bytes.Equal(want, g.MarshalCanonical(p1)) || !bytes.Equal(want, g.MarshalCanonical(p2)) {
		return fmt.Errorf("2*G differs between delegate and fallback")
	}
	return nil
}
