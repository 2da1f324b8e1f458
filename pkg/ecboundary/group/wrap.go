package group

const defaultVariant = "wrapped"

type wrapped[A, P any] struct {
	Group[A, P]
	variant string
}

// Wrap returns g under a new variant. The wrapper shares g's tag, codec and
// arithmetic, but a Boundary keeps an independent slot for it, so it can be
// configured differently from g. An empty variant is replaced by "wrapped".
func Wrap[A, P any](g Group[A, P], variant string) Group[A, P] {
	if variant == "" {
		variant = defaultVariant
	}
	if inner := g.Variant(); inner != "" {
		variant = inner + "/" + variant
	}
	return wrapped[A, P]{Group: g, variant: variant}
}

func (w wrapped[A, P]) Variant() string { return w.variant }

func (w wrapped[A, P]) Name() string {
	return w.Group.Tag().String() + "/" + w.variant
}
