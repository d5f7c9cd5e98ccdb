package contracts

// PostStep runs against the fully staged (and filtered) tree before it is
// moved into the destination.
type PostStep interface {
	Apply(root string) error
}

type Reporter interface {
	Downloading(address string)
}
