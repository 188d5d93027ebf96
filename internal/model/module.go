package model

// ModuleID is the positional identifier of a module inside a bundle.
// IDs are dense, zero-based and follow discovery order.
type ModuleID int

// ModuleRecord is a file admitted into the bundle.
type ModuleRecord struct {
	ID        ModuleID
	Path      Path // absolute, cleaned
	Processed bool
}

// RewriteOutcome is what the rewriter learned while transforming one file.
type RewriteOutcome struct {
	Code           []byte
	Dependencies   []ModuleID // targets referenced by this file, in first-seen order
	AddonsExcluded []Path
	Unresolved     []UnresolvedModule
}
