// Package inspect provides an inspection engine for extension packages.
//
// The engine decodes the asar binary archive format, reduces two directory
// trees to a classified change-set, and produces byte-accurate,
// style-annotated render instructions for each changed file. The heavy
// lifting lives in the asar, treediff, and render subpackages, while this
// package sequences them and owns the fallback policy.
//
// # Quick Start
//
// Compare a checked-out source tree against its previous version:
//
//	ins := inspect.New(inspect.WithExcludes(".git"))
//	diff, err := ins.CompareDirs(ctx, "./old", "./new")
//	if err != nil {
//	    return err
//	}
//	for _, item := range diff.Items {
//	    ...
//	}
//
// Then render an individual changed file on demand:
//
//	fd, err := ins.DiffFile(ctx, "./old/src/main.ts", "./new/src/main.ts")
//
// DiffFile always yields renderable output: files without a known grammar,
// or content that is not valid text, degrade to raw text fragments rather
// than failing.
//
// # Collaborators
//
// Network fetches, git checkouts, zip extraction, and UI rendering are
// external collaborators. They hand this engine seekable byte sources and
// fully materialized directory trees, and consume structured results;
// partial writes into a tree being compared are a caller bug.
package inspect
