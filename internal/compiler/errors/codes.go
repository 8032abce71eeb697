package errors

// Stable error codes, organized by phase. These are part of the JSON
// contract consumed by tooling wrapping the compiler; renumbering an
// existing code is a breaking change.
const (
	// Parser adapter (PAR0xx)
	ErrUnsupportedAssignTarget = "PAR001"
	ErrMalformedCompare        = "PAR002"
	ErrUnknownBinOp            = "PAR003"
	ErrUnknownUnOp             = "PAR004"
	ErrSyntax                  = "PAR005"

	// Optimizer (OPT0xx)
	ErrOptimizerPrecondition = "OPT001"
	ErrInlineDepthExceeded   = "OPT002"

	// Codegen (GEN0xx)
	ErrUnknownNode        = "GEN001"
	ErrStringImmOverflow  = "GEN002"
	ErrUnpatchedJump       = "GEN003"
	ErrUnsupportedForShape = "GEN004"

	// Driver IO (IO0xx)
	ErrInputUnreadable  = "IO001"
	ErrOutputUnwritable = "IO002"
)
