package parser

import "strconv"

// parseInt and parseFloat convert already-validated lexer lexemes. The
// lexer only ever produces digit runs (optionally with a single '.'),
// so these are not expected to fail; a failure collapses to zero rather
// than panicking, mirroring the adapter's lenient-on-the-unexpected
// posture elsewhere in this pipeline.
func parseInt(lexeme string) int64 {
	v, err := strconv.ParseInt(lexeme, 10, 64)
	if err != nil {
		return 0
	}
	return v
}

func parseFloat(lexeme string) float64 {
	v, err := strconv.ParseFloat(lexeme, 64)
	if err != nil {
		return 0
	}
	return v
}
