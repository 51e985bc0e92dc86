package protocol

import "fmt"

// Accepted boolean literal tokens. The set is closed on purpose: the
// isHit field is parsed strictly and never evaluated as anything else.
var (
	boolTrueTokens  = [...]string{"true", "True"}
	boolFalseTokens = [...]string{"false", "False"}
)

func parseBoolToken(tok string) (bool, error) {
	for _, t := range boolTrueTokens {
		if tok == t {
			return true, nil
		}
	}
	for _, t := range boolFalseTokens {
		if tok == t {
			return false, nil
		}
	}
	return false, fmt.Errorf("%w: %q is not a boolean token", ErrMalformed, tok)
}
