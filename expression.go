package arazzo

import "strings"

// ExpressionPrefix begins every runtime expression, e.g.
// $statusCode, $response.body, $steps.loginStep.outputs.token.
const ExpressionPrefix = "$"

// IsExpression reports whether s has the textual shape of a runtime
// expression. Expressions are stored opaquely; this module never
// evaluates them.
func IsExpression(s string) bool {
	return strings.HasPrefix(s, ExpressionPrefix)
}
