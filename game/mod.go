// Package game holds the rules of Tablut: board state, move legality,
// captures, repetition and undo, plus static evaluation of positions.
package game

// Evaluators maps the names accepted in experiment configs to evaluation functions.
var Evaluators = map[string]Evaluate{
	"heuristic": EvaluateHeuristic,
	"material":  EvaluateMaterial,
}

// EvaluatorByName looks up an evaluation function, defaulting to the heuristic for "".
func EvaluatorByName(name string) (Evaluate, bool) {
	if name == "" {
		return EvaluateHeuristic, true
	}
	evaluate, ok := Evaluators[name]
	return evaluate, ok
}
