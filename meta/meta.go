// meta/meta.go
package meta

// MAX_TURNS stops a self-play game without a winner.
const MAX_TURNS = 300

// SEARCH_DEPTH is the default fixed depth for command-line games, 0 uses the phase policy.
const SEARCH_DEPTH = 0

// GAMES is the number of games per matchup when an experiment config does not say.
const GAMES = 10

// MOVE_LIMIT is the default moves allowed per side, 0 for none.
const MOVE_LIMIT = 0

// RESULTS_DIR is where experiment CSV files are written.
const RESULTS_DIR = "results"
