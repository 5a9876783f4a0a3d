// Package sim implements the operation simulation engine.
//
// A session walks a fixed, ordered list of operation stages and renders
// progress for each one. Before the walk an Injector draws an ErrorPlan: a
// small random subset of stage indices at which a synthetic, always
// unrecoverable error notice is shown. Synthetic errors are cosmetic. They
// never alter control flow beyond printing and moving on to the next stage,
// and every session ends with an INCOMPLETE summary.
//
// The optional login step runs each account through a Validator. The
// simulator's validator never accepts; it only chooses which rejection to
// show.
//
// Execution is single-threaded. Pacing delays are blocking sleeps routed
// through a Sleeper so they honour context cancellation and can be replaced
// in tests.
package sim
