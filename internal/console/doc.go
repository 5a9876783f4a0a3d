// Package console renders a simulation session as terminal text.
//
// Console implements sim.Renderer. Progress lines start with a carriage
// return and carry no newline, so each render overwrites the previous one on
// a terminal. Everything else is written line by line. Centering counts code
// points, so labels containing wide glyphs are centered by character count,
// not by display cells.
//
// Prompter implements sim.ModeSelector over an io.Reader.
package console
