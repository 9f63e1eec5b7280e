// Package regtext holds the reg.exe vocabulary: the verbs and flags regkit
// sends, the codec between native values and reg.exe's textual data, and
// the parser for query output.
package regtext
