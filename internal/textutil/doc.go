// Package textutil provides text helpers shared by matching and the CLI.
//
// The primary use cases are:
//   - Folding titles to comparison keys (NormalizeTitle)
//   - Rendering runtimes for display (FormatDuration)
//   - Title-casing source labels that arrive in shouting caps (TitleCase)
//
// Comparison keys are lowercase ASCII letters and digits only: diacritics are
// stripped after canonical decomposition and every other rune is dropped.
package textutil
