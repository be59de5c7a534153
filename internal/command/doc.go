// Package command maps natural-language phrases to developer-tool
// invocations.
//
// The package is built around an ordered phrase Table. Each entry
// binds a phrase ("check status", "add dev") to a Template, which
// takes one of three forms:
//
//   - an argument vector, executed without shell interpretation
//   - a shell line, for commands that need redirection or chaining
//   - a generator, which builds one of the two from the free text
//     that followed the phrase
//
// # Matching
//
// Input is lower-cased and whitespace-collapsed, then matched against
// the table. A phrase matches when the input equals it, continues it
// after a space, or continues it without a separator. Specificity
// breaks ties: exact match first, then the longest phrase followed by
// a space, then the longest bare prefix, so "add dev express" resolves
// through "add dev" rather than "add".
//
// # Tables and shadowing
//
// The builtin table merges the git, python, and node tables in that
// order; a later table silently shadows an earlier one on phrase
// collision, which is how the package-manager verbs end up owning the
// bare phrases. User phrase packs loaded from phrases.yaml merge last
// and may shadow anything.
//
// # Resolution
//
// Resolve joins matching and template expansion. Static templates
// discard the remainder; generators receive it as a single string and
// may consult the working directory, as the node generators do when
// they pick npm, yarn, or pnpm by lockfile. A failing or panicking
// generator surfaces as an ExpandError, never as a crash.
package command
