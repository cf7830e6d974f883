// Package naming derives every generated resource name from the
// configuration.
//
// Each generator calls these helpers instead of formatting names itself, so
// a name that appears in several artifacts always comes from one formula.
// Empty inputs fall back to fixed defaults ("aks", "my-aks") and never
// produce an empty name.
package naming
