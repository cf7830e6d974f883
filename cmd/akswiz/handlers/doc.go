// Package handlers implements the akswiz commands.
//
// Each exported function backs one cobra command. Collaborators that touch
// the terminal, the filesystem or the network are package-level function
// variables so tests can replace them.
package handlers
