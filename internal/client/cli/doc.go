// Package cli implements the interactive draftpad shell: a thin REPL over
// the document, folder, version and template services. All state lives in
// the services; the shell only parses commands and formats output.
package cli
