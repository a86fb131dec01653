// Package console renders build progress for humans and asks interactive
// questions. A Console implements session.Printer, session.Prompter and
// event.Listener, so the App wires one instance into all three roles.
package console
