// Package layout decides where every package of a combined WIT graph is
// written and writes it there.
//
// The main package goes to <root>/main.wit. Every dependency package goes to
// <root>/deps/<identifier>/main.wit, where the identifier is the shortest
// form that no other dependency package shares:
//
//	wasi:io@0.2.0 alone                     -> io-0.2.0
//	wasi:http and acme:http                 -> wasi:http, acme:http
//	wasi:io@0.2.0 and wasi:io@0.2.1         -> wasi:io@0.2.0, wasi:io@0.2.1
//
// Counts are taken once over all dependency packages by NewNameTable before
// any identifier is handed out.
package layout
