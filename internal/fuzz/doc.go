// Package fuzztests houses Go fuzz harnesses for the front end
// (source -> lexer -> parser -> binder). They check that arbitrary input
// never panics, never hangs and always leaves the structural invariants of
// each stage intact.
//
// Не делает: генерацию корпусов, запись файлов, выполнение CLI.
package fuzztests
