// Package fuzztests houses Go fuzz harnesses for the bitscript front end
// (source -> lexer -> parser -> resolver -> layout). They guard against panics
// and hangs on arbitrary inputs.
//
// Назначение: прогонять произвольные байты через весь конвейер драйвера.
//
// Не делает: генерацию корпусов, запись файлов, выполнение CLI.
package fuzztests
