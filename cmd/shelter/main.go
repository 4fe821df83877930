// Package main - точка входа CLI приюта.
//
// Без подкоманды запускает демонстрацию: список животных, сортировки,
// два усыновления, доску объявлений и снимок приюта на диск.
package main

func main() {
	Execute()
}
