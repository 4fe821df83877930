package animal

import (
	"cmp"
	"reflect"
	"strings"
)

// Comparator упорядочивает два животных: <0, 0 или >0.
type Comparator func(a, b Animal) int

// Equal - два животных равны тогда и только тогда, когда совпадают идентификаторы.
func Equal(a, b Animal) bool {
	if missing(a) || missing(b) {
		return false
	}
	return a.Index() == b.Index()
}

// Compare упорядочивает по идентификатору.
// Отсутствующий операнд считается "больше".
func Compare(a, b Animal) int {
	if missing(a) || missing(b) {
		return 1
	}
	return cmp.Compare(a.Index(), b.Index())
}

// ByName упорядочивает по имени лексикографически.
func ByName(a, b Animal) int {
	if missing(a) || missing(b) {
		return 1
	}
	return strings.Compare(a.Name(), b.Name())
}

// ByAge упорядочивает по возрасту.
func ByAge(a, b Animal) int {
	if missing(a) || missing(b) {
		return 1
	}
	return cmp.Compare(a.Age(), b.Age())
}

// missing сообщает, что операнда нет: nil-интерфейс
// или типизированный nil вроде (*Dog)(nil).
func missing(a Animal) bool {
	switch v := a.(type) {
	case nil:
		return true
	case *Dog:
		return v == nil
	case *Cat:
		return v == nil
	}
	rv := reflect.ValueOf(a)
	return rv.Kind() == reflect.Pointer && rv.IsNil()
}

// For приводит Comparator к конкретному типу T,
// чтобы им можно было сортировать, например, []*Dog.
func For[T Animal](c Comparator) func(a, b T) int {
	return func(a, b T) int {
		return c(a, b)
	}
}

// Names возвращает имена в исходном порядке.
func Names[T Named](items []T) []string {
	names := make([]string, 0, len(items))
	for _, it := range items {
		names = append(names, it.Name())
	}
	return names
}
