// Package animal содержит доменную модель животных приюта.
// Это ядро бизнес-логики: здесь нет инфраструктурных зависимостей.
package animal

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"github.com/cespare/xxhash/v2"
)

// ══════════════════════════════════════════════════════════════════════════════
// ENUMS
// ══════════════════════════════════════════════════════════════════════════════

// Kind определяет конкретный вид животного.
type Kind string

const (
	// KindDog - собака.
	KindDog Kind = "dog"
	// KindCat - кошка.
	KindCat Kind = "cat"
)

// IsValid проверяет, что вид известен.
func (k Kind) IsValid() bool {
	switch k {
	case KindDog, KindCat:
		return true
	default:
		return false
	}
}

// String возвращает строковое представление вида.
func (k Kind) String() string {
	return string(k)
}

// ══════════════════════════════════════════════════════════════════════════════
// CAPABILITIES
// ══════════════════════════════════════════════════════════════════════════════

// Named - всё, у чего есть имя.
type Named interface {
	Name() string
}

// Eater - всё, что умеет есть.
type Eater interface {
	Eat(grams int)
}

// Animal - общий контракт для всех животных приюта.
// Равенство и порядок определяются только идентификатором (Index).
type Animal interface {
	Named
	Eater

	// Index - неизменяемый идентификатор, заданный при создании.
	Index() int
	Age() int
	SetAge(age int)
	Weight() float64
	SetWeight(weight float64)

	// Kind - конкретный вид животного.
	Kind() Kind

	// Speak - животное подаёт голос.
	Speak()

	// Clone возвращает копию того же конкретного вида.
	Clone() Animal

	// HashCode согласован с равенством: зависит только от Index.
	HashCode() uint64

	// SetVoice задаёт, куда животное подаёт голос.
	SetVoice(w io.Writer)

	String() string
}

// ══════════════════════════════════════════════════════════════════════════════
// BASE
// ══════════════════════════════════════════════════════════════════════════════

// Base содержит поля, общие для всех животных.
// Встраивается в конкретные виды.
type Base struct {
	name   string
	age    int
	weight float64
	index  int
	voice  io.Writer
}

func newBase(name string, age int, weight float64, index int) Base {
	return Base{
		name:   name,
		age:    age,
		weight: weight,
		index:  index,
	}
}

// Index возвращает идентификатор животного.
func (b *Base) Index() int { return b.index }

// Name возвращает имя животного.
func (b *Base) Name() string { return b.name }

// Age возвращает возраст.
func (b *Base) Age() int { return b.age }

// SetAge изменяет возраст.
func (b *Base) SetAge(age int) { b.age = age }

// Weight возвращает вес в килограммах.
func (b *Base) Weight() float64 { return b.weight }

// SetWeight изменяет вес.
func (b *Base) SetWeight(weight float64) { b.weight = weight }

// Eat увеличивает вес на grams.
// Знак не проверяется: отрицательное значение уменьшает вес.
func (b *Base) Eat(grams int) {
	b.weight += float64(grams)
}

// SetVoice задаёт writer для голоса. nil возвращает stdout.
func (b *Base) SetVoice(w io.Writer) { b.voice = w }

// HashCode вычисляется только из идентификатора.
func (b *Base) HashCode() uint64 {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], uint64(int64(b.index)))
	return xxhash.Sum64(buf[:])
}

// String возвращает текстовое описание общих полей.
func (b *Base) String() string {
	return fmt.Sprintf("INDEX: %d, NAME: %s, AGE: %d, WEIGHT: %gkg", b.index, b.name, b.age, b.weight)
}

func (b *Base) vocalize(sound string) {
	w := b.voice
	if w == nil {
		w = os.Stdout
	}
	fmt.Fprintln(w, sound)
}

// ══════════════════════════════════════════════════════════════════════════════
// DOG
// ══════════════════════════════════════════════════════════════════════════════

// Dog - собака. Дополнительно хранит скорость бега.
type Dog struct {
	Base
	runningSpeed int
}

// NewDog создаёт собаку.
func NewDog(name string, age int, weight float64, index, runningSpeed int) *Dog {
	return &Dog{
		Base:         newBase(name, age, weight, index),
		runningSpeed: runningSpeed,
	}
}

// RunningSpeed возвращает скорость бега в км/ч.
func (d *Dog) RunningSpeed() int { return d.runningSpeed }

// Kind implements Animal.
func (d *Dog) Kind() Kind { return KindDog }

// Eat кормит собаку, после чего она лает.
func (d *Dog) Eat(grams int) {
	d.Base.Eat(grams)
	d.vocalize("HAU!")
}

// Speak implements Animal.
func (d *Dog) Speak() {
	d.vocalize("Hau hau")
}

// Clone implements Animal.
func (d *Dog) Clone() Animal {
	c := *d
	return &c
}

func (d *Dog) String() string {
	return fmt.Sprintf("%s, RUNNING SPEED: %dkm/h", d.Base.String(), d.runningSpeed)
}

// ══════════════════════════════════════════════════════════════════════════════
// CAT
// ══════════════════════════════════════════════════════════════════════════════

// Cat - кошка. Дополнительно хранит длину хвоста.
type Cat struct {
	Base
	tailLength int
}

// NewCat создаёт кошку.
func NewCat(name string, age int, weight float64, index, tailLength int) *Cat {
	return &Cat{
		Base:       newBase(name, age, weight, index),
		tailLength: tailLength,
	}
}

// TailLength возвращает длину хвоста в сантиметрах.
func (c *Cat) TailLength() int { return c.tailLength }

// Kind implements Animal.
func (c *Cat) Kind() Kind { return KindCat }

// Eat кормит кошку, после чего она мяукает.
func (c *Cat) Eat(grams int) {
	c.Base.Eat(grams)
	c.vocalize("MIAU!")
}

// Speak implements Animal.
func (c *Cat) Speak() {
	c.vocalize("Miau miau")
}

// Clone implements Animal.
func (c *Cat) Clone() Animal {
	cp := *c
	return &cp
}

func (c *Cat) String() string {
	return fmt.Sprintf("%s, TAIL LENGTH: %dcm", c.Base.String(), c.tailLength)
}

// Compile-time checks.
var (
	_ Animal = (*Dog)(nil)
	_ Animal = (*Cat)(nil)
)
