// Package eventhandler содержит обработчики событий приюта.
// Обработчики - это "реактивная" часть системы: они реагируют на усыновления
// и запускают побочные эффекты, такие как доска объявлений, запись в журнал
// и обновление метрик.
package eventhandler

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/fourpaws/shelter-hub/internal/domain/shared"
	"github.com/fourpaws/shelter-hub/internal/domain/shelter"
)

// ═══════════════════════════════════════════════════════════════════════════
// INFORMATION BOARD
// Доска объявлений: накапливает сообщения об усыновлениях.
// ═══════════════════════════════════════════════════════════════════════════

const boardHeader = "INFORMATION BOARD"

// InformationBoard - доска объявлений только на дописывание.
type InformationBoard struct {
	mu     sync.Mutex
	sb     strings.Builder
	out    io.Writer
	logger *slog.Logger
}

// NewInformationBoard создаёт доску и пишет заголовок.
// Read выводит содержимое в out (stdout, если nil).
func NewInformationBoard(out io.Writer, logger *slog.Logger) *InformationBoard {
	if out == nil {
		out = os.Stdout
	}
	if logger == nil {
		logger = slog.Default()
	}

	b := &InformationBoard{
		out:    out,
		logger: logger.With("handler", "information_board"),
	}
	b.sb.Grow(500)
	b.sb.WriteString(boardHeader + "\n")
	return b
}

// InformAboutAdoption дописывает объявление об усыновлении.
// Подходит как shelter.AdoptionHandler.
func (b *InformationBoard) InformAboutAdoption(sender shelter.Sender, e shelter.AdoptionEvent) error {
	shelterName := e.ShelterName
	if sender != nil {
		shelterName = sender.Name()
	}

	animalName := "unknown animal"
	if e.Animal != nil {
		animalName = e.Animal.Name()
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	fmt.Fprintf(&b.sb, "Good news! %s was adopted by %s from %s shelter!\n", animalName, e.OwnerName, shelterName)
	return nil
}

// Handle принимает события из шины.
// Реализует shared.EventHandler.
func (b *InformationBoard) Handle(event shared.Event) error {
	e, ok := shelter.AdoptionFromEvent(event)
	if !ok {
		b.logger.Warn("received non-adoption event",
			"event_type", event.EventType(),
		)
		return nil
	}
	return b.InformAboutAdoption(nil, e)
}

// Read выводит доску целиком.
func (b *InformationBoard) Read() {
	text := b.Text()
	if _, err := fmt.Fprintln(b.out, text); err != nil {
		b.logger.Error("failed to read board", "error", err)
	}
}

// Text возвращает текущее содержимое доски.
func (b *InformationBoard) Text() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.sb.String()
}

// AddInfo дописывает на доску содержимое текстового файла.
// Ошибки ввода-вывода логируются и не возвращаются.
func (b *InformationBoard) AddInfo(path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		b.logger.Error("failed to add informations", "path", path, "error", err)
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	b.sb.Write(data)
	b.sb.WriteByte('\n')
}
