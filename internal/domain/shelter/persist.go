package shelter

import (
	"os"

	"github.com/fourpaws/shelter-hub/internal/domain/animal"
)

// Serialize dumps every animal to path as a sequential record stream.
// Failures are logged, not returned; the file is always closed.
func (s *Shelter[T]) Serialize(path string) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		s.logger.Error("serialization failed", "path", path, "error", err)
		return
	}
	defer func() {
		if err := f.Close(); err != nil {
			s.logger.Error("failed to close snapshot", "path", path, "error", err)
		}
	}()

	if err := animal.EncodeStream(f, s.animals); err != nil {
		s.logger.Error("serialization failed", "path", path, "error", err)
		return
	}
	s.logger.Debug("shelter serialized", "path", path, "count", len(s.animals))
}

// Deserialize reads every animal stored at path, until end of file.
// It does not touch the shelter's own collection. On failure it logs and
// returns whatever was decoded before the error.
func (s *Shelter[T]) Deserialize(path string) []animal.Animal {
	f, err := os.Open(path)
	if err != nil {
		s.logger.Error("deserialization failed", "path", path, "error", err)
		return nil
	}
	defer f.Close()

	out, err := animal.DecodeStream(f)
	if err != nil {
		s.logger.Error("deserialization failed", "path", path, "decoded", len(out), "error", err)
	}
	return out
}
