package animal

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fourpaws/shelter-hub/internal/domain/shared"
)

func TestListOptions_Validate(t *testing.T) {
	tests := []struct {
		name    string
		opts    ListOptions
		wantErr error
	}{
		{name: "defaults", opts: DefaultListOptions()},
		{name: "empty sort means index", opts: ListOptions{}},
		{name: "by name", opts: ListOptions{SortBy: SortByName, Limit: 10}},
		{name: "by age", opts: ListOptions{SortBy: SortByAge, Offset: 5}},
		{name: "unknown sort", opts: ListOptions{SortBy: "weight"}, wantErr: shared.ErrInvalidInput},
		{name: "negative offset", opts: ListOptions{Offset: -1}, wantErr: shared.ErrValueOutOfRange},
		{name: "negative limit", opts: ListOptions{Limit: -1}, wantErr: shared.ErrValueOutOfRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
			assert.True(t, shared.IsValidation(err))
		})
	}
}
