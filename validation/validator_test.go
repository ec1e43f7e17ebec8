package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Name     string `json:"name" validate:"required"`
	Category string `json:"category" validate:"omitempty,oneof=gedung parkiran"`
	Email    string `json:"email" validate:"omitempty,email"`
}

func TestStruct(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		assert.NoError(t, Struct(sample{Name: "Gedung IT", Category: "gedung"}))
	})

	t.Run("reports json field names", func(t *testing.T) {
		err := Struct(sample{Category: "kolam", Email: "bukan-email"})
		require.Error(t, err)

		var verrs Errors
		require.ErrorAs(t, err, &verrs)
		require.Len(t, verrs, 3)
		assert.Equal(t, "name", verrs[0].Field)
		assert.Equal(t, "required", verrs[0].Tag)
		assert.Equal(t, "category", verrs[1].Field)
		assert.Contains(t, err.Error(), "name wajib diisi")
		assert.Contains(t, err.Error(), "category harus salah satu dari: gedung, parkiran")
	})
}
