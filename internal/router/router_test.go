package router

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindTextHandler_Normalization(t *testing.T) {
	r := New()
	called := ""
	r.RegisterText(func(_ context.Context, tc TextContext) error {
		called = tc.To
		return nil
	}, "Hola", "HI")

	tests := []struct {
		input string
		found bool
	}{
		{"hola", true},
		{"  hi  ", true},
		{"HOLA", true},
		{"hello", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			h := r.FindTextHandler(tt.input)
			if tt.found {
				require.NotNil(t, h)
				require.NoError(t, h(context.Background(), TextContext{To: "u1"}))
				assert.Equal(t, "u1", called)
			} else {
				assert.Nil(t, h)
			}
		})
	}
}

func TestRegisterText_LastRegistrationWins(t *testing.T) {
	r := New()
	var got string
	r.RegisterText(func(_ context.Context, _ TextContext) error {
		got = "first"
		return nil
	}, "menu")
	r.RegisterText(func(_ context.Context, _ TextContext) error {
		got = "second"
		return nil
	}, "MENU")

	h := r.FindTextHandler("menu")
	require.NotNil(t, h)
	require.NoError(t, h(context.Background(), TextContext{}))
	assert.Equal(t, "second", got)
}

func TestFindButtonHandler_ExactMatch(t *testing.T) {
	r := New()
	r.RegisterButton("ia_productos", func(_ context.Context, _ ButtonContext) error { return nil })

	assert.NotNil(t, r.FindButtonHandler("ia_productos"))
	assert.Nil(t, r.FindButtonHandler("IA_PRODUCTOS"))
	assert.Nil(t, r.FindButtonHandler(" ia_productos"))
	assert.Nil(t, r.FindButtonHandler("soporte"))
}
