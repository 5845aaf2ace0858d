package validators

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsEmail(t *testing.T) {
	assert.True(t, IsEmail("ana@salao.com.br"))
	assert.False(t, IsEmail("ana"))
	assert.False(t, IsEmail("ana@localhost"))
	assert.False(t, IsEmail("Ana <ana@salao.com>"))
}

func TestIsHexColor(t *testing.T) {
	assert.True(t, IsHexColor("#d94678"))
	assert.True(t, IsHexColor("#FFF"))
	assert.False(t, IsHexColor("d94678"))
	assert.False(t, IsHexColor("#12345"))
	assert.False(t, IsHexColor("red"))
}
