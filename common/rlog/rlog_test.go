package rlog

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetForComponent(t *testing.T) {
	var buf bytes.Buffer
	InitializeWithWriter("info", &buf)
	defer InitializeWithWriter("disabled", &bytes.Buffer{})

	l := GetForComponent("vault")
	l.Debug().Msg("hidden")
	l.Info().Uint64("height", 7).Msg("block sealed")

	out := buf.String()
	assert.False(t, strings.Contains(out, "hidden"))
	assert.True(t, strings.Contains(out, `"component":"vault"`))
	assert.True(t, strings.Contains(out, `"height":7`))
}
