package main

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/udisondev/cartpath/internal/corpus"
)

func TestDescribe(t *testing.T) {
	meta := corpus.Meta{
		"y_end":     "240",
		"loops":     "3",
		"A":         "80",
		"max_grade": "0.812346",
		"status":    "OK",
	}
	assert.Equal(t, "y_end=240 loops=3 max_grade=0.812346 status=OK", describe(meta))
	assert.Empty(t, describe(corpus.Meta{}))
}
