package generate

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestSetLogger(t *testing.T) {
	defer SetLogger(nil)

	core, logs := observer.New(zap.DebugLevel)
	l := zap.New(core)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			Logger().Debug("concurrent")
		}()
	}
	SetLogger(l)
	wg.Wait()

	assert.Same(t, l, Logger())
	Logger().Info("after")
	assert.Equal(t, 1, logs.FilterMessage("after").Len())

	SetLogger(nil)
	assert.Same(t, nop, Logger())
}
