package service

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ierr "github.com/oficinago/oficinago/internal/errors"
)

func TestInteraction_BeginEnd(t *testing.T) {
	i := NewInteraction()

	busy, _, _ := i.Snapshot()
	assert.False(t, busy)

	require.NoError(t, i.Begin(ActionSubmit))
	busy, action, _ := i.Snapshot()
	assert.True(t, busy)
	assert.Equal(t, ActionSubmit, action)

	i.SetStatus("Registrando serviço...")
	_, _, text := i.Snapshot()
	assert.Equal(t, "Registrando serviço...", text)

	i.End()
	busy, action, text = i.Snapshot()
	assert.False(t, busy)
	assert.Empty(t, action)
	assert.Empty(t, text)
}

func TestInteraction_RejectsConcurrentAction(t *testing.T) {
	i := NewInteraction()
	require.NoError(t, i.Begin(ActionShare))

	err := i.Begin(ActionDownload)
	require.Error(t, err)
	assert.True(t, ierr.IsBusy(err))

	// Idle again after End, so a fresh action may begin
	i.End()
	assert.NoError(t, i.Begin(ActionDownload))
}

func TestInteraction_SerializesUnderContention(t *testing.T) {
	i := NewInteraction()

	const goroutines = 32
	var wg sync.WaitGroup
	var mu sync.Mutex
	admitted := 0

	for g := 0; g < goroutines; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := i.Begin(ActionShare); err == nil {
				mu.Lock()
				admitted++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, admitted, "exactly one action may claim the machine")
}
