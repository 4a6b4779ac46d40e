package scheduler

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Farmacia-api/pkg/logger"
)

type fakeScanner struct {
	calls int
	err   error
}

func (f *fakeScanner) Scan() (map[string]int, error) {
	f.calls++
	return map[string]int{}, f.err
}

func TestStart_ProgramaAlertas(t *testing.T) {
	s := New("0 8 * * *", &fakeScanner{}, logger.Nop())
	require.NoError(t, s.Start())
	defer s.Stop()
	assert.Equal(t, 1, s.Entries())
}

func TestStart_Deshabilitado(t *testing.T) {
	s := New("", &fakeScanner{}, logger.Nop())
	require.NoError(t, s.Start())
	assert.Zero(t, s.Entries())
}

func TestStart_ExpresionInvalida(t *testing.T) {
	s := New("cada mañana", &fakeScanner{}, logger.Nop())
	assert.Error(t, s.Start())
}

func TestScanAlerts_ErrorNoDetiene(t *testing.T) {
	f := &fakeScanner{err: errors.New("boom")}
	s := New("0 8 * * *", f, logger.Nop())
	s.scanAlerts()
	s.scanAlerts()
	assert.Equal(t, 2, f.calls)
}
