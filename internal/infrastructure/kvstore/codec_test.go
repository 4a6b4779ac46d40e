package kvstore

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type docFecha struct {
	Name string    `json:"name"`
	At   time.Time `json:"at"`
	Qty  int       `json:"qty"`
}

func TestEncode_NormalizaFechasAUTC(t *testing.T) {
	loc := time.FixedZone("UTC+1", 3600)
	v := docFecha{Name: "Paracetamol", At: time.Date(2024, 3, 15, 10, 30, 0, 123456789, loc), Qty: 3}

	data, err := Encode(v)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"at":"2024-03-15T09:30:00.123Z"`)

	var back docFecha
	require.NoError(t, Decode(data, &back))
	assert.True(t, back.At.Equal(time.Date(2024, 3, 15, 9, 30, 0, 123000000, time.UTC)))
	assert.Equal(t, "Paracetamol", back.Name)
	assert.Equal(t, 3, back.Qty)
}

type notaTraslado struct {
	Comment string `json:"comment"`
}

func TestEncode_TextoConFormaDeFechaSeGuardaTalCual(t *testing.T) {
	in := []notaTraslado{
		{Comment: "2024-03-01T10:00:00+02:00"},
		{Comment: "2024-03-01T10:00:00.123456Z"},
		{Comment: "2024-03-01T10:00:00.000Z"},
	}

	data, err := Encode(in)
	require.NoError(t, err)

	var back []notaTraslado
	require.NoError(t, Decode(data, &back))
	assert.Equal(t, in, back)
}

type Auditoria struct {
	Creado time.Time `json:"creado"`
}

type fichaCliente struct {
	Auditoria
	Direccion  string               `json:"direccion"`
	Nacimiento *time.Time           `json:"nacimiento,omitempty"`
	Baja       *time.Time           `json:"baja,omitempty"`
	Visitas    []time.Time          `json:"visitas"`
	Notas      map[string]time.Time `json:"notas"`
	Interno    string               `json:"-"`
}

func TestEncode_FechasAnidadasYEmbebidas(t *testing.T) {
	loc := time.FixedZone("UTC-3", -3*3600)
	nac := time.Date(1985, 3, 15, 0, 0, 0, 0, loc)
	in := fichaCliente{
		Auditoria:  Auditoria{Creado: time.Date(2024, 1, 10, 21, 0, 0, 0, loc)},
		Direccion:  "2024-01-10T21:00:00-03:00",
		Nacimiento: &nac,
		Visitas:    []time.Time{time.Date(2024, 2, 1, 9, 0, 0, 500000000, loc)},
		Notas:      map[string]time.Time{"alta": time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)},
		Interno:    "no se serializa",
	}

	data, err := Encode(in)
	require.NoError(t, err)
	s := string(data)
	assert.Contains(t, s, `"creado":"2024-01-11T00:00:00.000Z"`)
	assert.Contains(t, s, `"direccion":"2024-01-10T21:00:00-03:00"`)
	assert.Contains(t, s, `"nacimiento":"1985-03-15T03:00:00.000Z"`)
	assert.Contains(t, s, `"visitas":["2024-02-01T12:00:00.500Z"]`)
	assert.Contains(t, s, `"notas":{"alta":"2024-01-10T00:00:00.000Z"}`)
	assert.NotContains(t, s, "baja")
	assert.NotContains(t, s, "Interno")
}

func TestRevive_ConvierteSoloFechasEstrictas(t *testing.T) {
	data := []byte(`{"a":"2024-01-10T00:00:00.000Z","b":"2024-01-10T00:00:00Z","c":"2024-01-10","d":"2024-01-10T00:00:00+01:00","e":12.50,"f":["2023-12-31T23:59:59.999Z","texto"],"g":null,"h":true}`)

	tree, err := Revive(data)
	require.NoError(t, err)
	m := tree.(map[string]any)

	assert.IsType(t, time.Time{}, m["a"])
	assert.IsType(t, time.Time{}, m["b"])
	assert.Equal(t, "2024-01-10", m["c"])
	assert.Equal(t, "2024-01-10T00:00:00+01:00", m["d"])
	assert.Equal(t, json.Number("12.50"), m["e"])
	arr := m["f"].([]any)
	assert.Equal(t, time.Date(2023, 12, 31, 23, 59, 59, 999000000, time.UTC), arr[0])
	assert.Equal(t, "texto", arr[1])
	assert.Nil(t, m["g"])
	assert.Equal(t, true, m["h"])
}

func TestIsTimestamp(t *testing.T) {
	assert.True(t, IsTimestamp("2024-06-01T08:00:00.000Z"))
	assert.True(t, IsTimestamp("2024-06-01T08:00:00Z"))
	assert.False(t, IsTimestamp("2024-06-01T08:00:00.0Z"))
	assert.False(t, IsTimestamp("2024-06-01 08:00:00Z"))
}

func TestRevive_JSONCorrupto(t *testing.T) {
	_, err := Revive([]byte(`{"a":`))
	assert.Error(t, err)
}
