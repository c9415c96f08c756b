package economy

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSerialize_FieldOrder(t *testing.T) {
	e := &Economy{
		PlayerName:   "Ada",
		Money:        240,
		Entropy:      99.5,
		MachineLevel: 3,
		GameLength:   90 * time.Second,
	}

	assert.Equal(t, "Ada,240,99.5,3,90", e.Serialize())
}

func TestDeserialize_RoundTrip(t *testing.T) {
	cases := []*Economy{
		{PlayerName: "Ada", Money: 240, Entropy: 100, MachineLevel: 0},
		{PlayerName: "Grace Hopper", Money: 0.1 + 0.2, Entropy: 12.345678901234, MachineLevel: 17, GameLength: 1500 * time.Millisecond},
		{PlayerName: "x", Money: 1e9, Entropy: 0, MachineLevel: 1e6, GameLength: 36 * time.Hour},
	}

	for _, want := range cases {
		got, err := Deserialize(want.Serialize())
		require.NoError(t, err)
		assert.Equal(t, want.PlayerName, got.PlayerName)
		assert.Equal(t, want.Money, got.Money)
		assert.Equal(t, want.Entropy, got.Entropy)
		assert.Equal(t, want.MachineLevel, got.MachineLevel)
		assert.InDelta(t, want.GameLength.Seconds(), got.GameLength.Seconds(), 1e-6)
	}
}

func TestDeserialize_TrailingNewline(t *testing.T) {
	got, err := Deserialize("Ada,10,5,0,1\n")
	require.NoError(t, err)
	assert.Equal(t, 10.0, got.Money)
	assert.Equal(t, time.Second, got.GameLength)
}

func TestDeserialize_Malformed(t *testing.T) {
	cases := map[string]string{
		"empty":                  "",
		"missing field":          "Ada,10,5,0",
		"extra field":            "Ada,10,5,0,1,2",
		"bad money":              "Ada,ten,5,0,1",
		"bad entropy":            "Ada,10,,0,1",
		"bad level":              "Ada,10,5,x,1",
		"bad game length":        "Ada,10,5,0,soon",
		"negative money":         "Ada,-1,5,0,1",
		"nan entropy":            "Ada,10,NaN,0,1",
		"entropy over cap":       "Ada,10,101,0,1",
		"empty name":             ",10,5,0,1",
		"game length overflow":   "Ada,10,5,0,1e10",
		"game length past limit": "Ada,10,5,0,9223372037",
	}

	for name, record := range cases {
		t.Run(name, func(t *testing.T) {
			got, err := Deserialize(record)
			assert.ErrorIs(t, err, ErrMalformedRecord)
			assert.Nil(t, got)
		})
	}
}
