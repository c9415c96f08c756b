package economy

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

const recordFieldCount = 5

// maxGameLengthSeconds is the first game length a time.Duration cannot hold
var maxGameLengthSeconds = float64(math.MaxInt64) / float64(time.Second)

// Serialize encodes the economy as a single comma-delimited save record:
//
//	player_name,money,entropy,machine_level,game_length_seconds
func (e *Economy) Serialize() string {
	return strings.Join([]string{
		e.PlayerName,
		formatFloat(e.Money),
		formatFloat(e.Entropy),
		formatFloat(e.MachineLevel),
		formatFloat(e.GameLength.Seconds()),
	}, ",")
}

// Deserialize parses a save record produced by Serialize.
// Any missing, extra or malformed field is an error; nothing is zero-filled.
func Deserialize(record string) (*Economy, error) {
	fields := strings.Split(strings.TrimRight(record, "\r\n"), ",")
	if len(fields) != recordFieldCount {
		return nil, fmt.Errorf("%w: expected %d fields, got %d", ErrMalformedRecord, recordFieldCount, len(fields))
	}

	if err := ValidatePlayerName(fields[0]); err != nil {
		return nil, fmt.Errorf("%w: player_name: %v", ErrMalformedRecord, err)
	}

	money, err := parseField("money", fields[1])
	if err != nil {
		return nil, err
	}
	entropy, err := parseField("entropy", fields[2])
	if err != nil {
		return nil, err
	}
	level, err := parseField("machine_level", fields[3])
	if err != nil {
		return nil, err
	}
	seconds, err := parseField("game_length_seconds", fields[4])
	if err != nil {
		return nil, err
	}
	if seconds >= maxGameLengthSeconds {
		return nil, fmt.Errorf("%w: game_length_seconds: %v is out of range", ErrMalformedRecord, seconds)
	}

	e := &Economy{
		PlayerName:   fields[0],
		Money:        money,
		Entropy:      entropy,
		MachineLevel: level,
		GameLength:   time.Duration(math.Round(seconds * float64(time.Second))),
	}
	if e.Entropy > e.EntropyCap() {
		return nil, fmt.Errorf("%w: entropy %v exceeds cap %v", ErrMalformedRecord, e.Entropy, e.EntropyCap())
	}

	return e, nil
}

func parseField(name, raw string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %v", ErrMalformedRecord, name, err)
	}
	if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%w: %s: invalid value %v", ErrMalformedRecord, name, v)
	}
	return v, nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
