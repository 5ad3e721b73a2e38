package sensor

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

const (
	minAccelFields = 4
	maxAccelFields = 5
)

var axisNames = [3]string{"x", "y", "z"}

// LoadAccel reads an accelerometer log written by the recording app.
func LoadAccel(path string) (*AccelLog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ParseAccel(f)
}

// ParseAccel parses whitespace-delimited rows of
// "<timestamp_ms> <x> <y> <z> [<prompt>]". Blank lines are skipped; any other
// malformed row aborts with a *ParseError.
func ParseAccel(r io.Reader) (*AccelLog, error) {
	sc := bufio.NewScanner(r)
	out := &AccelLog{}
	line := 0
	for sc.Scan() {
		line++
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}
		rec, err := parseRow(fields)
		if err != nil {
			err.Line = line
			return nil, err
		}
		if rec.HasPrompt {
			out.HasPrompt = true
		}
		out.Records = append(out.Records, rec)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read accel: %w", err)
	}
	return out, nil
}

func parseRow(fields []string) (AccelRecord, *ParseError) {
	var rec AccelRecord
	if len(fields) < minAccelFields || len(fields) > maxAccelFields {
		return rec, &ParseError{Err: fmt.Errorf("%w: got %d, want %d or %d", ErrFieldCount, len(fields), minAccelFields, maxAccelFields)}
	}
	ts, err := strconv.ParseInt(fields[0], 10, 64)
	if err != nil {
		return rec, valueErr("timestamp", fields[0], err)
	}
	rec.TimestampMs = ts

	axes := [3]*float64{&rec.X, &rec.Y, &rec.Z}
	for i, dst := range axes {
		v, err := strconv.ParseFloat(fields[i+1], 64)
		if err != nil {
			return rec, valueErr(axisNames[i], fields[i+1], err)
		}
		*dst = v
	}

	if len(fields) == maxAccelFields {
		p, err := strconv.ParseBool(fields[4])
		if err != nil {
			return rec, valueErr("prompt", fields[4], err)
		}
		rec.Prompt = p
		rec.HasPrompt = true
	}
	return rec, nil
}

func valueErr(field, value string, err error) *ParseError {
	return &ParseError{Field: field, Value: value, Err: fmt.Errorf("%w: %v", ErrFieldValue, err)}
}
