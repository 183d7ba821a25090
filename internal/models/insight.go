package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// CompanyEntities is the expected shape of the entity-extraction response.
type CompanyEntities struct {
	MainTicker  string   `json:"main_ticker"`
	Competitors []string `json:"competitors"`
}

// RevenuePoint is one period label with its reported revenue value.
// Value keeps the model's raw figure (number or string) as text; thousands
// separators are tolerated and parsed downstream.
type RevenuePoint struct {
	Period string `json:"period"`
	Value  string `json:"value"`
}

// RevenueSeries is an ordered revenue table. Order matters twice: the first
// period label decides the chart title, and the labels become the chart
// x-axis in the order the model emitted them. A plain map would lose that,
// so the series carries its own JSON object codec.
type RevenueSeries []RevenuePoint

// UnmarshalJSON decodes a JSON object ({"Q1 FY25": 62613, ...}) preserving
// key order. Values may be numbers or strings.
func (s *RevenueSeries) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	delim, ok := tok.(json.Delim)
	if !ok || delim != '{' {
		return fmt.Errorf("revenue series: expected JSON object, got %v", tok)
	}

	var series RevenueSeries
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("revenue series: expected string key, got %v", keyTok)
		}

		valTok, err := dec.Token()
		if err != nil {
			return err
		}

		var value string
		switch v := valTok.(type) {
		case json.Number:
			value = v.String()
		case string:
			value = v
		case nil:
			value = ""
		case bool:
			value = strconv.FormatBool(v)
		default:
			// Nested objects/arrays are not a revenue table.
			return fmt.Errorf("revenue series: unsupported value for %q", key)
		}

		series = append(series, RevenuePoint{Period: key, Value: value})
	}

	if _, err := dec.Token(); err != nil {
		return err
	}

	*s = series
	return nil
}

// MarshalJSON encodes the series back to a JSON object in order.
func (s RevenueSeries) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, p := range s {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(p.Period)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(p.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
