package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"
)

// MerchantPercent is one entry of a merchant percent mapping.
type MerchantPercent struct {
	Merchant string
	Percent  decimal.Decimal
}

// Percents maps merchant names to percentages, keeping the order the
// caller supplied them in.
type Percents []MerchantPercent

// Lookup returns the percent for merchant, or zero when unmapped.
func (p Percents) Lookup(merchant string) decimal.Decimal {
	for _, mp := range p {
		if mp.Merchant == merchant {
			return mp.Percent
		}
	}
	return decimal.Zero
}

func (p Percents) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, mp := range p {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(mp.Merchant)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.WriteString(mp.Percent.String())
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes an object of merchant to number. Entries whose value is
// not numeric are skipped; duplicate keys keep the position of their first
// occurrence and the value of the last.
func (p *Percents) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		*p = nil
		return nil
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("merchant percents must be an object")
	}

	out := Percents{}
	index := map[string]int{}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, _ := keyTok.(string)

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return err
		}
		pct, ok := parsePercent(raw)
		if !ok {
			continue
		}
		if i, seen := index[key]; seen {
			out[i].Percent = pct
			continue
		}
		index[key] = len(out)
		out = append(out, MerchantPercent{Merchant: key, Percent: pct})
	}
	if _, err := dec.Token(); err != nil && err != io.EOF {
		return err
	}
	*p = out
	return nil
}

func parsePercent(raw json.RawMessage) (decimal.Decimal, bool) {
	s := strings.TrimSpace(string(raw))
	if s == "" || s == "null" || s == "true" || s == "false" {
		return decimal.Zero, false
	}
	if strings.HasPrefix(s, `"`) {
		var str string
		if err := json.Unmarshal(raw, &str); err != nil {
			return decimal.Zero, false
		}
		s = strings.TrimSpace(str)
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}
