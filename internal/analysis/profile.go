package analysis

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/Dan9191/finance-advisor/internal/models"
)

const defaultAge = 30

// Profile is a parsed financial profile
type Profile struct {
	Income       float64
	RealIncome   *float64 // Real-time override of Income
	RealExpenses *float64 // Real-time override of the expense components

	Rent      float64
	Food      float64
	Transport float64
	Utilities float64
	Misc      float64

	Savings        float64
	FixedDeposits  float64
	Stocks         float64
	LoanAmount     float64
	CreditCardDebt float64

	EMI float64
	Age int
}

// ParseProfile reads a profile from decoded JSON. Numbers and numeric strings are accepted,
// missing or blank fields count as zero.
func ParseProfile(raw map[string]any) (Profile, error) {
	p := profileParser{raw: raw}

	profile := Profile{
		Income:         p.number("income"),
		RealIncome:     p.optional("real_income"),
		RealExpenses:   p.optional("real_expenses"),
		Rent:           p.number("rent"),
		Food:           p.number("food"),
		Transport:      p.number("transport"),
		Utilities:      p.number("utilities"),
		Misc:           p.number("misc"),
		Savings:        p.number("savings"),
		FixedDeposits:  p.number("fd"),
		Stocks:         p.number("stocks"),
		LoanAmount:     p.number("loanAmount"),
		CreditCardDebt: p.number("creditCardDebt"),
		Age:            defaultAge,
	}

	profile.EMI = p.number("monthlyEmi")
	if emi := p.number("emi"); profile.EMI == 0 {
		profile.EMI = emi
	}
	if age := p.optional("age"); age != nil {
		profile.Age = int(*age)
	}

	if p.err != nil {
		return Profile{}, p.err
	}
	return profile, nil
}

// profileParser keeps the first parse error so fields can be read in one pass
type profileParser struct {
	raw map[string]any
	err error
}

func (p *profileParser) number(key string) float64 {
	if v := p.optional(key); v != nil {
		return *v
	}
	return 0
}

func (p *profileParser) optional(key string) *float64 {
	v, ok := p.raw[key]
	if !ok || v == nil {
		return nil
	}
	f, present, err := toFloat(v)
	if err != nil {
		if p.err == nil {
			p.err = fmt.Errorf("%w: field %q: %v", models.ErrInvalidFinancialInput, key, err)
		}
		return nil
	}
	if !present {
		return nil
	}
	return &f
}

func toFloat(v any) (float64, bool, error) {
	var f float64
	switch val := v.(type) {
	case float64:
		f = val
	case float32:
		f = float64(val)
	case int:
		f = float64(val)
	case int64:
		f = float64(val)
	case json.Number:
		parsed, err := val.Float64()
		if err != nil {
			return 0, false, err
		}
		f = parsed
	case string:
		s := strings.TrimSpace(val)
		if s == "" {
			return 0, false, nil
		}
		parsed, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false, fmt.Errorf("not a number: %q", val)
		}
		f = parsed
	default:
		return 0, false, fmt.Errorf("unsupported type %T", v)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false, fmt.Errorf("not a finite number")
	}
	return f, true, nil
}
